// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package state implements the four evolved plasma fields, the
// flattened Newton-Raphson state vector, and variable scaling (spec
// §3, §4.5).
package state

import (
	"github.com/cpmech/gosl/chk"

	"github.com/cpmech/tokasim/arr"
)

// DensityFloor is the minimum electron density enforced inside the
// coefficient builder to avoid singularities (spec §3).
const DensityFloor = 1e18

// CoreProfiles holds the four cell-centered evolved fields.
type CoreProfiles struct {
	Ti   arr.Array // ion temperature [eV]
	Te   arr.Array // electron temperature [eV]
	Ne   arr.Array // electron density [m^-3]
	Psi  arr.Array // poloidal flux [Wb]
	Zeff arr.Array // effective charge, cell-centered profile (SPEC_FULL supplement)
}

// NewCoreProfiles validates that all four fields and Zeff share the
// same shape and returns them as a CoreProfiles value.
func NewCoreProfiles(ti, te, ne, psi, zeff arr.Array) CoreProfiles {
	n := ti.Len()
	for _, f := range []arr.Array{te, ne, psi, zeff} {
		if f.Len() != n {
			chk.Panic("state: ShapeMismatch: CoreProfiles fields must share length (want %d, got %d)", n, f.Len())
		}
	}
	return CoreProfiles{Ti: ti, Te: te, Ne: ne, Psi: psi, Zeff: zeff}
}

// NewCoreProfilesScalarZeff is a convenience constructor for the common
// case of a spatially uniform effective charge.
func NewCoreProfilesScalarZeff(ti, te, ne, psi arr.Array, zeffScalar float64) CoreProfiles {
	return NewCoreProfiles(ti, te, ne, psi, arr.Full(ti.Len(), zeffScalar))
}

// Len returns the number of radial cells.
func (p CoreProfiles) Len() int { return p.Ti.Len() }

// Positive reports whether Ti, Te, Ne are strictly positive everywhere,
// the invariant required after every accepted step (spec §3, §8 #2).
func (p CoreProfiles) Positive() bool {
	for i := 0; i < p.Len(); i++ {
		if p.Ti.At(i) <= 0 || p.Te.At(i) <= 0 || p.Ne.At(i) <= 0 {
			return false
		}
	}
	return true
}

// FloorDensity returns a copy of p with Ne floored at DensityFloor.
func (p CoreProfiles) FloorDensity() CoreProfiles {
	return CoreProfiles{
		Ti:   p.Ti,
		Te:   p.Te,
		Ne:   arr.Max(p.Ne, arr.Full(p.Ne.Len(), DensityFloor)),
		Psi:  p.Psi,
		Zeff: p.Zeff,
	}
}

// Clone returns a defensive deep copy.
func (p CoreProfiles) Clone() CoreProfiles {
	return CoreProfiles{
		Ti:   p.Ti.Clone(),
		Te:   p.Te.Clone(),
		Ne:   p.Ne.Clone(),
		Psi:  p.Psi.Clone(),
		Zeff: p.Zeff.Clone(),
	}
}
