// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package state

import (
	"github.com/cpmech/gosl/chk"

	"github.com/cpmech/tokasim/arr"
)

// Scales holds the physics-aware reference magnitudes used to condition
// the Newton-Raphson iteration (spec §4.5). A min-scale floor keeps the
// scaling reference non-zero (spec §3 FlattenedState invariant).
type Scales struct {
	Ti, Te, Ne, Psi float64
}

// DefaultScales returns the reference scales named in spec §4.5.
func DefaultScales() Scales {
	return Scales{Ti: 1e3, Te: 1e3, Ne: 1e20, Psi: 1.0}
}

const minScaleFloor = 1e-30

func (s Scales) floored() Scales {
	return Scales{
		Ti:  floorAbs(s.Ti),
		Te:  floorAbs(s.Te),
		Ne:  floorAbs(s.Ne),
		Psi: floorAbs(s.Psi),
	}
}

func floorAbs(x float64) float64 {
	if x < 0 {
		x = -x
	}
	if x < minScaleFloor {
		return minScaleFloor
	}
	return x
}

// FlattenedState is the 4n Newton-Raphson state vector, laid out
// [Ti; Te; Ne; Psi] over n cells (spec §3). This is the normative,
// shape-validating variant named in spec §9's open question (the
// second, lenient implementation referenced there is not implemented).
type FlattenedState struct {
	N      int // cells per field
	Values arr.Array
	Scale  Scales
}

// Flatten builds a FlattenedState from CoreProfiles, validating that all
// four fields share the same length.
func Flatten(p CoreProfiles, scale Scales) FlattenedState {
	n := p.Ti.Len()
	if p.Te.Len() != n || p.Ne.Len() != n || p.Psi.Len() != n {
		chk.Panic("state: ShapeMismatch: cannot flatten profiles of unequal length (Ti=%d Te=%d Ne=%d Psi=%d)",
			p.Ti.Len(), p.Te.Len(), p.Ne.Len(), p.Psi.Len())
	}
	return FlattenedState{
		N:      n,
		Values: arr.Concat(p.Ti, p.Te, p.Ne, p.Psi),
		Scale:  scale.floored(),
	}
}

// Unflatten recovers CoreProfiles from a FlattenedState, preserving the
// Zeff carried separately (Zeff is not part of the 4n Newton vector; it
// is treated as a parameter, not an evolved field, per spec §3/§4).
func (fs FlattenedState) Unflatten(zeff arr.Array) CoreProfiles {
	n := fs.N
	v := fs.Values
	return NewCoreProfiles(
		v.Slice(0, n),
		v.Slice(n, 2*n),
		v.Slice(2*n, 3*n),
		v.Slice(3*n, 4*n),
		zeff,
	)
}

// Size returns 4*N, the total Newton vector length.
func (fs FlattenedState) Size() int { return 4 * fs.N }

// ScaleVector returns the concatenated per-element reference scale
// [Ti...; Te...; Ne...; Psi...], the same vector Scaled/Unscaled divide
// and multiply by; exported so collaborators (e.g. the Newton solver)
// can non-dimensionalize residuals by the same reference (spec §4.5).
func (fs FlattenedState) ScaleVector() arr.Array {
	return arr.Concat(
		arr.Full(fs.N, fs.Scale.Ti),
		arr.Full(fs.N, fs.Scale.Te),
		arr.Full(fs.N, fs.Scale.Ne),
		arr.Full(fs.N, fs.Scale.Psi),
	)
}

// Scaled returns x~ = x / r in scaled coordinates (spec §4.5).
func (fs FlattenedState) Scaled() arr.Array {
	return arr.Div(fs.Values, fs.ScaleVector())
}

// Unscaled recovers x = x~ * r from a scaled vector, using the same
// ScaleVector as Scaled so scaled().unscaled() round-trips
// within 1 ULP per element (spec §8 #3).
func (fs FlattenedState) Unscaled(scaled arr.Array) arr.Array {
	return arr.Mul(scaled, fs.ScaleVector())
}

// WithValues returns a copy of fs with Values replaced.
func (fs FlattenedState) WithValues(v arr.Array) FlattenedState {
	return FlattenedState{N: fs.N, Values: v, Scale: fs.Scale}
}
