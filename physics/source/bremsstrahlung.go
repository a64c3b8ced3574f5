// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package source

import (
	"math"

	"github.com/cpmech/tokasim/arr"
	"github.com/cpmech/tokasim/geometry"
	"github.com/cpmech/tokasim/physics"
)

// Bremsstrahlung implements the standard bremsstrahlung radiated-power
// density formula (spec §4.2), a negative electron heating term:
//
//	P_br [W/m^3] = 5.35e-37 * Zeff * Ne^2 * sqrt(Te[eV])
//
// (the NRL-formula coefficient, with Ne in m^-3 and Te in eV).
type Bremsstrahlung struct{}

// NewBremsstrahlung builds a Bremsstrahlung model.
func NewBremsstrahlung() Bremsstrahlung { return Bremsstrahlung{} }

// Name implements physics.SourceModel.
func (Bremsstrahlung) Name() string { return "bremsstrahlung" }

func (Bremsstrahlung) powerDensity(p physics.ProfileView, i int) float64 {
	ne := p.Ne.At(i)
	te := math.Max(p.Te.At(i), 0)
	zeff := p.Zeff.At(i)
	return 5.35e-37 * zeff * ne * ne * math.Sqrt(te)
}

// ComputeTerms implements physics.SourceModel.
func (b Bremsstrahlung) ComputeTerms(p physics.ProfileView, g *geometry.Geometry) physics.SourceTerms {
	n := p.Ti.Len()
	qe := make([]float64, n)
	for i := 0; i < n; i++ {
		qe[i] = -b.powerDensity(p, i) * mwPerW
	}
	return physics.SourceTerms{
		Qi:       arr.Zeros(n),
		Qe:       arr.New(qe),
		Sn:       arr.Zeros(n),
		Sj:       arr.Zeros(n),
		Metadata: physics.Empty(),
	}
}

// ComputeMetadata implements physics.SourceModel.
func (b Bremsstrahlung) ComputeMetadata(p physics.ProfileView, g *geometry.Geometry) physics.Metadata {
	n := p.Ti.Len()
	var radW float64
	for i := 0; i < n; i++ {
		radW += b.powerDensity(p, i) * g.CellVolumes[i]
	}
	return physics.Metadata{
		Model:          b.Name(),
		Category:       physics.CategoryRadiation,
		RadiationPower: radW,
		ElectronPower:  -radW,
	}
}
