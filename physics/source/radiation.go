// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package source

import (
	"math"

	"github.com/cpmech/gosl/chk"

	"github.com/cpmech/tokasim/arr"
	"github.com/cpmech/tokasim/geometry"
	"github.com/cpmech/tokasim/physics"
)

// impurityCoolingRates is a small table of representative coronal
// cooling-rate coefficients L_z [W*m^3] by atomic number Z, used by
// ImpurityRadiation. Values are order-of-magnitude representative of
// ADAS coronal equilibrium rates at core temperatures, not a full
// atomic-physics database (spec §1 Non-goals: impurity transport).
var impurityCoolingRates = map[int]float64{
	6:  5e-35, // carbon
	10: 8e-35, // neon
	18: 2e-34, // argon
	74: 8e-33, // tungsten
}

// GasPuff implements a localized particle source near the edge, shaped
// like the ECRH Gaussian deposition but applied to the density equation
// (spec §4.2 "similar shape").
type GasPuff struct {
	RateM3PerS float64 // total particle injection rate [1/s]
	RhoDep     float64
	Width      float64
}

// NewGasPuff validates and builds a GasPuff model.
func NewGasPuff(rate, rhoDep, width float64) GasPuff {
	if rate < 0 {
		chk.Panic("source: physics parameter out of range: gas puff rate must be >= 0 (got %v)", rate)
	}
	if width <= 0 {
		width = 0.05
	}
	return GasPuff{RateM3PerS: rate, RhoDep: rhoDep, Width: width}
}

// Name implements physics.SourceModel.
func (GasPuff) Name() string { return "gas-puff" }

func (m GasPuff) shape(g *geometry.Geometry) []float64 {
	sigma := m.Width / 3.0
	if sigma < 1e-6 {
		sigma = 1e-6
	}
	shape := make([]float64, len(g.CellRadii))
	for i, r := range g.CellRadii {
		rho := r / g.MinorRadius
		d := (rho - m.RhoDep) / sigma
		shape[i] = math.Exp(-0.5 * d * d)
	}
	return shape
}

// ComputeTerms implements physics.SourceModel.
func (m GasPuff) ComputeTerms(p physics.ProfileView, g *geometry.Geometry) physics.SourceTerms {
	n := p.Ti.Len()
	shape := m.shape(g)
	var integral float64
	for i, s := range shape {
		integral += s * g.CellVolumes[i]
	}
	sn := make([]float64, n)
	if integral > 1e-300 {
		for i, s := range shape {
			sn[i] = s * m.RateM3PerS / integral
		}
	}
	return physics.SourceTerms{
		Qi:       arr.Zeros(n),
		Qe:       arr.Zeros(n),
		Sn:       arr.New(sn),
		Sj:       arr.Zeros(n),
		Metadata: physics.Empty(),
	}
}

// ComputeMetadata implements physics.SourceModel. Gas puff is a pure
// particle source; it carries no power-balance entry.
func (GasPuff) ComputeMetadata(p physics.ProfileView, g *geometry.Geometry) physics.Metadata {
	return physics.Metadata{Model: "gas-puff", Category: physics.CategoryOther}
}

// ImpurityRadiation implements line + recombination radiation from a
// single trace impurity species of atomic number Z and fractional
// density FractionOfNe (spec §4.2 "impurity radiation table by Z").
type ImpurityRadiation struct {
	Z             int
	FractionOfNe  float64
	coolingRate   float64
}

// NewImpurityRadiation validates Z against the cooling-rate table and
// builds an ImpurityRadiation model.
func NewImpurityRadiation(z int, fractionOfNe float64) ImpurityRadiation {
	rate, ok := impurityCoolingRates[z]
	if !ok {
		chk.Panic("source: physics parameter out of range: no cooling-rate entry for impurity Z=%d", z)
	}
	if fractionOfNe < 0 || fractionOfNe > 1 {
		chk.Panic("source: physics parameter out of range: impurity fraction must be in [0,1] (got %v)", fractionOfNe)
	}
	return ImpurityRadiation{Z: z, FractionOfNe: fractionOfNe, coolingRate: rate}
}

// Name implements physics.SourceModel.
func (m ImpurityRadiation) Name() string { return "impurity-radiation" }

func (m ImpurityRadiation) powerDensity(p physics.ProfileView, i int) float64 {
	ne := p.Ne.At(i)
	nz := m.FractionOfNe * ne
	return nz * ne * m.coolingRate
}

// ComputeTerms implements physics.SourceModel.
func (m ImpurityRadiation) ComputeTerms(p physics.ProfileView, g *geometry.Geometry) physics.SourceTerms {
	n := p.Ti.Len()
	qe := make([]float64, n)
	for i := 0; i < n; i++ {
		qe[i] = -m.powerDensity(p, i) * mwPerW
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
func (m ImpurityRadiation) ComputeMetadata(p physics.ProfileView, g *geometry.Geometry) physics.Metadata {
	n := p.Ti.Len()
	var radW float64
	for i := 0; i < n; i++ {
		radW += m.powerDensity(p, i) * g.CellVolumes[i]
	}
	return physics.Metadata{
		Model:          m.Name(),
		Category:       physics.CategoryRadiation,
		RadiationPower: radW,
		ElectronPower:  -radW,
	}
}
