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

// ECRH implements Gaussian-deposition electron cyclotron resonance
// heating (spec §4.2): centered at RhoDep with 3-sigma width Width,
// normalized so the volume integral equals PowerMW, delivered 100% to
// electrons. ECCD (current drive) is an optional placeholder current
// contribution proportional to the same deposition profile.
type ECRH struct {
	PowerMW  float64
	RhoDep   float64 // deposition center, normalized radius in [0,1]
	Width    float64 // 3-sigma Gaussian width, normalized radius
	ECCDFrac float64 // fraction of power converted to driven current (MA/MW), 0 disables ECCD
}

// NewECRH validates and builds an ECRH model.
func NewECRH(powerMW, rhoDep, width, eccdFrac float64) ECRH {
	if powerMW < 0 {
		chk.Panic("source: physics parameter out of range: ECRH power must be >= 0 (got %v)", powerMW)
	}
	if rhoDep < 0 || rhoDep > 1 {
		chk.Panic("source: physics parameter out of range: ECRH rhoDep must be in [0,1] (got %v)", rhoDep)
	}
	if width <= 0 {
		width = 0.1
	}
	return ECRH{PowerMW: powerMW, RhoDep: rhoDep, Width: width, ECCDFrac: eccdFrac}
}

// Name implements physics.SourceModel.
func (ECRH) Name() string { return "ecrh" }

// depositionShape returns an unnormalized Gaussian deposition profile
// over cell-centered normalized radius, 3-sigma width Width.
func (m ECRH) depositionShape(g *geometry.Geometry) []float64 {
	sigma := m.Width / 3.0
	if sigma < 1e-6 {
		sigma = 1e-6
	}
	n := len(g.CellRadii)
	shape := make([]float64, n)
	for i, r := range g.CellRadii {
		rho := r / g.MinorRadius
		d := (rho - m.RhoDep) / sigma
		shape[i] = math.Exp(-0.5 * d * d)
	}
	return shape
}

// normalizedPowerDensity returns the deposition profile [W/m^3]
// normalized so that integral(P dV) == PowerMW*1e6 watts.
func (m ECRH) normalizedPowerDensity(g *geometry.Geometry) []float64 {
	shape := m.depositionShape(g)
	var integral float64
	for i, s := range shape {
		integral += s * g.CellVolumes[i]
	}
	if integral < 1e-300 {
		return make([]float64, len(shape))
	}
	totalW := m.PowerMW * 1e6
	out := make([]float64, len(shape))
	for i, s := range shape {
		out[i] = s * totalW / integral
	}
	return out
}

// ComputeTerms implements physics.SourceModel.
func (m ECRH) ComputeTerms(p physics.ProfileView, g *geometry.Geometry) physics.SourceTerms {
	n := p.Ti.Len()
	density := m.normalizedPowerDensity(g) // W/m^3
	qe := make([]float64, n)
	sj := make([]float64, n)
	for i := 0; i < n; i++ {
		qe[i] = density[i] * mwPerW
		if m.ECCDFrac > 0 {
			// ECCD current density [MA/m^2]: driven current scales with
			// deposited power density at a configurable efficiency.
			sj[i] = density[i] * mwPerW * m.ECCDFrac
		}
	}
	return physics.SourceTerms{
		Qi:       arr.Zeros(n),
		Qe:       arr.New(qe),
		Sn:       arr.Zeros(n),
		Sj:       arr.New(sj),
		Metadata: physics.Empty(),
	}
}

// ComputeMetadata implements physics.SourceModel.
func (m ECRH) ComputeMetadata(p physics.ProfileView, g *geometry.Geometry) physics.Metadata {
	return physics.Metadata{
		Model:         m.Name(),
		Category:      physics.CategoryAuxiliary,
		ElectronPower: m.PowerMW * 1e6,
	}
}
