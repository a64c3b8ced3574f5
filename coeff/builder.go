// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package coeff

import (
	"github.com/cpmech/gosl/chk"

	"github.com/cpmech/tokasim/arr"
	"github.com/cpmech/tokasim/geometry"
	"github.com/cpmech/tokasim/physics"
	"github.com/cpmech/tokasim/state"
)

// Debug gates the plausibility-range assertions named in spec §4.3 and
// §9 ("Debug assertions vs release warnings"); it is off by default to
// keep the hot coefficient-assembly path lean in release builds.
var Debug = false

// debugMagnitudeGate validates the magnitude bounds spec §4.3/§8 #9
// require in debug builds only.
func debugMagnitudeGate(terms physics.SourceTerms) {
	if !Debug {
		return
	}
	for i := 0; i < terms.Qi.Len(); i++ {
		if absf(terms.Qi.At(i)) >= 1000 || absf(terms.Qe.At(i)) >= 1000 {
			chk.Panic("coeff: debug magnitude gate: |Qi|/|Qe| must be < 1000 MW/m^3 (Qi=%v Qe=%v at cell %d)", terms.Qi.At(i), terms.Qe.At(i), i)
		}
		if absf(terms.Sn.At(i)) >= 1e20 {
			chk.Panic("coeff: debug magnitude gate: |Sn| must be < 1e20 m^-3/s (got %v at cell %d)", terms.Sn.At(i), i)
		}
		if absf(terms.Sj.At(i)) >= 100 {
			chk.Panic("coeff: debug magnitude gate: |Sj| must be < 100 MA/m^2 (got %v at cell %d)", terms.Sj.At(i), i)
		}
	}
}

func absf(x float64) float64 {
	if x < 0 {
		return -x
	}
	return x
}

// Build assembles the full Block1DCoeffs for a step from profiles,
// geometry, transport coefficients, composed sources, and bootstrap
// current (spec §4.3 table). Profiles are density-floored internally
// per spec §3 before any division by Ne.
func Build(p state.CoreProfiles, g *geometry.Geometry, tc physics.TransportCoefficients, src physics.SourceTerms, jBootstrapMAm2 arr.Array) Block1DCoeffs {
	debugMagnitudeGate(src)
	floored := p.FloorDensity()
	ne := floored.Ne

	return Block1DCoeffs{
		Ti:       buildTemperature(ne, tc.ChiI, src.Qi, g),
		Te:       buildTemperature(ne, tc.ChiE, src.Qe, g),
		Ne:       buildDensity(tc.D, tc.V, src.Sn, g),
		Psi:      buildPsi(jBootstrapMAm2, src.Sj, g),
		Geometry: g,
	}
}

// buildTemperature builds the Ti/Te equation coefficients (spec §4.3
// table row 1/2): d_face = harmonic(Ne*chi), v_face = 0, source in
// eV/(m^3*s), transient = Ne (floored).
func buildTemperature(ne, chi, qMWm3 arr.Array, g *geometry.Geometry) EquationCoeffs {
	n := g.Mesh.NCells
	neChi := arr.Mul(ne, chi)
	dFace := HarmonicFaces(neChi.Raw())
	vFace := make([]float64, g.Mesh.NFaces)
	sourceCell := make([]float64, n)
	for i := 0; i < n; i++ {
		sourceCell[i] = qMWm3.At(i) * MWtoEVPerM3PerS
	}
	ec := EquationCoeffs{
		DFace:          arr.New(dFace),
		VFace:          arr.New(vFace),
		SourceCell:     arr.New(sourceCell),
		SourceMatCell:  arr.Zeros(n),
		TransientCoeff: ne,
	}
	ec.checkShapes(g.Mesh)
	return ec
}

// buildDensity builds the Ne equation coefficients (spec §4.3 row 3):
// d_face = harmonic(D), v_face = arithmetic(V), transient = 1.
func buildDensity(d, v, sn arr.Array, g *geometry.Geometry) EquationCoeffs {
	n := g.Mesh.NCells
	dFace := HarmonicFaces(d.Raw())
	vFace := ArithmeticFaces(v.Raw())
	ec := EquationCoeffs{
		DFace:          arr.New(dFace),
		VFace:          arr.New(vFace),
		SourceCell:     sn,
		SourceMatCell:  arr.Zeros(n),
		TransientCoeff: arr.Full(n, 1.0),
	}
	ec.checkShapes(g.Mesh)
	return ec
}

// buildPsi builds the psi equation coefficients (spec §4.3 row 4):
// d_face = harmonic(eta), v_face = 0, source = J_bootstrap + J_ext
// (both already in MA/m^2, the canonical unit per spec §9's open
// question), transient = 1.
func buildPsi(jBootstrapMAm2, sjExternal arr.Array, g *geometry.Geometry) EquationCoeffs {
	n := g.Mesh.NCells
	dFace := make([]float64, g.Mesh.NFaces) // eta is supplied separately via WithResistivity
	vFace := make([]float64, g.Mesh.NFaces)
	source := arr.Add(jBootstrapMAm2, sjExternal)
	ec := EquationCoeffs{
		DFace:          arr.New(dFace),
		VFace:          arr.New(vFace),
		SourceCell:     source,
		SourceMatCell:  arr.Zeros(n),
		TransientCoeff: arr.Full(n, 1.0),
	}
	ec.checkShapes(g.Mesh)
	return ec
}

// WithResistivity returns a copy of the psi EquationCoeffs with DFace
// replaced by the harmonic face resistivity eta, the ohmic model's
// diffusion contribution to the psi equation (spec §4.3 table, §4.2
// Ohmic: "Couples to the psi equation as diffusion").
func (e EquationCoeffs) WithResistivity(etaCell []float64) EquationCoeffs {
	e.DFace = arr.New(HarmonicFaces(etaCell))
	return e
}
