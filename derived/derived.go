// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package derived computes the scalar diagnostics reported alongside
// every accepted step (spec §4.8): stored energy, confinement time,
// H-factor, beta, plasma current, fusion gain, and the triple product.
package derived

import (
	"math"

	"gonum.org/v1/gonum/floats"

	"github.com/cpmech/gosl/io"

	"github.com/cpmech/tokasim/geometry"
	"github.com/cpmech/tokasim/physics"
	"github.com/cpmech/tokasim/state"
)

const (
	elementaryCharge = 1.602176634e-19
	mu0              = 1.25663706212e-6
)

// Debug makes Compute print a warning when the step's metadata
// collection has no entries. Compute does not fail on missing metadata
// in either mode: the power-balance quantities are zero, and with Debug
// off no warning is printed.
var Debug = false

// Quantities holds one step's derived diagnostics (spec §4.8).
type Quantities struct {
	CentralTi, CentralTe, CentralNe float64
	VolAvgTi, VolAvgTe, VolAvgNe    float64

	ThermalEnergyMJ float64
	PAuxW           float64
	POhmicW         float64
	PAlphaW         float64
	PLossW          float64
	TauEnergy       float64 // s
	HFactor         float64
	TauScaling      float64 // s, ITER98y2

	BetaToroidalPct float64
	BetaN           float64
	PlasmaCurrentMA float64

	QFusion        float64
	TripleProduct  float64 // n*T*tau, [m^-3 * keV * s]
}

// volumeAverage computes <X> = (int X dV)/(int dV) with cell volumes
// (spec §4.8).
func volumeAverage(x []float64, vol []float64) float64 {
	num := 0.0
	for i := range x {
		num += x[i] * vol[i]
	}
	den := floats.Sum(vol)
	if den <= 0 {
		return 0
	}
	return num / den
}

// iter98y2Tau is a simplified closed-form ITER98y2 scaling-law
// confinement time (spec §4.8 "closed-form in geometry/profiles"):
//
//	tau_98y2 = 0.0562 * Ip^0.93 * Bt^0.15 * ne19^0.41 * Ploss^-0.69
//	            * R^1.97 * kappa^0.78 * eps^0.58 * M^0.19
//
// with kappa (elongation) fixed at 1.0 and isotopic mass M fixed at 2
// (deuterium) since neither is tracked by this core.
func iter98y2Tau(ipMA, btT, ne19, plossMW, r0, eps float64) float64 {
	if plossMW < 1e-6 {
		plossMW = 1e-6
	}
	if ipMA < 1e-6 {
		ipMA = 1e-6
	}
	const kappa = 1.0
	const m = 2.0
	tau := 0.0562 * math.Pow(ipMA, 0.93) * math.Pow(btT, 0.15) * math.Pow(ne19, 0.41) *
		math.Pow(plossMW, -0.69) * math.Pow(r0, 1.97) * math.Pow(kappa, 0.78) *
		math.Pow(eps, 0.58) * math.Pow(m, 0.19)
	return tau
}

// plasmaCurrentFromEdgeQ estimates I_p from the edge safety factor when
// psi-derived current is not meaningful (spec §4.8): Ip = a*Bphi/(q_edge*mu0*R0),
// returned in amps.
func plasmaCurrentFromEdgeQ(a, bPhi, qEdge, r0 float64) float64 {
	if qEdge < 1e-6 {
		qEdge = 1e-6
	}
	return a * bPhi / (qEdge * mu0 * r0)
}

// Compute derives all spec §4.8 diagnostics from the current profiles,
// geometry, and the merged source metadata for the step (empty metadata
// is the canonical "no sources configured" value, spec §4.2/§9).
func Compute(p state.CoreProfiles, g *geometry.Geometry, md physics.MetadataCollection) Quantities {
	if len(md.Entries) == 0 {
		if Debug {
			io.Pfyel("derived: WARNING: no SourceMetadata entries this step; power-balance quantities will be zero\n")
		}
	}

	n := p.Len()
	ti := p.Ti.Raw()
	te := p.Te.Raw()
	ne := p.Ne.Raw()
	vol := g.CellVolumes

	q := Quantities{
		CentralTi: ti[0],
		CentralTe: te[0],
		CentralNe: ne[0],
		VolAvgTi:  volumeAverage(ti, vol),
		VolAvgTe:  volumeAverage(te, vol),
		VolAvgNe:  volumeAverage(ne, vol),
	}

	// W = int (3/2) ne (Ti+Te) eV_to_J dV, reported in MJ (spec §4.8).
	wJoules := 0.0
	for i := 0; i < n; i++ {
		wJoules += 1.5 * ne[i] * (ti[i] + te[i]) * elementaryCharge * vol[i]
	}
	q.ThermalEnergyMJ = wJoules / 1e6

	q.PAuxW = md.TotalByCategory(physics.CategoryAuxiliary)
	q.POhmicW = md.TotalOhmicPower()
	q.PAlphaW = md.TotalAlphaPower()
	q.PLossW = q.PAuxW + q.POhmicW + q.PAlphaW
	if q.PLossW < 1e-6 {
		q.PLossW = 1e-6 // floor on denominator, spec §4.8
	}
	q.TauEnergy = wJoules / q.PLossW

	qEdge := 3.0
	if g.SafetyFactor != nil {
		qEdge = g.SafetyFactor[len(g.SafetyFactor)-1]
	}
	q.PlasmaCurrentMA = plasmaCurrentFromEdgeQ(g.MinorRadius, g.ToroidalB, qEdge, g.MajorRadius) / 1e6
	if q.PlasmaCurrentMA < 0.1 {
		q.PlasmaCurrentMA = 0.1 // floor, spec §4.8
	}

	ne19 := q.VolAvgNe / 1e19
	eps := g.MinorRadius / g.MajorRadius
	q.TauScaling = iter98y2Tau(q.PlasmaCurrentMA, g.ToroidalB, ne19, q.PLossW/1e6, g.MajorRadius, eps)
	if q.TauScaling > 1e-9 {
		q.HFactor = q.TauEnergy / q.TauScaling
	}

	avgP := volumeAverage(pressurePa(ti, te, ne), vol)
	q.BetaToroidalPct = 2 * mu0 * avgP / (g.ToroidalB * g.ToroidalB) * 100
	q.BetaN = q.BetaToroidalPct * g.MinorRadius * g.ToroidalB / q.PlasmaCurrentMA

	pFusion := md.TotalFusionPower()
	externalHeating := q.PAuxW + q.POhmicW
	if externalHeating < 1e-6 {
		q.QFusion = 0
	} else {
		q.QFusion = pFusion / externalHeating
		if q.QFusion < 0 {
			q.QFusion = 0
		}
		if q.QFusion > 100 {
			q.QFusion = 100
		}
	}

	avgTkeV := (q.VolAvgTi + q.VolAvgTe) / 2 / 1000
	q.TripleProduct = q.VolAvgNe * avgTkeV * q.TauEnergy

	return q
}

func pressurePa(ti, te, ne []float64) []float64 {
	p := make([]float64, len(ti))
	for i := range p {
		p[i] = ne[i] * (ti[i] + te[i]) * elementaryCharge
	}
	return p
}
