// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package ana implements closed-form analytic reference solutions used
// as regression oracles (spec §8 S1/S2), plus an ODE-based numerical
// cross-check for the diffusion case.
package ana

import (
	"math"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/ode"
)

// SteadyDiffusion is the S1 analytic reference: a constant-χ, constant
// volumetric source steady-state radial profile,
//
//	T(r) = T_edge + (S/(4χ))·(a²-r²)
//
// the closed-form solution of χ·(1/r)·d/dr(r·dT/dr) = -S with a
// symmetric axis and a Dirichlet edge value.
type SteadyDiffusion struct {
	Chi         float64 // diffusivity [m^2/s]
	Source      float64 // volumetric source [eV/m^3/s equivalent]
	MinorRadius float64 // a [m]
	EdgeValue   float64 // T(a)
	sol         ode.ODE
}

// Init prepares the numerical cross-check solver, mirroring
// ana.ColumnFluidPressure's Init/Calc/CalcNum split.
func (s *SteadyDiffusion) Init(withNum bool) {
	if !withNum {
		return
	}
	silent := true
	s.sol.Init("Radau5", 2, func(f []float64, dr, r float64, y []float64, args ...interface{}) error {
		// y = {T, G}, G = dT/dr. Near the axis G/r -> dG/dr(0) by
		// L'Hopital, so the singular 1/r term is only evaluated once
		// integration has moved past a small epsilon (see CalcNum).
		f[0] = y[1]
		f[1] = -y[1]/r - s.Source/s.Chi
		return nil
	}, nil, nil, nil, silent)
	s.sol.Distr = false
}

// Calc returns the closed-form analytic value at radius r.
func (s SteadyDiffusion) Calc(r float64) float64 {
	return s.EdgeValue + (s.Source/(4*s.Chi))*(s.MinorRadius*s.MinorRadius-r*r)
}

// Profile evaluates Calc at every given radius.
func (s SteadyDiffusion) Profile(r []float64) []float64 {
	out := make([]float64, len(r))
	for i, ri := range r {
		out[i] = s.Calc(ri)
	}
	return out
}

// CalcNum integrates the steady-diffusion ODE outward from a small
// regularized radius (where T and G are seeded from the known parabolic
// shape near the axis) out to r, as a numerical cross-check of Calc.
func (s SteadyDiffusion) CalcNum(r float64) float64 {
	eps := s.MinorRadius * 1e-4
	if r <= eps {
		return s.Calc(r)
	}
	y := []float64{s.Calc(eps), -(s.Source / (2 * s.Chi)) * eps}
	err := s.sol.Solve(y, eps, r, r-eps, false)
	if err != nil {
		chk.Panic("ana: SteadyDiffusion.CalcNum failed: %v", err)
	}
	return y[0]
}

// LinearProfile is the S2 analytic reference: the steady, source-free
// linear profile between a fixed center value and a Dirichlet edge.
type LinearProfile struct {
	Center      float64
	Edge        float64
	MinorRadius float64
}

// Calc returns the closed-form linear value at radius r.
func (l LinearProfile) Calc(r float64) float64 {
	if l.MinorRadius <= 0 {
		return l.Center
	}
	t := r / l.MinorRadius
	return l.Center + (l.Edge-l.Center)*t
}

// Profile evaluates Calc at every given radius.
func (l LinearProfile) Profile(r []float64) []float64 {
	out := make([]float64, len(r))
	for i, ri := range r {
		out[i] = l.Calc(ri)
	}
	return out
}

// L2RelativeError computes the relative L2-norm difference between a
// numerical profile and an analytic reference, used by the S1/S2
// regression checks (spec §8: "within 2% L² norm").
func L2RelativeError(numeric, reference []float64) float64 {
	var num, den float64
	for i := range numeric {
		d := numeric[i] - reference[i]
		num += d * d
		den += reference[i] * reference[i]
	}
	if den == 0 {
		return 0
	}
	return math.Sqrt(num / den)
}
