// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package solver

import (
	"math"
	"testing"

	"github.com/cpmech/gosl/chk"

	"github.com/cpmech/tokasim/arr"
	"github.com/cpmech/tokasim/coeff"
	"github.com/cpmech/tokasim/geometry"
	"github.com/cpmech/tokasim/state"
)

func buildGeometry(n int) *geometry.Geometry {
	mesh := geometry.NewMesh(n, 1.0)
	return geometry.Circular{}.Build(mesh, 3.0, 1.0, 5.0)
}

// constantDiffusionCoeffs builds Block1DCoeffs with a constant
// diffusivity and no sources/convection on every field, used to drive
// the Ti equation toward the S2 steady-state linear profile.
func constantDiffusionCoeffs(g *geometry.Geometry, chi float64) func(p state.CoreProfiles) coeff.Block1DCoeffs {
	n := g.Mesh.NCells
	return func(p state.CoreProfiles) coeff.Block1DCoeffs {
		flat := coeff.EquationCoeffs{
			DFace:          arr.New(coeff.HarmonicFaces(arr.Full(n, chi).Raw())),
			VFace:          arr.Zeros(g.Mesh.NFaces),
			SourceCell:     arr.Zeros(n),
			SourceMatCell:  arr.Zeros(n),
			TransientCoeff: arr.Full(n, 1.0),
		}
		return coeff.Block1DCoeffs{Ti: flat, Te: flat, Ne: flat, Psi: flat, Geometry: g}
	}
}

func TestNewtonConvergesLinearProfile(t *testing.T) {
	chk.PrintTitle("Newton solver converges to S2 linear steady profile")
	n := 20
	g := buildGeometry(n)

	ti0 := make([]float64, n)
	for i := range ti0 {
		ti0[i] = 5000 // flat initial guess, far from the linear steady state
	}
	profiles := state.NewCoreProfilesScalarZeff(
		arr.New(ti0), arr.New(ti0), arr.Full(n, 1e19), arr.Zeros(n), 1.5,
	)

	bc := state.BoundaryConditions{
		Ti:  state.FieldBC{Left: state.SymmetricAxis(), Right: state.ValueBC(100)},
		Te:  state.FieldBC{Left: state.SymmetricAxis(), Right: state.ValueBC(100)},
		Ne:  state.FieldBC{Left: state.SymmetricAxis(), Right: state.ValueBC(1e19)},
		Psi: state.FieldBC{Left: state.SymmetricAxis(), Right: state.ValueBC(0)},
	}
	// The diffusive residual here treats Ti(0) as an implicit Dirichlet
	// condition via Left: a zero-gradient axis BC does not by itself pin
	// the axis value, so the steady profile is linear in r across the
	// whole domain between the imposed axis flux and the edge value.
	bc.Ti.Left = state.ValueBC(10000)

	coeffsFn := constantDiffusionCoeffs(g, 2.0)
	oldCoeffs := coeffsFn(profiles)

	opt := DefaultOptions()
	opt.Dt = 50.0
	opt.Theta = 1.0 // fully implicit, drives straight to the steady solution

	// Run several steps so the implicit diffusion equation relaxes from
	// the flat initial guess to the linear steady profile.
	for step := 0; step < 40; step++ {
		result, err := Solve(profiles, oldCoeffs, bc, coeffsFn, state.DefaultScales(), opt)
		if err != nil {
			t.Fatalf("step %d: Newton solve failed: %v", step, err)
		}
		profiles = result.Profiles
		oldCoeffs = coeffsFn(profiles)
	}

	mid := n / 2
	want := (10000.0 + 100.0) / 2
	got := profiles.Ti.At(mid)
	if math.Abs(got-want)/want > 0.05 {
		t.Fatalf("midpoint Ti = %v, want ~%v (S2 linear profile)", got, want)
	}
}

func TestDisabledFieldIsHeldAtItsOldValue(t *testing.T) {
	chk.PrintTitle("evolution.density=false freezes Ne even as Ti relaxes (spec §6 evolution flags)")
	n := 10
	g := buildGeometry(n)

	ti0 := arr.Full(n, 5000.0)
	ne0 := arr.Full(n, 1e19)
	profiles := state.NewCoreProfilesScalarZeff(ti0, ti0, ne0, arr.Zeros(n), 1.5)

	bc := state.BoundaryConditions{
		Ti:  state.FieldBC{Left: state.ValueBC(10000), Right: state.ValueBC(100)},
		Te:  state.FieldBC{Left: state.ValueBC(10000), Right: state.ValueBC(100)},
		Ne:  state.FieldBC{Left: state.SymmetricAxis(), Right: state.ValueBC(5e19)}, // would pull Ne away from 1e19 if evolved
		Psi: state.FieldBC{Left: state.SymmetricAxis(), Right: state.ValueBC(0)},
	}
	coeffsFn := constantDiffusionCoeffs(g, 2.0)
	oldCoeffs := coeffsFn(profiles)

	opt := DefaultOptions()
	opt.Dt = 50.0
	opt.Theta = 1.0
	opt.Evolve = EvolveMask{Ti: true, Te: true, Ne: false, Psi: false}

	result, err := Solve(profiles, oldCoeffs, bc, coeffsFn, state.DefaultScales(), opt)
	if err != nil {
		t.Fatalf("Newton solve failed: %v", err)
	}
	for i := 0; i < n; i++ {
		if math.Abs(result.Profiles.Ne.At(i)-1e19) > 1e-6 {
			t.Fatalf("Ne[%d] = %v, want unchanged 1e19 (density evolution disabled)", i, result.Profiles.Ne.At(i))
		}
	}
	if math.Abs(result.Profiles.Ti.At(0)-result.Profiles.Ti.At(n-1)) < 1e-6 {
		t.Fatalf("Ti should still relax toward the linear profile while enabled")
	}
}

func TestSolveSurfacesConvergenceFailure(t *testing.T) {
	chk.PrintTitle("Newton solve surfaces SolverConvergence on an unreachable tolerance")
	n := 5
	g := buildGeometry(n)
	ti0 := arr.Full(n, 1000.0)
	profiles := state.NewCoreProfilesScalarZeff(ti0, ti0, arr.Full(n, 1e19), arr.Zeros(n), 1.5)
	bc := state.BoundaryConditions{
		Ti:  state.FieldBC{Left: state.SymmetricAxis(), Right: state.ValueBC(100)},
		Te:  state.FieldBC{Left: state.SymmetricAxis(), Right: state.ValueBC(100)},
		Ne:  state.FieldBC{Left: state.SymmetricAxis(), Right: state.ValueBC(1e19)},
		Psi: state.FieldBC{Left: state.SymmetricAxis(), Right: state.ValueBC(0)},
	}
	coeffsFn := constantDiffusionCoeffs(g, 2.0)
	oldCoeffs := coeffsFn(profiles)
	opt := DefaultOptions()
	opt.Dt = 50.0
	opt.Theta = 1.0
	opt.MaxIterations = 1
	opt.Tolerance = 1e-300 // unreachable in one iteration

	_, err := Solve(profiles, oldCoeffs, bc, coeffsFn, state.DefaultScales(), opt)
	if err == nil {
		t.Fatalf("expected a SolverConvergence failure, got nil")
	}
}
