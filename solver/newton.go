// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package solver

import (
	"math"

	"gonum.org/v1/exp/linsolve"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"

	"github.com/cpmech/tokasim/arr"
	"github.com/cpmech/tokasim/coeff"
	"github.com/cpmech/tokasim/geometry"
	"github.com/cpmech/tokasim/simerr"
	"github.com/cpmech/tokasim/state"
)

// Method selects the linear-algebra backend behind the Newton step
// (spec §6 solver.type, DESIGN.md open-question decision).
type Method int

const (
	// Dense solves J*dx = -R via gonum/mat.VecDense.SolveVec, the default
	// path for "newtonRaphson"/"linear", grounded on soypat/godesim's
	// NewtonRaphsonSolver.
	Dense Method = iota
	// Iterative solves the same system with the gonum/exp/linsolve GMRES
	// path, used when config.Solver.Type == "optimizer".
	Iterative
)

// CoeffsFn recomputes the finite-volume coefficients from a trial
// profile, recomputing transport and sources on every Newton iteration
// so implicit inter-equation coupling (Q_exchange, eta(Te), J_BS) is
// captured (spec §4.4 "recomputing sources inside the residual at each
// Newton iteration").
type CoeffsFn func(p state.CoreProfiles) coeff.Block1DCoeffs

// EvolveMask selects which of the four coupled fields are actually
// advanced this step (spec §6 evolution.{ionHeat,electronHeat,density,
// current}). A field with its flag false is held fixed at its old
// value: its residual block is replaced by the identity newVal-oldVal,
// which Newton satisfies at newVal==oldVal regardless of the other
// three fields' coupling, so a "disabled" field neither evolves nor
// perturbs the fields that remain enabled.
type EvolveMask struct {
	Ti, Te, Ne, Psi bool
}

// AllEvolveMask evolves every field, the default when the config names
// no exclusions.
func AllEvolveMask() EvolveMask { return EvolveMask{Ti: true, Te: true, Ne: true, Psi: true} }

// Options configures one Newton-Raphson solve (spec §4.5).
type Options struct {
	Method        Method
	Tolerance     float64 // default 1e-6
	MaxIterations int     // default 30
	Theta         float64 // theta-method weight, spec §4.4
	Dt            float64
	Evolve        EvolveMask
}

// DefaultOptions returns the spec-default tolerance/iteration budget.
func DefaultOptions() Options {
	return Options{Method: Dense, Tolerance: 1e-6, MaxIterations: 30, Theta: 0.5, Evolve: AllEvolveMask()}
}

// Result carries the converged state and iteration diagnostics back to
// the integrator.
type Result struct {
	Profiles   state.CoreProfiles
	Iterations int
	ResidualNorm float64
}

// Solve runs Newton-Raphson in scaled coordinates (spec §4.5) from old
// to new state over one theta-method step. oldCoeffs are the
// coefficients evaluated at the old profiles (used for the explicit
// (1-theta) flux); coeffsFn recomputes the implicit coefficients from
// the current Newton iterate.
func Solve(old state.CoreProfiles, oldCoeffs coeff.Block1DCoeffs, bc state.BoundaryConditions, coeffsFn CoeffsFn, scale state.Scales, opt Options) (Result, error) {
	oldFlat := state.Flatten(old, scale)
	n := oldFlat.N
	size := oldFlat.Size()

	residual := func(xScaled []float64) []float64 {
		unscaled := oldFlat.Unscaled(arr.New(xScaled))
		profiles := oldFlat.WithValues(unscaled).Unflatten(old.Zeff)
		newCoeffs := coeffsFn(profiles)

		rTi := fieldResidual(opt.Evolve.Ti, unscaled.Raw()[0:n], oldFlat.Values.Raw()[0:n], newCoeffs.Ti, oldCoeffs.Ti, bc.Ti, newCoeffs.Geometry, opt.Dt, opt.Theta)
		rTe := fieldResidual(opt.Evolve.Te, unscaled.Raw()[n:2*n], oldFlat.Values.Raw()[n:2*n], newCoeffs.Te, oldCoeffs.Te, bc.Te, newCoeffs.Geometry, opt.Dt, opt.Theta)
		rNe := fieldResidual(opt.Evolve.Ne, unscaled.Raw()[2*n:3*n], oldFlat.Values.Raw()[2*n:3*n], newCoeffs.Ne, oldCoeffs.Ne, bc.Ne, newCoeffs.Geometry, opt.Dt, opt.Theta)
		rPsi := fieldResidual(opt.Evolve.Psi, unscaled.Raw()[3*n:4*n], oldFlat.Values.Raw()[3*n:4*n], newCoeffs.Psi, oldCoeffs.Psi, bc.Psi, newCoeffs.Geometry, opt.Dt, opt.Theta)

		raw := make([]float64, 0, size)
		raw = append(raw, rTi...)
		raw = append(raw, rTe...)
		raw = append(raw, rNe...)
		raw = append(raw, rPsi...)

		// Non-dimensionalize the residual by the same reference scale so
		// the convergence tolerance is comparable across the four fields
		// with wildly different physical magnitudes (spec §4.5).
		scaleVec := oldFlat.ScaleVector().Raw()
		for i := range raw {
			raw[i] /= scaleVec[i]
		}
		return raw
	}

	backend := arr.NewBackend(residual, size)

	x := append([]float64(nil), oldFlat.Scaled().Raw()...)
	var resNorm float64
	iter := 0
	for ; iter < opt.MaxIterations; iter++ {
		r := residual(x)
		resNorm = floats.Norm(r, 2)
		if resNorm < opt.Tolerance {
			break
		}
		dx, err := newtonStep(backend, x, r, opt.Method)
		if err != nil {
			return Result{}, simerr.Wrap(simerr.SolverConvergence, err, "newton: linear solve failed at iteration %d", iter)
		}
		for i := range x {
			x[i] += dx[i]
		}
		stepNorm := floats.Norm(dx, 2)
		if stepNorm < opt.Tolerance {
			r = residual(x)
			resNorm = floats.Norm(r, 2)
			iter++
			break
		}
		if anyNonFinite(x) || anyNonFinite(r) {
			return Result{}, simerr.New(simerr.NumericalInstability, "newton: non-finite value at iteration %d", iter)
		}
	}
	if resNorm >= opt.Tolerance {
		return Result{}, simerr.New(simerr.SolverConvergence, "newton: failed to converge within %d iterations (||R||=%v, tol=%v)", opt.MaxIterations, resNorm, opt.Tolerance)
	}

	unscaled := oldFlat.Unscaled(arr.New(x))
	profiles := oldFlat.WithValues(unscaled).Unflatten(old.Zeff)
	return Result{Profiles: profiles, Iterations: iter, ResidualNorm: resNorm}, nil
}

// fieldResidual computes the normal theta-method residual when evolve
// is true, or an identity residual (newVal-oldVal) when false, freezing
// that field's block at its old value (spec §6 evolution.* flags).
func fieldResidual(evolve bool, newVal, oldVal []float64, ecNew, ecOld coeff.EquationCoeffs, bc state.FieldBC, g *geometry.Geometry, dt, theta float64) []float64 {
	if evolve {
		return EquationResidual(newVal, oldVal, ecNew, ecOld, bc, g, dt, theta)
	}
	res := make([]float64, len(newVal))
	for i := range res {
		res[i] = newVal[i] - oldVal[i]
	}
	return res
}

// newtonStep solves J*dx = -R for the Newton update, dispatching on
// Method (spec §9 open question: "optimizer" -> iterative GMRES).
func newtonStep(backend *arr.Backend, x, r []float64, method Method) ([]float64, error) {
	jac := backend.Jacobian(x)
	n := len(x)
	neg := make([]float64, n)
	for i := range r {
		neg[i] = -r[i]
	}

	switch method {
	case Iterative:
		b := mat.NewVecDense(n, neg)
		result, err := linsolve.Iterative(jac, b, &linsolve.GMRES{}, nil)
		if err != nil {
			return nil, err
		}
		return result.X.RawVector().Data, nil
	default:
		dx := mat.NewVecDense(n, nil)
		err := dx.SolveVec(jac, mat.NewVecDense(n, neg))
		if err != nil {
			return nil, err
		}
		return dx.RawVector().Data, nil
	}
}

func anyNonFinite(v []float64) bool {
	for _, x := range v {
		if math.IsNaN(x) || math.IsInf(x, 0) {
			return true
		}
	}
	return false
}
