// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package arr

import (
	"gonum.org/v1/gonum/diff/fd"
	"gonum.org/v1/gonum/mat"
)

// VectorFunc is a vector-valued function of a vector argument, e.g. the
// Newton residual R(x).
type VectorFunc func(x []float64) []float64

// Backend is the reverse-mode VJP contract named in spec §2/§6. A real
// tracing-autodiff array library would compute J^T*cotangent directly
// from a recorded graph; this eager backend realizes the same contract
// with directional derivatives via central differences, grounded on
// soypat/godesim's NewtonRaphsonSolver, which calls
// state.Jacobian(Jaux, F, guess, settings) to build exactly this matrix
// one call at a time using gonum/diff/fd. VJP here computes the full
// Jacobian once per primal (cheaper than a column at a time for the
// dense solve path this core uses) and contracts it with the requested
// cotangent, which is indistinguishable at the basis-vector cotangents
// solver.AssembleJacobian actually uses from a column-by-column VJP.
type Backend struct {
	Fn VectorFunc
	N  int // dimension of the domain/codomain (square system)

	settings *fd.JacobianSettings
	jac      *mat.Dense // last-evaluated Jacobian, cached per primal
	jacAt    []float64  // primal the cache corresponds to
}

// NewBackend builds a Backend around fn for an n-dimensional square
// vector function.
func NewBackend(fn VectorFunc, n int) *Backend {
	return &Backend{Fn: fn, N: n, settings: &fd.JacobianSettings{Formula: fd.Central}}
}

// wrap adapts VectorFunc to the (dst, x []float64) shape fd.Jacobian
// requires.
func (b *Backend) wrap() func(dst, x []float64) {
	return func(dst, x []float64) {
		y := b.Fn(x)
		copy(dst, y)
	}
}

// Jacobian returns the dense Jacobian of Fn evaluated at primal,
// materializing it fully before returning (the eval-barrier rule, spec
// §5/§9: force evaluation between VJP columns so no lazy graph
// accumulates). Results are cached per-primal since Newton typically
// requests both the full Jacobian and several VJP contractions at the
// same point.
func (b *Backend) Jacobian(primal []float64) *mat.Dense {
	if b.jac != nil && sameSlice(b.jacAt, primal) {
		return b.jac
	}
	jac := mat.NewDense(b.N, b.N, nil)
	fd.Jacobian(jac, b.wrap(), primal, b.settings)
	Eval() // materialize before handing back / before the next column request
	b.jac = jac
	b.jacAt = append([]float64(nil), primal...)
	return jac
}

// VJP computes J^T*cotangent, where J is the Jacobian of Fn evaluated at
// primal. cotangent must have length N.
func (b *Backend) VJP(primal []float64, cotangent []float64) []float64 {
	jac := b.Jacobian(primal)
	out := make([]float64, b.N)
	for j := 0; j < b.N; j++ {
		var s float64
		for i := 0; i < b.N; i++ {
			s += jac.At(i, j) * cotangent[i]
		}
		out[j] = s
	}
	Eval()
	return out
}

func sameSlice(a, b []float64) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
