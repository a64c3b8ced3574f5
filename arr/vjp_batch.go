// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package arr

// VJPBatch computes J^T*cotangent for several cotangents against the
// same primal, amortizing the Jacobian evaluation across the batch
// (spec §4.5 "batched variant"). Equivalent to calling VJP once per
// cotangent but evaluates the underlying Jacobian only once.
func (b *Backend) VJPBatch(primal []float64, cotangents [][]float64) [][]float64 {
	jac := b.Jacobian(primal)
	out := make([][]float64, len(cotangents))
	for k, cot := range cotangents {
		col := make([]float64, b.N)
		for j := 0; j < b.N; j++ {
			var s float64
			for i := 0; i < b.N; i++ {
				s += jac.At(i, j) * cot[i]
			}
			col[j] = s
		}
		out[k] = col
	}
	Eval()
	return out
}

// IdentityCotangents returns the N standard basis vectors e_0..e_{N-1},
// the cotangent set AssembleJacobian uses to recover the full Jacobian
// column-by-column from VJP (spec §4.5).
func IdentityCotangents(n int) [][]float64 {
	out := make([][]float64, n)
	for i := range out {
		e := make([]float64, n)
		e[i] = 1
		out[i] = e
	}
	return out
}
