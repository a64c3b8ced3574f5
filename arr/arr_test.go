// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package arr

import (
	"math"
	"testing"

	"github.com/cpmech/gosl/chk"
)

func TestElementwiseOps(t *testing.T) {
	chk.PrintTitle("elementwise ops")
	a := New([]float64{1, 2, 3})
	b := New([]float64{4, 5, 6})
	sum := Add(a, b)
	for i, v := range sum.Raw() {
		if v != a.At(i)+b.At(i) {
			t.Fatalf("Add[%d] = %v", i, v)
		}
	}
	prod := Mul(a, b)
	if prod.At(2) != 18 {
		t.Fatalf("Mul[2] = %v, want 18", prod.At(2))
	}
}

func TestClampAndReductions(t *testing.T) {
	chk.PrintTitle("clamp and reductions")
	a := New([]float64{-5, 0, 5, 10})
	c := a.Clamp(0, 5)
	want := []float64{0, 0, 5, 5}
	for i, v := range c.Raw() {
		if v != want[i] {
			t.Fatalf("Clamp[%d] = %v, want %v", i, v, want[i])
		}
	}
	if a.MaxElem() != 10 {
		t.Fatalf("MaxElem = %v, want 10", a.MaxElem())
	}
	if a.MinElem() != -5 {
		t.Fatalf("MinElem = %v, want -5", a.MinElem())
	}
}

func TestConcatSlice(t *testing.T) {
	chk.PrintTitle("concat/slice round trip")
	a := New([]float64{1, 2})
	b := New([]float64{3, 4, 5})
	c := Concat(a, b)
	if c.Len() != 5 {
		t.Fatalf("Concat length = %d, want 5", c.Len())
	}
	s := c.Slice(1, 4)
	want := []float64{2, 3, 4}
	for i, v := range s.Raw() {
		if v != want[i] {
			t.Fatalf("Slice[%d] = %v, want %v", i, v, want[i])
		}
	}
}

func TestVJPLinearSystem(t *testing.T) {
	chk.PrintTitle("VJP on a linear system recovers A^T")
	// R(x) = A*x - c, a simple linear residual with known Jacobian A.
	A := [][]float64{{2, 1}, {0, 3}}
	fn := func(x []float64) []float64 {
		return []float64{
			A[0][0]*x[0] + A[0][1]*x[1],
			A[1][0]*x[0] + A[1][1]*x[1],
		}
	}
	backend := NewBackend(fn, 2)
	primal := []float64{1, 1}
	for i, e := range IdentityCotangents(2) {
		col := backend.VJP(primal, e)
		for j := 0; j < 2; j++ {
			want := A[i][j]
			if math.Abs(col[j]-want) > 1e-6 {
				t.Fatalf("VJP column mismatch at (%d,%d): got %v want %v", i, j, col[j], want)
			}
		}
	}
}
