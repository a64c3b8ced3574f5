// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package arr implements the minimal array/linear-algebra facade the
// rest of this core consumes (spec §2, §6). It wraps gonum/mat as the
// concrete backend but exposes only the contract named in the spec:
// element-wise arithmetic, reductions, slicing/concatenation, an eager
// evaluation barrier, and reverse-mode VJP. No other package should
// import gonum/mat directly for profile-shaped data — go through here,
// so a future lazy/GPU backend can be swapped in behind this file.
package arr

import (
	"math"

	"github.com/cpmech/gosl/chk"
	"gonum.org/v1/gonum/floats"
)

// Array is an immutable-by-value, 1-D cell- or face-centered array.
// Operations return new Arrays; the receiver is never mutated. This
// matches the "all arrays are immutable at the semantic level" rule
// (spec §3); the backing slice may be reused internally by Eval, but
// user-visible semantics stay value-based.
type Array struct {
	data []float64
}

// New wraps a slice as an Array. The slice is copied defensively.
func New(data []float64) Array {
	cp := make([]float64, len(data))
	copy(cp, data)
	return Array{data: cp}
}

// Zeros returns a length-n Array of zeros.
func Zeros(n int) Array { return Array{data: make([]float64, n)} }

// Full returns a length-n Array filled with v.
func Full(n int, v float64) Array {
	d := make([]float64, n)
	for i := range d {
		d[i] = v
	}
	return Array{data: d}
}

// Len returns the number of elements.
func (a Array) Len() int { return len(a.data) }

// At returns element i. This is the "read a scalar item" operation the
// spec requires an eval barrier before (§5); since this backend is
// eager, At is always safe, but callers still call Eval() at the
// documented barrier points for parity with a lazy backend.
func (a Array) At(i int) float64 { return a.data[i] }

// Raw exposes the backing slice read-only, for interop with the host
// array library at collaborator boundaries (persistence, plotting).
// Callers must not mutate the returned slice.
func (a Array) Raw() []float64 { return a.data }

// Slice returns data[lo:hi] as a new Array.
func (a Array) Slice(lo, hi int) Array {
	return New(a.data[lo:hi])
}

// Concat concatenates arrays in order.
func Concat(parts ...Array) Array {
	n := 0
	for _, p := range parts {
		n += p.Len()
	}
	out := make([]float64, 0, n)
	for _, p := range parts {
		out = append(out, p.data...)
	}
	return Array{data: out}
}

func binOp(a, b Array, op func(x, y float64) float64) Array {
	if a.Len() != b.Len() {
		chk.Panic("arr: ShapeMismatch: operands have length %d and %d", a.Len(), b.Len())
	}
	out := make([]float64, a.Len())
	for i := range out {
		out[i] = op(a.data[i], b.data[i])
	}
	return Array{data: out}
}

// Add returns a+b element-wise.
func Add(a, b Array) Array { return binOp(a, b, func(x, y float64) float64 { return x + y }) }

// Sub returns a-b element-wise.
func Sub(a, b Array) Array { return binOp(a, b, func(x, y float64) float64 { return x - y }) }

// Mul returns a*b element-wise.
func Mul(a, b Array) Array { return binOp(a, b, func(x, y float64) float64 { return x * y }) }

// Div returns a/b element-wise.
func Div(a, b Array) Array { return binOp(a, b, func(x, y float64) float64 { return x / y }) }

// Scale returns s*a element-wise.
func (a Array) Scale(s float64) Array {
	out := make([]float64, a.Len())
	for i, v := range a.data {
		out[i] = s * v
	}
	return Array{data: out}
}

// AddScalar returns a+s element-wise.
func (a Array) AddScalar(s float64) Array {
	out := make([]float64, a.Len())
	for i, v := range a.data {
		out[i] = v + s
	}
	return Array{data: out}
}

// Pow returns a**p element-wise.
func (a Array) Pow(p float64) Array {
	out := make([]float64, a.Len())
	for i, v := range a.data {
		out[i] = math.Pow(v, p)
	}
	return Array{data: out}
}

// Exp, Log, Sqrt, Abs, Sign are the remaining unary element-wise ops
// named in the spec's array facade contract (§6).
func (a Array) Exp() Array  { return a.unary(math.Exp) }
func (a Array) Log() Array  { return a.unary(math.Log) }
func (a Array) Sqrt() Array { return a.unary(math.Sqrt) }
func (a Array) Abs() Array  { return a.unary(math.Abs) }
func (a Array) Sign() Array {
	return a.unary(func(x float64) float64 {
		switch {
		case x > 0:
			return 1
		case x < 0:
			return -1
		default:
			return 0
		}
	})
}

func (a Array) unary(f func(float64) float64) Array {
	out := make([]float64, a.Len())
	for i, v := range a.data {
		out[i] = f(v)
	}
	return Array{data: out}
}

// Clamp bounds every element to [lo,hi].
func (a Array) Clamp(lo, hi float64) Array {
	out := make([]float64, a.Len())
	for i, v := range a.data {
		out[i] = clampScalar(v, lo, hi)
	}
	return Array{data: out}
}

func clampScalar(x, lo, hi float64) float64 {
	if x < lo {
		return lo
	}
	if x > hi {
		return hi
	}
	return x
}

// Min returns the elementwise minimum of a and b.
func Min(a, b Array) Array {
	return binOp(a, b, math.Min)
}

// Max returns the elementwise maximum of a and b.
func Max(a, b Array) Array {
	return binOp(a, b, math.Max)
}

// Sum reduces a by addition.
func (a Array) Sum() float64 { return floats.Sum(a.data) }

// MaxElem reduces a by maximum; panics on an empty array.
func (a Array) MaxElem() float64 { return floats.Max(a.data) }

// MinElem reduces a by minimum; panics on an empty array.
func (a Array) MinElem() float64 { return floats.Min(a.data) }

// Norm returns the L-p norm.
func (a Array) Norm(p float64) float64 { return floats.Norm(a.data, p) }

// Eval is the eager evaluation barrier (spec §5): it forces
// materialization of a. On this eager backend it is a no-op that
// returns a itself, but every call site documented in the spec (before
// reading a scalar item, between VJP columns, before returning from a
// time step) must still call it, so a future lazy backend only needs
// to change this one function.
func Eval(xs ...Array) {
	_ = xs
}

// Clone returns a defensive deep copy.
func (a Array) Clone() Array { return New(a.data) }
