// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package coeff implements the finite-volume coefficient builder (spec
// §4.3): harmonic/arithmetic face interpolation, the Patankar power-law
// advection-diffusion scheme, and per-equation (d_face, v_face,
// source_cell, source_mat_cell, transient_coeff) assembly.
package coeff

import "math"

// harmonicEps regularizes harmonic interpolation against exact zeros
// (spec §4.3).
const harmonicEps = 1e-30

// HarmonicFace computes the harmonic mean of two cell values as
// 2/(1/a+1/b), never 2ab/(a+b): the direct form overflows for large
// values (Ne ~ 1e20) and is forbidden by spec §4.3 (regression test:
// spec §8 S6).
func HarmonicFace(a, b float64) float64 {
	a += harmonicEps
	b += harmonicEps
	return 2.0 / (1.0/a + 1.0/b)
}

// ArithmeticFace computes the arithmetic mean of two cell values.
func ArithmeticFace(a, b float64) float64 {
	return 0.5 * (a + b)
}

// HarmonicFaces computes the harmonic-mean face array from a
// cell-centered array, inheriting the adjacent cell value at the two
// boundary faces (no extrapolation, spec §4.3).
func HarmonicFaces(cell []float64) []float64 {
	n := len(cell)
	face := make([]float64, n+1)
	face[0] = cell[0]
	face[n] = cell[n-1]
	for j := 1; j < n; j++ {
		face[j] = HarmonicFace(cell[j-1], cell[j])
	}
	return face
}

// ArithmeticFaces computes the arithmetic-mean face array from a
// cell-centered array, inheriting the adjacent cell value at the two
// boundary faces.
func ArithmeticFaces(cell []float64) []float64 {
	n := len(cell)
	face := make([]float64, n+1)
	face[0] = cell[0]
	face[n] = cell[n-1]
	for j := 1; j < n; j++ {
		face[j] = ArithmeticFace(cell[j-1], cell[j])
	}
	return face
}

// PowerLawWeight returns the Patankar power-law weight alpha(Pe) in
// [0,1] (spec §4.3, §8 #5):
//
//	alpha = max(0, (1-0.1|Pe|)^5),   alpha = 0 for |Pe| > 10
func PowerLawWeight(pe float64) float64 {
	absPe := math.Abs(pe)
	if absPe > 10 {
		return 0
	}
	w := 1 - 0.1*absPe
	if w < 0 {
		return 0
	}
	return math.Pow(w, 5)
}

// Peclet returns the face Peclet number Pe = v*dx/D.
func Peclet(v, dx, d float64) float64 {
	if d < harmonicEps {
		d = harmonicEps
	}
	return v * dx / d
}

// FaceValuePowerLaw returns the power-law-weighted face value of a
// transported scalar, blending the central value with the upwind cell
// value by weight alpha (spec §4.3):
//
//	f_face = alpha*central + (1-alpha)*upwind
//
// upwind is cellLeft when v >= 0 (flow from left to right) and
// cellRight when v < 0. In pure convection (alpha=0) this reduces
// exactly to the upwind value (spec §8 #6).
func FaceValuePowerLaw(cellLeft, cellRight, v, dx, d float64) float64 {
	central := ArithmeticFace(cellLeft, cellRight)
	pe := Peclet(v, dx, d)
	alpha := PowerLawWeight(pe)
	var upwind float64
	if v >= 0 {
		upwind = cellLeft
	} else {
		upwind = cellRight
	}
	return alpha*central + (1-alpha)*upwind
}
