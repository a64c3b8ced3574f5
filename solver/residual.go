// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package solver implements the coupled Newton-Raphson solver (spec
// §4.4, §4.5): theta-method finite-volume residual assembly and
// VJP-based Jacobian construction in scaled coordinates.
package solver

import (
	"github.com/cpmech/tokasim/coeff"
	"github.com/cpmech/tokasim/geometry"
	"github.com/cpmech/tokasim/state"
)

// faceFlux computes the conservative flux F_j = A_j*[-d_j*(f_i-f_{i-1})/dx_j
// + v_j*f_hat_j] at every interior face, and applies the boundary
// constraint at the two mesh-edge faces in place of extrapolation (spec
// §4.4).
func faceFlux(f []float64, dFace, vFace []float64, bc state.FieldBC, g *geometry.Geometry) []float64 {
	n := len(f)
	flux := make([]float64, n+1)
	dr := g.Mesh.Dr
	halfDr := dr / 2

	// left boundary face (axis)
	flux[0] = boundaryFlux(bc.Left, f[0], dFace[0], g.FaceAreas[0], halfDr, true)

	// interior faces
	for j := 1; j < n; j++ {
		a := g.FaceAreas[j]
		diffusive := -dFace[j] * (f[j] - f[j-1]) / dr
		fHat := coeff.FaceValuePowerLaw(f[j-1], f[j], vFace[j], dr, dFace[j])
		convective := vFace[j] * fHat
		flux[j] = a * (diffusive + convective)
	}

	// right boundary face (edge)
	flux[n] = boundaryFlux(bc.Right, f[n-1], dFace[n], g.FaceAreas[n], halfDr, false)

	return flux
}

// boundaryFlux evaluates the flux at a mesh-edge face from its
// Dirichlet/Neumann constraint, replacing the would-be extrapolated
// value (spec §4.4 "Boundary constraints replace the boundary-face flux
// by the specified Dirichlet or Neumann value"). Convective transport
// at the boundary is neglected relative to the imposed diffusive/
// gradient flux, a standard simplification for fixed-value/fixed-
// gradient edges.
func boundaryFlux(c state.Constraint, adjacent, d, area, halfDr float64, isLeft bool) float64 {
	switch c.Kind {
	case state.Gradient:
		grad := c.V
		if isLeft {
			// symmetric axis: zero diffusive flux by convention when grad==0
			return -area * d * grad
		}
		return area * (-d * grad)
	default: // Value (Dirichlet)
		if isLeft {
			return area * (-d * (adjacent - c.V) / halfDr)
		}
		return area * (-d * (c.V - adjacent) / halfDr)
	}
}

// divergence returns rightFlux-leftFlux per cell.
func divergence(flux []float64) []float64 {
	n := len(flux) - 1
	div := make([]float64, n)
	for i := 0; i < n; i++ {
		div[i] = flux[i+1] - flux[i]
	}
	return div
}

// EquationResidual computes the per-cell theta-method residual for one
// field (spec §4.4):
//
//	(V_i*transient_i)*(f_i^{n+1}-f_i^n)/dt
//	  + theta*(divF)^{n+1} + (1-theta)*(divF)^n
//	  - V_i*(source_i + source_mat_i*f_i^{n+1}) = 0
func EquationResidual(newVal, oldVal []float64, ecNew, ecOld coeff.EquationCoeffs, bc state.FieldBC, g *geometry.Geometry, dt, theta float64) []float64 {
	n := len(newVal)
	fluxNew := faceFlux(newVal, ecNew.DFace.Raw(), ecNew.VFace.Raw(), bc, g)
	fluxOld := faceFlux(oldVal, ecOld.DFace.Raw(), ecOld.VFace.Raw(), bc, g)
	divNew := divergence(fluxNew)
	divOld := divergence(fluxOld)

	res := make([]float64, n)
	vol := g.CellVolumes
	for i := 0; i < n; i++ {
		transient := vol[i] * ecNew.TransientCoeff.At(i) * (newVal[i] - oldVal[i]) / dt
		divTerm := theta*divNew[i] + (1-theta)*divOld[i]
		source := vol[i] * (ecNew.SourceCell.At(i) + ecNew.SourceMatCell.At(i)*newVal[i])
		res[i] = transient + divTerm - source
	}
	return res
}
