// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package geometry

import (
	"math"

	"github.com/cpmech/gosl/chk"
)

// clamp bounds x to [lo,hi].
func clamp(x, lo, hi float64) float64 {
	if x < lo {
		return lo
	}
	if x > hi {
		return hi
	}
	return x
}

// Geometry holds the cylindrical-approximation metric data for a Mesh
// (spec §3/§4.1). Geometry is built once per run (Provider.Build); after
// that only UpdateSafetyFactor changes it, rewriting SafetyFactor and
// PoloidalB from the current psi before each coefficient rebuild.
type Geometry struct {
	Mesh *Mesh

	MajorRadius  float64 // R0 [m]
	MinorRadius  float64 // a  [m]
	ToroidalB    float64 // B_phi [T]

	CellVolumes []float64 // V [NCells], m^3
	FaceAreas   []float64 // A [NFaces], m^2

	CellRadii []float64 // r [NCells]
	FaceRadii []float64 // r [NFaces]

	// metric factors: g1 (face), g0/g2 cell-centered by averaging of
	// face values, per spec §3.
	G1Face []float64 // [NFaces]
	G0Cell []float64 // [NCells]
	G2Cell []float64 // [NCells]

	// optional MHD-adjacent fields, populated from Psi when available.
	SafetyFactor []float64 // q(rho) [NCells], clamped to [0.3, 20]
	PoloidalB    []float64 // B_theta [NCells]
}

// Provider builds a Geometry from mesh parameters. Concrete providers
// correspond to config.geometryType: circular | chease | eqdsk.
type Provider interface {
	Build(m *Mesh, r0, a, bPhi float64) *Geometry
}

// Circular is the cylindrical-approximation geometry provider: the only
// provider this core computes analytically (spec §1: "geometry is
// parameterized, not computed").
type Circular struct{}

// Build constructs a cylindrical-approximation Geometry.
//
//	V_i = 2*pi*R0*dr      (uniform cell volume)
//	A_j = 2*pi*R0         (face area, independent of j in this approximation)
func (Circular) Build(m *Mesh, r0, a, bPhi float64) *Geometry {
	if r0 <= 0 || a <= 0 {
		chk.Panic("geometry: R0 and minorRadius must be > 0 (got R0=%v a=%v)", r0, a)
	}
	g := &Geometry{
		Mesh:        m,
		MajorRadius: r0,
		MinorRadius: a,
		ToroidalB:   bPhi,
		CellRadii:   m.CellRadii(),
		FaceRadii:   m.FaceRadii(),
	}
	vCell := 2.0 * math.Pi * r0 * m.Dr
	aFace := 2.0 * math.Pi * r0
	g.CellVolumes = make([]float64, m.NCells)
	g.FaceAreas = make([]float64, m.NFaces)
	for i := range g.CellVolumes {
		g.CellVolumes[i] = vCell
	}
	for j := range g.FaceAreas {
		g.FaceAreas[j] = aFace
	}
	g.G1Face = make([]float64, m.NFaces)
	for j := range g.G1Face {
		g.G1Face[j] = 1.0
	}
	g.G0Cell = faceToCellAverage(g.G1Face)
	g.G2Cell = faceToCellAverage(g.G1Face)
	return g
}

// faceToCellAverage derives a cell-centered metric factor by arithmetic
// averaging of the two adjacent face values, per spec §3.
func faceToCellAverage(face []float64) []float64 {
	n := len(face) - 1
	cell := make([]float64, n)
	for i := 0; i < n; i++ {
		cell[i] = 0.5 * (face[i] + face[i+1])
	}
	return cell
}

// UpdateSafetyFactor derives q(rho) and B_theta from the poloidal flux
// psi [NCells], per spec §4.1:
//
//	B_theta = (1/r) dpsi/dr
//	q       = r*B_phi / (R0*B_theta), clamped to [0.3, 20]
func (g *Geometry) UpdateSafetyFactor(psi []float64) {
	g.Mesh.checkCellShape("psi", psi)
	n := g.Mesh.NCells
	g.PoloidalB = make([]float64, n)
	g.SafetyFactor = make([]float64, n)
	for i := 0; i < n; i++ {
		var dpsidr float64
		switch {
		case i == 0:
			dpsidr = (psi[1] - psi[0]) / g.Mesh.Dr
		case i == n-1:
			dpsidr = (psi[i] - psi[i-1]) / g.Mesh.Dr
		default:
			dpsidr = (psi[i+1] - psi[i-1]) / (2 * g.Mesh.Dr)
		}
		r := g.CellRadii[i]
		if r < 1e-12 {
			r = 1e-12
		}
		bTheta := dpsidr / r
		g.PoloidalB[i] = bTheta
		var q float64
		if math.Abs(bTheta) < 1e-30 {
			q = 20
		} else {
			q = r * g.ToroidalB / (g.MajorRadius * bTheta)
		}
		g.SafetyFactor[i] = clamp(math.Abs(q), 0.3, 20)
	}
}

// MagneticShear computes s_hat = (r/q) dq/dr, clamped to [-5, 5].
// UpdateSafetyFactor must have been called first.
func (g *Geometry) MagneticShear() []float64 {
	if g.SafetyFactor == nil {
		chk.Panic("geometry: MagneticShear requires UpdateSafetyFactor to be called first")
	}
	n := g.Mesh.NCells
	shear := make([]float64, n)
	for i := 0; i < n; i++ {
		var dqdr float64
		switch {
		case i == 0:
			dqdr = (g.SafetyFactor[1] - g.SafetyFactor[0]) / g.Mesh.Dr
		case i == n-1:
			dqdr = (g.SafetyFactor[i] - g.SafetyFactor[i-1]) / g.Mesh.Dr
		default:
			dqdr = (g.SafetyFactor[i+1] - g.SafetyFactor[i-1]) / (2 * g.Mesh.Dr)
		}
		r := g.CellRadii[i]
		q := g.SafetyFactor[i]
		if q < 1e-12 {
			q = 1e-12
		}
		shear[i] = clamp(r/q*dqdr, -5, 5)
	}
	return shear
}

// InverseAspectRatio returns epsilon = r/R0 for each cell, clamped to 0.99
// as required by the trapped-fraction formula (spec §4.2).
func (g *Geometry) InverseAspectRatio() []float64 {
	eps := make([]float64, len(g.CellRadii))
	for i, r := range g.CellRadii {
		eps[i] = clamp(r/g.MajorRadius, 0, 0.99)
	}
	return eps
}
