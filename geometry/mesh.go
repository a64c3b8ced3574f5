// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package geometry implements the radial mesh and the cylindrical-
// approximation geometry used by the transport equations.
package geometry

import (
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/utl"
)

// Mesh holds the fixed 1-D radial grid. Spacing is uniform; non-uniform
// spacing is a documented future extension (see spec §3).
type Mesh struct {
	NCells int     // number of cells
	NFaces int     // number of faces == NCells+1
	Dr     float64 // cell width [m]
}

// NewMesh builds a uniform mesh with nCells cells spanning [0, minorRadius].
func NewMesh(nCells int, minorRadius float64) *Mesh {
	if nCells <= 0 {
		chk.Panic("geometry: nCells must be > 0 (got %d)", nCells)
	}
	if minorRadius <= 0 {
		chk.Panic("geometry: minorRadius must be > 0 (got %v)", minorRadius)
	}
	return &Mesh{
		NCells: nCells,
		NFaces: nCells + 1,
		Dr:     minorRadius / float64(nCells),
	}
}

// CellRadii returns the cell-centered radii r_i = (i+1/2)*dr.
// This is the normative convention (spec §4.1, §9 open question).
func (m *Mesh) CellRadii() []float64 {
	r := make([]float64, m.NCells)
	for i := range r {
		r[i] = (float64(i) + 0.5) * m.Dr
	}
	return r
}

// FaceRadii returns the face radii r_j = j*dr, j=0..NCells.
func (m *Mesh) FaceRadii() []float64 {
	r := make([]float64, m.NFaces)
	for j := range r {
		r[j] = float64(j) * m.Dr
	}
	return r
}

// CellDistances returns the NCells-1 center-to-center distances, all == dr
// on a uniform mesh.
func (m *Mesh) CellDistances() []float64 {
	return utl.LinSpace(m.Dr, m.Dr, m.NCells-1)
}

// checkCellShape panics with a ShapeMismatch-style message if x does not
// have exactly NCells entries.
func (m *Mesh) checkCellShape(name string, x []float64) {
	if len(x) != m.NCells {
		chk.Panic("geometry: ShapeMismatch: %s must have length NCells=%d (got %d)", name, m.NCells, len(x))
	}
}

// checkFaceShape panics with a ShapeMismatch-style message if x does not
// have exactly NFaces entries.
func (m *Mesh) checkFaceShape(name string, x []float64) {
	if len(x) != m.NFaces {
		chk.Panic("geometry: ShapeMismatch: %s must have length NFaces=%d (got %d)", name, m.NFaces, len(x))
	}
}
