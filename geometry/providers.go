// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package geometry

import "github.com/cpmech/gosl/chk"

// MetricTable is a pre-computed set of face metric factors, as would be
// produced offline by a CHEASE or EQDSK equilibrium reconstruction. This
// core does not solve MHD equilibrium (spec §1 Non-goals); it only
// consumes a flat metric table, keeping the "parameterized, not
// computed" boundary explicit.
type MetricTable struct {
	G1Face []float64 // [NFaces]
}

// CHEASE builds geometry from a CHEASE-style pre-computed metric table,
// laid over the same cylindrical volume/area approximation as Circular.
type CHEASE struct {
	Table MetricTable
}

// Build implements Provider.
func (p CHEASE) Build(m *Mesh, r0, a, bPhi float64) *Geometry {
	g := Circular{}.Build(m, r0, a, bPhi)
	m.checkFaceShape("CHEASE.Table.G1Face", p.Table.G1Face)
	g.G1Face = append([]float64(nil), p.Table.G1Face...)
	g.G0Cell = faceToCellAverage(g.G1Face)
	g.G2Cell = faceToCellAverage(g.G1Face)
	return g
}

// EQDSK builds geometry from an EQDSK-style pre-computed metric table.
// It shares CHEASE's interpretation of the table; the two providers are
// kept distinct so config.geometryType selection is explicit and so a
// future implementer can diverge the parsing/unit conventions without
// disturbing CHEASE.
type EQDSK struct {
	Table MetricTable
}

// Build implements Provider.
func (p EQDSK) Build(m *Mesh, r0, a, bPhi float64) *Geometry {
	if len(p.Table.G1Face) == 0 {
		chk.Panic("geometry: EQDSK metric table is empty")
	}
	g := Circular{}.Build(m, r0, a, bPhi)
	m.checkFaceShape("EQDSK.Table.G1Face", p.Table.G1Face)
	g.G1Face = append([]float64(nil), p.Table.G1Face...)
	g.G0Cell = faceToCellAverage(g.G1Face)
	g.G2Cell = faceToCellAverage(g.G1Face)
	return g
}
