// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package transport

import (
	"testing"

	"github.com/cpmech/gosl/chk"

	"github.com/cpmech/tokasim/arr"
	"github.com/cpmech/tokasim/geometry"
	"github.com/cpmech/tokasim/physics"
)

func testGeom() *geometry.Geometry {
	m := geometry.NewMesh(20, 1.0)
	return geometry.Circular{}.Build(m, 3.0, 1.0, 5.0)
}

func testProfile(n int) physics.ProfileView {
	return physics.ProfileView{
		Ti:   arr.Full(n, 5000),
		Te:   arr.Full(n, 5000),
		Ne:   arr.Full(n, 5e19),
		Psi:  arr.Zeros(n),
		Zeff: arr.Full(n, 1.5),
	}
}

func TestConstantNonNegative(t *testing.T) {
	chk.PrintTitle("constant transport non-negative diffusivities")
	defer func() {
		if r := recover(); r == nil {
			t.Fatalf("expected panic for negative chi")
		}
	}()
	NewConstant(-1, 1, 1, 0)
}

func TestBohmGyroBohmNonNegative(t *testing.T) {
	chk.PrintTitle("BgB transport yields non-negative diffusivities")
	g := testGeom()
	p := testProfile(g.Mesh.NCells)
	m := NewBohmGyroBohm(1e-2, 5e-3, 0.5, 0.1)
	tc := m.ComputeTerms(p, g)
	for i := 0; i < tc.ChiI.Len(); i++ {
		if tc.ChiI.At(i) < 0 || tc.D.At(i) < 0 {
			t.Fatalf("negative diffusivity at cell %d", i)
		}
	}
}

func TestPedestalSuppressesEdge(t *testing.T) {
	chk.PrintTitle("pedestal suppresses edge transport")
	g := testGeom()
	p := testProfile(g.Mesh.NCells)
	base := NewConstant(1, 1, 1, 0)
	ped := NewPedestalModel(base, 0.9, 0.1)
	tc := ped.ComputeTerms(p, g)
	for i, r := range g.CellRadii {
		if r/g.MinorRadius >= 0.9 {
			if tc.ChiI.At(i) >= 1.0 {
				t.Fatalf("expected suppressed chi at edge cell %d, got %v", i, tc.ChiI.At(i))
			}
		}
	}
}
