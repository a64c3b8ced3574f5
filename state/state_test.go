// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package state

import (
	"math"
	"testing"

	"github.com/cpmech/gosl/chk"

	"github.com/cpmech/tokasim/arr"
)

func flat(n int, v float64) arr.Array { return arr.Full(n, v) }

func TestFlattenSize(t *testing.T) {
	chk.PrintTitle("flatten size invariant")
	n := 10
	p := NewCoreProfilesScalarZeff(flat(n, 1000), flat(n, 1000), flat(n, 1e20), flat(n, 0), 1.5)
	fs := Flatten(p, DefaultScales())
	if fs.Size() != 4*n {
		t.Fatalf("Size() = %d, want %d", fs.Size(), 4*n)
	}
}

func TestScaleRoundTrip(t *testing.T) {
	chk.PrintTitle("scaled/unscaled round trip within 1 ULP")
	n := 5
	p := NewCoreProfilesScalarZeff(flat(n, 1234), flat(n, 5678), flat(n, 3.3e19), flat(n, 0.02), 1.7)
	fs := Flatten(p, DefaultScales())
	scaled := fs.Scaled()
	back := fs.Unscaled(scaled)
	for i := 0; i < fs.Size(); i++ {
		got, want := back.At(i), fs.Values.At(i)
		if math.Abs(got-want) > 1e-9*math.Max(1, math.Abs(want)) {
			t.Fatalf("round trip mismatch at %d: got %v want %v", i, got, want)
		}
	}
}

func TestUnflattenRecoversProfiles(t *testing.T) {
	chk.PrintTitle("unflatten recovers original profiles")
	n := 4
	ti, te, ne, psi := flat(n, 111), flat(n, 222), flat(n, 1e19), flat(n, 0.5)
	zeff := flat(n, 1.4)
	p := NewCoreProfiles(ti, te, ne, psi, zeff)
	fs := Flatten(p, DefaultScales())
	p2 := fs.Unflatten(zeff)
	for i := 0; i < n; i++ {
		if p2.Ti.At(i) != ti.At(i) || p2.Te.At(i) != te.At(i) || p2.Ne.At(i) != ne.At(i) || p2.Psi.At(i) != psi.At(i) {
			t.Fatalf("unflatten mismatch at cell %d", i)
		}
	}
}

func TestPositivityAndFloor(t *testing.T) {
	chk.PrintTitle("positivity check and density floor")
	n := 3
	p := NewCoreProfilesScalarZeff(flat(n, 100), flat(n, 100), arr.New([]float64{1e10, 1e20, 1e19}), flat(n, 0), 1.5)
	if !p.Positive() {
		t.Fatalf("expected Positive() true")
	}
	floored := p.FloorDensity()
	if floored.Ne.At(0) != DensityFloor {
		t.Fatalf("floor not applied: got %v", floored.Ne.At(0))
	}
	neg := NewCoreProfilesScalarZeff(flat(n, -1), flat(n, 100), flat(n, 1e19), flat(n, 0), 1.5)
	if neg.Positive() {
		t.Fatalf("expected Positive() false for negative Ti")
	}
}

func TestShapeMismatchPanics(t *testing.T) {
	chk.PrintTitle("shape mismatch panics")
	defer func() {
		if r := recover(); r == nil {
			t.Fatalf("expected panic on shape mismatch")
		}
	}()
	NewCoreProfiles(flat(3, 1), flat(4, 1), flat(3, 1), flat(3, 1), flat(3, 1))
}
