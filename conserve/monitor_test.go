// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package conserve

import (
	"math"
	"testing"

	"github.com/cpmech/gosl/chk"

	"github.com/cpmech/tokasim/arr"
	"github.com/cpmech/tokasim/geometry"
	"github.com/cpmech/tokasim/state"
)

func testGeom(n int) *geometry.Geometry {
	mesh := geometry.NewMesh(n, 1.0)
	return geometry.Circular{}.Build(mesh, 3.0, 1.0, 5.0)
}

func flatProfiles(n int, ti, te, ne float64) state.CoreProfiles {
	return state.NewCoreProfilesScalarZeff(arr.Full(n, ti), arr.Full(n, te), arr.Full(n, ne), arr.Zeros(n), 1.5)
}

func TestFirstCallRecordsInitialNoCorrection(t *testing.T) {
	chk.PrintTitle("first CheckEnergy call records the baseline and applies no correction")
	g := testGeom(10)
	m := NewMonitor()
	r := m.CheckEnergy(flatProfiles(10, 5000, 5000, 1e20), g, 0)
	if r.Corrected || r.CorrectionFactor != 1.0 {
		t.Fatalf("expected no correction on first call, got %+v", r)
	}
}

func TestDriftWithinToleranceNoCorrection(t *testing.T) {
	chk.PrintTitle("drift within 1% tolerance applies no correction")
	g := testGeom(10)
	m := NewMonitor()
	m.CheckEnergy(flatProfiles(10, 5000, 5000, 1e20), g, 0)
	r := m.CheckEnergy(flatProfiles(10, 5005, 5005, 1e20), g, 1.0)
	if r.Corrected {
		t.Fatalf("expected no correction for a drift under tolerance, got %+v", r)
	}
}

func TestDriftBeyondToleranceIsCorrectedAndClamped(t *testing.T) {
	chk.PrintTitle("large drift is corrected and clamped to +-20% (spec 4.9)")
	g := testGeom(10)
	m := NewMonitor()
	m.CheckEnergy(flatProfiles(10, 5000, 5000, 1e20), g, 0)
	// Triple the energy: drift is +200%, factor would be 1/3, clamp to 0.8.
	r := m.CheckEnergy(flatProfiles(10, 15000, 15000, 1e20), g, 1.0)
	if !r.Corrected {
		t.Fatalf("expected a correction for a 200%% drift")
	}
	if r.CorrectionFactor < 1-maxCorrection-1e-9 {
		t.Fatalf("correction factor %v exceeds the -20%% clamp", r.CorrectionFactor)
	}
}

func TestNonFiniteShortCircuits(t *testing.T) {
	chk.PrintTitle("non-finite value short-circuits to a no-op (spec 4.9)")
	g := testGeom(10)
	m := NewMonitor()
	m.CheckEnergy(flatProfiles(10, 5000, 5000, 1e20), g, 0)
	bad := flatProfiles(10, math.Inf(1), 5000, 1e20)
	r := m.CheckEnergy(bad, g, 1.0)
	if r.Corrected || r.CorrectionFactor != 1.0 {
		t.Fatalf("expected short-circuit no-op for non-finite value, got %+v", r)
	}
}

func TestApplyCorrectionScalesTiTeEqually(t *testing.T) {
	chk.PrintTitle("ApplyCorrection scales Ti and Te equally, leaves Ne/Psi untouched")
	p := flatProfiles(4, 1000, 2000, 1e19)
	report := Report{Corrected: true, CorrectionFactor: 0.9}
	out := ApplyCorrection(p, report)
	if out.Ti.At(0) != 900 || out.Te.At(0) != 1800 {
		t.Fatalf("expected Ti,Te scaled by 0.9, got Ti=%v Te=%v", out.Ti.At(0), out.Te.At(0))
	}
	if out.Ne.At(0) != p.Ne.At(0) {
		t.Fatalf("Ne must be untouched by the correction")
	}
}
