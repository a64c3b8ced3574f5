// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ana

import (
	"testing"

	"github.com/cpmech/gosl/chk"
)

func TestSteadyDiffusionMatchesEdgeAtBoundary(t *testing.T) {
	chk.PrintTitle("S1 steady diffusion profile matches the edge value at r=a")
	s := SteadyDiffusion{Chi: 1.0, Source: 0.1, MinorRadius: 1.0, EdgeValue: 100}
	if got := s.Calc(1.0); got != 100 {
		t.Fatalf("expected T(a)=100, got %v", got)
	}
}

func TestSteadyDiffusionPeaksAtAxis(t *testing.T) {
	chk.PrintTitle("S1 steady diffusion profile peaks at the axis")
	s := SteadyDiffusion{Chi: 1.0, Source: 0.1, MinorRadius: 1.0, EdgeValue: 100}
	center := s.Calc(0)
	edge := s.Calc(1.0)
	if center <= edge {
		t.Fatalf("expected center value %v > edge value %v", center, edge)
	}
	want := 100 + 0.1/(4*1.0)*1.0
	if diff := center - want; diff > 1e-9 || diff < -1e-9 {
		t.Fatalf("expected center=%v, got %v", want, center)
	}
}

func TestLinearProfileMidpoint(t *testing.T) {
	chk.PrintTitle("S2 linear profile midpoint is the arithmetic mean")
	l := LinearProfile{Center: 10000, Edge: 100, MinorRadius: 1.0}
	mid := l.Calc(0.5)
	want := (10000.0 + 100.0) / 2
	if diff := mid - want; diff > 1e-9 || diff < -1e-9 {
		t.Fatalf("expected midpoint=%v, got %v", want, mid)
	}
}

func TestL2RelativeErrorZeroForIdenticalProfiles(t *testing.T) {
	chk.PrintTitle("L2RelativeError is zero when numeric matches reference exactly")
	ref := []float64{1, 2, 3, 4}
	if err := L2RelativeError(ref, ref); err != 0 {
		t.Fatalf("expected 0, got %v", err)
	}
}
