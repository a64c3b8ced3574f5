// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package derived

import (
	"testing"

	"github.com/cpmech/gosl/chk"

	"github.com/cpmech/tokasim/arr"
	"github.com/cpmech/tokasim/geometry"
	"github.com/cpmech/tokasim/physics"
	"github.com/cpmech/tokasim/state"
)

func flatProfiles(n int, ti, te, ne float64) state.CoreProfiles {
	return state.NewCoreProfilesScalarZeff(arr.Full(n, ti), arr.Full(n, te), arr.Full(n, ne), arr.Zeros(n), 1.5)
}

func TestComputeEmptyMetadataIsSafe(t *testing.T) {
	chk.PrintTitle("derived.Compute with empty metadata returns zero power balance, not a panic (S4)")
	mesh := geometry.NewMesh(10, 1.0)
	g := geometry.Circular{}.Build(mesh, 3.0, 1.0, 5.0)
	g.UpdateSafetyFactor(make([]float64, 10))
	p := flatProfiles(10, 5000, 5000, 1e20)

	q := Compute(p, g, physics.Empty())
	if q.PAuxW != 0 || q.POhmicW != 0 || q.PAlphaW != 0 {
		t.Fatalf("expected zero power balance with no metadata, got %+v", q)
	}
	if q.QFusion != 0 {
		t.Fatalf("QFusion should be 0 with no external heating, got %v", q.QFusion)
	}
	if q.ThermalEnergyMJ <= 0 {
		t.Fatalf("thermal energy should still be positive from profiles alone, got %v", q.ThermalEnergyMJ)
	}
}

func TestQFusionClampedToHundred(t *testing.T) {
	chk.PrintTitle("QFusion clamps to [0,100]")
	mesh := geometry.NewMesh(5, 1.0)
	g := geometry.Circular{}.Build(mesh, 3.0, 1.0, 5.0)
	g.UpdateSafetyFactor(make([]float64, 5))
	p := flatProfiles(5, 10000, 10000, 1e20)

	md := physics.Empty().Add(physics.Metadata{Model: "ecrh", Category: physics.CategoryAuxiliary, ElectronPower: 1e3})
	md = md.Add(physics.Metadata{Model: "fusion", Category: physics.CategoryFusion, FusionPower: 1e9})

	q := Compute(p, g, md)
	if q.QFusion > 100 {
		t.Fatalf("QFusion = %v, want <= 100", q.QFusion)
	}
}

func TestPOhmicWReadsTheDedicatedOhmicPowerField(t *testing.T) {
	chk.PrintTitle("POhmicW sums Metadata.OhmicPower, not Ion/ElectronPower (source/ohmic.go never sets those)")
	mesh := geometry.NewMesh(5, 1.0)
	g := geometry.Circular{}.Build(mesh, 3.0, 1.0, 5.0)
	g.UpdateSafetyFactor(make([]float64, 5))
	p := flatProfiles(5, 5000, 5000, 1e20)

	md := physics.Empty().Add(physics.Metadata{Model: "ohmic", Category: physics.CategoryOhmic, OhmicPower: 2.5e6})

	q := Compute(p, g, md)
	if q.POhmicW != 2.5e6 {
		t.Fatalf("POhmicW = %v, want 2.5e6", q.POhmicW)
	}
	if q.PLossW < 2.5e6 {
		t.Fatalf("PLossW should include ohmic power, got %v", q.PLossW)
	}
}

func TestVolumeAverageOfUniformProfileIsThatValue(t *testing.T) {
	chk.PrintTitle("volume average of a uniform profile equals the profile value")
	mesh := geometry.NewMesh(8, 1.0)
	g := geometry.Circular{}.Build(mesh, 3.0, 1.0, 5.0)
	g.UpdateSafetyFactor(make([]float64, 8))
	p := flatProfiles(8, 3000, 3000, 5e19)

	q := Compute(p, g, physics.Empty())
	if q.VolAvgTi != 3000 || q.VolAvgTe != 3000 {
		t.Fatalf("expected volume averages to equal the uniform value, got Ti=%v Te=%v", q.VolAvgTi, q.VolAvgTe)
	}
}
