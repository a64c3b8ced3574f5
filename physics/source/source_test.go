// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package source

import (
	"testing"

	"github.com/cpmech/gosl/chk"

	"github.com/cpmech/tokasim/arr"
	"github.com/cpmech/tokasim/geometry"
	"github.com/cpmech/tokasim/physics"
)

func iterGeometry(n int) *geometry.Geometry {
	m := geometry.NewMesh(n, 2.0)
	return geometry.Circular{}.Build(m, 6.2, 2.0, 5.3)
}

func flatProfile(n int, ti, te, ne float64) physics.ProfileView {
	return physics.ProfileView{
		Ti:   arr.Full(n, ti),
		Te:   arr.Full(n, te),
		Ne:   arr.Full(n, ne),
		Psi:  arr.Zeros(n),
		Zeff: arr.Full(n, 1.7),
	}
}

func TestReactivityMonotoneAndBounded(t *testing.T) {
	chk.PrintTitle("Bosch-Hale reactivity monotone and bounded on [0.2,70] keV")
	prev := Reactivity(0.2)
	for keV := 1.0; keV <= 70; keV += 1.0 {
		v := Reactivity(keV)
		if v < prev {
			t.Fatalf("reactivity not monotone at %v keV: %v < %v", keV, v, prev)
		}
		if v >= 1e-21 {
			t.Fatalf("reactivity %v at %v keV exceeds 1e-21 m^3/s bound", v, keV)
		}
		prev = v
	}
}

func TestExchangeEnergyConservative(t *testing.T) {
	chk.PrintTitle("ion-electron exchange metadata is energy conservative")
	g := iterGeometry(20)
	p := flatProfile(20, 5000, 10000, 1e20)
	e := NewExchange(2.0)
	md := e.ComputeMetadata(p, g)
	if md.IonPower != -md.ElectronPower {
		t.Fatalf("exchange not conservative: ion=%v electron=%v", md.IonPower, md.ElectronPower)
	}
	if md.IonPower <= 0 {
		t.Fatalf("expected ions to gain energy when Te>Ti, got %v", md.IonPower)
	}
}

func TestFusionAlphaFraction(t *testing.T) {
	chk.PrintTitle("fusion alpha power ~= 0.2 * fusion power")
	g := iterGeometry(20)
	p := flatProfile(20, 15000, 15000, 1.5e20)
	f := NewFusion(0.9, 0.5)
	md := f.ComputeMetadata(p, g)
	if md.FusionPower <= 0 {
		t.Fatalf("expected positive fusion power, got %v", md.FusionPower)
	}
	ratio := md.AlphaPower / md.FusionPower
	if ratio < 0.19 || ratio > 0.21 {
		t.Fatalf("alpha fraction = %v, want ~0.2", ratio)
	}
}

func TestCompositeEmptyIsSafe(t *testing.T) {
	chk.PrintTitle("empty composite returns empty metadata, not nil")
	g := iterGeometry(10)
	p := flatProfile(10, 1000, 1000, 1e19)
	c := physics.NewComposite()
	terms := c.ComputeTerms(p, g)
	if len(terms.Metadata.Entries) != 0 {
		t.Fatalf("expected empty metadata entries, got %d", len(terms.Metadata.Entries))
	}
	if terms.Qi.Sum() != 0 || terms.Qe.Sum() != 0 {
		t.Fatalf("expected zero source fields")
	}
}

func TestMetadataAssociativity(t *testing.T) {
	chk.PrintTitle("metadata aggregation associative and total-preserving")
	g := iterGeometry(16)
	p := flatProfile(16, 8000, 8000, 1e20)
	models := []physics.SourceModel{NewFusion(0.9, 0.5), NewExchange(2.0), NewBremsstrahlung()}
	c := physics.NewComposite(models...)
	terms := c.ComputeTerms(p, g)
	var want float64
	for _, m := range models {
		want += m.ComputeMetadata(p, g).IonPower
	}
	if terms.Metadata.TotalIonPower() != want {
		t.Fatalf("TotalIonPower = %v, want %v", terms.Metadata.TotalIonPower(), want)
	}
}

func TestBootstrapMagnitudeClamp(t *testing.T) {
	chk.PrintTitle("bootstrap current magnitude clamp preserves sign")
	g := iterGeometry(20)
	g.UpdateSafetyFactor(make([]float64, 20))
	p := flatProfile(20, 5000, 5000, 1e20)
	b := Bootstrap{MagnitudeClampMAm2: 1e-6} // force clamping
	terms := b.ComputeTerms(p, g)
	for i := 0; i < terms.Sj.Len(); i++ {
		if terms.Sj.At(i) > 1e-6 || terms.Sj.At(i) < -1e-6 {
			t.Fatalf("Sj[%d] = %v exceeds clamp", i, terms.Sj.At(i))
		}
	}
}

func TestGasPuffPreservesSign(t *testing.T) {
	chk.PrintTitle("gas puff density source is non-negative")
	g := iterGeometry(20)
	p := flatProfile(20, 1000, 1000, 1e19)
	m := NewGasPuff(1e20, 0.9, 0.05)
	terms := m.ComputeTerms(p, g)
	for i := 0; i < terms.Sn.Len(); i++ {
		if terms.Sn.At(i) < 0 {
			t.Fatalf("Sn[%d] negative: %v", i, terms.Sn.At(i))
		}
	}
}
