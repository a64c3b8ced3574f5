// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package physics defines the contract every transport and source
// model implements (spec §4.2), and the SourceTerms/metadata types
// those models produce.
package physics

import (
	"github.com/cpmech/tokasim/arr"
	"github.com/cpmech/tokasim/geometry"
)

// Category classifies a source model's contribution for power-balance
// reporting (spec §3 SourceTerms).
type Category int

const (
	CategoryFusion Category = iota
	CategoryAuxiliary
	CategoryOhmic
	CategoryRadiation
	CategoryOther
	CategoryExchange
)

// Metadata is one model's scalar power-balance ledger entry, in watts
// (spec §3 SourceMetadata).
type Metadata struct {
	Model          string
	Category       Category
	IonPower       float64
	ElectronPower  float64
	AlphaPower     float64
	RadiationPower float64
	OhmicPower     float64
	FusionPower    float64
}

// MetadataCollection is an ordered set of per-model Metadata entries.
// The empty collection is the canonical "no metadata" value (spec §4.2,
// §9): composite sources always return a collection, never a null.
type MetadataCollection struct {
	Entries []Metadata
}

// Empty returns the canonical empty collection.
func Empty() MetadataCollection { return MetadataCollection{} }

// Add appends m and returns the extended collection (collections are
// treated as immutable values; Add does not mutate mc's backing slice
// unexpectedly because append semantics here always occur on a fresh
// slice owned by the caller's accumulation loop - see Merge).
func (mc MetadataCollection) Add(m Metadata) MetadataCollection {
	entries := make([]Metadata, len(mc.Entries), len(mc.Entries)+1)
	copy(entries, mc.Entries)
	entries = append(entries, m)
	return MetadataCollection{Entries: entries}
}

// Merge concatenates two collections; associative, so aggregation order
// does not affect totals (spec §8 #7).
func Merge(a, b MetadataCollection) MetadataCollection {
	entries := make([]Metadata, 0, len(a.Entries)+len(b.Entries))
	entries = append(entries, a.Entries...)
	entries = append(entries, b.Entries...)
	return MetadataCollection{Entries: entries}
}

// MergeAll folds Merge over a slice of collections, left to right.
func MergeAll(cols ...MetadataCollection) MetadataCollection {
	out := Empty()
	for _, c := range cols {
		out = Merge(out, c)
	}
	return out
}

// totals by field, used by DerivedQuantities and by the associativity
// test (spec §8 #7).
func (mc MetadataCollection) TotalIonPower() float64       { return sumBy(mc, func(m Metadata) float64 { return m.IonPower }) }
func (mc MetadataCollection) TotalElectronPower() float64  { return sumBy(mc, func(m Metadata) float64 { return m.ElectronPower }) }
func (mc MetadataCollection) TotalAlphaPower() float64     { return sumBy(mc, func(m Metadata) float64 { return m.AlphaPower }) }
func (mc MetadataCollection) TotalRadiationPower() float64 { return sumBy(mc, func(m Metadata) float64 { return m.RadiationPower }) }
func (mc MetadataCollection) TotalOhmicPower() float64     { return sumBy(mc, func(m Metadata) float64 { return m.OhmicPower }) }
func (mc MetadataCollection) TotalFusionPower() float64    { return sumBy(mc, func(m Metadata) float64 { return m.FusionPower }) }

// TotalByCategory sums IonPower+ElectronPower over the entries tagged
// with the given category (derived uses it for the auxiliary heating
// power).
func (mc MetadataCollection) TotalByCategory(cat Category) float64 {
	var total float64
	for _, m := range mc.Entries {
		if m.Category == cat {
			total += m.IonPower + m.ElectronPower
		}
	}
	return total
}

func sumBy(mc MetadataCollection, f func(Metadata) float64) float64 {
	var s float64
	for _, m := range mc.Entries {
		s += f(m)
	}
	return s
}

// SourceTerms is the per-field physics output contributed by a model or
// a composite of models (spec §3).
type SourceTerms struct {
	Qi       arr.Array // ion heating [MW/m^3]
	Qe       arr.Array // electron heating [MW/m^3]
	Sn       arr.Array // particle source [m^-3/s]
	Sj       arr.Array // current source [MA/m^2]
	Metadata MetadataCollection
}

// ZeroSourceTerms returns a SourceTerms of all-zero fields on n cells,
// with empty metadata.
func ZeroSourceTerms(n int) SourceTerms {
	z := arr.Zeros(n)
	return SourceTerms{Qi: z, Qe: z, Sn: z, Sj: z, Metadata: Empty()}
}

// Add sums two SourceTerms field-by-field and merges metadata.
func Add(a, b SourceTerms) SourceTerms {
	return SourceTerms{
		Qi:       arr.Add(a.Qi, b.Qi),
		Qe:       arr.Add(a.Qe, b.Qe),
		Sn:       arr.Add(a.Sn, b.Sn),
		Sj:       arr.Add(a.Sj, b.Sj),
		Metadata: Merge(a.Metadata, b.Metadata),
	}
}

// TransportCoefficients holds the cell-centered diffusivities and pinch
// velocity for one step (spec §3).
type TransportCoefficients struct {
	ChiI arr.Array // ion heat diffusivity [m^2/s]
	ChiE arr.Array // electron heat diffusivity [m^2/s]
	D    arr.Array // particle diffusivity [m^2/s]
	V    arr.Array // particle pinch velocity [m/s], may be negative
}

// TransportModel computes transport coefficients from the current
// profiles and geometry (spec §4.2).
type TransportModel interface {
	Name() string
	ComputeTerms(p ProfileView, g *geometry.Geometry) TransportCoefficients
}

// SourceModel computes source terms and a metadata ledger entry from
// the current profiles and geometry (spec §4.2). Models are pure,
// deterministic, and stateless/thread-safe by construction.
type SourceModel interface {
	Name() string
	ComputeTerms(p ProfileView, g *geometry.Geometry) SourceTerms
	ComputeMetadata(p ProfileView, g *geometry.Geometry) Metadata
}

// TimeAware is an optional interface a SourceModel may implement when
// its contribution depends on simulation time (e.g. a named ramp
// waveform, spec §6 "named, parameterizable scalar functions for
// boundary-condition ramps" generalized to source power). The
// integrator checks for this interface the way io.Closer is checked —
// most models are stateless and never implement it.
type TimeAware interface {
	SetTime(t float64)
}

// ProfileView is the minimal read of CoreProfiles that physics models
// need; it decouples physics/* from state's package (which would
// otherwise import physics back for BoundaryConditions-adjacent types,
// risking an import cycle as the packages grow).
type ProfileView struct {
	Ti, Te, Ne, Psi, Zeff arr.Array
}
