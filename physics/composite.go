// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package physics

import "github.com/cpmech/tokasim/geometry"

// Composite combines an ordered collection of SourceModels into one
// SourceTerms with one merged MetadataCollection (spec §4.2). Mirrors
// mdl/porous composing retention+conductivity sub-models into a single
// physical response in the teacher.
type Composite struct {
	Models []SourceModel
}

// NewComposite builds a Composite from the given models, in order.
func NewComposite(models ...SourceModel) Composite {
	return Composite{Models: models}
}

// ComputeTerms sums the field arrays of every model and concatenates
// their metadata. With zero models it still returns a SourceTerms whose
// Metadata is the canonical empty collection (spec §4.2, §8 #4 / S4).
func (c Composite) ComputeTerms(p ProfileView, g *geometry.Geometry) SourceTerms {
	n := p.Ti.Len()
	out := ZeroSourceTerms(n)
	for _, m := range c.Models {
		terms := m.ComputeTerms(p, g)
		// individual models report fields only; the metadata ledger
		// entry is always attached here, once, from ComputeMetadata -
		// so a model can never double-count its own power.
		terms.Metadata = Empty().Add(m.ComputeMetadata(p, g))
		out = Add(out, terms)
	}
	return out
}
