// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package source

import (
	"github.com/cpmech/gosl/fun"

	"github.com/cpmech/tokasim/geometry"
	"github.com/cpmech/tokasim/physics"
)

// TimeVaryingECRH decorates ECRH with a named gosl/fun time profile
// (e.g. a ramp) multiplying its nominal power, mirroring how the
// teacher's element code evaluates a boundary fun.TimeSpace with
// `Fcn.F(sol.T, nil)` every step. SetTime must be called once per step
// before ComputeTerms/ComputeMetadata; the integrator does this for
// every SourceModel that implements the TimeAware interface.
type TimeVaryingECRH struct {
	Nominal  ECRH
	Waveform fun.TimeSpace
	t        float64
}

// NewTimeVaryingECRH builds a TimeVaryingECRH; waveform is evaluated at
// t and multiplies nominal.PowerMW.
func NewTimeVaryingECRH(nominal ECRH, waveform fun.TimeSpace) *TimeVaryingECRH {
	return &TimeVaryingECRH{Nominal: nominal, Waveform: waveform}
}

// SetTime implements physics.TimeAware.
func (w *TimeVaryingECRH) SetTime(t float64) { w.t = t }

func (w *TimeVaryingECRH) scaled() ECRH {
	s := w.Nominal
	s.PowerMW = w.Nominal.PowerMW * w.Waveform.F(w.t, nil)
	return s
}

// Name implements physics.SourceModel.
func (w *TimeVaryingECRH) Name() string { return w.Nominal.Name() + "+waveform" }

// ComputeTerms implements physics.SourceModel.
func (w *TimeVaryingECRH) ComputeTerms(p physics.ProfileView, g *geometry.Geometry) physics.SourceTerms {
	return w.scaled().ComputeTerms(p, g)
}

// ComputeMetadata implements physics.SourceModel.
func (w *TimeVaryingECRH) ComputeMetadata(p physics.ProfileView, g *geometry.Geometry) physics.Metadata {
	return w.scaled().ComputeMetadata(p, g)
}
