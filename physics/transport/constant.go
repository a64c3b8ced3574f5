// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package transport implements the transport-coefficient models named
// in spec §4.2: constant, Bohm-gyroBohm, a pedestal decorator, and a
// neural-net-surrogate stand-in.
package transport

import (
	"github.com/cpmech/gosl/chk"

	"github.com/cpmech/tokasim/arr"
	"github.com/cpmech/tokasim/geometry"
	"github.com/cpmech/tokasim/physics"
)

// Constant is the simplest transport model: spatially and temporally
// uniform chi_i, chi_e, D, V.
type Constant struct {
	ChiI, ChiE, D, V float64
}

// NewConstant validates and builds a Constant model. Diffusivities must
// be non-negative (spec §3); V may be negative (inward pinch).
func NewConstant(chiI, chiE, d, v float64) Constant {
	if chiI < 0 || chiE < 0 || d < 0 {
		chk.Panic("transport: physics parameter out of range: chiI=%v chiE=%v D=%v must be >= 0", chiI, chiE, d)
	}
	return Constant{ChiI: chiI, ChiE: chiE, D: d, V: v}
}

// Name implements physics.TransportModel.
func (Constant) Name() string { return "constant" }

// ComputeTerms implements physics.TransportModel.
func (m Constant) ComputeTerms(p physics.ProfileView, g *geometry.Geometry) physics.TransportCoefficients {
	n := p.Ti.Len()
	return physics.TransportCoefficients{
		ChiI: arr.Full(n, m.ChiI),
		ChiE: arr.Full(n, m.ChiE),
		D:    arr.Full(n, m.D),
		V:    arr.Full(n, m.V),
	}
}
