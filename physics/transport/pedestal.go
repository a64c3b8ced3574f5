// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package transport

import (
	"github.com/cpmech/tokasim/arr"
	"github.com/cpmech/tokasim/geometry"
	"github.com/cpmech/tokasim/physics"
)

// PedestalModel decorates another TransportModel, narrowing chi and D
// in a band near the edge to emulate the H-mode edge transport barrier
// (SPEC_FULL supplement recovered from original_source; TORAX models
// a pedestal via a transport-suppression region rather than a computed
// edge MHD equilibrium, consistent with this core's "geometry is
// parameterized, not computed" scope).
type PedestalModel struct {
	Underlying  physics.TransportModel
	RhoTop      float64 // normalized radius where the pedestal begins, e.g. 0.9
	Suppression float64 // fraction of transport retained inside the pedestal, in (0,1]
}

// NewPedestalModel validates and builds a PedestalModel.
func NewPedestalModel(underlying physics.TransportModel, rhoTop, suppression float64) PedestalModel {
	if suppression <= 0 || suppression > 1 {
		suppression = 1
	}
	if rhoTop <= 0 || rhoTop >= 1 {
		rhoTop = 0.9
	}
	return PedestalModel{Underlying: underlying, RhoTop: rhoTop, Suppression: suppression}
}

// Name implements physics.TransportModel.
func (m PedestalModel) Name() string { return m.Underlying.Name() + "+pedestal" }

// ComputeTerms implements physics.TransportModel.
func (m PedestalModel) ComputeTerms(p physics.ProfileView, g *geometry.Geometry) physics.TransportCoefficients {
	base := m.Underlying.ComputeTerms(p, g)
	chiI := append([]float64(nil), base.ChiI.Raw()...)
	chiE := append([]float64(nil), base.ChiE.Raw()...)
	d := append([]float64(nil), base.D.Raw()...)
	for i, r := range g.CellRadii {
		rho := r / g.MinorRadius
		if rho >= m.RhoTop {
			chiI[i] *= m.Suppression
			chiE[i] *= m.Suppression
			d[i] *= m.Suppression
		}
	}
	return physics.TransportCoefficients{
		ChiI: arr.New(chiI),
		ChiE: arr.New(chiE),
		D:    arr.New(d),
		V:    base.V,
	}
}
