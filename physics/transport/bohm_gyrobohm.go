// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package transport

import (
	"math"

	"github.com/cpmech/gosl/chk"

	"github.com/cpmech/tokasim/arr"
	"github.com/cpmech/tokasim/geometry"
	"github.com/cpmech/tokasim/physics"
)

// physical constants used by the transport models, in SI unless noted.
// Centralized here rather than re-declared per file, matching the
// teacher's habit of one small constants block per physics package.
const (
	elementaryCharge = 1.602176634e-19 // C
	protonMass       = 1.67262192369e-27
	electronMass     = 9.1093837015e-31
)

// BohmGyroBohm implements the standard Bohm/gyro-Bohm mixing-length
// transport model: chi = chiBCoeff*chiBohm + chiGBCoeff*chiGyroBohm,
// both terms weighted by the local normalized temperature gradient
// length, a common closure for tokamak core transport (spec §4.2).
type BohmGyroBohm struct {
	ChiBCoeff  float64 // Bohm term coefficient
	ChiGBCoeff float64 // gyro-Bohm term coefficient
	DToChiRatio float64 // D = DToChiRatio * chi_e (particle diffusivity tied to heat transport)
	PinchFrac  float64 // V = -PinchFrac * D / a (inward pinch fraction)
}

// NewBohmGyroBohm validates and builds a BohmGyroBohm model.
func NewBohmGyroBohm(chiB, chiGB, dRatio, pinchFrac float64) BohmGyroBohm {
	if chiB < 0 || chiGB < 0 || dRatio < 0 {
		chk.Panic("transport: physics parameter out of range: chiBCoeff=%v chiGBCoeff=%v dToChiRatio=%v must be >= 0", chiB, chiGB, dRatio)
	}
	return BohmGyroBohm{ChiBCoeff: chiB, ChiGBCoeff: chiGB, DToChiRatio: dRatio, PinchFrac: pinchFrac}
}

// Name implements physics.TransportModel.
func (BohmGyroBohm) Name() string { return "bohm-gyrobohm" }

// normalizedGradLen returns |dX/dr| / max(X, eps) at each cell, using
// centered differences in the interior and one-sided at the edges.
func normalizedGradLen(x []float64, dr float64) []float64 {
	n := len(x)
	out := make([]float64, n)
	for i := 0; i < n; i++ {
		var grad float64
		switch {
		case n == 1:
			grad = 0
		case i == 0:
			grad = (x[1] - x[0]) / dr
		case i == n-1:
			grad = (x[i] - x[i-1]) / dr
		default:
			grad = (x[i+1] - x[i-1]) / (2 * dr)
		}
		xv := x[i]
		if xv < 1e-6 {
			xv = 1e-6
		}
		out[i] = math.Abs(grad) / xv
	}
	return out
}

// ComputeTerms implements physics.TransportModel.
func (m BohmGyroBohm) ComputeTerms(p physics.ProfileView, g *geometry.Geometry) physics.TransportCoefficients {
	n := p.Ti.Len()
	dr := g.Mesh.Dr
	teEV := p.Te.Raw()
	gradLen := normalizedGradLen(teEV, dr)

	chiE := make([]float64, n)
	chiI := make([]float64, n)
	d := make([]float64, n)
	v := make([]float64, n)

	for i := 0; i < n; i++ {
		teKeV := teEV[i] / 1e3
		q := 1.0
		if g.SafetyFactor != nil {
			q = g.SafetyFactor[i]
		}
		// Bohm term: chi_B ~ q^2 * T[keV] / B * L_T^-1, units folded into
		// the calibration coefficient ChiBCoeff (m^2/s when T in keV, B in T).
		chiBohm := q * q * teKeV / g.ToroidalB * gradLen[i] * g.MinorRadius
		// gyro-Bohm term: chi_gB ~ sqrt(T[keV]) * rho_s^2/a * L_T^-1
		rhoS := gyroRadius(teEV[i], g.ToroidalB)
		chiGyroBohm := math.Sqrt(math.Max(teKeV, 0)) * rhoS * rhoS / g.MinorRadius * gradLen[i] * g.MinorRadius
		chi := m.ChiBCoeff*chiBohm + m.ChiGBCoeff*chiGyroBohm
		if chi < 0 {
			chi = 0
		}
		chiE[i] = chi
		chiI[i] = chi
		d[i] = m.DToChiRatio * chi
		v[i] = -m.PinchFrac * d[i] / g.MinorRadius
	}
	return physics.TransportCoefficients{
		ChiI: arr.New(chiI),
		ChiE: arr.New(chiE),
		D:    arr.New(d),
		V:    arr.New(v),
	}
}

// gyroRadius returns the ion sound gyro-radius rho_s [m] for electron
// temperature teEV [eV] and toroidal field bPhi [T], using the deuteron
// mass as the reference ion mass.
func gyroRadius(teEV, bPhi float64) float64 {
	if bPhi == 0 {
		bPhi = 1e-6
	}
	mi := 2.0 * protonMass // deuteron
	cs := math.Sqrt(math.Max(teEV, 0) * elementaryCharge / mi)
	omegaCi := elementaryCharge * math.Abs(bPhi) / mi
	return cs / omegaCi
}
