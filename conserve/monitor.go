// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package conserve implements the conservation monitor (spec §4.9): a
// drift detector and bounded multiplicative corrector used strictly for
// pure-conservation regression testing, not for production accuracy.
package conserve

import (
	"math"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"

	"github.com/cpmech/tokasim/geometry"
	"github.com/cpmech/tokasim/state"
)

const (
	elementaryCharge = 1.602176634e-19
	defaultTolerance = 0.01 // 1% relative drift, spec §4.9
	maxCorrection    = 0.20 // +-20% clamp, spec §4.9
)

// Monitor tracks one conserved quantity (energy, or particle count)
// across a run, grounded on fem/dyncoefs.go's validated-parameter,
// clamp-on-out-of-range style.
type Monitor struct {
	Tolerance float64
	initial   float64
	previous  float64
	hasInit   bool
}

// NewMonitor builds a Monitor with the spec-default 1% tolerance.
func NewMonitor() *Monitor { return &Monitor{Tolerance: defaultTolerance} }

// Report is returned by Check on every step: the current value, its
// relative drift from the recorded initial value, the dE/dt diagnostic
// (always reported per spec §4.9), and a correction factor to multiply
// Ti/Te by, 1.0 when no correction was needed.
type Report struct {
	Value            float64
	RelativeDrift    float64
	Rate             float64 // dE/dt or dN/dt, value/dt units
	CorrectionFactor float64
	Corrected        bool
}

// thermalEnergy computes W = int (3/2) ne (Ti+Te) eV_to_J dV (spec
// §4.8), the default conserved quantity this monitor tracks.
func thermalEnergy(p state.CoreProfiles, g *geometry.Geometry) float64 {
	ti, te, ne, vol := p.Ti.Raw(), p.Te.Raw(), p.Ne.Raw(), g.CellVolumes
	w := 0.0
	for i := range ti {
		w += 1.5 * ne[i] * (ti[i] + te[i]) * elementaryCharge * vol[i]
	}
	return w
}

// particleCount computes N = int ne dV, the optional particle-count
// conserved quantity named in spec §4.9.
func particleCount(p state.CoreProfiles, g *geometry.Geometry) float64 {
	ne, vol := p.Ne.Raw(), g.CellVolumes
	n := 0.0
	for i := range ne {
		n += ne[i] * vol[i]
	}
	return n
}

// CheckEnergy records the initial thermal energy on first call and, on
// every subsequent call, computes the relative drift and (if it exceeds
// Tolerance) a clamped correction factor (spec §4.9). dt is the elapsed
// time since the previous call, used only for the dE/dt diagnostic.
func (m *Monitor) CheckEnergy(p state.CoreProfiles, g *geometry.Geometry, dt float64) Report {
	w := thermalEnergy(p, g)
	return m.check(w, dt)
}

// CheckParticles is the particle-count analogue of CheckEnergy.
func (m *Monitor) CheckParticles(p state.CoreProfiles, g *geometry.Geometry, dt float64) Report {
	n := particleCount(p, g)
	return m.check(n, dt)
}

func (m *Monitor) check(value, dt float64) Report {
	if math.IsNaN(value) || math.IsInf(value, 0) {
		// Non-finite values short-circuit to no-op (spec §4.9).
		return Report{Value: value, CorrectionFactor: 1.0}
	}
	if !m.hasInit {
		m.initial = value
		m.previous = value
		m.hasInit = true
		return Report{Value: value, CorrectionFactor: 1.0}
	}
	if m.initial == 0 {
		chk.Panic("conserve: Monitor: recorded initial value is exactly zero, cannot compute relative drift")
	}
	drift := (value - m.initial) / m.initial
	report := Report{Value: value, RelativeDrift: drift}
	if dt > 0 {
		report.Rate = (value - m.previous) / dt
	}
	m.previous = value
	report.CorrectionFactor = 1.0

	if math.Abs(drift) > m.Tolerance {
		factor := m.initial / value
		clamped := clamp(factor, 1-maxCorrection, 1+maxCorrection)
		if clamped != factor {
			io.Pfyel("conserve: drift %.2f%% exceeds clamp, correction factor limited to %.3f (wanted %.3f)\n",
				drift*100, clamped, factor)
		}
		report.CorrectionFactor = clamped
		report.Corrected = true
	}
	return report
}

func clamp(x, lo, hi float64) float64 {
	if x < lo {
		return lo
	}
	if x > hi {
		return hi
	}
	return x
}

// ApplyCorrection scales Ti and Te uniformly by report.CorrectionFactor
// (spec §4.9: "applied to Ti and Te equally"). A no-op (returns p
// unchanged) when report.Corrected is false.
func ApplyCorrection(p state.CoreProfiles, report Report) state.CoreProfiles {
	if !report.Corrected {
		return p
	}
	return state.NewCoreProfiles(
		p.Ti.Scale(report.CorrectionFactor),
		p.Te.Scale(report.CorrectionFactor),
		p.Ne, p.Psi, p.Zeff,
	)
}
