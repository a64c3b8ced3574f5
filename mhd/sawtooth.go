// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package mhd implements the sawtooth crash model (spec §4.7): an
// instantaneous, periodic relaxation event triggered when the central
// safety factor drops below a critical value.
package mhd

import (
	"github.com/cpmech/gosl/chk"

	"github.com/cpmech/tokasim/arr"
	"github.com/cpmech/tokasim/geometry"
	"github.com/cpmech/tokasim/state"
)

// Sawtooth detects and applies the q(0)<q_critical crash (spec §4.7).
// Unlike the physics.TransportModel/SourceModel contracts, Sawtooth is
// intentionally stateful: it must remember the last crash time to
// enforce the refractory interval across steps, exactly mirroring the
// teacher's small, self-contained event structs (Init + Calc) in
// ana/colpresfluid.go.
type Sawtooth struct {
	QCritical        float64 // default 1.0
	InversionRadius  float64 // normalized rho, default 0.3
	MinCrashInterval float64 // seconds

	lastCrashTime float64
	everCrashed   bool
}

// NewSawtooth builds a Sawtooth detector with the spec defaults,
// overridable via the returned struct's fields.
func NewSawtooth(minCrashInterval float64) *Sawtooth {
	if minCrashInterval <= 0 {
		chk.Panic("mhd: minCrashInterval must be > 0 (got %v)", minCrashInterval)
	}
	return &Sawtooth{QCritical: 1.0, InversionRadius: 0.3, MinCrashInterval: minCrashInterval}
}

// Result reports whether a crash occurred and, if so, the updated
// profiles.
type Result struct {
	Triggered bool
	Profiles  state.CoreProfiles
	CrashTime float64
}

// MaybeTrigger evaluates the crash condition at time t using the
// current profiles and geometry (g.SafetyFactor must already be
// up-to-date via geometry.UpdateSafetyFactor). If triggered, it
// flattens Ti, Te, and Ne inside the mixing region to their
// volume-weighted average. Psi is treated differently (spec §4.7
// "scale psi to conserve total flux"): flattening psi to a constant
// would leave q undefined there (dpsi/dr==0), so instead it is rescaled
// onto the r^2 shape consistent with the flat q~1 profile a crash
// leaves behind, with the scale factor chosen so the region's total
// poloidal flux integral is exactly unchanged.
func (s *Sawtooth) MaybeTrigger(p state.CoreProfiles, g *geometry.Geometry, t float64) Result {
	if g.SafetyFactor == nil {
		chk.Panic("mhd: Sawtooth.MaybeTrigger requires geometry.UpdateSafetyFactor to have been called")
	}
	qAxis := g.SafetyFactor[0]
	if qAxis >= s.QCritical {
		return Result{Profiles: p}
	}
	if s.everCrashed && (t-s.lastCrashTime) <= s.MinCrashInterval {
		return Result{Profiles: p}
	}

	regionIdx := mixingRegionCells(g, s.InversionRadius)
	if len(regionIdx) == 0 {
		return Result{Profiles: p}
	}

	newTi := flattenInRegion(p.Ti.Raw(), g.CellVolumes, regionIdx)
	newTe := flattenInRegion(p.Te.Raw(), g.CellVolumes, regionIdx)
	newNe := flattenInRegion(p.Ne.Raw(), g.CellVolumes, regionIdx)
	newPsi := rescalePsiInRegion(p.Psi.Raw(), g.CellVolumes, g.CellRadii, regionIdx)

	newProfiles := state.NewCoreProfiles(arr.New(newTi), arr.New(newTe), arr.New(newNe), arr.New(newPsi), p.Zeff)
	newProfiles = enforcePositivity(newProfiles)

	s.lastCrashTime = t
	s.everCrashed = true
	return Result{Triggered: true, Profiles: newProfiles, CrashTime: t}
}

// mixingRegionCells returns the indices of cells with rho=r/a < inversionRadius.
func mixingRegionCells(g *geometry.Geometry, inversionRadius float64) []int {
	var idx []int
	for i, r := range g.CellRadii {
		if r/g.MinorRadius < inversionRadius {
			idx = append(idx, i)
		}
	}
	return idx
}

// flattenInRegion replaces the entries named by idx with their
// volume-weighted average over idx, leaving all other entries
// untouched.
func flattenInRegion(x, vol []float64, idx []int) []float64 {
	out := append([]float64(nil), x...)
	var num, den float64
	for _, i := range idx {
		num += x[i] * vol[i]
		den += vol[i]
	}
	if den <= 0 {
		return out
	}
	avg := num / den
	for _, i := range idx {
		out[i] = avg
	}
	return out
}

// rescalePsiInRegion replaces the entries named by idx with psi~r^2
// (the shape consistent with a flat, crash-relaxed q~1 profile), scaled
// by a single factor chosen so sum(newPsi*vol) over idx exactly equals
// sum(psi*vol) over idx before the crash — conserving total poloidal
// flux in the region without flattening psi to a constant.
func rescalePsiInRegion(psi, vol, cellRadii []float64, idx []int) []float64 {
	out := append([]float64(nil), psi...)
	var shapeIntegral, origIntegral float64
	for _, i := range idx {
		shapeIntegral += cellRadii[i] * cellRadii[i] * vol[i]
		origIntegral += psi[i] * vol[i]
	}
	if shapeIntegral <= 0 {
		return out
	}
	scale := origIntegral / shapeIntegral
	for _, i := range idx {
		out[i] = scale * cellRadii[i] * cellRadii[i]
	}
	return out
}

// enforcePositivity floors Ti, Te, Ne at the density/temperature floor
// after a crash (spec §4.7 "Post-crash profiles satisfy positivity
// invariants").
func enforcePositivity(p state.CoreProfiles) state.CoreProfiles {
	const tFloor = 1.0 // eV
	ti := clampFloor(p.Ti.Raw(), tFloor)
	te := clampFloor(p.Te.Raw(), tFloor)
	ne := clampFloor(p.Ne.Raw(), state.DensityFloor)
	return state.NewCoreProfiles(arr.New(ti), arr.New(te), arr.New(ne), p.Psi, p.Zeff)
}

func clampFloor(x []float64, floor float64) []float64 {
	out := append([]float64(nil), x...)
	for i, v := range out {
		if v < floor {
			out[i] = floor
		}
	}
	return out
}
