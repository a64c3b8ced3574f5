// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package integrator

import (
	"github.com/cpmech/gosl/chk"

	"github.com/cpmech/tokasim/arr"
	"github.com/cpmech/tokasim/coeff"
	"github.com/cpmech/tokasim/conserve"
	"github.com/cpmech/tokasim/derived"
	"github.com/cpmech/tokasim/geometry"
	"github.com/cpmech/tokasim/mhd"
	"github.com/cpmech/tokasim/physics"
	"github.com/cpmech/tokasim/physics/source"
	"github.com/cpmech/tokasim/solver"
	"github.com/cpmech/tokasim/state"
)

// Models bundles the physics collaborators the integrator orchestrates
// every step, in the fixed order named by spec §4.4/§5: transport,
// then sources, then (when configured) bootstrap and ohmic
// resistivity, computed separately from the composite because both
// need the current Newton iterate's safety factor (spec §4.1/§4.2).
type Models struct {
	Transport physics.TransportModel
	Sources   physics.Composite // excludes Bootstrap; Ohmic may be included for metadata only
	Bootstrap *source.Bootstrap // nil when sources.bootstrap is not configured
	Ohmic     *source.Ohmic     // nil when sources.ohmic is not configured
}

// Options configures one Integrator (spec §4.6, §6 time/adaptive block).
type Options struct {
	Theta            float64
	Dt               float64
	MinDt            float64
	MaxDt            float64
	SafetyFactor     float64 // adaptive-dt heuristic safety factor, (0,1]
	AdaptiveOrder    float64 // k in (tol/err)^(1/k), default 2
	MaxDtRetries     int     // bounded Newton-failure retries per step, default 5
	SolverOptions    solver.Options
	ConservationTol  float64
}

// DefaultOptions returns spec-default values for the non-required fields.
func DefaultOptions() Options {
	return Options{
		Theta: 0.5, SafetyFactor: 0.9, AdaptiveOrder: 2, MaxDtRetries: 5,
		SolverOptions: solver.DefaultOptions(),
	}
}

// Progress is delivered to the optional run callback at bounded
// frequency (spec §4.6: "~10 Hz").
type Progress struct {
	Fraction float64
	Time     float64
	LastDt   float64
	Step     int
	Profiles state.CoreProfiles
}

// Result is returned from Run (spec §6 run()).
type Result struct {
	Status     Status
	Profiles   state.CoreProfiles
	Steps      int
	Iterations int
	Derived    derived.Quantities
}

// Integrator owns the authoritative (profiles, t, dt) and drives the
// per-step pipeline (spec §4.6): transport+sources -> coefficients ->
// Newton solve -> commit -> MHD -> derived -> conservation -> adaptive
// dt. Grounded on fem.Solver's allocator-registry shape for the overall
// package structure, generalized to a single concrete struct since this
// core has one solve path, not a pluggable FE element zoo.
type Integrator struct {
	Geometry *geometry.Geometry
	BC       state.BoundaryConditions
	Scales   state.Scales
	Models   Models
	Sawtooth *mhd.Sawtooth // nil disables sawtooth crashes
	Monitor  *conserve.Monitor
	Options  Options

	profiles state.CoreProfiles
	derived  derived.Quantities
	t        float64
	dt       float64
	status   Status
	step     int
	iters    int

	pauseRequested  bool
	cancelRequested bool
}

// New builds an Integrator at t=start with the given initial profiles.
func New(initial state.CoreProfiles, g *geometry.Geometry, bc state.BoundaryConditions, models Models, opt Options) *Integrator {
	if opt.Dt <= 0 {
		chk.Panic("integrator: Options.Dt must be > 0")
	}
	return &Integrator{
		Geometry: g,
		BC:       bc,
		Scales:   state.DefaultScales(),
		Models:   models,
		Monitor:  conserve.NewMonitor(),
		Options:  opt,
		profiles: initial,
		dt:       opt.Dt,
		status:   Idle,
	}
}

// Status returns the integrator's current state-machine status.
func (it *Integrator) Status() Status { return it.status }

// Profiles returns the current committed profiles.
func (it *Integrator) Profiles() state.CoreProfiles { return it.profiles }

// Time returns the current simulation time.
func (it *Integrator) Time() float64 { return it.t }

// CurrentDt returns the step size that will be used for the next step.
func (it *Integrator) CurrentDt() float64 { return it.dt }

// StepCount returns the number of accepted steps so far.
func (it *Integrator) StepCount() int { return it.step }

// Pause requests a pause, observed at the next step boundary (spec §4.6).
func (it *Integrator) Pause() { it.pauseRequested = true }

// Resume clears a pending or active pause.
func (it *Integrator) Resume() {
	it.pauseRequested = false
	if it.status == Paused {
		it.status = Running
	}
}

// IsPaused reports whether the integrator is currently suspended.
func (it *Integrator) IsPaused() bool { return it.status == Paused }

// Cancel requests cancellation, observed at the next step boundary.
func (it *Integrator) Cancel() { it.cancelRequested = true }

// coeffsFn closes over geometry and the physics models to recompute
// transport, sources, bootstrap, and resistivity from a trial profile
// on every Newton iteration (spec §4.4 "express this as an owned
// closure over geometry and parameters").
func (it *Integrator) coeffsFn(p state.CoreProfiles) coeff.Block1DCoeffs {
	it.Geometry.UpdateSafetyFactor(p.Psi.Raw())
	pv := physics.ProfileView{Ti: p.Ti, Te: p.Te, Ne: p.Ne, Psi: p.Psi, Zeff: p.Zeff}

	for _, m := range it.Models.Sources.Models {
		if ta, ok := m.(physics.TimeAware); ok {
			ta.SetTime(it.t)
		}
	}

	tc := it.Models.Transport.ComputeTerms(pv, it.Geometry)
	src := it.Models.Sources.ComputeTerms(pv, it.Geometry)

	n := p.Len()
	jBootstrap := arr.Zeros(n)
	if it.Models.Bootstrap != nil {
		jBootstrap = it.Models.Bootstrap.ComputeTerms(pv, it.Geometry).Sj
	}

	bc := coeff.Build(p, it.Geometry, tc, src, jBootstrap)
	if it.Models.Ohmic != nil {
		eta := it.Models.Ohmic.Resistivity(pv, it.Geometry)
		bc.Psi = bc.Psi.WithResistivity(eta)
	}
	return bc
}
