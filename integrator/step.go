// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package integrator

import (
	"math"

	"github.com/cpmech/gosl/io"

	"github.com/cpmech/tokasim/arr"
	"github.com/cpmech/tokasim/conserve"
	"github.com/cpmech/tokasim/derived"
	"github.com/cpmech/tokasim/physics"
	"github.com/cpmech/tokasim/simerr"
	"github.com/cpmech/tokasim/solver"
	"github.com/cpmech/tokasim/state"
)

const (
	tiTeFloorEV = 1.0
)

// Step advances the integrator by one step, following the pipeline
// named in spec §4.6: transport+sources -> coefficients -> Newton
// solve (halving dt on failure, bounded retries) -> commit -> MHD ->
// derived quantities -> conservation -> adaptive dt. Pause/cancel are
// checked cooperatively at the top of the step (spec §4.6/§5).
func (it *Integrator) Step() (done bool, err error) {
	if it.cancelRequested {
		it.status = Cancelled
		return true, simerr.New(simerr.Cancelled, "integrator: cancelled at step %d", it.step)
	}
	if it.pauseRequested {
		it.status = Paused
		return false, nil
	}
	it.status = Running

	oldCoeffs := it.coeffsFn(it.profiles)

	opt := it.Options.SolverOptions
	opt.Theta = it.Options.Theta
	opt.Dt = it.dt

	maxRetries := it.Options.MaxDtRetries
	if maxRetries <= 0 {
		maxRetries = 5
	}

	var result solver.Result
	var solveErr error
	for retry := 0; retry <= maxRetries; retry++ {
		result, solveErr = solver.Solve(it.profiles, oldCoeffs, it.BC, it.coeffsFn, it.Scales, opt)
		if solveErr == nil {
			break
		}
		if !isRecoverable(solveErr) {
			it.status = Failed
			return true, solveErr
		}
		opt.Dt /= 2
		io.Pfyel("integrator: step %d: Newton failure (%v), halving dt to %v (retry %d/%d)\n",
			it.step, solveErr, opt.Dt, retry+1, maxRetries)
	}
	if solveErr != nil {
		it.status = Failed
		return true, simerr.Wrap(simerr.SolverConvergence, solveErr, "integrator: step %d: exhausted %d dt-halving retries", it.step, maxRetries)
	}
	it.dt = opt.Dt

	profiles := floorPositivity(result.Profiles)

	if it.Sawtooth != nil {
		it.Geometry.UpdateSafetyFactor(profiles.Psi.Raw())
		crash := it.Sawtooth.MaybeTrigger(profiles, it.Geometry, it.t+it.dt)
		if crash.Triggered {
			profiles = crash.Profiles
			io.Pf("integrator: sawtooth crash at t=%v (step %d)\n", crash.CrashTime, it.step)
		}
	}

	it.t += it.dt
	it.step++
	it.iters += result.Iterations
	it.profiles = profiles

	pv := physics.ProfileView{Ti: it.profiles.Ti, Te: it.profiles.Te, Ne: it.profiles.Ne, Psi: it.profiles.Psi, Zeff: it.profiles.Zeff}
	md := it.Models.Sources.ComputeTerms(pv, it.Geometry).Metadata
	it.derived = derived.Compute(it.profiles, it.Geometry, md)

	report := it.Monitor.CheckEnergy(it.profiles, it.Geometry, it.dt)
	if report.Corrected {
		it.profiles = conserve.ApplyCorrection(it.profiles, report)
	}

	it.adaptDt(result)
	it.warnCFL()

	return false, nil
}

func isRecoverable(err error) bool {
	return simerr.Is(err, simerr.SolverConvergence) || simerr.Is(err, simerr.NumericalInstability)
}

// floorPositivity enforces min(Ti,Te) > 0 and the density floor after
// every accepted step (spec §4.6 item 4, §8 #2).
func floorPositivity(p state.CoreProfiles) state.CoreProfiles {
	floored := p.FloorDensity()
	floored.Ti = arr.Max(floored.Ti, arr.Full(floored.Ti.Len(), tiTeFloorEV))
	floored.Te = arr.Max(floored.Te, arr.Full(floored.Te.Len(), tiTeFloorEV))
	return floored
}

// adaptDt implements the spec §4.6 item 7 heuristic:
// dt *= safetyFactor*(tol/err)^(1/k), clamped to [minDt,maxDt]. err is
// taken as the converged residual norm relative to the solver
// tolerance floor, so a cleanly converged step (small err) grows dt and
// a step that barely converged shrinks it.
func (it *Integrator) adaptDt(result solver.Result) {
	if it.Options.MinDt <= 0 || it.Options.MaxDt <= 0 {
		return // adaptive stepping not configured; dt stays fixed
	}
	k := it.Options.AdaptiveOrder
	if k <= 0 {
		k = 2
	}
	tol := it.Options.SolverOptions.Tolerance
	err := result.ResidualNorm
	if err < tol*1e-3 {
		err = tol * 1e-3
	}
	safety := it.Options.SafetyFactor
	if safety <= 0 || safety > 1 {
		safety = 0.9
	}
	factor := safety * math.Pow(tol/err, 1/k)
	newDt := it.dt * factor
	if newDt < it.Options.MinDt {
		newDt = it.Options.MinDt
	}
	if newDt > it.Options.MaxDt {
		newDt = it.Options.MaxDt
	}
	it.dt = newDt
}

// warnCFL logs advisory (non-enforced) CFL warnings (spec §4.6 item 7).
func (it *Integrator) warnCFL() {
	dx := it.Geometry.Mesh.Dr
	pv := physics.ProfileView{Ti: it.profiles.Ti, Te: it.profiles.Te, Ne: it.profiles.Ne, Psi: it.profiles.Psi, Zeff: it.profiles.Zeff}
	tc := it.Models.Transport.ComputeTerms(pv, it.Geometry)

	vMax := tc.V.Abs().MaxElem()
	dMax := math.Max(tc.ChiI.MaxElem(), math.Max(tc.ChiE.MaxElem(), tc.D.MaxElem()))
	if dMax <= 0 {
		dMax = 1e-30
	}

	if vMax > 1e-12 {
		if dtConv := dx / vMax; it.dt > dtConv {
			io.Pfyel("integrator: step %d: dt=%v exceeds convective CFL advisory dt<%v\n", it.step, it.dt, dtConv)
		}
	}
	if dtDiff := 0.5 * dx * dx / dMax; it.dt > dtDiff {
		io.Pfyel("integrator: step %d: dt=%v exceeds diffusive CFL advisory dt<%v\n", it.step, it.dt, dtDiff)
	}
}
