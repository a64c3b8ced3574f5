// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package integrator

import (
	"time"

	"github.com/cpmech/gosl/io"
)

// progressInterval bounds the progress callback to roughly 10 Hz
// (spec §4.6), mirroring fem.Solver's time.Now/time.Since CPU-time
// reporting idiom.
const progressInterval = 100 * time.Millisecond

// Run drives the integrator from its current time to tEnd, calling
// progressFn (if non-nil) at bounded frequency and at completion. It
// returns once the run reaches tEnd, is paused, is cancelled, or fails
// (spec §4.6 state machine, §6 run()).
func (it *Integrator) Run(tEnd float64, progressFn func(Progress)) (Result, error) {
	if it.status == Idle {
		it.status = Running
	}
	it.logBanner(tEnd)
	last := time.Now()
	for it.t < tEnd {
		done, err := it.Step()
		if err != nil {
			return it.result(), err
		}
		if done {
			break
		}
		if it.status == Paused {
			break
		}
		if progressFn != nil && time.Since(last) >= progressInterval {
			progressFn(it.snapshot(tEnd))
			last = time.Now()
		}
	}
	if it.status == Running && it.t >= tEnd {
		it.status = Completed
	}
	if progressFn != nil {
		progressFn(it.snapshot(tEnd))
	}
	return it.result(), nil
}

func (it *Integrator) snapshot(tEnd float64) Progress {
	fraction := 1.0
	if tEnd > 0 {
		fraction = it.t / tEnd
		if fraction > 1 {
			fraction = 1
		}
	}
	return Progress{
		Fraction: fraction,
		Time:     it.t,
		LastDt:   it.dt,
		Step:     it.step,
		Profiles: it.profiles,
	}
}

func (it *Integrator) result() Result {
	return Result{
		Status:     it.status,
		Profiles:   it.profiles,
		Steps:      it.step,
		Iterations: it.iters,
		Derived:    it.derived,
	}
}

// logBanner prints a start-of-run banner in the teacher's io.PfWhite
// startup-message style (spec §4.6, grounded on fem/main.go).
func (it *Integrator) logBanner(tEnd float64) {
	io.PfWhite("tokasim: starting run t=%v -> %v dt=%v\n", it.t, tEnd, it.dt)
}
