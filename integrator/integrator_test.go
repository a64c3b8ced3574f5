// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package integrator

import (
	"testing"

	"github.com/cpmech/gosl/chk"

	"github.com/cpmech/tokasim/arr"
	"github.com/cpmech/tokasim/geometry"
	"github.com/cpmech/tokasim/physics"
	"github.com/cpmech/tokasim/physics/transport"
	"github.com/cpmech/tokasim/state"
)

func testGeometry(n int) *geometry.Geometry {
	mesh := geometry.NewMesh(n, 1.0)
	return geometry.Circular{}.Build(mesh, 3.0, 1.0, 5.0)
}

func flatBC(tiEdge, teEdge, neEdge float64) state.BoundaryConditions {
	return state.BoundaryConditions{
		Ti:  state.FieldBC{Left: state.SymmetricAxis(), Right: state.ValueBC(tiEdge)},
		Te:  state.FieldBC{Left: state.SymmetricAxis(), Right: state.ValueBC(teEdge)},
		Ne:  state.FieldBC{Left: state.SymmetricAxis(), Right: state.ValueBC(neEdge)},
		Psi: state.FieldBC{Left: state.SymmetricAxis(), Right: state.ValueBC(0)},
	}
}

func newTestIntegrator(n int) *Integrator {
	g := testGeometry(n)
	ti := arr.Full(n, 3000.0)
	profiles := state.NewCoreProfilesScalarZeff(ti, ti, arr.Full(n, 1e19), arr.Zeros(n), 1.5)
	bc := flatBC(100, 100, 1e19)
	models := Models{
		Transport: transport.NewConstant(1.0, 1.0, 0.1, 0.0),
		Sources:   physics.NewComposite(),
	}
	opt := DefaultOptions()
	opt.Dt = 0.01
	opt.SolverOptions.MaxIterations = 30
	return New(profiles, g, bc, models, opt)
}

func TestIntegratorStartsIdleAndTransitionsToRunning(t *testing.T) {
	chk.PrintTitle("integrator begins Idle and transitions to Running on the first step")
	it := newTestIntegrator(10)
	if it.Status() != Idle {
		t.Fatalf("expected initial status Idle, got %v", it.Status())
	}
	if _, err := it.Step(); err != nil {
		t.Fatalf("unexpected step error: %v", err)
	}
	if it.Status() != Running {
		t.Fatalf("expected Running after a successful step, got %v", it.Status())
	}
	if it.step != 1 {
		t.Fatalf("expected step counter 1, got %d", it.step)
	}
}

func TestPauseIsObservedAtNextStepBoundary(t *testing.T) {
	chk.PrintTitle("pause request is observed at the next step boundary, not mid-step")
	it := newTestIntegrator(10)
	if _, err := it.Step(); err != nil {
		t.Fatalf("unexpected step error: %v", err)
	}
	it.Pause()
	done, err := it.Step()
	if err != nil {
		t.Fatalf("unexpected step error: %v", err)
	}
	if done {
		t.Fatalf("pause should not report done=true")
	}
	if it.Status() != Paused {
		t.Fatalf("expected Paused, got %v", it.Status())
	}
	stepsBefore := it.step
	it.Resume()
	if it.Status() != Running {
		t.Fatalf("expected Running after Resume, got %v", it.Status())
	}
	if _, err := it.Step(); err != nil {
		t.Fatalf("unexpected step error after resume: %v", err)
	}
	if it.step != stepsBefore+1 {
		t.Fatalf("expected step to advance after resume, got %d -> %d", stepsBefore, it.step)
	}
}

func TestCancelStopsTheIntegrator(t *testing.T) {
	chk.PrintTitle("cancel request surfaces a Cancelled status and an error")
	it := newTestIntegrator(10)
	it.Cancel()
	done, err := it.Step()
	if !done {
		t.Fatalf("expected cancel to report done=true")
	}
	if err == nil {
		t.Fatalf("expected a cancellation error")
	}
	if it.Status() != Cancelled {
		t.Fatalf("expected Cancelled, got %v", it.Status())
	}
}

func TestRunReachesCompletionAtEndTime(t *testing.T) {
	chk.PrintTitle("Run advances to tEnd and reports Completed")
	it := newTestIntegrator(10)
	result, err := it.Run(0.05, nil)
	if err != nil {
		t.Fatalf("unexpected run error: %v", err)
	}
	if result.Status != Completed {
		t.Fatalf("expected Completed, got %v", result.Status)
	}
	if it.Time() < 0.05 {
		t.Fatalf("expected integrator time to reach tEnd, got %v", it.Time())
	}
	if result.Steps == 0 {
		t.Fatalf("expected at least one step to have run")
	}
}

func TestRunStopsAtPause(t *testing.T) {
	chk.PrintTitle("Run stops early when a pause is requested mid-run")
	it := newTestIntegrator(10)
	steps := 0
	result, err := it.Run(1000.0, func(p Progress) {
		steps++
		if steps == 1 {
			it.Pause()
		}
	})
	if err != nil {
		t.Fatalf("unexpected run error: %v", err)
	}
	if result.Status != Paused {
		t.Fatalf("expected Paused, got %v", result.Status)
	}
	if it.Time() >= 1000.0 {
		t.Fatalf("expected run to stop well before tEnd, got t=%v", it.Time())
	}
}
