// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package orchestrator

import (
	"testing"

	"github.com/cpmech/gosl/chk"

	"github.com/cpmech/tokasim/config"
)

func minimalConfig() *config.Root {
	return &config.Root{
		Mesh: config.MeshConfig{NCells: 20, MajorRadius: 3.0, MinorRadius: 1.0, ToroidalField: 5.0, GeometryType: "circular"},
		Evolution: config.EvolutionConfig{IonHeat: true, ElectronHeat: true, Density: true, Current: false},
		Solver:    config.SolverConfig{Type: "newtonRaphson", Tolerance: 1e-6, MaxIterations: 30},
		Scheme:    config.SchemeConfig{Theta: 0.5},
		Boundaries: map[string]config.BoundaryFieldConfig{
			"ionTemperature":      {IonTemperature: 100, Type: "dirichlet"},
			"electronTemperature": {ElectronTemperature: 100, Type: "dirichlet"},
			"density":             {Density: 1e19, Type: "dirichlet"},
		},
		Initial: config.InitialConfig{
			IonTemperatureCenter: 3000, IonTemperatureEdge: 100,
			ElectronTemperatureCenter: 3000, ElectronTemperatureEdge: 100,
			DensityCenter: 1e19, DensityEdge: 1e19, Zeff: 1.5,
		},
		Transport: config.TransportConfig{
			ModelType: "constant",
			Constant:  config.ConstantTransport{ChiI: 1.0, ChiE: 1.0, D: 0.1, V: 0.0},
		},
		Time:   config.TimeConfig{Start: 0, End: 0.05, InitialDt: 0.01},
		Output: config.OutputConfig{Directory: "/tmp/out", Format: "json"},
	}
}

func TestNewWiresAValidConfigWithoutError(t *testing.T) {
	chk.PrintTitle("orchestrator.New wires a minimal valid config without error")
	o, err := New(minimalConfig(), nil)
	if err != nil {
		t.Fatalf("unexpected wiring error: %v", err)
	}
	if o.Profiles().Len() != 20 {
		t.Fatalf("expected 20-cell initial profile, got %d", o.Profiles().Len())
	}
}

func TestRunReachesConfiguredEndTime(t *testing.T) {
	chk.PrintTitle("orchestrator.Run advances to the config's time.end")
	o, err := New(minimalConfig(), nil)
	if err != nil {
		t.Fatalf("unexpected wiring error: %v", err)
	}
	result, err := o.Run(nil)
	if err != nil {
		t.Fatalf("unexpected run error: %v", err)
	}
	if result.Steps == 0 {
		t.Fatalf("expected at least one step")
	}
	if o.Time() < 0.05 {
		t.Fatalf("expected time to reach 0.05, got %v", o.Time())
	}
}

func TestCheckpointRoundTripsThroughJSON(t *testing.T) {
	chk.PrintTitle("orchestrator.Checkpoint marshals to JSON")
	o, err := New(minimalConfig(), nil)
	if err != nil {
		t.Fatalf("unexpected wiring error: %v", err)
	}
	cp := o.Checkpoint()
	data, err := cp.Marshal()
	if err != nil {
		t.Fatalf("unexpected marshal error: %v", err)
	}
	if len(data) == 0 {
		t.Fatalf("expected non-empty JSON output")
	}
	ti, _, _, _, _, tm, _, step := cp.Restore()
	if len(ti) != 20 {
		t.Fatalf("expected 20-length Ti slice, got %d", len(ti))
	}
	if tm != o.Time() || step != o.it.StepCount() {
		t.Fatalf("expected checkpoint time/step to match orchestrator state")
	}
}

func TestUnsupportedGeometryTypeRequiresProvider(t *testing.T) {
	chk.PrintTitle("a non-circular geometryType without an explicit provider is rejected")
	cfg := minimalConfig()
	cfg.Mesh.GeometryType = "chease"
	if _, err := New(cfg, nil); err == nil {
		t.Fatalf("expected an error for chease geometryType without a provider")
	}
}
