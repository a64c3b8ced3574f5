// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package config

import (
	"testing"

	"github.com/cpmech/gosl/chk"
)

func validRoot() *Root {
	return &Root{
		Mesh:      MeshConfig{NCells: 50, MajorRadius: 3.0, MinorRadius: 1.0, ToroidalField: 5.0, GeometryType: "circular"},
		Evolution: EvolutionConfig{IonHeat: true, ElectronHeat: true, Density: true, Current: false},
		Solver:    SolverConfig{Type: "newtonRaphson", Tolerance: 1e-6, MaxIterations: 30},
		Scheme:    SchemeConfig{Theta: 0.5},
		Boundaries: map[string]BoundaryFieldConfig{
			"ionTemperature":      {IonTemperature: 100, Type: "dirichlet"},
			"electronTemperature": {ElectronTemperature: 100, Type: "dirichlet"},
			"density":             {Density: 1e19, Type: "dirichlet"},
		},
		Initial: InitialConfig{
			IonTemperatureCenter: 5000, IonTemperatureEdge: 100,
			ElectronTemperatureCenter: 5000, ElectronTemperatureEdge: 100,
			DensityCenter: 1e19, DensityEdge: 1e19, Zeff: 1.5,
		},
		Time:   TimeConfig{Start: 0, End: 10, InitialDt: 0.1},
		Output: OutputConfig{Directory: "/tmp/out", Format: "json"},
	}
}

func TestValidRootPasses(t *testing.T) {
	chk.PrintTitle("a well-formed config passes Validate")
	if err := validRoot().Validate(); err != nil {
		t.Fatalf("expected valid config to pass, got %v", err)
	}
}

func TestCurrentRequiresOhmic(t *testing.T) {
	chk.PrintTitle("evolution.current=true requires sources.ohmic enabled")
	r := validRoot()
	r.Evolution.Current = true
	r.Solver.Type = "newtonRaphson"
	if err := r.Validate(); err == nil {
		t.Fatalf("expected validation failure when current evolves without ohmic source")
	}
	r.Sources.Ohmic = &OhmicConfig{LnLambda: 17}
	if err := r.Validate(); err != nil {
		t.Fatalf("expected validation to pass once ohmic is enabled, got %v", err)
	}
}

func TestTimeEndMustExceedStart(t *testing.T) {
	chk.PrintTitle("time.end must be greater than time.start")
	r := validRoot()
	r.Time.End = r.Time.Start
	if err := r.Validate(); err == nil {
		t.Fatalf("expected validation failure for end <= start")
	}
}

func TestAdaptiveDtClampedWithWarning(t *testing.T) {
	chk.PrintTitle("initialDt outside [minDt,maxDt] is clamped, not rejected")
	r := validRoot()
	r.Time.Adaptive = &AdaptiveConfig{MinDt: 0.5, MaxDt: 2.0, SafetyFactor: 0.9}
	r.Time.InitialDt = 0.01
	if err := r.Validate(); err != nil {
		t.Fatalf("expected clamping, not rejection, got %v", err)
	}
	if r.Time.InitialDt != 0.5 {
		t.Fatalf("expected initialDt clamped to minDt=0.5, got %v", r.Time.InitialDt)
	}
}

func TestLinearSolverRejectsEvolvingCurrent(t *testing.T) {
	chk.PrintTitle("solver.type=linear forbids evolution.current (state-independent coefficients only)")
	r := validRoot()
	r.Solver.Type = "linear"
	r.Evolution.Current = true
	r.Sources.Ohmic = &OhmicConfig{LnLambda: 17}
	if err := r.Validate(); err == nil {
		t.Fatalf("expected linear solver + evolving current to be rejected")
	}
}

func TestUnknownGeometryTypeRejected(t *testing.T) {
	chk.PrintTitle("unknown geometryType is rejected")
	r := validRoot()
	r.Mesh.GeometryType = "tokamak3000"
	if err := r.Validate(); err == nil {
		t.Fatalf("expected unknown geometryType to be rejected")
	}
}
