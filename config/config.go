// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package config implements the JSON-backed configuration tree named
// in spec §6, mirroring the teacher's inp.Data/inp.SolverData pattern:
// a struct tree with json tags, and a Validate method enforcing the
// cross-component rules procedurally (spec §6, §7 Configuration).
package config

import (
	"encoding/json"
	"os"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/fun"
	"github.com/cpmech/gosl/fun/dbf"
	"github.com/cpmech/gosl/io"
)

// MeshConfig mirrors spec §6's mesh block.
type MeshConfig struct {
	NCells        int     `json:"nCells"`
	MajorRadius   float64 `json:"majorRadius"`
	MinorRadius   float64 `json:"minorRadius"`
	ToroidalField float64 `json:"toroidalField"`
	GeometryType  string  `json:"geometryType"` // circular | chease | eqdsk
}

// EvolutionConfig selects which fields are evolved (spec §6).
type EvolutionConfig struct {
	IonHeat      bool `json:"ionHeat"`
	ElectronHeat bool `json:"electronHeat"`
	Density      bool `json:"density"`
	Current      bool `json:"current"`
}

// SolverConfig mirrors spec §6's solver block.
type SolverConfig struct {
	Type          string  `json:"type"` // linear | newtonRaphson | optimizer
	Tolerance     float64 `json:"tolerance"`
	MaxIterations int     `json:"maxIterations"`
}

// SchemeConfig holds the theta-method weight (spec §4.4).
type SchemeConfig struct {
	Theta float64 `json:"theta"`
}

// BoundaryFieldConfig holds edge boundary values and the constraint type
// applied at the edge (the axis is always symmetric); only the value
// member matching the field it is stored under is read.
type BoundaryFieldConfig struct {
	IonTemperature      float64 `json:"ionTemperature"`
	ElectronTemperature float64 `json:"electronTemperature"`
	Density             float64 `json:"density"`
	Type                string  `json:"type"` // dirichlet | neumann
}

// TransportConfig selects the transport model and its parameters (spec §6).
type TransportConfig struct {
	ModelType      string             `json:"modelType"` // constant | bohmGyroBohm | qlknn
	Constant       ConstantTransport  `json:"constant"`
	BohmGyroBohm   BgBTransport       `json:"bohmGyroBohm"`
	PedestalConfig *PedestalConfig    `json:"pedestal,omitempty"`
}

// ConstantTransport parameterizes physics/transport.Constant.
type ConstantTransport struct {
	ChiI float64 `json:"chiI"`
	ChiE float64 `json:"chiE"`
	D    float64 `json:"d"`
	V    float64 `json:"v"`
}

// BgBTransport parameterizes physics/transport.BohmGyroBohm, and its
// CritGrad also seeds physics/transport.QLKNNSurrogate when
// modelType=="qlknn" (the surrogate reuses BgB calibration
// coefficients, spec §2 "optional neural-net surrogate" stand-in).
type BgBTransport struct {
	ChiBCoeff   float64 `json:"chiBCoeff"`
	ChiGBCoeff  float64 `json:"chiGBCoeff"`
	DToChiRatio float64 `json:"dToChiRatio"`
	PinchFrac   float64 `json:"pinchFrac"`
	CritGrad    float64 `json:"critGrad,omitempty"`
}

// PedestalConfig enables the supplemented H-mode edge transport barrier
// decorator (SPEC_FULL supplement 2).
type PedestalConfig struct {
	Enabled     bool    `json:"enabled"`
	RhoTop      float64 `json:"rhoTop"`
	Suppression float64 `json:"suppression"`
}

// SourcesConfig enables/parameterizes each source model (spec §6).
type SourcesConfig struct {
	Ohmic         *OhmicConfig         `json:"ohmic,omitempty"`
	Fusion        *FusionConfig        `json:"fusion,omitempty"`
	Exchange      *ExchangeConfig      `json:"exchange,omitempty"`
	ECRH          *ECRHConfig          `json:"ecrh,omitempty"`
	Bremsstrahlung *struct{}           `json:"bremsstrahlung,omitempty"`
	ImpurityRadiation *ImpurityConfig  `json:"impurityRadiation,omitempty"`
	GasPuff       *GasPuffConfig       `json:"gasPuff,omitempty"`
	Bootstrap     *BootstrapConfig     `json:"bootstrap,omitempty"`
}

// OhmicConfig parameterizes physics/source.Ohmic.
type OhmicConfig struct {
	LnLambda float64 `json:"lnLambda"`
}

// FusionConfig parameterizes physics/source.Fusion.
type FusionConfig struct {
	Dilution float64 `json:"dilution"`
	DTRatio  float64 `json:"dtRatio"`
}

// ExchangeConfig parameterizes physics/source.Exchange.
type ExchangeConfig struct {
	IonMassRatio float64 `json:"ionMassRatio"`
}

// ECRHConfig parameterizes physics/source.ECRH. PowerWaveform, if
// named, looks up a ramp function from Root.Functions instead of the
// constant PowerMW (SPEC_FULL domain-stack wiring of gosl/fun).
type ECRHConfig struct {
	PowerMW        float64 `json:"powerMW"`
	PowerWaveform  string  `json:"powerWaveform,omitempty"`
	RhoDep         float64 `json:"rhoDep"`
	Width          float64 `json:"width"`
	ECCDFrac       float64 `json:"eccdFrac"`
}

// ImpurityConfig parameterizes physics/source.ImpurityRadiation.
type ImpurityConfig struct {
	Z            int     `json:"z"`
	FractionOfNe float64 `json:"fractionOfNe"`
}

// GasPuffConfig parameterizes physics/source.GasPuff.
type GasPuffConfig struct {
	RateM3PerS float64 `json:"rateM3PerS"`
	RhoDep     float64 `json:"rhoDep"`
	Width      float64 `json:"width"`
}

// BootstrapConfig parameterizes physics/source.Bootstrap.
type BootstrapConfig struct {
	MagnitudeClampMAm2 float64 `json:"magnitudeClampMAm2"`
}

// MHDConfig enables the sawtooth crash model (spec §6).
type MHDConfig struct {
	SawtoothEnabled  bool    `json:"sawtoothEnabled"`
	QCritical        float64 `json:"qCritical"`
	InversionRadius  float64 `json:"inversionRadius"`
	MinCrashInterval float64 `json:"minCrashInterval"`
}

// AdaptiveConfig parameterizes the adaptive dt heuristic (spec §4.6).
type AdaptiveConfig struct {
	MinDt        float64 `json:"minDt"`
	MaxDt        float64 `json:"maxDt"`
	SafetyFactor float64 `json:"safetyFactor"`
}

// TimeConfig mirrors spec §6's time block.
type TimeConfig struct {
	Start      float64         `json:"start"`
	End        float64         `json:"end"`
	InitialDt  float64         `json:"initialDt"`
	Adaptive   *AdaptiveConfig `json:"adaptive,omitempty"`
}

// OutputConfig mirrors spec §6's output block (the codec/collaborator
// itself is out of scope, spec §1; this just carries the requested
// shape through to that collaborator).
type OutputConfig struct {
	SaveInterval int    `json:"saveInterval,omitempty"`
	Directory    string `json:"directory"`
	Format       string `json:"format"` // json | hdf5 | netcdf
}

// FuncData names one gosl/fun time-profile (ramp, step, etc.), mirroring
// the teacher's inp.FuncData shape exactly (spec's "named,
// parameterizable scalar functions for boundary-condition ramps").
type FuncData struct {
	Name string     `json:"name"`
	Type string     `json:"type"` // cte | rmp | ...
	Prms dbf.Params `json:"prms"`
}

// InitialConfig parameterizes the flat-or-linear initial profile
// builder (spec §3: CoreProfiles is "created by initializer from
// boundary/profile specs"). Each field ramps linearly in radius from its
// Center value at the axis to its Edge value at r=a, sampled at the cell
// centres (so the last cell lies just inside Edge); a spatially flat
// profile is the Center==Edge special case.
type InitialConfig struct {
	IonTemperatureCenter      float64 `json:"ionTemperatureCenter"`
	IonTemperatureEdge        float64 `json:"ionTemperatureEdge"`
	ElectronTemperatureCenter float64 `json:"electronTemperatureCenter"`
	ElectronTemperatureEdge   float64 `json:"electronTemperatureEdge"`
	DensityCenter             float64 `json:"densityCenter"`
	DensityEdge               float64 `json:"densityEdge"`
	Zeff                      float64 `json:"zeff"`
}

// Root is the top-level configuration tree (spec §6).
type Root struct {
	Mesh       MeshConfig                    `json:"mesh"`
	Evolution  EvolutionConfig               `json:"evolution"`
	Solver     SolverConfig                  `json:"solver"`
	Scheme     SchemeConfig                  `json:"scheme"`
	Boundaries map[string]BoundaryFieldConfig `json:"boundaries"`
	Initial    InitialConfig                 `json:"initial"`
	Transport  TransportConfig               `json:"transport"`
	Sources    SourcesConfig                 `json:"sources"`
	MHD        MHDConfig                     `json:"mhd"`
	Time       TimeConfig                    `json:"time"`
	Output     OutputConfig                  `json:"output"`
	Functions  []FuncData                    `json:"functions,omitempty"`
}

// Load reads and unmarshals a Root from a JSON file, mirroring
// inp.ReadStudy's file-to-struct shape, then validates it.
func Load(path string) (*Root, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, chk.Err("config: cannot read %q: %v", path, err)
	}
	var r Root
	if err := json.Unmarshal(data, &r); err != nil {
		return nil, chk.Err("config: cannot parse %q: %v", path, err)
	}
	if err := r.Validate(); err != nil {
		return nil, err
	}
	return &r, nil
}

// Func looks up a named function from Root.Functions, mirroring
// inp.FuncsData.Get. Returns fun.Zero's function for "zero"/"none".
func (r *Root) Func(name string) (fun.TimeSpace, error) {
	if name == "" || name == "zero" || name == "none" {
		return &fun.Zero, nil
	}
	for _, f := range r.Functions {
		if f.Name == name {
			fcn, err := fun.New(f.Type, f.Prms)
			if err != nil {
				return nil, chk.Err("config: function %q: %v", name, err)
			}
			return fcn, nil
		}
	}
	return nil, chk.Err("config: no function named %q", name)
}

// Validate enforces the cross-component rules named in spec §6/§7
// Configuration. Configuration errors are fatal at init, never during
// steps (spec §7); callers should treat a non-nil error as
// construction-time failure, never recoverable mid-run.
func (r *Root) Validate() error {
	if r.Mesh.NCells <= 0 {
		return chk.Err("config: mesh.nCells must be > 0 (got %d)", r.Mesh.NCells)
	}
	if r.Mesh.MajorRadius <= 0 || r.Mesh.MinorRadius <= 0 {
		return chk.Err("config: mesh.majorRadius and minorRadius must be > 0")
	}
	switch r.Mesh.GeometryType {
	case "circular", "chease", "eqdsk":
	default:
		return chk.Err("config: mesh.geometryType must be one of circular|chease|eqdsk (got %q)", r.Mesh.GeometryType)
	}
	switch r.Solver.Type {
	case "linear", "newtonRaphson", "optimizer":
	default:
		return chk.Err("config: solver.type must be one of linear|newtonRaphson|optimizer (got %q)", r.Solver.Type)
	}
	if r.Solver.Tolerance <= 0 {
		return chk.Err("config: solver.tolerance must be > 0")
	}
	if r.Solver.MaxIterations <= 0 {
		return chk.Err("config: solver.maxIterations must be > 0")
	}
	if r.Solver.Type == "linear" && r.Evolution.Current {
		return chk.Err("config: solver.type=linear requires evolution.current=false (state-independent coefficients only)")
	}
	if r.Scheme.Theta < 0 || r.Scheme.Theta > 1 {
		return chk.Err("config: scheme.theta must be in [0,1] (got %v)", r.Scheme.Theta)
	}
	if r.Time.End <= r.Time.Start {
		return chk.Err("config: time.end must be > time.start")
	}
	if r.Time.InitialDt <= 0 {
		return chk.Err("config: time.initialDt must be > 0")
	}
	if r.Time.Adaptive != nil {
		a := r.Time.Adaptive
		if a.MinDt <= 0 || a.MaxDt <= 0 || a.MinDt >= a.MaxDt {
			return chk.Err("config: time.adaptive requires 0 < minDt < maxDt")
		}
		if a.SafetyFactor <= 0 || a.SafetyFactor > 1 {
			return chk.Err("config: time.adaptive.safetyFactor must be in (0,1]")
		}
		if r.Time.InitialDt < a.MinDt {
			io.Pfyel("config: time.initialDt=%v below minDt=%v, clamping\n", r.Time.InitialDt, a.MinDt)
			r.Time.InitialDt = a.MinDt
		}
		if r.Time.InitialDt > a.MaxDt {
			io.Pfyel("config: time.initialDt=%v above maxDt=%v, clamping\n", r.Time.InitialDt, a.MaxDt)
			r.Time.InitialDt = a.MaxDt
		}
	}
	if r.Evolution.Current && r.Sources.Ohmic == nil {
		return chk.Err("config: evolution.current=true requires sources.ohmic to be enabled")
	}
	for _, name := range []string{"ionTemperature", "electronTemperature", "density"} {
		bc, ok := r.Boundaries[name]
		if !ok {
			return chk.Err("config: boundaries.%s is required", name)
		}
		if bc.Type != "dirichlet" && bc.Type != "neumann" {
			return chk.Err("config: boundaries.%s.type must be dirichlet|neumann (got %q)", name, bc.Type)
		}
	}
	if r.Initial.IonTemperatureCenter <= 0 || r.Initial.ElectronTemperatureCenter <= 0 || r.Initial.DensityCenter <= 0 {
		return chk.Err("config: initial.{ionTemperatureCenter,electronTemperatureCenter,densityCenter} must be > 0")
	}
	switch r.Output.Format {
	case "json", "hdf5", "netcdf":
	default:
		return chk.Err("config: output.format must be one of json|hdf5|netcdf (got %q)", r.Output.Format)
	}
	return nil
}
