// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package orchestrator wires a config.Root into physics/transport and
// physics/source models, geometry, boundary conditions, and an
// integrator.Integrator, then exposes the spec §6 orchestration API:
// initialize/run/pause/resume/checkpoint. Grounded on fem.Main/fem.Domain's
// split (Main owns the wiring and top-level driving loop; Domain owns
// state), generalized to this core's single-struct scope.
package orchestrator

import (
	"github.com/cpmech/gosl/chk"

	"github.com/cpmech/tokasim/arr"
	"github.com/cpmech/tokasim/config"
	"github.com/cpmech/tokasim/geometry"
	"github.com/cpmech/tokasim/integrator"
	"github.com/cpmech/tokasim/mhd"
	"github.com/cpmech/tokasim/physics"
	"github.com/cpmech/tokasim/physics/source"
	"github.com/cpmech/tokasim/physics/transport"
	"github.com/cpmech/tokasim/solver"
	"github.com/cpmech/tokasim/state"
)

// Orchestrator owns one configured Integrator and the config it was
// built from (spec §6 Orchestration API).
type Orchestrator struct {
	Config *config.Root
	it     *integrator.Integrator
}

// New validates cfg and wires geometry, physics models, boundary
// conditions, and the initial profile into a ready-to-run Orchestrator
// (spec §6 "initialize(transport, sources, mhd?) must precede run").
// A non-nil provider overrides geometry construction for every
// geometryType; provider may be nil only for "circular".
func New(cfg *config.Root, provider geometry.Provider) (*Orchestrator, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	g, err := buildGeometry(cfg, provider)
	if err != nil {
		return nil, err
	}

	models, sawtooth, err := buildModels(cfg)
	if err != nil {
		return nil, err
	}

	bc := buildBoundaryConditions(cfg)
	initial := buildInitialProfiles(cfg, g.Mesh.NCells)

	opt := integrator.DefaultOptions()
	opt.Theta = cfg.Scheme.Theta
	opt.Dt = cfg.Time.InitialDt
	opt.SolverOptions.Tolerance = cfg.Solver.Tolerance
	opt.SolverOptions.MaxIterations = cfg.Solver.MaxIterations
	opt.SolverOptions.Evolve = solver.EvolveMask{
		Ti:  cfg.Evolution.IonHeat,
		Te:  cfg.Evolution.ElectronHeat,
		Ne:  cfg.Evolution.Density,
		Psi: cfg.Evolution.Current,
	}
	if cfg.Solver.Type == "optimizer" {
		opt.SolverOptions.Method = solver.Iterative
	}
	if cfg.Time.Adaptive != nil {
		opt.MinDt = cfg.Time.Adaptive.MinDt
		opt.MaxDt = cfg.Time.Adaptive.MaxDt
		opt.SafetyFactor = cfg.Time.Adaptive.SafetyFactor
	}

	it := integrator.New(initial, g, bc, models, opt)
	it.Sawtooth = sawtooth

	return &Orchestrator{Config: cfg, it: it}, nil
}

func buildGeometry(cfg *config.Root, provider geometry.Provider) (*geometry.Geometry, error) {
	mesh := geometry.NewMesh(cfg.Mesh.NCells, cfg.Mesh.MinorRadius)
	if provider != nil {
		return provider.Build(mesh, cfg.Mesh.MajorRadius, cfg.Mesh.MinorRadius, cfg.Mesh.ToroidalField), nil
	}
	switch cfg.Mesh.GeometryType {
	case "circular":
		return geometry.Circular{}.Build(mesh, cfg.Mesh.MajorRadius, cfg.Mesh.MinorRadius, cfg.Mesh.ToroidalField), nil
	default:
		return nil, chk.Err("orchestrator: geometryType %q requires an explicit geometry.Provider passed to New", cfg.Mesh.GeometryType)
	}
}

func buildInitialProfiles(cfg *config.Root, n int) state.CoreProfiles {
	ti := make([]float64, n)
	te := make([]float64, n)
	ne := make([]float64, n)
	for i := 0; i < n; i++ {
		t := (float64(i) + 0.5) / float64(n)
		ti[i] = cfg.Initial.IonTemperatureCenter + (cfg.Initial.IonTemperatureEdge-cfg.Initial.IonTemperatureCenter)*t
		te[i] = cfg.Initial.ElectronTemperatureCenter + (cfg.Initial.ElectronTemperatureEdge-cfg.Initial.ElectronTemperatureCenter)*t
		ne[i] = cfg.Initial.DensityCenter + (cfg.Initial.DensityEdge-cfg.Initial.DensityCenter)*t
	}
	zeff := cfg.Initial.Zeff
	if zeff <= 0 {
		zeff = 1.5
	}
	return state.NewCoreProfilesScalarZeff(arr.New(ti), arr.New(te), arr.New(ne), arr.Zeros(n), zeff)
}

func buildBoundaryConditions(cfg *config.Root) state.BoundaryConditions {
	bcFor := func(name string, v float64, kind string) state.FieldBC {
		right := state.ValueBC(v)
		if kind == "neumann" {
			right = state.GradientBC(v)
		}
		return state.FieldBC{Left: state.SymmetricAxis(), Right: right}
	}
	tiCfg := cfg.Boundaries["ionTemperature"]
	teCfg := cfg.Boundaries["electronTemperature"]
	neCfg := cfg.Boundaries["density"]
	return state.BoundaryConditions{
		Ti:  bcFor("ionTemperature", tiCfg.IonTemperature, tiCfg.Type),
		Te:  bcFor("electronTemperature", teCfg.ElectronTemperature, teCfg.Type),
		Ne:  bcFor("density", neCfg.Density, neCfg.Type),
		Psi: state.FieldBC{Left: state.SymmetricAxis(), Right: state.ValueBC(0)},
	}
}

func buildModels(cfg *config.Root) (integrator.Models, *mhd.Sawtooth, error) {
	t, err := buildTransport(cfg)
	if err != nil {
		return integrator.Models{}, nil, err
	}

	var active []physics.SourceModel
	if o := cfg.Sources.Ohmic; o != nil {
		active = append(active, source.NewOhmic(o.LnLambda))
	}
	if f := cfg.Sources.Fusion; f != nil {
		active = append(active, source.NewFusion(f.Dilution, f.DTRatio))
	}
	if e := cfg.Sources.Exchange; e != nil {
		active = append(active, source.NewExchange(e.IonMassRatio))
	}
	if cfg.Sources.Bremsstrahlung != nil {
		active = append(active, source.NewBremsstrahlung())
	}
	if r := cfg.Sources.ImpurityRadiation; r != nil {
		active = append(active, source.NewImpurityRadiation(r.Z, r.FractionOfNe))
	}
	if p := cfg.Sources.GasPuff; p != nil {
		active = append(active, source.NewGasPuff(p.RateM3PerS, p.RhoDep, p.Width))
	}
	if ec := cfg.Sources.ECRH; ec != nil {
		nominal := source.NewECRH(ec.PowerMW, ec.RhoDep, ec.Width, ec.ECCDFrac)
		if ec.PowerWaveform != "" {
			waveform, err := cfg.Func(ec.PowerWaveform)
			if err != nil {
				return integrator.Models{}, nil, err
			}
			active = append(active, source.NewTimeVaryingECRH(nominal, waveform))
		} else {
			active = append(active, nominal)
		}
	}

	var bootstrap *source.Bootstrap
	if b := cfg.Sources.Bootstrap; b != nil {
		m := source.NewBootstrap()
		if b.MagnitudeClampMAm2 > 0 {
			m.MagnitudeClampMAm2 = b.MagnitudeClampMAm2
		}
		bootstrap = &m
	}

	var ohmic *source.Ohmic
	if o := cfg.Sources.Ohmic; o != nil {
		m := source.NewOhmic(o.LnLambda)
		ohmic = &m
	}

	models := integrator.Models{
		Transport: t,
		Sources:   physics.NewComposite(active...),
		Bootstrap: bootstrap,
		Ohmic:     ohmic,
	}

	var sawtooth *mhd.Sawtooth
	if cfg.MHD.SawtoothEnabled {
		sawtooth = mhd.NewSawtooth(cfg.MHD.MinCrashInterval)
		if cfg.MHD.QCritical > 0 {
			sawtooth.QCritical = cfg.MHD.QCritical
		}
		if cfg.MHD.InversionRadius > 0 {
			sawtooth.InversionRadius = cfg.MHD.InversionRadius
		}
	}

	return models, sawtooth, nil
}

func buildTransport(cfg *config.Root) (physics.TransportModel, error) {
	var base physics.TransportModel
	switch cfg.Transport.ModelType {
	case "constant":
		c := cfg.Transport.Constant
		base = transport.NewConstant(c.ChiI, c.ChiE, c.D, c.V)
	case "bohmGyroBohm":
		b := cfg.Transport.BohmGyroBohm
		base = transport.NewBohmGyroBohm(b.ChiBCoeff, b.ChiGBCoeff, b.DToChiRatio, b.PinchFrac)
	case "qlknn":
		b := cfg.Transport.BohmGyroBohm
		critGrad := b.CritGrad
		if critGrad <= 0 {
			critGrad = 1.0
		}
		base = transport.NewQLKNNSurrogate(b.ChiBCoeff, b.ChiGBCoeff, critGrad)
	default:
		return nil, chk.Err("orchestrator: transport.modelType must be one of constant|bohmGyroBohm|qlknn (got %q)", cfg.Transport.ModelType)
	}
	if pc := cfg.Transport.PedestalConfig; pc != nil && pc.Enabled {
		base = transport.NewPedestalModel(base, pc.RhoTop, pc.Suppression)
	}
	return base, nil
}

// Status returns the underlying integrator's state-machine status.
func (o *Orchestrator) Status() integrator.Status { return o.it.Status() }

// Run advances the simulation from its current time to cfg.Time.End
// (spec §6 run()).
func (o *Orchestrator) Run(progress func(integrator.Progress)) (integrator.Result, error) {
	return o.it.Run(o.Config.Time.End, progress)
}

// Pause requests a pause observed at the next step boundary.
func (o *Orchestrator) Pause() { o.it.Pause() }

// Resume clears a pending or active pause.
func (o *Orchestrator) Resume() { o.it.Resume() }

// IsPaused reports whether the run is currently suspended.
func (o *Orchestrator) IsPaused() bool { return o.it.IsPaused() }

// Cancel requests cancellation observed at the next step boundary.
func (o *Orchestrator) Cancel() { o.it.Cancel() }

// Profiles returns the current committed profiles.
func (o *Orchestrator) Profiles() state.CoreProfiles { return o.it.Profiles() }

// Time returns the current simulation time.
func (o *Orchestrator) Time() float64 { return o.it.Time() }
