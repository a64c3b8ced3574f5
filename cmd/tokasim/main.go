// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"flag"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"

	"github.com/cpmech/tokasim/config"
	"github.com/cpmech/tokasim/integrator"
	"github.com/cpmech/tokasim/orchestrator"
)

func main() {

	// catch errors
	defer func() {
		if err := recover(); err != nil {
			chk.Verbose = true
			for i := 8; i > 3; i-- {
				chk.CallerInfo(i)
			}
			io.PfRed("ERROR: %v\n", err)
		}
	}()

	// message
	io.PfWhite("\ntokasim -- tokamak core transport simulator\n\n")

	// configuration filenamepath
	flag.Parse()
	if len(flag.Args()) < 1 {
		chk.Panic("Please, provide a configuration filename. Ex.: shot.json")
	}
	fnamepath := flag.Arg(0)

	// load and validate configuration
	cfg, err := config.Load(fnamepath)
	if err != nil {
		chk.Panic("cannot load configuration: %v\n", err)
		return
	}

	// wire physics models, geometry, and the integrator
	orch, err := orchestrator.New(cfg, nil)
	if err != nil {
		chk.Panic("cannot initialize simulation: %v\n", err)
		return
	}

	// run simulation, printing progress at the throttled rate the
	// integrator itself enforces (spec §4.6 "~10 Hz")
	result, err := orch.Run(func(p integrator.Progress) {
		io.Pf("t=%v step=%d dt=%v (%.1f%%)\n", p.Time, p.Step, p.LastDt, 100*p.Fraction)
	})
	if err != nil {
		chk.Panic("simulation run failed: %v\n", err)
		return
	}

	io.PfWhite("\nfinished: %d steps, %d Newton iterations, status=%v\n", result.Steps, result.Iterations, result.Status)
	io.Pf("final Q=%.4g\n", result.Derived.QFusion)
}
