// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package orchestrator

import (
	"encoding/json"

	"github.com/cpmech/gosl/chk"
)

// Checkpoint is a serializable snapshot of the integrator's
// authoritative state (SPEC_FULL supplement: "per-step checkpoint/
// restart record"). Actual file I/O is left to the persistence
// collaborator (spec §6); this type is the hook, not the codec,
// mirroring inp.ReadStudy's struct-to-JSON-file shape without owning
// the NetCDF/JSON writer itself.
type Checkpoint struct {
	Time  float64           `json:"time"`
	Dt    float64           `json:"dt"`
	Step  int               `json:"step"`
	Ti    []float64         `json:"ionTemperature"`
	Te    []float64         `json:"electronTemperature"`
	Ne    []float64         `json:"density"`
	Psi   []float64         `json:"poloidalFlux"`
	Zeff  []float64         `json:"zEff"`
	Extra map[string]string `json:"extra,omitempty"`
}

// Checkpoint snapshots the orchestrator's current state.
func (o *Orchestrator) Checkpoint() Checkpoint {
	p := o.it.Profiles()
	return Checkpoint{
		Time: o.it.Time(),
		Dt:   o.it.CurrentDt(),
		Step: o.it.StepCount(),
		Ti:   p.Ti.Raw(),
		Te:   p.Te.Raw(),
		Ne:   p.Ne.Raw(),
		Psi:  p.Psi.Raw(),
		Zeff: p.Zeff.Raw(),
	}
}

// Marshal encodes a Checkpoint as JSON, mirroring the teacher's use of
// stdlib encoding/json for every on-disk struct (no third-party codec
// in the pack is a better fit for a small flat record like this one).
func (c Checkpoint) Marshal() ([]byte, error) {
	data, err := json.Marshal(c)
	if err != nil {
		return nil, chk.Err("orchestrator: checkpoint marshal failed: %v", err)
	}
	return data, nil
}

// Restore rebuilds CoreProfiles and the run clock from a Checkpoint,
// to hand to a freshly constructed Orchestrator/Integrator.
func (c Checkpoint) Restore() (ti, te, ne, psi, zeff []float64, t, dt float64, step int) {
	return c.Ti, c.Te, c.Ne, c.Psi, c.Zeff, c.Time, c.Dt, c.Step
}
