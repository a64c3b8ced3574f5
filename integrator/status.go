// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package integrator implements the time integrator and adaptive
// stepper (spec §4.6): the Idle/Running/Paused/Cancelled/Completed/
// Failed state machine that owns the authoritative (profiles, t, dt)
// and drives one step through transport -> sources -> coefficients ->
// Newton solve -> MHD -> derived quantities -> conservation check.
package integrator

// Status is one state in the integrator's state machine (spec §4.6).
type Status int

const (
	Idle Status = iota
	Running
	Paused
	Cancelled
	Completed
	Failed
)

func (s Status) String() string {
	switch s {
	case Idle:
		return "Idle"
	case Running:
		return "Running"
	case Paused:
		return "Paused"
	case Cancelled:
		return "Cancelled"
	case Completed:
		return "Completed"
	case Failed:
		return "Failed"
	default:
		return "Unknown"
	}
}
