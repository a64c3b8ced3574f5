// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package simerr defines the typed, recoverable error taxonomy (spec
// §7) that crosses the boundary between the solver/integrator and their
// single caller (the orchestrator), as opposed to the chk.Panic-based
// programmer-error taxonomy used for construction-time mistakes.
package simerr

import "fmt"

// Kind enumerates the recoverable failure modes named in spec §7. Every
// one of these is expected to occur during normal operation (a stiff
// step, a user pause) and must be handled, not merely logged.
type Kind int

const (
	// SolverConvergence: Newton-Raphson failed to converge within
	// maxIterations. Recovered by halving dt and retrying, bounded.
	SolverConvergence Kind = iota
	// NumericalInstability: a non-finite value appeared in the state or
	// residual mid-solve.
	NumericalInstability
	// Cancelled: the run was cancelled at a step boundary.
	Cancelled
	// Paused: the run is suspended at a step boundary and may resume.
	Paused
)

func (k Kind) String() string {
	switch k {
	case SolverConvergence:
		return "SolverConvergence"
	case NumericalInstability:
		return "NumericalInstability"
	case Cancelled:
		return "Cancelled"
	case Paused:
		return "Paused"
	default:
		return "Unknown"
	}
}

// Error wraps a Kind with a message and optional underlying cause.
type Error struct {
	Kind    Kind
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error { return e.Cause }

// New builds an *Error of the given kind, formatting Message like fmt.Sprintf.
func New(kind Kind, format string, args ...interface{}) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// Wrap builds an *Error of the given kind around an existing cause.
func Wrap(kind Kind, cause error, format string, args ...interface{}) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...), Cause: cause}
}

// Is reports whether err is a *Error of the given kind.
func Is(err error, kind Kind) bool {
	se, ok := err.(*Error)
	return ok && se.Kind == kind
}
