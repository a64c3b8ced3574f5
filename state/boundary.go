// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package state

// ConstraintKind distinguishes a Dirichlet value constraint from a
// Neumann gradient constraint (spec §3 BoundaryConditions).
type ConstraintKind int

const (
	// Value is a Dirichlet constraint: the field is fixed at v.
	Value ConstraintKind = iota
	// Gradient is a Neumann constraint: the field's derivative is fixed at g.
	Gradient
)

// Constraint is one boundary condition at one end of the mesh.
type Constraint struct {
	Kind ConstraintKind
	V    float64
}

// ValueBC constructs a Dirichlet constraint.
func ValueBC(v float64) Constraint { return Constraint{Kind: Value, V: v} }

// GradientBC constructs a Neumann constraint.
func GradientBC(g float64) Constraint { return Constraint{Kind: Gradient, V: g} }

// FieldBC holds the pair of constraints (axis, edge) for one field.
type FieldBC struct {
	Left  Constraint // axis (typically Gradient(0), symmetric)
	Right Constraint // edge (typically Value, physical boundary)
}

// BoundaryConditions holds the per-field boundary constraints required
// for all four evolved fields (spec §3: "always present for all four
// fields").
type BoundaryConditions struct {
	Ti, Te, Ne, Psi FieldBC
}

// SymmetricAxis returns the conventional axis BC: zero gradient.
func SymmetricAxis() Constraint { return GradientBC(0) }
