// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package coeff

import (
	"github.com/cpmech/gosl/chk"

	"github.com/cpmech/tokasim/arr"
	"github.com/cpmech/tokasim/geometry"
)

// MWtoEVPerM3PerS converts MW/m^3 to eV/(m^3*s): 1 MW = 1e6 J/s,
// 1 eV = 1.602176634e-19 J, so the conversion constant is
// 1e6/1.602176634e-19 ~= 6.2415090744e24 (spec §3 Units).
const MWtoEVPerM3PerS = 6.2415090744e24

// EquationCoeffs holds the finite-volume coefficients for one evolved
// field (spec §3).
type EquationCoeffs struct {
	DFace          arr.Array // [NFaces] diffusion coefficient
	VFace          arr.Array // [NFaces] convection velocity
	SourceCell     arr.Array // [NCells] explicit source
	SourceMatCell  arr.Array // [NCells] implicit linear source coefficient
	TransientCoeff arr.Array // [NCells] multiplier on d./dt
}

// checkShapes panics with a ShapeMismatch-style message if the
// coefficients do not match the mesh.
func (e EquationCoeffs) checkShapes(m *geometry.Mesh) {
	if e.DFace.Len() != m.NFaces || e.VFace.Len() != m.NFaces {
		chk.Panic("coeff: ShapeMismatch: face arrays must have length NFaces=%d", m.NFaces)
	}
	if e.SourceCell.Len() != m.NCells || e.SourceMatCell.Len() != m.NCells || e.TransientCoeff.Len() != m.NCells {
		chk.Panic("coeff: ShapeMismatch: cell arrays must have length NCells=%d", m.NCells)
	}
}

// Block1DCoeffs holds one EquationCoeffs per evolved field plus the
// shared geometric factors (spec §3).
type Block1DCoeffs struct {
	Ti, Te, Ne, Psi EquationCoeffs
	Geometry        *geometry.Geometry
}
