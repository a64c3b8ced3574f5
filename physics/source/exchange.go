// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package source

import (
	"math"

	"github.com/cpmech/tokasim/arr"
	"github.com/cpmech/tokasim/geometry"
	"github.com/cpmech/tokasim/physics"
)

// Exchange implements the classical Coulomb ion-electron collisional
// energy exchange (spec §4.2):
//
//	Q_ie = (3/2)*(me/mi)*Ne*nu_ei*kB*(Te-Ti)
//
// reported energy-conservatively: IonPower = -ElectronPower.
type Exchange struct {
	IonMassRatio float64 // mi/mp, e.g. 2.0 for deuterium
	LnLambdaMin  float64
	LnLambdaMax  float64
}

// NewExchange builds an Exchange model with a plausible Coulomb-log
// clamp range (spec §4.2).
func NewExchange(ionMassRatio float64) Exchange {
	if ionMassRatio <= 0 {
		ionMassRatio = 2.0
	}
	return Exchange{IonMassRatio: ionMassRatio, LnLambdaMin: 10, LnLambdaMax: 20}
}

// Name implements physics.SourceModel.
func (Exchange) Name() string { return "ion-electron-exchange" }

// coulombLogIonElectron returns the ion-electron Coulomb logarithm for
// electron temperature teEV and density neM3, clamped to a plausible
// range (spec §4.2).
func (e Exchange) coulombLogIonElectron(teEV, neM3 float64) float64 {
	teEVc := math.Max(teEV, 1)
	lnLambda := 24 - math.Log(math.Sqrt(neM3*1e-6)/teEVc)
	if lnLambda < e.LnLambdaMin {
		lnLambda = e.LnLambdaMin
	}
	if lnLambda > e.LnLambdaMax {
		lnLambda = e.LnLambdaMax
	}
	return lnLambda
}

// collisionFrequency returns the electron-ion collision frequency nu_ei
// [1/s] via the standard NRL formula.
func (e Exchange) collisionFrequency(teEV, neM3 float64) float64 {
	lnLambda := e.coulombLogIonElectron(teEV, neM3)
	teEVc := math.Max(teEV, 1)
	// NRL plasma formula, nu_ei [s^-1], Ne in cm^-3, Te in eV
	neCm3 := neM3 * 1e-6
	return 2.91e-6 * neCm3 * lnLambda / math.Pow(teEVc, 1.5)
}

// ComputeTerms implements physics.SourceModel.
func (e Exchange) ComputeTerms(p physics.ProfileView, g *geometry.Geometry) physics.SourceTerms {
	n := p.Ti.Len()
	qi := make([]float64, n)
	qe := make([]float64, n)
	for i := 0; i < n; i++ {
		q := e.exchangeDensity(p, i) // W/m^3, positive => heats ions
		qi[i] = q * mwPerW
		qe[i] = -q * mwPerW
	}
	return physics.SourceTerms{
		Qi:       arr.New(qi),
		Qe:       arr.New(qe),
		Sn:       arr.Zeros(n),
		Sj:       arr.Zeros(n),
		Metadata: physics.Empty(),
	}
}

// exchangeDensity returns the volumetric power [W/m^3] transferred from
// electrons to ions at cell i (positive when Te > Ti).
func (e Exchange) exchangeDensity(p physics.ProfileView, i int) float64 {
	te := p.Te.At(i)
	ti := p.Ti.At(i)
	ne := p.Ne.At(i)
	nuEi := e.collisionFrequency(te, ne)
	mi := e.IonMassRatio * protonMass
	return 1.5 * (electronMass / mi) * ne * nuEi * elementaryCharge * (te - ti)
}

// ComputeMetadata implements physics.SourceModel.
func (e Exchange) ComputeMetadata(p physics.ProfileView, g *geometry.Geometry) physics.Metadata {
	n := p.Ti.Len()
	var ionW float64
	for i := 0; i < n; i++ {
		ionW += e.exchangeDensity(p, i) * g.CellVolumes[i]
	}
	return physics.Metadata{
		Model:         e.Name(),
		Category:      physics.CategoryExchange,
		IonPower:      ionW,
		ElectronPower: -ionW,
	}
}
