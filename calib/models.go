// Copyright 2025 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package calib

import "gonum.org/v1/gonum/stat/distuv"

// NormalModel is a calibration model whose readout is normally
// distributed around a trend curve:
//
//	y ~ Normal(Mu(x), Sigma(x))
//
// Mu is the calibrated trend of the readout and Sigma its calibrated
// spread. Sigma must be positive over the quantity range of
// interest.
type NormalModel struct {
	Mu    Curve
	Sigma Curve
}

// LogLikelihood returns the log density of readout y at quantity x.
func (m NormalModel) LogLikelihood(x, y float64) float64 {
	return distuv.Normal{Mu: m.Mu(x), Sigma: m.Sigma(x)}.LogProb(y)
}

// LogLikelihoodBatch returns LogLikelihood(x[i], y) for each i.
func (m NormalModel) LogLikelihoodBatch(x []float64, y float64) ([]float64, error) {
	ll := make([]float64, len(x))
	for i, xi := range x {
		ll[i] = distuv.Normal{Mu: m.Mu(xi), Sigma: m.Sigma(xi)}.LogProb(y)
	}
	return ll, nil
}

// TModel is a calibration model whose readout follows a scaled and
// shifted Student's t distribution:
//
//	y ~ t(Nu) * Sigma(x) + Mu(x)
//
// The heavy tails make inference robust to the occasional wild
// readout. Nu is the degrees of freedom; small Nu gives heavy tails
// and Nu → inf recovers NormalModel.
type TModel struct {
	Mu    Curve
	Sigma Curve
	Nu    float64
}

// LogLikelihood returns the log density of readout y at quantity x.
func (m TModel) LogLikelihood(x, y float64) float64 {
	return distuv.StudentsT{Mu: m.Mu(x), Sigma: m.Sigma(x), Nu: m.Nu}.LogProb(y)
}

// LogLikelihoodBatch returns LogLikelihood(x[i], y) for each i.
func (m TModel) LogLikelihoodBatch(x []float64, y float64) ([]float64, error) {
	ll := make([]float64, len(x))
	for i, xi := range x {
		ll[i] = distuv.StudentsT{Mu: m.Mu(xi), Sigma: m.Sigma(xi), Nu: m.Nu}.LogProb(y)
	}
	return ll, nil
}
