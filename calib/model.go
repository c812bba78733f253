// Copyright 2025 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package calib

import "errors"

// A Model is a calibration error model. It gives the log of the
// likelihood of observing readout y when the true quantity being
// measured is x.
//
// Log likelihoods, rather than likelihoods, keep products of many
// observations away from floating-point underflow.
type Model interface {
	// LogLikelihood returns the log of the probability density of
	// readout y at quantity x.
	LogLikelihood(x, y float64) float64
}

// A BatchModel is a Model that can evaluate the log likelihood of a
// single readout at many candidate quantities in one call. Callers
// that sweep a grid of candidates should prefer the batch path when
// it is available.
//
// LogLikelihoodBatch returns ErrUnsupported (possibly wrapped) if the
// model cannot evaluate this particular batch. Callers must treat
// that as "fall back to LogLikelihood", not as failure. Any other
// error is a genuine evaluation failure.
type BatchModel interface {
	Model

	// LogLikelihoodBatch returns LogLikelihood(x[i], y) for each i.
	LogLikelihoodBatch(x []float64, y float64) ([]float64, error)
}

// ErrUnsupported is returned by LogLikelihoodBatch when a model
// cannot evaluate a batch of candidates. It signals the caller to
// evaluate candidates one at a time instead.
var ErrUnsupported = errors.New("batch evaluation not supported")

// ModelFunc adapts a plain function to the Model interface.
//
// A ModelFunc has no batch path, so grids over it always evaluate
// one candidate at a time.
type ModelFunc func(x, y float64) float64

// LogLikelihood returns f(x, y).
func (f ModelFunc) LogLikelihood(x, y float64) float64 {
	return f(x, y)
}
