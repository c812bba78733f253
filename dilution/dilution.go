// Copyright 2025 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// dilution infers the value of a quantity from noisy readouts of its
// dilutions.
//
// A sample with true quantity x is measured N times, the i'th time
// diluted by a known factor d_i, producing readout y_i. Under a
// calibration model for the measuring instrument, the likelihood of x
// is the product over readouts of the model's likelihood at the
// diluted quantity x/d_i. This package composes that joint likelihood
// and hands it to package posterior to recover a distribution over x.
package dilution // import "github.com/aclements/go-calibrate/dilution"

import (
	"errors"
	"fmt"
	"math"

	"github.com/aclements/go-calibrate/calib"
	"github.com/aclements/go-calibrate/posterior"
	"gonum.org/v1/gonum/floats"
)

var (
	ErrSampleSize     = errors.New("need at least one observation")
	ErrLengthMismatch = errors.New("dilution and observation counts differ")
	ErrDilutionFactor = errors.New("dilution factors must be positive")
)

// JointLikelihood returns the joint likelihood of readouts y at true
// quantity x, where readout y_i was measured after diluting the
// sample by the factor d_i.
//
// Readouts are conditionally independent given x, so the joint
// likelihood is the product of per-readout likelihoods; it is
// accumulated as a sum of log likelihoods to dodge premature
// underflow. A single readout degenerates to exactly the model's own
// likelihood of x/d_0.
func JointLikelihood(model calib.Model, d, y []float64, x float64) float64 {
	if len(d) != len(y) {
		panic("len(d) != len(y)")
	}
	ll := 0.0
	for i, di := range d {
		ll += model.LogLikelihood(x/di, y[i])
	}
	return math.Exp(ll)
}

// Likelihood returns the joint likelihood of observations taken at
// dilution factors d as a posterior.Likelihood over candidate
// quantities.
//
// In scan mode the closure attempts one batched model evaluation per
// dilution pair when the model implements calib.BatchModel, summing
// the per-pair log-likelihood vectors elementwise. A batch attempt
// that fails with calib.ErrUnsupported quietly falls back to
// evaluating candidates one at a time; any other batch error is a
// genuine failure and is returned. Outside scan mode, and for models
// without a batch path, candidates are evaluated one at a time.
// Every strategy returns identical values.
func Likelihood(model calib.Model, d []float64) posterior.Likelihood {
	return func(x, y []float64, scanX bool) ([]float64, error) {
		if len(d) != len(y) {
			return nil, fmt.Errorf("%w: len(d)=%d, len(y)=%d", ErrLengthMismatch, len(d), len(y))
		}
		if scanX {
			if bm, ok := model.(calib.BatchModel); ok {
				out, err := scanBatch(bm, d, y, x)
				if err == nil {
					return out, nil
				}
				if !errors.Is(err, calib.ErrUnsupported) {
					return nil, err
				}
				// Unsupported batch; take the scalar path.
			}
		}
		out := make([]float64, len(x))
		for k, xk := range x {
			out[k] = JointLikelihood(model, d, y, xk)
		}
		return out, nil
	}
}

// scanBatch evaluates the joint likelihood of every candidate in x
// using one batched model call per dilution pair. Log likelihoods
// accumulate across pairs in the same order as the scalar path, so
// the two paths return bitwise identical values.
func scanBatch(model calib.BatchModel, d, y, x []float64) ([]float64, error) {
	sum := make([]float64, len(x))
	scaled := make([]float64, len(x))
	for i, di := range d {
		for k, xk := range x {
			scaled[k] = xk / di
		}
		ll, err := model.LogLikelihoodBatch(scaled, y[i])
		if err != nil {
			return nil, err
		}
		if len(ll) != len(x) {
			// A model that miscounts its batch cannot be
			// trusted with batches at all.
			return nil, fmt.Errorf("%w: batch returned %d values for %d candidates", calib.ErrUnsupported, len(ll), len(x))
		}
		floats.Add(sum, ll)
	}
	for k, s := range sum {
		sum[k] = math.Exp(s)
	}
	return sum, nil
}

// Infer recovers the posterior distribution of a quantity on [lower,
// upper] from readouts y of its dilutions by factors d, measured
// under model. steps and ciProb configure the returned grids and
// credible intervals; zero values select the posterior package
// defaults (300 points, untrimmed intervals).
//
// This can fail with ErrSampleSize if y is empty, ErrLengthMismatch
// if d and y differ in length, ErrDilutionFactor if any dilution
// factor is not positive, or with any error of the posterior
// estimation itself.
func Infer(model calib.Model, d, y []float64, lower, upper float64, steps int, ciProb float64) (*posterior.Inference, error) {
	if len(y) == 0 {
		return nil, ErrSampleSize
	}
	if len(d) != len(y) {
		return nil, fmt.Errorf("%w: len(d)=%d, len(y)=%d", ErrLengthMismatch, len(d), len(y))
	}
	for i, di := range d {
		if !(di > 0) {
			return nil, fmt.Errorf("%w: d[%d]=%v", ErrDilutionFactor, i, di)
		}
	}
	est := posterior.Estimator{Steps: steps, CIProb: ciProb}
	return est.Infer(Likelihood(model, d), y, lower, upper)
}

// InferUndiluted is Infer for replicate readouts of the undiluted
// sample itself.
func InferUndiluted(model calib.Model, y []float64, lower, upper float64, steps int, ciProb float64) (*posterior.Inference, error) {
	d := make([]float64, len(y))
	for i := range d {
		d[i] = 1
	}
	return Infer(model, d, y, lower, upper, steps, ciProb)
}
