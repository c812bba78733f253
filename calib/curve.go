// Copyright 2025 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package calib

import "math"

// A Curve maps a true quantity x to a parameter of the readout
// distribution, such as its location or spread. Calibration fits
// produce curves; models evaluate them.
type Curve func(x float64) float64

// Polynomial returns the polynomial curve
// coeffs[0] + coeffs[1]*x + coeffs[2]*x² + …
//
// Polynomials of degree zero or one are the usual choice for spread
// parameters, where a constant or gently growing noise floor is
// enough.
func Polynomial(coeffs ...float64) Curve {
	if len(coeffs) == 0 {
		panic("len(coeffs) == 0")
	}
	coeffs = append([]float64(nil), coeffs...)
	return func(x float64) float64 {
		// Horner's method.
		y := coeffs[len(coeffs)-1]
		for i := len(coeffs) - 2; i >= 0; i-- {
			y = y*x + coeffs[i]
		}
		return y
	}
}

// AsymmetricLogistic returns a five-parameter logistic curve running
// from lo at x=-inf to hi at x=+inf. xmid is the inflection point,
// rate controls the steepness at xmid, and nu skews the approach to
// the two asymptotes. With nu=1 this is the ordinary logistic curve
// with midpoint xmid.
//
// This is the generalized logistic function of Richards (1959), the
// standard trend curve for saturating assay responses.
func AsymmetricLogistic(lo, hi, xmid, rate, nu float64) Curve {
	if nu <= 0 {
		panic("nu <= 0")
	}
	return func(x float64) float64 {
		return lo + (hi-lo)*math.Pow(1+nu*math.Exp(-rate*(x-xmid)), -1/nu)
	}
}

// SaturatingExponential returns the curve
// base + (plateau-base)*(1 - exp(-rate*x)),
// which rises from base at x=0 and saturates at plateau.
func SaturatingExponential(base, plateau, rate float64) Curve {
	return func(x float64) float64 {
		return base + (plateau-base)*(1-math.Exp(-rate*x))
	}
}

// LogX returns a curve that evaluates c at log10(x). Calibrations
// spanning several decades of concentration are typically fitted in
// log space; LogX lets such fits keep their natural parameterization
// while models work with linear quantities.
//
// The returned curve is only defined for x > 0.
func LogX(c Curve) Curve {
	return func(x float64) float64 {
		return c(math.Log10(x))
	}
}
