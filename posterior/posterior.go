// Copyright 2025 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package posterior

import (
	"errors"
	"fmt"
	"math"
	"sort"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/integrate"
)

// A Likelihood is an un-normalized likelihood function over candidate
// values of the quantity being inferred.
//
// x holds the candidate values and y the fixed observations; the
// result holds one non-negative likelihood per candidate. scanX
// indicates that x is a dense scan of independent candidates, which
// invites a vectorized evaluation strategy; the flag must never
// change the returned values.
type Likelihood func(x, y []float64, scanX bool) ([]float64, error)

// DefaultSteps is the grid resolution of returned intervals when
// Estimator.Steps is zero.
const DefaultSteps = 300

const (
	// Integration grid sizes. The coarse pass spans the caller's
	// bounds; the refined pass concentrates on the central mass.
	coarseSteps = 10000
	refineSteps = 100000

	// refineShrink is the total probability mass allowed to fall
	// outside the refined grid.
	refineShrink = 1e-5
)

var (
	ErrBounds = errors.New("invalid inference bounds")
	ErrSteps  = errors.New("too few grid steps")
	ErrCIProb = errors.New("credible probability out of range")
	ErrNoMass = errors.New("likelihood mass is zero everywhere")
)

// An Estimator computes posterior distributions from un-normalized
// likelihoods. The zero value of Estimator is a reasonable default
// configuration.
type Estimator struct {
	// Steps is the number of grid points in each returned
	// Interval. If this is zero, DefaultSteps is used.
	Steps int

	// CIProb is the total probability mass the returned credible
	// intervals enclose, in (0, 1]. If this is zero or one, the
	// intervals span the full inference bounds.
	CIProb float64
}

// An Interval is a credible interval of a posterior distribution,
// along with the distribution evaluated across it.
type Interval struct {
	// Lo and Hi are the bounds of the interval.
	Lo, Hi float64

	// Prob is the posterior mass enclosed between Lo and Hi. This
	// can differ slightly from the requested CIProb because the
	// bounds snap to integration grid points.
	Prob float64

	// Xs holds evenly spaced evaluation points from Lo to Hi.
	Xs []float64

	// PDF and CDF hold the normalized posterior density and the
	// cumulative probability at each point of Xs.
	PDF, CDF []float64
}

// Width returns Hi - Lo.
func (iv Interval) Width() float64 {
	return iv.Hi - iv.Lo
}

// An Inference is a posterior distribution summarized by a point
// estimate and credible intervals.
type Inference struct {
	// Median is the posterior median.
	Median float64

	// ETI is the equal-tailed credible interval. It excludes the
	// same probability mass below its lower bound as above its
	// upper bound.
	ETI Interval

	// HDI is the highest-density credible interval. It is the
	// narrowest interval enclosing the requested probability
	// mass, so it hugs the posterior mode.
	HDI Interval
}

// Infer computes the posterior distribution of a quantity on [lower,
// upper] from its un-normalized likelihood, given fixed observations
// y and an implicit uniform prior. y is passed through to lik
// unexamined.
//
// Infer evaluates lik over a coarse grid spanning the bounds and then
// over a fine grid concentrated on the central probability mass, so a
// posterior much narrower than [lower, upper] keeps its resolution.
// All evaluations request the scan strategy.
//
// This can fail with ErrBounds if the bounds are not finite and
// ordered, ErrSteps or ErrCIProb for bad configuration, or ErrNoMass
// if the likelihood is zero at every grid point, which usually means
// it underflowed. A likelihood that returns an error, a wrong-length
// result, or a negative or non-finite value aborts the inference
// with a descriptive error.
func (e Estimator) Infer(lik Likelihood, y []float64, lower, upper float64) (*Inference, error) {
	steps := e.Steps
	if steps == 0 {
		steps = DefaultSteps
	}
	if steps < 2 {
		return nil, fmt.Errorf("%w: %d", ErrSteps, steps)
	}
	p := e.CIProb
	if p == 0 {
		p = 1
	}
	if !(0 < p && p <= 1) {
		return nil, fmt.Errorf("%w: %v", ErrCIProb, e.CIProb)
	}
	if math.IsInf(lower, 0) || math.IsInf(upper, 0) || !(lower < upper) {
		return nil, fmt.Errorf("%w: [%v, %v]", ErrBounds, lower, upper)
	}

	g, err := evalGrid(lik, y, lower, upper, coarseSteps)
	if err != nil {
		return nil, err
	}
	// Re-grid across the central mass. If the posterior occupies
	// a sliver of [lower, upper], this is what buys resolution.
	rLo, rHi := etiBounds(g.xs, g.cdf, 1-refineShrink)
	if rLo < rHi {
		if g, err = evalGrid(lik, y, rLo, rHi, refineSteps); err != nil {
			return nil, err
		}
	}

	res := &Inference{Median: g.xs[nearestIdx(g.cdf, 0.5)]}
	if p == 1 {
		iv, err := g.interval(lik, y, lower, upper, steps)
		if err != nil {
			return nil, err
		}
		res.ETI, res.HDI = iv, iv
		return res, nil
	}

	eLo, eHi := etiBounds(g.xs, g.cdf, p)
	hLo, hHi := hdiBounds(g.xs, g.cdf, p)
	if res.ETI, err = g.interval(lik, y, eLo, eHi, steps); err != nil {
		return nil, err
	}
	if res.HDI, err = g.interval(lik, y, hLo, hHi, steps); err != nil {
		return nil, err
	}
	return res, nil
}

// A grid is a posterior integrated over an evaluation grid.
type grid struct {
	xs   []float64
	cdf  []float64
	area float64
}

func evalGrid(lik Likelihood, y []float64, lo, hi float64, n int) (*grid, error) {
	xs := floats.Span(make([]float64, n), lo, hi)
	ls, err := evalLikelihood(lik, xs, y)
	if err != nil {
		return nil, err
	}
	area := integrate.Trapezoidal(xs, ls)
	if area == 0 {
		return nil, fmt.Errorf("%w in [%v, %v]", ErrNoMass, lo, hi)
	}
	// The density is normalized by the total mass; the CDF is
	// normalized by its own final value so it ends exactly at 1.
	cdf := cumtrapz(xs, ls)
	floats.Scale(1/cdf[len(cdf)-1], cdf)
	return &grid{xs: xs, cdf: cdf, area: area}, nil
}

// evalLikelihood evaluates lik at xs and validates the result. The
// posterior math downstream silently corrupts on NaNs and negative
// values, so these fail fast here instead.
func evalLikelihood(lik Likelihood, xs, y []float64) ([]float64, error) {
	ls, err := lik(xs, y, true)
	if err != nil {
		return nil, fmt.Errorf("evaluating likelihood: %w", err)
	}
	if len(ls) != len(xs) {
		return nil, fmt.Errorf("likelihood returned %d values for %d candidates", len(ls), len(xs))
	}
	for i, l := range ls {
		if math.IsNaN(l) || math.IsInf(l, 0) {
			return nil, fmt.Errorf("likelihood is %v at x=%v", l, xs[i])
		}
		if l < 0 {
			return nil, fmt.Errorf("likelihood is negative (%v) at x=%v", l, xs[i])
		}
	}
	return ls, nil
}

// interval evaluates the posterior over a fresh steps-point grid
// spanning [lo, hi].
func (g *grid) interval(lik Likelihood, y []float64, lo, hi float64, steps int) (Interval, error) {
	xs := floats.Span(make([]float64, steps), lo, hi)
	pdf, err := evalLikelihood(lik, xs, y)
	if err != nil {
		return Interval{}, err
	}
	floats.Scale(1/g.area, pdf)
	cdf := make([]float64, steps)
	for i, x := range xs {
		cdf[i] = g.cdfAt(x)
	}
	return Interval{
		Lo:   lo,
		Hi:   hi,
		Prob: g.cdfAt(hi) - g.cdfAt(lo),
		Xs:   xs,
		PDF:  pdf,
		CDF:  cdf,
	}, nil
}

// cdfAt returns the cumulative probability at x, clamped outside the
// integration grid.
func (g *grid) cdfAt(x float64) float64 {
	switch {
	case x < g.xs[0]:
		return 0
	case x > g.xs[len(g.xs)-1]:
		return 1
	}
	return g.cdf[nearestIdx(g.xs, x)]
}

// etiBounds returns the equal-tailed bounds enclosing mass p: the
// grid points whose cumulative probability is nearest (1-p)/2 and
// (1+p)/2.
func etiBounds(xs, cdf []float64, p float64) (lo, hi float64) {
	return xs[nearestIdx(cdf, (1-p)/2)], xs[nearestIdx(cdf, (1+p)/2)]
}

// hdiBounds returns the narrowest pair of grid points enclosing mass
// at least p.
//
// Because cdf is non-decreasing, the least j that pairs with a given
// i never moves left as i moves right, so one sweep of both indices
// finds the exact optimum on the grid.
func hdiBounds(xs, cdf []float64, p float64) (lo, hi float64) {
	bestI, bestJ := 0, len(xs)-1
	j := 0
	for i := range xs {
		if j < i+1 {
			j = i + 1
		}
		for j < len(xs) && cdf[j]-cdf[i] < p {
			j++
		}
		if j == len(xs) {
			break
		}
		if xs[j]-xs[i] < xs[bestJ]-xs[bestI] {
			bestI, bestJ = i, j
		}
	}
	return xs[bestI], xs[bestJ]
}

// nearestIdx returns the index of the value in s nearest to v. s
// must be non-decreasing. Ties go to the earlier index.
func nearestIdx(s []float64, v float64) int {
	i := sort.Search(len(s), func(i int) bool { return s[i] >= v })
	switch {
	case i == 0:
		return 0
	case i == len(s):
		return len(s) - 1
	case v-s[i-1] <= s[i]-v:
		return i - 1
	}
	return i
}

// cumtrapz returns the running trapezoidal integral of f over xs,
// starting at zero.
func cumtrapz(xs, f []float64) []float64 {
	cum := make([]float64, len(xs))
	for i := 1; i < len(xs); i++ {
		cum[i] = cum[i-1] + 0.5*(f[i]+f[i-1])*(xs[i]-xs[i-1])
	}
	return cum
}
