// Copyright 2025 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// posterior turns un-normalized likelihood functions into posterior
// distributions by numerical integration.
//
// The likelihood is evaluated over a dense grid, normalized into a
// probability density under an implicit uniform prior, and summarized
// as a median plus equal-tailed and highest-density credible
// intervals. The package knows nothing about where likelihoods come
// from; package dilution builds them from calibration models.
package posterior // import "github.com/aclements/go-calibrate/posterior"

import "math"

var inf = math.Inf(1)
var nan = math.NaN()
