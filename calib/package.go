// Copyright 2025 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// calib provides error models for calibrated measurement
// instruments.
//
// A calibration model describes the distribution of an instrument's
// readout y as a function of the true quantity x being measured. The
// model's trend and spread are given by calibration curves fitted to
// reference measurements. Given such a model, packages dilution and
// posterior invert it: they recover the distribution of x from one or
// more observed readouts.
package calib // import "github.com/aclements/go-calibrate/calib"

import "math"

var inf = math.Inf(1)
var nan = math.NaN()
