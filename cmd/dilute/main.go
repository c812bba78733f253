// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// dilute infers the quantity behind noisy instrument readouts taken
// at known dilution factors, using a fitted calibration model.
//
// Readouts come from a YAML job file, command arguments, or
// newline-separated numbers on stdin; the result is a posterior
// median with equal-tailed and highest-density credible intervals.
package main

import "os"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
