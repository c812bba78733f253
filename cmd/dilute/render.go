// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/aclements/go-calibrate/posterior"
)

var (
	nameStyle  = lipgloss.NewStyle().Bold(true)
	labelStyle = lipgloss.NewStyle().Faint(true)
	plotStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("63"))
)

func renderInference(w io.Writer, name string, res *posterior.Inference, plot bool) {
	fmt.Fprintln(w, nameStyle.Render(name))
	fmt.Fprintf(w, "  %s %.6g\n", labelStyle.Render("median"), res.Median)
	fmt.Fprintf(w, "  %s [%.6g, %.6g] (%.3g enclosed)\n",
		labelStyle.Render("eti"), res.ETI.Lo, res.ETI.Hi, res.ETI.Prob)
	fmt.Fprintf(w, "  %s [%.6g, %.6g] (%.3g enclosed)\n",
		labelStyle.Render("hdi"), res.HDI.Lo, res.HDI.Hi, res.HDI.Prob)
	if plot {
		fmt.Fprintf(w, "  %s\n", plotStyle.Render(sparkline(res.ETI.PDF, 60)))
	}
}

// sparkline sketches vals in at most width terminal cells, scaling
// the tallest value to the full ramp.
func sparkline(vals []float64, width int) string {
	if len(vals) == 0 || width <= 0 {
		return ""
	}
	if width > len(vals) {
		width = len(vals)
	}

	buckets := make([]float64, width)
	for i := range buckets {
		lo, hi := i*len(vals)/width, (i+1)*len(vals)/width
		for _, v := range vals[lo:hi] {
			if v > buckets[i] {
				buckets[i] = v
			}
		}
	}
	max := 0.0
	for _, b := range buckets {
		if b > max {
			max = b
		}
	}
	if max == 0 {
		max = 1
	}

	ramp := []rune("▁▂▃▄▅▆▇█")
	var sb strings.Builder
	for _, b := range buckets {
		sb.WriteRune(ramp[int(b/max*float64(len(ramp)-1)+0.5)])
	}
	return sb.String()
}
