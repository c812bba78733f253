// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
)

func newInferCmd() *cobra.Command {
	var (
		jobPath   string
		modelPath string
		dilutions []float64
		lower     float64
		upper     float64
		steps     int
		ci        float64
		plot      bool
	)

	c := &cobra.Command{
		Use:   "infer [observation...]",
		Short: "Infer the quantity behind a set of readouts",
		RunE: func(cmd *cobra.Command, args []string) error {
			var j job
			switch {
			case jobPath != "":
				if modelPath != "" || len(args) > 0 {
					return errors.New("--job carries its own model and observations")
				}
				var err error
				if j, err = loadJob(jobPath); err != nil {
					return err
				}
			case modelPath != "":
				model, err := loadModel(modelPath)
				if err != nil {
					return err
				}
				y, err := readObservations(args, cmd.InOrStdin())
				if err != nil {
					return err
				}
				if len(y) == 0 {
					return errors.New("no observations given")
				}
				j = job{
					name:   strings.TrimSuffix(filepath.Base(modelPath), filepath.Ext(modelPath)),
					model:  model,
					d:      dilutions,
					y:      y,
					lower:  lower,
					upper:  upper,
					steps:  steps,
					ciProb: ci,
				}
			default:
				return errors.New("need --job or --model")
			}

			res, err := j.run()
			if err != nil {
				return err
			}
			renderInference(cmd.OutOrStdout(), j.name, res, plot)
			return nil
		},
	}

	c.Flags().StringVarP(&jobPath, "job", "j", "", "YAML job file describing the inference")
	c.Flags().StringVarP(&modelPath, "model", "m", "", "JSON calibration model file")
	c.Flags().Float64SliceVarP(&dilutions, "dilutions", "d", nil, "dilution factor per observation (default all 1)")
	c.Flags().Float64Var(&lower, "lower", 0, "lower bound of the candidate range")
	c.Flags().Float64Var(&upper, "upper", 0, "upper bound of the candidate range")
	c.Flags().IntVar(&steps, "steps", 0, "grid points per reported interval")
	c.Flags().Float64Var(&ci, "ci", 0, "credible mass of the reported intervals, in (0, 1]")
	c.Flags().BoolVar(&plot, "plot", false, "sketch the posterior density")
	return c
}

// readObservations parses readouts from args or, if there are none,
// from newline-separated numbers on r, skipping blank lines.
func readObservations(args []string, r io.Reader) ([]float64, error) {
	if len(args) > 0 {
		y := make([]float64, len(args))
		for i, a := range args {
			v, err := strconv.ParseFloat(a, 64)
			if err != nil {
				return nil, fmt.Errorf("observation %q: %v", a, err)
			}
			y[i] = v
		}
		return y, nil
	}

	var y []float64
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		l := strings.TrimSpace(scanner.Text())
		if l == "" {
			continue
		}
		v, err := strconv.ParseFloat(l, 64)
		if err != nil {
			return nil, fmt.Errorf("observation %q: %v", l, err)
		}
		y = append(y, v)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return y, nil
}
