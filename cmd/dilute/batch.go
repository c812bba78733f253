// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/aclements/go-calibrate/posterior"
)

func newBatchCmd() *cobra.Command {
	var parallel int
	var plot bool

	c := &cobra.Command{
		Use:   "batch job.yaml...",
		Short: "Run many inference jobs concurrently",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			// Resolve every job before running any, so a typo
			// in the last file doesn't waste the first ones.
			jobs := make([]job, len(args))
			for i, path := range args {
				j, err := loadJob(path)
				if err != nil {
					return err
				}
				jobs[i] = j
			}

			g, _ := errgroup.WithContext(cmd.Context())
			// Inferences are CPU-bound; bound the fan-out.
			if parallel < 1 {
				parallel = 1
			}
			g.SetLimit(parallel)

			results := make([]*posterior.Inference, len(jobs))
			for i, j := range jobs {
				i, j := i, j // per-iteration copies for the goroutine (go.mod targets go 1.21)
				g.Go(func() error {
					res, err := j.run()
					if err != nil {
						return fmt.Errorf("%s: %w", j.name, err)
					}
					results[i] = res
					return nil
				})
			}
			if err := g.Wait(); err != nil {
				return err
			}

			for i, j := range jobs {
				renderInference(cmd.OutOrStdout(), j.name, results[i], plot)
			}
			return nil
		},
	}

	c.Flags().IntVarP(&parallel, "parallel", "p", 4, "maximum concurrent inferences")
	c.Flags().BoolVar(&plot, "plot", false, "sketch each posterior density")
	return c
}
