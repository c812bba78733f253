// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import "github.com/spf13/cobra"

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:          "dilute",
		Short:        "Infer a diluted quantity from calibrated measurements",
		SilenceUsage: true,
	}
	cmd.AddCommand(newInferCmd())
	cmd.AddCommand(newBatchCmd())
	return cmd
}
