// Copyright (c) 2017-2026 Digital Asset (Switzerland) GmbH and/or its affiliates. All rights reserved.
// SPDX-License-Identifier: Apache-2.0

package target

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"lbstanza.org/x/pkgresolve/pkg/builtincommand"
	"lbstanza.org/x/pkgresolve/pkg/workspace"
)

var ErrNoTarget = fmt.Errorf("no build target compiles the macros of this file")

func Cmd(lazy *workspace.Lazy) *cobra.Command {
	return &cobra.Command{
		Use:   string(builtincommand.Target) + " <file>",
		Short: "find the build target compiling the macros defined in a file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ws, err := lazy.Get(cmd.Context())
			if err != nil {
				return err
			}

			file, err := filepath.Abs(args[0])
			if err != nil {
				return err
			}
			t, ok := ws.Session.FindMacroBuildTarget(file)
			if !ok {
				return fmt.Errorf("%w: %s", ErrNoTarget, file)
			}
			cmd.Println(t)
			return nil
		},
	}
}
