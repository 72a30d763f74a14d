// Copyright (c) 2017-2026 Digital Asset (Switzerland) GmbH and/or its affiliates. All rights reserved.
// SPDX-License-Identifier: Apache-2.0

package imports

import (
	"github.com/spf13/cobra"

	"lbstanza.org/x/pkgresolve/pkg/builtincommand"
	"lbstanza.org/x/pkgresolve/pkg/workspace"
)

func Cmd(lazy *workspace.Lazy) *cobra.Command {
	return &cobra.Command{
		Use:   string(builtincommand.Imports) + " <loaded package>...",
		Short: "list the packages pulled in by conditional imports",
		Long: `list the packages pulled in by conditional imports

	given the packages already loaded, prints every package a conditional-import
	rule adds, including packages added because of other added packages.
`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ws, err := lazy.Get(cmd.Context())
			if err != nil {
				return err
			}
			for _, p := range ws.Session.ConditionalImports(args...) {
				cmd.Println(p)
			}
			return nil
		},
	}
}
