// Copyright (c) 2017-2026 Digital Asset (Switzerland) GmbH and/or its affiliates. All rights reserved.
// SPDX-License-Identifier: Apache-2.0

package syntax

import (
	"fmt"
	"strings"

	"github.com/goccy/go-yaml"
	"github.com/spf13/cobra"

	"lbstanza.org/x/pkgresolve/pkg/builtincommand"
	"lbstanza.org/x/pkgresolve/pkg/workspace"
)

var ErrNoPlugin = fmt.Errorf("no macro plugin supports the requested syntax packages")

func Cmd(lazy *workspace.Lazy) *cobra.Command {
	var list bool

	cmd := &cobra.Command{
		Use:   string(builtincommand.Syntax) + " <syntax package>...",
		Short: "find the macro plugin implementing syntax packages",
		RunE: func(cmd *cobra.Command, args []string) error {
			ws, err := lazy.Get(cmd.Context())
			if err != nil {
				return err
			}

			if list {
				data, err := yaml.Marshal(ws.Session.AllListedSyntaxGroups())
				if err != nil {
					return err
				}
				cmd.Print(string(data))
				return nil
			}

			if len(args) == 0 {
				return fmt.Errorf("expected at least one syntax package, or --list")
			}
			plugin, ok := ws.Session.FindSyntaxPackages(args...)
			if !ok {
				return fmt.Errorf("%w: %s", ErrNoPlugin, strings.Join(args, ", "))
			}
			cmd.Println(plugin)
			return nil
		},
	}

	cmd.Flags().BoolVarP(&list, "list", "l", false, "list every plugin group, most general first")
	return cmd
}
