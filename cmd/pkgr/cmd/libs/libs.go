// Copyright (c) 2017-2026 Digital Asset (Switzerland) GmbH and/or its affiliates. All rights reserved.
// SPDX-License-Identifier: Apache-2.0

package libs

import (
	"github.com/goccy/go-yaml"
	"github.com/spf13/cobra"

	"lbstanza.org/x/pkgresolve/pkg/builtincommand"
	"lbstanza.org/x/pkgresolve/pkg/workspace"
)

type output struct {
	Libraries map[string][]string `yaml:"libraries"`
	Folders   []string            `yaml:"folders"`
}

func Cmd(lazy *workspace.Lazy) *cobra.Command {
	return &cobra.Command{
		Use:   string(builtincommand.Libs) + " <package>...",
		Short: "show the native libraries packages link against",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ws, err := lazy.Get(cmd.Context())
			if err != nil {
				return err
			}

			required := ws.Session.DynamicLibraries(args...)
			data, err := yaml.MarshalWithOptions(output{
				Libraries: required.Libraries,
				Folders:   required.Folders,
			}, yaml.IndentSequence(true))
			if err != nil {
				return err
			}
			cmd.Print(string(data))
			return nil
		},
	}
}
