// Copyright (c) 2017-2026 Digital Asset (Switzerland) GmbH and/or its affiliates. All rights reserved.
// SPDX-License-Identifier: Apache-2.0

package version

import (
	"github.com/goccy/go-yaml"
	"github.com/spf13/cobra"

	"lbstanza.org/x/pkgresolve/pkg/buildinfo"
	"lbstanza.org/x/pkgresolve/pkg/builtincommand"
)

func Cmd() *cobra.Command {
	return &cobra.Command{
		Use:   string(builtincommand.Version),
		Short: "show the pkgr version",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := yaml.Marshal(buildinfo.Get())
			if err != nil {
				return err
			}
			cmd.Print(string(data))
			return nil
		},
	}
}
