// Copyright (c) 2017-2026 Digital Asset (Switzerland) GmbH and/or its affiliates. All rights reserved.
// SPDX-License-Identifier: Apache-2.0

package stamp

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"lbstanza.org/x/pkgresolve/pkg/builtincommand"
	"lbstanza.org/x/pkgresolve/pkg/freshness"
	"lbstanza.org/x/pkgresolve/pkg/resolutionerrors"
	"lbstanza.org/x/pkgresolve/pkg/workspace"
)

var ErrNoSource = fmt.Errorf("package has no source file")

func Cmd(lazy *workspace.Lazy) *cobra.Command {
	return &cobra.Command{
		Use:   string(builtincommand.Stamp) + " <package> <artifact>",
		Short: "record a freshly compiled artifact in the build record",
		Long: `record a freshly compiled artifact in the build record

	fingerprints the artifact and the package's current source under the active
	build configuration, so later lookups may load the artifact instead of
	recompiling. this is what the compiler does after compiling a package.
`,
		Hidden: true,
		Args:   cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ws, err := lazy.Get(cmd.Context())
			if err != nil {
				return err
			}

			name := args[0]
			artifactPath, err := filepath.Abs(args[1])
			if err != nil {
				return err
			}

			loc, ok := ws.Session.FindPackage(name)
			if !ok {
				return resolutionerrors.NewPackageNotFoundError(fmt.Errorf("cannot locate %s", name))
			}
			if loc.Source == nil {
				return fmt.Errorf("%w: %s", ErrNoSource, name)
			}

			r, err := freshness.Stamp(freshness.ContentFingerprinter{}, name, artifactPath, *loc.Source, ws.Config.BuildConfig())
			if err != nil {
				return err
			}
			ws.BuildRecord.Add(r)
			if err := ws.BuildRecord.Save(cmd.Context()); err != nil {
				return err
			}
			cmd.Printf("recorded %s in %s\n", name, ws.BuildRecord.Path())
			return nil
		},
	}
}
