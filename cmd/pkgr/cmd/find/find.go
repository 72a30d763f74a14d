// Copyright (c) 2017-2026 Digital Asset (Switzerland) GmbH and/or its affiliates. All rights reserved.
// SPDX-License-Identifier: Apache-2.0

package find

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/samber/lo"
	"github.com/spf13/cobra"

	"lbstanza.org/x/pkgresolve/pkg/artifact"
	"lbstanza.org/x/pkgresolve/pkg/builtincommand"
	"lbstanza.org/x/pkgresolve/pkg/resolutionerrors"
	"lbstanza.org/x/pkgresolve/pkg/session"
	"lbstanza.org/x/pkgresolve/pkg/workspace"
)

func Cmd(lazy *workspace.Lazy) *cobra.Command {
	return &cobra.Command{
		Use:   string(builtincommand.Find) + " <package>...",
		Short: "locate the source and compiled artifact of packages",
		Long: `locate the source and compiled artifact of packages

	for each package, shows the source file, the artifact found (if any) and
	whether the artifact can be loaded instead of compiling the source.
	cached artifacts are only used when the build record proves them fresh.
`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ws, err := lazy.Get(cmd.Context())
			if err != nil {
				return err
			}

			found, missing := ws.Session.FindPackages(args...)
			for _, loc := range found {
				cmd.Print(describe(loc))
			}
			for _, name := range missing {
				cmd.Printf("%s\n  %s\n", name, color.RedString("not found"))
			}

			if len(missing) > 0 {
				return resolutionerrors.NewPackageNotFoundError(fmt.Errorf("cannot locate %s", strings.Join(missing, ", ")))
			}
			return nil
		},
	}
}

func describe(loc *session.ResolvedLocation) string {
	var sb strings.Builder
	sb.WriteString(loc.Package + "\n")
	fmt.Fprintf(&sb, "  source:   %s\n", lo.FromPtrOr(loc.Source, "-"))
	fmt.Fprintf(&sb, "  artifact: %s\n", loc.Artifact.String())

	var using string
	if loc.UseArtifact {
		p, _ := artifact.Path(loc.Artifact)
		using = color.GreenString("artifact") + " " + p
	} else {
		using = color.YellowString("source") + " " + *loc.Source
	}
	fmt.Fprintf(&sb, "  using:    %s\n", using)
	return sb.String()
}
