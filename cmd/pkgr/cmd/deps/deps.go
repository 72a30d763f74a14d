// Copyright (c) 2017-2026 Digital Asset (Switzerland) GmbH and/or its affiliates. All rights reserved.
// SPDX-License-Identifier: Apache-2.0

package deps

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/spf13/cobra"

	"lbstanza.org/x/pkgresolve/pkg/builtincommand"
	"lbstanza.org/x/pkgresolve/pkg/depgraph"
	"lbstanza.org/x/pkgresolve/pkg/loader"
	"lbstanza.org/x/pkgresolve/pkg/provenance"
	"lbstanza.org/x/pkgresolve/pkg/resolutionerrors"
	"lbstanza.org/x/pkgresolve/pkg/workspace"
)

var outputFormats = []string{"text", "edges", "components", "dot", "yaml", "table"}

func Cmd(lazy *workspace.Lazy) *cobra.Command {
	var output string
	var strict bool

	cmd := &cobra.Command{
		Use:   string(builtincommand.Deps) + " <root package>...",
		Short: "analyse the dependency graph of packages",
		Long: `analyse the dependency graph of packages

	loads the given packages and everything they import, including conditional
	imports, then groups mutually importing packages into components.
	imports of packages that cannot be located are left out of the graph.
`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ws, err := lazy.Get(cmd.Context())
			if err != nil {
				return err
			}

			result, err := loader.New(ws.Session).Load(args...)
			if err != nil {
				return err
			}
			if len(result.Missing) > 0 {
				slog.Warn("some packages could not be located", "packages", result.Missing)
				if strict {
					return resolutionerrors.NewPackageNotFoundError(fmt.Errorf("cannot locate %s", strings.Join(result.Missing, ", ")))
				}
			}

			analysis, err := result.Analyze()
			if err != nil {
				return err
			}

			out, err := render(analysis, output, ws.Project.Dir())
			if err != nil {
				return err
			}
			cmd.Print(out)
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "text", "output format: "+strings.Join(outputFormats, ", "))
	cmd.Flags().BoolVar(&strict, "strict", false, "fail if any imported package cannot be located")
	return cmd
}

func render(a *depgraph.Analysis, output, projectDir string) (string, error) {
	switch output {
	case "text":
		return a.Text(), nil
	case "edges":
		return a.EdgeList(), nil
	case "components":
		return a.ComponentEdgeList(), nil
	case "dot":
		return a.DOT(), nil
	case "table":
		return a.Table() + "\n", nil
	case "yaml":
		prov, err := provenance.Describe(projectDir)
		if errors.Is(err, provenance.ErrNotARepository) {
			prov = nil
		} else if err != nil {
			return "", err
		}
		return a.YAML(prov)
	default:
		return "", fmt.Errorf("output format not supported: %s", output)
	}
}
