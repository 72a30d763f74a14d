// Copyright (c) 2017-2026 Digital Asset (Switzerland) GmbH and/or its affiliates. All rights reserved.
// SPDX-License-Identifier: Apache-2.0

// Command docs writes the pkgr command reference as markdown pages or man pages.
// Hidden commands are left out.
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/spf13/cobra"
	"github.com/spf13/cobra/doc"

	cmd "lbstanza.org/x/pkgresolve/cmd/pkgr/cmd"
	"lbstanza.org/x/pkgresolve/pkg/app"
	"lbstanza.org/x/pkgresolve/pkg/buildinfo"
	"lbstanza.org/x/pkgresolve/pkg/pkgrconfig"
	"lbstanza.org/x/pkgresolve/pkg/utils"
)

const (
	formatMarkdown = "md"
	formatMan      = "man"
)

func main() {
	ctx, cancelFn := signal.NotifyContext(context.Background(), os.Interrupt, os.Kill)
	defer cancelFn()

	if err := getDocsCmd().ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}

func getDocsCmd() *cobra.Command {
	var format string

	docsCmd := &cobra.Command{
		Use:   "docs <output dir>",
		Short: "generate the pkgr command reference",
		Args:  cobra.ExactArgs(1),
		RunE: func(c *cobra.Command, args []string) error {
			// the reference must not depend on the caller's config file
			home, deleteFn, err := utils.MkdirTemp("", "pkgr-docs-")
			if err != nil {
				return err
			}
			defer func() { _ = deleteFn() }()
			if err := os.Setenv(pkgrconfig.HomeEnvVar, home); err != nil {
				return err
			}

			if err := genDocs(c.Context(), args[0], format, c.ErrOrStderr()); err != nil {
				c.SilenceUsage = true
				return err
			}
			_, err = fmt.Fprintf(c.OutOrStdout(), "generated %s reference in %s\n", format, args[0])
			return err
		},
	}

	docsCmd.Flags().StringVar(&format, "format", formatMarkdown, "md or man")
	return docsCmd
}

func genDocs(ctx context.Context, dir, format string, stderr io.Writer) error {
	if format != formatMarkdown && format != formatMan {
		return fmt.Errorf("unsupported format %q, use %q or %q", format, formatMarkdown, formatMan)
	}

	p := &app.Pkgr{Stdout: io.Discard, Stderr: stderr, Stdin: os.Stdin, OsArgs: []string{cmd.PkgrName}}
	root, err := cmd.RootCmd(ctx, p)
	if err != nil {
		return err
	}
	root.DisableAutoGenTag = true

	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	if format == formatMan {
		return doc.GenManTree(root, &doc.GenManHeader{
			Title:   "PKGR",
			Section: "1",
			Source:  fmt.Sprintf("%s %s", cmd.PkgrName, buildinfo.Get().Version),
			Manual:  "pkgr manual",
		}, dir)
	}
	return doc.GenMarkdownTree(root, dir)
}
