// Copyright (c) 2017-2026 Digital Asset (Switzerland) GmbH and/or its affiliates. All rights reserved.
// SPDX-License-Identifier: Apache-2.0

package app

import (
	"io"

	"github.com/samber/lo"
	"github.com/spf13/cobra"
)

// Pkgr is one invocation of the CLI
type Pkgr struct {
	Stderr, Stdout io.Writer
	Stdin          io.Reader
	// must contain at least one argument, namely the pkgr binary name, similar to os.Args
	OsArgs []string
}

func (p *Pkgr) SetOutputStreams(cmd *cobra.Command) {
	cmd.SetOut(p.Stdout)
	cmd.SetErr(p.Stderr)
	cmd.SetIn(p.Stdin)

	lo.ForEach(cmd.Commands(), func(sub *cobra.Command, _ int) {
		p.SetOutputStreams(sub)
	})
}
