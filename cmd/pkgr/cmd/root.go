// Copyright (c) 2017-2026 Digital Asset (Switzerland) GmbH and/or its affiliates. All rights reserved.
// SPDX-License-Identifier: Apache-2.0

package cmd

import (
	"context"
	"fmt"

	"github.com/goccy/go-yaml"
	"github.com/spf13/cobra"

	"lbstanza.org/x/pkgresolve/cmd/pkgr/cmd/deps"
	"lbstanza.org/x/pkgresolve/cmd/pkgr/cmd/find"
	"lbstanza.org/x/pkgresolve/cmd/pkgr/cmd/imports"
	"lbstanza.org/x/pkgresolve/cmd/pkgr/cmd/libs"
	"lbstanza.org/x/pkgresolve/cmd/pkgr/cmd/stamp"
	"lbstanza.org/x/pkgresolve/cmd/pkgr/cmd/syntax"
	"lbstanza.org/x/pkgresolve/cmd/pkgr/cmd/target"
	"lbstanza.org/x/pkgresolve/cmd/pkgr/cmd/version"
	"lbstanza.org/x/pkgresolve/pkg/app"
	"lbstanza.org/x/pkgresolve/pkg/buildinfo"
	"lbstanza.org/x/pkgresolve/pkg/builtincommand"
	"lbstanza.org/x/pkgresolve/pkg/logging"
	"lbstanza.org/x/pkgresolve/pkg/pkgrconfig"
	"lbstanza.org/x/pkgresolve/pkg/workspace"
)

const (
	packageGroupId = "package"
	metaGroupId    = "meta"
	PkgrName       = "pkgr"
)

func RootCmd(_ context.Context, p *app.Pkgr) (*cobra.Command, error) {
	cmd := &cobra.Command{
		Use:          PkgrName,
		Short:        "resolve packages and analyse their dependencies",
		SilenceUsage: true,
	}

	defer p.SetOutputStreams(cmd)

	if len(p.OsArgs) == 0 {
		return nil, fmt.Errorf("Pkgr.OsArgs must contain at least one entry similar to os.Args")
	}

	cmd.SetArgs(p.OsArgs[1:])
	cmd.AddGroup(&cobra.Group{
		ID:    packageGroupId,
		Title: "Package Commands",
	})
	cmd.AddGroup(&cobra.Group{
		ID:    metaGroupId,
		Title: "Meta Commands",
	})

	if err := logging.InitLogging(); err != nil {
		return nil, err
	}

	config, err := pkgrconfig.Get()
	if err != nil {
		return nil, err
	}
	lazy := workspace.NewLazy(config)

	cmd.AddCommand(
		setCmdGroup(find.Cmd(lazy)),
		setCmdGroup(imports.Cmd(lazy)),
		setCmdGroup(syntax.Cmd(lazy)),
		setCmdGroup(libs.Cmd(lazy)),
		setCmdGroup(target.Cmd(lazy)),
		setCmdGroup(deps.Cmd(lazy)),
		setCmdGroup(stamp.Cmd(lazy)),
		setCmdGroup(version.Cmd()),
	)

	v, err := yaml.Marshal(buildinfo.Get())
	if err != nil {
		return nil, err
	}
	cmd.Version = string(v)
	cmd.SetVersionTemplate("{{.Version}}")

	return cmd, nil
}

func setCmdGroup(cmd *cobra.Command) *cobra.Command {
	if builtincommand.NeedsProject([]string{PkgrName, cmd.Name()}) {
		cmd.GroupID = packageGroupId
	} else {
		cmd.GroupID = metaGroupId
	}
	return cmd
}
