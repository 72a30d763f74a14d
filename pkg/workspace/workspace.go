// Copyright (c) 2017-2026 Digital Asset (Switzerland) GmbH and/or its affiliates. All rights reserved.
// SPDX-License-Identifier: Apache-2.0

// Package workspace wires the configured project, its build record and a
// resolution session together for the CLI
package workspace

import (
	"context"
	"fmt"
	"log/slog"

	"lbstanza.org/x/pkgresolve/pkg/buildrecord"
	"lbstanza.org/x/pkgresolve/pkg/pkgrconfig"
	"lbstanza.org/x/pkgresolve/pkg/project"
	"lbstanza.org/x/pkgresolve/pkg/resolutionerrors"
	"lbstanza.org/x/pkgresolve/pkg/session"
)

var ErrNoProject = fmt.Errorf("no %s found in the current directory or its ancestors (set %s to point elsewhere)",
	pkgrconfig.ProjectFileName, pkgrconfig.ProjectEnvVar)

type Workspace struct {
	Config      *pkgrconfig.Config
	Project     *project.Project
	BuildRecord *buildrecord.Store
	Session     *session.Session
}

func Open(ctx context.Context, config *pkgrconfig.Config) (*Workspace, error) {
	projectPath, found, err := pkgrconfig.GetProjectFilePath()
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, resolutionerrors.NewProjectNotFoundError(ErrNoProject)
	}
	slog.Debug("using project", "path", projectPath)

	p, err := project.Read(projectPath)
	if err != nil {
		return nil, err
	}

	compilerVersion, err := config.ParsedCompilerVersion()
	if err != nil {
		return nil, err
	}
	records, err := buildrecord.Load(ctx, config.BuildRecordPath, compilerVersion)
	if err != nil {
		return nil, err
	}

	s, err := session.New(p, session.Options{
		Store:    records,
		Build:    config.BuildConfig(),
		PkgCache: config.PkgCache,
	})
	if err != nil {
		return nil, resolutionerrors.NewMalformedProjectError(err)
	}

	return &Workspace{
		Config:      config,
		Project:     p,
		BuildRecord: records,
		Session:     s,
	}, nil
}
