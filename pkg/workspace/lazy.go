// Copyright (c) 2017-2026 Digital Asset (Switzerland) GmbH and/or its affiliates. All rights reserved.
// SPDX-License-Identifier: Apache-2.0

package workspace

import (
	"context"
	"sync"

	"lbstanza.org/x/pkgresolve/pkg/pkgrconfig"
)

// Lazy opens the workspace on first use, so that commands which don't
// need a project (version, help, completion) work anywhere
type Lazy struct {
	config *pkgrconfig.Config

	once  sync.Once
	value *Workspace
	err   error
}

func NewLazy(config *pkgrconfig.Config) *Lazy {
	return &Lazy{config: config}
}

func (l *Lazy) Config() *pkgrconfig.Config {
	return l.config
}

func (l *Lazy) Get(ctx context.Context) (*Workspace, error) {
	l.once.Do(func() {
		l.value, l.err = Open(ctx, l.config)
	})
	return l.value, l.err
}
