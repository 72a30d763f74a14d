// Copyright (c) 2017-2025 Digital Asset (Switzerland) GmbH and/or its affiliates. All rights reserved.
// SPDX-License-Identifier: Apache-2.0

package testutil

import (
	"context"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

// TestdataPath gives absolute path within the common 'testdata'
func TestdataPath(t *testing.T, path ...string) string {
	_, file, _, ok := runtime.Caller(0)
	require.True(t, ok)

	p := []string{filepath.Dir(file), "testdata"}
	p = append(p, path...)
	return filepath.Join(p...)
}

// WriteFile writes contents to p, creating parent dirs, and returns p
func WriteFile(t *testing.T, p, contents string) string {
	require.NoError(t, os.MkdirAll(filepath.Dir(p), 0755))
	require.NoError(t, os.WriteFile(p, []byte(contents), 0644))
	return p
}

// CopyTestdata copies a testdata directory into a fresh temp dir and returns the copy's path
func CopyTestdata(t *testing.T, path ...string) string {
	dst := t.TempDir()
	require.NoError(t, os.CopyFS(dst, os.DirFS(TestdataPath(t, path...))))
	return dst
}

// CommonSetupSuite points PKGR_HOME at a fresh temp dir before every test,
// so tests never read the developer's own config
type CommonSetupSuite struct {
	suite.Suite
}

func (suite *CommonSetupSuite) SetupTest() {
	suite.T().Setenv("PKGR_HOME", suite.T().TempDir())
}

func Context(t *testing.T) context.Context {
	ctx, stopFn := context.WithCancel(context.Background())
	t.Cleanup(stopFn)
	return ctx
}
