// Copyright (c) 2017-2026 Digital Asset (Switzerland) GmbH and/or its affiliates. All rights reserved.
// SPDX-License-Identifier: Apache-2.0

package utils

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWithLock(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	lockPath := filepath.Join(t.TempDir(), "nested", ".lock")

	called := false
	require.NoError(t, WithLock(ctx, lockPath, func() error {
		called = true
		return nil
	}))
	assert.True(t, called)

	// lock is released, so a second action gets it again
	boom := errors.New("boom")
	err := WithLock(ctx, lockPath, func() error { return boom })
	assert.ErrorIs(t, err, boom)
}

func TestWithLockCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := WithLock(ctx, filepath.Join(t.TempDir(), ".lock"), func() error {
		t.Fatal("action must not run on a cancelled context")
		return nil
	})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestFindInAncestors(t *testing.T) {
	root := t.TempDir()
	nested := filepath.Join(root, "a", "b", "c")
	require.NoError(t, EnsureDirs(nested))
	require.NoError(t, os.WriteFile(filepath.Join(root, "a", "marker.yaml"), []byte("x"), 0644))

	p, ok, err := FindInAncestors(nested, "marker.yaml")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, filepath.Join(root, "a", "marker.yaml"), p)

	_, ok, err = FindInAncestors(nested, "missing.yaml")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestFileExists(t *testing.T) {
	dir := t.TempDir()
	f := filepath.Join(dir, "f")
	require.NoError(t, os.WriteFile(f, nil, 0644))

	assert.True(t, FileExists(f))
	assert.False(t, FileExists(dir))
	assert.False(t, FileExists(filepath.Join(dir, "nope")))
}

func TestListEnvVar(t *testing.T) {
	t.Setenv("PKGR_TEST_LIST", " a, ,b ,c")
	vs, ok := ListEnvVar("PKGR_TEST_LIST")
	assert.True(t, ok)
	assert.Equal(t, []string{"a", "b", "c"}, vs)

	_, ok = ListEnvVar("PKGR_TEST_LIST_UNSET")
	assert.False(t, ok)
}
