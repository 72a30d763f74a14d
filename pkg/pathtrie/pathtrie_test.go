// Copyright (c) 2017-2026 Digital Asset (Switzerland) GmbH and/or its affiliates. All rights reserved.
// SPDX-License-Identifier: Apache-2.0

package pathtrie

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lbstanza.org/x/pkgresolve/pkg/pkgname"
)

func TestResolve(t *testing.T) {
	trie := New()
	trie.Insert([]string{"a", "b"}, "P1")
	trie.Insert([]string{"a"}, "P2")

	tests := []struct {
		name        string
		segments    []string
		wantMatched int
		wantPath    string
		wantOk      bool
	}{
		{name: "exact", segments: []string{"a", "b"}, wantMatched: 2, wantPath: "P1", wantOk: true},
		{name: "deeper than declared", segments: []string{"a", "b", "c"}, wantMatched: 2, wantPath: "P1", wantOk: true},
		{name: "falls back to ancestor", segments: []string{"a", "x"}, wantMatched: 1, wantPath: "P2", wantOk: true},
		{name: "ancestor itself", segments: []string{"a"}, wantMatched: 1, wantPath: "P2", wantOk: true},
		{name: "no match", segments: []string{"z"}, wantOk: false},
		{name: "empty", segments: nil, wantOk: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			matched, p, ok := trie.Resolve(tt.segments)
			require.Equal(t, tt.wantOk, ok)
			if ok {
				assert.Equal(t, tt.wantMatched, matched)
				assert.Equal(t, tt.wantPath, p)
			}
		})
	}
}

func TestResolveSkipsIntermediateWithoutTerminal(t *testing.T) {
	trie := New()
	trie.Insert([]string{"a"}, "A")
	trie.Insert([]string{"a", "b", "c"}, "ABC")

	// walk reaches a/b which has no terminal, so a is the answer
	matched, p, ok := trie.Resolve([]string{"a", "b", "x"})
	require.True(t, ok)
	assert.Equal(t, 1, matched)
	assert.Equal(t, "A", p)
}

func TestInsertLastWriteWins(t *testing.T) {
	trie := New()
	trie.Insert([]string{"a"}, "first")
	trie.Insert([]string{"a"}, "second")

	_, p, ok := trie.Resolve([]string{"a"})
	require.True(t, ok)
	assert.Equal(t, "second", p)
}

func TestFilenameFor(t *testing.T) {
	trie := New()
	trie.Insert([]string{"math"}, filepath.Join("src", "math"))
	trie.Insert([]string{"gfx", "gl"}, "vendor/gl")

	tests := []struct {
		name   string
		pkg    pkgname.Name
		want   string
		wantOk bool
	}{
		{name: "direct child", pkg: "math/vector", want: filepath.Join("src", "math", "vector.stanza"), wantOk: true},
		{name: "nested under namespace", pkg: "math/linear/matrix", want: filepath.Join("src", "math", "linear", "matrix.stanza"), wantOk: true},
		{name: "deep declaration", pkg: "gfx/gl/buffers", want: filepath.Join("vendor", "gl", "buffers.stanza"), wantOk: true},
		{name: "namespace package itself is not in its own directory", pkg: "math", wantOk: false},
		{name: "undeclared", pkg: "net/http", wantOk: false},
		{name: "dot segment", pkg: "math/./vector", wantOk: false},
		{name: "dotdot segment", pkg: "math/../etc/passwd", wantOk: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := trie.FilenameFor(tt.pkg)
			require.Equal(t, tt.wantOk, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFilenameForRootNamespace(t *testing.T) {
	trie := New()
	trie.Insert(nil, "src")

	got, ok := trie.FilenameFor("math/vector")
	require.True(t, ok)
	assert.Equal(t, filepath.Join("src", "math", "vector.stanza"), got)

	got, ok = trie.FilenameFor("main")
	require.True(t, ok)
	assert.Equal(t, filepath.Join("src", "main.stanza"), got)
}
