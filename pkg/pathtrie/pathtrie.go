// Copyright (c) 2017-2026 Digital Asset (Switzerland) GmbH and/or its affiliates. All rights reserved.
// SPDX-License-Identifier: Apache-2.0

// Package pathtrie maps hierarchical package namespaces to the directories
// declared to hold their sources.
package pathtrie

import (
	"path/filepath"

	"lbstanza.org/x/pkgresolve/pkg/pkgname"
)

// SourceExtension is appended to the last segment of a package name
// to form its source file name
const SourceExtension = ".stanza"

type node struct {
	children map[string]*node
	terminal *string
}

func newNode() *node {
	return &node{children: make(map[string]*node)}
}

// Trie is built once from the project's package declarations and is
// read-only afterwards, so concurrent lookups are safe.
type Trie struct {
	root *node
}

func New() *Trie {
	return &Trie{root: newNode()}
}

// Insert sets terminal as the backing path of segments.
// Inserting the same segments twice keeps the last terminal.
func (t *Trie) Insert(segments []string, terminal string) {
	n := t.root
	for _, s := range segments {
		child, ok := n.children[s]
		if !ok {
			child = newNode()
			n.children[s] = child
		}
		n = child
	}
	n.terminal = &terminal
}

// Resolve returns the deepest node along segments that has a terminal path,
// together with the number of segments it consumed.
func (t *Trie) Resolve(segments []string) (matched int, terminal string, ok bool) {
	n := t.root
	if n.terminal != nil {
		matched, terminal, ok = 0, *n.terminal, true
	}
	for i, s := range segments {
		child, exists := n.children[s]
		if !exists {
			break
		}
		n = child
		if n.terminal != nil {
			matched, terminal, ok = i+1, *n.terminal, true
		}
	}
	return
}

// FilenameFor computes the source file that should define name: the
// directory of its deepest declared namespace, followed by the undeclared
// namespace segments and the package's own file.
func (t *Trie) FilenameFor(name pkgname.Name) (string, bool) {
	segments := name.Segments()
	if len(segments) == 0 {
		return "", false
	}

	matched, dir, ok := t.Resolve(name.Namespace())
	if !ok {
		return "", false
	}

	rest := segments[matched:]
	for _, s := range rest[:len(rest)-1] {
		if !pkgname.IsValidPathComponent(s) {
			return "", false
		}
	}

	parts := append([]string{dir}, rest[:len(rest)-1]...)
	parts = append(parts, rest[len(rest)-1]+SourceExtension)
	return filepath.Join(parts...), true
}
