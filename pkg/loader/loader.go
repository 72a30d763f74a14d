// Copyright (c) 2017-2026 Digital Asset (Switzerland) GmbH and/or its affiliates. All rights reserved.
// SPDX-License-Identifier: Apache-2.0

// Package loader computes the transitive package closure of a set of root
// packages: it resolves each package, follows the imports declared in its
// source and pulls in conditional imports until nothing new appears.
package loader

import (
	"fmt"
	"log/slog"
	"slices"
	"strings"

	"github.com/samber/lo"

	"lbstanza.org/x/pkgresolve/pkg/depgraph"
	"lbstanza.org/x/pkgresolve/pkg/importscan"
	"lbstanza.org/x/pkgresolve/pkg/session"
	"lbstanza.org/x/pkgresolve/pkg/utils/stringset"
)

// Loaded is a located package together with the imports of its source.
// Packages supplied only by an artifact have no known imports.
type Loaded struct {
	*session.ResolvedLocation
	// Conditional is true if the package was pulled in by a conditional-import rule
	Conditional bool
	imports     []string
}

func (l *Loaded) Name() string {
	return l.Package
}

func (l *Loaded) Imports() []string {
	return l.imports
}

var _ depgraph.Package = (*Loaded)(nil)

type Result struct {
	// sorted by name
	Packages []*Loaded
	// names that could not be located, sorted
	Missing []string
}

func (r *Result) Names() []string {
	return lo.Map(r.Packages, func(l *Loaded, _ int) string { return l.Package })
}

// Analyze runs the dependency analysis over the loaded packages
func (r *Result) Analyze() (*depgraph.Analysis, error) {
	return depgraph.Analyze(lo.Map(r.Packages, func(l *Loaded, _ int) depgraph.Package { return l }))
}

type Loader struct {
	session *session.Session
}

func New(s *session.Session) *Loader {
	return &Loader{session: s}
}

// Load resolves roots and everything they transitively need. Missing
// packages are collected rather than failing the load; an unreadable
// source file is an error.
func (l *Loader) Load(roots ...string) (*Result, error) {
	seen := stringset.New()
	loaded := make(map[string]*Loaded)
	var missing []string

	visit := func(queue []string, conditional bool) error {
		for len(queue) > 0 {
			name := queue[0]
			queue = queue[1:]
			if seen.Contains(name) {
				continue
			}
			seen.Add(name)

			loc, ok := l.session.FindPackage(name)
			if !ok {
				slog.Debug("package not found", "package", name)
				missing = append(missing, name)
				continue
			}

			pkg := &Loaded{ResolvedLocation: loc, Conditional: conditional}
			if loc.Source != nil {
				h, err := importscan.ScanFile(*loc.Source)
				if err != nil {
					return fmt.Errorf("loading %s: %w", name, err)
				}
				if h.Package != name {
					slog.Warn("source declares another package", "package", name, "declared", h.Package, "file", *loc.Source)
				}
				pkg.imports = h.Imports
			}
			loaded[name] = pkg
			queue = append(queue, pkg.imports...)
		}
		return nil
	}

	if err := visit(slices.Clone(roots), false); err != nil {
		return nil, err
	}
	// one rule step per round: a target that cannot be found never
	// completes the triggers of another rule
	for {
		added := lo.Filter(l.session.TriggeredImports(lo.Keys(loaded)...), func(n string, _ int) bool {
			return !seen.Contains(n)
		})
		if len(added) == 0 {
			break
		}
		slog.Debug("conditional imports", "packages", added)
		if err := visit(added, true); err != nil {
			return nil, err
		}
	}

	pkgs := lo.Values(loaded)
	slices.SortFunc(pkgs, func(a, b *Loaded) int {
		return strings.Compare(a.Package, b.Package)
	})
	slices.Sort(missing)
	return &Result{Packages: pkgs, Missing: missing}, nil
}
