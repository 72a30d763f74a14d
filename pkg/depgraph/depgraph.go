// Copyright (c) 2017-2026 Digital Asset (Switzerland) GmbH and/or its affiliates. All rights reserved.
// SPDX-License-Identifier: Apache-2.0

// Package depgraph analyses the import graph of a finished load session:
// it finds mutually importing packages (strongly connected components) and
// condenses them into an acyclic component graph.
//
// Imports of packages that are not part of the analysed collection are
// dropped without being reported. A package that failed to resolve is
// already reported by the loader, and reporting every edge into it again
// would only cascade the same failure.
package depgraph

import (
	"cmp"
	"fmt"
	"slices"

	"github.com/dominikbraun/graph"
	"github.com/samber/lo"

	"lbstanza.org/x/pkgresolve/pkg/utils/stringset"
)

// Package is a resolved package as seen by the analyser
type Package interface {
	Name() string
	Imports() []string
}

// ImportGraph maps each package to the resolved packages it imports,
// in first-import order without duplicates
type ImportGraph map[string][]string

// Component is a strongly connected set of packages. Members are sorted.
type Component struct {
	ID      int
	Members []string
}

func (c Component) Smallest() string {
	return c.Members[0]
}

func (c Component) IsCycle() bool {
	return len(c.Members) > 1
}

// Analysis is the result of Analyze. All slices are sorted.
type Analysis struct {
	// Packages is every analysed package name, sorted
	Packages []string
	Imports  ImportGraph
	// Components are ordered by smallest member, Components[i].ID == i
	Components  []Component
	ComponentOf map[string]int
	// ComponentGraph maps a component id to the ids of the other
	// components its members import
	ComponentGraph map[int][]int
}

// Analyze builds the import graph of pkgs and condenses it.
// Packages listed more than once have their imports merged.
func Analyze(pkgs []Package) (*Analysis, error) {
	imports := buildImportGraph(pkgs)
	names := lo.Keys(imports)
	slices.Sort(names)

	sccs, err := stronglyConnectedComponents(names, imports)
	if err != nil {
		return nil, err
	}

	components := lo.Map(sccs, func(members []string, _ int) Component {
		sorted := slices.Clone(members)
		slices.Sort(sorted)
		return Component{Members: sorted}
	})
	slices.SortFunc(components, func(a, b Component) int {
		return cmp.Compare(a.Smallest(), b.Smallest())
	})

	componentOf := make(map[string]int, len(names))
	for i := range components {
		components[i].ID = i
		for _, m := range components[i].Members {
			componentOf[m] = i
		}
	}

	componentGraph := make(map[int][]int, len(components))
	for _, c := range components {
		targets := lo.FlatMap(c.Members, func(m string, _ int) []int {
			return lo.Map(imports[m], func(imp string, _ int) int {
				return componentOf[imp]
			})
		})
		targets = lo.Uniq(lo.Without(targets, c.ID))
		// ids follow smallest-member order
		slices.Sort(targets)
		componentGraph[c.ID] = targets
	}

	return &Analysis{
		Packages:       names,
		Imports:        imports,
		Components:     components,
		ComponentOf:    componentOf,
		ComponentGraph: componentGraph,
	}, nil
}

func buildImportGraph(pkgs []Package) ImportGraph {
	resolved := stringset.New(lo.Map(pkgs, func(p Package, _ int) string {
		return p.Name()
	})...)

	g := make(ImportGraph, len(resolved))
	for _, p := range pkgs {
		kept := lo.Filter(p.Imports(), func(imp string, _ int) bool {
			return resolved.Contains(imp)
		})
		g[p.Name()] = lo.Uniq(append(g[p.Name()], kept...))
	}
	return g
}

func stronglyConnectedComponents(names []string, imports ImportGraph) ([][]string, error) {
	g := graph.New(graph.StringHash, graph.Directed())
	for _, n := range names {
		if err := g.AddVertex(n); err != nil {
			return nil, fmt.Errorf("adding package %q to the import graph: %w", n, err)
		}
	}
	for _, n := range names {
		for _, imp := range imports[n] {
			// self imports never change component membership
			if imp == n {
				continue
			}
			if err := g.AddEdge(n, imp); err != nil {
				return nil, fmt.Errorf("adding import %q -> %q to the import graph: %w", n, imp, err)
			}
		}
	}
	return graph.StronglyConnectedComponents(g)
}

// Cycles returns the components made of more than one package
func (a *Analysis) Cycles() []Component {
	return lo.Filter(a.Components, func(c Component, _ int) bool {
		return c.IsCycle()
	})
}

// SortedImports is the import list of pkg in ascending order
func (a *Analysis) SortedImports(pkg string) []string {
	imps := slices.Clone(a.Imports[pkg])
	slices.Sort(imps)
	return imps
}
