// Copyright (c) 2017-2026 Digital Asset (Switzerland) GmbH and/or its affiliates. All rights reserved.
// SPDX-License-Identifier: Apache-2.0

package depgraph

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/goccy/go-yaml"
	"github.com/samber/lo"

	"lbstanza.org/x/pkgresolve/pkg/schema"
)

const (
	ReportKind       = "DependencyReport"
	ReportVersion    = "v1"
	ReportAPIVersion = schema.APIGroup + "/" + ReportVersion
)

// Label names a component by its members, e.g. "{a, b}"
func (c Component) Label() string {
	return "{" + strings.Join(c.Members, ", ") + "}"
}

// Text renders the package section then the component section,
// one line per node with its sorted imports.
func (a *Analysis) Text() string {
	var sb strings.Builder

	sb.WriteString("packages:\n")
	for _, p := range a.Packages {
		writeNode(&sb, p, a.SortedImports(p))
	}

	sb.WriteString("components:\n")
	for _, c := range a.Components {
		writeNode(&sb, c.Label(), lo.Map(a.ComponentGraph[c.ID], func(id int, _ int) string {
			return a.Components[id].Label()
		}))
	}
	return sb.String()
}

func writeNode(sb *strings.Builder, node string, targets []string) {
	sb.WriteString("  " + node)
	if len(targets) > 0 {
		sb.WriteString(" -> " + strings.Join(targets, ", "))
	}
	sb.WriteString("\n")
}

// EdgeList renders one "source -> target" line per package import
func (a *Analysis) EdgeList() string {
	var sb strings.Builder
	for _, p := range a.Packages {
		for _, imp := range a.SortedImports(p) {
			fmt.Fprintf(&sb, "%s -> %s\n", p, imp)
		}
	}
	return sb.String()
}

// ComponentEdgeList renders one "source -> target" line per component edge
func (a *Analysis) ComponentEdgeList() string {
	var sb strings.Builder
	for _, c := range a.Components {
		for _, id := range a.ComponentGraph[c.ID] {
			fmt.Fprintf(&sb, "%s -> %s\n", c.Label(), a.Components[id].Label())
		}
	}
	return sb.String()
}

// DOT renders the package graph for Graphviz, grouping every import cycle
// into its own cluster
func (a *Analysis) DOT() string {
	var sb strings.Builder
	sb.WriteString("digraph packages {\n")
	for _, c := range a.Cycles() {
		fmt.Fprintf(&sb, "  subgraph cluster_%d {\n", c.ID)
		fmt.Fprintf(&sb, "    label=%s;\n", strconv.Quote(c.Label()))
		for _, m := range c.Members {
			fmt.Fprintf(&sb, "    %s;\n", strconv.Quote(m))
		}
		sb.WriteString("  }\n")
	}
	for _, p := range a.Packages {
		if !a.Components[a.ComponentOf[p]].IsCycle() {
			fmt.Fprintf(&sb, "  %s;\n", strconv.Quote(p))
		}
	}
	for _, p := range a.Packages {
		for _, imp := range a.SortedImports(p) {
			fmt.Fprintf(&sb, "  %s -> %s;\n", strconv.Quote(p), strconv.Quote(imp))
		}
	}
	sb.WriteString("}\n")
	return sb.String()
}

type Document struct {
	schema.ManifestMeta `yaml:",inline"`
	Provenance          map[string]string `yaml:"provenance,omitempty"`
	Packages            []PackageEntry    `yaml:"packages"`
	Components          []ComponentEntry  `yaml:"components"`
}

type PackageEntry struct {
	Name      string   `yaml:"name"`
	Component int      `yaml:"component"`
	Imports   []string `yaml:"imports,omitempty"`
}

type ComponentEntry struct {
	ID      int      `yaml:"id"`
	Members []string `yaml:"members"`
	Imports []int    `yaml:"imports,omitempty"`
}

// Document is the serialisable form of the analysis
func (a *Analysis) Document(provenance map[string]string) *Document {
	return &Document{
		ManifestMeta: schema.ManifestMeta{
			APIVersion: ReportAPIVersion,
			Kind:       ReportKind,
		},
		Provenance: provenance,
		Packages: lo.Map(a.Packages, func(p string, _ int) PackageEntry {
			return PackageEntry{
				Name:      p,
				Component: a.ComponentOf[p],
				Imports:   a.SortedImports(p),
			}
		}),
		Components: lo.Map(a.Components, func(c Component, _ int) ComponentEntry {
			return ComponentEntry{
				ID:      c.ID,
				Members: c.Members,
				Imports: a.ComponentGraph[c.ID],
			}
		}),
	}
}

func (a *Analysis) YAML(provenance map[string]string) (string, error) {
	data, err := yaml.Marshal(a.Document(provenance))
	if err != nil {
		return "", err
	}
	return string(data), nil
}
