// Copyright (c) 2017-2026 Digital Asset (Switzerland) GmbH and/or its affiliates. All rights reserved.
// SPDX-License-Identifier: Apache-2.0

package syntaxplugin

import (
	"slices"

	"github.com/samber/lo"

	"lbstanza.org/x/pkgresolve/pkg/utils/stringset"
)

// ImplicitPackages are the syntax packages every plugin supports
var ImplicitPackages = []string{"core", "tests"}

// Group is a macro plugin and the syntax packages it implements
type Group struct {
	Packages []string `yaml:"packages"`
	Plugin   string   `yaml:"plugin"`
}

type Resolver struct {
	groups  []Group
	offered []stringset.StringSet
}

// New orders groups by descending number of supported packages, so the
// most general plugin is preferred. Equal sizes keep declaration order.
func New(groups []Group) *Resolver {
	sorted := lo.Map(groups, func(g Group, _ int) Group {
		return Group{Packages: slices.Clone(g.Packages), Plugin: g.Plugin}
	})
	slices.SortStableFunc(sorted, func(a, b Group) int {
		return len(lo.Uniq(b.Packages)) - len(lo.Uniq(a.Packages))
	})

	offered := lo.Map(sorted, func(g Group, _ int) stringset.StringSet {
		return stringset.New(append(slices.Clone(g.Packages), ImplicitPackages...)...)
	})
	return &Resolver{groups: sorted, offered: offered}
}

// Groups lists the declared groups in preference order
func (r *Resolver) Groups() []Group {
	return slices.Clone(r.groups)
}

// Resolve returns the plugin of the first group supporting every required package
func (r *Resolver) Resolve(required []string) (string, bool) {
	for i, g := range r.groups {
		if r.offered[i].ContainsAll(required...) {
			return g.Plugin, true
		}
	}
	return "", false
}
