// Copyright (c) 2017-2026 Digital Asset (Switzerland) GmbH and/or its affiliates. All rights reserved.
// SPDX-License-Identifier: Apache-2.0

package condimport

import (
	"github.com/samber/lo"

	"lbstanza.org/x/pkgresolve/pkg/utils/stringset"
)

// Rule requires Package to be loaded once every trigger package is loaded
type Rule struct {
	Package  string   `yaml:"package"`
	Triggers []string `yaml:"when"`
}

// Expander computes the closure of a load set under a fixed list of rules
type Expander struct {
	rules []Rule
	// trigger package -> indexes of rules waiting on it
	waiting map[string][]int
}

func New(rules []Rule) *Expander {
	rules = lo.Map(rules, func(r Rule, _ int) Rule {
		return Rule{Package: r.Package, Triggers: lo.Uniq(r.Triggers)}
	})

	waiting := make(map[string][]int)
	for i, r := range rules {
		for _, trigger := range r.Triggers {
			waiting[trigger] = append(waiting[trigger], i)
		}
	}
	return &Expander{rules: rules, waiting: waiting}
}

func (e *Expander) Rules() []Rule {
	return e.rules
}

// Expand returns the packages that must be loaded in addition to loaded.
// A rule fires once all its triggers are loaded, and the package it adds
// may in turn complete the triggers of other rules.
func (e *Expander) Expand(loaded stringset.StringSet) stringset.StringSet {
	loadSet := loaded.Union(nil)
	added := make(stringset.StringSet)

	unsatisfied := make([]int, len(e.rules))
	var ready []int
	for i, r := range e.rules {
		unsatisfied[i] = lo.CountBy(r.Triggers, func(trigger string) bool {
			return !loadSet.Contains(trigger)
		})
		if unsatisfied[i] == 0 {
			ready = append(ready, i)
		}
	}

	for len(ready) > 0 {
		i := ready[0]
		ready = ready[1:]

		target := e.rules[i].Package
		if loadSet.Contains(target) {
			continue
		}
		loadSet.Add(target)
		added.Add(target)

		for _, j := range e.waiting[target] {
			unsatisfied[j]--
			if unsatisfied[j] == 0 {
				ready = append(ready, j)
			}
		}
	}

	return added
}

// Triggered returns the packages whose rules are satisfied by loaded alone,
// without chaining through packages those rules add.
func (e *Expander) Triggered(loaded stringset.StringSet) stringset.StringSet {
	fired := make(stringset.StringSet)
	for _, r := range e.rules {
		if loaded.Contains(r.Package) {
			continue
		}
		if loaded.ContainsAll(r.Triggers...) {
			fired.Add(r.Package)
		}
	}
	return fired
}
