// Copyright (c) 2017-2026 Digital Asset (Switzerland) GmbH and/or its affiliates. All rights reserved.
// SPDX-License-Identifier: Apache-2.0

package condimport

import (
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"

	"lbstanza.org/x/pkgresolve/pkg/utils/stringset"
)

func TestExpand(t *testing.T) {
	rules := []Rule{{Package: "C", Triggers: []string{"A", "B"}}}
	e := New(rules)

	assert.Empty(t, e.Expand(stringset.New("A")))
	assert.Equal(t, []string{"C"}, e.Expand(stringset.New("A", "B")).Sorted())
	assert.Empty(t, e.Expand(stringset.New("A", "B", "C")))
}

func TestExpandChains(t *testing.T) {
	rules := []Rule{
		{Package: "E", Triggers: []string{"D", "A"}},
		{Package: "D", Triggers: []string{"C"}},
		{Package: "C", Triggers: []string{"A", "B"}},
		{Package: "X", Triggers: []string{"Y"}},
	}

	got := New(rules).Expand(stringset.New("A", "B"))
	assert.Equal(t, []string{"C", "D", "E"}, got.Sorted())
}

func TestExpandIsOrderIndependent(t *testing.T) {
	rules := []Rule{
		{Package: "E", Triggers: []string{"D", "A"}},
		{Package: "D", Triggers: []string{"C"}},
		{Package: "C", Triggers: []string{"A", "B"}},
		{Package: "F", Triggers: []string{"E", "C", "C"}},
		{Package: "G", Triggers: []string{"Z"}},
	}
	loaded := stringset.New("A", "B")
	want := New(rules).Expand(loaded).Sorted()

	reversed := slices.Clone(rules)
	slices.Reverse(reversed)
	assert.Equal(t, want, New(reversed).Expand(loaded).Sorted())

	rotated := append(slices.Clone(rules[2:]), rules[:2]...)
	assert.Equal(t, want, New(rotated).Expand(loaded).Sorted())
}

func TestExpandIsIdempotent(t *testing.T) {
	rules := []Rule{
		{Package: "C", Triggers: []string{"A", "B"}},
		{Package: "D", Triggers: []string{"C"}},
	}
	e := New(rules)
	loaded := stringset.New("A", "B")

	added := e.Expand(loaded)
	assert.Empty(t, e.Expand(loaded.Union(added)))
}

func TestExpandDoesNotMutateInput(t *testing.T) {
	loaded := stringset.New("A")
	New([]Rule{{Package: "B", Triggers: []string{"A"}}}).Expand(loaded)
	assert.Equal(t, []string{"A"}, loaded.Sorted())
}

func TestRuleWithoutTriggersAlwaysFires(t *testing.T) {
	got := New([]Rule{{Package: "prelude"}}).Expand(stringset.New())
	assert.Equal(t, []string{"prelude"}, got.Sorted())
}

func TestTriggeredDoesNotChain(t *testing.T) {
	rules := []Rule{
		{Package: "D", Triggers: []string{"C"}},
		{Package: "C", Triggers: []string{"A", "B"}},
		{Package: "F"},
	}
	e := New(rules)

	assert.Equal(t, []string{"C", "F"}, e.Triggered(stringset.New("A", "B")).Sorted())
	assert.Equal(t, []string{"D", "F"}, e.Triggered(stringset.New("A", "B", "C")).Sorted())
	assert.Empty(t, e.Triggered(stringset.New("A", "B", "C", "D", "F")))
}
