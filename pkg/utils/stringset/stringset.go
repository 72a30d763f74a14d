package stringset

import (
	"slices"

	"github.com/samber/lo"
)

type StringSet map[string]struct{}

func New(items ...string) StringSet {
	ss := make(StringSet, len(items))
	for _, s := range items {
		ss.Add(s)
	}
	return ss
}

func (ss StringSet) Add(s string) StringSet {
	ss[s] = struct{}{}
	return ss
}

func (ss StringSet) Contains(s string) bool {
	_, ok := ss[s]
	return ok
}

// ContainsAll reports whether every item is in the set
func (ss StringSet) ContainsAll(items ...string) bool {
	return lo.EveryBy(items, ss.Contains)
}

func (ss StringSet) Union(other StringSet) StringSet {
	out := make(StringSet, len(ss)+len(other))
	for s := range ss {
		out.Add(s)
	}
	for s := range other {
		out.Add(s)
	}
	return out
}

// Sorted returns the members in ascending order
func (ss StringSet) Sorted() []string {
	keys := lo.Keys(ss)
	slices.Sort(keys)
	return keys
}
