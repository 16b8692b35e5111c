package traverse

import (
	"maps"
	"slices"
)

// Adjacency maps a builder name to the names it points at. For forward
// adjacency those are the builder's dependencies, for reverse adjacency its
// dependents. Lists are expected to be sorted and free of duplicates.
type Adjacency map[string][]string

// Keys returns the names that have an entry, sorted.
func (a Adjacency) Keys() []string {
	return slices.Sorted(maps.Keys(a))
}

// Transpose returns the reverse of a: for every edge k -> v in a, the result
// holds v -> k. Lists in the result are sorted.
func (a Adjacency) Transpose() Adjacency {
	out := make(Adjacency)
	for from, tos := range a {
		for _, to := range tos {
			out[to] = append(out[to], from)
		}
	}
	for k := range out {
		slices.Sort(out[k])
		out[k] = slices.Compact(out[k])
	}
	return out
}
