package inmemorytopology

import (
	"context"
	"slices"

	"github.com/specialistvlad/bbdeps/internal/topologystore"
	"github.com/specialistvlad/bbdeps/internal/traverse"
	"github.com/specialistvlad/bbdeps/internal/trigger"
)

// Graph is the immutable result of Registry.Finalize.
type Graph struct {
	depends  traverse.Adjacency
	rdepends traverse.Adjacency
	order    []string
	builders []string
}

var _ topologystore.Graph = (*Graph)(nil)

// Depends returns the direct dependencies of name.
func (g *Graph) Depends(name string) ([]string, bool) {
	return lookup(g.depends, name)
}

// ReverseDepends returns the builders that directly depend on name.
func (g *Graph) ReverseDepends(name string) ([]string, bool) {
	return lookup(g.rdepends, name)
}

// Builders returns every known target, sorted.
func (g *Graph) Builders() []string {
	return slices.Clone(g.builders)
}

// BuildOrder returns the global build order.
func (g *Graph) BuildOrder() []string {
	return slices.Clone(g.order)
}

// InBuildOrder filters the global build order down to names.
func (g *Graph) InBuildOrder(names []string) []string {
	return trigger.InBuildOrder(g.order, names)
}

// InBuildOrderWithoutRepeats sorts names by the build order and drops every
// builder already implied by an earlier one of the batch.
func (g *Graph) InBuildOrderWithoutRepeats(ctx context.Context, names []string) []string {
	return trigger.WithoutRepeats(ctx, g.order, g.rdepends, names)
}

// lookup returns a copy of adj[name] so callers cannot mutate the graph.
func lookup(adj traverse.Adjacency, name string) ([]string, bool) {
	list, ok := adj[name]
	if !ok {
		return nil, false
	}
	out := make([]string, len(list))
	copy(out, list)
	return out, true
}
