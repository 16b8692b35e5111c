package inmemorytopology

import (
	"context"
	"fmt"
	"maps"
	"slices"
	"sync"

	"github.com/hashicorp/hcl/v2"
	"github.com/specialistvlad/bbdeps/internal/ctxlog"
	"github.com/specialistvlad/bbdeps/internal/topologystore"
	"github.com/specialistvlad/bbdeps/internal/traverse"
)

// Registry implements topologystore.Store.
type Registry struct {
	mu    sync.Mutex
	deps  map[string]map[string]struct{} // Key: target, Value: set of dependencies
	diags hcl.Diagnostics
	graph *Graph // nil until Finalize
}

var _ topologystore.Store = (*Registry)(nil)

// New creates a new, empty registry in its construction phase.
func New() *Registry {
	return &Registry{
		deps: make(map[string]map[string]struct{}),
	}
}

// AddDependency records that target depends on dependency.
func (r *Registry) AddDependency(ctx context.Context, target, dependency string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.graph != nil {
		return fmt.Errorf("cannot add %s -> %s: %w", target, dependency, topologystore.ErrFinalized)
	}

	logger := ctxlog.FromContext(ctx)

	set, ok := r.deps[target]
	if !ok {
		set = make(map[string]struct{})
		r.deps[target] = set
	}

	if target == dependency {
		// This does happen in real manifests.
		logger.Warn("Builder declared a dependency on itself, ignoring.", "builder", target)
		r.diags = append(r.diags, &hcl.Diagnostic{
			Severity: hcl.DiagWarning,
			Summary:  "Self dependency ignored",
			Detail:   fmt.Sprintf("Builder %q declared that it depends on itself.", target),
		})
		return nil
	}

	if _, dup := set[dependency]; dup {
		return nil
	}
	set[dependency] = struct{}{}
	logger.Debug("Declared builder dependency.", "builder", target, "depends_on", dependency)
	return nil
}

// Finalize derives the reverse adjacency and the global build order.
func (r *Registry) Finalize(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.graph != nil {
		return topologystore.ErrFinalized
	}

	depends := make(traverse.Adjacency, len(r.deps))
	for target, set := range r.deps {
		depends[target] = slices.Sorted(maps.Keys(set))
	}

	g := &Graph{
		depends:  depends,
		rdepends: depends.Transpose(),
	}
	g.order = traverse.TopoSort(depends)
	g.builders = depends.Keys()

	r.graph = g
	r.deps = nil

	ctxlog.FromContext(ctx).Debug("Dependency graph finalized.",
		"builders", len(g.builders),
		"ordered", len(g.order),
		"warnings", len(r.diags),
	)
	return nil
}

// Graph returns the finalized graph.
func (r *Registry) Graph() (topologystore.Graph, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.graph == nil {
		return nil, topologystore.ErrNotFinalized
	}
	return r.graph, nil
}

// Diagnostics returns a copy of the warnings collected so far.
func (r *Registry) Diagnostics() hcl.Diagnostics {
	r.mu.Lock()
	defer r.mu.Unlock()
	return slices.Clone(r.diags)
}
