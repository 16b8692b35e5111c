package trigger

import (
	"context"

	"github.com/specialistvlad/bbdeps/internal/ctxlog"
	"github.com/specialistvlad/bbdeps/internal/topologystore"
	"github.com/specialistvlad/bbdeps/internal/traverse"
)

// InBuildOrder returns the names of order that are also in names, in the
// order they appear in order. Names absent from order are dropped, and
// duplicates in names collapse to one entry.
func InBuildOrder(order, names []string) []string {
	wanted := make(map[string]struct{}, len(names))
	for _, name := range names {
		wanted[name] = struct{}{}
	}

	out := make([]string, 0, len(wanted))
	for _, name := range order {
		if _, ok := wanted[name]; ok {
			out = append(out, name)
		}
	}
	return out
}

// Compact keeps each name of ordered that v has not visited yet and visits
// it, so that everything reachable from a kept name is dropped when it shows
// up later in the batch. ordered must already be in build order.
//
// v is normally fresh. Passing a visitor that already holds marks extends the
// batch with the roots it was given before.
func Compact(ctx context.Context, v *traverse.Visitor, ordered []string) []string {
	logger := ctxlog.FromContext(ctx)

	kept := make([]string, 0, len(ordered))
	for _, name := range ordered {
		if v.WasVisited(name) {
			by, _ := v.MarkedBy(name)
			logger.Info("Skipping builder, already triggered in this batch.", "builder", name, "triggered_by", by)
			continue
		}
		kept = append(kept, name)
		v.Visit(name)
	}
	return kept
}

// WithoutRepeats sorts names by order and compacts the result using a fresh
// visitor over the reverse adjacency rdeps.
func WithoutRepeats(ctx context.Context, order []string, rdeps traverse.Adjacency, names []string) []string {
	return Compact(ctx, traverse.NewVisitor(rdeps), InBuildOrder(order, names))
}

// Downstream answers "what must be triggered now that these builders
// finished?": the union of their direct dependents, in build order, without
// repeats. Unknown builders are logged and contribute nothing.
func Downstream(ctx context.Context, g topologystore.Graph, finished ...string) []string {
	logger := ctxlog.FromContext(ctx)

	var candidates []string
	for _, name := range finished {
		rdeps, ok := g.ReverseDepends(name)
		if !ok {
			if _, known := g.Depends(name); !known {
				logger.Warn("Finished builder is unknown to the graph, ignoring.", "builder", name)
			} else {
				logger.Debug("Finished builder has no dependents.", "builder", name)
			}
			continue
		}
		candidates = append(candidates, rdeps...)
	}
	return g.InBuildOrderWithoutRepeats(ctx, candidates)
}
