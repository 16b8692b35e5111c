package app

import (
	"context"
	"fmt"

	"github.com/hashicorp/hcl/v2"
	"github.com/specialistvlad/bbdeps/internal/config"
	"github.com/specialistvlad/bbdeps/internal/ctxlog"
	"github.com/specialistvlad/bbdeps/internal/inmemorytopology"
	"github.com/specialistvlad/bbdeps/internal/manifest"
	"github.com/specialistvlad/bbdeps/internal/topologystore"
	"golang.org/x/sync/errgroup"
)

// platformGraph is the finalized graph of one platform and the warnings
// collected while building it.
type platformGraph struct {
	name     string
	finished []string
	graph    topologystore.Graph
	diags    hcl.Diagnostics
}

// buildPlatforms builds every platform's graph concurrently. Platforms share
// nothing, so each goroutine owns its registry.
func buildPlatforms(ctx context.Context, model *config.Model) ([]*platformGraph, error) {
	out := make([]*platformGraph, len(model.Platforms))

	g, gCtx := errgroup.WithContext(ctx)
	for i, p := range model.Platforms {
		g.Go(func() error {
			pg, err := buildPlatform(ctxlog.With(gCtx, "platform", p.Name), p)
			if err != nil {
				return fmt.Errorf("platform %s: %w", p.Name, err)
			}
			out[i] = pg
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

// buildPlatform reads the platform's manifest directory, adds its inline
// builders, resolves everything into a fresh registry and finalizes it.
func buildPlatform(ctx context.Context, p *config.Platform) (*platformGraph, error) {
	logger := ctxlog.FromContext(ctx)

	set := &manifest.Set{Source: p.Source}
	if p.ManifestDir != "" {
		s, err := manifest.ReadDir(ctx, p.ManifestDir)
		if err != nil {
			return nil, err
		}
		set = s
	}
	for _, d := range p.Builders {
		set.Add(d)
	}

	registry := inmemorytopology.New()
	diags, err := manifest.Resolve(ctx, set, registry)
	if err != nil {
		return nil, err
	}
	if err := registry.Finalize(ctx); err != nil {
		return nil, err
	}
	graph, err := registry.Graph()
	if err != nil {
		return nil, err
	}
	diags = append(diags, registry.Diagnostics()...)

	logger.Info("Dependency graph ready.", "builders", len(graph.Builders()), "ordered", len(graph.BuildOrder()), "warnings", len(diags))
	return &platformGraph{
		name:     p.Name,
		finished: p.Finished,
		graph:    graph,
		diags:    diags,
	}, nil
}
