// Package testutil holds fixtures shared by the package tests: small
// dependency graphs and manifest directories written to t.TempDir().
package testutil

import (
	"context"
	"testing"

	"github.com/specialistvlad/bbdeps/internal/inmemorytopology"
	"github.com/specialistvlad/bbdeps/internal/topologystore"
	"github.com/stretchr/testify/require"
)

// Edge is a (target, dependency) pair.
type Edge struct {
	Target     string
	Dependency string
}

// NewGraph registers edges in a fresh registry, finalizes it and returns the
// graph.
func NewGraph(t *testing.T, edges ...Edge) topologystore.Graph {
	t.Helper()
	ctx := context.Background()

	r := inmemorytopology.New()
	for _, e := range edges {
		require.NoError(t, r.AddDependency(ctx, e.Target, e.Dependency))
	}
	require.NoError(t, r.Finalize(ctx))

	g, err := r.Graph()
	require.NoError(t, err)
	return g
}

// WorkedExample returns the reference graph: main depends on library, lib2a
// and lib2b; lib2a depends on library; lib2b depends on nothing.
func WorkedExample(t *testing.T) topologystore.Graph {
	t.Helper()
	return NewGraph(t,
		Edge{"main", "library"},
		Edge{"main", "lib2a"},
		Edge{"main", "lib2b"},
		Edge{"lib2a", "library"},
		Edge{"lib2b", "lib2b"},
	)
}
