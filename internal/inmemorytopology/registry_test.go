package inmemorytopology

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/hashicorp/hcl/v2"
	"github.com/specialistvlad/bbdeps/internal/ctxlog"
	"github.com/specialistvlad/bbdeps/internal/topologystore"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newWorkedExample builds the graph used throughout the tests:
// main depends on library, lib2a and lib2b; lib2a depends on library;
// lib2b depends on nothing.
func newWorkedExample(t *testing.T) topologystore.Graph {
	t.Helper()
	ctx := context.Background()
	r := New()

	for _, dep := range []string{"library", "lib2a", "lib2b"} {
		require.NoError(t, r.AddDependency(ctx, "main", dep))
	}
	require.NoError(t, r.AddDependency(ctx, "lib2a", "library"))
	// lib2b is a known target without dependencies.
	require.NoError(t, r.AddDependency(ctx, "lib2b", "lib2b"))
	require.NoError(t, r.Finalize(ctx))

	g, err := r.Graph()
	require.NoError(t, err)
	return g
}

func TestGraph_WorkedExample(t *testing.T) {
	g := newWorkedExample(t)
	ctx := context.Background()

	deps, ok := g.Depends("main")
	require.True(t, ok)
	assert.Equal(t, []string{"lib2a", "lib2b", "library"}, deps)

	rdeps, ok := g.ReverseDepends("library")
	require.True(t, ok)
	assert.Equal(t, []string{"lib2a", "main"}, rdeps)

	rdeps, ok = g.ReverseDepends("lib2a")
	require.True(t, ok)
	assert.Equal(t, []string{"main"}, rdeps)

	libraryDependents, _ := g.ReverseDepends("library")
	assert.Equal(t, []string{"lib2a"}, g.InBuildOrderWithoutRepeats(ctx, libraryDependents))
}

func TestGraph_BuildOrder(t *testing.T) {
	g := newWorkedExample(t)

	expected := []string{"library", "lib2a", "lib2b", "main"}
	if diff := cmp.Diff(expected, g.BuildOrder()); diff != "" {
		t.Errorf("BuildOrder() mismatch (-want +got):\n%s", diff)
	}
	assert.Equal(t, []string{"lib2a", "lib2b", "main"}, g.Builders())
}

func TestGraph_InBuildOrder(t *testing.T) {
	g := newWorkedExample(t)

	testCases := []struct {
		name     string
		names    []string
		expected []string
	}{
		{name: "reversed input is reordered", names: []string{"main", "library"}, expected: []string{"library", "main"}},
		{name: "unknown names are dropped", names: []string{"nope", "lib2b"}, expected: []string{"lib2b"}},
		{name: "duplicates collapse", names: []string{"main", "main"}, expected: []string{"main"}},
		{name: "empty input", names: nil, expected: []string{}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if diff := cmp.Diff(tc.expected, g.InBuildOrder(tc.names)); diff != "" {
				t.Errorf("InBuildOrder() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestGraph_UnknownNameIsAbsentNotEmpty(t *testing.T) {
	g := newWorkedExample(t)

	deps, ok := g.Depends("nonexistent")
	assert.False(t, ok)
	assert.Nil(t, deps)

	rdeps, ok := g.ReverseDepends("nonexistent")
	assert.False(t, ok)
	assert.Nil(t, rdeps)

	// A known target without dependencies is distinct from an unknown name.
	deps, ok = g.Depends("lib2b")
	assert.True(t, ok)
	assert.NotNil(t, deps)
	assert.Empty(t, deps)

	// library only ever appears as a dependency.
	_, ok = g.Depends("library")
	assert.False(t, ok)

	// main has no dependents.
	_, ok = g.ReverseDepends("main")
	assert.False(t, ok)
}

func TestGraph_ReturnedSlicesAreCopies(t *testing.T) {
	g := newWorkedExample(t)

	deps, _ := g.Depends("main")
	deps[0] = "mutated"
	again, _ := g.Depends("main")
	assert.Equal(t, "lib2a", again[0])

	order := g.BuildOrder()
	order[0] = "mutated"
	assert.Equal(t, "library", g.BuildOrder()[0])
}

func TestRegistry_SelfDependencyIgnoredWithDiagnostic(t *testing.T) {
	var buf bytes.Buffer
	ctx := ctxlog.WithLogger(context.Background(), slog.New(slog.NewTextHandler(&buf, nil)))
	r := New()

	require.NoError(t, r.AddDependency(ctx, "x", "x"))
	require.NoError(t, r.Finalize(ctx))

	g, err := r.Graph()
	require.NoError(t, err)

	deps, ok := g.Depends("x")
	require.True(t, ok)
	assert.NotContains(t, deps, "x")
	assert.Equal(t, []string{"x"}, g.BuildOrder())

	diags := r.Diagnostics()
	require.Len(t, diags, 1)
	assert.Equal(t, hcl.DiagWarning, diags[0].Severity)
	assert.False(t, diags.HasErrors())
	assert.Contains(t, diags[0].Detail, `"x"`)
	assert.Contains(t, buf.String(), "builder=x")
}

func TestRegistry_DuplicateEdgeIsIdempotent(t *testing.T) {
	ctx := context.Background()

	once := New()
	require.NoError(t, once.AddDependency(ctx, "a", "b"))
	require.NoError(t, once.Finalize(ctx))

	twice := New()
	require.NoError(t, twice.AddDependency(ctx, "a", "b"))
	require.NoError(t, twice.AddDependency(ctx, "a", "b"))
	require.NoError(t, twice.Finalize(ctx))

	g1, err := once.Graph()
	require.NoError(t, err)
	g2, err := twice.Graph()
	require.NoError(t, err)

	d1, _ := g1.Depends("a")
	d2, _ := g2.Depends("a")
	assert.Equal(t, d1, d2)

	r1, _ := g1.ReverseDepends("b")
	r2, _ := g2.ReverseDepends("b")
	assert.Equal(t, r1, r2)
	assert.Empty(t, twice.Diagnostics())
}

func TestRegistry_QueryBeforeFinalize(t *testing.T) {
	r := New()
	require.NoError(t, r.AddDependency(context.Background(), "a", "b"))

	g, err := r.Graph()
	assert.Nil(t, g)
	assert.ErrorIs(t, err, topologystore.ErrNotFinalized)
}

func TestRegistry_ModifyAfterFinalize(t *testing.T) {
	ctx := context.Background()
	r := New()
	require.NoError(t, r.AddDependency(ctx, "a", "b"))
	require.NoError(t, r.Finalize(ctx))

	err := r.AddDependency(ctx, "c", "d")
	assert.ErrorIs(t, err, topologystore.ErrFinalized)
	assert.ErrorIs(t, r.Finalize(ctx), topologystore.ErrFinalized)

	g, err := r.Graph()
	require.NoError(t, err)
	_, ok := g.Depends("c")
	assert.False(t, ok, "edges added after Finalize must not leak into the graph")
}

func TestRegistry_IndependentInstances(t *testing.T) {
	ctx := context.Background()
	linux, mac := New(), New()

	require.NoError(t, linux.AddDependency(ctx, "app", "glibc"))
	require.NoError(t, mac.AddDependency(ctx, "app", "libSystem"))
	require.NoError(t, linux.Finalize(ctx))
	require.NoError(t, mac.Finalize(ctx))

	lg, _ := linux.Graph()
	mg, _ := mac.Graph()

	ld, _ := lg.Depends("app")
	md, _ := mg.Depends("app")
	assert.Equal(t, []string{"glibc"}, ld)
	assert.Equal(t, []string{"libSystem"}, md)
}

func TestRegistry_CyclesAreTolerated(t *testing.T) {
	ctx := context.Background()
	r := New()
	require.NoError(t, r.AddDependency(ctx, "a", "b"))
	require.NoError(t, r.AddDependency(ctx, "b", "a"))
	require.NoError(t, r.AddDependency(ctx, "c", "a"))
	require.NoError(t, r.Finalize(ctx))

	g, err := r.Graph()
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"a", "b", "c"}, g.BuildOrder())
	assert.Empty(t, r.Diagnostics(), "cycles are not reported")

	trig := g.InBuildOrderWithoutRepeats(ctx, []string{"a", "b", "c"})
	assert.Len(t, trig, 1)
}
