// Package topologystore defines the interfaces for building and querying the
// builder dependency graph of one platform.
//
// # Lifecycle
//
// A Store goes through two phases:
//  1. **Construction:** edges are added one at a time with AddDependency.
//  2. **Finalized:** Finalize derives the reverse adjacency and the global
//     build order. From then on the Store is read-only and Graph returns an
//     immutable view that is safe to share between goroutines.
//
// Queries live on Graph only, so asking questions of a half-built store is
// reported as ErrNotFinalized instead of silently returning partial data.
//
// Construction anomalies (a builder declaring that it depends on itself, a
// consumed package nobody produces) are never errors. They are collected as
// hcl.Diagnostics with warning severity, which the caller may inspect or
// ignore.
package topologystore

import (
	"context"
	"errors"

	"github.com/hashicorp/hcl/v2"
)

var (
	// ErrNotFinalized is returned when the graph is queried before Finalize.
	ErrNotFinalized = errors.New("topologystore: graph queried before Finalize")

	// ErrFinalized is returned when a finalized store is modified or
	// finalized a second time.
	ErrFinalized = errors.New("topologystore: store already finalized")
)

// Store is the construction API of a builder dependency graph.
type Store interface {
	// AddDependency records that target must be rebuilt after dependency.
	//
	// A self-edge (target == dependency) is ignored with a warning diagnostic;
	// target still becomes a known builder with no dependencies. Adding the
	// same edge twice has no further effect. After Finalize it returns
	// ErrFinalized.
	AddDependency(ctx context.Context, target, dependency string) error

	// Finalize ends the construction phase. It must be called exactly once;
	// a second call returns ErrFinalized.
	Finalize(ctx context.Context) error

	// Graph returns the finalized, read-only graph, or ErrNotFinalized.
	Graph() (Graph, error)

	// Diagnostics returns the warnings collected during construction.
	Diagnostics() hcl.Diagnostics
}

// Graph is the query API of a finalized builder dependency graph.
//
// Implementations MUST be immutable, and therefore safe for concurrent use.
type Graph interface {
	// Depends returns the sorted direct dependencies of name. The boolean is
	// false if name never appeared as a target; a known target without
	// dependencies returns an empty, non-nil slice and true.
	Depends(name string) ([]string, bool)

	// ReverseDepends returns the sorted builders that directly depend on name,
	// with the same absent semantics as Depends.
	ReverseDepends(name string) ([]string, bool)

	// Builders returns every known target, sorted.
	Builders() []string

	// BuildOrder returns the global topological order: every dependency
	// precedes its dependents.
	BuildOrder() []string

	// InBuildOrder filters the global build order down to names. Names
	// without a position in the order are dropped.
	InBuildOrder(names []string) []string

	// InBuildOrderWithoutRepeats returns InBuildOrder(names) minus every
	// builder that is already rebuilt as a consequence of an earlier kept
	// builder of the same batch.
	InBuildOrderWithoutRepeats(ctx context.Context, names []string) []string
}
