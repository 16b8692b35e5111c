// Package inmemorytopology is the in-memory implementation of
// topologystore.Store and topologystore.Graph.
//
// The Registry collects edges into sets during construction. Finalize turns
// those sets into sorted adjacency lists, derives the reverse adjacency as
// their exact transpose, and computes the global build order once. The
// resulting Graph is never mutated again and needs no locking.
package inmemorytopology
