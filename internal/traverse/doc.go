// Package traverse holds the two stateless graph walks used by the builder
// dependency graph: a depth-first topological sort and a reachability
// visitor whose marks accumulate across calls.
//
// Both walks operate on an Adjacency (name -> neighbour names) and tolerate
// cycles. A name is marked on entry, before its neighbours are walked, so a
// cycle never recurses forever. No cycle is reported either; the order of
// names inside a cycle is simply unspecified.
package traverse
