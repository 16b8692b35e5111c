// Package manifest turns per-builder package manifests into builder
// dependency edges.
//
// A manifest directory holds, for every builder, a "<builder>.out" file
// listing the packages it produces and a "<builder>.in" file listing the
// packages it consumes, one package name per line. Package names and builder
// names are unrelated namespaces. Resolve maps each consumed package to the
// builder producing it and records the edge consumer -> producer in a
// topologystore.Store.
//
// One directory describes one platform: the same package may be built by
// different builders on different platforms, so each platform gets its own
// store.
package manifest
