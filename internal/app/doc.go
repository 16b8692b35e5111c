// Package app contains the core application logic. It defines the main App
// struct, its configuration, and the primary execution lifecycle, decoupled
// from any specific entrypoint like a CLI or server.
//
// An App owns one finalized dependency graph per platform. Graphs are built
// in parallel at startup, then only read: by the report printed in Run and
// by the optional HTTP query server.
package app
