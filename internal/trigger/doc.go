// Package trigger turns a candidate set of builders into a build-safe,
// compacted trigger list.
//
// InBuildOrder sorts a subset by the global build order. Compact then walks
// that sorted batch and drops every builder that is reachable, through
// reverse dependencies, from a builder kept earlier in the same batch: that
// builder will be rebuilt anyway as a consequence of the earlier trigger.
//
// Only redundancy inside one batch is removed. Two separately triggered
// batches may still rebuild the same downstream builder twice.
package trigger
