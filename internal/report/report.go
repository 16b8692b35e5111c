// Package report renders a finalized dependency graph for humans.
package report

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/specialistvlad/bbdeps/internal/topologystore"
)

// Dump writes the adjacency of every builder, the global build order and
// the compacted trigger order of the whole graph.
func Dump(ctx context.Context, w io.Writer, platform string, g topologystore.Graph) error {
	var b strings.Builder

	if platform != "" {
		fmt.Fprintf(&b, "Platform %s\n", platform)
	}
	b.WriteString("Dependency graph:\n")
	for _, name := range g.Builders() {
		deps, _ := g.Depends(name)
		fmt.Fprintf(&b, "%s: %s\n", name, strings.Join(deps, " "))
	}
	b.WriteString("\n")

	order := g.BuildOrder()
	b.WriteString("Legal build order:\n")
	b.WriteString(strings.Join(order, " "))
	b.WriteString("\n")

	b.WriteString("Minimal-ish legal trigger order:\n")
	b.WriteString(strings.Join(g.InBuildOrderWithoutRepeats(ctx, order), " "))
	b.WriteString("\n")

	_, err := io.WriteString(w, b.String())
	return err
}

// Triggers writes the trigger list computed for finished builders.
func Triggers(w io.Writer, platform string, finished, triggers []string) error {
	_, err := fmt.Fprintf(w, "Platform %s: after %s, trigger: %s\n",
		platform, strings.Join(finished, " "), strings.Join(triggers, " "))
	return err
}
