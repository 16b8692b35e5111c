package manifest

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"slices"
	"strings"

	"github.com/hashicorp/hcl/v2"
	"github.com/specialistvlad/bbdeps/internal/ctxlog"
	"github.com/specialistvlad/bbdeps/internal/fsutil"
	"github.com/specialistvlad/bbdeps/internal/topologystore"
)

const (
	producesExt = ".out"
	consumesExt = ".in"
)

// Declaration is what one builder says about itself.
type Declaration struct {
	Builder  string
	Produces []string
	Consumes []string
}

// Set is a collection of declarations for one platform.
type Set struct {
	// Source describes where the declarations came from, for diagnostics.
	Source       string
	Declarations []*Declaration
}

// Add merges d into the set. Declarations for the same builder are combined.
func (s *Set) Add(d *Declaration) {
	for _, existing := range s.Declarations {
		if existing.Builder == d.Builder {
			existing.Produces = append(existing.Produces, d.Produces...)
			existing.Consumes = append(existing.Consumes, d.Consumes...)
			return
		}
	}
	s.Declarations = append(s.Declarations, d)
}

// ReadDir reads every *.out and *.in file directly inside dir.
func ReadDir(ctx context.Context, dir string) (*Set, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Reading manifest directory.", "dir", dir)

	byBuilder := make(map[string]*Declaration)
	declaration := func(builder string) *Declaration {
		d, ok := byBuilder[builder]
		if !ok {
			d = &Declaration{Builder: builder}
			byBuilder[builder] = d
		}
		return d
	}

	outFiles, err := fsutil.ListFilesByExtension(dir, producesExt)
	if err != nil {
		return nil, err
	}
	for _, path := range outFiles {
		lines, err := readLines(path)
		if err != nil {
			return nil, err
		}
		d := declaration(fsutil.TrimExtension(path, producesExt))
		d.Produces = append(d.Produces, lines...)
	}

	inFiles, err := fsutil.ListFilesByExtension(dir, consumesExt)
	if err != nil {
		return nil, err
	}
	for _, path := range inFiles {
		lines, err := readLines(path)
		if err != nil {
			return nil, err
		}
		d := declaration(fsutil.TrimExtension(path, consumesExt))
		d.Consumes = append(d.Consumes, lines...)
	}

	set := &Set{Source: dir}
	for _, builder := range sortedKeys(byBuilder) {
		set.Declarations = append(set.Declarations, byBuilder[builder])
	}

	logger.Debug("Manifest directory read.", "dir", dir, "builders", len(set.Declarations), "out_files", len(outFiles), "in_files", len(inFiles))
	return set, nil
}

// Resolve records one edge per consumed package whose producer is known.
// Unknown packages and packages produced by more than one builder are
// reported as warnings; neither stops the resolution.
func Resolve(ctx context.Context, set *Set, store topologystore.Store) (hcl.Diagnostics, error) {
	logger := ctxlog.FromContext(ctx)
	var diags hcl.Diagnostics

	decls := slices.Clone(set.Declarations)
	slices.SortStableFunc(decls, func(a, b *Declaration) int {
		return strings.Compare(a.Builder, b.Builder)
	})

	producer := make(map[string]string)
	for _, d := range decls {
		for _, pkg := range d.Produces {
			if prev, dup := producer[pkg]; dup && prev != d.Builder {
				logger.Warn("Package produced by more than one builder, keeping the last.", "package", pkg, "previous", prev, "builder", d.Builder)
				diags = append(diags, &hcl.Diagnostic{
					Severity: hcl.DiagWarning,
					Summary:  "Package has several producers",
					Detail:   fmt.Sprintf("Package %q is produced by both %q and %q in %s; using %q.", pkg, prev, d.Builder, set.Source, d.Builder),
				})
			}
			producer[pkg] = d.Builder
		}
	}

	for _, d := range decls {
		for _, pkg := range d.Consumes {
			builder, ok := producer[pkg]
			if !ok {
				logger.Warn("No builder produces consumed package, ignoring.", "package", pkg, "builder", d.Builder, "source", set.Source)
				diags = append(diags, &hcl.Diagnostic{
					Severity: hcl.DiagWarning,
					Summary:  "Unresolved package",
					Detail:   fmt.Sprintf("Builder %q consumes package %q, which no builder in %s produces.", d.Builder, pkg, set.Source),
				})
				continue
			}
			if err := store.AddDependency(ctx, d.Builder, builder); err != nil {
				return diags, fmt.Errorf("failed to record dependency of %s on %s: %w", d.Builder, builder, err)
			}
		}
	}
	return diags, nil
}

// Load reads dir and resolves it into store.
func Load(ctx context.Context, dir string, store topologystore.Store) (hcl.Diagnostics, error) {
	set, err := ReadDir(ctx, dir)
	if err != nil {
		return nil, err
	}
	return Resolve(ctx, set, store)
}

// readLines returns the non-blank lines of path with trailing whitespace
// removed.
func readLines(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open manifest %s: %w", path, err)
	}
	defer f.Close()

	var lines []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimRight(scanner.Text(), " \t\r")
		if line == "" {
			continue
		}
		lines = append(lines, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read manifest %s: %w", path, err)
	}
	return lines, nil
}

func sortedKeys(m map[string]*Declaration) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}
