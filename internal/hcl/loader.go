package hcl

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/specialistvlad/bbdeps/internal/config"
	"github.com/specialistvlad/bbdeps/internal/ctxlog"
	"github.com/specialistvlad/bbdeps/internal/fsutil"
	"github.com/specialistvlad/bbdeps/internal/manifest"
)

// Loader is the HCL-specific implementation of the config.Loader interface.
type Loader struct{}

var _ config.Loader = (*Loader)(nil)

// NewLoader creates a new HCL workspace loader.
func NewLoader() *Loader {
	return &Loader{}
}

// Load parses every .hcl file found at paths (files, or directories searched
// recursively) and merges their platforms into one model. A platform name
// may only be declared once across all files.
func (l *Loader) Load(ctx context.Context, paths ...string) (*config.Model, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("HCL loader started.", "path_count", len(paths))

	files, err := l.findAllHCLFiles(paths)
	if err != nil {
		return nil, err
	}
	logger.Debug("Discovered HCL files.", "count", len(files))

	model := &config.Model{}
	declaredIn := make(map[string]string)
	parser := hclparse.NewParser()

	for _, file := range files {
		hclFile, diags := parser.ParseHCLFile(file)
		if diags.HasErrors() {
			return nil, fmt.Errorf("failed to parse HCL file %s: %w", file, diags)
		}

		var root fileRoot
		if diags := gohcl.DecodeBody(hclFile.Body, nil, &root); diags.HasErrors() {
			return nil, fmt.Errorf("failed to decode HCL file %s: %w", file, diags)
		}

		for _, block := range root.Platforms {
			if prev, dup := declaredIn[block.Name]; dup {
				return nil, fmt.Errorf("platform %q declared in both %s and %s", block.Name, prev, file)
			}
			declaredIn[block.Name] = file

			platform, err := l.translatePlatform(block, file)
			if err != nil {
				return nil, fmt.Errorf("failed to translate platform %q in %s: %w", block.Name, file, err)
			}
			model.Platforms = append(model.Platforms, platform)
			logger.Debug("Platform declared.", "platform", platform.Name, "file", file, "inline_builders", len(platform.Builders))
		}
	}

	logger.Debug("HCL loading complete.", "platforms", len(model.Platforms))
	return model, nil
}

// translatePlatform evaluates a platform block into the agnostic model.
func (l *Loader) translatePlatform(block *platformBlock, file string) (*config.Platform, error) {
	evalCtx := newEvalContext(block.Name)

	dir, err := evalString(block.Manifests, evalCtx)
	if err != nil {
		return nil, fmt.Errorf("manifests: %w", err)
	}
	if dir != "" && !filepath.IsAbs(dir) {
		dir = filepath.Join(filepath.Dir(file), dir)
	}

	finished, err := evalStringList(block.Trigger, evalCtx)
	if err != nil {
		return nil, fmt.Errorf("trigger: %w", err)
	}

	p := &config.Platform{
		Name:        block.Name,
		ManifestDir: dir,
		Finished:    finished,
		Source:      file,
	}

	for _, b := range block.Builders {
		produces, err := evalStringList(b.Produces, evalCtx)
		if err != nil {
			return nil, fmt.Errorf("builder %q produces: %w", b.Name, err)
		}
		consumes, err := evalStringList(b.Consumes, evalCtx)
		if err != nil {
			return nil, fmt.Errorf("builder %q consumes: %w", b.Name, err)
		}
		p.Builders = append(p.Builders, &manifest.Declaration{
			Builder:  b.Name,
			Produces: produces,
			Consumes: consumes,
		})
	}
	return p, nil
}

// findAllHCLFiles walks all given paths and returns a flat list of all .hcl files found.
func (l *Loader) findAllHCLFiles(paths []string) ([]string, error) {
	var allFiles []string
	seen := make(map[string]struct{})
	add := func(p string) {
		if _, wasSeen := seen[p]; !wasSeen {
			allFiles = append(allFiles, p)
			seen[p] = struct{}{}
		}
	}

	for _, path := range paths {
		info, err := os.Stat(path)
		if err != nil {
			return nil, fmt.Errorf("error accessing path %s: %w", path, err)
		}

		if !info.IsDir() {
			add(path)
			continue
		}

		found, err := fsutil.FindFilesByExtension(path, ".hcl")
		if err != nil {
			return nil, err
		}
		for _, f := range found {
			add(f)
		}
	}
	return allFiles, nil
}
