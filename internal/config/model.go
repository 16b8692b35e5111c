package config

import (
	"context"
	"path/filepath"

	"github.com/specialistvlad/bbdeps/internal/manifest"
)

// Loader is the interface for a format-specific workspace loader.
type Loader interface {
	// Load reads the workspace description found at paths and translates it
	// into the format-agnostic model.
	Load(ctx context.Context, paths ...string) (*Model, error)
}

// Model is the unified representation of a workspace.
type Model struct {
	Platforms []*Platform
}

// Platform is one independent dependency universe, for example one build
// operating system. Each platform gets its own graph.
type Platform struct {
	Name string

	// ManifestDir holds <builder>.in / <builder>.out files. Optional.
	ManifestDir string

	// Builders are declared inline, in addition to ManifestDir.
	Builders []*manifest.Declaration

	// Finished lists builders whose completion should be turned into a
	// trigger list when the application runs.
	Finished []string

	// Source is the file the platform was declared in, if any.
	Source string
}

// Platform returns the platform called name.
func (m *Model) Platform(name string) (*Platform, bool) {
	for _, p := range m.Platforms {
		if p.Name == name {
			return p, true
		}
	}
	return nil, false
}

// Names returns the platform names in declaration order.
func (m *Model) Names() []string {
	names := make([]string, 0, len(m.Platforms))
	for _, p := range m.Platforms {
		names = append(names, p.Name)
	}
	return names
}

// FromManifestDir describes a workspace made of a single manifest
// directory. The platform is named after the directory.
func FromManifestDir(dir string, finished []string) *Model {
	return &Model{
		Platforms: []*Platform{{
			Name:        filepath.Base(filepath.Clean(dir)),
			ManifestDir: dir,
			Finished:    finished,
		}},
	}
}
