package hcl

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/specialistvlad/bbdeps/internal/manifest"
	"github.com/specialistvlad/bbdeps/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Workspace(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	file := testutil.WriteFile(t, dir, "workspace.hcl", `
		platform "ubu1604" {
			manifests = "bs_deps/${platform.name}"
			trigger   = ["mumble-library"]
		}

		platform "osx" {
			builder "osx-app" {
				produces = [format("%s-app", platform.name)]
				consumes = concat(["libcore"], [upper("libnet")])
			}
			builder "core" {
				produces = ["libcore"]
			}
		}
	`)

	model, err := NewLoader().Load(context.Background(), file)
	require.NoError(t, err)
	require.Len(t, model.Platforms, 2)

	ubu := model.Platforms[0]
	assert.Equal(t, "ubu1604", ubu.Name)
	assert.Equal(t, filepath.Join(dir, "bs_deps", "ubu1604"), ubu.ManifestDir)
	assert.Equal(t, []string{"mumble-library"}, ubu.Finished)
	assert.Equal(t, file, ubu.Source)
	assert.Empty(t, ubu.Builders)

	osx, ok := model.Platform("osx")
	require.True(t, ok)
	assert.Empty(t, osx.ManifestDir)
	assert.Nil(t, osx.Finished)

	expected := []*manifest.Declaration{
		{Builder: "osx-app", Produces: []string{"osx-app"}, Consumes: []string{"libcore", "LIBNET"}},
		{Builder: "core", Produces: []string{"libcore"}},
	}
	if diff := cmp.Diff(expected, osx.Builders); diff != "" {
		t.Errorf("builders mismatch (-want +got):\n%s", diff)
	}
}

func TestLoad_DirectoryIsSearchedRecursively(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	testutil.WriteFile(t, dir, "linux.hcl", `platform "linux" {}`)
	testutil.WriteFile(t, dir, "more/windows.hcl", `platform "windows" {}`)
	testutil.WriteFile(t, dir, "README.md", `not hcl`)

	model, err := NewLoader().Load(context.Background(), dir)
	require.NoError(t, err)
	assert.Equal(t, []string{"linux", "windows"}, model.Names())
}

func TestLoad_AbsoluteManifestPathIsKept(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	abs := filepath.Join(t.TempDir(), "deps")
	file := testutil.WriteFile(t, dir, "w.hcl", `platform "p" { manifests = "`+filepath.ToSlash(abs)+`" }`)

	model, err := NewLoader().Load(context.Background(), file)
	require.NoError(t, err)
	assert.Equal(t, filepath.Clean(abs), filepath.Clean(model.Platforms[0].ManifestDir))
}

func TestLoad_Errors(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name        string
		files       map[string]string
		errContains string
	}{
		{
			name:        "syntax error",
			files:       map[string]string{"a.hcl": `platform "p" {`},
			errContains: "failed to parse",
		},
		{
			name:        "unknown block",
			files:       map[string]string{"a.hcl": `runner "x" {}`},
			errContains: "failed to decode",
		},
		{
			name: "duplicate platform",
			files: map[string]string{
				"a.hcl": `platform "p" {}`,
				"b.hcl": `platform "p" {}`,
			},
			errContains: `platform "p" declared in both`,
		},
		{
			name:        "trigger is not a list",
			files:       map[string]string{"a.hcl": `platform "p" { trigger = { a = 1 } }`},
			errContains: "expected a list of strings",
		},
		{
			name:        "unknown variable",
			files:       map[string]string{"a.hcl": `platform "p" { manifests = var.dir }`},
			errContains: "manifests",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			dir := t.TempDir()
			for name, content := range tc.files {
				testutil.WriteFile(t, dir, name, content)
			}

			_, err := NewLoader().Load(context.Background(), dir)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.errContains)
		})
	}
}

func TestLoad_MissingPath(t *testing.T) {
	t.Parallel()
	_, err := NewLoader().Load(context.Background(), filepath.Join(t.TempDir(), "missing.hcl"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "error accessing path")
}
