package fsutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func touch(t *testing.T, path string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, nil, 0o600))
}

func TestFindFilesByExtension_Recursive(t *testing.T) {
	dir := t.TempDir()
	touch(t, filepath.Join(dir, "b.hcl"))
	touch(t, filepath.Join(dir, "nested", "a.hcl"))
	touch(t, filepath.Join(dir, "notes.txt"))

	files, err := FindFilesByExtension(dir, ".hcl")
	require.NoError(t, err)
	assert.Equal(t, []string{
		filepath.Join(dir, "b.hcl"),
		filepath.Join(dir, "nested", "a.hcl"),
	}, files)
}

func TestListFilesByExtension_NotRecursive(t *testing.T) {
	dir := t.TempDir()
	touch(t, filepath.Join(dir, "zeta.in"))
	touch(t, filepath.Join(dir, "alpha.in"))
	touch(t, filepath.Join(dir, "alpha.out"))
	touch(t, filepath.Join(dir, "nested", "hidden.in"))

	files, err := ListFilesByExtension(dir, ".in")
	require.NoError(t, err)
	assert.Equal(t, []string{
		filepath.Join(dir, "alpha.in"),
		filepath.Join(dir, "zeta.in"),
	}, files)
}

func TestListFilesByExtension_MissingDir(t *testing.T) {
	_, err := ListFilesByExtension(filepath.Join(t.TempDir(), "missing"), ".in")
	require.Error(t, err)
}

func TestEmptyExtensionPanics(t *testing.T) {
	assert.Panics(t, func() { _, _ = FindFilesByExtension(".", "") })
	assert.Panics(t, func() { _, _ = ListFilesByExtension(".", "") })
}

func TestTrimExtension(t *testing.T) {
	assert.Equal(t, "mumble-main", TrimExtension("/deps/ubu1604/mumble-main.in", ".in"))
}
