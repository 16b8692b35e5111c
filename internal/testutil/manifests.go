package testutil

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

// Manifest lists what one builder produces and consumes.
type Manifest struct {
	Produces []string
	Consumes []string
}

// WriteManifestDir writes <builder>.out and <builder>.in files for every
// entry into a fresh temporary directory and returns its path. A nil list
// skips the corresponding file.
func WriteManifestDir(t *testing.T, manifests map[string]Manifest) string {
	t.Helper()
	dir := t.TempDir()

	for builder, m := range manifests {
		if m.Produces != nil {
			writeLines(t, filepath.Join(dir, builder+".out"), m.Produces)
		}
		if m.Consumes != nil {
			writeLines(t, filepath.Join(dir, builder+".in"), m.Consumes)
		}
	}
	return dir
}

// MumbleManifests mirrors the reference fixture: the lib2a, lib2b and
// library packages each come from their own builder, and main consumes all
// three.
func MumbleManifests() map[string]Manifest {
	return map[string]Manifest{
		"mumble-library": {Produces: []string{"libmumble-library-dev"}, Consumes: []string{}},
		"mumble-lib2a":   {Produces: []string{"libmumble-lib2a-dev"}, Consumes: []string{"libmumble-library-dev"}},
		"mumble-lib2b":   {Produces: []string{"libmumble-lib2b-dev"}, Consumes: []string{}},
		"mumble-main": {
			Produces: []string{"mumble"},
			Consumes: []string{"libmumble-library-dev", "libmumble-lib2a-dev", "libmumble-lib2b-dev"},
		},
	}
}

// WriteFile writes content to dir/name, creating parent directories.
func WriteFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func writeLines(t *testing.T, path string, lines []string) {
	t.Helper()
	content := strings.Join(lines, "\n")
	if len(lines) > 0 {
		content += "\n"
	}
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
}
