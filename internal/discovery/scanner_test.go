package discovery

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTree(t *testing.T, root string, files map[string]string) {
	t.Helper()
	for file, content := range files {
		fullPath := filepath.Join(root, file)
		require.NoError(t, os.MkdirAll(filepath.Dir(fullPath), 0755))
		require.NoError(t, os.WriteFile(fullPath, []byte(content), 0644))
	}
}

func TestScanner_Scan(t *testing.T) {
	tmpDir := t.TempDir()
	writeTree(t, tmpDir, map[string]string{
		"src/cache.erl":                  "-module(cache).",
		"test/cache_tests.erl":           "-module(cache_tests).",
		"deps/lager/src/lager.erl":       "-module(lager).",
		"_build/default/lib/x/src/x.erl": "-module(x).",
		".eunit/cache_tests.erl":         "-module(cache_tests).",
		".hidden/y.erl":                  "-module(y).",
		"README.md":                      "docs",
	})

	scanner := NewScanner([]string{"deps", "_build", ".eunit"})

	t.Run("finds sources outside skipped dirs", func(t *testing.T) {
		results, err := scanner.Scan(tmpDir)
		require.NoError(t, err)
		assert.ElementsMatch(t, []string{
			filepath.Join(tmpDir, "src", "cache.erl"),
			filepath.Join(tmpDir, "test", "cache_tests.erl"),
		}, results)
	})

	t.Run("returns error for non-existent directory", func(t *testing.T) {
		_, err := scanner.Scan(filepath.Join(tmpDir, "missing"))
		assert.Error(t, err)
	})

	t.Run("returns error for file instead of directory", func(t *testing.T) {
		_, err := scanner.Scan(filepath.Join(tmpDir, "README.md"))
		assert.Error(t, err)
	})
}
