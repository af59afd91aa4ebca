// Package testutil provides shared test helpers for building recipe directories.
package testutil

import (
	"os"
	"path/filepath"
	"testing"
)

// WriteFile writes content to rel under dir, creating parent directories,
// and returns the full path.
func WriteFile(t *testing.T, dir, rel, content string) string {
	t.Helper()
	p := filepath.Join(dir, filepath.FromSlash(rel))
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(p, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return p
}

// Touch creates an empty file at rel under dir and returns the full path.
func Touch(t *testing.T, dir, rel string) string {
	t.Helper()
	return WriteFile(t, dir, rel, "")
}

// RecipeDir creates a temporary directory populated with files, keyed by
// relative path.
func RecipeDir(t *testing.T, files map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	for rel, content := range files {
		WriteFile(t, dir, rel, content)
	}
	return dir
}
