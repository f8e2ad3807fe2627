// Package testutil provides test helpers for building source trees.
package testutil

import (
	"os"
	"path/filepath"
	"sort"
	"testing"
)

// WriteFile creates a file with the given content in the specified directory.
// name may contain "/" separators; parent directories are created.
func WriteFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, filepath.FromSlash(name))
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("failed to create parent dirs for %s: %v", path, err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write file %s: %v", path, err)
	}
	return path
}

// WriteTree writes every file in files under a fresh temporary directory and
// returns the directory. Keys are "/"-separated relative paths.
func WriteTree(t *testing.T, files map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	names := make([]string, 0, len(files))
	for name := range files {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		WriteFile(t, dir, name, files[name])
	}
	return dir
}

// Mkdir creates an empty directory (and parents) under dir.
func Mkdir(t *testing.T, dir, name string) string {
	t.Helper()
	path := filepath.Join(dir, filepath.FromSlash(name))
	if err := os.MkdirAll(path, 0o755); err != nil {
		t.Fatalf("failed to create dir %s: %v", path, err)
	}
	return path
}

// EngineDir creates a directory holding placeholder files for every name and
// returns it.
func EngineDir(t *testing.T, names []string) string {
	t.Helper()
	dir := t.TempDir()
	for _, name := range names {
		WriteFile(t, dir, name, "/* "+name+" */\n")
	}
	return dir
}

// ReadFile returns the content of a file, failing the test on error.
func ReadFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read file %s: %v", path, err)
	}
	return string(data)
}
