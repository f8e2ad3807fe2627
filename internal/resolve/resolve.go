// Package resolve maps a directory to the module a directory-style require
// would load, following the Node.js resolution algorithm for a path.
package resolve

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// ErrModuleNotFound indicates the directory has no loadable entry point.
var ErrModuleNotFound = errors.New("module not found")

var (
	fileExtensions = []string{".js", ".json", ".node"}
	indexNames     = []string{"index.js", "index.json", "index.node"}
)

type packageManifest struct {
	Main string `json:"main"`
}

// Dir resolves the directory rel (relative to root, "/"-separated) and
// returns the resolved file relative to root, "/"-separated.
//
// A sibling file (rel + ".js") takes precedence over the directory itself,
// then the package.json "main" field, then index files.
func Dir(root, rel string) (string, error) {
	dir := filepath.Join(root, filepath.FromSlash(rel))

	resolved, err := resolveDir(dir)
	if err != nil {
		return "", err
	}

	out, err := filepath.Rel(root, resolved)
	if err != nil {
		return "", fmt.Errorf("relativizing %s: %w", resolved, err)
	}
	return filepath.ToSlash(out), nil
}

func resolveDir(dir string) (string, error) {
	if file, ok := loadAsFile(dir); ok {
		return file, nil
	}

	manifest, err := readManifest(dir)
	if err != nil {
		return "", err
	}
	if manifest != nil && manifest.Main != "" {
		main := filepath.Join(dir, filepath.FromSlash(manifest.Main))
		if file, ok := loadAsFile(main); ok {
			return file, nil
		}
		if file, ok := loadIndex(main); ok {
			return file, nil
		}
	}

	if file, ok := loadIndex(dir); ok {
		return file, nil
	}
	return "", fmt.Errorf("%s: %w", dir, ErrModuleNotFound)
}

func loadAsFile(path string) (string, bool) {
	if isFile(path) {
		return path, true
	}
	for _, ext := range fileExtensions {
		if isFile(path + ext) {
			return path + ext, true
		}
	}
	return "", false
}

func loadIndex(dir string) (string, bool) {
	for _, name := range indexNames {
		candidate := filepath.Join(dir, name)
		if isFile(candidate) {
			return candidate, true
		}
	}
	return "", false
}

func readManifest(dir string) (*packageManifest, error) {
	path := filepath.Join(dir, "package.json")
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	var manifest packageManifest
	if err := json.Unmarshal(data, &manifest); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return &manifest, nil
}

func isFile(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}
