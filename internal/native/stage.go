// Package native stages C++ fragments into the build workspace and parses
// the native function registry.
package native

import (
	"path/filepath"

	"github.com/opmodel/dukbin/internal/classify"
	"github.com/opmodel/dukbin/internal/engine"
	oerrors "github.com/opmodel/dukbin/internal/errors"
	"github.com/opmodel/dukbin/internal/output"
	"github.com/opmodel/dukbin/internal/workspace"
)

// Stage copies every native source and header in entries into dest at its
// relative path, and copies the engine API headers next to every staged
// source. It returns the staged source paths ("/"-separated) in walk order.
func Stage(dest, engineDir string, entries []classify.Entry) ([]string, error) {
	var staged []string

	for _, e := range entries {
		if e.Kind != classify.KindNativeSource && e.Kind != classify.KindNativeHeader {
			continue
		}

		target := filepath.Join(dest, filepath.FromSlash(e.RelPath))
		if err := workspace.CopyFile(e.Path, target, 0o644); err != nil {
			return nil, &oerrors.StageError{Path: e.RelPath, Cause: err}
		}
		output.ModuleLogger(e.RelPath).Debug("staged", "kind", e.Kind)

		if e.Kind != classify.KindNativeSource {
			continue
		}
		for _, header := range engine.InjectedHeaders() {
			src := filepath.Join(engineDir, header)
			dst := filepath.Join(filepath.Dir(target), header)
			if err := workspace.CopyFile(src, dst, 0o644); err != nil {
				return nil, &oerrors.StageError{Path: e.RelPath, Cause: err}
			}
		}
		staged = append(staged, e.RelPath)
	}

	return staged, nil
}
