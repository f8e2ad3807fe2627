// Package workspace provides the scratch directory a single build owns.
package workspace

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/opmodel/dukbin/internal/output"
)

// Pattern is the os.MkdirTemp pattern for workspace directories.
const Pattern = "dukbin-*"

// Workspace is a uniquely named directory removed by Close.
type Workspace struct {
	dir    string
	closed bool
}

// New creates a workspace under parent. An empty parent uses os.TempDir.
func New(parent string) (*Workspace, error) {
	dir, err := os.MkdirTemp(parent, Pattern)
	if err != nil {
		return nil, fmt.Errorf("creating build workspace: %w", err)
	}
	output.Debug("workspace created", "dir", dir)
	return &Workspace{dir: dir}, nil
}

// Dir returns the workspace directory.
func (w *Workspace) Dir() string {
	return w.dir
}

// Path returns the absolute path of a "/"-separated workspace-relative path.
func (w *Workspace) Path(rel string) string {
	return filepath.Join(w.dir, filepath.FromSlash(rel))
}

// Exists reports whether rel exists in the workspace.
func (w *Workspace) Exists(rel string) bool {
	_, err := os.Stat(w.Path(rel))
	return err == nil
}

// WriteFile writes data to rel, creating parent directories.
func (w *Workspace) WriteFile(rel string, data []byte) error {
	path := w.Path(rel)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating directory for %s: %w", rel, err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", rel, err)
	}
	return nil
}

// Close removes the workspace recursively. It is safe to call more than once.
func (w *Workspace) Close() error {
	if w.closed {
		return nil
	}
	w.closed = true
	if err := os.RemoveAll(w.dir); err != nil {
		output.Warn("failed to remove workspace", "dir", w.dir, "error", err)
		return fmt.Errorf("removing build workspace: %w", err)
	}
	output.Debug("workspace removed", "dir", w.dir)
	return nil
}

// CopyFile copies src to dst with the given mode, creating parent directories.
func CopyFile(src, dst string, mode os.FileMode) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return fmt.Errorf("creating directory for %s: %w", dst, err)
	}

	out, err := os.OpenFile(dst, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, mode)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return err
	}
	if err := out.Close(); err != nil {
		return err
	}
	return os.Chmod(dst, mode)
}
