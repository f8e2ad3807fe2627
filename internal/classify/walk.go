package classify

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/gobwas/glob"

	"github.com/opmodel/dukbin/internal/output"
)

// Entry is one classified filesystem entry below the source root.
type Entry struct {
	// Kind is the entry's classification.
	Kind Kind

	// RelPath is the "/"-separated path relative to the source root.
	RelPath string

	// Path is the absolute filesystem path.
	Path string
}

// Options configures a walk.
type Options struct {
	// Exclude holds glob patterns matched against RelPath. A matching
	// directory is not descended into.
	Exclude []string
}

// Tree is the classified content of a source root.
type Tree struct {
	// Root is the absolute directory containing the entry script.
	Root string

	// Entry is the absolute path of the entry script.
	Entry string

	// Entries are the classified entries in lexical walk order. Skipped
	// entries and the entry script are omitted.
	Entries []Entry
}

// Filter returns the entries of the given kind, in walk order.
func (t *Tree) Filter(kind Kind) []Entry {
	var out []Entry
	for _, e := range t.Entries {
		if e.Kind == kind {
			out = append(out, e)
		}
	}
	return out
}

// CompileExcludes compiles exclude patterns with "/" as the separator, so
// "*" stays within one path segment and "**" spans segments.
func CompileExcludes(patterns []string) ([]glob.Glob, error) {
	globs := make([]glob.Glob, 0, len(patterns))
	for _, pattern := range patterns {
		g, err := glob.Compile(pattern, '/')
		if err != nil {
			return nil, fmt.Errorf("invalid exclude pattern %q: %w", pattern, err)
		}
		globs = append(globs, g)
	}
	return globs, nil
}

// Walk classifies every entry below the directory containing entryPath.
// It performs no writes, so a naming conflict is reported before any
// workspace exists.
func Walk(entryPath string, opts Options) (*Tree, error) {
	entryAbs, err := filepath.Abs(entryPath)
	if err != nil {
		return nil, fmt.Errorf("resolving entry path: %w", err)
	}
	root := filepath.Dir(entryAbs)

	excludes, err := CompileExcludes(opts.Exclude)
	if err != nil {
		return nil, err
	}

	tree := &Tree{Root: root, Entry: entryAbs}
	err = fs.WalkDir(os.DirFS(root), ".", func(rel string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if rel == "." {
			return nil
		}

		if excluded(excludes, rel) {
			output.Debug(output.FormatFileLine(rel, output.StatusSkipped))
			if d.IsDir() {
				return fs.SkipDir
			}
			return nil
		}

		full := filepath.Join(root, filepath.FromSlash(rel))
		if !d.IsDir() && full == entryAbs {
			return nil
		}

		kind := Classify(d.Name(), d.IsDir())
		if kind == KindSkip {
			return nil
		}
		if err := CheckReserved(kind, rel); err != nil {
			return err
		}

		tree.Entries = append(tree.Entries, Entry{Kind: kind, RelPath: rel, Path: full})
		return nil
	})
	if err != nil {
		return nil, err
	}

	return tree, nil
}

func excluded(globs []glob.Glob, rel string) bool {
	for _, g := range globs {
		if g.Match(rel) {
			return true
		}
	}
	return false
}
