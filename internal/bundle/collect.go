package bundle

import (
	"context"
	"errors"
	"fmt"
	"os"
	"runtime"
	"slices"

	"golang.org/x/sync/errgroup"

	"github.com/opmodel/dukbin/internal/classify"
	oerrors "github.com/opmodel/dukbin/internal/errors"
	"github.com/opmodel/dukbin/internal/native"
	"github.com/opmodel/dukbin/internal/output"
	"github.com/opmodel/dukbin/internal/resolve"
	"github.com/opmodel/dukbin/internal/transform"
)

// ResolveFunc maps a directory (relative to root) to the module it loads.
type ResolveFunc func(root, rel string) (string, error)

// Deps are the collaborators of Collect.
type Deps struct {
	// Transformer compiles script modules.
	Transformer transform.Transformer

	// Resolve resolves directories. Defaults to resolve.Dir.
	Resolve ResolveFunc

	// Concurrency bounds concurrent transforms. Defaults to GOMAXPROCS.
	Concurrency int
}

type result struct {
	module string
	index  string
	found  bool
	names  []string
}

// Collect reads, transforms and resolves every entry of tree concurrently and
// merges the results in walk order once all of them have completed. The
// first failure cancels outstanding work and no partial bundle is returned.
func Collect(ctx context.Context, tree *classify.Tree, deps Deps) (*Bundle, error) {
	if deps.Transformer == nil {
		return nil, errors.New("bundle: transformer is required")
	}
	resolveDir := deps.Resolve
	if resolveDir == nil {
		resolveDir = resolve.Dir
	}
	limit := deps.Concurrency
	if limit <= 0 {
		limit = runtime.GOMAXPROCS(0)
	}

	results := make([]result, len(tree.Entries))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(limit)
	for i, e := range tree.Entries {
		i, e := i, e
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			r, err := collectEntry(tree.Root, e, deps.Transformer, resolveDir)
			if err != nil {
				return err
			}
			results[i] = r
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	b := &Bundle{
		ModuleTable: NewModuleTable(),
		Indexes:     NewIndexTable(),
	}
	for i, e := range tree.Entries {
		r := results[i]
		switch e.Kind {
		case classify.KindScript:
			b.Modules = append(b.Modules, ModuleEntry{RelativePath: e.RelPath, CompactSource: r.module})
			b.ModuleTable.Add(e.RelPath, r.module)
		case classify.KindDirectory:
			if r.found {
				b.Indexes.Set(e.RelPath, r.index)
			}
		case classify.KindNativeHeader:
			b.Natives.Headers = append(b.Natives.Headers, e.RelPath)
		case classify.KindFunctionRegistry:
			for _, name := range r.names {
				if slices.Contains(b.Natives.FunctionNames, name) {
					output.Warn("duplicate native function ignored", "name", name, "registry", e.RelPath)
					continue
				}
				b.Natives.FunctionNames = append(b.Natives.FunctionNames, name)
			}
		}
	}

	return b, nil
}

func collectEntry(root string, e classify.Entry, tr transform.Transformer, resolveDir ResolveFunc) (result, error) {
	log := output.ModuleLogger(e.RelPath)

	switch e.Kind {
	case classify.KindScript:
		source, err := os.ReadFile(e.Path)
		if err != nil {
			return result{}, &oerrors.TransformError{FilePath: e.RelPath, Cause: err}
		}
		compact, err := tr.Transform(e.RelPath, source)
		if err != nil {
			return result{}, err
		}
		log.Debug("transformed", "bytes", len(source), "compact", len(compact))
		return result{module: compact}, nil

	case classify.KindDirectory:
		target, err := resolveDir(root, e.RelPath)
		if errors.Is(err, resolve.ErrModuleNotFound) {
			log.Debug("directory has no entry point")
			return result{}, nil
		}
		if err != nil {
			return result{}, &oerrors.ResolutionError{Dir: e.RelPath, Cause: err}
		}
		log.Debug("indexed", "module", target)
		return result{index: target, found: true}, nil

	case classify.KindFunctionRegistry:
		f, err := os.Open(e.Path)
		if err != nil {
			return result{}, fmt.Errorf("opening %s: %w", e.RelPath, err)
		}
		defer f.Close()
		names, err := native.ParseRegistry(e.RelPath, f)
		if err != nil {
			return result{}, err
		}
		log.Debug("registry parsed", "functions", len(names))
		return result{names: names}, nil
	}

	return result{}, nil
}
