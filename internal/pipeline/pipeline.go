// Package pipeline sequences the packaging phases: classify, transform,
// collect, stage, synthesize and compile.
package pipeline

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/opmodel/dukbin/internal/bundle"
	"github.com/opmodel/dukbin/internal/classify"
	"github.com/opmodel/dukbin/internal/config"
	"github.com/opmodel/dukbin/internal/engine"
	oerrors "github.com/opmodel/dukbin/internal/errors"
	"github.com/opmodel/dukbin/internal/native"
	"github.com/opmodel/dukbin/internal/output"
	"github.com/opmodel/dukbin/internal/synth"
	"github.com/opmodel/dukbin/internal/toolchain"
	"github.com/opmodel/dukbin/internal/workspace"
)

// Result describes a completed build.
type Result struct {
	// Output is the path of the installed binary.
	Output string

	// Bundle is the collected input of synthesis.
	Bundle *bundle.Bundle

	// Workspace is the (already removed) workspace directory.
	Workspace string

	// State is the final toolchain state.
	State toolchain.State
}

// Inspect classifies the tree and collects the bundle, including the
// transformed entry script. It performs no writes.
//
// Phase sequence:
//  1. VALIDATE:  Options.Validate
//  2. CLASSIFY:  classify.Walk (naming conflicts abort here)
//  3. ENTRY:     transform the entry script
//  4. COLLECT:   bundle.Collect (modules, indexes, registries)
func Inspect(ctx context.Context, opts Options) (*bundle.Bundle, *classify.Tree, error) {
	if err := opts.Validate(false); err != nil {
		return nil, nil, err
	}

	tree, err := classify.Walk(opts.Input, classify.Options{Exclude: opts.Exclude})
	if err != nil {
		return nil, nil, err
	}
	output.Debug("source tree classified", "root", tree.Root, "entries", len(tree.Entries))

	tr, err := opts.transformer()
	if err != nil {
		return nil, nil, err
	}

	source, err := os.ReadFile(tree.Entry)
	if err != nil {
		return nil, nil, &oerrors.TransformError{FilePath: filepath.Base(tree.Entry), Cause: err}
	}
	entry, err := tr.Transform(filepath.Base(tree.Entry), source)
	if err != nil {
		return nil, nil, err
	}

	b, err := bundle.Collect(ctx, tree, bundle.Deps{Transformer: tr})
	if err != nil {
		return nil, nil, err
	}
	b.Entry = entry

	output.Debug("bundle collected",
		"modules", len(b.Modules),
		"indexes", b.Indexes.Len(),
		"functions", len(b.Natives.FunctionNames),
	)
	return b, tree, nil
}

// Emit returns the synthesized program without creating a workspace.
// StagedSources in the returned bundle lists the native sources a build
// would stage.
func Emit(ctx context.Context, opts Options) (string, *bundle.Bundle, error) {
	b, tree, err := Inspect(ctx, opts)
	if err != nil {
		return "", nil, err
	}
	for _, e := range tree.Filter(classify.KindNativeSource) {
		b.Natives.StagedSources = append(b.Natives.StagedSources, e.RelPath)
	}

	program, err := synth.Render(engine.Template(), b)
	if err != nil {
		return "", nil, err
	}
	return program, b, nil
}

// Build runs the full pipeline and installs the compiled binary at
// opts.Output. The workspace is removed on every exit path once created,
// and from then on the returned Result is non-nil even when err is set.
//
// After Inspect:
//  5. ENGINE:    engine.CheckDir
//  6. WORKSPACE: workspace.New (closed by defer)
//  7. STAGE:     native.Stage
//  8. RENDER:    synth.Render
//  9. COMPILE:   toolchain Populate + Compile
func Build(ctx context.Context, opts Options) (*Result, error) {
	if err := opts.Validate(true); err != nil {
		return nil, err
	}

	b, tree, err := Inspect(ctx, opts)
	if err != nil {
		return nil, err
	}

	if err := engine.CheckDir(opts.EngineDir); err != nil {
		return nil, err
	}

	ws, err := workspace.New(opts.WorkDir)
	if err != nil {
		return nil, err
	}
	defer ws.Close()

	result := &Result{Output: opts.Output, Bundle: b, Workspace: ws.Dir()}

	staged, err := native.Stage(ws.Dir(), opts.EngineDir, tree.Entries)
	if err != nil {
		return result, err
	}
	b.Natives.StagedSources = staged

	program, err := synth.Render(engine.Template(), b)
	if err != nil {
		return result, err
	}

	command, artifact := opts.ToolchainCommand, opts.ToolchainArtifact
	if command == "" {
		command = config.DefaultToolchainCommand
	}
	if artifact == "" {
		artifact = config.DefaultArtifact
	}
	build := toolchain.New(ws, toolchain.Options{
		EngineDir: opts.EngineDir,
		Command:   command,
		Artifact:  artifact,
		Output:    opts.Output,
		Runner:    opts.Runner,
	})
	if err := build.Populate(program, staged); err != nil {
		return result, err
	}

	title := fmt.Sprintf("Compiling %s", filepath.Base(opts.Output))
	err = output.RunWithSpinner(ctx, title, func() error {
		return build.Compile(ctx)
	})
	result.State = build.State()
	if err != nil {
		return result, err
	}

	return result, nil
}
