// Package toolchain populates the build workspace and drives the external
// native toolchain that compiles the generated program.
package toolchain

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"mvdan.cc/sh/v3/shell"

	"github.com/opmodel/dukbin/internal/engine"
	oerrors "github.com/opmodel/dukbin/internal/errors"
	"github.com/opmodel/dukbin/internal/output"
	"github.com/opmodel/dukbin/internal/workspace"
)

// State is the lifecycle state of a Build.
type State int

const (
	StateInit State = iota
	StatePopulated
	StateCompiling
	StateSucceeded
	StateFailed
)

var stateNames = map[State]string{
	StateInit:      "init",
	StatePopulated: "populated",
	StateCompiling: "compiling",
	StateSucceeded: "succeeded",
	StateFailed:    "failed",
}

func (s State) String() string {
	if name, ok := stateNames[s]; ok {
		return name
	}
	return "unknown"
}

var transitions = map[State][]State{
	StateInit:      {StatePopulated, StateFailed},
	StatePopulated: {StateCompiling, StateFailed},
	StateCompiling: {StateSucceeded, StateFailed},
}

// Options configures a Build.
type Options struct {
	// EngineDir holds the engine sources and headers.
	EngineDir string

	// Command is the toolchain command line, split with shell rules.
	Command string

	// Artifact is the workspace-relative path of the compiled binary.
	Artifact string

	// Output is where the compiled binary is copied.
	Output string

	// Runner executes the toolchain. Defaults to ExecRunner.
	Runner Runner
}

// Build compiles one generated program inside a workspace.
type Build struct {
	ws    *workspace.Workspace
	opts  Options
	state State
}

// New returns a Build in StateInit. The caller owns ws and closes it.
func New(ws *workspace.Workspace, opts Options) *Build {
	if opts.Runner == nil {
		opts.Runner = ExecRunner{}
	}
	return &Build{ws: ws, opts: opts, state: StateInit}
}

// State returns the current state.
func (b *Build) State() State {
	return b.state
}

func (b *Build) transition(to State) error {
	for _, allowed := range transitions[b.state] {
		if allowed == to {
			output.Debug("build state", "from", b.state, "to", to)
			b.state = to
			return nil
		}
	}
	return fmt.Errorf("invalid build state transition %s -> %s", b.state, to)
}

func (b *Build) fail(err error) error {
	if terr := b.transition(StateFailed); terr != nil {
		return errors.Join(err, terr)
	}
	return err
}

// Populate writes the program and its build descriptor, then copies every
// engine file not already present in the workspace.
func (b *Build) Populate(program string, staged []string) error {
	if b.state != StateInit {
		return fmt.Errorf("populate: build is %s", b.state)
	}

	if err := b.ws.WriteFile(engine.ProgramName, []byte(program)); err != nil {
		return b.fail(err)
	}

	descriptor, err := NewDescriptor(staged).Marshal()
	if err != nil {
		return b.fail(fmt.Errorf("encoding build descriptor: %w", err))
	}
	if err := b.ws.WriteFile(engine.DescriptorName, descriptor); err != nil {
		return b.fail(err)
	}

	if err := b.copyEngine(); err != nil {
		return b.fail(err)
	}

	return b.transition(StatePopulated)
}

func (b *Build) copyEngine() error {
	entries, err := os.ReadDir(b.opts.EngineDir)
	if err != nil {
		return fmt.Errorf("reading engine directory: %w", err)
	}
	for _, e := range entries {
		if !e.Type().IsRegular() || b.ws.Exists(e.Name()) {
			continue
		}
		if err := workspace.CopyFile(filepath.Join(b.opts.EngineDir, e.Name()), b.ws.Path(e.Name()), 0o644); err != nil {
			return fmt.Errorf("copying engine file %s: %w", e.Name(), err)
		}
	}
	return nil
}

// Compile runs the toolchain in the workspace and copies the artifact to
// the output path. No timeout is applied; ctx only carries cancellation.
func (b *Build) Compile(ctx context.Context) error {
	if b.state != StatePopulated {
		return fmt.Errorf("compile: build is %s", b.state)
	}

	argv, err := shell.Fields(b.opts.Command, nil)
	if err != nil || len(argv) == 0 {
		cerr := oerrors.NewConfigError(
			fmt.Sprintf("invalid toolchain command %q", b.opts.Command),
			"toolchain.command",
			"Set toolchain.command to a command line such as \"npx node-gyp rebuild\"",
		)
		return b.fail(cerr)
	}

	if err := b.transition(StateCompiling); err != nil {
		return err
	}

	out, err := b.opts.Runner.Run(ctx, b.ws.Dir(), argv)
	if err != nil {
		return b.fail(&oerrors.ToolchainError{Command: b.opts.Command, Output: string(out), Cause: err})
	}
	output.Debug("toolchain finished", "command", b.opts.Command, "output", strings.TrimSpace(string(out)))

	if err := b.install(); err != nil {
		return b.fail(&oerrors.ToolchainError{Command: b.opts.Command, Output: string(out), Cause: err})
	}

	return b.transition(StateSucceeded)
}

// install copies the artifact next to the output path and renames it into
// place, so a failed copy never leaves a partial binary at Output.
func (b *Build) install() error {
	artifact := b.ws.Path(b.opts.Artifact)
	if _, err := os.Stat(artifact); err != nil {
		return fmt.Errorf("toolchain produced no artifact at %s: %w", b.opts.Artifact, err)
	}

	tmp := b.opts.Output + ".dukbin-tmp"
	if err := workspace.CopyFile(artifact, tmp, 0o755); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("copying artifact: %w", err)
	}
	if err := os.Rename(tmp, b.opts.Output); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("installing artifact: %w", err)
	}
	return nil
}

// Run populates the workspace and compiles.
func (b *Build) Run(ctx context.Context, program string, staged []string) error {
	if err := b.Populate(program, staged); err != nil {
		return err
	}
	return b.Compile(ctx)
}
