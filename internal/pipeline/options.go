package pipeline

import (
	"fmt"
	"os"

	"github.com/opmodel/dukbin/internal/config"
	oerrors "github.com/opmodel/dukbin/internal/errors"
	"github.com/opmodel/dukbin/internal/toolchain"
	"github.com/opmodel/dukbin/internal/transform"
)

// Options configures a pipeline run.
type Options struct {
	// Input is the path of the entry script. Required.
	Input string

	// Output is the path of the compiled binary. Required by Build.
	Output string

	// EngineDir holds the Duktape sources and headers. Required by Build.
	EngineDir string

	// WorkDir is the parent directory of the build workspace.
	// Optional. If empty, uses os.TempDir.
	WorkDir string

	// Target is the script language target (e.g. "es5").
	Target string

	// Exclude holds glob patterns of source paths to ignore.
	Exclude []string

	// ToolchainCommand is the native build command line.
	ToolchainCommand string

	// ToolchainArtifact is the workspace-relative path of the built binary.
	ToolchainArtifact string

	// Transformer overrides the esbuild transformer built from Target.
	Transformer transform.Transformer

	// Runner overrides the toolchain process runner.
	Runner toolchain.Runner
}

// Validate checks that the input is an existing file and, when
// requireOutput is set, that an output path is given and is not a directory.
func (o Options) Validate(requireOutput bool) error {
	if o.Input == "" {
		return oerrors.NewUsageError("missing input script", "Usage: dukbin <input> <output>")
	}

	info, err := os.Stat(o.Input)
	if err != nil {
		return oerrors.NewUsageError(fmt.Sprintf("cannot read input script %s: %v", o.Input, err), "")
	}
	if info.IsDir() {
		return oerrors.NewUsageError(fmt.Sprintf("input %s is a directory", o.Input), "Pass the entry script, not its directory")
	}

	if !requireOutput {
		return nil
	}
	if o.Output == "" {
		return oerrors.NewUsageError("missing output path", "Usage: dukbin <input> <output>")
	}
	if info, err := os.Stat(o.Output); err == nil && info.IsDir() {
		return oerrors.NewUsageError(fmt.Sprintf("output %s is a directory", o.Output), "Pass the path of the binary to write")
	}
	return nil
}

func (o Options) transformer() (transform.Transformer, error) {
	if o.Transformer != nil {
		return o.Transformer, nil
	}
	target := o.Target
	if target == "" {
		target = config.DefaultTarget
	}
	return transform.NewESBuild(target)
}
