package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/opmodel/dukbin/internal/cmdtypes"
	"github.com/opmodel/dukbin/internal/cmdutil"
	"github.com/opmodel/dukbin/internal/output"
	"github.com/opmodel/dukbin/internal/pipeline"
)

// NewBuildCmd creates the build command. It behaves like the bare root
// invocation.
func NewBuildCmd(cfg *cmdtypes.GlobalConfig) *cobra.Command {
	return &cobra.Command{
		Use:   "build <input> <output>",
		Short: "Compile a script tree into an executable",
		Long: `Compile a script tree into an executable.

Scripts are transformed to the configured target, native fragments are
staged beside the engine sources and the generated program is compiled by
the configured toolchain (default: npx node-gyp rebuild).

Examples:
  dukbin build ./app/main.js ./bin/app
  dukbin build ./app/main.js ./bin/app --target es2015 -v`,
		RunE: func(c *cobra.Command, args []string) error {
			if len(args) != 2 {
				return usageExit(fmt.Sprintf("expected 2 arguments, got %d", len(args)))
			}
			return runBuild(c.Context(), args[0], args[1], cfg)
		},
	}
}

func runBuild(ctx context.Context, input, out string, cfg *cmdtypes.GlobalConfig) error {
	opts, err := cmdutil.PipelineOptions(cfg, input, out)
	if err != nil {
		return err
	}

	result, err := pipeline.Build(ctx, opts)
	if result != nil {
		output.Debug("build finished", "state", result.State, "workspace", result.Workspace)
	}
	if err != nil {
		cmdutil.PrintPipelineError("build failed", err)
		return cmdutil.ExitWith(err)
	}

	cmdutil.WriteBundleLines(result.Bundle)
	output.Println(output.FormatCheckmark(fmt.Sprintf("Built %s", result.Output)))
	return nil
}
