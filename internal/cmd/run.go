package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/opmodel/dukbin/internal/cmdtypes"
	"github.com/opmodel/dukbin/internal/cmdutil"
	"github.com/opmodel/dukbin/internal/output"
	"github.com/opmodel/dukbin/internal/pipeline"
	"github.com/opmodel/dukbin/internal/preview"
)

// NewRunCmd creates the run command.
func NewRunCmd(cfg *cmdtypes.GlobalConfig) *cobra.Command {
	return &cobra.Command{
		Use:   "run <input>",
		Short: "Execute the bundled scripts in an embedded runtime",
		Long: `Execute the transformed scripts in an embedded JavaScript runtime
without compiling. require() resolves exactly like the compiled program;
native functions are present but throw when called.

Examples:
  dukbin run ./app/main.js`,
		RunE: func(c *cobra.Command, args []string) error {
			if len(args) != 1 {
				return usageExit(fmt.Sprintf("expected 1 argument, got %d", len(args)))
			}
			return runPreview(c, args[0], cfg)
		},
	}
}

func runPreview(c *cobra.Command, input string, cfg *cmdtypes.GlobalConfig) error {
	opts, err := cmdutil.PipelineOptions(cfg, input, "")
	if err != nil {
		return err
	}

	b, _, err := pipeline.Inspect(c.Context(), opts)
	if err != nil {
		cmdutil.PrintPipelineError("run failed", err)
		return cmdutil.ExitWith(err)
	}

	if err := preview.New(b, c.OutOrStdout()).Run(c.Context()); err != nil {
		output.Error("script failed", "error", err)
		return &cmdtypes.ExitError{Code: cmdtypes.ExitGeneralError, Err: err, Printed: true}
	}
	return nil
}
