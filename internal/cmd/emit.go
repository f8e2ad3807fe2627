package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/opmodel/dukbin/internal/cmdtypes"
	"github.com/opmodel/dukbin/internal/cmdutil"
	"github.com/opmodel/dukbin/internal/output"
	"github.com/opmodel/dukbin/internal/pipeline"
)

// NewEmitCmd creates the emit command.
func NewEmitCmd(cfg *cmdtypes.GlobalConfig) *cobra.Command {
	var ff cmdutil.FileFlags

	c := &cobra.Command{
		Use:   "emit <input>",
		Short: "Print the generated C++ program",
		Long: `Print the C++ program a build would compile, without staging or
compiling anything.

Examples:
  dukbin emit ./app/main.js
  dukbin emit ./app/main.js -o duk_build.cpp`,
		RunE: func(c *cobra.Command, args []string) error {
			if len(args) != 1 {
				return usageExit(fmt.Sprintf("expected 1 argument, got %d", len(args)))
			}
			return runEmit(c, args[0], cfg, &ff)
		},
	}

	ff.AddTo(c)
	return c
}

func runEmit(c *cobra.Command, input string, cfg *cmdtypes.GlobalConfig, ff *cmdutil.FileFlags) error {
	opts, err := cmdutil.PipelineOptions(cfg, input, "")
	if err != nil {
		return err
	}

	program, _, err := pipeline.Emit(c.Context(), opts)
	if err != nil {
		cmdutil.PrintPipelineError("emit failed", err)
		return cmdutil.ExitWith(err)
	}

	if ff.File == "" {
		fmt.Fprint(c.OutOrStdout(), program)
		return nil
	}

	if err := os.WriteFile(ff.File, []byte(program), 0o644); err != nil {
		return &cmdtypes.ExitError{Code: cmdtypes.ExitGeneralError, Err: fmt.Errorf("writing program: %w", err)}
	}
	output.Info(fmt.Sprintf("wrote %s", ff.File))
	return nil
}
