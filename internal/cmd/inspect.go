package cmd

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/opmodel/dukbin/internal/cmdtypes"
	"github.com/opmodel/dukbin/internal/cmdutil"
	"github.com/opmodel/dukbin/internal/output"
	"github.com/opmodel/dukbin/internal/pipeline"
)

// NewInspectCmd creates the inspect command.
func NewInspectCmd(cfg *cmdtypes.GlobalConfig) *cobra.Command {
	var ff cmdutil.FormatFlags

	c := &cobra.Command{
		Use:   "inspect <input>",
		Short: "List what a build would bundle",
		Long: `List the modules, directory indexes, native fragments and native
functions a build would bundle.

Examples:
  dukbin inspect ./app/main.js
  dukbin inspect ./app/main.js -o json`,
		RunE: func(c *cobra.Command, args []string) error {
			if len(args) != 1 {
				return usageExit(fmt.Sprintf("expected 1 argument, got %d", len(args)))
			}
			return runInspect(c, args[0], cfg, &ff)
		},
	}

	ff.AddTo(c)
	return c
}

func runInspect(c *cobra.Command, input string, cfg *cmdtypes.GlobalConfig, ff *cmdutil.FormatFlags) error {
	format, err := ff.Format()
	if err != nil {
		output.Details(err.Error())
		return cmdutil.ExitWith(err)
	}

	opts, err := cmdutil.PipelineOptions(cfg, input, "")
	if err != nil {
		return err
	}

	_, b, err := pipeline.Emit(c.Context(), opts)
	if err != nil {
		cmdutil.PrintPipelineError("inspect failed", err)
		return cmdutil.ExitWith(err)
	}

	report := cmdutil.NewReport(filepath.Base(input), b)
	if format != output.FormatTable {
		if err := output.WriteStructured(c.OutOrStdout(), format, report); err != nil {
			return &cmdtypes.ExitError{Code: cmdtypes.ExitGeneralError, Err: err}
		}
		return nil
	}

	tbl := output.NewTable("KIND", "PATH", "DETAIL")
	for _, row := range report.Rows() {
		tbl.Row(row...)
	}
	fmt.Fprintln(c.OutOrStdout(), tbl.String())
	return nil
}
