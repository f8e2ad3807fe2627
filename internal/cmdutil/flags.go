// Package cmdutil provides shared command utilities for dukbin subcommands.
// It centralizes flag groups, pipeline option assembly, error reporting and
// output formatting helpers.
package cmdutil

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	oerrors "github.com/opmodel/dukbin/internal/errors"
	"github.com/opmodel/dukbin/internal/output"
)

// FormatFlags holds the output format flag of listing commands (inspect).
type FormatFlags struct {
	Output string
}

// AddTo registers the format flag on the given cobra command.
func (f *FormatFlags) AddTo(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.Output, "output", "o", "table",
		"Output format: "+strings.Join(output.ValidFormats(), ", "))
}

// Format parses the flag value.
func (f *FormatFlags) Format() (output.Format, error) {
	format, ok := output.ParseFormat(f.Output)
	if !ok {
		return "", oerrors.NewUsageError(
			fmt.Sprintf("invalid output format %q", f.Output),
			"Valid formats: "+strings.Join(output.ValidFormats(), ", "),
		)
	}
	return format, nil
}

// FileFlags holds the output file flag of commands that write a document (emit).
type FileFlags struct {
	File string
}

// AddTo registers the file flag on the given cobra command.
func (f *FileFlags) AddTo(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.File, "output", "o", "",
		"Write to file instead of stdout")
}
