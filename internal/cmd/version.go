package cmd

import (
	"github.com/spf13/cobra"

	"github.com/opmodel/dukbin/internal/cmdtypes"
	"github.com/opmodel/dukbin/internal/output"
	"github.com/opmodel/dukbin/internal/version"
)

// NewVersionCmd creates the version command.
func NewVersionCmd(_ *cmdtypes.GlobalConfig) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Long: `Show dukbin version information.

Displays:
  - dukbin version, commit, and build date
  - esbuild and goja versions (embedded in CLI)`,
		Args: cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			output.Println(version.Get().String())
			return nil
		},
	}
}
