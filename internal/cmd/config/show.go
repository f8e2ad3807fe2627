package config

import (
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/opmodel/dukbin/internal/cmdtypes"
	"github.com/opmodel/dukbin/internal/output"
)

// NewConfigShowCmd creates the config show command.
func NewConfigShowCmd(cfg *cmdtypes.GlobalConfig) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show resolved configuration values",
		Long: `Show every configuration value after flag > env > config > default
resolution, with the source each value came from.`,
		Args: cobra.NoArgs,
		RunE: func(c *cobra.Command, _ []string) error {
			return runShow(c, cfg)
		},
	}
}

func runShow(c *cobra.Command, cfg *cmdtypes.GlobalConfig) error {
	if cfg.Resolved == nil {
		return &cmdtypes.ExitError{Code: cmdtypes.ExitGeneralError, Err: fmt.Errorf("configuration not loaded")}
	}

	values := cfg.Resolved.Values()
	rows := make([][2]string, 0, len(values)+2)
	rows = append(rows, [2]string{"config", cfg.ConfigPath})
	for _, v := range values {
		rows = append(rows, [2]string{v.Key, fmt.Sprintf("%s (%s)", v.Value, v.Source)})
	}

	exclude := append([]string(nil), cfg.Resolved.Exclude...)
	sort.Strings(exclude)
	rows = append(rows, [2]string{"exclude", strings.Join(exclude, ", ")})

	fmt.Fprintln(c.OutOrStdout(), output.RenderKeyValueTable("KEY", "VALUE", rows))
	return nil
}
