package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/opmodel/dukbin/internal/cmdtypes"
	"github.com/opmodel/dukbin/internal/config"
)

const configHeader = "# dukbin configuration\n# Values here are overridden by DUKBIN_* environment variables and flags.\n\n"

// NewConfigInitCmd creates the config init command.
func NewConfigInitCmd(cfg *cmdtypes.GlobalConfig) *cobra.Command {
	var force bool

	c := &cobra.Command{
		Use:   "init",
		Short: "Create a new dukbin configuration file",
		Long: `Create a new dukbin configuration file with default values.

The configuration file is created at ~/.dukbin/config.yaml by default.
Use --config flag to specify a different location.`,
		Args: cobra.NoArgs,
		RunE: func(c *cobra.Command, _ []string) error {
			return runInit(c, cfg, force)
		},
	}

	c.Flags().BoolVarP(&force, "force", "f", false, "Overwrite existing config file")

	return c
}

func runInit(c *cobra.Command, cfg *cmdtypes.GlobalConfig, force bool) error {
	path, err := configFilePath(cfg)
	if err != nil {
		return err
	}

	if _, err := os.Stat(path); err == nil && !force {
		return &cmdtypes.ExitError{
			Code: cmdtypes.ExitGeneralError,
			Err:  fmt.Errorf("config file already exists at %s (use --force to overwrite)", path),
		}
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	data, err := yaml.Marshal(config.DefaultConfig())
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	data = append([]byte(configHeader), data...)

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}

	fmt.Fprintf(c.OutOrStdout(), "Config file created: %s\n", path)
	return nil
}

// configFilePath returns the expanded config path resolved at startup.
func configFilePath(cfg *cmdtypes.GlobalConfig) (string, error) {
	path := cfg.ConfigPath
	if path == "" {
		paths, err := config.DefaultPaths()
		if err != nil {
			return "", fmt.Errorf("getting config file path: %w", err)
		}
		path = paths.ConfigFile
	}

	expanded, err := config.ExpandPath(path)
	if err != nil {
		return "", fmt.Errorf("expanding config path: %w", err)
	}
	return expanded, nil
}
