package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/opmodel/dukbin/internal/cmdtypes"
	"github.com/opmodel/dukbin/internal/config"
	oerrors "github.com/opmodel/dukbin/internal/errors"
)

// NewConfigVetCmd creates the config vet command.
func NewConfigVetCmd(cfg *cmdtypes.GlobalConfig) *cobra.Command {
	return &cobra.Command{
		Use:   "vet",
		Short: "Validate the dukbin configuration file",
		Long: `Validate the dukbin configuration file against the internal schema.

The command validates the configuration file at ~/.dukbin/config.yaml by default.
Use --config flag to specify a different location.`,
		Args: cobra.NoArgs,
		RunE: func(c *cobra.Command, _ []string) error {
			return runVet(c, cfg)
		},
	}
}

func runVet(c *cobra.Command, cfg *cmdtypes.GlobalConfig) error {
	path, err := configFilePath(cfg)
	if err != nil {
		return err
	}

	if _, err := os.Stat(path); err != nil {
		return &cmdtypes.ExitError{
			Code: cmdtypes.ExitConfigError,
			Err:  oerrors.NewNotFoundError("config file not found", path, "Run 'dukbin config init' to create one"),
		}
	}

	validator, err := config.NewValidator()
	if err != nil {
		return fmt.Errorf("creating validator: %w", err)
	}

	if err := validator.ValidateFile(path); err != nil {
		var validationErrs config.ValidationErrors
		if errors.As(err, &validationErrs) {
			fmt.Fprintln(c.ErrOrStderr(), "Error: config validation failed")
			fmt.Fprintf(c.ErrOrStderr(), "  File: %s\n\n", path)
			for _, e := range validationErrs {
				fmt.Fprintf(c.ErrOrStderr(), "  %s: %s\n", e.Field, e.Message)
			}
			return &cmdtypes.ExitError{Code: cmdtypes.ExitConfigError, Err: err, Printed: true}
		}
		return fmt.Errorf("validating config: %w", err)
	}

	fmt.Fprintf(c.OutOrStdout(), "Config file is valid: %s\n", path)
	return nil
}
