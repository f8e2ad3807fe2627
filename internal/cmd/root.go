// Package cmd provides CLI command implementations.
package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	configcmd "github.com/opmodel/dukbin/internal/cmd/config"
	"github.com/opmodel/dukbin/internal/cmdtypes"
	"github.com/opmodel/dukbin/internal/config"
	"github.com/opmodel/dukbin/internal/output"
)

// rootFlags holds the persistent flags shared by every command.
type rootFlags struct {
	config     string
	verbose    bool
	timestamps bool
	engineDir  string
	workDir    string
	target     string
}

// NewRootCmd creates the root command for the dukbin CLI.
func NewRootCmd() *cobra.Command {
	var flags rootFlags
	cfg := &cmdtypes.GlobalConfig{}

	c := &cobra.Command{
		Use:   "dukbin <input> <output>",
		Short: "Package a JavaScript program into a native executable",
		Long: `dukbin bundles a JavaScript entry script, every script beside it and any
C/C++ fragments in its directory tree into a single C++ program embedding the
Duktape engine, then compiles that program with node-gyp.

Arguments:
  input     Path to the entry script; its directory is the source root
  output    Path of the executable to produce

Examples:
  # Build an executable
  dukbin ./app/main.js ./bin/app

  # Use a different engine directory
  dukbin ./app/main.js ./bin/app --engine-dir ./vendor/duktape

  # Print the generated program instead of compiling
  dukbin emit ./app/main.js -o app.cpp`,
		Args:          cobra.ArbitraryArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(c *cobra.Command, _ []string) error {
			return initializeGlobals(c, &flags, cfg)
		},
		RunE: func(c *cobra.Command, args []string) error {
			if len(args) != 2 {
				return usageExit(fmt.Sprintf("expected 2 arguments, got %d", len(args)))
			}
			return runBuild(c.Context(), args[0], args[1], cfg)
		},
	}

	c.PersistentFlags().StringVar(&flags.config, "config", "", "Path to config file (env: DUKBIN_CONFIG)")
	c.PersistentFlags().BoolVarP(&flags.verbose, "verbose", "v", false, "Enable verbose output")
	c.PersistentFlags().BoolVar(&flags.timestamps, "timestamps", true, "Show timestamps in log output")
	c.PersistentFlags().StringVar(&flags.engineDir, "engine-dir", "", "Directory holding the Duktape sources (env: DUKBIN_ENGINE_DIR)")
	c.PersistentFlags().StringVar(&flags.workDir, "work-dir", "", "Parent directory of build workspaces (env: DUKBIN_WORK_DIR)")
	c.PersistentFlags().StringVar(&flags.target, "target", "", "Script language target (env: DUKBIN_TARGET)")

	c.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return usageExit(err.Error())
	})

	c.AddCommand(
		NewBuildCmd(cfg),
		NewEmitCmd(cfg),
		NewInspectCmd(cfg),
		NewRunCmd(cfg),
		NewVersionCmd(cfg),
		configcmd.NewConfigCmd(cfg),
	)

	return c
}

// initializeGlobals loads the config file, resolves every value and sets up
// logging. The resolved values are stored into cfg.
func initializeGlobals(c *cobra.Command, flags *rootFlags, cfg *cmdtypes.GlobalConfig) error {
	configPath, err := config.ResolveConfigPath(flags.config)
	if err != nil {
		return &cmdtypes.ExitError{Code: cmdtypes.ExitConfigError, Err: fmt.Errorf("resolving config path: %w", err)}
	}

	loader := config.NewLoader()
	loaded, err := loader.Load(configPath.Value)
	if err != nil {
		return &cmdtypes.ExitError{Code: cmdtypes.ExitConfigError, Err: err}
	}

	resolved, err := config.ResolveAll(config.ResolveAllOptions{
		EngineDirFlag: flags.engineDir,
		WorkDirFlag:   flags.workDir,
		TargetFlag:    flags.target,
		Config:        loaded,
	})
	if err != nil {
		return &cmdtypes.ExitError{Code: cmdtypes.ExitConfigError, Err: err}
	}

	cfg.Config = loaded
	cfg.Resolved = resolved
	cfg.ConfigPath = configPath.Value
	cfg.Verbose = flags.verbose

	// Timestamps: flag (if explicitly set) > config > default.
	logCfg := output.LogConfig{Verbose: flags.verbose}
	if c.Flags().Changed("timestamps") {
		logCfg.Timestamps = output.BoolPtr(flags.timestamps)
	} else if loaded.Log.Timestamps != nil {
		logCfg.Timestamps = loaded.Log.Timestamps
	}
	output.SetupLogging(logCfg)

	output.Debug("initializing CLI",
		"config", loader.ConfigFileUsed(),
		"source", configPath.Source,
	)
	config.LogResolvedValues(resolved.Values())
	return nil
}
