package config

import (
	"os"

	"github.com/opmodel/dukbin/internal/output"
)

// ConfigSource indicates where a configuration value came from.
type ConfigSource string

const (
	// SourceFlag indicates value came from command-line flag.
	SourceFlag ConfigSource = "flag"
	// SourceEnv indicates value came from environment variable.
	SourceEnv ConfigSource = "env"
	// SourceConfig indicates value came from config file.
	SourceConfig ConfigSource = "config"
	// SourceDefault indicates value is the built-in default.
	SourceDefault ConfigSource = "default"
)

// Environment variables read by the resolver.
const (
	EnvConfig            = "DUKBIN_CONFIG"
	EnvEngineDir         = "DUKBIN_ENGINE_DIR"
	EnvWorkDir           = "DUKBIN_WORK_DIR"
	EnvTarget            = "DUKBIN_TARGET"
	EnvToolchainCommand  = "DUKBIN_TOOLCHAIN_COMMAND"
	EnvToolchainArtifact = "DUKBIN_TOOLCHAIN_ARTIFACT"
)

// ResolvedValue is a single configuration value with its provenance.
type ResolvedValue struct {
	// Key is the configuration key (e.g. "engineDir").
	Key string
	// Value is the resolved value.
	Value string
	// Source indicates where the value came from.
	Source ConfigSource
	// Shadowed contains values that were overridden by higher precedence.
	Shadowed map[ConfigSource]string
}

// resolveValue applies flag > env > config > default precedence.
func resolveValue(key, flagValue, envName, configValue, defaultValue string) ResolvedValue {
	result := ResolvedValue{Key: key, Shadowed: make(map[ConfigSource]string)}

	candidates := []struct {
		source ConfigSource
		value  string
	}{
		{SourceFlag, flagValue},
		{SourceEnv, os.Getenv(envName)},
		{SourceConfig, configValue},
		{SourceDefault, defaultValue},
	}

	for _, c := range candidates {
		if c.value == "" {
			continue
		}
		if result.Source == "" {
			result.Value = c.value
			result.Source = c.source
			continue
		}
		result.Shadowed[c.source] = c.value
	}

	return result
}

// ResolveConfigPath resolves the config file path using precedence:
// (1) --config flag, (2) DUKBIN_CONFIG env, (3) ~/.dukbin/config.yaml default.
func ResolveConfigPath(flagValue string) (ResolvedValue, error) {
	paths, err := DefaultPaths()
	if err != nil {
		return ResolvedValue{}, err
	}
	return resolveValue("config", flagValue, EnvConfig, "", paths.ConfigFile), nil
}

// ResolveAllOptions contains the inputs for ResolveAll.
type ResolveAllOptions struct {
	EngineDirFlag string
	WorkDirFlag   string
	TargetFlag    string

	// Config is the loaded config file (may be nil).
	Config *Config
}

// ResolvedConfig contains every resolved configuration value.
type ResolvedConfig struct {
	EngineDir         ResolvedValue
	WorkDir           ResolvedValue
	Target            ResolvedValue
	ToolchainCommand  ResolvedValue
	ToolchainArtifact ResolvedValue
	Exclude           []string
}

// Values returns the resolved values in a stable order for logging.
func (r *ResolvedConfig) Values() []ResolvedValue {
	return []ResolvedValue{r.EngineDir, r.WorkDir, r.Target, r.ToolchainCommand, r.ToolchainArtifact}
}

// ResolveAll resolves every configuration value. Paths are ~-expanded.
func ResolveAll(opts ResolveAllOptions) (*ResolvedConfig, error) {
	cfg := opts.Config
	if cfg == nil {
		cfg = &Config{}
	}

	paths, err := DefaultPaths()
	if err != nil {
		return nil, err
	}

	resolved := &ResolvedConfig{
		EngineDir:         resolveValue("engineDir", opts.EngineDirFlag, EnvEngineDir, cfg.EngineDir, paths.EngineDir),
		WorkDir:           resolveValue("workDir", opts.WorkDirFlag, EnvWorkDir, cfg.WorkDir, os.TempDir()),
		Target:            resolveValue("target", opts.TargetFlag, EnvTarget, cfg.Target, DefaultTarget),
		ToolchainCommand:  resolveValue("toolchain.command", "", EnvToolchainCommand, cfg.Toolchain.Command, DefaultToolchainCommand),
		ToolchainArtifact: resolveValue("toolchain.artifact", "", EnvToolchainArtifact, cfg.Toolchain.Artifact, DefaultArtifact),
		Exclude:           cfg.Exclude,
	}

	for _, v := range []*ResolvedValue{&resolved.EngineDir, &resolved.WorkDir} {
		expanded, err := ExpandPath(v.Value)
		if err != nil {
			return nil, err
		}
		v.Value = expanded
	}

	return resolved, nil
}

// LogResolvedValues logs configuration resolution at DEBUG level.
func LogResolvedValues(values []ResolvedValue) {
	for _, v := range values {
		output.Debug("config value resolved",
			"key", v.Key,
			"value", v.Value,
			"source", v.Source,
		)
		for source, shadowed := range v.Shadowed {
			output.Debug("  shadowed by higher precedence",
				"key", v.Key,
				"shadowed_source", source,
				"shadowed_value", shadowed,
			)
		}
	}
}
