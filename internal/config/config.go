// Package config provides configuration loading and management.
package config

// ToolchainConfig contains settings for the external native toolchain.
type ToolchainConfig struct {
	// Command is the toolchain command line, run inside the build workspace.
	// Env: DUKBIN_TOOLCHAIN_COMMAND, Default: "npx node-gyp rebuild"
	Command string `mapstructure:"command" yaml:"command,omitempty" json:"command,omitempty"`

	// Artifact is the path of the produced binary relative to the workspace.
	// Env: DUKBIN_TOOLCHAIN_ARTIFACT, Default: "build/Release/build"
	Artifact string `mapstructure:"artifact" yaml:"artifact,omitempty" json:"artifact,omitempty"`
}

// LogConfig contains logging-related settings.
type LogConfig struct {
	// Timestamps controls whether timestamps are shown in log output.
	// Default: true. Override with --timestamps flag.
	Timestamps *bool `mapstructure:"timestamps" yaml:"timestamps,omitempty" json:"timestamps,omitempty"`
}

// Config represents the dukbin configuration file (~/.dukbin/config.yaml).
type Config struct {
	// EngineDir holds the Duktape engine sources and headers.
	// Env: DUKBIN_ENGINE_DIR, Default: ~/.dukbin/engine
	EngineDir string `mapstructure:"engineDir" yaml:"engineDir,omitempty" json:"engineDir,omitempty"`

	// WorkDir is the parent directory for build workspaces.
	// Env: DUKBIN_WORK_DIR, Default: the system temp directory
	WorkDir string `mapstructure:"workDir" yaml:"workDir,omitempty" json:"workDir,omitempty"`

	// Target is the script language level modules are lowered to.
	// Env: DUKBIN_TARGET, Default: "es5"
	Target string `mapstructure:"target" yaml:"target,omitempty" json:"target,omitempty"`

	// Exclude lists glob patterns, relative to the source root, that the
	// classifier skips.
	Exclude []string `mapstructure:"exclude" yaml:"exclude,omitempty" json:"exclude,omitempty"`

	// Toolchain contains native toolchain settings.
	Toolchain ToolchainConfig `mapstructure:"toolchain" yaml:"toolchain,omitempty" json:"toolchain,omitempty"`

	// Log contains logging-related settings.
	Log LogConfig `mapstructure:"log" yaml:"log,omitempty" json:"log,omitempty"`
}

// Defaults for configuration values.
const (
	DefaultTarget           = "es5"
	DefaultToolchainCommand = "npx node-gyp rebuild"
	DefaultArtifact         = "build/Release/build"
)

// DefaultConfig returns a Config with all default values populated.
// Used by `dukbin config init` to generate the initial config file.
func DefaultConfig() *Config {
	return &Config{
		EngineDir: "~/.dukbin/engine",
		Target:    DefaultTarget,
		Toolchain: ToolchainConfig{
			Command:  DefaultToolchainCommand,
			Artifact: DefaultArtifact,
		},
	}
}
