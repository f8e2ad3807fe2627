package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveValue_FlagPrecedence(t *testing.T) {
	t.Setenv(EnvTarget, "es2017")

	result := resolveValue("target", "es2020", EnvTarget, "es2015", DefaultTarget)

	assert.Equal(t, "es2020", result.Value)
	assert.Equal(t, SourceFlag, result.Source)
	assert.Equal(t, "es2017", result.Shadowed[SourceEnv])
	assert.Equal(t, "es2015", result.Shadowed[SourceConfig])
	assert.Equal(t, DefaultTarget, result.Shadowed[SourceDefault])
}

func TestResolveValue_EnvPrecedence(t *testing.T) {
	t.Setenv(EnvTarget, "es2017")

	result := resolveValue("target", "", EnvTarget, "es2015", DefaultTarget)

	assert.Equal(t, "es2017", result.Value)
	assert.Equal(t, SourceEnv, result.Source)
	assert.NotContains(t, result.Shadowed, SourceFlag)
}

func TestResolveValue_ConfigFallback(t *testing.T) {
	t.Setenv(EnvTarget, "")

	result := resolveValue("target", "", EnvTarget, "es2015", DefaultTarget)

	assert.Equal(t, "es2015", result.Value)
	assert.Equal(t, SourceConfig, result.Source)
}

func TestResolveValue_Default(t *testing.T) {
	t.Setenv(EnvTarget, "")

	result := resolveValue("target", "", EnvTarget, "", DefaultTarget)

	assert.Equal(t, DefaultTarget, result.Value)
	assert.Equal(t, SourceDefault, result.Source)
	assert.Empty(t, result.Shadowed)
}

func TestResolveConfigPath(t *testing.T) {
	home := t.TempDir()
	t.Setenv("DUKBIN_HOME", home)
	t.Setenv(EnvConfig, "")

	result, err := ResolveConfigPath("")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, "config.yaml"), result.Value)
	assert.Equal(t, SourceDefault, result.Source)

	t.Setenv(EnvConfig, "/etc/dukbin.yaml")
	result, err = ResolveConfigPath("")
	require.NoError(t, err)
	assert.Equal(t, "/etc/dukbin.yaml", result.Value)
	assert.Equal(t, SourceEnv, result.Source)
}

func TestResolveAll(t *testing.T) {
	home := t.TempDir()
	t.Setenv("DUKBIN_HOME", home)
	for _, env := range []string{EnvEngineDir, EnvWorkDir, EnvTarget, EnvToolchainCommand, EnvToolchainArtifact} {
		t.Setenv(env, "")
	}

	t.Run("defaults", func(t *testing.T) {
		resolved, err := ResolveAll(ResolveAllOptions{})
		require.NoError(t, err)
		assert.Equal(t, filepath.Join(home, "engine"), resolved.EngineDir.Value)
		assert.Equal(t, os.TempDir(), resolved.WorkDir.Value)
		assert.Equal(t, DefaultTarget, resolved.Target.Value)
		assert.Equal(t, DefaultToolchainCommand, resolved.ToolchainCommand.Value)
		assert.Equal(t, DefaultArtifact, resolved.ToolchainArtifact.Value)
		assert.Len(t, resolved.Values(), 5)
	})

	t.Run("config and flags", func(t *testing.T) {
		resolved, err := ResolveAll(ResolveAllOptions{
			EngineDirFlag: "/flag/engine",
			Config: &Config{
				EngineDir: "/config/engine",
				WorkDir:   "/config/work",
				Exclude:   []string{"vendor/**"},
				Toolchain: ToolchainConfig{Command: "make"},
			},
		})
		require.NoError(t, err)
		assert.Equal(t, "/flag/engine", resolved.EngineDir.Value)
		assert.Equal(t, SourceFlag, resolved.EngineDir.Source)
		assert.Equal(t, "/config/work", resolved.WorkDir.Value)
		assert.Equal(t, "make", resolved.ToolchainCommand.Value)
		assert.Equal(t, []string{"vendor/**"}, resolved.Exclude)
	})
}
