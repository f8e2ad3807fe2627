package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLoader(t *testing.T) {
	loader := NewLoader()
	assert.NotNil(t, loader)
	assert.NotNil(t, loader.v)
}

func TestLoaderLoad(t *testing.T) {
	t.Run("loads config from file", func(t *testing.T) {
		tmpDir := t.TempDir()
		configFile := filepath.Join(tmpDir, "config.yaml")

		content := `
engineDir: /opt/duktape
workDir: /var/tmp
target: es2015
exclude:
  - "test/**"
toolchain:
  command: make -j4
  artifact: out/app
log:
  timestamps: false
`
		require.NoError(t, os.WriteFile(configFile, []byte(content), 0o644))

		cfg, err := NewLoader().Load(configFile)

		require.NoError(t, err)
		assert.Equal(t, "/opt/duktape", cfg.EngineDir)
		assert.Equal(t, "/var/tmp", cfg.WorkDir)
		assert.Equal(t, "es2015", cfg.Target)
		assert.Equal(t, []string{"test/**"}, cfg.Exclude)
		assert.Equal(t, "make -j4", cfg.Toolchain.Command)
		assert.Equal(t, "out/app", cfg.Toolchain.Artifact)
		require.NotNil(t, cfg.Log.Timestamps)
		assert.False(t, *cfg.Log.Timestamps)
	})

	t.Run("returns empty config for missing file", func(t *testing.T) {
		configFile := filepath.Join(t.TempDir(), "nonexistent.yaml")

		cfg, err := NewLoader().Load(configFile)

		require.NoError(t, err)
		assert.Empty(t, cfg.EngineDir)
		assert.Empty(t, cfg.Toolchain.Command)
	})

	t.Run("rejects malformed yaml", func(t *testing.T) {
		configFile := filepath.Join(t.TempDir(), "bad.yaml")
		require.NoError(t, os.WriteFile(configFile, []byte("target: [unterminated"), 0o644))

		_, err := NewLoader().Load(configFile)
		assert.Error(t, err)
	})
}

func TestExpandPath(t *testing.T) {
	home, err := os.UserHomeDir()
	require.NoError(t, err)

	tests := []struct {
		in   string
		want string
	}{
		{"", ""},
		{"/abs/path", "/abs/path"},
		{"~", home},
		{"~/engine", filepath.Join(home, "engine")},
		{"~other/x", "~other/x"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ExpandPath(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDefaultPaths_HomeOverride(t *testing.T) {
	home := t.TempDir()
	t.Setenv("DUKBIN_HOME", home)

	paths, err := DefaultPaths()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, "config.yaml"), paths.ConfigFile)
	assert.Equal(t, filepath.Join(home, "engine"), paths.EngineDir)
	assert.Equal(t, home, paths.HomeDir)
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	assert.Equal(t, DefaultTarget, cfg.Target)
	assert.Equal(t, DefaultToolchainCommand, cfg.Toolchain.Command)
	assert.Equal(t, DefaultArtifact, cfg.Toolchain.Artifact)
}
