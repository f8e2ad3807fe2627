package config

import (
	"bytes"
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/opmodel/dukbin/internal/cmdtypes"
	"github.com/opmodel/dukbin/internal/config"
	"github.com/opmodel/dukbin/internal/testutil"
)

func globalConfig(t *testing.T, path string) *cmdtypes.GlobalConfig {
	t.Helper()
	t.Setenv("DUKBIN_HOME", t.TempDir())
	t.Setenv(config.EnvTarget, "")
	resolved, err := config.ResolveAll(config.ResolveAllOptions{Config: &config.Config{Exclude: []string{"vendor/**"}}})
	require.NoError(t, err)
	return &cmdtypes.GlobalConfig{ConfigPath: path, Resolved: resolved}
}

func run(t *testing.T, cfg *cmdtypes.GlobalConfig, args ...string) (string, string, error) {
	t.Helper()
	c := NewConfigCmd(cfg)
	var stdout, stderr bytes.Buffer
	c.SetOut(&stdout)
	c.SetErr(&stderr)
	c.SetArgs(args)
	err := c.Execute()
	return stdout.String(), stderr.String(), err
}

func TestNewConfigCmd(t *testing.T) {
	c := NewConfigCmd(&cmdtypes.GlobalConfig{})

	names := make([]string, 0)
	for _, sub := range c.Commands() {
		names = append(names, sub.Name())
	}
	assert.ElementsMatch(t, []string{"init", "vet", "show"}, names)
}

func TestConfigInit_CreatesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")
	cfg := globalConfig(t, path)

	stdout, _, err := run(t, cfg, "init")
	require.NoError(t, err)
	assert.Contains(t, stdout, path)

	content := testutil.ReadFile(t, path)
	assert.Contains(t, content, "# dukbin configuration")

	var written config.Config
	require.NoError(t, yaml.Unmarshal([]byte(content), &written))
	assert.Equal(t, config.DefaultTarget, written.Target)
	assert.Equal(t, config.DefaultToolchainCommand, written.Toolchain.Command)
}

func TestConfigInit_ExistingConfig(t *testing.T) {
	dir := t.TempDir()
	path := testutil.WriteFile(t, dir, "config.yaml", "target: es2015\n")
	cfg := globalConfig(t, path)

	_, _, err := run(t, cfg, "init")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already exists")
	assert.Equal(t, "target: es2015\n", testutil.ReadFile(t, path))

	_, _, err = run(t, cfg, "init", "--force")
	require.NoError(t, err)
	assert.Contains(t, testutil.ReadFile(t, path), "es5")
}

func TestConfigInit_ThenVet(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	cfg := globalConfig(t, path)

	_, _, err := run(t, cfg, "init")
	require.NoError(t, err)

	stdout, _, err := run(t, cfg, "vet")
	require.NoError(t, err)
	assert.Contains(t, stdout, "Config file is valid")
}

func TestConfigVet_NotFound(t *testing.T) {
	cfg := globalConfig(t, filepath.Join(t.TempDir(), "missing.yaml"))

	_, _, err := run(t, cfg, "vet")
	require.Error(t, err)

	var exitErr *cmdtypes.ExitError
	require.True(t, errors.As(err, &exitErr))
	assert.Equal(t, cmdtypes.ExitConfigError, exitErr.Code)
}

func TestConfigVet_Invalid(t *testing.T) {
	path := testutil.WriteFile(t, t.TempDir(), "config.yaml", "target: es5\nunknownKey: true\n")
	cfg := globalConfig(t, path)

	_, stderr, err := run(t, cfg, "vet")
	require.Error(t, err)
	assert.Contains(t, stderr, "config validation failed")

	var exitErr *cmdtypes.ExitError
	require.True(t, errors.As(err, &exitErr))
	assert.Equal(t, cmdtypes.ExitConfigError, exitErr.Code)
	assert.True(t, exitErr.Printed)
}

func TestConfigShow(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	cfg := globalConfig(t, path)

	stdout, _, err := run(t, cfg, "show")
	require.NoError(t, err)
	assert.Contains(t, stdout, "engineDir")
	assert.Contains(t, stdout, "es5 (default)")
	assert.Contains(t, stdout, "vendor/**")
}

func TestConfigShow_NotLoaded(t *testing.T) {
	_, _, err := run(t, &cmdtypes.GlobalConfig{}, "show")
	assert.Error(t, err)
}
