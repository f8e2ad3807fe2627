package version

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGet(t *testing.T) {
	info := Get()

	require.NotEmpty(t, info.GoVersion, "GoVersion should be populated")
	assert.NotEmpty(t, info.ESBuildVersion)
	assert.NotEmpty(t, info.GojaVersion)
	assert.Equal(t, Version, info.Version)
}

func TestInfoString(t *testing.T) {
	info := Info{
		Version:        "v1.0.0",
		GitCommit:      "abc123",
		BuildDate:      "2026-01-29",
		GoVersion:      "go1.25",
		ESBuildVersion: "v0.25.9",
		GojaVersion:    "v0.0.0-20250630131328-58d95d85e994",
	}

	str := info.String()

	assert.Contains(t, str, "v1.0.0")
	assert.Contains(t, str, "abc123")
	assert.Contains(t, str, "2026-01-29")
	assert.Contains(t, str, "go1.25")
	assert.Contains(t, str, "v0.25.9")
	assert.Contains(t, str, "58d95d85e994")
}

func TestVersionOrUnknown(t *testing.T) {
	versions := map[string]string{ESBuildModule: "v0.25.9"}
	assert.Equal(t, "v0.25.9", versionOrUnknown(versions, ESBuildModule))
	assert.Equal(t, "unknown", versionOrUnknown(versions, GojaModule))
}
