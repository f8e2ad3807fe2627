package engine

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	oerrors "github.com/opmodel/dukbin/internal/errors"
)

func TestTemplate_MarkersAppearOnce(t *testing.T) {
	tmpl := Template()
	require.NotEmpty(t, tmpl)

	for _, marker := range Markers() {
		assert.Equal(t, 1, strings.Count(tmpl, marker), "marker %s", marker)
	}
}

func TestReservedNames(t *testing.T) {
	tests := []struct {
		name   string
		header bool
		want   bool
	}{
		{"duktape.c", false, true},
		{"duktape.cpp", false, true},
		{"duk_build.cpp", false, true},
		{"duk_anything.c", false, true},
		{"duktape.h", true, true},
		{"duk_config.h", true, true},
		{"duk_x.hpp", true, true},
		{"native.cpp", false, false},
		{"native.h", true, false},
		{"Duk_upper.c", false, false},
		{"duktape.h", false, false},
		{"duktape.cpp", true, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsReserved(tt.name, tt.header))
		})
	}
}

func TestFilesAreCopies(t *testing.T) {
	files := Files()
	files[0] = "mutated"
	assert.Equal(t, "duktape.c", CoreSources()[0])
	assert.Len(t, Files(), 7)
}

func TestCheckDir(t *testing.T) {
	t.Run("complete", func(t *testing.T) {
		dir := t.TempDir()
		for _, name := range Files() {
			require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte("/* */"), 0o644))
		}
		assert.NoError(t, CheckDir(dir))
	})

	t.Run("missing directory", func(t *testing.T) {
		err := CheckDir(filepath.Join(t.TempDir(), "nope"))
		require.Error(t, err)
		assert.ErrorIs(t, err, oerrors.ErrConfig)
	})

	t.Run("incomplete", func(t *testing.T) {
		dir := t.TempDir()
		require.NoError(t, os.WriteFile(filepath.Join(dir, "duktape.c"), nil, 0o644))

		err := CheckDir(dir)
		require.Error(t, err)
		assert.ErrorIs(t, err, oerrors.ErrConfig)
		assert.Contains(t, err.Error(), "duk_config.h")
		assert.NotContains(t, err.Error(), "missing: duktape.c")
	})
}
