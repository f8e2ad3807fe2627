package classify

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	oerrors "github.com/opmodel/dukbin/internal/errors"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name  string
		isDir bool
		want  Kind
	}{
		{"index.js", false, KindScript},
		{"native.c", false, KindSkip},
		{"native.cc", false, KindNativeSource},
		{"native.cpp", false, KindNativeSource},
		{"native.cxx", false, KindNativeSource},
		{"native.h", false, KindNativeHeader},
		{"native.hh", false, KindNativeHeader},
		{"native.hpp", false, KindNativeHeader},
		{"cfunctions", false, KindFunctionRegistry},
		{"cfunctions.txt", false, KindSkip},
		{"README.md", false, KindSkip},
		{"data.json", false, KindSkip},
		{"lib", true, KindDirectory},
		{"lib.js", true, KindDirectory},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Classify(tt.name, tt.isDir))
		})
	}
}

func TestKindString(t *testing.T) {
	assert.Equal(t, "script", KindScript.String())
	assert.Equal(t, "function-registry", KindFunctionRegistry.String())
	assert.Equal(t, "unknown", Kind(99).String())
}

func TestCheckReserved(t *testing.T) {
	t.Run("scripts are never reserved", func(t *testing.T) {
		assert.NoError(t, CheckReserved(KindScript, "duk_helper.js"))
	})

	t.Run("prefixed source", func(t *testing.T) {
		err := CheckReserved(KindNativeSource, "lib/duk_util.cpp")
		require.Error(t, err)

		var conflict *oerrors.NamingConflictError
		require.ErrorAs(t, err, &conflict)
		assert.Equal(t, "duk_util.cpp", conflict.FileName)
		assert.Equal(t, "lib/duk_util.cpp", conflict.Path)
		assert.False(t, conflict.Header)
		assert.ErrorIs(t, err, oerrors.ErrNamingConflict)
	})

	t.Run("exact header name", func(t *testing.T) {
		err := CheckReserved(KindNativeHeader, "duktape.h")
		var conflict *oerrors.NamingConflictError
		require.ErrorAs(t, err, &conflict)
		assert.True(t, conflict.Header)
		assert.Contains(t, conflict.Reserved, "duktape.h")
	})

	t.Run("exact source name", func(t *testing.T) {
		assert.Error(t, CheckReserved(KindNativeSource, "duktape.cpp"))
	})

	t.Run("ordinary names", func(t *testing.T) {
		assert.NoError(t, CheckReserved(KindNativeSource, "fs.cpp"))
		assert.NoError(t, CheckReserved(KindNativeHeader, "fs.h"))
	})
}
