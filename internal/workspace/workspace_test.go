package workspace

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/opmodel/dukbin/internal/testutil"
)

func TestNew_UniquePerCall(t *testing.T) {
	parent := t.TempDir()

	a, err := New(parent)
	require.NoError(t, err)
	defer a.Close()
	b, err := New(parent)
	require.NoError(t, err)
	defer b.Close()

	assert.NotEqual(t, a.Dir(), b.Dir())
	assert.Equal(t, parent, filepath.Dir(a.Dir()))
	assert.True(t, strings.HasPrefix(filepath.Base(a.Dir()), "dukbin-"))
	assert.DirExists(t, a.Dir())
}

func TestNew_MissingParent(t *testing.T) {
	_, err := New(filepath.Join(t.TempDir(), "does", "not", "exist"))
	assert.Error(t, err)
}

func TestWorkspace_WriteFile(t *testing.T) {
	ws, err := New(t.TempDir())
	require.NoError(t, err)
	defer ws.Close()

	require.NoError(t, ws.WriteFile("src/deep/a.txt", []byte("content")))

	assert.True(t, ws.Exists("src/deep/a.txt"))
	assert.False(t, ws.Exists("src/deep/b.txt"))
	assert.Equal(t, "content", testutil.ReadFile(t, ws.Path("src/deep/a.txt")))
}

func TestWorkspace_Close(t *testing.T) {
	ws, err := New(t.TempDir())
	require.NoError(t, err)
	require.NoError(t, ws.WriteFile("a/b/c.txt", []byte("x")))

	require.NoError(t, ws.Close())
	assert.NoDirExists(t, ws.Dir())
	assert.NoError(t, ws.Close())
}

func TestCopyFile(t *testing.T) {
	src := testutil.WriteFile(t, t.TempDir(), "a.txt", "hello")
	dst := filepath.Join(t.TempDir(), "x", "y", "b.txt")

	require.NoError(t, CopyFile(src, dst, 0o755))
	assert.Equal(t, "hello", testutil.ReadFile(t, dst))

	info, err := os.Stat(dst)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o755), info.Mode().Perm())
}
