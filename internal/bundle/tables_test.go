package bundle

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestModuleTable_Add(t *testing.T) {
	table := NewModuleTable()
	table.Add("lib/util.js", "U")
	table.Add("a.js", "A")

	assert.Equal(t, []string{"a", "a.js", "lib/util", "lib/util.js"}, table.Keys())
	assert.Equal(t, 4, table.Len())

	full, ok := table.Get("lib/util.js")
	assert.True(t, ok)
	alias, ok := table.Get("lib/util")
	assert.True(t, ok)
	assert.Equal(t, full, alias)
}

func TestModuleTable_Overwrite(t *testing.T) {
	table := NewModuleTable()
	table.Add("x", "directory-shadow")
	table.Add("x.js", "file")

	v, _ := table.Get("x")
	assert.Equal(t, "file", v)
	assert.Equal(t, 2, table.Len())
}

func TestIndexTable(t *testing.T) {
	table := NewIndexTable()
	table.Set("lib", "lib/index.js")
	table.Set("a", "a/main.js")

	assert.Equal(t, []string{"a", "lib"}, table.Keys())
	v, ok := table.Get("lib")
	assert.True(t, ok)
	assert.Equal(t, "lib/index.js", v)

	_, ok = table.Get("missing")
	assert.False(t, ok)
}
