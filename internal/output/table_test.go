package output

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTableString(t *testing.T) {
	out := NewTable("KEY", "MODULE").
		Row("lib", "lib/index.js").
		Row("util", "util.js").
		String()

	assert.Contains(t, out, "KEY")
	assert.Contains(t, out, "lib/index.js")
	assert.Contains(t, out, "util.js")
}

func TestRenderKeyValueTable(t *testing.T) {
	out := RenderKeyValueTable("DIRECTORY", "RESOLVES TO", [][2]string{{"lib", "lib/index.js"}})
	assert.Contains(t, out, "DIRECTORY")
	assert.Contains(t, out, "lib/index.js")
}
