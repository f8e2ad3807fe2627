package transform

import (
	"testing"

	"github.com/dop251/goja"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	oerrors "github.com/opmodel/dukbin/internal/errors"
)

func TestNewESBuild(t *testing.T) {
	for _, target := range []string{"es5", "ES2015", "es2020", "esnext"} {
		t.Run(target, func(t *testing.T) {
			_, err := NewESBuild(target)
			assert.NoError(t, err)
		})
	}

	_, err := NewESBuild("es3")
	require.Error(t, err)
	assert.ErrorIs(t, err, oerrors.ErrConfig)
}

func TestESBuild_Transform(t *testing.T) {
	tr, err := NewESBuild("es5")
	require.NoError(t, err)

	source := `
// a comment that should disappear
function double(value) {
    var multiplier = 2;
    return value * multiplier;
}
module.exports = { double: double };
`
	out, err := tr.Transform("util.js", []byte(source))
	require.NoError(t, err)

	assert.NotContains(t, out, "a comment")
	assert.NotContains(t, out, "multiplier")
	assert.NotContains(t, out, "\n")
	assert.Contains(t, out, "module.exports")
	assert.Less(t, len(out), len(source))
}

func TestESBuild_Deterministic(t *testing.T) {
	tr, err := NewESBuild("es5")
	require.NoError(t, err)

	source := []byte("var a = require('./a'); module.exports = function (x) { return a(x) + 1; };")
	first, err := tr.Transform("m.js", source)
	require.NoError(t, err)
	second, err := tr.Transform("m.js", source)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestESBuild_LowersSyntax(t *testing.T) {
	tr, err := NewESBuild("es5")
	require.NoError(t, err)

	out, err := tr.Transform("arrow.js", []byte("module.exports = function (xs) { return xs.map(x => x * 2); };"))
	require.NoError(t, err)
	assert.NotContains(t, out, "=>")
}

func TestESBuild_SyntaxError(t *testing.T) {
	tr, err := NewESBuild("es5")
	require.NoError(t, err)

	_, err = tr.Transform("lib/broken.js", []byte("function ( {"))
	require.Error(t, err)

	var terr *oerrors.TransformError
	require.ErrorAs(t, err, &terr)
	assert.Equal(t, "lib/broken.js", terr.FilePath)
	assert.ErrorIs(t, err, oerrors.ErrTransform)
	assert.Equal(t, oerrors.ExitTransformError, oerrors.ExitCodeFromError(err))
	assert.Contains(t, err.Error(), "1:")
}

func TestESBuild_LowersES2015(t *testing.T) {
	tr, err := NewESBuild("es5")
	require.NoError(t, err)

	source := `
const base = 10;
let offset = 1;
class Shape {
  constructor(w, h) { this.w = w; this.h = h; }
  area() { return this.w * this.h; }
}
class Square extends Shape {
  constructor(s) { super(s, s); }
  area() { return super.area() + offset; }
}
const { w, h: height = 0 } = new Square(3);
const [first, ...others] = [w, height, base];
module.exports = { area: new Square(2).area(), first, others };
`
	out, err := tr.Transform("shapes.js", []byte(source))
	require.NoError(t, err)
	for _, syntax := range []string{"const ", "let ", "class ", "=>", "..."} {
		assert.NotContains(t, out, syntax)
	}

	vm := goja.New()
	_, err = vm.RunString("var module = {exports: {}};\n" + out)
	require.NoError(t, err)
	exported, err := vm.RunString("JSON.stringify(module.exports)")
	require.NoError(t, err)
	assert.Equal(t, `{"area":5,"first":3,"others":[3,10]}`, exported.String())
}

func TestESBuild_NewerTargetKeepsES2015(t *testing.T) {
	tr, err := NewESBuild("es2015")
	require.NoError(t, err)

	out, err := tr.Transform("m.js", []byte("const xs = [1, 2];\nmodule.exports = class Box { constructor() { this.xs = [...xs]; } };"))
	require.NoError(t, err)
	assert.Contains(t, out, "class")
}

func TestESBuild_UnsupportedES5Syntax(t *testing.T) {
	tr, err := NewESBuild("es5")
	require.NoError(t, err)

	_, err = tr.Transform("lib/gen.js", []byte("module.exports = function* () { yield 1; };"))
	require.Error(t, err)

	var terr *oerrors.TransformError
	require.ErrorAs(t, err, &terr)
	assert.Equal(t, "lib/gen.js", terr.FilePath)
	assert.Equal(t, oerrors.ExitTransformError, oerrors.ExitCodeFromError(err))
	assert.Contains(t, err.Error(), "generator")
}
