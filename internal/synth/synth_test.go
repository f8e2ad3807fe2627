package synth

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/opmodel/dukbin/internal/bundle"
	"github.com/opmodel/dukbin/internal/classify"
	"github.com/opmodel/dukbin/internal/engine"
	oerrors "github.com/opmodel/dukbin/internal/errors"
)

const testTemplate = `/*@@DECLARATIONS@@*/
int main()
{
	/*@@MODULES@@*/
	/*@@INDEXES@@*/
	/*@@REGISTRATIONS@@*/
	run("@@ENTRY@@");
}
`

func newBundle() *bundle.Bundle {
	b := &bundle.Bundle{
		Entry:       `var u=require("./util");print(u.double(21))`,
		ModuleTable: bundle.NewModuleTable(),
		Indexes:     bundle.NewIndexTable(),
	}
	b.ModuleTable.Add("util.js", "module.exports={double:function(n){return n*2}}")
	b.ModuleTable.Add("lib/index.js", "module.exports=1")
	b.Indexes.Set("lib", "lib/index.js")
	return b
}

func TestRender(t *testing.T) {
	out, err := Render(testTemplate, newBundle())
	require.NoError(t, err)

	want := `
int main()
{
	modules["lib/index"] = "module.exports=1";
	modules["lib/index.js"] = "module.exports=1";
	modules["util"] = "module.exports={double:function(n){return n*2}}";
	modules["util.js"] = "module.exports={double:function(n){return n*2}}";
	indexes["lib"] = "lib/index.js";

	run("var u=require(\"./util\");print(u.double(21))");
}
`
	assert.Equal(t, want, out)
}

func TestRender_NativeFunctions(t *testing.T) {
	b := newBundle()
	b.Natives.FunctionNames = []string{"readFile", "writeFile"}

	out, err := Render(testTemplate, b)
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(out,
		"duk_ret_t readFile(duk_context *ctx);\nduk_ret_t writeFile(duk_context *ctx);\n"))
	assert.Equal(t, 2, strings.Count(out, "duk_push_c_function("))
	assert.Equal(t, 2, strings.Count(out, "duk_put_global_string("))
	assert.Contains(t, out, "\tduk_push_c_function(ctx, readFile, DUK_VARARGS);\n"+
		"\tduk_put_global_string(ctx, \"readFile\");\n"+
		"\tduk_push_c_function(ctx, writeFile, DUK_VARARGS);\n"+
		"\tduk_put_global_string(ctx, \"writeFile\");\n")
	assert.Less(t, strings.Index(out, "readFile(duk_context"), strings.Index(out, "writeFile(duk_context"))
}

// Registered functions are declared with C++ linkage, so only sources the
// toolchain compiles as C++ may define them.
func TestRender_NativeFunctionLinkage(t *testing.T) {
	b := newBundle()
	b.Natives.FunctionNames = []string{"readFile"}

	out, err := Render(engine.Template(), b)
	require.NoError(t, err)

	assert.True(t, strings.HasSuffix(engine.ProgramName, ".cpp"))
	assert.Contains(t, out, "\nduk_ret_t readFile(duk_context *ctx);\n")
	assert.NotContains(t, out, `extern "C"`)

	for _, name := range []string{"fs.cpp", "fs.cc", "fs.cxx"} {
		assert.Equal(t, classify.KindNativeSource, classify.Classify(name, false), name)
	}
	assert.Equal(t, classify.KindSkip, classify.Classify("fs.c", false))
}

func TestRender_EmptyMarkerLeavesNoIndent(t *testing.T) {
	out, err := Render(testTemplate, newBundle())
	require.NoError(t, err)

	assert.NotContains(t, out, "\t\n")
	assert.Contains(t, out, "indexes[\"lib\"] = \"lib/index.js\";\n\n\trun(")
}

func TestRender_Idempotent(t *testing.T) {
	first, err := Render(engine.Template(), newBundle())
	require.NoError(t, err)
	second, err := Render(engine.Template(), newBundle())
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestRender_EmbeddedTemplate(t *testing.T) {
	out, err := Render(engine.Template(), newBundle())
	require.NoError(t, err)

	for _, marker := range engine.Markers() {
		assert.NotContains(t, out, marker)
	}
	assert.Contains(t, out, `modules["util"] = `)
	assert.Contains(t, out, `duk_peval_string(ctx, "var u=require(\"./util\");print(u.double(21))")`)
}

func TestRender_ContentIsNotRescanned(t *testing.T) {
	b := newBundle()
	b.Entry = "/*@@MODULES@@*/"

	out, err := Render(testTemplate, b)
	require.NoError(t, err)
	assert.Contains(t, out, `run("/*@@MODULES@@*/");`)
	assert.Equal(t, 1, strings.Count(out, "modules[\"util\"]"))
}

func TestRender_MarkerViolations(t *testing.T) {
	tests := []struct {
		name string
		tmpl string
	}{
		{"missing marker", strings.Replace(testTemplate, "/*@@INDEXES@@*/", "", 1)},
		{"duplicated marker", testTemplate + "/*@@MODULES@@*/"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Render(tt.tmpl, newBundle())
			require.Error(t, err)
			assert.ErrorIs(t, err, oerrors.ErrTemplate)
			assert.Equal(t, oerrors.ExitGeneralError, oerrors.ExitCodeFromError(err))
		})
	}
}
