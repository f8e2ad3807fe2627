package lower

import (
	"testing"

	"github.com/dop251/goja"
	esbuildapi "github.com/evanw/esbuild/pkg/api"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// evaluate lowers source, checks that esbuild accepts the result as ES5
// and returns the completion value of running it.
func evaluate(t *testing.T, source string) string {
	t.Helper()
	out, err := ES5("test.js", []byte(source))
	require.NoError(t, err)

	check := esbuildapi.Transform(out, esbuildapi.TransformOptions{
		Loader: esbuildapi.LoaderJS,
		Target: esbuildapi.ES5,
	})
	require.Empty(t, check.Errors, "lowered output is not ES5:\n%s", out)

	v, err := goja.New().RunString(out)
	require.NoError(t, err, "running lowered output:\n%s", out)
	return v.String()
}

func TestES5(t *testing.T) {
	tests := []struct {
		name   string
		source string
		want   string
	}{
		{
			name: "block scoping",
			source: `
const x = 2;
let y = 3;
{ let x = 10; y += x; }
String(x * y)`,
			want: "26",
		},
		{
			name: "shadowed block binding",
			source: `
var r = [];
{ let v = "outer"; (function (v) { r.push(v); })("param"); r.push(v); }
r.join(",")`,
			want: "param,outer",
		},
		{
			name: "classes",
			source: `
class Animal {
  constructor(name) { this.name = name; }
  speak() { return this.name + " makes a sound"; }
  get upper() { return this.name.toUpperCase(); }
  static create(n) { return new this(n); }
}
class Dog extends Animal {
  constructor(name) { super(name); this.kind = "dog"; }
  speak() { return super.speak() + " (woof)"; }
}
const d = Dog.create("rex");
[d.speak(), d.upper, d instanceof Animal, d.kind].join("|")`,
			want: "rex makes a sound (woof)|REX|true|dog",
		},
		{
			name: "default constructor and accessors",
			source: `
class Base {
  constructor(v) { this.v = v; }
  get double() { return this.v * 2; }
  set double(d) { this.v = d / 2; }
}
class Child extends Base {}
const c = new Child(4);
c.double = 10;
[c.v, c.double, Object.keys(Child.prototype).length, c instanceof Base].join(",")`,
			want: "5,10,0,true",
		},
		{
			name: "destructuring",
			source: `
const {a, b: {c}, d = 4} = {a: 1, b: {c: 3}};
const [x, , y = 9, ...rest] = [10, 20, undefined, 40, 50];
let p = 0, q = 1;
[p, q] = [q, p];
function f({n = 2} = {}, ...more) { return n + more.length; }
JSON.stringify([a, c, d, x, y, rest, p, q, f(), f({n: 5}, 1, 2)])`,
			want: "[1,3,4,10,9,[40,50],1,0,2,7]",
		},
		{
			name: "closures capture each iteration",
			source: `
var fns = [];
for (let i = 0; i < 3; i++) { fns.push(() => i); }
var out = [];
for (const v of ["a", "b"]) { out.push(() => v); }
JSON.stringify(fns.map(f => f()).concat(out.map(f => f())))`,
			want: `[0,1,2,"a","b"]`,
		},
		{
			name: "continue in a per-iteration body",
			source: `
var seen = [];
for (const ch of "abc") {
  if (ch === "b") continue;
  seen.push(() => ch);
}
seen.map(function (f) { return f(); }).join("")`,
			want: "ac",
		},
		{
			name: "spread templates and object literals",
			source: `
const parts = [1, 2];
const arr = [0, ...parts, 3];
function sum(a, b, c, d) { return a + b + c + d; }
const total = sum(...arr);
const name = "x";
const obj = { name, [name + "1"]: 5, greet() { return ` + "`hi ${this.name}!`" + `; } };
const m = Math.max.apply(null, [1, ...parts]);
JSON.stringify([arr, total, obj.x1, obj.greet(), m])`,
			want: `[[0,1,2,3],6,5,"hi x!",2]`,
		},
		{
			name: "arrow this",
			source: `
function Counter() {
  this.n = 0;
  [1, 2, 3].forEach(x => { this.n += x; });
}
String(new Counter().n)`,
			want: "6",
		},
		{
			name:   "tagged template",
			source: "function tag(s, ...v) { return s.raw.join(\"|\") + v.join(\",\"); }\ntag`a${1}b${2}c`",
			want:   "a|b|c1,2",
		},
		{
			name: "switch scoped bindings",
			source: `
function pick(k) {
  switch (k) {
  case 1: { const label = "one"; return label; }
  default:
    let other = "many";
    return other;
  }
}
pick(1) + " " + pick(2)`,
			want: "one many",
		},
		{
			name: "catch destructuring",
			source: `
var msg;
try { throw {code: 7, text: "bad"}; } catch ({code, text}) { msg = text + code; }
msg`,
			want: "bad7",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, evaluate(t, tt.source))
		})
	}
}

func TestES5_KeepsES5Source(t *testing.T) {
	source := `var o = { get v() { return 1; }, "a-b": 2 };
for (var k in o) { if (k === "a-b") break; }
(function () { "use strict"; return typeof this; })() + o.v + o["a-b"]`
	assert.Equal(t, "undefined12", evaluate(t, source))
}

func TestES5_Unsupported(t *testing.T) {
	tests := []struct {
		name   string
		source string
		msg    string
	}{
		{"generator", "var a = 1;\nfunction* g() { yield 1; }", "generator"},
		{"async", "async function f() {}", "async"},
		{"new.target", "function F() { return new.target; }", "new.target"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ES5("m.js", []byte(tt.source))
			require.Error(t, err)

			var lerr *Error
			require.ErrorAs(t, err, &lerr)
			assert.Contains(t, lerr.Msg, tt.msg)
			assert.Positive(t, lerr.Line)
		})
	}
}

func TestES5_SyntaxError(t *testing.T) {
	_, err := ES5("m.js", []byte("let = ;"))
	require.Error(t, err)

	var lerr *Error
	require.ErrorAs(t, err, &lerr)
	assert.Equal(t, 1, lerr.Line)
}

func TestES5_Hashbang(t *testing.T) {
	out, err := ES5("cli.js", []byte("#!/usr/bin/env node\nconst a = 1;\n"))
	require.NoError(t, err)
	assert.Equal(t, "#!/usr/bin/env node\nvar a = 1;\n", out)
}

func TestES5_Deterministic(t *testing.T) {
	source := []byte("class A { m() { return [...arguments]; } }\nfor (let i of [1]) { setTimeout(() => i); }")
	first, err := ES5("m.js", source)
	require.NoError(t, err)
	second, err := ES5("m.js", source)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}
