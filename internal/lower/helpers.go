package lower

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"unicode/utf16"

	"github.com/dop251/goja/ast"
	"github.com/dop251/goja/unistring"
)

type helper struct {
	name   string
	source string
}

// helperOrder lists the runtime helpers in emission order. A helper may only
// depend on helpers listed before it.
var helperOrder = []helper{
	{"__toArray", `var __toArray = function (x) {
if (x != null && typeof x.length === "number") return x;
if (x != null && typeof Symbol === "function" && typeof x[Symbol.iterator] === "function") {
for (var it = x[Symbol.iterator](), out = [], step; !(step = it.next()).done;) out.push(step.value);
return out;
}
throw new TypeError(x + " is not iterable");
};`},
	{"__spread", `var __spread = function () {
for (var out = [], i = 0; i < arguments.length; i++) for (var a = __toArray(arguments[i]), j = 0; j < a.length; j++) out.push(a[j]);
return out;
};`},
	{"__extends", `var __extends = function (d, b) {
if (typeof b !== "function" && b !== null) throw new TypeError("Class extends value " + String(b) + " is not a constructor or null");
if (b !== null) {
if (Object.setPrototypeOf) Object.setPrototypeOf(d, b);
else for (var p in b) if (Object.prototype.hasOwnProperty.call(b, p)) d[p] = b[p];
}
d.prototype = Object.create(b === null ? null : b.prototype, { constructor: { value: d, writable: true, configurable: true } });
};`},
	{"__defineProps", `var __defineProps = function (target, props) {
for (var i = 0; i < props.length; i++) {
var d = props[i];
d.enumerable = false;
d.configurable = true;
if ("value" in d) d.writable = true;
Object.defineProperty(target, d.key, d);
}
};`},
	{"__templateObject", `var __templateObject = function (cooked, raw) {
return Object.defineProperty(cooked, "raw", { value: raw });
};`},
}

var helperDeps = map[string][]string{
	"__spread": {"__toArray"},
}

func (p *printer) helper(name string) string {
	p.helpers[name] = true
	for _, dep := range helperDeps[name] {
		p.helpers[dep] = true
	}
	return name
}

var identifierName = regexp.MustCompile(`^[A-Za-z_$][A-Za-z0-9_$]*$`)

// quote prints a string value as an ASCII double-quoted literal.
func quote(s unistring.String) string {
	if u := s.AsUtf16(); u != nil {
		return quoteUnits(u[1:])
	}
	return quoteUnits(utf16.Encode([]rune(string(s))))
}

func quoteString(s string) string {
	return quoteUnits(utf16.Encode([]rune(s)))
}

func quoteUnits(units []uint16) string {
	var b strings.Builder
	b.WriteByte('"')
	for _, u := range units {
		switch u {
		case '"':
			b.WriteString(`\"`)
		case '\\':
			b.WriteString(`\\`)
		case '\n':
			b.WriteString(`\n`)
		case '\r':
			b.WriteString(`\r`)
		case '\t':
			b.WriteString(`\t`)
		case '\b':
			b.WriteString(`\b`)
		case '\f':
			b.WriteString(`\f`)
		default:
			if u < 0x20 || u >= 0x7f {
				fmt.Fprintf(&b, `\u%04x`, u)
			} else {
				b.WriteByte(byte(u))
			}
		}
	}
	b.WriteByte('"')
	return b.String()
}

// number prints a numeric literal in ES5 syntax.
func (p *printer) number(n *ast.NumberLiteral) string {
	lit := n.Literal
	prefix := strings.ToLower(lit[:min(2, len(lit))])
	if !strings.Contains(lit, "_") && prefix != "0b" && prefix != "0o" {
		return lit
	}
	switch v := n.Value.(type) {
	case int64:
		return strconv.FormatInt(v, 10)
	case float64:
		return strconv.FormatFloat(v, 'g', -1, 64)
	}
	p.fail(n, "unsupported numeric literal %s", lit)
	return lit
}

// propertyName prints a non-computed object literal key.
func (p *printer) propertyName(key ast.Expression) string {
	switch k := key.(type) {
	case *ast.StringLiteral:
		if name := k.Value.String(); identifierName.MatchString(name) {
			return name
		}
		return quote(k.Value)
	case *ast.NumberLiteral:
		return p.number(k)
	}
	p.fail(key, "unsupported property key")
	return ""
}

// propertyKey prints a non-computed key as a value usable in brackets.
func (p *printer) propertyKey(key ast.Expression) string {
	switch k := key.(type) {
	case *ast.StringLiteral:
		return quote(k.Value)
	case *ast.NumberLiteral:
		return p.number(k)
	}
	p.fail(key, "unsupported property key")
	return ""
}

// member prints a property access on base.
func (p *printer) member(base string, key ast.Expression, computed bool) string {
	if computed {
		return base + "[" + p.expr(key) + "]"
	}
	if s, ok := key.(*ast.StringLiteral); ok {
		if name := s.Value.String(); identifierName.MatchString(name) {
			return base + "." + name
		}
	}
	return base + "[" + p.propertyKey(key) + "]"
}

func keyName(key ast.Expression) string {
	if s, ok := key.(*ast.StringLiteral); ok {
		return s.Value.String()
	}
	return ""
}
