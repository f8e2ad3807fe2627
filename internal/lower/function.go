package lower

import (
	"strconv"
	"strings"

	"github.com/dop251/goja/ast"
)

// function prints a function literal. Declarations keep their name in the
// enclosing scope; expressions bind it inside their own.
func (p *printer) function(lit *ast.FunctionLiteral, name string, declaration bool, f *function) string {
	if lit.Generator {
		p.fail(lit, "generator functions are not supported")
	}
	if lit.Async {
		p.fail(lit, "async functions are not supported")
	}

	scope := functionScope(lit.ParameterList, lit.DeclarationList, lit.Body.List)
	if !declaration && name != "" {
		if _, shadowed := scope[name]; !shadowed {
			scope[name] = name
		}
	}
	params, body := p.functionBody(f, scope, lit.ParameterList, lit.Body.List)
	if name == "" {
		return "function (" + params + ") " + body
	}
	return "function " + name + "(" + params + ") " + body
}

func (p *printer) arrow(a *ast.ArrowFunctionLiteral) string {
	if a.Async {
		p.fail(a, "async functions are not supported")
	}
	var list []ast.Statement
	switch b := a.Body.(type) {
	case *ast.BlockStatement:
		list = b.List
	case *ast.ExpressionBody:
		list = []ast.Statement{&ast.ReturnStatement{Return: a.Start, Argument: b.Expression}}
	}
	scope := functionScope(a.ParameterList, a.DeclarationList, list)
	params, body := p.functionBody(&function{arrow: true}, scope, a.ParameterList, list)
	return "function (" + params + ") " + body
}

// functionBody prints the parameter list and braced body of a function
// running as f.
func (p *printer) functionBody(f *function, names map[string]string, params *ast.ParameterList, list []ast.Statement) (string, string) {
	p.pushScope(names, false)
	defer p.popScope()

	var paramText string
	lines := p.enter(f, func() []string {
		var pre []string
		paramText, pre = p.parameters(params)
		directives, rest := splitDirectives(list)
		out := p.statements(rest)
		if f.ctorThis != "" {
			out = append(out, "return "+f.ctorThis+";")
		}
		return append(directives, append(pre, out...)...)
	})
	return paramText, braces(lines)
}

func isDirective(line string) bool {
	return len(line) >= 3 && strings.HasPrefix(line, `"`) && strings.HasSuffix(line, `";`) && !strings.Contains(line[1:len(line)-2], `"`)
}

// parameters prints simple parameter names and returns the statements that
// apply defaults, destructuring and rest collection.
func (p *printer) parameters(params *ast.ParameterList) (string, []string) {
	if params == nil {
		return "", nil
	}
	var names, pre []string
	for _, b := range params.List {
		var name string
		if id, ok := b.Target.(*ast.Identifier); ok {
			name = p.ref(id.Name.String())
		} else {
			name = p.fresh("_ref")
		}
		names = append(names, name)
		if b.Initializer != nil {
			pre = append(pre, "if ("+name+" === void 0) "+braces([]string{name + " = " + p.operand(b.Initializer) + ";"}))
		}
		if _, ok := b.Target.(*ast.Identifier); !ok {
			d := &destructuring{p: p, declare: true}
			d.assign(b.Target, name)
			pre = append(pre, "var "+strings.Join(d.out, ", ")+";")
		}
	}
	if params.Rest != nil {
		rest := "Array.prototype.slice.call(arguments, " + strconv.Itoa(len(params.List)) + ")"
		d := &destructuring{p: p, declare: true}
		d.assign(params.Rest, rest)
		pre = append(pre, "var "+strings.Join(d.out, ", ")+";")
	}
	return strings.Join(names, ", "), pre
}
