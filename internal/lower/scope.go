package lower

import (
	"strconv"
	"strings"

	"github.com/dop251/goja/ast"
)

// scope maps source binding names to printed names. Function scopes map
// every local name to itself so they shadow renamed outer bindings.
type scope struct {
	parent *scope
	names  map[string]string
	block  bool
}

// function is the state of one printed ES5 function.
type function struct {
	parent *function

	// arrow functions, class bodies and per-iteration loop bodies see the
	// this and arguments of the enclosing function.
	arrow bool
	// loopBody marks a per-iteration loop function, where an unlabeled
	// continue at loop depth zero becomes a return.
	loopBody bool
	loops    int

	thisAlias string
	argsAlias string
	temps     []string

	// ctorThis is the this binding of a derived class constructor, set by
	// its super call.
	ctorThis string
	superVar string
	// home is the object super property lookups start from.
	home string
}

func (p *printer) pushScope(names map[string]string, block bool) {
	p.scope = &scope{parent: p.scope, names: names, block: block}
}

func (p *printer) popScope() {
	p.scope = p.scope.parent
}

// pushBlock opens a block scope renaming the given lexical names.
func (p *printer) pushBlock(lexical, functions []string) {
	names := make(map[string]string, len(lexical)+len(functions))
	for _, name := range lexical {
		names[name] = p.rename(name)
	}
	for _, name := range functions {
		names[name] = name
	}
	p.pushScope(names, true)
}

func (p *printer) lookup(name string) (string, bool) {
	for s := p.scope; s != nil; s = s.parent {
		if printed, ok := s.names[name]; ok {
			return printed, true
		}
	}
	return "", false
}

// ref returns the printed name of an identifier reference.
func (p *printer) ref(name string) string {
	if printed, ok := p.lookup(name); ok {
		return printed
	}
	if name == "arguments" {
		return p.arguments()
	}
	return name
}

// lexicalFunction returns the nearest function with its own this binding.
func (p *printer) lexicalFunction() *function {
	f := p.fn
	for f.arrow && f.parent != nil {
		f = f.parent
	}
	return f
}

func (p *printer) this() string {
	f := p.lexicalFunction()
	if f.ctorThis != "" {
		return f.ctorThis
	}
	if f == p.fn {
		return "this"
	}
	if f.thisAlias == "" {
		f.thisAlias = p.fresh("_this")
	}
	return f.thisAlias
}

func (p *printer) arguments() string {
	f := p.lexicalFunction()
	if f == p.fn || f.parent == nil {
		return "arguments"
	}
	if f.argsAlias == "" {
		f.argsAlias = p.fresh("_arguments")
	}
	return f.argsAlias
}

// fresh returns an unused identifier derived from base.
func (p *printer) fresh(base string) string {
	name := base
	for i := 2; p.used[name]; i++ {
		name = base + strconv.Itoa(i)
	}
	p.used[name] = true
	return name
}

// rename returns an unused name for a block scoped binding.
func (p *printer) rename(name string) string {
	for i := 1; ; i++ {
		candidate := name + "$" + strconv.Itoa(i)
		if !p.used[candidate] {
			p.used[candidate] = true
			return candidate
		}
	}
}

// temp allocates a variable declared at the top of the current function.
func (p *printer) temp(hint string) string {
	name := p.fresh("_" + hint)
	p.fn.temps = append(p.fn.temps, name)
	return name
}

func (p *printer) prologue(f *function) string {
	var decls []string
	if f.thisAlias != "" {
		decls = append(decls, f.thisAlias+" = this")
	}
	if f.argsAlias != "" {
		decls = append(decls, f.argsAlias+" = arguments")
	}
	if f.ctorThis != "" {
		decls = append(decls, f.ctorThis)
	}
	decls = append(decls, f.temps...)
	if len(decls) == 0 {
		return ""
	}
	return "var " + strings.Join(decls, ", ") + ";"
}

// enter prints body as the contents of function f, declaring its
// aliases and temporaries after any directive prologue.
func (p *printer) enter(f *function, body func() []string) []string {
	f.parent = p.fn
	p.fn = f
	defer func() { p.fn = f.parent }()

	lines := body()
	prologue := p.prologue(f)
	if prologue == "" {
		return lines
	}
	n := 0
	for n < len(lines) && isDirective(lines[n]) {
		n++
	}
	out := make([]string, 0, len(lines)+1)
	out = append(out, lines[:n]...)
	out = append(out, prologue)
	return append(out, lines[n:]...)
}

// bindingNames lists the names a binding target declares.
func bindingNames(target ast.Expression) []string {
	switch t := target.(type) {
	case *ast.Identifier:
		return []string{t.Name.String()}
	case *ast.AssignExpression:
		return bindingNames(t.Left)
	case *ast.ArrayPattern:
		var names []string
		for _, el := range t.Elements {
			if el != nil {
				names = append(names, bindingNames(el)...)
			}
		}
		if t.Rest != nil {
			names = append(names, bindingNames(t.Rest)...)
		}
		return names
	case *ast.ObjectPattern:
		var names []string
		for _, prop := range t.Properties {
			switch prop := prop.(type) {
			case *ast.PropertyShort:
				names = append(names, prop.Name.Name.String())
			case *ast.PropertyKeyed:
				names = append(names, bindingNames(prop.Value)...)
			}
		}
		if t.Rest != nil {
			names = append(names, bindingNames(t.Rest)...)
		}
		return names
	}
	return nil
}

func bindingListNames(list []*ast.Binding) []string {
	var names []string
	for _, b := range list {
		names = append(names, bindingNames(b.Target)...)
	}
	return names
}

// lexicalNames lists the let, const and class names declared directly in a
// statement list, and separately its function declarations.
func lexicalNames(list []ast.Statement) (lexical, functions []string) {
	for _, stmt := range list {
		switch s := stmt.(type) {
		case *ast.LexicalDeclaration:
			lexical = append(lexical, bindingListNames(s.List)...)
		case *ast.ClassDeclaration:
			if s.Class.Name != nil {
				lexical = append(lexical, s.Class.Name.Name.String())
			}
		case *ast.FunctionDeclaration:
			if s.Function.Name != nil {
				functions = append(functions, s.Function.Name.Name.String())
			}
		}
	}
	return lexical, functions
}

// functionScope lists every name local to a function body.
func functionScope(params *ast.ParameterList, decls []*ast.VariableDeclaration, body []ast.Statement) map[string]string {
	names := make(map[string]string)
	add := func(list []string) {
		for _, name := range list {
			names[name] = name
		}
	}
	if params != nil {
		add(bindingListNames(params.List))
		if params.Rest != nil {
			add(bindingNames(params.Rest))
		}
	}
	for _, decl := range decls {
		add(bindingListNames(decl.List))
	}
	lexical, functions := lexicalNames(body)
	add(lexical)
	add(functions)
	return names
}
