package lower

import (
	"strings"

	"github.com/dop251/goja/ast"
	"github.com/dop251/goja/token"
)

// statements prints a statement list in the current scope.
func (p *printer) statements(list []ast.Statement) []string {
	out := make([]string, 0, len(list))
	for _, stmt := range list {
		if s := p.statement(stmt); s != "" {
			out = append(out, s)
		}
	}
	return out
}

// block prints the contents of a nested block, renaming its lexical
// bindings.
func (p *printer) block(list []ast.Statement) []string {
	p.pushBlock(lexicalNames(list))
	defer p.popScope()
	return p.statements(list)
}

func braces(lines []string) string {
	if len(lines) == 0 {
		return "{}"
	}
	return "{\n" + strings.Join(lines, "\n") + "\n}"
}

// body prints a statement in a position that takes a single statement,
// always with braces.
func (p *printer) body(stmt ast.Statement) string {
	if b, ok := stmt.(*ast.BlockStatement); ok {
		return braces(p.block(b.List))
	}
	return braces([]string{p.statement(stmt)})
}

// contents prints a statement as a list of lines for splicing into another
// block.
func (p *printer) contents(stmt ast.Statement) []string {
	if b, ok := stmt.(*ast.BlockStatement); ok {
		return p.block(b.List)
	}
	return []string{p.statement(stmt)}
}

func (p *printer) statement(stmt ast.Statement) string {
	switch s := stmt.(type) {
	case *ast.BlockStatement:
		return braces(p.block(s.List))
	case *ast.EmptyStatement:
		return ";"
	case *ast.DebuggerStatement:
		return "debugger;"
	case *ast.ExpressionStatement:
		text := p.expr(s.Expression)
		if strings.HasPrefix(text, "{") || strings.HasPrefix(text, "function") {
			text = "(" + text + ")"
		}
		return text + ";"
	case *ast.VariableStatement:
		return "var " + p.bindings(s.List, false) + ";"
	case *ast.LexicalDeclaration:
		return "var " + p.bindings(s.List, p.scope.block) + ";"
	case *ast.FunctionDeclaration:
		name := p.ref(s.Function.Name.Name.String())
		return p.function(s.Function, name, true, &function{})
	case *ast.ClassDeclaration:
		if s.Class.Name == nil {
			p.fail(s.Class, "class declaration without a name")
			return ""
		}
		return "var " + p.ref(s.Class.Name.Name.String()) + " = " + p.class(s.Class) + ";"
	case *ast.IfStatement:
		out := "if (" + p.expr(s.Test) + ") " + p.body(s.Consequent)
		if s.Alternate != nil {
			out += " else " + p.body(s.Alternate)
		}
		return out
	case *ast.LabelledStatement:
		return s.Label.Name.String() + ": " + p.statement(s.Statement)
	case *ast.BranchStatement:
		return p.branch(s)
	case *ast.ReturnStatement:
		if s.Argument == nil {
			if p.fn.ctorThis != "" {
				return "return " + p.fn.ctorThis + ";"
			}
			return "return;"
		}
		return "return " + p.expr(s.Argument) + ";"
	case *ast.ThrowStatement:
		return "throw " + p.expr(s.Argument) + ";"
	case *ast.TryStatement:
		return p.try(s)
	case *ast.SwitchStatement:
		return p.switchStatement(s)
	case *ast.WithStatement:
		return "with (" + p.expr(s.Object) + ") " + p.body(s.Body)
	case *ast.WhileStatement:
		return "while (" + p.expr(s.Test) + ") " + p.loopBody(s.Body, nil, nil, nil, false)
	case *ast.DoWhileStatement:
		return "do " + p.loopBody(s.Body, nil, nil, nil, false) + " while (" + p.expr(s.Test) + ");"
	case *ast.ForStatement:
		return p.forStatement(s)
	case *ast.ForInStatement:
		return p.forIn(s)
	case *ast.ForOfStatement:
		return p.forOf(s)
	}
	p.fail(stmt, "unsupported statement")
	return ""
}

func (p *printer) branch(s *ast.BranchStatement) string {
	word := "break"
	if s.Token == token.CONTINUE {
		word = "continue"
		if s.Label == nil && p.fn.loopBody && p.fn.loops == 0 {
			return "return;"
		}
	}
	if s.Label != nil {
		return word + " " + s.Label.Name.String() + ";"
	}
	return word + ";"
}

// bindings prints a declaration list without its keyword. Uninitialized
// block scoped bindings are reset so loops see a fresh value each
// iteration.
func (p *printer) bindings(list []*ast.Binding, reset bool) string {
	var parts []string
	for _, b := range list {
		if id, ok := b.Target.(*ast.Identifier); ok {
			part := p.ref(id.Name.String())
			switch {
			case b.Initializer != nil:
				part += " = " + p.operand(b.Initializer)
			case reset:
				part += " = void 0"
			}
			parts = append(parts, part)
			continue
		}
		if b.Initializer == nil {
			p.fail(b.Target, "destructuring declaration without an initializer")
			continue
		}
		d := &destructuring{p: p, declare: true}
		d.assign(b.Target, p.operand(b.Initializer))
		parts = append(parts, d.out...)
	}
	return strings.Join(parts, ", ")
}

func (p *printer) try(s *ast.TryStatement) string {
	out := "try " + braces(p.block(s.Body.List))
	if c := s.Catch; c != nil {
		switch param := c.Parameter.(type) {
		case nil:
			out += " catch (" + p.fresh("_e") + ") " + braces(p.block(c.Body.List))
		case *ast.Identifier:
			name := param.Name.String()
			p.pushScope(map[string]string{name: name}, true)
			out += " catch (" + name + ") " + braces(p.block(c.Body.List))
			p.popScope()
		default:
			tmp := p.fresh("_e")
			p.pushBlock(bindingNames(param), nil)
			d := &destructuring{p: p, declare: true}
			d.assign(param, tmp)
			lines := append([]string{"var " + strings.Join(d.out, ", ") + ";"}, p.block(c.Body.List)...)
			p.popScope()
			out += " catch (" + tmp + ") " + braces(lines)
		}
	}
	if s.Finally != nil {
		out += " finally " + braces(p.block(s.Finally.List))
	}
	return out
}

func (p *printer) switchStatement(s *ast.SwitchStatement) string {
	discriminant := p.expr(s.Discriminant)
	var all []ast.Statement
	for _, c := range s.Body {
		all = append(all, c.Consequent...)
	}
	p.pushBlock(lexicalNames(all))
	defer p.popScope()

	lines := make([]string, 0, len(s.Body))
	for _, c := range s.Body {
		head := "default:"
		if c.Test != nil {
			head = "case " + p.expr(c.Test) + ":"
		}
		lines = append(lines, head)
		lines = append(lines, p.statements(c.Consequent)...)
	}
	return "switch (" + discriminant + ") " + braces(lines)
}

// loopBody prints a loop body. pre holds statements binding the loop
// variables for the iteration. When a closure in the body captures a block
// scoped binding, the body runs in its own function so each iteration gets
// fresh bindings; head lists the loop's own bindings by source name and
// printed name.
func (p *printer) loopBody(body ast.Statement, pre []string, head, printed []string, forHead bool) string {
	names := append(append([]string{}, head...), blockLexicals(body)...)
	wrap := len(names) > 0 && captured(body, names) && !escapes(body, false) &&
		!(forHead && assigns(body, head))

	if !wrap {
		p.fn.loops++
		defer func() { p.fn.loops-- }()
		if len(pre) == 0 {
			return p.body(body)
		}
		return braces(append(pre, p.contents(body)...))
	}

	params := strings.Join(printed, ", ")
	lines := p.enter(&function{arrow: true, loopBody: true}, func() []string {
		return p.contents(body)
	})
	call := "(function (" + params + ") " + braces(lines) + ")(" + params + ");"
	return braces(append(pre, call))
}

func (p *printer) forStatement(s *ast.ForStatement) string {
	var init string
	var head, printed []string
	switch in := s.Initializer.(type) {
	case nil:
	case *ast.ForLoopInitializerExpression:
		init = p.operand(in.Expression)
	case *ast.ForLoopInitializerVarDeclList:
		init = "var " + p.bindings(in.List, false)
	case *ast.ForLoopInitializerLexicalDecl:
		head = bindingListNames(in.LexicalDeclaration.List)
		p.pushBlock(head, nil)
		defer p.popScope()
		for _, name := range head {
			printed = append(printed, p.ref(name))
		}
		init = "var " + p.bindings(in.LexicalDeclaration.List, true)
	default:
		p.fail(s, "unsupported for loop initializer")
	}

	var test, update string
	if s.Test != nil {
		test = " " + p.expr(s.Test)
	}
	if s.Update != nil {
		update = " " + p.expr(s.Update)
	}
	return "for (" + init + ";" + test + ";" + update + ") " + p.loopBody(s.Body, nil, head, printed, true)
}

// loopTarget describes the binding of a for-in or for-of head.
type loopTarget struct {
	target  ast.Expression
	declare bool
	lexical bool
}

func (p *printer) loopTarget(into ast.ForInto) loopTarget {
	switch in := into.(type) {
	case *ast.ForDeclaration:
		return loopTarget{target: in.Target, declare: true, lexical: true}
	case *ast.ForIntoVar:
		if in.Binding.Initializer != nil {
			p.fail(in.Binding.Initializer, "initializer in for-in or for-of head")
		}
		return loopTarget{target: in.Binding.Target, declare: true}
	case *ast.ForIntoExpression:
		return loopTarget{target: in.Expression}
	}
	p.fail(into, "unsupported loop head")
	return loopTarget{}
}

// bind prints statements assigning value to the loop target.
func (p *printer) bind(t loopTarget, value string) []string {
	d := &destructuring{p: p, declare: t.declare}
	d.assign(t.target, value)
	if t.declare {
		return []string{"var " + strings.Join(d.out, ", ") + ";"}
	}
	return []string{strings.Join(d.out, ", ") + ";"}
}

// openLoopScope renames the lexical bindings of a for-in or for-of head.
func (p *printer) openLoopScope(t loopTarget) (head, printed []string, opened bool) {
	if !t.lexical {
		return nil, nil, false
	}
	head = bindingNames(t.target)
	p.pushBlock(head, nil)
	for _, name := range head {
		printed = append(printed, p.ref(name))
	}
	return head, printed, true
}

func (p *printer) forIn(s *ast.ForInStatement) string {
	source := p.expr(s.Source)
	t := p.loopTarget(s.Into)
	head, printed, opened := p.openLoopScope(t)
	if opened {
		defer p.popScope()
	}

	var left string
	var pre []string
	switch target := t.target.(type) {
	case *ast.Identifier:
		left = p.ref(target.Name.String())
		if t.declare {
			left = "var " + left
		}
	case *ast.DotExpression, *ast.BracketExpression:
		left = p.expr(target)
	default:
		key := p.fresh("_key")
		left = "var " + key
		pre = p.bind(t, key)
	}
	return "for (" + left + " in " + source + ") " + p.loopBody(s.Body, pre, head, printed, false)
}

func (p *printer) forOf(s *ast.ForOfStatement) string {
	source := p.expr(s.Source)
	t := p.loopTarget(s.Into)
	head, printed, opened := p.openLoopScope(t)
	if opened {
		defer p.popScope()
	}

	i, items := p.fresh("_i"), p.fresh("_items")
	pre := p.bind(t, items+"["+i+"]")
	return "for (var " + i + " = 0, " + items + " = " + p.helper("__toArray") + "(" + source + "); " +
		i + " < " + items + ".length; " + i + "++) " + p.loopBody(s.Body, pre, head, printed, false)
}
