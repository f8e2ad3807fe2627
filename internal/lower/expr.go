package lower

import (
	"strings"

	"github.com/dop251/goja/ast"
	"github.com/dop251/goja/token"
)

// primary reports whether e prints as an expression that never needs
// parentheses as an operand.
func primary(e ast.Expression) bool {
	switch e := e.(type) {
	case *ast.Identifier, *ast.StringLiteral, *ast.BooleanLiteral, *ast.NullLiteral,
		*ast.RegExpLiteral, *ast.NumberLiteral, *ast.ThisExpression, *ast.ArrayLiteral,
		*ast.ObjectLiteral, *ast.DotExpression, *ast.BracketExpression, *ast.CallExpression,
		*ast.ClassLiteral:
		return true
	case *ast.TemplateLiteral:
		return e.Tag != nil
	}
	return false
}

// operand prints e, parenthesized unless it is primary.
func (p *printer) operand(e ast.Expression) string {
	s := p.expr(e)
	if primary(e) {
		return s
	}
	return "(" + s + ")"
}

func (p *printer) list(items []ast.Expression) string {
	parts := make([]string, 0, len(items))
	for _, item := range items {
		parts = append(parts, p.operand(item))
	}
	return strings.Join(parts, ", ")
}

func hasSpread(items []ast.Expression) bool {
	for _, item := range items {
		if _, ok := item.(*ast.SpreadElement); ok {
			return true
		}
	}
	return false
}

// spread prints items containing spread elements as one array.
func (p *printer) spread(items []ast.Expression) string {
	var parts, group []string
	flush := func() {
		if len(group) > 0 {
			parts = append(parts, "["+strings.Join(group, ", ")+"]")
			group = nil
		}
	}
	for _, item := range items {
		switch item := item.(type) {
		case nil:
			group = append(group, "void 0")
		case *ast.SpreadElement:
			flush()
			parts = append(parts, p.operand(item.Expression))
		default:
			group = append(group, p.operand(item))
		}
	}
	flush()
	return p.helper("__spread") + "(" + strings.Join(parts, ", ") + ")"
}

func (p *printer) expr(e ast.Expression) string {
	switch e := e.(type) {
	case *ast.Identifier:
		return p.ref(e.Name.String())
	case *ast.ThisExpression:
		return p.this()
	case *ast.NullLiteral:
		return "null"
	case *ast.BooleanLiteral:
		if e.Value {
			return "true"
		}
		return "false"
	case *ast.NumberLiteral:
		return p.number(e)
	case *ast.StringLiteral:
		return quote(e.Value)
	case *ast.RegExpLiteral:
		return e.Literal
	case *ast.TemplateLiteral:
		return p.template(e)
	case *ast.ArrayLiteral:
		return p.array(e)
	case *ast.ObjectLiteral:
		return p.object(e)
	case *ast.FunctionLiteral:
		name := ""
		if e.Name != nil {
			name = e.Name.Name.String()
		}
		return p.function(e, name, false, &function{})
	case *ast.ArrowFunctionLiteral:
		return p.arrow(e)
	case *ast.ClassLiteral:
		return p.class(e)
	case *ast.SequenceExpression:
		return p.list(e.Sequence)
	case *ast.ConditionalExpression:
		return p.operand(e.Test) + " ? " + p.operand(e.Consequent) + " : " + p.operand(e.Alternate)
	case *ast.UnaryExpression:
		return p.unary(e)
	case *ast.BinaryExpression:
		switch e.Operator {
		case token.EXPONENT, token.COALESCE:
			p.fail(e, "operator %s is not supported", e.Operator)
		}
		return p.operand(e.Left) + " " + e.Operator.String() + " " + p.operand(e.Right)
	case *ast.AssignExpression:
		return p.assignment(e)
	case *ast.DotExpression:
		if _, ok := e.Left.(*ast.SuperExpression); ok {
			return p.superMember(e) + "." + e.Identifier.Name.String()
		}
		left := p.operand(e.Left)
		if _, ok := e.Left.(*ast.NumberLiteral); ok {
			left = "(" + left + ")"
		}
		return left + "." + e.Identifier.Name.String()
	case *ast.BracketExpression:
		if _, ok := e.Left.(*ast.SuperExpression); ok {
			return p.superMember(e) + "[" + p.expr(e.Member) + "]"
		}
		return p.operand(e.Left) + "[" + p.expr(e.Member) + "]"
	case *ast.CallExpression:
		return p.call(e)
	case *ast.NewExpression:
		return p.newExpression(e)
	case *ast.MetaProperty:
		p.fail(e.Meta, "new.target is not supported")
	case *ast.YieldExpression:
		p.fail(e, "generator functions are not supported")
	case *ast.AwaitExpression:
		p.fail(e, "async functions are not supported")
	case *ast.OptionalChain, *ast.Optional:
		p.fail(e, "optional chaining must be lowered before this pass")
	case *ast.PrivateDotExpression:
		p.fail(e, "private class members must be lowered before this pass")
	case *ast.SuperExpression:
		p.fail(e, "'super' keyword unexpected here")
	default:
		p.fail(e, "unsupported expression")
	}
	return ""
}

func (p *printer) unary(e *ast.UnaryExpression) string {
	op := e.Operator.String()
	if e.Postfix {
		return p.operand(e.Operand) + op
	}
	switch e.Operator {
	case token.TYPEOF, token.VOID, token.DELETE:
		return op + " " + p.operand(e.Operand)
	}
	return op + p.operand(e.Operand)
}

func (p *printer) assignment(e *ast.AssignExpression) string {
	switch e.Left.(type) {
	case *ast.ArrayPattern, *ast.ObjectPattern:
		if e.Operator != token.ASSIGN {
			p.fail(e, "invalid destructuring assignment")
			return ""
		}
		value := p.temp("ref")
		d := &destructuring{p: p}
		d.emit(value, p.operand(e.Right))
		d.assign(e.Left, value)
		return "(" + strings.Join(d.out, ", ") + ", " + value + ")"
	}
	if left, ok := e.Left.(*ast.DotExpression); ok {
		if _, ok := left.Left.(*ast.SuperExpression); ok {
			p.fail(e, "assignment to super properties is not supported")
		}
	}

	op := "="
	switch e.Operator {
	case token.ASSIGN:
	case token.EXPONENT, token.LOGICAL_AND, token.LOGICAL_OR, token.COALESCE:
		p.fail(e, "operator %s= is not supported", e.Operator)
	default:
		op = e.Operator.String() + "="
	}
	return p.expr(e.Left) + " " + op + " " + p.operand(e.Right)
}

func (p *printer) array(a *ast.ArrayLiteral) string {
	if hasSpread(a.Value) {
		return p.spread(a.Value)
	}
	parts := make([]string, 0, len(a.Value))
	for _, item := range a.Value {
		if item == nil {
			parts = append(parts, "")
			continue
		}
		parts = append(parts, p.operand(item))
	}
	out := strings.Join(parts, ", ")
	if n := len(a.Value); n > 0 && a.Value[n-1] == nil {
		out += ","
	}
	return "[" + out + "]"
}

// superMember returns the object a super property reference reads from.
func (p *printer) superMember(e ast.Expression) string {
	home := p.lexicalFunction().home
	if home == "" {
		p.fail(e, "'super' keyword unexpected here")
	}
	return home
}

func (p *printer) call(e *ast.CallExpression) string {
	switch callee := e.Callee.(type) {
	case *ast.SuperExpression:
		return p.superCall(e)
	case *ast.DotExpression:
		if _, ok := callee.Left.(*ast.SuperExpression); ok {
			return p.invoke(p.superMember(callee)+"."+callee.Identifier.Name.String(), p.this(), e.ArgumentList)
		}
		if hasSpread(e.ArgumentList) {
			obj, this := p.receiver(callee.Left)
			return p.invoke(obj+"."+callee.Identifier.Name.String(), this, e.ArgumentList)
		}
	case *ast.BracketExpression:
		if _, ok := callee.Left.(*ast.SuperExpression); ok {
			return p.invoke(p.superMember(callee)+"["+p.expr(callee.Member)+"]", p.this(), e.ArgumentList)
		}
		if hasSpread(e.ArgumentList) {
			obj, this := p.receiver(callee.Left)
			return p.invoke(obj+"["+p.expr(callee.Member)+"]", this, e.ArgumentList)
		}
	}
	if hasSpread(e.ArgumentList) {
		return p.invoke(p.operand(e.Callee), "void 0", e.ArgumentList)
	}
	return p.operand(e.Callee) + "(" + p.list(e.ArgumentList) + ")"
}

// receiver prints the object of a method call so that it is evaluated once
// and can be passed as this.
func (p *printer) receiver(left ast.Expression) (string, string) {
	obj := p.operand(left)
	if _, ok := left.(*ast.NumberLiteral); ok {
		obj = "(" + obj + ")"
	}
	if identifierName.MatchString(obj) {
		return obj, obj
	}
	t := p.temp("ref")
	return "(" + t + " = " + obj + ")", t
}

// invoke calls fn with an explicit this.
func (p *printer) invoke(fn, this string, args []ast.Expression) string {
	if hasSpread(args) {
		return fn + ".apply(" + this + ", " + p.spread(args) + ")"
	}
	if len(args) == 0 {
		return fn + ".call(" + this + ")"
	}
	return fn + ".call(" + this + ", " + p.list(args) + ")"
}

func (p *printer) superCall(e *ast.CallExpression) string {
	f := p.lexicalFunction()
	if f.ctorThis == "" {
		p.fail(e, "'super' keyword unexpected here")
		return ""
	}
	if f != p.fn {
		p.fail(e, "super() inside a nested function is not supported")
		return ""
	}
	return "(" + f.ctorThis + " = " + p.invoke(f.superVar, "this", e.ArgumentList) + " || this)"
}

func (p *printer) newExpression(e *ast.NewExpression) string {
	callee := p.operand(e.Callee)
	if !newCallee(e.Callee) {
		callee = "(" + callee + ")"
	}
	if hasSpread(e.ArgumentList) {
		args := append([]ast.Expression{&ast.NullLiteral{}}, e.ArgumentList...)
		return "new (Function.prototype.bind.apply(" + callee + ", " + p.spread(args) + "))()"
	}
	return "new " + callee + "(" + p.list(e.ArgumentList) + ")"
}

// newCallee reports whether e can follow new without parentheses.
func newCallee(e ast.Expression) bool {
	switch e := e.(type) {
	case *ast.Identifier, *ast.ThisExpression:
		return true
	case *ast.DotExpression:
		return newCallee(e.Left)
	case *ast.BracketExpression:
		return newCallee(e.Left)
	}
	return false
}

// template prints an untagged template as string concatenation and a
// tagged one as a call with a cached strings array.
func (p *printer) template(t *ast.TemplateLiteral) string {
	if t.Tag == nil {
		parts := []string{quote(t.Elements[0].Parsed)}
		for i, e := range t.Expressions {
			parts = append(parts, p.operand(e))
			if next := t.Elements[i+1]; next.Parsed != "" {
				parts = append(parts, quote(next.Parsed))
			}
		}
		return strings.Join(parts, " + ")
	}

	cooked := make([]string, 0, len(t.Elements))
	raw := make([]string, 0, len(t.Elements))
	for _, el := range t.Elements {
		if el.Valid {
			cooked = append(cooked, quote(el.Parsed))
		} else {
			cooked = append(cooked, "void 0")
		}
		raw = append(raw, quoteString(strings.ReplaceAll(el.Literal, "\r\n", "\n")))
	}

	cache := p.fresh("_templateObject")
	p.root.temps = append(p.root.temps, cache)
	strs := cache + " || (" + cache + " = " + p.helper("__templateObject") +
		"([" + strings.Join(cooked, ", ") + "], [" + strings.Join(raw, ", ") + "]))"

	args := []string{strs}
	for _, e := range t.Expressions {
		args = append(args, p.operand(e))
	}
	return p.operand(t.Tag) + "(" + strings.Join(args, ", ") + ")"
}
