package lower

import (
	"strings"

	"github.com/dop251/goja/ast"
)

// object prints an object literal. Shorthand properties and methods are
// expanded; from the first computed key on, properties are assigned to a
// temporary in order.
func (p *printer) object(o *ast.ObjectLiteral) string {
	first := len(o.Value)
	for i, prop := range o.Value {
		if keyed, ok := prop.(*ast.PropertyKeyed); ok && keyed.Computed {
			first = i
			break
		}
	}

	literal := make([]string, 0, first)
	for _, prop := range o.Value[:first] {
		literal = append(literal, p.property(prop))
	}
	if first == len(o.Value) {
		return "{" + strings.Join(literal, ", ") + "}"
	}

	obj := p.temp("obj")
	parts := []string{obj + " = {" + strings.Join(literal, ", ") + "}"}
	for _, prop := range o.Value[first:] {
		parts = append(parts, p.propertyAssignment(obj, prop))
	}
	return "(" + strings.Join(parts, ", ") + ", " + obj + ")"
}

func (p *printer) property(prop ast.Property) string {
	switch prop := prop.(type) {
	case *ast.PropertyShort:
		if prop.Initializer != nil {
			p.fail(prop, "invalid shorthand property initializer")
		}
		return p.propertyName(&ast.StringLiteral{Value: prop.Name.Name}) + ": " + p.ref(prop.Name.Name.String())
	case *ast.PropertyKeyed:
		key := p.propertyName(prop.Key)
		switch prop.Kind {
		case ast.PropertyKindGet, ast.PropertyKindSet:
			fn := p.method(prop.Value, "")
			return string(prop.Kind) + " " + key + strings.TrimPrefix(fn, "function ")
		case ast.PropertyKindMethod:
			return key + ": " + p.method(prop.Value, "")
		}
		return key + ": " + p.operand(prop.Value)
	case *ast.SpreadElement:
		p.fail(prop, "object spread must be lowered before this pass")
	default:
		p.fail(prop, "unsupported property")
	}
	return ""
}

func (p *printer) propertyAssignment(obj string, prop ast.Property) string {
	keyed, ok := prop.(*ast.PropertyKeyed)
	if !ok {
		short, isShort := prop.(*ast.PropertyShort)
		if !isShort {
			return p.property(prop)
		}
		return p.member(obj, &ast.StringLiteral{Value: short.Name.Name}, false) + " = " + p.ref(short.Name.Name.String())
	}

	var key string
	if keyed.Computed {
		key = p.operand(keyed.Key)
	} else {
		key = p.propertyKey(keyed.Key)
	}
	switch keyed.Kind {
	case ast.PropertyKindGet, ast.PropertyKindSet:
		return "Object.defineProperty(" + obj + ", " + key + ", {" + string(keyed.Kind) + ": " +
			p.method(keyed.Value, "") + ", enumerable: true, configurable: true})"
	case ast.PropertyKindMethod:
		return obj + "[" + key + "] = " + p.method(keyed.Value, "")
	}
	return obj + "[" + key + "] = " + p.operand(keyed.Value)
}

// method prints a method body. home is where super property lookups start.
func (p *printer) method(value ast.Expression, home string) string {
	lit, ok := value.(*ast.FunctionLiteral)
	if !ok {
		p.fail(value, "unsupported method")
		return ""
	}
	return p.function(lit, "", false, &function{home: home})
}

// class prints a class as an immediately invoked function returning its
// constructor.
func (p *printer) class(c *ast.ClassLiteral) string {
	var heritage, superVar string
	if c.SuperClass != nil {
		heritage = p.operand(c.SuperClass)
		superVar = p.fresh("_super")
	}

	var name string
	if c.Name != nil {
		name = c.Name.Name.String()
	} else {
		name = p.fresh("_class")
	}
	p.pushScope(map[string]string{name: name}, true)
	defer p.popScope()

	protoHome, staticHome := "Object.prototype", "Function.prototype"
	if superVar != "" {
		protoHome, staticHome = superVar+".prototype", superVar
	}

	lines := p.enter(&function{arrow: true}, func() []string {
		var ctor *ast.MethodDefinition
		var proto, static []string
		for _, el := range c.Body {
			m, ok := el.(*ast.MethodDefinition)
			if !ok {
				p.fail(el, "class fields and static blocks must be lowered before this pass")
				continue
			}
			if _, private := m.Key.(*ast.PrivateIdentifier); private {
				p.fail(m, "private class members must be lowered before this pass")
				continue
			}
			if !m.Static && !m.Computed && keyName(m.Key) == "constructor" {
				ctor = m
				continue
			}

			var key string
			if m.Computed {
				key = p.operand(m.Key)
			} else {
				key = p.propertyKey(m.Key)
			}
			home, target := protoHome, &proto
			if m.Static {
				home, target = staticHome, &static
			}
			kind := "value"
			if m.Kind == ast.PropertyKindGet || m.Kind == ast.PropertyKindSet {
				kind = string(m.Kind)
			}
			*target = append(*target, "{key: "+key+", "+kind+": "+p.method(m.Body, home)+"}")
		}

		var lines []string
		if superVar != "" {
			lines = append(lines, p.helper("__extends")+"("+name+", "+superVar+");")
		}
		lines = append(lines, p.constructor(ctor, name, superVar, protoHome))
		if len(proto) > 0 {
			lines = append(lines, p.helper("__defineProps")+"("+name+".prototype, ["+strings.Join(proto, ", ")+"]);")
		}
		if len(static) > 0 {
			lines = append(lines, p.helper("__defineProps")+"("+name+", ["+strings.Join(static, ", ")+"]);")
		}
		return append(lines, "return "+name+";")
	})

	return "(function (" + superVar + ") " + braces(lines) + "(" + heritage + "))"
}

func (p *printer) constructor(ctor *ast.MethodDefinition, name, superVar, home string) string {
	if ctor == nil {
		if superVar == "" {
			return "function " + name + "() {}"
		}
		return "function " + name + "() {\nreturn " + superVar + " !== null && " + superVar +
			".apply(this, arguments) || this;\n}"
	}
	f := &function{home: home, superVar: superVar}
	if superVar != "" {
		f.ctorThis = p.fresh("_this")
	}
	return p.function(ctor.Body, name, true, f)
}
