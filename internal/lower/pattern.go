package lower

import (
	"strconv"

	"github.com/dop251/goja/ast"
)

// destructuring flattens a binding or assignment pattern into a list of
// simple assignments. Declarations introduce their temporaries inline;
// assignments declare them at the top of the function.
type destructuring struct {
	p       *printer
	declare bool
	out     []string
}

func (d *destructuring) tmp(hint string) string {
	if d.declare {
		return d.p.fresh("_" + hint)
	}
	return d.p.temp(hint)
}

func (d *destructuring) emit(left, right string) {
	d.out = append(d.out, left+" = "+right)
}

// cache returns a reference to value that can be read repeatedly.
func (d *destructuring) cache(value string) string {
	if identifierName.MatchString(value) {
		return value
	}
	t := d.tmp("ref")
	d.emit(t, value)
	return t
}

// assign destructures value into target. Array patterns read array-likes by
// index and other iterables through their iterator.
func (d *destructuring) assign(target ast.Expression, value string) {
	p := d.p
	switch t := target.(type) {
	case *ast.Identifier:
		d.emit(p.ref(t.Name.String()), value)
	case *ast.DotExpression, *ast.BracketExpression:
		if d.declare {
			p.fail(t, "invalid destructuring target")
			return
		}
		d.emit(p.expr(t), value)
	case *ast.AssignExpression:
		d.withDefault(t.Left, t.Right, value)
	case *ast.ArrayPattern:
		src := d.tmp("ref")
		d.emit(src, p.helper("__toArray")+"("+value+")")
		for i, el := range t.Elements {
			if el != nil {
				d.assign(el, src+"["+strconv.Itoa(i)+"]")
			}
		}
		if t.Rest != nil {
			d.assign(t.Rest, "Array.prototype.slice.call("+src+", "+strconv.Itoa(len(t.Elements))+")")
		}
	case *ast.ObjectPattern:
		if t.Rest != nil {
			p.fail(t.Rest, "object rest patterns are not supported")
			return
		}
		src := d.cache(value)
		for _, prop := range t.Properties {
			switch prop := prop.(type) {
			case *ast.PropertyShort:
				name := prop.Name.Name.String()
				id := &ast.Identifier{Name: prop.Name.Name, Idx: prop.Name.Idx}
				read := src + "." + name
				if !identifierName.MatchString(name) {
					read = src + "[" + quote(prop.Name.Name) + "]"
				}
				if prop.Initializer != nil {
					d.withDefault(id, prop.Initializer, read)
				} else {
					d.assign(id, read)
				}
			case *ast.PropertyKeyed:
				key := prop.Key
				if prop.Computed {
					k := d.tmp("key")
					d.emit(k, p.operand(key))
					d.assign(prop.Value, src+"["+k+"]")
					continue
				}
				d.assign(prop.Value, p.member(src, key, false))
			default:
				p.fail(prop, "unsupported destructuring property")
			}
		}
	default:
		p.fail(target, "invalid destructuring target")
	}
}

func (d *destructuring) withDefault(target, def ast.Expression, value string) {
	t := d.tmp("ref")
	d.emit(t, value)
	d.assign(target, "("+t+" === void 0 ? "+d.p.operand(def)+" : "+t+")")
}
