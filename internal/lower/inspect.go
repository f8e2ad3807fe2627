package lower

import (
	"reflect"

	"github.com/dop251/goja/ast"
	"github.com/dop251/goja/token"
)

// inspect walks the tree rooted at node in depth-first order. Children are
// skipped when visit returns false. goja ships no visitor, so children are
// found by reflecting over the exported node fields.
func inspect(node ast.Node, visit func(ast.Node) bool) {
	if node == nil {
		return
	}
	v := reflect.ValueOf(node)
	if v.Kind() == reflect.Ptr && v.IsNil() {
		return
	}
	if !visit(node) {
		return
	}
	inspectStruct(reflect.Indirect(v), visit)
}

func inspectStruct(v reflect.Value, visit func(ast.Node) bool) {
	if v.Kind() != reflect.Struct {
		return
	}
	for i := 0; i < v.NumField(); i++ {
		if v.Type().Field(i).IsExported() {
			inspectValue(v.Field(i), visit)
		}
	}
}

func inspectValue(f reflect.Value, visit func(ast.Node) bool) {
	switch f.Kind() {
	case reflect.Interface, reflect.Ptr:
		if f.IsNil() {
			return
		}
		if n, ok := f.Interface().(ast.Node); ok {
			inspect(n, visit)
			return
		}
		if f.Kind() == reflect.Ptr {
			inspectStruct(f.Elem(), visit)
		}
	case reflect.Slice:
		for i := 0; i < f.Len(); i++ {
			inspectValue(f.Index(i), visit)
		}
	case reflect.Struct:
		if f.CanAddr() {
			if n, ok := f.Addr().Interface().(ast.Node); ok {
				inspect(n, visit)
				return
			}
		}
		inspectStruct(f, visit)
	}
}

func isFunctionNode(n ast.Node) bool {
	switch n.(type) {
	case *ast.FunctionLiteral, *ast.ArrowFunctionLiteral, *ast.ClassLiteral:
		return true
	}
	return false
}

// blockLexicals lists let, const and class names declared anywhere in body
// outside nested functions.
func blockLexicals(body ast.Node) []string {
	var names []string
	inspect(body, func(n ast.Node) bool {
		switch n := n.(type) {
		case *ast.LexicalDeclaration:
			names = append(names, bindingListNames(n.List)...)
		case *ast.ClassDeclaration:
			if n.Class.Name != nil {
				names = append(names, n.Class.Name.Name.String())
			}
			return false
		case *ast.ForDeclaration:
			names = append(names, bindingNames(n.Target)...)
		}
		return !isFunctionNode(n)
	})
	return names
}

// captured reports whether a function nested in body references any of
// names.
func captured(body ast.Node, names []string) bool {
	set := make(map[string]bool, len(names))
	for _, name := range names {
		set[name] = true
	}
	found := false
	inspect(body, func(n ast.Node) bool {
		if found {
			return false
		}
		if !isFunctionNode(n) {
			return true
		}
		inspect(n, func(inner ast.Node) bool {
			if id, ok := inner.(*ast.Identifier); ok && set[id.Name.String()] {
				found = true
			}
			return !found
		})
		return false
	})
	return found
}

// escapes reports whether body can leave the loop other than through an
// unlabeled continue, or declares var bindings that must outlive it.
func escapes(body ast.Node, nested bool) bool {
	found := false
	inspect(body, func(n ast.Node) bool {
		if found || isFunctionNode(n) {
			return false
		}
		switch n := n.(type) {
		case *ast.ReturnStatement, *ast.VariableStatement, *ast.ForLoopInitializerVarDeclList,
			*ast.ForIntoVar, *ast.YieldExpression, *ast.AwaitExpression:
			found = true
		case *ast.BranchStatement:
			if n.Label != nil || (n.Token == token.BREAK && !nested) {
				found = true
			}
		case *ast.ForStatement, *ast.ForInStatement, *ast.ForOfStatement,
			*ast.WhileStatement, *ast.DoWhileStatement, *ast.SwitchStatement:
			if ast.Node(n) != body {
				found = escapes(n, true)
				return false
			}
		}
		return !found
	})
	return found
}

// assigns reports whether body writes to any of names.
func assigns(body ast.Node, names []string) bool {
	set := make(map[string]bool, len(names))
	for _, name := range names {
		set[name] = true
	}
	found := false
	inspect(body, func(n ast.Node) bool {
		var target ast.Expression
		switch n := n.(type) {
		case *ast.AssignExpression:
			target = n.Left
		case *ast.UnaryExpression:
			if n.Operator == token.INCREMENT || n.Operator == token.DECREMENT {
				target = n.Operand
			}
		case *ast.ForIntoExpression:
			target = n.Expression
		}
		if target != nil {
			for _, name := range bindingNames(target) {
				if set[name] {
					found = true
				}
			}
		}
		return !found
	})
	return found
}
