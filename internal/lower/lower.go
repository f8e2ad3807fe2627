// Package lower rewrites ES2015 script source as ES5.
//
// The engine only understands ES5.1. esbuild lowers most newer syntax on its
// own but refuses block scoping, classes, destructuring, spread, default and
// rest parameters, object literal extensions and for-of when targeting ES5.
// This package parses the source with goja's parser and prints an equivalent
// ES5 program for exactly those constructs, leaving minification to esbuild.
//
// Generators, async functions and new.target have no ES5 rendition here and
// are reported as errors.
package lower

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/dop251/goja/ast"
	"github.com/dop251/goja/file"
	"github.com/dop251/goja/parser"
)

// Error reports a construct that cannot be expressed in ES5, or a syntax
// error in the input.
type Error struct {
	Line   int
	Column int
	Msg    string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%d:%d: %s", e.Line, e.Column, e.Msg)
}

var identifierPattern = regexp.MustCompile(`[A-Za-z_$][A-Za-z0-9_$]*`)

// ES5 parses source and prints it as an ES5 program. The output is not
// minified.
func ES5(filename string, source []byte) (string, error) {
	src := string(source)
	hashbang := ""
	if strings.HasPrefix(src, "#!") {
		end := strings.IndexByte(src, '\n')
		if end < 0 {
			end = len(src)
		}
		hashbang, src = src[:end]+"\n", src[end:]
	}

	fset := &file.FileSet{}
	prog, err := parser.ParseFile(fset, filename, src, parser.IgnoreRegExpErrors, parser.WithDisableSourceMaps)
	if err != nil {
		return "", parseError(err)
	}

	p := &printer{
		fset:    fset,
		used:    make(map[string]bool),
		helpers: make(map[string]bool),
	}
	for _, name := range identifierPattern.FindAllString(src, -1) {
		p.used[name] = true
	}
	for _, h := range helperOrder {
		p.used[h.name] = true
	}

	out := p.program(prog)
	if p.err != nil {
		return "", p.err
	}
	return hashbang + out, nil
}

func parseError(err error) error {
	var list parser.ErrorList
	if !errors.As(err, &list) || len(list) == 0 {
		return err
	}
	errs := make([]error, 0, len(list))
	for _, e := range list {
		errs = append(errs, &Error{Line: e.Position.Line, Column: e.Position.Column, Msg: e.Message})
	}
	return errors.Join(errs...)
}

// printer carries the state of one ES5 rendering.
type printer struct {
	fset    *file.FileSet
	used    map[string]bool
	helpers map[string]bool
	root    *function
	fn      *function
	scope   *scope
	err     error
}

func (p *printer) program(prog *ast.Program) string {
	p.root = &function{}
	p.fn = p.root
	p.scope = &scope{names: make(map[string]string)}

	directives, body := splitDirectives(prog.Body)
	stmts := p.statements(body)

	lines := append([]string{}, directives...)
	for _, h := range helperOrder {
		if p.helpers[h.name] {
			lines = append(lines, h.source)
		}
	}
	if prologue := p.prologue(p.root); prologue != "" {
		lines = append(lines, prologue)
	}
	lines = append(lines, stmts...)
	return strings.Join(lines, "\n") + "\n"
}

// fail records the first unsupported construct.
func (p *printer) fail(node ast.Node, format string, args ...any) {
	if p.err != nil {
		return
	}
	e := &Error{Msg: fmt.Sprintf(format, args...)}
	if node != nil && node.Idx0() > 0 {
		pos := p.fset.Position(node.Idx0())
		e.Line, e.Column = pos.Line, pos.Column
	}
	p.err = e
}

// splitDirectives separates a leading directive prologue from the rest of a
// statement list.
func splitDirectives(list []ast.Statement) ([]string, []ast.Statement) {
	var directives []string
	for len(list) > 0 {
		es, ok := list[0].(*ast.ExpressionStatement)
		if !ok {
			break
		}
		str, ok := es.Expression.(*ast.StringLiteral)
		if !ok {
			break
		}
		directives = append(directives, quote(str.Value)+";")
		list = list[1:]
	}
	return directives, list
}
