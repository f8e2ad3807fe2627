// Package synth renders the generated program from the program template and
// a collected bundle.
package synth

import (
	"fmt"
	"sort"
	"strings"

	"github.com/opmodel/dukbin/internal/bundle"
	"github.com/opmodel/dukbin/internal/engine"
	oerrors "github.com/opmodel/dukbin/internal/errors"
)

type span struct {
	marker string
	start  int
	end    int
}

// Render substitutes every template marker with the bundle's content.
// Each marker must occur exactly once in tmpl. Substituted content is never
// rescanned for markers.
func Render(tmpl string, b *bundle.Bundle) (string, error) {
	spans, err := locate(tmpl)
	if err != nil {
		return "", err
	}

	replacements := map[string][]string{
		engine.MarkerEntry:         {CString(b.Entry)},
		engine.MarkerModules:       moduleLines(b.ModuleTable),
		engine.MarkerIndexes:       indexLines(b.Indexes),
		engine.MarkerDeclarations:  declarationLines(b.Natives.FunctionNames),
		engine.MarkerRegistrations: registrationLines(b.Natives.FunctionNames),
	}

	var out strings.Builder
	out.Grow(len(tmpl) + len(b.Entry))
	pos := 0
	for _, s := range spans {
		lines := replacements[s.marker]
		indent := indentAt(tmpl, s.start)
		start := s.start
		if len(lines) == 0 {
			start -= len(indent)
		}
		out.WriteString(tmpl[pos:start])
		out.WriteString(strings.Join(lines, "\n"+indent))
		pos = s.end
	}
	out.WriteString(tmpl[pos:])

	return out.String(), nil
}

func locate(tmpl string) ([]span, error) {
	var spans []span
	for _, marker := range engine.Markers() {
		switch n := strings.Count(tmpl, marker); n {
		case 1:
			start := strings.Index(tmpl, marker)
			spans = append(spans, span{marker: marker, start: start, end: start + len(marker)})
		default:
			return nil, fmt.Errorf("template marker %s occurs %d times, want 1: %w", marker, n, oerrors.ErrTemplate)
		}
	}
	sort.Slice(spans, func(i, j int) bool { return spans[i].start < spans[j].start })
	return spans, nil
}

// indentAt returns the whitespace preceding offset on its line, or "" when
// the line has other content before offset.
func indentAt(tmpl string, offset int) string {
	lineStart := strings.LastIndexByte(tmpl[:offset], '\n') + 1
	prefix := tmpl[lineStart:offset]
	if strings.TrimLeft(prefix, " \t") != "" {
		return ""
	}
	return prefix
}

func moduleLines(t *bundle.ModuleTable) []string {
	if t == nil {
		return nil
	}
	lines := make([]string, 0, t.Len())
	for _, key := range t.Keys() {
		value, _ := t.Get(key)
		lines = append(lines, fmt.Sprintf("modules[%s] = %s;", CString(key), CString(value)))
	}
	return lines
}

func indexLines(t *bundle.IndexTable) []string {
	if t == nil {
		return nil
	}
	lines := make([]string, 0, t.Len())
	for _, dir := range t.Keys() {
		module, _ := t.Get(dir)
		lines = append(lines, fmt.Sprintf("indexes[%s] = %s;", CString(dir), CString(module)))
	}
	return lines
}

func declarationLines(names []string) []string {
	lines := make([]string, 0, len(names))
	for _, name := range names {
		lines = append(lines, fmt.Sprintf("duk_ret_t %s(duk_context *ctx);", name))
	}
	return lines
}

func registrationLines(names []string) []string {
	lines := make([]string, 0, 2*len(names))
	for _, name := range names {
		lines = append(lines,
			fmt.Sprintf("duk_push_c_function(ctx, %s, DUK_VARARGS);", name),
			fmt.Sprintf("duk_put_global_string(ctx, %s);", CString(name)),
		)
	}
	return lines
}
