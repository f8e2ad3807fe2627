package synth

import (
	"fmt"
	"strings"
)

// CString returns s as a double-quoted C/C++ string literal. Control bytes
// use three-digit octal escapes and a "?" following "?" is escaped so no
// trigraph can form.
func CString(s string) string {
	var b strings.Builder
	b.Grow(len(s) + 2)
	b.WriteByte('"')

	var prev byte
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c == '\\':
			b.WriteString(`\\`)
		case c == '"':
			b.WriteString(`\"`)
		case c == '\n':
			b.WriteString(`\n`)
		case c == '\r':
			b.WriteString(`\r`)
		case c == '\t':
			b.WriteString(`\t`)
		case c == '?' && prev == '?':
			b.WriteString(`\?`)
		case c < 0x20 || c == 0x7f:
			fmt.Fprintf(&b, `\%03o`, c)
		default:
			b.WriteByte(c)
		}
		prev = c
	}

	b.WriteByte('"')
	return b.String()
}
