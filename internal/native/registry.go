package native

import (
	"bufio"
	"fmt"
	"io"
	"regexp"
	"strings"

	oerrors "github.com/opmodel/dukbin/internal/errors"
)

var identifierPattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// ParseRegistry reads a function registry: one C identifier per line.
// Lines are trimmed; blank lines and lines starting with "#" are skipped.
// path is used in error reports only.
func ParseRegistry(path string, r io.Reader) ([]string, error) {
	var names []string

	scanner := bufio.NewScanner(r)
	line := 0
	for scanner.Scan() {
		line++
		text := scanner.Text()
		if line == 1 {
			text = strings.TrimPrefix(text, "\uFEFF")
		}
		text = strings.TrimSpace(text)
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}
		if !identifierPattern.MatchString(text) {
			return nil, &oerrors.RegistryError{Path: path, Line: line, Name: text}
		}
		names = append(names, text)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	return names, nil
}
