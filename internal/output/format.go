package output

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"
)

// Format specifies the output format.
type Format string

const (
	// FormatTable outputs human-readable tables.
	FormatTable Format = "table"

	// FormatYAML outputs in YAML format.
	FormatYAML Format = "yaml"

	// FormatJSON outputs in JSON format.
	FormatJSON Format = "json"
)

// String returns the string representation of the output format.
func (f Format) String() string {
	return string(f)
}

// Valid checks if the output format is valid.
func (f Format) Valid() bool {
	switch f {
	case FormatTable, FormatYAML, FormatJSON:
		return true
	default:
		return false
	}
}

// ParseFormat parses a string into a Format.
// The boolean result reports whether the string named a known format.
func ParseFormat(s string) (Format, bool) {
	switch strings.ToLower(s) {
	case "table", "":
		return FormatTable, true
	case "yaml", "yml":
		return FormatYAML, true
	case "json":
		return FormatJSON, true
	default:
		return Format(s), false
	}
}

// ValidFormats returns a slice of valid output format strings.
func ValidFormats() []string {
	return []string{"table", "yaml", "json"}
}

// WriteStructured encodes v to w as YAML or JSON.
func WriteStructured(w io.Writer, format Format, v any) error {
	switch format {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return err
		}
		return enc.Close()
	default:
		return fmt.Errorf("format %s not supported for structured output", format)
	}
}
