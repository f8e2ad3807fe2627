package config

import (
	_ "embed"
	"fmt"
	"os"
	"strings"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	cueerrors "cuelang.org/go/cue/errors"
	"gopkg.in/yaml.v3"
)

//go:embed schema/config.cue
var configSchemaCUE []byte

// ValidationError represents a configuration validation error.
type ValidationError struct {
	Field   string
	Message string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidationErrors is a collection of validation errors.
type ValidationErrors []ValidationError

// Error implements the error interface.
func (e ValidationErrors) Error() string {
	if len(e) == 0 {
		return "no validation errors"
	}

	var sb strings.Builder
	sb.WriteString("config validation failed:\n")
	for _, err := range e {
		sb.WriteString(fmt.Sprintf("  %s: %s\n", err.Field, err.Message))
	}
	return sb.String()
}

// Validator validates configuration against the embedded CUE schema.
type Validator struct {
	ctx    *cue.Context
	schema cue.Value
}

// NewValidator creates a new configuration validator.
func NewValidator() (*Validator, error) {
	ctx := cuecontext.New()

	schema := ctx.CompileBytes(configSchemaCUE)
	if schema.Err() != nil {
		return nil, fmt.Errorf("compiling schema: %w", schema.Err())
	}

	def := schema.LookupPath(cue.ParsePath("#Config"))
	if !def.Exists() {
		return nil, fmt.Errorf("schema has no #Config definition")
	}

	return &Validator{ctx: ctx, schema: def}, nil
}

// Validate validates the given configuration.
func (v *Validator) Validate(cfg *Config) error {
	return v.validateValue(v.ctx.Encode(cfg))
}

// ValidateFile validates a YAML configuration file. Unknown keys are rejected
// because #Config is closed.
func (v *Validator) ValidateFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading config file: %w", err)
	}

	var raw map[string]any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return ValidationErrors{{Field: "(file)", Message: err.Error()}}
	}
	if raw == nil {
		raw = map[string]any{}
	}

	return v.validateValue(v.ctx.Encode(raw))
}

func (v *Validator) validateValue(val cue.Value) error {
	if val.Err() != nil {
		return fmt.Errorf("encoding config: %w", val.Err())
	}

	unified := v.schema.Unify(val)
	err := unified.Validate(cue.Concrete(true))
	if err == nil {
		return nil
	}

	var errs ValidationErrors
	for _, e := range cueerrors.Errors(err) {
		field := strings.Join(e.Path(), ".")
		if field == "" {
			field = "(root)"
		}
		format, args := e.Msg()
		errs = append(errs, ValidationError{Field: field, Message: fmt.Sprintf(format, args...)})
	}
	return errs
}
