package errors

import (
	"fmt"
	"strings"
)

// TransformError indicates a script module could not be transformed.
type TransformError struct {
	// FilePath is the path of the module that failed.
	FilePath string

	// Cause is the underlying transformer error.
	Cause error
}

func (e *TransformError) Error() string {
	return fmt.Sprintf("transforming %s: %v", e.FilePath, e.Cause)
}

// Unwrap exposes both the ErrTransform sentinel and the cause.
func (e *TransformError) Unwrap() []error {
	return []error{ErrTransform, e.Cause}
}

// NamingConflictError indicates a native file uses a reserved engine filename.
type NamingConflictError struct {
	// FileName is the offending base name.
	FileName string

	// Path is the path relative to the source root.
	Path string

	// Header is true when the file is a native header.
	Header bool

	// Reserved describes the reserved names for the file's kind.
	Reserved []string
}

func (e *NamingConflictError) Error() string {
	kind := "C/C++ source"
	if e.Header {
		kind = "C/C++ header"
	}
	return fmt.Sprintf("invalid %s filename %q (%s): the name can not be one of [%s] or begin with the %q prefix",
		kind, e.FileName, e.Path, strings.Join(e.Reserved, ", "), "duk_")
}

// Unwrap returns the ErrNamingConflict sentinel.
func (e *NamingConflictError) Unwrap() error {
	return ErrNamingConflict
}

// RegistryError indicates a function registry line is not a valid identifier.
type RegistryError struct {
	// Path is the registry file path relative to the source root.
	Path string

	// Line is the 1-based line number.
	Line int

	// Name is the rejected text.
	Name string
}

func (e *RegistryError) Error() string {
	return fmt.Sprintf("%s:%d: %q is not a valid native function identifier", e.Path, e.Line, e.Name)
}

// Unwrap returns the ErrNamingConflict sentinel.
func (e *RegistryError) Unwrap() error {
	return ErrNamingConflict
}

// ResolutionError indicates a directory failed to resolve for a reason other
// than having no entry point.
type ResolutionError struct {
	// Dir is the directory path relative to the source root.
	Dir string

	// Cause is the underlying error.
	Cause error
}

func (e *ResolutionError) Error() string {
	return fmt.Sprintf("resolving directory %s: %v", e.Dir, e.Cause)
}

// Unwrap exposes both the ErrResolution sentinel and the cause.
func (e *ResolutionError) Unwrap() []error {
	return []error{ErrResolution, e.Cause}
}

// ToolchainError indicates the external native toolchain failed.
type ToolchainError struct {
	// Command is the toolchain command line that was run.
	Command string

	// Output is the captured combined stdout/stderr of the toolchain.
	Output string

	// Cause is the underlying process error.
	Cause error
}

func (e *ToolchainError) Error() string {
	return fmt.Sprintf("toolchain %q failed: %v", e.Command, e.Cause)
}

// Unwrap exposes both the ErrToolchain sentinel and the cause.
func (e *ToolchainError) Unwrap() []error {
	return []error{ErrToolchain, e.Cause}
}

// StageError indicates a native file could not be copied into the build workspace.
type StageError struct {
	// Path is the file being staged, relative to the source root.
	Path string

	// Cause is the underlying I/O error.
	Cause error
}

func (e *StageError) Error() string {
	return fmt.Sprintf("staging %s: %v", e.Path, e.Cause)
}

// Unwrap returns the underlying I/O error.
func (e *StageError) Unwrap() error {
	return e.Cause
}
