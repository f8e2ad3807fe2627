package errors

import (
	"errors"
	"fmt"
)

// Exit codes returned by the dukbin binary.
const (
	// ExitSuccess indicates the command completed successfully.
	ExitSuccess = 0

	// ExitGeneralError indicates an unspecified or internal error occurred.
	ExitGeneralError = 1

	// ExitUsageError indicates missing or invalid CLI arguments.
	ExitUsageError = 2

	// ExitTransformError indicates a script module failed to transform.
	ExitTransformError = 3

	// ExitNamingConflict indicates a reserved native filename was used.
	ExitNamingConflict = 4

	// ExitResolutionError indicates a directory could not be resolved.
	ExitResolutionError = 5

	// ExitToolchainError indicates the native toolchain failed.
	ExitToolchainError = 6

	// ExitConfigError indicates invalid configuration or missing engine files.
	ExitConfigError = 7
)

// ExitError wraps an error with an exit code.
type ExitError struct {
	// Code is the process exit code.
	Code int

	// Err is the underlying error.
	Err error

	// Printed is set once the command layer has already shown the error.
	Printed bool
}

// Error implements the error interface.
func (e *ExitError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("exit status %d", e.Code)
	}
	return e.Err.Error()
}

// Unwrap returns the wrapped error.
func (e *ExitError) Unwrap() error {
	return e.Err
}

// ExitCodeName returns the name of the exit code.
func ExitCodeName(code int) string {
	switch code {
	case ExitSuccess:
		return "Success"
	case ExitGeneralError:
		return "General Error"
	case ExitUsageError:
		return "Usage Error"
	case ExitTransformError:
		return "Transform Error"
	case ExitNamingConflict:
		return "Naming Conflict"
	case ExitResolutionError:
		return "Resolution Error"
	case ExitToolchainError:
		return "Toolchain Error"
	case ExitConfigError:
		return "Configuration Error"
	default:
		return "Unknown"
	}
}

// ExitCodeFromError determines the appropriate exit code for an error.
func ExitCodeFromError(err error) int {
	if err == nil {
		return ExitSuccess
	}

	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}

	switch {
	case errors.Is(err, ErrUsage):
		return ExitUsageError
	case errors.Is(err, ErrTransform):
		return ExitTransformError
	case errors.Is(err, ErrNamingConflict):
		return ExitNamingConflict
	case errors.Is(err, ErrResolution):
		return ExitResolutionError
	case errors.Is(err, ErrToolchain):
		return ExitToolchainError
	case errors.Is(err, ErrConfig), errors.Is(err, ErrNotFound):
		return ExitConfigError
	default:
		return ExitGeneralError
	}
}
