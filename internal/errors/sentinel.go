package errors

import "errors"

// Sentinel errors for known conditions.
var (
	// ErrUsage indicates the CLI was invoked with missing or invalid arguments.
	ErrUsage = errors.New("usage error")

	// ErrTransform indicates a script module failed to transform.
	ErrTransform = errors.New("transform error")

	// ErrNamingConflict indicates a native file collides with a reserved engine name.
	ErrNamingConflict = errors.New("naming conflict")

	// ErrResolution indicates a directory could not be resolved for a reason other
	// than the absence of an entry point.
	ErrResolution = errors.New("resolution error")

	// ErrToolchain indicates the external native toolchain failed.
	ErrToolchain = errors.New("toolchain error")

	// ErrConfig indicates invalid configuration or a missing engine asset.
	ErrConfig = errors.New("configuration error")

	// ErrTemplate indicates the embedded program template is malformed.
	ErrTemplate = errors.New("template error")

	// ErrNotFound indicates a file or directory was not found.
	ErrNotFound = errors.New("not found")
)
