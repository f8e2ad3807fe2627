// Package cmdtypes provides shared types for the cmd package and its sub-packages.
// It is separate from internal/cmd to avoid import cycles between internal/cmd
// and its sub-packages (internal/cmd/config).
package cmdtypes

import (
	"github.com/opmodel/dukbin/internal/config"
	oerrors "github.com/opmodel/dukbin/internal/errors"
)

// GlobalConfig holds CLI-wide configuration resolved during PersistentPreRunE.
// It is populated once at startup and passed explicitly into every sub-command
// constructor.
type GlobalConfig struct {
	// Config is the loaded config file. Empty when no file exists.
	Config *config.Config

	// Resolved holds every value after flag > env > config > default resolution.
	Resolved *config.ResolvedConfig

	ConfigPath string // resolved --config path
	Verbose    bool
}

// Exit codes: aliases to internal/errors constants.
const (
	ExitSuccess         = oerrors.ExitSuccess
	ExitGeneralError    = oerrors.ExitGeneralError
	ExitUsageError      = oerrors.ExitUsageError
	ExitTransformError  = oerrors.ExitTransformError
	ExitNamingConflict  = oerrors.ExitNamingConflict
	ExitResolutionError = oerrors.ExitResolutionError
	ExitToolchainError  = oerrors.ExitToolchainError
	ExitConfigError     = oerrors.ExitConfigError
)

// ExitError is a type alias to internal/errors.ExitError.
type ExitError = oerrors.ExitError
