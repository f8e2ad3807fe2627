package cmd

import (
	"github.com/opmodel/dukbin/internal/cmdtypes"
	oerrors "github.com/opmodel/dukbin/internal/errors"
	"github.com/opmodel/dukbin/internal/output"
)

// usageExit reports a usage error and returns it as an already printed
// ExitError with the usage exit code.
func usageExit(msg string) error {
	err := oerrors.NewUsageError(msg, "Usage: dukbin <input> <output>")
	output.Details(err.Error())
	return &cmdtypes.ExitError{Code: cmdtypes.ExitUsageError, Err: err, Printed: true}
}
