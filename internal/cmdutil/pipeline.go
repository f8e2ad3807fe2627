package cmdutil

import (
	"fmt"

	"github.com/opmodel/dukbin/internal/cmdtypes"
	oerrors "github.com/opmodel/dukbin/internal/errors"
	"github.com/opmodel/dukbin/internal/pipeline"
)

// PipelineOptions assembles pipeline options from the resolved global
// configuration.
func PipelineOptions(cfg *cmdtypes.GlobalConfig, input, out string) (pipeline.Options, error) {
	if cfg == nil || cfg.Resolved == nil {
		return pipeline.Options{}, &oerrors.ExitError{
			Code: oerrors.ExitGeneralError,
			Err:  fmt.Errorf("configuration not loaded"),
		}
	}

	r := cfg.Resolved
	return pipeline.Options{
		Input:             input,
		Output:            out,
		EngineDir:         r.EngineDir.Value,
		WorkDir:           r.WorkDir.Value,
		Target:            r.Target.Value,
		Exclude:           r.Exclude,
		ToolchainCommand:  r.ToolchainCommand.Value,
		ToolchainArtifact: r.ToolchainArtifact.Value,
	}, nil
}
