package toolchain

import (
	"encoding/json"

	"github.com/opmodel/dukbin/internal/engine"
)

// Descriptor is the node-gyp build descriptor (binding.gyp).
type Descriptor struct {
	Targets []Target `json:"targets"`
}

// Target is one build target of a Descriptor.
type Target struct {
	TargetName string   `json:"target_name"`
	Type       string   `json:"type"`
	Sources    []string `json:"sources"`
}

// NewDescriptor returns the descriptor for the generated program: one
// executable target compiling the program, the engine core sources and
// every staged native source.
func NewDescriptor(staged []string) Descriptor {
	sources := append([]string{engine.ProgramName}, engine.CoreSources()...)
	sources = append(sources, staged...)
	return Descriptor{
		Targets: []Target{{
			TargetName: engine.TargetName,
			Type:       "executable",
			Sources:    sources,
		}},
	}
}

// Marshal encodes the descriptor. JSON is a valid gyp file.
func (d Descriptor) Marshal() ([]byte, error) {
	data, err := json.MarshalIndent(d, "", "  ")
	if err != nil {
		return nil, err
	}
	return append(data, '\n'), nil
}
