// Package engine describes the Duktape engine assets the generated program is
// compiled against, and embeds the program template.
package engine

import (
	_ "embed"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	oerrors "github.com/opmodel/dukbin/internal/errors"
)

//go:embed template/duk_build.cpp
var programTemplate string

const (
	// ReservedPrefix is the filename prefix reserved for engine files.
	ReservedPrefix = "duk_"

	// ProgramName is the filename of the synthesized program in the workspace.
	ProgramName = "duk_build.cpp"

	// DescriptorName is the filename of the build descriptor in the workspace.
	DescriptorName = "binding.gyp"

	// TargetName is the build target name in the descriptor.
	TargetName = "build"
)

// Markers substituted by the code synthesizer. Each appears exactly once in
// the program template.
const (
	MarkerEntry         = `"@@ENTRY@@"`
	MarkerModules       = "/*@@MODULES@@*/"
	MarkerIndexes       = "/*@@INDEXES@@*/"
	MarkerDeclarations  = "/*@@DECLARATIONS@@*/"
	MarkerRegistrations = "/*@@REGISTRATIONS@@*/"
)

var (
	coreSources = []string{"duktape.c", "duk_console.c", "duk_module_node.c"}

	headers = []string{"duktape.h", "duk_config.h", "duk_console.h", "duk_module_node.h"}

	// injected next to every staged native source so fragments can include the engine API.
	injectedHeaders = []string{"duktape.h", "duk_config.h"}
)

// Template returns the embedded program template.
func Template() string {
	return programTemplate
}

// Markers returns every template marker in substitution order.
func Markers() []string {
	return []string{MarkerEntry, MarkerModules, MarkerIndexes, MarkerDeclarations, MarkerRegistrations}
}

// CoreSources returns the engine sources every build compiles, in descriptor order.
func CoreSources() []string {
	return slices.Clone(coreSources)
}

// Headers returns the engine headers.
func Headers() []string {
	return slices.Clone(headers)
}

// InjectedHeaders returns the headers copied next to each staged native source.
func InjectedHeaders() []string {
	return slices.Clone(injectedHeaders)
}

// Files returns every file an engine directory must provide.
func Files() []string {
	return append(CoreSources(), headers...)
}

// ReservedSources returns the exact native source filenames user code may not use.
func ReservedSources() []string {
	names := []string{"duktape.c", "duktape.cpp"}
	for _, name := range append(coreSources, ProgramName) {
		if !slices.Contains(names, name) {
			names = append(names, name)
		}
	}
	return names
}

// ReservedHeaders returns the exact native header filenames user code may not use.
func ReservedHeaders() []string {
	names := []string{"duktape.h"}
	for _, name := range headers {
		if !slices.Contains(names, name) {
			names = append(names, name)
		}
	}
	return names
}

// IsReserved reports whether name collides with the engine's namespace.
func IsReserved(name string, header bool) bool {
	if strings.HasPrefix(name, ReservedPrefix) {
		return true
	}
	if header {
		return slices.Contains(ReservedHeaders(), name)
	}
	return slices.Contains(ReservedSources(), name)
}

// CheckDir verifies that dir contains every engine file.
func CheckDir(dir string) error {
	info, err := os.Stat(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return oerrors.NewConfigError(
				fmt.Sprintf("engine directory %s does not exist", dir),
				dir,
				"Set --engine-dir or DUKBIN_ENGINE_DIR to a directory containing the Duktape sources",
			)
		}
		return fmt.Errorf("checking engine directory: %w", err)
	}
	if !info.IsDir() {
		return oerrors.NewConfigError(
			fmt.Sprintf("engine path %s is not a directory", dir),
			dir,
			"",
		)
	}

	var missing []string
	for _, name := range Files() {
		if _, err := os.Stat(filepath.Join(dir, name)); err != nil {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		return &oerrors.DetailError{
			Type:     "invalid configuration",
			Message:  "engine directory is incomplete",
			Location: dir,
			Context:  map[string]string{"missing": strings.Join(missing, ", ")},
			Hint:     "Copy duktape.c, duktape.h, duk_config.h and the console and module-node extras into the engine directory",
			Cause:    oerrors.ErrConfig,
		}
	}
	return nil
}
