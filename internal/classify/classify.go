// Package classify discovers a source tree and tags every entry with the
// pipeline step that consumes it.
package classify

import (
	"path"

	"github.com/opmodel/dukbin/internal/engine"
	oerrors "github.com/opmodel/dukbin/internal/errors"
)

// Kind is the classification of a walked filesystem entry.
type Kind int

const (
	// KindSkip marks entries no step consumes.
	KindSkip Kind = iota

	// KindScript marks JavaScript modules.
	KindScript

	// KindNativeSource marks C++ translation units.
	KindNativeSource

	// KindNativeHeader marks C/C++ headers.
	KindNativeHeader

	// KindFunctionRegistry marks the native function list file.
	KindFunctionRegistry

	// KindDirectory marks directories below the walk root.
	KindDirectory
)

// RegistryFileName is the exact name of a native function registry file.
const RegistryFileName = "cfunctions"

var kindNames = map[Kind]string{
	KindSkip:             "skip",
	KindScript:           "script",
	KindNativeSource:     "native-source",
	KindNativeHeader:     "native-header",
	KindFunctionRegistry: "function-registry",
	KindDirectory:        "directory",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return "unknown"
}

// Native sources are compiled as C++ next to the generated program, which
// declares registered functions with C++ linkage. Plain C sources are not
// staged.
var (
	sourceExts = map[string]bool{".cc": true, ".cpp": true, ".cxx": true}
	headerExts = map[string]bool{".h": true, ".hh": true, ".hpp": true}
)

// Classify returns the kind of a directory entry by name.
func Classify(name string, isDir bool) Kind {
	if isDir {
		return KindDirectory
	}
	if name == RegistryFileName {
		return KindFunctionRegistry
	}

	ext := path.Ext(name)
	switch {
	case ext == ".js":
		return KindScript
	case sourceExts[ext]:
		return KindNativeSource
	case headerExts[ext]:
		return KindNativeHeader
	default:
		return KindSkip
	}
}

// CheckReserved rejects native files whose name collides with the engine.
// rel is the "/"-separated path relative to the source root.
func CheckReserved(kind Kind, rel string) error {
	if kind != KindNativeSource && kind != KindNativeHeader {
		return nil
	}

	name := path.Base(rel)
	header := kind == KindNativeHeader
	if !engine.IsReserved(name, header) {
		return nil
	}

	reserved := engine.ReservedSources()
	if header {
		reserved = engine.ReservedHeaders()
	}
	return &oerrors.NamingConflictError{
		FileName: name,
		Path:     rel,
		Header:   header,
		Reserved: reserved,
	}
}
