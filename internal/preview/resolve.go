package preview

import (
	"strings"

	"github.com/opmodel/dukbin/internal/bundle"
)

// The functions below mirror the resolve callback of the generated program.

func isLocalPath(p string) bool {
	return (strings.HasPrefix(p, "./") && len(p) > 2) || (strings.HasPrefix(p, "../") && len(p) > 3)
}

func nodePath(p string) string {
	if isLocalPath(p) || (strings.HasPrefix(p, "node_modules/") && len(p) > len("node_modules/")) {
		return p
	}
	return "node_modules/" + p
}

func normalizePath(p string) string {
	var out []string
	for _, seg := range strings.Split(p, "/") {
		switch {
		case seg == "..":
			if len(out) > 0 && out[len(out)-1] != ".." {
				out = out[:len(out)-1]
			} else {
				out = append(out, seg)
			}
		case seg != "" && seg != ".":
			out = append(out, seg)
		}
	}
	return strings.Join(out, "/")
}

func dirPath(id string) string {
	i := strings.LastIndexByte(id, '/')
	if i < 0 {
		return ""
	}
	return id[:i]
}

// ResolveID returns the module table key a require of requested from the
// module parent loads. parent is "" for the entry script.
func ResolveID(requested, parent string, indexes *bundle.IndexTable) string {
	joined := nodePath(requested)
	if isLocalPath(requested) {
		if dir := dirPath(parent); dir != "" {
			joined = dir + "/" + requested
		} else {
			joined = requested
		}
	}

	id := normalizePath(joined)
	if !strings.HasSuffix(id, ".js") && indexes != nil {
		if target, ok := indexes.Get(id); ok {
			return target
		}
	}
	return id
}
