// Package version provides version information for the dukbin CLI.
package version

import (
	"fmt"
	"runtime"
	"runtime/debug"
)

// Build-time variables set via ldflags.
var (
	// Version is the CLI version (set via ldflags).
	Version = "v0.0.0-dev"

	// GitCommit is the git commit hash.
	GitCommit = "unknown"

	// BuildDate is the build timestamp.
	BuildDate = "unknown"
)

// Module paths of the embedded script tooling.
const (
	ESBuildModule = "github.com/evanw/esbuild"
	GojaModule    = "github.com/dop251/goja"
)

// Info contains version information.
type Info struct {
	// Version is the CLI version (set via ldflags).
	Version string `json:"version" yaml:"version"`

	// GitCommit is the git commit hash.
	GitCommit string `json:"gitCommit" yaml:"gitCommit"`

	// BuildDate is the build timestamp.
	BuildDate string `json:"buildDate" yaml:"buildDate"`

	// GoVersion is the Go version used to build.
	GoVersion string `json:"goVersion" yaml:"goVersion"`

	// ESBuildVersion is the version of the embedded script transformer.
	ESBuildVersion string `json:"esbuildVersion" yaml:"esbuildVersion"`

	// GojaVersion is the version of the preview runtime.
	GojaVersion string `json:"gojaVersion" yaml:"gojaVersion"`
}

// Get returns the current version information.
func Get() Info {
	deps := dependencyVersions()
	return Info{
		Version:        Version,
		GitCommit:      GitCommit,
		BuildDate:      BuildDate,
		GoVersion:      runtime.Version(),
		ESBuildVersion: versionOrUnknown(deps, ESBuildModule),
		GojaVersion:    versionOrUnknown(deps, GojaModule),
	}
}

// String returns a human-readable version string.
func (i Info) String() string {
	return fmt.Sprintf("dukbin:\n  Version:  %s\n  Build ID: %s/%s\n  Go:       %s\n\nScript tooling:\n  esbuild:  %s\n  goja:     %s",
		i.Version, i.BuildDate, i.GitCommit, i.GoVersion, i.ESBuildVersion, i.GojaVersion)
}

func dependencyVersions() map[string]string {
	versions := make(map[string]string)
	info, ok := debug.ReadBuildInfo()
	if !ok {
		return versions
	}
	for _, dep := range info.Deps {
		if dep.Replace != nil {
			versions[dep.Path] = dep.Replace.Version
			continue
		}
		versions[dep.Path] = dep.Version
	}
	return versions
}

func versionOrUnknown(versions map[string]string, module string) string {
	if v := versions[module]; v != "" {
		return v
	}
	return "unknown"
}
