package cmdutil

import (
	"errors"
	"fmt"
	"sort"

	"github.com/opmodel/dukbin/internal/bundle"
	oerrors "github.com/opmodel/dukbin/internal/errors"
	"github.com/opmodel/dukbin/internal/output"
)

// PrintPipelineError prints a pipeline error in a user-friendly format.
// Toolchain failures are followed by the captured toolchain output;
// structured errors print their details block.
func PrintPipelineError(msg string, err error) {
	var detailErr *oerrors.DetailError
	var toolchainErr *oerrors.ToolchainError
	var conflictErr *oerrors.NamingConflictError
	var transformErr *oerrors.TransformError

	switch {
	case errors.As(err, &transformErr):
		output.Error(msg)
		output.Error(output.FormatFileLine(transformErr.FilePath, output.StatusFailed), "error", transformErr.Cause)
	case errors.As(err, &toolchainErr):
		output.Error(msg, "command", toolchainErr.Command, "error", toolchainErr.Cause)
		if toolchainErr.Output != "" {
			output.Details(toolchainErr.Output)
		}
	case errors.As(err, &conflictErr):
		output.Error(msg, "file", conflictErr.Path)
		output.Details(conflictErr.Error())
	case errors.As(err, &detailErr):
		output.Error(fmt.Sprintf("%s: %s", msg, detailErr.Type))
		output.Details(detailErr.Error())
	default:
		output.Error(msg, "error", err)
	}
}

// ExitWith wraps err in an ExitError carrying its exit code, marked as
// already printed.
func ExitWith(err error) error {
	if err == nil {
		return nil
	}
	var exitErr *oerrors.ExitError
	if errors.As(err, &exitErr) {
		return err
	}
	return &oerrors.ExitError{Code: oerrors.ExitCodeFromError(err), Err: err, Printed: true}
}

// WriteBundleLines logs one styled line per module, index and native file.
func WriteBundleLines(b *bundle.Bundle) {
	for _, m := range b.Modules {
		output.Info(output.FormatFileLine(m.RelativePath, output.StatusOK))
	}
	for _, dir := range b.Indexes.Keys() {
		target, _ := b.Indexes.Get(dir)
		output.Debug(output.FormatFileLine(dir+"/", output.StatusIndexed), "module", target)
	}
	for _, src := range b.Natives.StagedSources {
		output.Info(output.FormatFileLine(src, output.StatusStaged))
	}
	for _, h := range b.Natives.Headers {
		output.Debug(output.FormatFileLine(h, output.StatusStaged))
	}
}

// Report is the structured description of a bundle printed by inspect.
type Report struct {
	Entry     ReportModule          `json:"entry" yaml:"entry"`
	Modules   []ReportModule        `json:"modules" yaml:"modules"`
	Indexes   map[string]string     `json:"indexes" yaml:"indexes"`
	Natives   bundle.NativeManifest `json:"natives" yaml:"natives"`
	TableKeys int                   `json:"tableKeys" yaml:"tableKeys"`
}

// ReportModule describes one transformed script.
type ReportModule struct {
	Path  string `json:"path" yaml:"path"`
	Bytes int    `json:"bytes" yaml:"bytes"`
}

// NewReport summarizes b. entryPath names the entry script.
func NewReport(entryPath string, b *bundle.Bundle) Report {
	r := Report{
		Entry:     ReportModule{Path: entryPath, Bytes: len(b.Entry)},
		Modules:   make([]ReportModule, 0, len(b.Modules)),
		Indexes:   make(map[string]string, b.Indexes.Len()),
		Natives:   b.Natives,
		TableKeys: b.ModuleTable.Len(),
	}
	for _, m := range b.Modules {
		r.Modules = append(r.Modules, ReportModule{Path: m.RelativePath, Bytes: len(m.CompactSource)})
	}
	for _, dir := range b.Indexes.Keys() {
		r.Indexes[dir], _ = b.Indexes.Get(dir)
	}
	return r
}

// Rows returns the report as kind/path/detail rows for table output.
func (r Report) Rows() [][]string {
	rows := [][]string{{"entry", r.Entry.Path, fmt.Sprintf("%d bytes", r.Entry.Bytes)}}
	for _, m := range r.Modules {
		rows = append(rows, []string{"module", m.Path, fmt.Sprintf("%d bytes", m.Bytes)})
	}

	dirs := make([]string, 0, len(r.Indexes))
	for dir := range r.Indexes {
		dirs = append(dirs, dir)
	}
	sort.Strings(dirs)
	for _, dir := range dirs {
		rows = append(rows, []string{"index", dir, "-> " + r.Indexes[dir]})
	}

	for _, src := range r.Natives.StagedSources {
		rows = append(rows, []string{"native", src, "source"})
	}
	for _, h := range r.Natives.Headers {
		rows = append(rows, []string{"native", h, "header"})
	}
	for _, name := range r.Natives.FunctionNames {
		rows = append(rows, []string{"function", name, "global"})
	}
	return rows
}
