// Package bundle collects transformed modules, directory indexes and native
// fragments into the tables embedded in the generated program.
package bundle

import (
	"sort"
	"strings"

	"github.com/opmodel/dukbin/internal/output"
)

// ModuleEntry is one transformed script module.
type ModuleEntry struct {
	// RelativePath is the "/"-separated path relative to the source root.
	RelativePath string `json:"relativePath" yaml:"relativePath"`

	// CompactSource is the transformed module source.
	CompactSource string `json:"-" yaml:"-"`
}

// ModuleTable maps a module key to its compact source. Every module is
// registered under its relative path and under the path without ".js".
type ModuleTable struct {
	entries map[string]string
}

// NewModuleTable returns an empty table.
func NewModuleTable() *ModuleTable {
	return &ModuleTable{entries: make(map[string]string)}
}

// Add registers a module under rel and under rel without its ".js" suffix.
// An existing key is overwritten.
func (t *ModuleTable) Add(rel, compact string) {
	t.set(rel, compact)
	if alias := strings.TrimSuffix(rel, ".js"); alias != rel {
		t.set(alias, compact)
	}
}

func (t *ModuleTable) set(key, value string) {
	if _, ok := t.entries[key]; ok {
		output.Debug("module key overwritten", "key", key)
	}
	t.entries[key] = value
}

// Get returns the compact source stored under key.
func (t *ModuleTable) Get(key string) (string, bool) {
	v, ok := t.entries[key]
	return v, ok
}

// Keys returns every key in sorted order.
func (t *ModuleTable) Keys() []string {
	return sortedKeys(t.entries)
}

// Len returns the number of keys.
func (t *ModuleTable) Len() int {
	return len(t.entries)
}

// IndexTable maps a directory to the module a directory require loads.
type IndexTable struct {
	entries map[string]string
}

// NewIndexTable returns an empty table.
func NewIndexTable() *IndexTable {
	return &IndexTable{entries: make(map[string]string)}
}

// Set records that dir resolves to module.
func (t *IndexTable) Set(dir, module string) {
	t.entries[dir] = module
}

// Get returns the module dir resolves to.
func (t *IndexTable) Get(dir string) (string, bool) {
	v, ok := t.entries[dir]
	return v, ok
}

// Keys returns every directory in sorted order.
func (t *IndexTable) Keys() []string {
	return sortedKeys(t.entries)
}

// Len returns the number of directories.
func (t *IndexTable) Len() int {
	return len(t.entries)
}

// NativeManifest lists the native fragments merged into the program.
type NativeManifest struct {
	// StagedSources are the native sources copied into the workspace, in walk order.
	StagedSources []string `json:"stagedSources" yaml:"stagedSources"`

	// Headers are the native headers copied into the workspace, in walk order.
	Headers []string `json:"headers" yaml:"headers"`

	// FunctionNames are the registered native functions, in registry order.
	FunctionNames []string `json:"functionNames" yaml:"functionNames"`
}

// Bundle is the complete, immutable input of code synthesis.
type Bundle struct {
	// Entry is the compact source of the entry script.
	Entry string

	// Modules are the transformed modules in walk order.
	Modules []ModuleEntry

	// ModuleTable holds every module key.
	ModuleTable *ModuleTable

	// Indexes holds every resolvable directory.
	Indexes *IndexTable

	// Natives lists native fragments and functions.
	Natives NativeManifest
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
