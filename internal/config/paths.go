package config

import (
	"os"
	"path/filepath"
)

// Paths contains standard filesystem paths for dukbin.
type Paths struct {
	// ConfigFile is the path to the config file (~/.dukbin/config.yaml).
	ConfigFile string

	// EngineDir is the default engine directory (~/.dukbin/engine).
	EngineDir string

	// HomeDir is the dukbin home directory (~/.dukbin).
	HomeDir string
}

// DefaultPaths returns the default paths for dukbin.
// DUKBIN_HOME overrides the home directory.
func DefaultPaths() (*Paths, error) {
	home := os.Getenv("DUKBIN_HOME")
	if home == "" {
		userHome, err := os.UserHomeDir()
		if err != nil {
			return nil, err
		}
		home = filepath.Join(userHome, ".dukbin")
	}

	return &Paths{
		ConfigFile: filepath.Join(home, "config.yaml"),
		EngineDir:  filepath.Join(home, "engine"),
		HomeDir:    home,
	}, nil
}

// ExpandPath expands ~ to the user's home directory.
func ExpandPath(path string) (string, error) {
	if len(path) == 0 {
		return path, nil
	}

	if path[0] != '~' {
		return path, nil
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}

	if len(path) == 1 {
		return homeDir, nil
	}

	// Handle ~/path/to/something
	if path[1] == '/' || path[1] == filepath.Separator {
		return filepath.Join(homeDir, path[2:]), nil
	}

	// Handle ~username (not supported, return as-is)
	return path, nil
}
