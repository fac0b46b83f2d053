// Package appdir provides names and paths for the todue state directory.
package appdir

import (
	"os"
	"path/filepath"
)

const (
	// Name is the application directory name.
	Name = "todue"

	// ConfigFile is the config file name.
	ConfigFile = "todue.toml"

	// PrefsFile is the preference file used by the file backend.
	PrefsFile = "prefs.toml"

	// PrefsDB is the preference database used by the sqlite backend.
	PrefsDB = "prefs.db"

	// LogsDir is the per-run log directory name.
	LogsDir = "logs"
)

// DefaultDir returns $XDG_CONFIG_HOME/todue, falling back to
// $HOME/.config/todue and finally ./.todue.
func DefaultDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, Name)
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "." + Name
	}
	return filepath.Join(home, ".config", Name)
}

// ConfigPath returns the config file path within dir.
func ConfigPath(dir string) string {
	return filepath.Join(dir, ConfigFile)
}

// PrefsPath returns the preference store path within dir for a kv backend.
func PrefsPath(dir, backend string) string {
	if backend == "sqlite" {
		return filepath.Join(dir, PrefsDB)
	}
	return filepath.Join(dir, PrefsFile)
}

// LogDir returns the log directory within dir.
func LogDir(dir string) string {
	return filepath.Join(dir, LogsDir)
}
