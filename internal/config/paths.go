package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/nibzard/todue/internal/appdir"
)

// expandPath expands environment variables and a leading ~ in paths.
func expandPath(p string) string {
	if p == "" {
		return p
	}

	expanded := os.ExpandEnv(p)
	if expanded == "~" || strings.HasPrefix(expanded, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return expanded
		}
		return filepath.Join(home, strings.TrimPrefix(expanded[1:], "/"))
	}
	return expanded
}

// findProjectConfigFile looks for a config file in the current directory.
func findProjectConfigFile() string {
	for _, name := range []string{"todue.toml", ".todue.toml"} {
		if _, err := os.Stat(name); err == nil {
			return name
		}
	}
	return ""
}

// findUserConfigFile looks for the user-level config file.
func findUserConfigFile() string {
	path := appdir.ConfigPath(appdir.DefaultDir())
	if _, err := os.Stat(path); err == nil {
		return path
	}
	return ""
}
