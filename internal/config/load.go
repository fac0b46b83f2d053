package config

import (
	"bytes"
	"errors"
	"flag"
	"fmt"

	"github.com/BurntSushi/toml"

	"github.com/nibzard/todue/internal/appdir"
	"github.com/nibzard/todue/internal/utils"
)

// Load loads configuration from multiple sources in priority order:
// 1. Defaults
// 2. User config file
// 3. Project config file (todue.toml or .todue.toml in current directory)
// 4. Environment variables
// 5. CLI flags
func Load(fs *flag.FlagSet, args []string) (*Config, error) {
	return load(fs, args, findUserConfigFile(), findProjectConfigFile())
}

func load(fs *flag.FlagSet, args []string, files ...string) (*Config, error) {
	cfg := &Config{}

	// 1. Set defaults
	setDefaults(cfg)

	// 2-3. Config files, later files override earlier ones
	for _, path := range files {
		if path == "" {
			continue
		}
		if err := loadConfigFile(cfg, path); err != nil {
			return nil, fmt.Errorf("loading config file %s: %w", path, err)
		}
		cfg.Files = append(cfg.Files, path)
	}

	// 4. Override from environment
	loadFromEnv(cfg)

	// 5. Parse CLI flags (they override everything)
	if err := parseFlags(cfg, fs, args); err != nil {
		return nil, fmt.Errorf("parsing flags: %w", err)
	}

	// 6. Compute derived values
	finalizeConfig(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// loadConfigFile validates and then decodes a TOML config file into cfg.
// Keys absent from the file leave cfg untouched.
func loadConfigFile(cfg *Config, path string) error {
	violations, err := ValidateFile(path)
	if err != nil {
		return err
	}
	if len(violations) > 0 {
		return errors.Join(violations...)
	}
	_, err = toml.DecodeFile(path, cfg)
	return err
}

// finalizeConfig normalizes names and fills in paths derived from StateDir.
func finalizeConfig(cfg *Config) {
	cfg.PrefBackend = utils.NormalizeName(cfg.PrefBackend)
	cfg.LogLevel = utils.NormalizeName(cfg.LogLevel)
	cfg.LogFormat = utils.NormalizeName(cfg.LogFormat)

	if cfg.StateDir == "" {
		cfg.StateDir = appdir.DefaultDir()
	}
	cfg.StateDir = expandPath(cfg.StateDir)

	if cfg.PrefFile == "" {
		cfg.PrefFile = appdir.PrefsPath(cfg.StateDir, cfg.PrefBackend)
	}
	cfg.PrefFile = expandPath(cfg.PrefFile)

	if cfg.LogDir == "" {
		cfg.LogDir = appdir.LogDir(cfg.StateDir)
	}
	cfg.LogDir = expandPath(cfg.LogDir)
}

// TOML renders the effective configuration.
func (c *Config) TOML() (string, error) {
	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(c); err != nil {
		return "", fmt.Errorf("encode config: %w", err)
	}
	return buf.String(), nil
}
