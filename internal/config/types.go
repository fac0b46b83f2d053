package config

import (
	"fmt"
	"time"
)

// Default values.
const (
	DefaultPrefBackend   = "file"
	DefaultSweepInterval = time.Second
	DefaultDateFormat    = "Jan 2, 2006"
	DefaultLogLevel      = "info"
	DefaultLogFormat     = "text"
)

// Config holds the full configuration for todue.
type Config struct {
	// Paths
	StateDir string `toml:"state_dir"`
	PrefFile string `toml:"pref_file"`
	LogDir   string `toml:"log_dir"`

	// Preference persistence backend: file, sqlite or memory
	PrefBackend string `toml:"pref_backend"`

	// Expiry sweep cadence
	SweepInterval Duration `toml:"sweep_interval"`

	// Display layout for due dates
	DateFormat string `toml:"date_format"`

	// Logging configuration
	LogLevel      string `toml:"log_level"`
	LogFormat     string `toml:"log_format"`
	LogTimestamps bool   `toml:"log_timestamps"`
	LogCaller     bool   `toml:"log_caller"`

	// Config files that were applied, lowest priority first (computed)
	Files []string `toml:"-"`
}

// Duration is a time.Duration written as a Go duration string ("1s", "500ms")
// in TOML and on the command line.
type Duration time.Duration

// D returns d as a time.Duration.
func (d Duration) D() time.Duration {
	return time.Duration(d)
}

func (d Duration) String() string {
	return time.Duration(d).String()
}

// Set implements flag.Value.
func (d *Duration) Set(s string) error {
	v, err := time.ParseDuration(s)
	if err != nil {
		return err
	}
	if v <= 0 {
		return fmt.Errorf("duration must be positive, got %s", s)
	}
	*d = Duration(v)
	return nil
}

// MarshalText implements encoding.TextMarshaler.
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Duration) UnmarshalText(b []byte) error {
	return d.Set(string(b))
}

func setDefaults(cfg *Config) {
	cfg.PrefBackend = DefaultPrefBackend
	cfg.SweepInterval = Duration(DefaultSweepInterval)
	cfg.DateFormat = DefaultDateFormat
	cfg.LogLevel = DefaultLogLevel
	cfg.LogFormat = DefaultLogFormat
	cfg.LogTimestamps = true
}
