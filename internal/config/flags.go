package config

import "flag"

// parseFlags defines the global flags on fs and parses args.
func parseFlags(cfg *Config, fs *flag.FlagSet, args []string) error {
	if fs == nil {
		fs = flag.NewFlagSet("todue", flag.ContinueOnError)
	}

	// Paths
	fs.StringVar(&cfg.StateDir, "state-dir", cfg.StateDir, "State directory for preferences and logs")
	fs.StringVar(&cfg.PrefFile, "pref-file", cfg.PrefFile, "Preference store path")
	fs.StringVar(&cfg.LogDir, "log-dir", cfg.LogDir, "Log directory")

	// Behaviour
	fs.StringVar(&cfg.PrefBackend, "pref-backend", cfg.PrefBackend, "Preference backend (file, sqlite, memory)")
	fs.Var(&cfg.SweepInterval, "sweep-interval", "Expiry sweep interval (e.g. 1s, 500ms)")
	fs.StringVar(&cfg.DateFormat, "date-format", cfg.DateFormat, "Due date display layout (Go time layout)")

	// Logging
	fs.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "Log level (debug, info, warn, error)")
	fs.StringVar(&cfg.LogFormat, "log-format", cfg.LogFormat, "Log format (text, json, logfmt)")
	fs.BoolVar(&cfg.LogTimestamps, "log-timestamps", cfg.LogTimestamps, "Show timestamps in logs")
	fs.BoolVar(&cfg.LogCaller, "log-caller", cfg.LogCaller, "Show caller location in logs")

	return fs.Parse(args)
}
