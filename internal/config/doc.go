// Package config handles configuration loading and defaults.
//
// Configuration is loaded from multiple sources in priority order:
// 1. Built-in defaults
// 2. User config file ($XDG_CONFIG_HOME/todue/todue.toml or ~/.config/todue/todue.toml)
// 3. Project config file (todue.toml or .todue.toml in the current directory)
// 4. Environment variables (TODUE_*)
// 5. CLI flags
//
// Each level overrides the previous one, so CLI flags take precedence.
//
// Every config file is checked against an embedded JSON Schema before it is
// decoded. Unknown keys, unknown backends, log levels or log formats, and
// malformed durations are rejected with the offending key in the error.
//
// Example:
//
//	pref_backend   = "sqlite"
//	sweep_interval = "1s"
//	date_format    = "Jan 2, 2006"
//	log_level      = "debug"
package config
