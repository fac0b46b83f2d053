// Package cmd implements the CLI command structure for todue.
package cmd

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/nibzard/todue/internal/app"
	"github.com/nibzard/todue/internal/config"
	"github.com/nibzard/todue/internal/kv"
	"github.com/nibzard/todue/internal/logging"
	"github.com/nibzard/todue/internal/pref"
	"github.com/nibzard/todue/internal/ui"
)

// Version is set via ldflags at build time.
var Version = "dev"

// Output streams, replaced in tests.
var (
	stdout io.Writer = os.Stdout
	stderr io.Writer = os.Stderr
)

// Run executes the todue CLI.
func Run(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("todue", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = func() {
		printUsage(fs, stderr)
	}
	help := fs.Bool("help", false, "Show help")
	fs.BoolVar(help, "h", false, "Show help")
	showVersion := fs.Bool("version", false, "Show version")
	fs.BoolVar(showVersion, "v", false, "Show version")

	cfg, err := config.Load(fs, args)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	if *help {
		printUsage(fs, stdout)
		return nil
	}
	if *showVersion {
		return versionCommand()
	}

	// No args or a leading flag means "tui".
	subcommand := "tui"
	remainingArgs := fs.Args()
	if len(remainingArgs) > 0 && !strings.HasPrefix(remainingArgs[0], "-") {
		subcommand = remainingArgs[0]
		remainingArgs = remainingArgs[1:]
	}

	switch subcommand {
	case "tui":
		return tuiCommand(ctx, cfg, remainingArgs)
	case "theme":
		return themeCommand(cfg, remainingArgs)
	case "config":
		return configCommand(cfg, remainingArgs)
	case "logs", "tail":
		return logsCommand(ctx, cfg, remainingArgs)
	case "doctor":
		return doctorCommand(cfg, remainingArgs)
	case "version":
		return versionCommand()
	case "help":
		printUsage(fs, stdout)
		return nil
	default:
		fmt.Fprintf(stderr, "Unknown command: %s\n", subcommand)
		printUsage(fs, stderr)
		return fmt.Errorf("unknown command: %s", subcommand)
	}
}

// tuiCommand launches the interactive list. Logs go to a per-run file
// since the terminal belongs to the UI.
func tuiCommand(ctx context.Context, cfg *config.Config, args []string) error {
	fs := flag.NewFlagSet("todue tui", flag.ContinueOnError)
	fs.SetOutput(stderr)
	noAlt := fs.Bool("no-alt-screen", false, "Render inline instead of in the alternate screen")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() > 0 {
		return fmt.Errorf("unexpected arguments: %v", fs.Args())
	}

	a, err := app.New(cfg, app.WithRunLog())
	if err != nil {
		return err
	}
	defer a.Close()

	err = ui.RunTUI(ctx, a,
		ui.WithTickInterval(cfg.SweepInterval.D()),
		ui.WithAltScreen(!*noAlt),
	)
	if err != nil {
		a.Logger.Error("tui exited", "err", err)
		return err
	}
	a.Logger.Info("exited")
	return nil
}

// themeCommand prints or changes the persisted display mode.
func themeCommand(cfg *config.Config, args []string) error {
	if len(args) > 1 {
		return fmt.Errorf("unexpected arguments: %v", args[1:])
	}

	store, err := kv.Open(cfg.PrefBackend, cfg.PrefFile)
	if err != nil {
		return fmt.Errorf("opening preference store: %w", err)
	}
	defer store.Close()

	prefs := pref.Open(store, cliLogger(cfg).WithPrefix("pref"))
	if len(args) == 0 {
		fmt.Fprintln(stdout, prefs.Theme())
		return nil
	}

	switch arg := strings.ToLower(strings.TrimSpace(args[0])); arg {
	case "toggle":
		if _, err := prefs.Toggle(); err != nil {
			return err
		}
	default:
		theme, err := pref.ParseTheme(arg)
		if err != nil {
			return err
		}
		if err := prefs.Set(theme == pref.ThemeDark); err != nil {
			return err
		}
	}
	fmt.Fprintln(stdout, prefs.Theme())
	return nil
}

// configCommand prints the effective configuration.
func configCommand(cfg *config.Config, args []string) error {
	fs := flag.NewFlagSet("todue config", flag.ContinueOnError)
	fs.SetOutput(stderr)
	showFiles := fs.Bool("files", false, "List the config files that were loaded")
	if err := fs.Parse(args); err != nil {
		return err
	}

	if *showFiles {
		if len(cfg.Files) == 0 {
			fmt.Fprintln(stdout, "# no config files loaded")
		}
		for _, f := range cfg.Files {
			fmt.Fprintf(stdout, "# %s\n", f)
		}
	}
	out, err := cfg.TOML()
	if err != nil {
		return err
	}
	fmt.Fprint(stdout, out)
	return nil
}

// logsCommand prints the latest run log.
func logsCommand(ctx context.Context, cfg *config.Config, args []string) error {
	fs := flag.NewFlagSet("todue logs", flag.ContinueOnError)
	fs.SetOutput(stderr)
	follow := fs.Bool("f", false, "Follow the log (like tail -f)")
	fs.BoolVar(follow, "follow", false, "Follow the log (like tail -f)")
	n := fs.Int("n", 0, "Number of lines to show (0 = all)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	logPath, err := logging.FindLatestLog(cfg.LogDir)
	if err != nil {
		return fmt.Errorf("finding latest log: %w", err)
	}
	if logPath == "" {
		fmt.Fprintln(stdout, "No log files found.")
		return nil
	}

	fmt.Fprintf(stderr, "Tailing: %s\n", logPath)
	if *follow {
		fmt.Fprintln(stderr, "(Ctrl+C to stop)")
	}
	return logging.TailLog(ctx, stdout, logPath, *n, *follow)
}

// doctorCommand checks config files, the preference store, and the log
// directory.
func doctorCommand(cfg *config.Config, args []string) error {
	if len(args) > 0 {
		return fmt.Errorf("unexpected arguments: %v", args)
	}

	fmt.Fprintln(stdout, "Todue Doctor")
	fmt.Fprintln(stdout, "============")
	fmt.Fprintln(stdout)

	allOK := true

	fmt.Fprintln(stdout, "Config files:")
	if len(cfg.Files) == 0 {
		fmt.Fprintln(stdout, "  ✅ none (using defaults)")
	}
	for _, path := range cfg.Files {
		violations, err := config.ValidateFile(path)
		switch {
		case err != nil:
			fmt.Fprintf(stdout, "  ❌ %s: %v\n", path, err)
			allOK = false
		case len(violations) > 0:
			fmt.Fprintf(stdout, "  ❌ %s\n", path)
			for _, v := range violations {
				fmt.Fprintf(stdout, "      %v\n", v)
			}
			allOK = false
		default:
			fmt.Fprintf(stdout, "  ✅ %s\n", path)
		}
	}
	fmt.Fprintln(stdout)

	fmt.Fprintf(stdout, "Preference store (%s): %s\n", cfg.PrefBackend, cfg.PrefFile)
	if store, err := kv.Open(cfg.PrefBackend, cfg.PrefFile); err != nil {
		fmt.Fprintf(stdout, "  ❌ Error: %v\n", err)
		allOK = false
	} else {
		if dark, err := pref.Load(store); err != nil {
			fmt.Fprintf(stdout, "  ❌ Error: %v\n", err)
			allOK = false
		} else {
			fmt.Fprintf(stdout, "  ✅ OK (dark mode: %t)\n", dark)
		}
		store.Close()
	}
	fmt.Fprintln(stdout)

	fmt.Fprintf(stdout, "Log directory: %s\n", cfg.LogDir)
	if rl, err := logging.NewRunLogger(cfg.LogDir); err != nil {
		fmt.Fprintf(stdout, "  ❌ Error: %v\n", err)
		allOK = false
	} else {
		path := rl.LogPath
		rl.Close()
		os.Remove(path)
		fmt.Fprintln(stdout, "  ✅ writable")
	}
	fmt.Fprintln(stdout)

	if !allOK {
		return fmt.Errorf("doctor checks failed")
	}
	fmt.Fprintln(stdout, "All checks passed.")
	return nil
}

func versionCommand() error {
	fmt.Fprintf(stdout, "todue version %s\n", Version)
	return nil
}

// cliLogger logs to stderr for the non-interactive commands.
func cliLogger(cfg *config.Config) *log.Logger {
	return logging.New(stderr, logging.Options{
		Level:      cfg.LogLevel,
		Format:     cfg.LogFormat,
		Timestamps: cfg.LogTimestamps,
		Caller:     cfg.LogCaller,
		Prefix:     "todue",
	})
}

func printUsage(fs *flag.FlagSet, w io.Writer) {
	fmt.Fprintln(w, "Todue - a small to-do list with due dates")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Usage:")
	fmt.Fprintln(w, "  todue [options] [command] [command options]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  tui                          Launch the interactive list (default command)")
	fmt.Fprintln(w, "  theme [dark|light|toggle]    Show or change the display mode")
	fmt.Fprintln(w, "  config                       Print the effective configuration")
	fmt.Fprintln(w, "  logs                         Print the latest run log")
	fmt.Fprintln(w, "  doctor                       Check config, preference store, and log directory")
	fmt.Fprintln(w, "  version                      Show version information")
	fmt.Fprintln(w, "  help                         Show this help message")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Global Options:")
	fs.SetOutput(w)
	fs.PrintDefaults()
	fs.SetOutput(stderr)
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Tui Options:")
	fmt.Fprintln(w, "  -no-alt-screen")
	fmt.Fprintln(w, "        Render inline instead of in the alternate screen")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Config Options:")
	fmt.Fprintln(w, "  -files")
	fmt.Fprintln(w, "        List the config files that were loaded")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Logs Options:")
	fmt.Fprintln(w, "  -f, --follow")
	fmt.Fprintln(w, "        Follow the log (like tail -f)")
	fmt.Fprintln(w, "  -n int")
	fmt.Fprintln(w, "        Number of lines to show (0 = all)")
}
