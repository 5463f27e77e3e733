// Package main is the entry point for the quarz editor.
package main

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/quarzedit/quarz/internal/app"
	"github.com/quarzedit/quarz/internal/config"
	"github.com/quarzedit/quarz/internal/ui"
)

// Version information (set via ldflags during build).
var (
	version = "dev"
	commit  = "unknown"
)

func main() {
	os.Exit(run())
}

func run() int {
	opts := parseFlags()

	cfg, err := config.Load(opts.configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: loading config: %v\n", err)
		return 1
	}

	logger := app.NullLogger
	if opts.logPath != "" {
		f, err := os.OpenFile(opts.logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: opening log file: %v\n", err)
			return 1
		}
		defer f.Close()

		level := app.ParseLogLevel(cfg.Logging.Level)
		if opts.logLevel != "" {
			level = app.ParseLogLevel(opts.logLevel)
		}
		logger = app.NewLogger(level, f)
	}

	session := app.NewSession(cfg, logger)
	defer session.Close()

	for _, path := range flag.Args() {
		if _, err := session.OpenFile(path); err != nil {
			fmt.Fprintf(os.Stderr, "Error: opening %s: %v\n", path, err)
			return 1
		}
	}
	if session.Registry().Active() == nil {
		session.OpenScratch("")
	}

	// Reload settings when the config file changes on disk.
	if opts.configPath != "" {
		watcher, err := config.NewWatcher(opts.configPath, session.ApplyConfig,
			config.WithErrorHandler(func(err error) {
				logger.Warn("config reload failed: %v", err)
			}))
		if err != nil {
			logger.Warn("config watcher unavailable: %v", err)
		} else {
			defer watcher.Close()
		}
	}

	frontend, err := ui.New(session)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: creating terminal: %v\n", err)
		return 1
	}

	signals := make(chan os.Signal, 1)
	signal.Notify(signals, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-signals
		os.Exit(0)
	}()

	if err := frontend.Run(); err != nil && !errors.Is(err, app.ErrQuit) {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

type options struct {
	configPath string
	logPath    string
	logLevel   string
}

func parseFlags() options {
	var opts options
	var showVersion bool

	flag.StringVar(&opts.configPath, "config", "", "Path to configuration file")
	flag.StringVar(&opts.configPath, "c", "", "Path to configuration file (shorthand)")
	flag.StringVar(&opts.logPath, "log", "", "Path to log file (logging disabled when empty)")
	flag.StringVar(&opts.logLevel, "log-level", "", "Log level (debug, info, warn, error)")
	flag.BoolVar(&showVersion, "version", false, "Show version information")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Quarz - editor with location history\n\n")
		fmt.Fprintf(os.Stderr, "Usage: quarz [options] [files...]\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nKeys:\n")
		fmt.Fprintf(os.Stderr, "  Ctrl-O   jump back        Tab      jump forward\n")
		fmt.Fprintf(os.Stderr, "  Ctrl-N   next buffer      F2       set mark\n")
		fmt.Fprintf(os.Stderr, "  Ctrl-G   clear history    Ctrl-Q   quit\n")
	}

	flag.Parse()

	if showVersion {
		fmt.Printf("Quarz %s (%s)\n", version, commit)
		os.Exit(0)
	}

	return opts
}
