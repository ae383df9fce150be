// Package main is the entry point for the calcstorm calculator.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/dshills/calcstorm/internal/app"
	"github.com/dshills/calcstorm/internal/config"
)

// Version information (set via ldflags during build).
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

func main() {
	os.Exit(run())
}

func run() int {
	var (
		configPath  string
		pluginDir   string
		noColor     bool
		showVersion bool
	)

	flag.StringVar(&configPath, "config", "", "Path to configuration file (.toml or .yaml)")
	flag.StringVar(&configPath, "c", "", "Path to configuration file (shorthand)")
	flag.StringVar(&pluginDir, "plugins", "", "Directory of Lua operation plugins")
	flag.BoolVar(&noColor, "no-color", false, "Disable colored output")
	flag.BoolVar(&showVersion, "version", false, "Show version information")
	flag.BoolVar(&showVersion, "v", false, "Show version information (shorthand)")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Calcstorm - interactive decimal calculator\n\n")
		fmt.Fprintf(os.Stderr, "Usage: calcstorm [options]\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nConfiguration can also be set via CALCULATOR_* environment\n")
		fmt.Fprintf(os.Stderr, "variables, e.g. CALCULATOR_PRECISION=4.\n")
	}

	flag.Parse()

	if showVersion {
		fmt.Printf("Calcstorm %s\n", version)
		fmt.Printf("Commit: %s\n", commit)
		fmt.Printf("Built: %s\n", date)
		return 0
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: invalid configuration: %v\n", err)
		return 1
	}
	if pluginDir != "" {
		cfg.PluginDir = pluginDir
	}

	application, err := app.New(cfg, app.Options{NoColor: noColor})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to initialize: %v\n", err)
		return 1
	}
	defer application.Close()

	if configPath != "" {
		if err := application.WatchConfig(configPath); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: config watch disabled: %v\n", err)
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := application.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}
