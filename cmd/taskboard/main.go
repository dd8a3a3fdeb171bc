// Package main is the entry point for the taskboard demo server.
//
// Taskboard is the reference application for the actionkit engine: a
// small task CRUD served over HTML, Turbo Streams, JSON, CSV, and XML
// from a single set of declarative action configs.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/artpar/actionkit/bootstrap"
	"github.com/artpar/actionkit/config"
)

var (
	version   = "dev"
	commit    = "none"
	buildDate = "unknown"
)

func main() {
	configPath := flag.String("config", "taskboard.yaml", "Path to configuration file")
	showVersion := flag.Bool("version", false, "Show version and exit")
	validate := flag.Bool("validate", false, "Validate configuration and exit")
	flag.Parse()

	if *showVersion {
		fmt.Printf("taskboard %s (commit: %s, built: %s)\n", version, commit, buildDate)
		os.Exit(0)
	}

	if *validate {
		cfg, err := config.Load(*configPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Configuration invalid: %v\n", err)
			os.Exit(1)
		}
		fmt.Println("Configuration valid")
		fmt.Printf("  Listen:   %s:%d\n", cfg.Server.Host, cfg.Server.Port)
		fmt.Printf("  Database: %s (%s)\n", cfg.Database.DSN, cfg.Database.Driver)
		fmt.Printf("  Version:  %s\n", cfg.API.Version)
		os.Exit(0)
	}

	app, err := bootstrap.New(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error initializing: %v\n", err)
		os.Exit(1)
	}

	if err := app.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
