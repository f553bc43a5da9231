package main

import (
	"fmt"
	"os"

	"github.com/betrocker/perfecttrade/internal/cli"
	"github.com/betrocker/perfecttrade/internal/config"
	"github.com/betrocker/perfecttrade/internal/logging"
)

func main() {
	// Peek at --config before cobra parses flags so the config layer can
	// load from the right directory.
	configDir := ""
	for i, arg := range os.Args {
		if arg == "--config" && i+1 < len(os.Args) {
			configDir = os.Args[i+1]
		}
	}

	cfg, err := config.Load(configDir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	logger := logging.NewLoggerWithConfig(cfg.Log)

	if err := cli.NewRootCmd(cfg, logger).Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
