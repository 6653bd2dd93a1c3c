// Main entry point for the application
package main

import (
	"fmt"
	"os"

	"fygallery/internal/config"
	"fygallery/internal/logging"
	"fygallery/internal/ui"
)

func main() {
	var warnings []string
	cfg, err := config.Load(config.Path(), func(msg string) { warnings = append(warnings, msg) })
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	logger := logging.New(logging.Options{Level: cfg.LogLevel, Format: cfg.LogFormat, Prefix: "fygallery"})
	for _, w := range warnings {
		logger.Warn(w)
	}
	if len(os.Args) > 1 {
		cfg.Root = os.Args[1]
	}
	if err := ui.CreateApplication(cfg, logger); err != nil {
		logger.Error("gallery failed", "err", err)
		os.Exit(1)
	}
}
