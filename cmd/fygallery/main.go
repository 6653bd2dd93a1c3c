package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"fygallery/internal/config"
	"fygallery/internal/logging"
	"fygallery/internal/ui"
)

// runFunc starts the gallery with the resolved settings.
type runFunc func(cfg config.Config, logger *log.Logger) error

type flags struct {
	configPath string
	manifest   string
	root       string
	dbPath     string
	perPage    int
	logLevel   string
	logFormat  string
}

// NewRootCmd builds the gallery command. run is called with the config file
// settings overridden by any flags given; tests pass a recorder.
func NewRootCmd(run runFunc) *cobra.Command {
	var f flags
	cmd := &cobra.Command{
		Use:   "fygallery [root]",
		Short: "FyGallery - a paged, searchable image gallery",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := f.configPath
			if path == "" {
				path = config.Path()
			}
			var warnings []string
			warn := func(msg string) { warnings = append(warnings, msg) }

			cfg, err := config.Load(path, warn)
			if err != nil {
				return err
			}
			applyFlags(cmd, &cfg, f, args)
			cfg.Validate(warn)

			logger := logging.New(logging.Options{
				Level:  cfg.LogLevel,
				Format: cfg.LogFormat,
				Output: cmd.ErrOrStderr(),
				Prefix: "fygallery",
			})
			for _, w := range warnings {
				logger.Warn(w)
			}
			logger.Debug("config resolved", "path", path, "manifest", cfg.Manifest, "root", cfg.Root, "per_page", cfg.ImagesPerPage)
			return run(cfg, logger)
		},
	}

	fl := cmd.Flags()
	fl.StringVar(&f.configPath, "config", "", "Path to config file (default $FYGALLERY_CONFIG or the user config dir)")
	fl.StringVarP(&f.manifest, "manifest", "m", "", "YAML manifest describing the collection")
	fl.StringVarP(&f.root, "root", "r", "", "Directory to scan for images when no manifest is given")
	fl.StringVar(&f.dbPath, "dbpath", "", "Path to keyword database")
	fl.IntVarP(&f.perPage, "per-page", "n", 0, "Images per gallery page")
	fl.StringVar(&f.logLevel, "log-level", "", "Log level: debug, info, warn or error")
	fl.StringVar(&f.logFormat, "log-format", "", "Log format: text or json")
	return cmd
}

// applyFlags overrides cfg with every flag the user set. A positional root
// counts as --root.
func applyFlags(cmd *cobra.Command, cfg *config.Config, f flags, args []string) {
	changed := cmd.Flags().Changed
	if changed("manifest") {
		cfg.Manifest = f.manifest
	}
	if changed("root") {
		cfg.Root = f.root
	}
	if len(args) == 1 {
		cfg.Root = args[0]
	}
	if changed("dbpath") {
		cfg.KeywordsDB = f.dbPath
	}
	if changed("per-page") {
		cfg.ImagesPerPage = f.perPage
	}
	if changed("log-level") {
		cfg.LogLevel = f.logLevel
	}
	if changed("log-format") {
		cfg.LogFormat = f.logFormat
	}
}

func main() {
	if err := NewRootCmd(ui.CreateApplication).Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
