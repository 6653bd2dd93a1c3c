package main

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"fygallery/internal/catalog"
	"fygallery/internal/config"
	"fygallery/internal/keywords"
	"fygallery/internal/logging"
	"fygallery/internal/service"
)

// openFunc opens the keyword service for dbPath. Tests inject their own.
type openFunc func(dbPath string, logger func(string)) (*service.KeywordService, error)

type cli struct {
	open openFunc
	svc  *service.KeywordService

	configPath string
	dbPath     string
	manifest   string
	root       string
	logLevel   string
	logger     func(string)
}

// imageLocation keeps URLs as they are and makes file paths absolute.
func imageLocation(arg string) (string, error) {
	if strings.Contains(arg, "://") {
		return arg, nil
	}
	return filepath.Abs(arg)
}

// NewRootCmd creates the root command for the CLI application.
func NewRootCmd(open openFunc) *cobra.Command {
	c := &cli{open: open}
	rootCmd := &cobra.Command{
		Use:           "fygallery-cli",
		Short:         "FyGallery CLI - manage image keywords and inspect the catalog",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			c.logger = logging.Func(logging.New(logging.Options{
				Level:  c.logLevel,
				Output: cmd.ErrOrStderr(),
				Prefix: "fygallery-cli",
			}))
		},
	}
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&c.configPath, "config", "", "Path to config file")
	pf.StringVar(&c.dbPath, "dbpath", "", "Path to keyword database")
	pf.StringVar(&c.manifest, "manifest", "", "YAML manifest describing the collection")
	pf.StringVar(&c.root, "root", "", "Directory to scan for images when no manifest is given")
	pf.StringVar(&c.logLevel, "log-level", "warn", "Log level: debug, info, warn or error")

	rootCmd.AddCommand(c.keywordsCmd(), c.catalogCmd())
	return rootCmd
}

// settings merges the config file with the source flags.
func (c *cli) settings(cmd *cobra.Command) (config.Config, error) {
	path := c.configPath
	if path == "" {
		path = config.Path()
	}
	cfg, err := config.Load(path, c.logger)
	if err != nil {
		return cfg, err
	}
	flags := cmd.Flags()
	if flags.Changed("dbpath") {
		cfg.KeywordsDB = c.dbPath
	}
	if flags.Changed("manifest") {
		cfg.Manifest = c.manifest
	}
	if flags.Changed("root") {
		cfg.Root = c.root
	}
	return cfg, nil
}

func (c *cli) openStore(cmd *cobra.Command) (config.Config, error) {
	cfg, err := c.settings(cmd)
	if err != nil {
		return cfg, err
	}
	c.svc, err = c.open(cfg.KeywordsDB, c.logger)
	if err != nil {
		return cfg, fmt.Errorf("failed to initialize keyword service: %w", err)
	}
	return cfg, nil
}

func (c *cli) closeStore() {
	if c.svc != nil && c.svc.Store != nil {
		if err := c.svc.Store.Close(); err != nil {
			c.logger(fmt.Sprintf("error closing keyword database: %v", err))
		}
		c.svc = nil
	}
}

// loadCatalog reads the configured collection with stored keywords merged.
func (c *cli) loadCatalog(cfg config.Config, perPage int) (*catalog.Catalog, []catalog.Image, error) {
	images, err := service.NewLibrary(c.svc, c.logger).Load(service.LibraryOptions{
		Manifest: cfg.Manifest,
		Root:     cfg.Root,
		Include:  cfg.Include,
	})
	if err != nil {
		return nil, nil, err
	}
	if perPage <= 0 {
		perPage = cfg.ImagesPerPage
	}
	return catalog.New(images, perPage), images, nil
}

func (c *cli) keywordsCmd() *cobra.Command {
	kwCmd := &cobra.Command{
		Use:     "keywords",
		Aliases: []string{"kw"},
		Short:   "Manage the keyword database",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cmd.Root().PersistentPreRun(cmd, args)
			_, err := c.openStore(cmd)
			return err
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			c.closeStore()
		},
	}

	// Add command
	kwCmd.AddCommand(&cobra.Command{
		Use:   "add [image] [keyword...]",
		Short: "Add keywords to an image",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			loc, err := imageLocation(args[0])
			if err != nil {
				return err
			}
			if err := c.svc.AddKeywords(loc, args[1:]); err != nil {
				return err
			}
			for _, k := range args[1:] {
				cmd.Printf("Added keyword '%s' to %s\n", k, loc)
			}
			return nil
		},
	})

	// Remove command
	kwCmd.AddCommand(&cobra.Command{
		Use:   "remove [image] [keyword...]",
		Short: "Remove keywords from an image",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			loc, err := imageLocation(args[0])
			if err != nil {
				return err
			}
			if err := c.svc.RemoveKeywords(loc, args[1:]); err != nil {
				return err
			}
			for _, k := range args[1:] {
				cmd.Printf("Removed keyword '%s' from %s\n", k, loc)
			}
			return nil
		},
	})

	// List keywords for image
	kwCmd.AddCommand(&cobra.Command{
		Use:   "list [image]",
		Short: "List keywords for an image",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			loc, err := imageLocation(args[0])
			if err != nil {
				return err
			}
			kws, err := c.svc.ListKeywords(loc)
			if err != nil {
				return err
			}
			if len(kws) == 0 {
				cmd.Printf("No keywords for %s.\n", loc)
				return nil
			}
			cmd.Println(strings.Join(kws, ", "))
			return nil
		},
	})

	// Find images by keyword
	kwCmd.AddCommand(&cobra.Command{
		Use:   "find [keyword]",
		Short: "List images with a given keyword",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			images, err := c.svc.ListImagesForKeyword(args[0])
			if err != nil {
				return err
			}
			if len(images) == 0 {
				cmd.Printf("No images found for keyword '%s'.\n", args[0])
				return nil
			}
			for _, img := range images {
				cmd.Println(img)
			}
			return nil
		},
	})

	// List all keywords
	kwCmd.AddCommand(&cobra.Command{
		Use:   "all",
		Short: "List all keywords with image counts",
		RunE: func(cmd *cobra.Command, args []string) error {
			all, err := c.svc.ListAllKeywords()
			if err != nil {
				return err
			}
			if len(all) == 0 {
				cmd.Println("No keywords found in the database.")
				return nil
			}
			for _, kw := range all {
				cmd.Printf("%s (%d)\n", kw.Name, kw.Count)
			}
			return nil
		},
	})

	kwCmd.AddCommand(&cobra.Command{
		Use:   "normalize",
		Short: "Normalize all keywords to lowercase",
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.svc.NormalizeAll()
		},
	})

	kwCmd.AddCommand(&cobra.Command{
		Use:   "replace [old] [new]",
		Short: "Replace a keyword across all images",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := c.svc.ReplaceKeyword(args[0], args[1]); err != nil {
				return err
			}
			cmd.Printf("Replaced keyword '%s' with '%s'\n", args[0], args[1])
			return nil
		},
	})

	// Clean database
	kwCmd.AddCommand(&cobra.Command{
		Use:   "clean",
		Short: "Remove keywords of images outside the collection and orphaned keywords",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.settings(cmd)
			if err != nil {
				return err
			}
			_, images, err := c.loadCatalog(cfg, 0)
			if err != nil {
				return err
			}
			imgs, kws, err := c.svc.CleanUnknown(service.URLs(images))
			if err != nil {
				return err
			}
			cmd.Printf("Cleaned %d images and %d orphaned keywords.\n", imgs, kws)
			return nil
		},
	})

	return kwCmd
}

func (c *cli) catalogCmd() *cobra.Command {
	var (
		category string
		search   string
		page     int
		perPage  int
	)

	catCmd := &cobra.Command{
		Use:   "catalog",
		Short: "Inspect the image collection",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cmd.Root().PersistentPreRun(cmd, args)
			cfg, err := c.settings(cmd)
			if err != nil {
				return err
			}
			// keywords are optional here; an unreadable database only loses them
			if c.svc, err = c.open(cfg.KeywordsDB, c.logger); err != nil {
				c.logger(fmt.Sprintf("keyword database unavailable: %v", err))
				c.svc = nil
			}
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			c.closeStore()
		},
	}

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List one page of images matching the filters",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.settings(cmd)
			if err != nil {
				return err
			}
			cat, _, err := c.loadCatalog(cfg, perPage)
			if err != nil {
				return err
			}
			if category != "" {
				cat.SetCategory(category)
			}
			cat.SetSearch(search)
			for cat.CurrentPage() < page && cat.NextPage() {
			}

			images := cat.CurrentPageImages()
			if len(images) == 0 {
				cmd.Println("No images found.")
			}
			for _, img := range images {
				cmd.Printf("%d\t%s\t%s\t%s\n", img.ID, img.Title, img.CategoryLabel(), img.URL)
			}
			info := cat.PaginationInfo()
			cmd.Printf("Page %d of %d (%d images)\n", info.CurrentPage, info.TotalPages, len(cat.FilteredImages()))
			return nil
		},
	}
	listCmd.Flags().StringVarP(&category, "category", "c", catalog.AllCategories, "Category filter")
	listCmd.Flags().StringVarP(&search, "search", "s", "", "Search term")
	listCmd.Flags().IntVarP(&page, "page", "p", 1, "Page to show")
	listCmd.Flags().IntVarP(&perPage, "per-page", "n", 0, "Images per page (default from config)")
	catCmd.AddCommand(listCmd)

	catCmd.AddCommand(&cobra.Command{
		Use:   "stats",
		Short: "Show collection statistics",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.settings(cmd)
			if err != nil {
				return err
			}
			cat, _, err := c.loadCatalog(cfg, 0)
			if err != nil {
				return err
			}
			st := cat.Stats()
			cmd.Printf("Images: %d\n", st.TotalImages)
			cmd.Printf("Keywords: %d\n", st.UniqueKeywords)
			names := make([]string, 0, len(st.Categories))
			for name := range st.Categories {
				names = append(names, name)
			}
			sort.Strings(names)
			for _, name := range names {
				cmd.Printf("  %s: %d\n", catalog.CategoryTitle(name), st.Categories[name])
			}
			return nil
		},
	})

	return catCmd
}

func main() {
	open := func(dbPath string, logger func(string)) (*service.KeywordService, error) {
		store, err := keywords.Open(dbPath, logger)
		if err != nil {
			return nil, fmt.Errorf("failed to open keyword DB: %w", err)
		}
		return service.NewKeywordService(store, logger), nil
	}
	if err := NewRootCmd(open).Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
