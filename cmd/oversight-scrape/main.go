package main

import (
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/IshaanNene/oversight-scraper/internal/config"
	"github.com/IshaanNene/oversight-scraper/internal/engine"
	"github.com/IshaanNene/oversight-scraper/internal/fetcher"
	"github.com/IshaanNene/oversight-scraper/internal/parser"
	"github.com/IshaanNene/oversight-scraper/internal/storage"
)

var (
	cfgFile       string
	verbose       bool
	outputPath    string
	outputFormat  string
	baseURL       string
	timeout       time.Duration
	userAgent     string
	fallbackPages int
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "oversight-scrape",
		Short: "Scrape the House Oversight immigration enforcement dashboard",
		Long: `oversight-scrape walks every listing page of the House Oversight Committee
Democrats' Immigration Enforcement Dashboard, extracts one record per incident
row and writes the sorted result as JSON or as a JavaScript array literal.

Progress and diagnostics go to stderr; the payload goes to stdout unless
--output is given.

Examples:
  oversight-scrape                         # JSON to stdout
  oversight-scrape -o data.json            # JSON to a file
  oversight-scrape -f js -o ../data.js     # JS array literal to a file`,
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE:         runScrape,
	}

	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file path")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")

	// Scrape overrides, also read by the config subcommand.
	rootCmd.PersistentFlags().StringVarP(&outputPath, "output", "o", "", "output file path (default: stdout)")
	rootCmd.PersistentFlags().StringVarP(&outputFormat, "format", "f", config.FormatJSON, "output format: json or js")
	rootCmd.PersistentFlags().StringVar(&baseURL, "base-url", "", "dashboard listing URL")
	rootCmd.PersistentFlags().DurationVar(&timeout, "timeout", 0, "per-request timeout")
	rootCmd.PersistentFlags().StringVar(&userAgent, "user-agent", "", "User-Agent header")
	rootCmd.PersistentFlags().IntVar(&fallbackPages, "fallback-pages", 0, "page count used when the pager cannot be read")

	rootCmd.AddCommand(versionCmd())
	rootCmd.AddCommand(configCmd())

	return rootCmd
}

// runScrape executes the scrape.
func runScrape(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	logger := setupLogger(cfg)

	enc, err := storage.NewEncoder(cfg.Output.Format)
	if err != nil {
		return err
	}

	logger.Info("starting scrape",
		"source", cfg.Source.BaseURL,
		"format", cfg.Output.Format,
		"output", outputName(cfg.Output.Path),
	)

	httpFetcher := fetcher.NewHTTPFetcher(cfg, logger)
	defer httpFetcher.Close()

	eng := engine.New(cfg, httpFetcher, parser.NewIncidentExtractor(cfg.Parser, logger), logger)

	start := time.Now()
	incidents := eng.ScrapeAll(cmd.Context())

	snap := &storage.Snapshot{
		LastUpdated: time.Now(),
		Source:      cfg.Source.BaseURL,
		Incidents:   incidents,
	}
	if err := storage.Write(cfg.Output.Path, enc, snap, logger); err != nil {
		return fmt.Errorf("write output: %w", err)
	}

	logger.Info("scrape complete",
		"incidents", len(incidents),
		"elapsed", time.Since(start).Round(time.Millisecond),
		"stats", eng.Stats(),
	)
	return nil
}

// loadConfig loads the config file and env, then applies flags the user set.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	applyCLIOverrides(cmd, cfg)

	if err := config.Validate(cfg); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// applyCLIOverrides applies command-line flag values to the config. Only
// flags given on the command line override file and env values.
func applyCLIOverrides(cmd *cobra.Command, cfg *config.Config) {
	flags := cmd.Flags()
	if flags.Changed("output") {
		cfg.Output.Path = outputPath
	}
	if flags.Changed("format") {
		cfg.Output.Format = strings.ToLower(outputFormat)
	}
	if flags.Changed("base-url") {
		cfg.Source.BaseURL = baseURL
	}
	if flags.Changed("timeout") {
		cfg.Fetcher.RequestTimeout = timeout
	}
	if flags.Changed("user-agent") {
		cfg.Fetcher.UserAgent = userAgent
	}
	if flags.Changed("fallback-pages") {
		cfg.Source.FallbackPages = fallbackPages
	}
	if verbose {
		cfg.Logging.Level = "debug"
	}
}

// versionCmd creates the "version" subcommand.
func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "oversight-scrape %s\n", config.Version)
		},
	}
}

// configCmd creates the "config" subcommand for inspecting configuration.
func configCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Show the effective configuration as YAML",
		Long: `Show the configuration a scrape would run with: defaults, then the config
file, then OVERSIGHT_* environment variables, then command-line flags. The
result is validated before it is printed.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}

			enc := yaml.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent(2)
			defer enc.Close()
			return enc.Encode(cfg)
		},
	}
}

// setupLogger creates a structured logger on stderr.
func setupLogger(cfg *config.Config) *slog.Logger {
	var level slog.Level
	switch cfg.Logging.Level {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{
		Level: level,
	}

	var handler slog.Handler
	if cfg.Logging.Format == "json" {
		handler = slog.NewJSONHandler(os.Stderr, opts)
	} else {
		handler = slog.NewTextHandler(os.Stderr, opts)
	}
	return slog.New(handler)
}

func outputName(path string) string {
	if path == "" {
		return "stdout"
	}
	return path
}
