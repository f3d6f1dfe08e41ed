package config

import (
	"time"
)

// Version is set at build time via ldflags.
var Version = "dev"

// Output formats.
const (
	FormatJSON = "json"
	FormatJS   = "js"
)

// Config is the root configuration for oversight-scrape.
type Config struct {
	Source  SourceConfig  `mapstructure:"source"  yaml:"source"`
	Fetcher FetcherConfig `mapstructure:"fetcher" yaml:"fetcher"`
	Parser  ParserConfig  `mapstructure:"parser"  yaml:"parser"`
	Output  OutputConfig  `mapstructure:"output"  yaml:"output"`
	Logging LoggingConfig `mapstructure:"logging" yaml:"logging"`
}

// SourceConfig describes the dashboard being scraped.
type SourceConfig struct {
	BaseURL       string `mapstructure:"base_url"       yaml:"base_url"`
	FallbackPages int    `mapstructure:"fallback_pages" yaml:"fallback_pages"`
}

// FetcherConfig controls the request fetcher.
type FetcherConfig struct {
	UserAgent      string        `mapstructure:"user_agent"      yaml:"user_agent"`
	RequestTimeout time.Duration `mapstructure:"request_timeout" yaml:"request_timeout"`
	MaxBodySize    int64         `mapstructure:"max_body_size"   yaml:"max_body_size"`
}

// ParserConfig holds the selectors used to pull fields out of a listing page.
// Row-scoped selectors are CSS; LastPageXPath is evaluated against the whole page.
type ParserConfig struct {
	Row           string `mapstructure:"row"             yaml:"row"`
	RowMarker     string `mapstructure:"row_marker"      yaml:"row_marker"`
	Date          string `mapstructure:"date"            yaml:"date"`
	DateAttribute string `mapstructure:"date_attribute"  yaml:"date_attribute"`
	Location      string `mapstructure:"location"        yaml:"location"`
	Category      string `mapstructure:"category"        yaml:"category"`
	Link          string `mapstructure:"link"            yaml:"link"`
	LastPageXPath string `mapstructure:"last_page_xpath" yaml:"last_page_xpath"`
}

// OutputConfig controls where and how the result is written.
type OutputConfig struct {
	Path   string `mapstructure:"path"   yaml:"path"` // empty means stdout
	Format string `mapstructure:"format" yaml:"format"`
}

// LoggingConfig controls logging behavior.
type LoggingConfig struct {
	Level  string `mapstructure:"level"  yaml:"level"`
	Format string `mapstructure:"format" yaml:"format"`
}

// DefaultConfig returns a Config with the dashboard's defaults.
func DefaultConfig() *Config {
	return &Config{
		Source: SourceConfig{
			BaseURL:       "https://oversightdemocrats.house.gov/immigration-dashboard",
			FallbackPages: 13,
		},
		Fetcher: FetcherConfig{
			UserAgent:      "Mozilla/5.0 (compatible; OversightDashboardScraper/1.0)",
			RequestTimeout: 30 * time.Second,
			MaxBodySize:    10 * 1024 * 1024, // 10MB
		},
		Parser: ParserConfig{
			Row:           "tr",
			RowMarker:     "td.views-field-field-date-inc",
			Date:          "time[datetime]",
			DateAttribute: "datetime",
			Location:      "td.views-field-field-city",
			Category:      "td.views-field-field-category",
			Link:          "td.views-field-field-link a[href]",
			LastPageXPath: `//a[@title="Go to last page"]`,
		},
		Output: OutputConfig{
			Format: FormatJSON,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
		},
	}
}
