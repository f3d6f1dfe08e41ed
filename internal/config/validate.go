package config

import (
	"fmt"
	"net/url"
)

// Validate checks the configuration for invalid values.
func Validate(cfg *Config) error {
	if err := ValidateURL(cfg.Source.BaseURL); err != nil {
		return fmt.Errorf("source.base_url: %w", err)
	}
	if cfg.Source.FallbackPages < 1 {
		return fmt.Errorf("source.fallback_pages must be >= 1, got %d", cfg.Source.FallbackPages)
	}

	if cfg.Fetcher.RequestTimeout <= 0 {
		return fmt.Errorf("fetcher.request_timeout must be > 0")
	}
	if cfg.Fetcher.MaxBodySize <= 0 {
		return fmt.Errorf("fetcher.max_body_size must be > 0")
	}
	if cfg.Fetcher.UserAgent == "" {
		return fmt.Errorf("fetcher.user_agent must not be empty")
	}

	required := map[string]string{
		"parser.row":             cfg.Parser.Row,
		"parser.row_marker":      cfg.Parser.RowMarker,
		"parser.date":            cfg.Parser.Date,
		"parser.date_attribute":  cfg.Parser.DateAttribute,
		"parser.category":        cfg.Parser.Category,
		"parser.link":            cfg.Parser.Link,
		"parser.last_page_xpath": cfg.Parser.LastPageXPath,
	}
	for key, val := range required {
		if val == "" {
			return fmt.Errorf("%s must not be empty", key)
		}
	}

	if cfg.Output.Format != FormatJSON && cfg.Output.Format != FormatJS {
		return fmt.Errorf("output.format must be 'json' or 'js', got %q", cfg.Output.Format)
	}

	validLogLevels := map[string]bool{
		"debug": true, "info": true, "warn": true, "error": true,
	}
	if !validLogLevels[cfg.Logging.Level] {
		return fmt.Errorf("logging.level must be debug/info/warn/error, got %q", cfg.Logging.Level)
	}
	if cfg.Logging.Format != "text" && cfg.Logging.Format != "json" {
		return fmt.Errorf("logging.format must be 'text' or 'json', got %q", cfg.Logging.Format)
	}

	return nil
}

// ValidateURL checks if a URL string is valid for fetching.
func ValidateURL(rawURL string) error {
	u, err := url.Parse(rawURL)
	if err != nil {
		return fmt.Errorf("invalid URL: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("URL scheme must be http or https, got %q", u.Scheme)
	}
	if u.Host == "" {
		return fmt.Errorf("URL must have a host")
	}
	return nil
}
