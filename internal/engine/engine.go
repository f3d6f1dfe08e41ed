package engine

import (
	"cmp"
	"context"
	"errors"
	"log/slog"
	"slices"

	"github.com/IshaanNene/oversight-scraper/internal/config"
	"github.com/IshaanNene/oversight-scraper/internal/fetcher"
	"github.com/IshaanNene/oversight-scraper/internal/observability"
	"github.com/IshaanNene/oversight-scraper/internal/parser"
	"github.com/IshaanNene/oversight-scraper/internal/types"
)

// Engine walks the dashboard's listing pages one at a time and collects
// the incidents they carry. Fetch and parse failures are absorbed: a page
// that cannot be read contributes no incidents and the run continues.
type Engine struct {
	cfg     *config.Config
	logger  *slog.Logger
	fetcher fetcher.Fetcher
	parser  parser.Parser
	stats   *observability.Stats
}

// New creates a new Engine.
func New(cfg *config.Config, f fetcher.Fetcher, p parser.Parser, logger *slog.Logger) *Engine {
	return &Engine{
		cfg:     cfg,
		logger:  logger.With("component", "engine"),
		fetcher: f,
		parser:  p,
		stats:   observability.NewStats(),
	}
}

// Stats returns the run counters.
func (e *Engine) Stats() *observability.Stats {
	return e.stats
}

// DiscoverPageCount returns the number of listing pages, read from the
// base page's last-page link. Any fetch or parse failure, or a page with
// no such link, yields the configured fallback count.
func (e *Engine) DiscoverPageCount(ctx context.Context) int {
	fallback := e.cfg.Source.FallbackPages

	req, err := types.NewRequest(e.cfg.Source.BaseURL)
	if err != nil {
		e.logger.Warn("page count discovery failed, using fallback", "error", err, "pages", fallback)
		e.stats.DiscoveryFallback.Store(true)
		return fallback
	}

	e.stats.PagesRequested.Add(1)
	resp, err := e.fetcher.Fetch(ctx, req)
	if err != nil {
		e.stats.PagesFailed.Add(1)
		e.logger.Warn("page count discovery failed, using fallback", "error", err, "pages", fallback)
		e.stats.DiscoveryFallback.Store(true)
		return fallback
	}
	e.stats.BytesFetched.Add(int64(len(resp.Body)))

	last, err := parser.LastPageIndex(resp, e.cfg.Parser.LastPageXPath)
	if err != nil {
		if !errors.Is(err, types.ErrNoLastPage) {
			e.logger.Warn("last page lookup failed", "error", err)
		}
		e.logger.Info("no last-page link, using fallback", "pages", fallback)
		e.stats.DiscoveryFallback.Store(true)
		return fallback
	}

	// Pages are 0-indexed on the dashboard.
	return last + 1
}

// ScrapePage fetches one listing page and extracts its incidents.
// Failures are logged and produce an empty result.
func (e *Engine) ScrapePage(ctx context.Context, page int) []types.Incident {
	req, err := types.NewPageRequest(e.cfg.Source.BaseURL, page)
	if err != nil {
		e.logger.Error("build page request", "page", page, "error", err)
		return []types.Incident{}
	}

	e.stats.PagesRequested.Add(1)
	resp, err := e.fetcher.Fetch(ctx, req)
	if err != nil {
		e.stats.PagesFailed.Add(1)
		e.logger.Error("page fetch failed", "page", page, "error", err)
		return []types.Incident{}
	}
	e.stats.BytesFetched.Add(int64(len(resp.Body)))

	result, err := e.parser.Parse(resp)
	if err != nil {
		e.stats.PagesFailed.Add(1)
		e.logger.Error("page parse failed", "page", page, "error", err)
		return []types.Incident{}
	}

	e.logger.Debug("page parsed",
		"page", page,
		"url", resp.FinalURL,
		"fetch_duration", resp.FetchDuration,
		"rows", result.Rows,
		"dropped", result.Dropped,
	)

	e.stats.RowsSeen.Add(int64(result.Rows))
	e.stats.RowsDropped.Add(int64(result.Dropped))
	e.stats.IncidentsExtracted.Add(int64(len(result.Incidents)))
	return result.Incidents
}

// ScrapeAll discovers the page count, scrapes every page in order and
// returns all incidents sorted newest first. Empty pages do not stop the
// walk.
func (e *Engine) ScrapeAll(ctx context.Context) []types.Incident {
	total := e.DiscoverPageCount(ctx)

	all := make([]types.Incident, 0)
	for page := 0; page < total; page++ {
		e.logger.Info("scraping page", "page", page+1, "total", total)
		incidents := e.ScrapePage(ctx, page)
		all = append(all, incidents...)
		e.logger.Info("page scraped", "page", page+1, "incidents", len(incidents))
	}

	SortByDateDesc(all)
	return all
}

// SortByDateDesc orders incidents by date, newest first. Incidents sharing
// a date keep their relative order.
func SortByDateDesc(incidents []types.Incident) {
	slices.SortStableFunc(incidents, func(a, b types.Incident) int {
		return cmp.Compare(b.Date, a.Date)
	})
}
