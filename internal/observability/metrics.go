package observability

import (
	"log/slog"
	"sync/atomic"
)

// Stats tracks counters for a single scrape run.
type Stats struct {
	// Page metrics
	PagesRequested atomic.Int64
	PagesFailed    atomic.Int64
	BytesFetched   atomic.Int64

	// Row metrics
	RowsSeen    atomic.Int64
	RowsDropped atomic.Int64

	// Incident metrics
	IncidentsExtracted atomic.Int64

	// Discovery
	DiscoveryFallback atomic.Bool
}

// NewStats creates a zeroed Stats.
func NewStats() *Stats {
	return &Stats{}
}

// Snapshot returns all counters as a map.
func (s *Stats) Snapshot() map[string]int64 {
	var fallback int64
	if s.DiscoveryFallback.Load() {
		fallback = 1
	}
	return map[string]int64{
		"pages_requested":     s.PagesRequested.Load(),
		"pages_failed":        s.PagesFailed.Load(),
		"bytes_fetched":       s.BytesFetched.Load(),
		"rows_seen":           s.RowsSeen.Load(),
		"rows_dropped":        s.RowsDropped.Load(),
		"incidents_extracted": s.IncidentsExtracted.Load(),
		"discovery_fallback":  fallback,
	}
}

// LogValue implements slog.LogValuer so a run summary can be logged as a
// single group attribute.
func (s *Stats) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int64("pages_requested", s.PagesRequested.Load()),
		slog.Int64("pages_failed", s.PagesFailed.Load()),
		slog.Int64("bytes_fetched", s.BytesFetched.Load()),
		slog.Int64("rows_seen", s.RowsSeen.Load()),
		slog.Int64("rows_dropped", s.RowsDropped.Load()),
		slog.Int64("incidents_extracted", s.IncidentsExtracted.Load()),
		slog.Bool("discovery_fallback", s.DiscoveryFallback.Load()),
	)
}
