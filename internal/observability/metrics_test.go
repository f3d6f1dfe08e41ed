package observability

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"
)

func TestStatsSnapshot(t *testing.T) {
	s := NewStats()
	s.PagesRequested.Add(3)
	s.PagesFailed.Add(1)
	s.RowsSeen.Add(10)
	s.RowsDropped.Add(2)
	s.IncidentsExtracted.Add(8)
	s.DiscoveryFallback.Store(true)

	snap := s.Snapshot()
	if snap["pages_requested"] != 3 {
		t.Errorf("expected 3 pages requested, got %d", snap["pages_requested"])
	}
	if snap["rows_dropped"] != 2 {
		t.Errorf("expected 2 rows dropped, got %d", snap["rows_dropped"])
	}
	if snap["incidents_extracted"] != 8 {
		t.Errorf("expected 8 incidents, got %d", snap["incidents_extracted"])
	}
	if snap["discovery_fallback"] != 1 {
		t.Errorf("expected discovery_fallback 1, got %d", snap["discovery_fallback"])
	}
}

func TestStatsLogValue(t *testing.T) {
	s := NewStats()
	s.PagesRequested.Add(14)

	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))
	logger.Info("done", "stats", s)

	out := buf.String()
	for _, want := range []string{"stats.pages_requested=14", "stats.discovery_fallback=false"} {
		if !strings.Contains(out, want) {
			t.Errorf("expected %q in %q", want, out)
		}
	}
}
