package parser

import (
	"errors"
	"log/slog"
	"os"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/IshaanNene/oversight-scraper/internal/config"
	"github.com/IshaanNene/oversight-scraper/internal/types"
)

var testLogger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))

const listingHTML = `<!DOCTYPE html>
<html>
<head><title>Immigration Enforcement Dashboard</title></head>
<body>
<table class="views-table">
  <thead>
    <tr>
      <th class="views-field views-field-field-date-inc">Date</th>
      <th class="views-field views-field-field-city">City</th>
      <th class="views-field views-field-field-category">Category</th>
      <th class="views-field views-field-field-link">Source</th>
    </tr>
  </thead>
  <tbody>
    <tr>
      <td class="views-field views-field-field-date-inc"><time datetime="2025-03-15T12:00:00Z">March 15, 2025</time></td>
      <td class="views-field views-field-field-city">Springfield, IL</td>
      <td class="views-field views-field-field-category">Use of Force, U.S. Citizen</td>
      <td class="views-field views-field-field-link"><a href="https://news.example.com/a?id=1&amp;ref=x">ICE raid near Springfield Hospital &amp; school</a></td>
    </tr>
    <tr>
      <td class="views-field views-field-field-date-inc"><time datetime="2025-01-02T08:00:00-05:00">January 2, 2025</time></td>
      <td class="views-field views-field-field-category">Deportation</td>
      <td class="views-field views-field-field-link"><a href="https://news.example.com/b">Family deported</a></td>
    </tr>
    <tr>
      <td class="views-field views-field-field-date-inc"><time datetime="2025-02-10T00:00:00Z">February 10, 2025</time></td>
      <td class="views-field views-field-field-city">Austin, TX</td>
      <td class="views-field views-field-field-link"><a href="https://news.example.com/c">No category here</a></td>
    </tr>
    <tr>
      <td class="views-field views-field-field-date-inc"><time datetime="2025-02-11T00:00:00Z">February 11, 2025</time></td>
      <td class="views-field views-field-field-city">Austin, TX</td>
      <td class="views-field views-field-field-category">Arrest</td>
      <td class="views-field views-field-field-link"></td>
    </tr>
    <tr>
      <td class="views-field views-field-field-date-inc">Undated</td>
      <td class="views-field views-field-field-category">Arrest</td>
      <td class="views-field views-field-field-link"><a href="https://news.example.com/d">No date</a></td>
    </tr>
    <tr>
      <td class="views-field views-field-field-date-inc"><time datetime="2024-12-31T23:59:59Z">December 31, 2024</time></td>
      <td class="views-field views-field-field-city">San Jos&eacute;, CA</td>
      <td class="views-field views-field-field-category">Arrest, Detention,</td>
      <td class="views-field views-field-field-link"><a href="https://news.example.com/e">&quot;Quoted&quot; title</a></td>
    </tr>
    <tr><td colspan="4">Showing 1 - 6</td></tr>
  </tbody>
</table>
<nav class="pager">
  <ul>
    <li class="pager__item"><a href="?page=1" title="Go to page 2">2</a></li>
    <li class="pager__item pager__item--last"><a href="?page=12" title="Go to last page" rel="last">Last</a></li>
  </ul>
</nav>
</body>
</html>`

func makeResp(url, body string) *types.Response {
	req, _ := types.NewRequest(url)
	return &types.Response{
		Request:    req,
		StatusCode: 200,
		Body:       []byte(body),
	}
}

func TestIncidentExtractorParse(t *testing.T) {
	p := NewIncidentExtractor(config.DefaultConfig().Parser, testLogger)

	result, err := p.Parse(makeResp("https://example.com/dashboard?page=0", listingHTML))
	if err != nil {
		t.Fatalf("parse error: %v", err)
	}

	if result.Rows != 6 {
		t.Errorf("expected 6 marked rows, got %d", result.Rows)
	}
	if result.Dropped != 3 {
		t.Errorf("expected 3 dropped rows, got %d", result.Dropped)
	}

	want := []types.Incident{
		{
			Date:         "2025-03-15",
			City:         "Springfield",
			State:        "IL",
			Categories:   []string{"Use of Force", "U.S. Citizen"},
			SourceURL:    "https://news.example.com/a?id=1&ref=x",
			SourceTitle:  "ICE raid near Springfield Hospital & school",
			IsUSCitizen:  true,
			IsUseOfForce: true,
		},
		{
			Date:          "2025-01-02",
			City:          "Unknown",
			State:         "",
			Categories:    []string{"Deportation"},
			SourceURL:     "https://news.example.com/b",
			SourceTitle:   "Family deported",
			IsDeportation: true,
		},
		{
			Date:              "2024-12-31",
			City:              "San José",
			State:             "CA",
			Categories:        []string{"Arrest", "Detention", ""},
			SourceURL:         "https://news.example.com/e",
			SourceTitle:       `"Quoted" title`,
			IsArrestDetention: true,
		},
	}
	if diff := cmp.Diff(want, result.Incidents); diff != "" {
		t.Errorf("incidents mismatch (-want +got):\n%s", diff)
	}
}

func TestIncidentExtractorEmptyPage(t *testing.T) {
	p := NewIncidentExtractor(config.DefaultConfig().Parser, testLogger)

	result, err := p.Parse(makeResp("https://example.com/dashboard?page=99", "<html><body><p>No results</p></body></html>"))
	if err != nil {
		t.Fatalf("parse error: %v", err)
	}
	if result.Incidents == nil || len(result.Incidents) != 0 {
		t.Errorf("expected empty, non-nil incidents, got %#v", result.Incidents)
	}
	if result.Rows != 0 || result.Dropped != 0 {
		t.Errorf("expected no rows, got rows=%d dropped=%d", result.Rows, result.Dropped)
	}
}

func TestIncidentExtractorEachMissingFieldDropsOne(t *testing.T) {
	const valid = `<tr>
<td class="views-field-field-date-inc"><time datetime="2025-05-05">May 5</time></td>
<td class="views-field-field-city">Reno, NV</td>
<td class="views-field-field-category">Arrest</td>
<td class="views-field-field-link"><a href="https://x.example/1">Title</a></td>
</tr>`
	tests := []struct {
		name string
		row  string
	}{
		{"no date", `<tr><td class="views-field-field-date-inc"></td><td class="views-field-field-category">Arrest</td><td class="views-field-field-link"><a href="https://x.example/2">T</a></td></tr>`},
		{"no category", `<tr><td class="views-field-field-date-inc"><time datetime="2025-05-05">x</time></td><td class="views-field-field-link"><a href="https://x.example/2">T</a></td></tr>`},
		{"blank category", `<tr><td class="views-field-field-date-inc"><time datetime="2025-05-05">x</time></td><td class="views-field-field-category">  </td><td class="views-field-field-link"><a href="https://x.example/2">T</a></td></tr>`},
		{"no link text", `<tr><td class="views-field-field-date-inc"><time datetime="2025-05-05">x</time></td><td class="views-field-field-category">Arrest</td><td class="views-field-field-link"><a href="https://x.example/2"></a></td></tr>`},
	}

	p := NewIncidentExtractor(config.DefaultConfig().Parser, testLogger)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			page := "<table><tbody>" + valid + tt.row + valid + "</tbody></table>"
			result, err := p.Parse(makeResp("https://example.com", page))
			if err != nil {
				t.Fatalf("parse error: %v", err)
			}
			if len(result.Incidents) != 2 {
				t.Errorf("expected 2 incidents, got %d", len(result.Incidents))
			}
			if result.Dropped != 1 {
				t.Errorf("expected 1 dropped row, got %d", result.Dropped)
			}
		})
	}
}

func TestLastPageIndex(t *testing.T) {
	xpath := config.DefaultConfig().Parser.LastPageXPath

	idx, err := LastPageIndex(makeResp("https://example.com", listingHTML), xpath)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if idx != 12 {
		t.Errorf("expected last page index 12, got %d", idx)
	}
}

func TestLastPageIndexMissing(t *testing.T) {
	xpath := config.DefaultConfig().Parser.LastPageXPath

	tests := []struct {
		name string
		body string
	}{
		{"no pager", "<html><body><p>single page</p></body></html>"},
		{"no number", `<a href="/dashboard" title="Go to last page">Last</a>`},
		{"negative", `<a href="?page=-3" title="Go to last page">Last</a>`},
		{"other title", `<a href="?page=4" title="Go to next page">Next</a>`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LastPageIndex(makeResp("https://example.com", tt.body), xpath)
			if !errors.Is(err, types.ErrNoLastPage) {
				t.Errorf("expected ErrNoLastPage, got %v", err)
			}
		})
	}
}

func TestLastPageIndexBadXPath(t *testing.T) {
	_, err := LastPageIndex(makeResp("https://example.com", listingHTML), "//a[@title=")
	var parseErr *types.ParseError
	if !errors.As(err, &parseErr) {
		t.Fatalf("expected ParseError, got %v", err)
	}
}

func TestPageFromHref(t *testing.T) {
	tests := []struct {
		href string
		want int
		ok   bool
	}{
		{"?page=12", 12, true},
		{"/immigration-dashboard?sort=date&page=3", 3, true},
		{"?page=0", 0, true},
		{"?page=abc", 0, false},
		{"", 0, false},
	}

	for _, tt := range tests {
		got, ok := pageFromHref(tt.href)
		if got != tt.want || ok != tt.ok {
			t.Errorf("pageFromHref(%q) = (%d, %v), want (%d, %v)", tt.href, got, ok, tt.want, tt.ok)
		}
	}
}
