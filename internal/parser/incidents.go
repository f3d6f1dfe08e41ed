package parser

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/IshaanNene/oversight-scraper/internal/config"
	"github.com/IshaanNene/oversight-scraper/internal/types"
)

// IncidentExtractor pulls incident rows out of a listing page using CSS
// selectors via goquery.
type IncidentExtractor struct {
	sel    config.ParserConfig
	logger *slog.Logger
}

// NewIncidentExtractor creates an extractor for the given selectors.
func NewIncidentExtractor(sel config.ParserConfig, logger *slog.Logger) *IncidentExtractor {
	return &IncidentExtractor{
		sel:    sel,
		logger: logger.With("component", "incident_extractor"),
	}
}

// Parse implements Parser.
func (p *IncidentExtractor) Parse(resp *types.Response) (*Result, error) {
	doc, err := resp.Document()
	if err != nil {
		return nil, &types.ParseError{URL: resp.Request.URLString(), Err: err}
	}

	result := &Result{Incidents: make([]types.Incident, 0)}

	doc.Find(p.sel.Row).Each(func(_ int, row *goquery.Selection) {
		if row.Find(p.sel.RowMarker).Length() == 0 {
			return
		}
		result.Rows++

		fields := p.readRow(row)
		if err := fields.validate(); err != nil {
			result.Dropped++
			return
		}
		result.Incidents = append(result.Incidents, fields.incident())
	})

	p.logger.Debug("page parsed",
		"url", resp.Request.URLString(),
		"rows", result.Rows,
		"incidents", len(result.Incidents),
		"dropped", result.Dropped,
	)

	return result, nil
}

// rowFields holds the raw, entity-decoded values of one row.
// The has* flags record whether the cell was present at all.
type rowFields struct {
	dateTime string
	hasDate  bool

	location string

	categories    string
	hasCategories bool

	href    string
	title   string
	hasLink bool
}

// readRow locates each field independently; a missing field does not stop
// the others from being read.
func (p *IncidentExtractor) readRow(row *goquery.Selection) rowFields {
	var f rowFields

	if date := row.Find(p.sel.Date).First(); date.Length() > 0 {
		f.dateTime, f.hasDate = date.Attr(p.sel.DateAttribute)
	}

	if p.sel.Location != "" {
		if loc := row.Find(p.sel.Location).First(); loc.Length() > 0 {
			f.location = strings.TrimSpace(loc.Text())
		}
	}

	if cat := row.Find(p.sel.Category).First(); cat.Length() > 0 {
		f.categories = cat.Text()
		f.hasCategories = true
	}

	if link := row.Find(p.sel.Link).First(); link.Length() > 0 {
		f.href, f.hasLink = link.Attr("href")
		f.title = strings.TrimSpace(link.Text())
	}

	return f
}

// validate enforces the required fields: date, categories and link.
func (f rowFields) validate() error {
	switch {
	case !f.hasDate || f.dateTime == "":
		return fmt.Errorf("missing field: date")
	case !f.hasCategories || strings.TrimSpace(f.categories) == "":
		return fmt.Errorf("missing field: categories")
	case !f.hasLink || f.href == "" || f.title == "":
		return fmt.Errorf("missing field: link")
	}
	return nil
}

func (f rowFields) incident() types.Incident {
	return types.NewIncident(
		f.dateTime,
		f.location,
		types.SplitCategories(f.categories),
		f.href,
		f.title,
	)
}
