package parser

import (
	"github.com/IshaanNene/oversight-scraper/internal/types"
)

// Parser extracts incidents from a fetched listing page.
type Parser interface {
	// Parse returns the incidents found on the page. Rows that lack a
	// required field are counted in the result, not reported as errors.
	Parse(resp *types.Response) (*Result, error)
}

// Result is the outcome of parsing one listing page.
type Result struct {
	Incidents []types.Incident

	// Rows counts the rows that carried the row marker.
	Rows int

	// Dropped counts marked rows skipped for a missing required field.
	Dropped int
}
