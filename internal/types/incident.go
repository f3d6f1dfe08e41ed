package types

import (
	"strings"

	"github.com/IshaanNene/oversight-scraper/internal/classify"
)

// UnknownCity is used when a row carries no location.
const UnknownCity = "Unknown"

// dateLen is the length in characters of a YYYY-MM-DD date.
const dateLen = 10

// Incident is one enforcement-action record extracted from the dashboard.
// The Is* flags are derived from Categories by NewIncident.
type Incident struct {
	Date        string   `json:"date"`
	City        string   `json:"city"`
	State       string   `json:"state"`
	Categories  []string `json:"categories"`
	SourceURL   string   `json:"source_url"`
	SourceTitle string   `json:"source_title"`

	IsUSCitizen         bool `json:"is_us_citizen"`
	IsSensitiveLocation bool `json:"is_sensitive_location"`
	IsUseOfForce        bool `json:"is_use_of_force"`
	IsArrestDetention   bool `json:"is_arrest_detention"`
	IsDeportation       bool `json:"is_deportation"`
}

// NewIncident builds an Incident from already-decoded row values.
// dateTime is truncated to its date part and location is split into
// city and state.
func NewIncident(dateTime, location string, categories []string, sourceURL, sourceTitle string) Incident {
	if categories == nil {
		categories = []string{}
	}
	city, state := SplitLocation(location)
	flags := classify.Categorize(categories)

	return Incident{
		Date:                TruncateDate(dateTime),
		City:                city,
		State:               state,
		Categories:          categories,
		SourceURL:           sourceURL,
		SourceTitle:         sourceTitle,
		IsUSCitizen:         flags.USCitizen,
		IsSensitiveLocation: flags.SensitiveLocation,
		IsUseOfForce:        flags.UseOfForce,
		IsArrestDetention:   flags.ArrestDetention,
		IsDeportation:       flags.Deportation,
	}
}

// TruncateDate keeps the first ten characters of a timestamp, the
// YYYY-MM-DD prefix of an ISO-8601 value.
func TruncateDate(s string) string {
	n := 0
	for i := range s {
		if n == dateLen {
			return s[:i]
		}
		n++
	}
	return s
}

// SplitLocation splits "City, State" on the last comma.
// Without a comma the whole value is the city and state is empty.
func SplitLocation(location string) (city, state string) {
	location = strings.TrimSpace(location)
	if location == "" {
		return UnknownCity, ""
	}
	idx := strings.LastIndex(location, ",")
	if idx < 0 {
		return location, ""
	}
	return strings.TrimSpace(location[:idx]), strings.TrimSpace(location[idx+1:])
}

// SplitCategories splits a comma-separated category cell, trimming each
// token. Empty tokens are kept, so "A, B," yields ["A", "B", ""].
func SplitCategories(s string) []string {
	parts := strings.Split(s, ",")
	for i, p := range parts {
		parts[i] = strings.TrimSpace(p)
	}
	return parts
}
