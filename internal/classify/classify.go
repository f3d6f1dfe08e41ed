// Package classify holds the static keyword tables that turn free-text
// dashboard categories and titles into flags and canonical labels.
//
// The JSON flags and the JS canonical categories read from the same
// keyword sets.
package classify

import "strings"

// Category text as it appears on the dashboard.
const (
	USCitizenCategory = "U.S. Citizen"
)

// Keyword sets matched as case-sensitive substrings of a category.
var (
	sensitiveLocationKeywords = []string{"Sensitive Location"}
	useOfForceKeywords        = []string{"Use of Force"}
	arrestDetentionKeywords   = []string{"Arrest", "Detention"}
	deportationKeywords       = []string{"Deportation"}
)

// Flags are the boolean facets derived from an incident's categories.
type Flags struct {
	USCitizen         bool
	SensitiveLocation bool
	UseOfForce        bool
	ArrestDetention   bool
	Deportation       bool
}

// flagRule sets one field of Flags when any category matches.
type flagRule struct {
	exact    bool
	keywords []string
	set      func(*Flags)
}

var flagRules = []flagRule{
	{true, []string{USCitizenCategory}, func(f *Flags) { f.USCitizen = true }},
	{false, sensitiveLocationKeywords, func(f *Flags) { f.SensitiveLocation = true }},
	{false, useOfForceKeywords, func(f *Flags) { f.UseOfForce = true }},
	{false, arrestDetentionKeywords, func(f *Flags) { f.ArrestDetention = true }},
	{false, deportationKeywords, func(f *Flags) { f.Deportation = true }},
}

// Categorize derives Flags from a category list.
// The citizen flag needs an exact category; the others match substrings.
func Categorize(categories []string) Flags {
	var f Flags
	for _, rule := range flagRules {
		for _, c := range categories {
			if rule.matches(c) {
				rule.set(&f)
				break
			}
		}
	}
	return f
}

func (r flagRule) matches(category string) bool {
	if r.exact {
		for _, kw := range r.keywords {
			if category == kw {
				return true
			}
		}
		return false
	}
	return containsAny(category, r.keywords)
}

// Canonical category labels used by the JS encoding.
const (
	CanonicalUseOfForce        = "use of force"
	CanonicalArrestDetention   = "arrest/detention"
	CanonicalDeportation       = "deportation"
	CanonicalSensitiveLocation = "sensitive location"
)

// canonicalTable is ordered: the first matching row wins.
var canonicalTable = []struct {
	label    string
	keywords []string
}{
	{CanonicalUseOfForce, useOfForceKeywords},
	{CanonicalArrestDetention, arrestDetentionKeywords},
	{CanonicalDeportation, deportationKeywords},
	{CanonicalSensitiveLocation, sensitiveLocationKeywords},
}

// Canonical maps a dashboard category to its canonical label.
// ok is false for categories that have no canonical form.
func Canonical(category string) (label string, ok bool) {
	for _, row := range canonicalTable {
		if containsAny(category, row.keywords) {
			return row.label, true
		}
	}
	return "", false
}

// CanonicalCategories maps each category to its canonical label, dropping
// the ones without a canonical form. Order and duplicates are kept.
func CanonicalCategories(categories []string) []string {
	out := make([]string, 0, len(categories))
	for _, c := range categories {
		if label, ok := Canonical(c); ok {
			out = append(out, label)
		}
	}
	return out
}

// Sensitive-location types derived from an incident title.
const (
	LocationChurch     = "Church"
	LocationSchool     = "School"
	LocationHospital   = "Hospital"
	LocationCourthouse = "Courthouse"
	LocationGeneric    = "Sensitive Location"
)

// locationTable is ordered and matched against the lowercased title.
var locationTable = []struct {
	label    string
	keywords []string
}{
	{LocationChurch, []string{"church", "worship"}},
	{LocationSchool, []string{"school", "daycare", "day care"}},
	{LocationHospital, []string{"hospital", "medical"}},
	{LocationCourthouse, []string{"courthouse", "court"}},
}

// SensitiveLocationType classifies the kind of sensitive location an
// incident occurred at. It returns "" when the incident is not flagged as a
// sensitive-location incident; flagged incidents whose title names no known
// place get LocationGeneric.
func SensitiveLocationType(title string, flagged bool) string {
	if !flagged {
		return ""
	}
	lower := strings.ToLower(title)
	for _, row := range locationTable {
		if containsAny(lower, row.keywords) {
			return row.label
		}
	}
	return LocationGeneric
}

func containsAny(s string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(s, kw) {
			return true
		}
	}
	return false
}
