package nlu

import (
	"regexp"
	"strings"
)

var (
	durationPattern = regexp.MustCompile(`(?i)\b(?:in\s+)?(\d+)\s+(minute|hour|day)s?\b`)
	emailPattern    = regexp.MustCompile(`\b[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}\b`)
	numberPattern   = regexp.MustCompile(`\b\d+\b`)
)

// gazetteerEntry maps the lower-case surface form of a known place to its
// title-case output form.
type gazetteerEntry struct {
	lower string
	title string
}

// gazetteer is the small static place-name list, checked in order. Multi-word
// names precede their substrings would-be collisions ("new york" before any
// single-word entry that could shadow it).
var gazetteer = []gazetteerEntry{
	{"new york", "New York"},
	{"los angeles", "Los Angeles"},
	{"london", "London"},
	{"paris", "Paris"},
	{"tokyo", "Tokyo"},
	{"sydney", "Sydney"},
	{"toronto", "Toronto"},
	{"chicago", "Chicago"},
	{"miami", "Miami"},
	{"boston", "Boston"},
	{"seattle", "Seattle"},
}

// ExtractEntities pulls the four fixed entity categories out of raw text.
// Extraction is independent per category and never fails; a category with no
// matches yields an empty slice.
func ExtractEntities(text string) Entities {
	entities := Entities{
		Durations: []Duration{},
		Emails:    []string{},
		Numbers:   []string{},
		Locations: []string{},
	}

	for _, m := range durationPattern.FindAllStringSubmatch(text, -1) {
		entities.Durations = append(entities.Durations, Duration{
			Value: m[1],
			Unit:  strings.ToLower(m[2]),
		})
	}

	entities.Emails = append(entities.Emails, emailPattern.FindAllString(text, -1)...)
	entities.Numbers = append(entities.Numbers, numberPattern.FindAllString(text, -1)...)

	lower := strings.ToLower(text)
	for _, place := range gazetteer {
		if strings.Contains(lower, place.lower) {
			entities.Locations = append(entities.Locations, place.title)
		}
	}

	return entities
}
