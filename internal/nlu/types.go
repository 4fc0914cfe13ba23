// Package nlu implements deterministic natural-language understanding:
// ordered pattern-group intent classification and per-category entity
// extraction. No statistical models are involved; priority order is data,
// not control flow.
package nlu

import "time"

// Intent is the classified purpose of an utterance.
type Intent string

const (
	IntentTimeQuery    Intent = "time_query"
	IntentDateQuery    Intent = "date_query"
	IntentWeatherQuery Intent = "weather_query"
	IntentSearchQuery  Intent = "search_query"
	IntentEmail        Intent = "email_intent"
	IntentReminder     Intent = "reminder_intent"
	IntentSmartHome    Intent = "smart_home"
	IntentUnknown      Intent = "unknown"
)

// Duration is a numeric value paired with a time unit extracted from text.
// The unit is singular ("minute", "hour", "day") regardless of the surface
// form.
type Duration struct {
	Value string
	Unit  string
}

// Entities groups extracted values by category. Every slice is non-nil;
// absence of a match yields an empty slice, never a nil one. Overlap across
// categories is permitted: "30" in "in 30 minutes" appears both as a
// duration and as a bare number.
type Entities struct {
	Durations []Duration
	Emails    []string
	Numbers   []string
	Locations []string
}

// Result pairs a classified intent with the entities extracted from the same
// utterance.
type Result struct {
	Intent    Intent
	Entities  Entities
	Text      string
	Timestamp time.Time
}
