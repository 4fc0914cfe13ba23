// Package redaction scrubs personally identifying shapes from text that is
// destined for logs or persisted history. The unredacted text is still used
// for interpretation; only log-bound copies pass through here.
package redaction

import "regexp"

const (
	EmailPlaceholder = "[EMAIL_REDACTED]"
	PhonePlaceholder = "[PHONE_REDACTED]"
	CardPlaceholder  = "[CARD_REDACTED]"
)

var (
	emailPattern = regexp.MustCompile(`\b[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}\b`)
	phonePattern = regexp.MustCompile(`\b\d{3}[-.]?\d{3}[-.]?\d{4}\b`)
	// 13-16 digits in groups of four, optionally separated by dash or space.
	cardPattern = regexp.MustCompile(`\b\d{4}[-\s]?\d{4}[-\s]?\d{4}[-\s]?\d{1,4}\b`)
)

// Filter applies the three substitutions in a fixed order: email, phone,
// card. The shapes are disjoint, but the order stays fixed so output is
// reproducible.
func Filter(text string) string {
	if text == "" {
		return text
	}
	out := emailPattern.ReplaceAllString(text, EmailPlaceholder)
	out = phonePattern.ReplaceAllString(out, PhonePlaceholder)
	out = cardPattern.ReplaceAllString(out, CardPlaceholder)
	return out
}

// FilterMap clones and scrubs a map of string key/value pairs.
func FilterMap(values map[string]string) map[string]string {
	if values == nil {
		return nil
	}
	sanitized := make(map[string]string, len(values))
	for k, v := range values {
		sanitized[k] = Filter(v)
	}
	return sanitized
}

// ContainsSensitive reports whether text holds any shape the filter would
// replace. Useful for callers that want to skip logging entirely.
func ContainsSensitive(text string) bool {
	return emailPattern.MatchString(text) ||
		phonePattern.MatchString(text) ||
		cardPattern.MatchString(text)
}
