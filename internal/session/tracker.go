// Package session keeps short-term conversational context: a bounded rolling
// window of recent utterances and a one-step follow-up check over it.
package session

import (
	"strings"
	"time"
)

// DefaultHistorySize bounds the rolling window when no explicit limit is
// configured.
const DefaultHistorySize = 10

// OriginUser tags utterances produced by the user.
const OriginUser = "user"

// Utterance is one recorded input turn. It is immutable once appended; the
// tracker owns it from then on.
type Utterance struct {
	Text      string
	Timestamp time.Time
	Origin    string
}

// Signal is the context-derived override reported by RecordAndCheck.
type Signal string

const (
	SignalNone            Signal = ""
	SignalWeatherFollowup Signal = "weather_followup"
)

// followupCues mark the current utterance as continuing the previous topic.
var followupCues = []string{"tomorrow", "next", "later"}

// Tracker owns the conversation history. Only the dispatcher's turn loop
// mutates it, so there is no internal locking; introduce exclusion on
// RecordAndCheck before adding a second writer.
type Tracker struct {
	limit   int
	history []Utterance
	now     func() time.Time
}

// NewTracker creates a tracker bounded to the most recent limit utterances.
// A non-positive limit falls back to DefaultHistorySize.
func NewTracker(limit int) *Tracker {
	if limit <= 0 {
		limit = DefaultHistorySize
	}
	return &Tracker{
		limit: limit,
		now:   time.Now,
	}
}

// RecordAndCheck appends text as a new user utterance, trims the history to
// the configured bound (FIFO eviction), and runs the one-step lookback: a
// previous turn mentioning "weather" followed by a turn containing a
// follow-up cue signals a weather follow-up. Fewer than two entries always
// yields SignalNone.
func (t *Tracker) RecordAndCheck(text string) Signal {
	t.history = append(t.history, Utterance{
		Text:      text,
		Timestamp: t.now(),
		Origin:    OriginUser,
	})
	if len(t.history) > t.limit {
		t.history = t.history[len(t.history)-t.limit:]
	}

	if len(t.history) < 2 {
		return SignalNone
	}

	previous := strings.ToLower(t.history[len(t.history)-2].Text)
	if !strings.Contains(previous, "weather") {
		return SignalNone
	}
	current := strings.ToLower(text)
	for _, cue := range followupCues {
		if strings.Contains(current, cue) {
			return SignalWeatherFollowup
		}
	}
	return SignalNone
}

// History returns a copy of the current window, oldest first.
func (t *Tracker) History() []Utterance {
	out := make([]Utterance, len(t.history))
	copy(out, t.history)
	return out
}

// Len reports the number of retained utterances.
func (t *Tracker) Len() int {
	return len(t.history)
}
