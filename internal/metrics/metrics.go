// Package metrics exposes process-local counters for the interpretation
// pipeline on the default Prometheus registry.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// TurnsTotal counts interpretation turns. No-op empty inputs are not
	// counted.
	TurnsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "vera_turns_total",
		Help: "Total interpretation turns processed.",
	})

	// IntentsTotal counts classified intents by label.
	IntentsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "vera_intents_total",
		Help: "Classified intents by label.",
	}, []string{"intent"})

	// CustomCommandHits counts turns short-circuited by a custom command.
	CustomCommandHits = promauto.NewCounter(prometheus.CounterOpts{
		Name: "vera_custom_command_hits_total",
		Help: "Turns answered by a user-defined custom command.",
	})

	// RemindersScheduled counts accepted one-shot reminders.
	RemindersScheduled = promauto.NewCounter(prometheus.CounterOpts{
		Name: "vera_reminders_scheduled_total",
		Help: "One-shot reminders accepted by the scheduler.",
	})

	// RemindersFired counts reminders whose callback has run.
	RemindersFired = promauto.NewCounter(prometheus.CounterOpts{
		Name: "vera_reminders_fired_total",
		Help: "Reminders that reached their fire time and emitted.",
	})
)
