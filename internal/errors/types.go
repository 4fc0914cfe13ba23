// Package errors classifies failures crossing the interpreter's boundaries.
// Parse misses are not errors at all; they surface as absent results. The
// types here cover the collaborator boundary, where network, transport, or
// credential problems must become user-facing advisories instead of crashes.
package errors

import (
	"errors"
	"fmt"
)

// ErrNotConfigured signals that a collaborator is missing credentials or
// required configuration. The dispatcher substitutes a standard "feature
// unavailable" message for it.
var ErrNotConfigured = errors.New("collaborator not configured")

// CollaboratorError wraps a failure reported by an external collaborator
// (weather, search, email). It is always recoverable: the dispatcher converts
// it to an advisory response and the loop continues.
type CollaboratorError struct {
	Collaborator string // "weather", "search", "email"
	Err          error
	Advisory     string // user-facing message, optional
}

func (e *CollaboratorError) Error() string {
	if e.Advisory != "" {
		return e.Advisory
	}
	return fmt.Sprintf("%s collaborator failed: %v", e.Collaborator, e.Err)
}

func (e *CollaboratorError) Unwrap() error {
	return e.Err
}

// IsNotConfigured reports whether err stems from missing collaborator
// configuration.
func IsNotConfigured(err error) bool {
	return errors.Is(err, ErrNotConfigured)
}

// Advisory derives the user-facing string for a collaborator failure.
// Unconfigured collaborators get the standard misconfiguration message;
// everything else falls back to the provided default.
func Advisory(feature string, err error, fallback string) string {
	if err == nil {
		return ""
	}
	if IsNotConfigured(err) {
		return fmt.Sprintf("%s is not configured. Please set up the required credentials.", feature)
	}
	var ce *CollaboratorError
	if errors.As(err, &ce) && ce.Advisory != "" {
		return ce.Advisory
	}
	return fallback
}
