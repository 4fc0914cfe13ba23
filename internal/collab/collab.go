// Package collab declares the boundary contracts for the network-backed
// collaborators the core delegates to: weather, web search, and email. The
// core passes their response strings through unmodified; failures surface as
// recoverable errors, never crashes.
package collab

import (
	"context"
	"fmt"

	verrors "vera/internal/errors"
)

// Weather reports current conditions for a location.
type Weather interface {
	CurrentWeather(ctx context.Context, location string) (string, error)
}

// Search runs a web query and returns a one-line summary of what was done.
type Search interface {
	Search(ctx context.Context, query string) (string, error)
}

// Email sends a message and returns a delivery confirmation line.
type Email interface {
	Send(ctx context.Context, recipient, subject, body string) (string, error)
}

// UnconfiguredWeather reports missing credentials for every call. It is the
// default wiring until a real provider is configured.
type UnconfiguredWeather struct{}

func (UnconfiguredWeather) CurrentWeather(_ context.Context, _ string) (string, error) {
	return "", fmt.Errorf("weather: %w", verrors.ErrNotConfigured)
}

// UnconfiguredSearch reports missing configuration for every call.
type UnconfiguredSearch struct{}

func (UnconfiguredSearch) Search(_ context.Context, _ string) (string, error) {
	return "", fmt.Errorf("search: %w", verrors.ErrNotConfigured)
}

// UnconfiguredEmail reports missing credentials for every call.
type UnconfiguredEmail struct{}

func (UnconfiguredEmail) Send(_ context.Context, _, _, _ string) (string, error) {
	return "", fmt.Errorf("email: %w", verrors.ErrNotConfigured)
}

// WeatherFunc adapts a function to the Weather interface.
type WeatherFunc func(ctx context.Context, location string) (string, error)

func (f WeatherFunc) CurrentWeather(ctx context.Context, location string) (string, error) {
	return f(ctx, location)
}

// SearchFunc adapts a function to the Search interface.
type SearchFunc func(ctx context.Context, query string) (string, error)

func (f SearchFunc) Search(ctx context.Context, query string) (string, error) {
	return f(ctx, query)
}

// EmailFunc adapts a function to the Email interface.
type EmailFunc func(ctx context.Context, recipient, subject, body string) (string, error)

func (f EmailFunc) Send(ctx context.Context, recipient, subject, body string) (string, error) {
	return f(ctx, recipient, subject, body)
}
