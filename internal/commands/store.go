package commands

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// storedCommand is the on-disk form of one registry entry. The file is a
// YAML list so registration order survives a round trip.
type storedCommand struct {
	Trigger  string `yaml:"trigger"`
	Response string `yaml:"response"`
}

// LoadFile reads a registry from path. A missing file yields an empty
// registry, matching the optional nature of the persisted store.
func LoadFile(path string) (*Registry, error) {
	registry := NewRegistry()
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return registry, nil
		}
		return nil, fmt.Errorf("read commands %s: %w", path, err)
	}
	var entries []storedCommand
	if err := yaml.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("parse commands %s: %w", path, err)
	}
	for _, entry := range entries {
		if entry.Trigger == "" {
			continue
		}
		registry.Register(entry.Trigger, entry.Response)
	}
	return registry, nil
}

// SaveFile writes the registry to path in registration order.
func SaveFile(path string, registry *Registry) error {
	entries := make([]storedCommand, 0, registry.Len())
	for _, trigger := range registry.Triggers() {
		response, _ := registry.Response(trigger)
		entries = append(entries, storedCommand{Trigger: trigger, Response: response})
	}
	data, err := yaml.Marshal(entries)
	if err != nil {
		return fmt.Errorf("marshal commands: %w", err)
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create commands dir: %w", err)
		}
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write commands %s: %w", path, err)
	}
	return nil
}
