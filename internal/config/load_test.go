package config

import (
	"os"
	"path/filepath"
	"testing"
)

func noEnv(string) (string, bool) { return "", false }

func TestLoad_AllDefaultsUnset(t *testing.T) {
	cfg, err := Load(
		WithPath("does-not-exist.json"),
		WithEnvLookup(noEnv),
		WithReadFile(func(string) ([]byte, error) { return nil, os.ErrNotExist }),
	)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.User.Name != DefaultName {
		t.Errorf("name = %q, want default", cfg.User.Name)
	}
	if cfg.User.DefaultLocation != DefaultLocation {
		t.Errorf("location = %q, want default", cfg.User.DefaultLocation)
	}
	if cfg.HistorySize != DefaultHistorySize {
		t.Errorf("history size = %d, want %d", cfg.HistorySize, DefaultHistorySize)
	}
}

func TestLoad_FileThenEnvPrecedence(t *testing.T) {
	file := []byte(`{"user":{"name":"Ada","default_location":"London"},"history_size":20}`)
	env := map[string]string{"VERA_NAME": "Grace"}

	cfg, err := Load(
		WithPath("cfg.json"),
		WithReadFile(func(string) ([]byte, error) { return file, nil }),
		WithEnvLookup(func(key string) (string, bool) {
			v, ok := env[key]
			return v, ok
		}),
	)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.User.Name != "Grace" {
		t.Errorf("env should win over file: name = %q", cfg.User.Name)
	}
	if cfg.User.DefaultLocation != "London" {
		t.Errorf("file value lost: location = %q", cfg.User.DefaultLocation)
	}
	if cfg.HistorySize != 20 {
		t.Errorf("history size = %d, want 20", cfg.HistorySize)
	}
}

func TestLoad_MalformedFile(t *testing.T) {
	_, err := Load(
		WithPath("bad.json"),
		WithEnvLookup(noEnv),
		WithReadFile(func(string) ([]byte, error) { return []byte("{nope"), nil }),
	)
	if err == nil {
		t.Fatal("expected error for malformed config")
	}
}

func TestLoad_Overrides(t *testing.T) {
	cfg, err := Load(
		WithEnvLookup(noEnv),
		WithReadFile(func(string) ([]byte, error) { return nil, os.ErrNotExist }),
		WithOverrides(func(c *Config) { c.User.TimeFormat = "24" }),
	)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.User.TimeFormat != "24" {
		t.Errorf("override lost: time format = %q", cfg.User.TimeFormat)
	}
}

func TestSaveRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "nested", "config.json")

	want := Config{User: Preferences{Name: "Lin", DefaultLocation: "Tokyo"}, HistorySize: 10}
	if err := Save(want, path); err != nil {
		t.Fatalf("save: %v", err)
	}

	cfg, err := Load(WithPath(path), WithEnvLookup(noEnv))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.User.Name != "Lin" || cfg.User.DefaultLocation != "Tokyo" {
		t.Errorf("round trip mismatch: %+v", cfg.User)
	}
}
