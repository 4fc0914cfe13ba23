package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// EnvLookup resolves environment variables; injectable for tests.
type EnvLookup func(key string) (string, bool)

type loadOptions struct {
	path      string
	envLookup EnvLookup
	readFile  func(string) ([]byte, error)
	homeDir   func() (string, error)
	overrides func(*Config)
}

// Option customizes Load behaviour.
type Option func(*loadOptions)

// WithPath points Load at an explicit config file instead of the default
// search location.
func WithPath(path string) Option {
	return func(o *loadOptions) { o.path = path }
}

// WithEnvLookup substitutes the environment source.
func WithEnvLookup(lookup EnvLookup) Option {
	return func(o *loadOptions) { o.envLookup = lookup }
}

// WithReadFile substitutes the file reader.
func WithReadFile(read func(string) ([]byte, error)) Option {
	return func(o *loadOptions) { o.readFile = read }
}

// WithOverrides applies caller overrides after file and environment layers.
func WithOverrides(apply func(*Config)) Option {
	return func(o *loadOptions) { o.overrides = apply }
}

// Load assembles the configuration: defaults, then the config file when
// present, then environment variables, then caller overrides. A missing
// config file is not an error; a malformed one is.
func Load(opts ...Option) (Config, error) {
	options := loadOptions{
		envLookup: os.LookupEnv,
		readFile:  os.ReadFile,
		homeDir:   os.UserHomeDir,
	}
	for _, opt := range opts {
		opt(&options)
	}

	cfg := Config{
		User: Preferences{
			Name:            DefaultName,
			DefaultLocation: DefaultLocation,
			WakeWord:        DefaultWakeWord,
			Units:           DefaultUnits,
			TimeFormat:      DefaultTimeFormat,
			Language:        DefaultLanguage,
		},
		HistorySize:     DefaultHistorySize,
		MaxReminders:    DefaultMaxReminders,
		IntentCacheSize: DefaultIntentCacheSize,
	}

	if err := applyFile(&cfg, options); err != nil {
		return Config{}, err
	}
	applyEnv(&cfg, options.envLookup)
	if options.overrides != nil {
		options.overrides(&cfg)
	}

	if cfg.HistorySize <= 0 {
		cfg.HistorySize = DefaultHistorySize
	}
	if cfg.MaxReminders <= 0 {
		cfg.MaxReminders = DefaultMaxReminders
	}
	if cfg.IntentCacheSize <= 0 {
		cfg.IntentCacheSize = DefaultIntentCacheSize
	}
	return cfg, nil
}

// DefaultPath returns the standard config file location under the home
// directory.
func DefaultPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "vera-config.json"
	}
	return filepath.Join(home, ".vera", "config.json")
}

func applyFile(cfg *Config, options loadOptions) error {
	path := options.path
	if path == "" {
		path = DefaultPath()
	}
	data, err := options.readFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("read config %s: %w", path, err)
	}
	var fileCfg Config
	if err := json.Unmarshal(data, &fileCfg); err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}
	mergeNonZero(cfg, fileCfg)
	return nil
}

func applyEnv(cfg *Config, lookup EnvLookup) {
	if v, ok := lookup("VERA_NAME"); ok && v != "" {
		cfg.User.Name = v
	}
	if v, ok := lookup("VERA_DEFAULT_LOCATION"); ok && v != "" {
		cfg.User.DefaultLocation = v
	}
	if v, ok := lookup("VERA_WAKE_WORD"); ok && v != "" {
		cfg.User.WakeWord = v
	}
	if v, ok := lookup("VERA_UNITS"); ok && v != "" {
		cfg.User.Units = strings.ToLower(v)
	}
	if v, ok := lookup("VERA_TIME_FORMAT"); ok && v != "" {
		cfg.User.TimeFormat = v
	}
	if v, ok := lookup("VERA_HISTORY_SIZE"); ok {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.HistorySize = n
		}
	}
	if v, ok := lookup("VERA_LOG_LEVEL"); ok && v != "" {
		cfg.LogLevel = strings.ToLower(v)
	}
}

func mergeNonZero(dst *Config, src Config) {
	if src.User.Name != "" {
		dst.User.Name = src.User.Name
	}
	if src.User.DefaultLocation != "" {
		dst.User.DefaultLocation = src.User.DefaultLocation
	}
	if src.User.WakeWord != "" {
		dst.User.WakeWord = src.User.WakeWord
	}
	if src.User.Units != "" {
		dst.User.Units = src.User.Units
	}
	if src.User.TimeFormat != "" {
		dst.User.TimeFormat = src.User.TimeFormat
	}
	if src.User.Language != "" {
		dst.User.Language = src.User.Language
	}
	if src.HistorySize > 0 {
		dst.HistorySize = src.HistorySize
	}
	if src.MaxReminders > 0 {
		dst.MaxReminders = src.MaxReminders
	}
	if src.IntentCacheSize > 0 {
		dst.IntentCacheSize = src.IntentCacheSize
	}
	if len(src.Triggers) > 0 {
		dst.Triggers = src.Triggers
	}
	if src.CommandsFile != "" {
		dst.CommandsFile = src.CommandsFile
	}
	if src.LogFile != "" {
		dst.LogFile = src.LogFile
	}
	if src.LogLevel != "" {
		dst.LogLevel = src.LogLevel
	}
}
