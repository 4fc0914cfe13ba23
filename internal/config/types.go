// Package config carries user-configurable settings for the assistant core:
// response-template preferences, interpreter bounds, and recurring reminder
// triggers. Values are layered from defaults, an optional config file,
// environment variables, and programmatic overrides, in that order.
package config

const (
	DefaultName            = "User"
	DefaultLocation        = "New York"
	DefaultWakeWord        = "hello vera"
	DefaultUnits           = "metric"
	DefaultTimeFormat      = "12"
	DefaultLanguage        = "en-US"
	DefaultHistorySize     = 10
	DefaultMaxReminders    = 50
	DefaultIntentCacheSize = 128
)

// Preferences are the user-facing settings consumed by response templates.
// Every field tolerates being unset; Load fills defaults.
type Preferences struct {
	Name            string `json:"name" yaml:"name"`
	DefaultLocation string `json:"default_location" yaml:"default_location"`
	WakeWord        string `json:"wake_word" yaml:"wake_word"`
	Units           string `json:"units" yaml:"units"`             // metric or imperial
	TimeFormat      string `json:"time_format" yaml:"time_format"` // "12" or "24"
	Language        string `json:"language" yaml:"language"`
}

// TriggerConfig declares a recurring reminder registered at startup.
// Schedule is a five-field cron expression.
type TriggerConfig struct {
	Name     string `json:"name" yaml:"name"`
	Schedule string `json:"schedule" yaml:"schedule"`
	Message  string `json:"message" yaml:"message"`
}

// Config is the full runtime configuration shared across binaries.
type Config struct {
	User            Preferences     `json:"user" yaml:"user"`
	HistorySize     int             `json:"history_size" yaml:"history_size"`
	MaxReminders    int             `json:"max_reminders" yaml:"max_reminders"`
	IntentCacheSize int             `json:"intent_cache_size" yaml:"intent_cache_size"`
	Triggers        []TriggerConfig `json:"triggers" yaml:"triggers"`
	CommandsFile    string          `json:"commands_file" yaml:"commands_file"`
	LogFile         string          `json:"log_file" yaml:"log_file"`
	LogLevel        string          `json:"log_level" yaml:"log_level"`
}
