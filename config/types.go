package config

import "time"

// Config represents the complete configuration structure
type Config struct {
	API     APIConfig     `mapstructure:"api"`
	Auth    AuthConfig    `mapstructure:"auth"`
	Notify  NotifyConfig  `mapstructure:"notify"`
	Filter  FilterConfig  `mapstructure:"filter"`
	Logging LoggingConfig `mapstructure:"logging"`
	Update  UpdateConfig  `mapstructure:"update"`

	// File is the config file that was read, empty when running on defaults
	File string `mapstructure:"-"`
}

// APIConfig holds the remote API connection details
type APIConfig struct {
	BaseURL     string        `mapstructure:"base_url"`
	Credentials string        `mapstructure:"credentials"`
	Timeout     time.Duration `mapstructure:"timeout"`
	UserAgent   string        `mapstructure:"user_agent"`
}

// AuthConfig controls where the session is persisted
type AuthConfig struct {
	StorePath string `mapstructure:"store_path"`
}

// NotifyConfig controls toast display
type NotifyConfig struct {
	Duration time.Duration `mapstructure:"duration"`
}

// FilterConfig contains named history filter expressions. Viper lowercases
// preset names.
type FilterConfig struct {
	Presets map[string]string `mapstructure:"presets"`
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
	Color  bool   `mapstructure:"color"`
}

// UpdateConfig selects the release source for self-update
type UpdateConfig struct {
	Repository string `mapstructure:"repository"`
}
