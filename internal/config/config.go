// Package config manages calculator configuration.
//
// Values are layered: built-in defaults, then an optional TOML or YAML
// config file, then CALCULATOR_* environment variables, then validation.
// A Watcher can reload the file while a session runs; only the numeric
// tunables and the log level are applied live.
package config

import (
	"errors"
	"fmt"
	"path/filepath"
)

// ErrInvalidConfig indicates a configuration value outside its allowed
// range. All validation failures wrap this sentinel.
var ErrInvalidConfig = errors.New("config: invalid configuration")

// Config holds all calculator settings.
type Config struct {
	// Precision is the number of decimal places kept on every result.
	Precision int32 `toml:"precision" yaml:"precision"`

	// MaxInputValue caps the absolute magnitude of operands.
	MaxInputValue float64 `toml:"max_input_value" yaml:"max_input_value"`

	// MaxHistorySize bounds the history and the undo stack.
	MaxHistorySize int `toml:"max_history_size" yaml:"max_history_size"`

	// AutoSave persists the history after every calculation.
	AutoSave bool `toml:"auto_save" yaml:"auto_save"`

	LogDir      string `toml:"log_dir" yaml:"log_dir"`
	LogFile     string `toml:"log_file" yaml:"log_file"`
	LogLevel    string `toml:"log_level" yaml:"log_level"`
	HistoryDir  string `toml:"history_dir" yaml:"history_dir"`
	HistoryFile string `toml:"history_file" yaml:"history_file"`

	// PluginDir holds Lua operation plugins. Empty disables plugins.
	PluginDir string `toml:"plugin_dir" yaml:"plugin_dir"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Precision:      2,
		MaxInputValue:  1_000_000,
		MaxHistorySize: 50,
		AutoSave:       true,
		LogDir:         "logs",
		LogFile:        "app.log",
		LogLevel:       "info",
		HistoryDir:     "history",
		HistoryFile:    "history.csv",
	}
}

// LogPath returns the full log file path.
func (c Config) LogPath() string {
	return filepath.Join(c.LogDir, c.LogFile)
}

// HistoryPath returns the full history file path.
func (c Config) HistoryPath() string {
	return filepath.Join(c.HistoryDir, c.HistoryFile)
}

// Validate checks all value ranges.
func (c Config) Validate() error {
	if c.Precision < 0 || c.Precision > 12 {
		return fmt.Errorf("precision %d must be between 0 and 12: %w", c.Precision, ErrInvalidConfig)
	}
	if c.MaxInputValue <= 0 {
		return fmt.Errorf("max_input_value %v must be positive: %w", c.MaxInputValue, ErrInvalidConfig)
	}
	if c.MaxHistorySize < 1 {
		return fmt.Errorf("max_history_size %d must be at least 1: %w", c.MaxHistorySize, ErrInvalidConfig)
	}
	switch c.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("log_level %q must be debug, info, warn or error: %w", c.LogLevel, ErrInvalidConfig)
	}
	return nil
}
