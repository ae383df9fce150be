package config

import (
	"errors"
	"path/filepath"
	"testing"
)

func TestDefaults(t *testing.T) {
	cfg := Default()

	if cfg.Precision != 2 {
		t.Errorf("Precision = %d, want 2", cfg.Precision)
	}
	if cfg.MaxInputValue != 1_000_000 {
		t.Errorf("MaxInputValue = %v, want 1000000", cfg.MaxInputValue)
	}
	if cfg.MaxHistorySize != 50 {
		t.Errorf("MaxHistorySize = %d, want 50", cfg.MaxHistorySize)
	}
	if !cfg.AutoSave {
		t.Error("AutoSave should default to true")
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("defaults should validate: %v", err)
	}
}

func TestPaths(t *testing.T) {
	cfg := Default()
	if got := cfg.LogPath(); got != filepath.Join("logs", "app.log") {
		t.Errorf("LogPath() = %q", got)
	}
	if got := cfg.HistoryPath(); got != filepath.Join("history", "history.csv") {
		t.Errorf("HistoryPath() = %q", got)
	}
}

func TestValidateRanges(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"precision negative", func(c *Config) { c.Precision = -1 }},
		{"precision too large", func(c *Config) { c.Precision = 13 }},
		{"max input zero", func(c *Config) { c.MaxInputValue = 0 }},
		{"max input negative", func(c *Config) { c.MaxInputValue = -5 }},
		{"history size zero", func(c *Config) { c.MaxHistorySize = 0 }},
		{"bad log level", func(c *Config) { c.LogLevel = "verbose" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(&cfg)
			if err := cfg.Validate(); !errors.Is(err, ErrInvalidConfig) {
				t.Errorf("Validate() = %v, want ErrInvalidConfig", err)
			}
		})
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("CALCULATOR_PRECISION", "4")
	t.Setenv("CALCULATOR_MAX_INPUT_VALUE", "500")
	t.Setenv("CALCULATOR_MAX_HISTORY_SIZE", "10")
	t.Setenv("CALCULATOR_AUTO_SAVE", "no")
	t.Setenv("CALCULATOR_LOG_LEVEL", "DEBUG")
	t.Setenv("CALCULATOR_PLUGIN_DIR", "plugins")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Precision != 4 {
		t.Errorf("Precision = %d, want 4", cfg.Precision)
	}
	if cfg.MaxInputValue != 500 {
		t.Errorf("MaxInputValue = %v, want 500", cfg.MaxInputValue)
	}
	if cfg.MaxHistorySize != 10 {
		t.Errorf("MaxHistorySize = %d, want 10", cfg.MaxHistorySize)
	}
	if cfg.AutoSave {
		t.Error("AutoSave should be disabled by CALCULATOR_AUTO_SAVE=no")
	}
	if cfg.LogLevel != "debug" {
		t.Errorf("LogLevel = %q, want debug (lowercased)", cfg.LogLevel)
	}
	if cfg.PluginDir != "plugins" {
		t.Errorf("PluginDir = %q, want plugins", cfg.PluginDir)
	}
}

func TestLoadEnvMalformed(t *testing.T) {
	t.Setenv("CALCULATOR_PRECISION", "two")

	_, err := Load("")
	if !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("Load error = %v, want ErrInvalidConfig", err)
	}
}

func TestLoadEnvOutOfRange(t *testing.T) {
	t.Setenv("CALCULATOR_PRECISION", "99")

	_, err := Load("")
	if !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("Load error = %v, want ErrInvalidConfig", err)
	}
}

func TestParseBool(t *testing.T) {
	for _, v := range []string{"1", "true", "YES", "y", "On", " true "} {
		if !parseBool(v) {
			t.Errorf("parseBool(%q) = false, want true", v)
		}
	}
	for _, v := range []string{"0", "false", "off", "nope", ""} {
		if parseBool(v) {
			t.Errorf("parseBool(%q) = true, want false", v)
		}
	}
}
