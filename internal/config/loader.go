package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// ErrUnsupportedFormat indicates a config file extension the loader does
// not understand.
var ErrUnsupportedFormat = errors.New("config: unsupported config file format")

// envPrefix scopes the calculator's environment variables.
const envPrefix = "CALCULATOR_"

// Load builds the effective configuration: defaults, then the config file
// when path is non-empty, then environment overrides, then validation.
// An explicitly named file must exist.
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		if err := applyFile(&cfg, path); err != nil {
			return Config{}, err
		}
	}
	if err := applyEnv(&cfg); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// overlay mirrors Config with pointer fields so a config file only
// overrides the keys it actually sets.
type overlay struct {
	Precision      *int32   `toml:"precision" yaml:"precision"`
	MaxInputValue  *float64 `toml:"max_input_value" yaml:"max_input_value"`
	MaxHistorySize *int     `toml:"max_history_size" yaml:"max_history_size"`
	AutoSave       *bool    `toml:"auto_save" yaml:"auto_save"`
	LogDir         *string  `toml:"log_dir" yaml:"log_dir"`
	LogFile        *string  `toml:"log_file" yaml:"log_file"`
	LogLevel       *string  `toml:"log_level" yaml:"log_level"`
	HistoryDir     *string  `toml:"history_dir" yaml:"history_dir"`
	HistoryFile    *string  `toml:"history_file" yaml:"history_file"`
	PluginDir      *string  `toml:"plugin_dir" yaml:"plugin_dir"`
}

func applyFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("config: reading %s: %w", path, err)
	}

	var o overlay
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".toml":
		if err := toml.Unmarshal(data, &o); err != nil {
			return fmt.Errorf("config: parsing %s: %w", path, err)
		}
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &o); err != nil {
			return fmt.Errorf("config: parsing %s: %w", path, err)
		}
	default:
		return fmt.Errorf("config: %s: %w", path, ErrUnsupportedFormat)
	}

	if o.Precision != nil {
		cfg.Precision = *o.Precision
	}
	if o.MaxInputValue != nil {
		cfg.MaxInputValue = *o.MaxInputValue
	}
	if o.MaxHistorySize != nil {
		cfg.MaxHistorySize = *o.MaxHistorySize
	}
	if o.AutoSave != nil {
		cfg.AutoSave = *o.AutoSave
	}
	if o.LogDir != nil {
		cfg.LogDir = *o.LogDir
	}
	if o.LogFile != nil {
		cfg.LogFile = *o.LogFile
	}
	if o.LogLevel != nil {
		cfg.LogLevel = *o.LogLevel
	}
	if o.HistoryDir != nil {
		cfg.HistoryDir = *o.HistoryDir
	}
	if o.HistoryFile != nil {
		cfg.HistoryFile = *o.HistoryFile
	}
	if o.PluginDir != nil {
		cfg.PluginDir = *o.PluginDir
	}
	return nil
}

func applyEnv(cfg *Config) error {
	if v, ok := os.LookupEnv(envPrefix + "PRECISION"); ok {
		n, err := strconv.ParseInt(v, 10, 32)
		if err != nil {
			return fmt.Errorf("config: CALCULATOR_PRECISION %q: %w", v, ErrInvalidConfig)
		}
		cfg.Precision = int32(n)
	}
	if v, ok := os.LookupEnv(envPrefix + "MAX_INPUT_VALUE"); ok {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return fmt.Errorf("config: CALCULATOR_MAX_INPUT_VALUE %q: %w", v, ErrInvalidConfig)
		}
		cfg.MaxInputValue = f
	}
	if v, ok := os.LookupEnv(envPrefix + "MAX_HISTORY_SIZE"); ok {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("config: CALCULATOR_MAX_HISTORY_SIZE %q: %w", v, ErrInvalidConfig)
		}
		cfg.MaxHistorySize = n
	}
	if v, ok := os.LookupEnv(envPrefix + "AUTO_SAVE"); ok {
		cfg.AutoSave = parseBool(v)
	}
	if v, ok := os.LookupEnv(envPrefix + "LOG_DIR"); ok {
		cfg.LogDir = v
	}
	if v, ok := os.LookupEnv(envPrefix + "LOG_FILE"); ok {
		cfg.LogFile = v
	}
	if v, ok := os.LookupEnv(envPrefix + "LOG_LEVEL"); ok {
		cfg.LogLevel = strings.ToLower(v)
	}
	if v, ok := os.LookupEnv(envPrefix + "HISTORY_DIR"); ok {
		cfg.HistoryDir = v
	}
	if v, ok := os.LookupEnv(envPrefix + "HISTORY_FILE"); ok {
		cfg.HistoryFile = v
	}
	if v, ok := os.LookupEnv(envPrefix + "PLUGIN_DIR"); ok {
		cfg.PluginDir = v
	}
	return nil
}

// parseBool accepts the usual truthy spellings; anything else is false.
func parseBool(v string) bool {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "1", "true", "yes", "y", "on":
		return true
	}
	return false
}
