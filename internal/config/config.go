package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/hyperengineering/artian/internal/tracker"
	"github.com/hyperengineering/artian/internal/types"
	"github.com/hyperengineering/artian/internal/validation"
)

// Config is the root configuration structure.
// It is read-only after Load() returns and thread-safe for concurrent reads.
type Config struct {
	Database DatabaseConfig `yaml:"database"`
	Log      LogConfig      `yaml:"log"`
	Tracker  TrackerConfig  `yaml:"tracker"`
	Export   ExportConfig   `yaml:"export"`
}

// DatabaseConfig contains database settings.
type DatabaseConfig struct {
	Path string `yaml:"path"`
}

// LogConfig contains logging settings.
type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// TrackerConfig contains roll tracker settings.
type TrackerConfig struct {
	Mode                  string   `yaml:"mode"`
	Sort                  string   `yaml:"sort"`
	RequireFocus          bool     `yaml:"require_focus"`
	ArmTimeout            Duration `yaml:"arm_timeout"`
	FieldErrorTimeout     Duration `yaml:"field_error_timeout"`
	SelectionErrorTimeout Duration `yaml:"selection_error_timeout"`
}

// ExportConfig contains export defaults.
type ExportConfig struct {
	Legacy bool `yaml:"legacy"`
	Indent bool `yaml:"indent"`
}

// Options converts the tracker section into tracker.Options.
func (c TrackerConfig) Options() tracker.Options {
	opts := tracker.DefaultOptions()
	opts.RequireFocus = c.RequireFocus
	opts.ArmTimeout = time.Duration(c.ArmTimeout)
	opts.FieldErrorTimeout = time.Duration(c.FieldErrorTimeout)
	opts.SelectionErrorTimeout = time.Duration(c.SelectionErrorTimeout)
	opts.Sort = types.SortOrder(c.Sort)
	return opts
}

// Duration is a wrapper around time.Duration that supports YAML string parsing.
type Duration time.Duration

// UnmarshalYAML implements yaml.Unmarshaler for Duration.
func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err != nil {
		return err
	}
	parsed, err := time.ParseDuration(s)
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", s, err)
	}
	*d = Duration(parsed)
	return nil
}

// MarshalYAML implements yaml.Marshaler for Duration.
func (d Duration) MarshalYAML() (interface{}, error) {
	return time.Duration(d).String(), nil
}

// Load loads configuration with precedence: defaults → YAML file → .env → env vars.
// Returns an immutable Config suitable for concurrent read access.
func Load() (*Config, error) {
	cfg := newDefaults()

	// .env never overrides variables already set in the process
	if err := loadDotEnv(getEnv("ARTIAN_ENV_FILE", ".env")); err != nil {
		return nil, err
	}

	configPath := getEnv("ARTIAN_CONFIG_PATH", "config/artian.yaml")

	// Load YAML file if it exists (missing file is not an error)
	if err := loadYAMLFile(cfg, configPath); err != nil {
		return nil, err
	}

	applyEnvOverrides(cfg)

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// LoadFromFile loads configuration from a specific path.
// Used for testing and explicit path specification.
func LoadFromFile(path string) (*Config, error) {
	cfg := newDefaults()

	// Load YAML file (file must exist for this function)
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	applyEnvOverrides(cfg)

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// newDefaults returns a Config with all default values.
func newDefaults() *Config {
	return &Config{
		Database: DatabaseConfig{
			Path: "~/.artian/artian.db",
		},
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
		Tracker: TrackerConfig{
			Mode:                  string(types.ModeStandard),
			Sort:                  string(types.SortAscending),
			RequireFocus:          true,
			ArmTimeout:            Duration(3 * time.Second),
			FieldErrorTimeout:     Duration(500 * time.Millisecond),
			SelectionErrorTimeout: Duration(2 * time.Second),
		},
		Export: ExportConfig{
			Indent: true,
		},
	}
}

// loadDotEnv loads KEY=value pairs from path into the process environment.
// A missing file is not an error.
func loadDotEnv(path string) error {
	err := godotenv.Load(path)
	if err == nil || errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	return fmt.Errorf("loading env file: %w", err)
}

// loadYAMLFile loads configuration from a YAML file if it exists.
// Missing file is not an error; we just use defaults.
func loadYAMLFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("reading config file: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parsing config file: %w", err)
	}

	return nil
}

// applyEnvOverrides applies environment variable overrides to the config.
// Only non-empty env vars override config values.
func applyEnvOverrides(cfg *Config) {
	// Database
	if v := os.Getenv("ARTIAN_DB_PATH"); v != "" {
		cfg.Database.Path = v
	}

	// Log
	if v := os.Getenv("ARTIAN_LOG_LEVEL"); v != "" {
		cfg.Log.Level = v
	}
	if v := os.Getenv("ARTIAN_LOG_FORMAT"); v != "" {
		cfg.Log.Format = v
	}

	// Tracker
	if v := os.Getenv("ARTIAN_MODE"); v != "" {
		cfg.Tracker.Mode = v
	}
	if v := os.Getenv("ARTIAN_SORT"); v != "" {
		cfg.Tracker.Sort = v
	}
	if v := os.Getenv("ARTIAN_REQUIRE_FOCUS"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			cfg.Tracker.RequireFocus = b
		}
	}
	if v := os.Getenv("ARTIAN_ARM_TIMEOUT"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			cfg.Tracker.ArmTimeout = Duration(d)
		}
	}

	// Export
	if v := os.Getenv("ARTIAN_EXPORT_LEGACY"); v != "" {
		cfg.Export.Legacy = v == "true" || v == "1"
	}
}

// validate checks tracker settings and normalizes the mode alias.
func (c *Config) validate() error {
	var v validation.Collector

	mode, err := types.ParseMode(c.Tracker.Mode)
	if err != nil {
		v.Add(&validation.ValidationError{Field: "tracker.mode", Message: err.Error()})
	} else {
		c.Tracker.Mode = string(mode)
	}

	v.Add(validation.ValidateEnum("tracker.sort", c.Tracker.Sort,
		[]string{string(types.SortAscending), string(types.SortDescending)}))
	v.Add(validation.ValidateEnum("log.format", c.Log.Format, []string{"text", "json"}))
	v.Add(validation.ValidateRequired("database.path", c.Database.Path))
	v.Add(validation.ValidatePositive("tracker.arm_timeout", int64(c.Tracker.ArmTimeout)))
	v.Add(validation.ValidatePositive("tracker.field_error_timeout", int64(c.Tracker.FieldErrorTimeout)))
	v.Add(validation.ValidatePositive("tracker.selection_error_timeout", int64(c.Tracker.SelectionErrorTimeout)))

	if err := v.Err(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

// getEnv returns the value of an environment variable or a default.
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
