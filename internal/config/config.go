// Package config loads application settings from YAML, .env and the environment.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const appDirName = "student-records"

// Config represents the application configuration.
type Config struct {
	Database DatabaseConfig `yaml:"database"`
	Window   WindowConfig   `yaml:"window"`
	Log      LogConfig      `yaml:"log"`
}

// DatabaseConfig selects the SQL backend.
type DatabaseConfig struct {
	Driver       string `yaml:"driver"`         // sqlite, postgres or mysql
	DSN          string `yaml:"dsn"`            // driver specific data source name
	MaxOpenConns int    `yaml:"max_open_conns"` // 1 keeps a single shared connection
}

// WindowConfig holds main window settings.
type WindowConfig struct {
	Width      float32 `yaml:"width"`
	Height     float32 `yaml:"height"`
	Fullscreen bool    `yaml:"fullscreen"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `yaml:"level"`  // debug, info, warn, error
	Format string `yaml:"format"` // console or json
	File   string `yaml:"file"`   // empty logs to stdout
}

// DefaultConfig returns the built-in configuration.
func DefaultConfig() *Config {
	return &Config{
		Database: DatabaseConfig{
			Driver:       "sqlite",
			DSN:          filepath.Join(DefaultDir(), "students.db"),
			MaxOpenConns: 1,
		},
		Window: WindowConfig{
			Width:      1280,
			Height:     800,
			Fullscreen: false,
		},
		Log: LogConfig{
			Level:  "info",
			Format: "console",
		},
	}
}

// DefaultDir returns the per-user directory holding config and the default database.
func DefaultDir() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "."
	}
	return filepath.Join(dir, appDirName)
}

// DefaultPath returns the default config file location.
func DefaultPath() string {
	return filepath.Join(DefaultDir(), "config.yaml")
}

// Load reads .env from the working directory if present, then the config
// file at path. A missing file yields defaults. Environment overrides are
// applied last.
func Load(path string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env: %w", err)
	}

	if path == "" {
		path = DefaultPath()
	}

	cfg, err := LoadFromFile(path)
	if err != nil {
		return nil, err
	}

	cfg.ApplyEnv(os.LookupEnv)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// LoadFromFile parses a YAML config over the defaults without touching the environment.
func LoadFromFile(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}
	return cfg, nil
}

// ApplyEnv overrides settings from environment variables.
func (c *Config) ApplyEnv(lookup func(string) (string, bool)) {
	if v, ok := lookup("STUDENT_DB_DRIVER"); ok && v != "" {
		c.Database.Driver = v
	}
	if v, ok := lookup("STUDENT_DB_DSN"); ok && v != "" {
		c.Database.DSN = v
	}
	if v, ok := lookup("LOG_LEVEL"); ok && v != "" {
		c.Log.Level = v
	} else if v, ok := lookup("DEBUG"); ok && v == "1" {
		c.Log.Level = "debug"
	}
}

// Validate checks the configuration for values the app cannot start with.
func (c *Config) Validate() error {
	switch strings.ToLower(c.Database.Driver) {
	case "sqlite", "postgres", "mysql":
	default:
		return fmt.Errorf("unsupported database driver %q", c.Database.Driver)
	}
	if c.Database.DSN == "" {
		return errors.New("database dsn is empty")
	}
	if c.Database.MaxOpenConns < 1 {
		return fmt.Errorf("max_open_conns must be at least 1, got %d", c.Database.MaxOpenConns)
	}
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		return fmt.Errorf("invalid window size %gx%g", c.Window.Width, c.Window.Height)
	}
	return nil
}

// SaveToFile writes the configuration as YAML, creating parent directories.
func (c *Config) SaveToFile(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}
