package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// AppName names the config directory.
const AppName = "analyzeme"

// Config holds the user defaults read from the config file.
type Config struct {
	Timezone    string `yaml:"timezone"`     // IANA zone or "Local" (default: Local)
	Format      string `yaml:"format"`       // text, json or csv (default: text)
	Threshold   int    `yaml:"threshold"`    // default --threshold for len and likes
	Color       string `yaml:"color"`        // auto, always or never (default: auto)
	ChartWidth  int    `yaml:"chart_width"`  // 0 = terminal width
	MetricsFile string `yaml:"metrics_file"` // Prometheus textfile, empty = off
}

// Default returns the built-in configuration.
func Default() *Config {
	cfg := &Config{}
	cfg.setDefaults()
	return cfg
}

// DefaultPath returns the per-user config file location.
func DefaultPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, AppName, "config.yaml")
}

// LoadConfig loads configuration from a YAML file.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	cfg.setDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	return &cfg, nil
}

// Load loads the config at path. An empty path means DefaultPath, and a
// missing default file yields the built-in configuration.
func Load(path string) (*Config, error) {
	if path != "" {
		return LoadConfig(path)
	}

	path = DefaultPath()
	if path == "" {
		return Default(), nil
	}
	cfg, err := LoadConfig(path)
	if errors.Is(err, fs.ErrNotExist) {
		return Default(), nil
	}
	return cfg, err
}

// setDefaults sets default values for missing config fields.
func (c *Config) setDefaults() {
	if c.Timezone == "" {
		c.Timezone = "Local"
	}
	if c.Format == "" {
		c.Format = "text"
	}
	if c.Color == "" {
		c.Color = "auto"
	}
}

// Validate checks the configuration for errors.
func (c *Config) Validate() error {
	if _, err := c.Location(); err != nil {
		return err
	}
	switch c.Format {
	case "text", "json", "csv":
	default:
		return fmt.Errorf("invalid format: %s (use text, json or csv)", c.Format)
	}
	switch c.Color {
	case "auto", "always", "never":
	default:
		return fmt.Errorf("invalid color: %s (use auto, always or never)", c.Color)
	}
	if c.Threshold < 0 {
		return fmt.Errorf("threshold must not be negative")
	}
	if c.ChartWidth < 0 {
		return fmt.Errorf("chart_width must not be negative")
	}
	return nil
}

// Location resolves the configured timezone.
func (c *Config) Location() (*time.Location, error) {
	return ParseLocation(c.Timezone)
}

// ParseLocation resolves an IANA zone name. "" and "Local" mean time.Local.
func ParseLocation(name string) (*time.Location, error) {
	if name == "" || name == "Local" {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		return nil, fmt.Errorf("invalid timezone %q: %w", name, err)
	}
	return loc, nil
}
