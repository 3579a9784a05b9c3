// Package config handles global configuration.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Default viewport dimensions used when neither flags nor config specify
// them.
const (
	DefaultWidth  = 800.0
	DefaultHeight = 600.0
)

// Config represents configuration stored in ~/.config/agentviz/config.yml.
type Config struct {
	PlatformURL string  `yaml:"platform_url,omitempty"`
	APIKey      string  `yaml:"api_key,omitempty"`
	Width       float64 `yaml:"width,omitempty"`
	Height      float64 `yaml:"height,omitempty"`
	Seed        int64   `yaml:"seed,omitempty"`
	StorePath   string  `yaml:"store_path,omitempty"`
}

const (
	// ConfigDir is the directory name under XDG_CONFIG_HOME.
	ConfigDir = "agentviz"
	// ConfigFile is the config file name.
	ConfigFile = "config.yml"
	// DefaultStoreFile is the snapshot database file name.
	DefaultStoreFile = "snapshots.db"
)

// configCache caches the loaded config.
var configCache *Config

// Path returns the path to the config file. Respects XDG_CONFIG_HOME,
// defaults to ~/.config/agentviz/config.yml.
func Path() string {
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		configHome = filepath.Join(home, ".config")
	}
	return filepath.Join(configHome, ConfigDir, ConfigFile)
}

// DefaultStorePath returns the default snapshot database path next to the
// config file.
func DefaultStorePath() string {
	p := Path()
	if p == "" {
		return DefaultStoreFile
	}
	return filepath.Join(filepath.Dir(p), DefaultStoreFile)
}

// Load loads the configuration file. Returns an empty config (not an
// error) if the file doesn't exist.
func Load() (*Config, error) {
	if configCache != nil {
		return configCache, nil
	}

	path := Path()
	if path == "" {
		return &Config{}, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &Config{}, nil
		}
		return nil, fmt.Errorf("reading config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	configCache = &cfg
	return &cfg, nil
}

// Save writes the configuration file, creating the config directory if
// needed, and refreshes the cache.
func (c *Config) Save() error {
	path := Path()
	if path == "" {
		return fmt.Errorf("cannot determine config path")
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}

	configCache = c
	return nil
}

// ResetCache clears the cached config. Useful for testing.
func ResetCache() {
	configCache = nil
}

// Viewport returns the configured viewport dimensions, falling back to the
// defaults for unset values.
func (c *Config) Viewport() (width, height float64) {
	width, height = c.Width, c.Height
	if width <= 0 {
		width = DefaultWidth
	}
	if height <= 0 {
		height = DefaultHeight
	}
	return width, height
}
