package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config holds all application configuration.
type Config struct {
	HTTP     HTTPConfig     `yaml:"http"`
	Database DatabaseConfig `yaml:"database"`
	Log      LogConfig      `yaml:"log"`
}

// HTTPConfig contains HTTP server settings.
type HTTPConfig struct {
	Address string `yaml:"address"` // listen address (e.g., ":8080")
}

// DatabaseConfig contains database-related settings.
type DatabaseConfig struct {
	Path string `yaml:"path"` // SQLite database file path
}

// LogConfig contains logging settings.
type LogConfig struct {
	Level string `yaml:"level"` // debug, info, warn, error
}

// Load builds configuration from defaults, an optional YAML file, and
// environment overrides, in that order. The file path comes from
// BIBLIONET_CONFIG; when the variable is unset no file is read.
func Load() (*Config, error) {
	cfg := &Config{
		HTTP:     HTTPConfig{Address: ":8080"},
		Database: DatabaseConfig{Path: "biblionet.db"},
		Log:      LogConfig{Level: "info"},
	}

	if path := os.Getenv("BIBLIONET_CONFIG"); path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	if v := os.Getenv("HTTP_ADDRESS"); v != "" {
		cfg.HTTP.Address = v
	}
	if v := os.Getenv("DB_PATH"); v != "" {
		cfg.Database.Path = v
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		cfg.Log.Level = v
	}

	return cfg, nil
}

// String returns a printable representation of the config.
func (c *Config) String() string {
	return fmt.Sprintf("Config{HTTP: %s, DB: %s, Log: %s}", c.HTTP.Address, c.Database.Path, c.Log.Level)
}
