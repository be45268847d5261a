// Package config loads the server configuration from an optional YAML
// file with environment-variable overrides.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// Config is the full server configuration.
type Config struct {
	ListenAddr string         `yaml:"listen_addr"`
	Database   DatabaseConfig `yaml:"database"`
	Services   ServicesConfig `yaml:"services"`
	Logging    LoggingConfig  `yaml:"logging"`
}

// DatabaseConfig selects and locates the record store backend.
type DatabaseConfig struct {
	Path string `yaml:"path"`
	Type string `yaml:"type"`
}

// ServicesConfig points at the external enrichment services. The
// fallback status is what planning assumes when the compatibility
// classifier cannot answer.
type ServicesConfig struct {
	CompatibilityURL      string `yaml:"compatibility_url"`
	WeightOracleURL       string `yaml:"weight_oracle_url"`
	TimeoutSeconds        int    `yaml:"timeout_seconds"`
	CompatibilityFallback string `yaml:"compatibility_fallback"`
}

// Timeout converts the configured seconds into a duration.
func (s ServicesConfig) Timeout() time.Duration {
	return time.Duration(s.TimeoutSeconds) * time.Second
}

// LoggingConfig controls log verbosity and output format.
type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// Default returns the configuration used when nothing else is supplied.
func Default() *Config {
	return &Config{
		ListenAddr: ":8080",
		Database: DatabaseConfig{
			Path: "./data/aquasync.db",
			Type: "badger",
		},
		Services: ServicesConfig{
			TimeoutSeconds:        3,
			CompatibilityFallback: "compatible_with_condition",
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
		},
	}
}

// Load reads configuration from the given file, then applies
// environment overrides. A missing file is not an error; defaults are
// used. A malformed file returns the defaults alongside the error.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case os.IsNotExist(err):
			// Config file doesn't exist, keep defaults
		case err != nil:
			return Default(), fmt.Errorf("failed to read config file: %w", err)
		default:
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return Default(), fmt.Errorf("failed to parse config file: %w", err)
			}
		}
	}

	applyEnvOverrides(cfg)
	return cfg, nil
}

func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("AQUASYNC_LISTEN_ADDR"); v != "" {
		cfg.ListenAddr = v
	}
	if v := os.Getenv("AQUASYNC_DB_PATH"); v != "" {
		cfg.Database.Path = v
	}
	if v := os.Getenv("AQUASYNC_DB_TYPE"); v != "" {
		cfg.Database.Type = v
	}
	if v := os.Getenv("AQUASYNC_COMPATIBILITY_URL"); v != "" {
		cfg.Services.CompatibilityURL = v
	}
	if v := os.Getenv("AQUASYNC_WEIGHT_ORACLE_URL"); v != "" {
		cfg.Services.WeightOracleURL = v
	}
	if v := os.Getenv("AQUASYNC_SERVICE_TIMEOUT_SECONDS"); v != "" {
		if seconds, err := strconv.Atoi(v); err == nil && seconds > 0 {
			cfg.Services.TimeoutSeconds = seconds
		}
	}
	if v := os.Getenv("AQUASYNC_COMPATIBILITY_FALLBACK"); v != "" {
		cfg.Services.CompatibilityFallback = v
	}
	if v := os.Getenv("AQUASYNC_LOG_LEVEL"); v != "" {
		cfg.Logging.Level = v
	}
	if v := os.Getenv("AQUASYNC_LOG_FORMAT"); v != "" {
		cfg.Logging.Format = v
	}
}
