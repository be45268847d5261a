package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.ListenAddr != ":8080" {
		t.Errorf("ListenAddr = %q, expected :8080", cfg.ListenAddr)
	}
	if cfg.Database.Type != "badger" {
		t.Errorf("Database.Type = %q, expected badger", cfg.Database.Type)
	}
	if cfg.Services.CompatibilityFallback != "compatible_with_condition" {
		t.Errorf("CompatibilityFallback = %q, expected compatible_with_condition", cfg.Services.CompatibilityFallback)
	}
	if cfg.Services.Timeout() != 3*time.Second {
		t.Errorf("Timeout() = %v, expected 3s", cfg.Services.Timeout())
	}
	if cfg.Logging.Level != "info" || cfg.Logging.Format != "json" {
		t.Errorf("Logging = %+v, expected info/json", cfg.Logging)
	}
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		t.Fatalf("Load() returned error for missing file: %v", err)
	}
	if cfg.ListenAddr != Default().ListenAddr {
		t.Errorf("ListenAddr = %q, expected default", cfg.ListenAddr)
	}
}

func TestLoadFileOverridesSubset(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	contents := `listen_addr: ":9090"
database:
  type: bolt
services:
  compatibility_url: "http://compat.local"
  timeout_seconds: 7
`
	if err := os.WriteFile(path, []byte(contents), 0644); err != nil {
		t.Fatalf("failed to write config file: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() returned error: %v", err)
	}

	if cfg.ListenAddr != ":9090" {
		t.Errorf("ListenAddr = %q, expected :9090", cfg.ListenAddr)
	}
	if cfg.Database.Type != "bolt" {
		t.Errorf("Database.Type = %q, expected bolt", cfg.Database.Type)
	}
	if cfg.Services.CompatibilityURL != "http://compat.local" {
		t.Errorf("CompatibilityURL = %q, expected http://compat.local", cfg.Services.CompatibilityURL)
	}
	if cfg.Services.Timeout() != 7*time.Second {
		t.Errorf("Timeout() = %v, expected 7s", cfg.Services.Timeout())
	}
	// Untouched keys keep their defaults.
	if cfg.Database.Path != Default().Database.Path {
		t.Errorf("Database.Path = %q, expected default", cfg.Database.Path)
	}
	if cfg.Logging.Level != "info" {
		t.Errorf("Logging.Level = %q, expected info", cfg.Logging.Level)
	}
}

func TestLoadMalformedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("listen_addr: [not: valid"), 0644); err != nil {
		t.Fatalf("failed to write config file: %v", err)
	}

	cfg, err := Load(path)
	if err == nil {
		t.Fatal("Load() returned nil error for malformed file")
	}
	if cfg == nil || cfg.ListenAddr != Default().ListenAddr {
		t.Error("Load() should return defaults alongside the error")
	}
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("AQUASYNC_LISTEN_ADDR", ":7070")
	t.Setenv("AQUASYNC_DB_TYPE", "bolt")
	t.Setenv("AQUASYNC_WEIGHT_ORACLE_URL", "http://weights.local")
	t.Setenv("AQUASYNC_SERVICE_TIMEOUT_SECONDS", "11")
	t.Setenv("AQUASYNC_LOG_FORMAT", "text")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load() returned error: %v", err)
	}

	if cfg.ListenAddr != ":7070" {
		t.Errorf("ListenAddr = %q, expected :7070", cfg.ListenAddr)
	}
	if cfg.Database.Type != "bolt" {
		t.Errorf("Database.Type = %q, expected bolt", cfg.Database.Type)
	}
	if cfg.Services.WeightOracleURL != "http://weights.local" {
		t.Errorf("WeightOracleURL = %q, expected http://weights.local", cfg.Services.WeightOracleURL)
	}
	if cfg.Services.TimeoutSeconds != 11 {
		t.Errorf("TimeoutSeconds = %d, expected 11", cfg.Services.TimeoutSeconds)
	}
	if cfg.Logging.Format != "text" {
		t.Errorf("Logging.Format = %q, expected text", cfg.Logging.Format)
	}

	t.Setenv("AQUASYNC_SERVICE_TIMEOUT_SECONDS", "garbage")
	cfg, err = Load("")
	if err != nil {
		t.Fatalf("Load() returned error: %v", err)
	}
	if cfg.Services.TimeoutSeconds != 3 {
		t.Errorf("TimeoutSeconds = %d, expected default 3 for invalid override", cfg.Services.TimeoutSeconds)
	}
}
