package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadRequiresDSN(t *testing.T) {
	t.Setenv("CONFIG_FILE", "")
	t.Setenv("FRAUDWATCH_POSTGRES_DSN", "")

	if _, err := Load(); err == nil {
		t.Fatal("expected error without database dsn")
	}
}

func TestLoadDefaults(t *testing.T) {
	t.Setenv("CONFIG_FILE", "")
	t.Setenv("FRAUDWATCH_POSTGRES_DSN", "postgres://localhost/fraud")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.HTTPAddress() != ":8080" {
		t.Errorf("address = %q, want :8080", cfg.HTTPAddress())
	}
	if cfg.Billing.RatePerUnit != 6 {
		t.Errorf("rate = %v, want 6", cfg.Billing.RatePerUnit)
	}
	if cfg.CacheEnabled() {
		t.Error("cache enabled without redis addr")
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("CONFIG_FILE", "")
	t.Setenv("FRAUDWATCH_POSTGRES_DSN", "postgres://localhost/fraud")
	t.Setenv("FRAUDWATCH_HTTP_PORT", "9090")
	t.Setenv("FRAUDWATCH_REDIS_ADDR", "localhost:6379")
	t.Setenv("FRAUDWATCH_RATE_PER_UNIT", "7.5")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.HTTPAddress() != ":9090" {
		t.Errorf("address = %q, want :9090", cfg.HTTPAddress())
	}
	if !cfg.CacheEnabled() {
		t.Error("cache disabled with redis addr set")
	}
	if cfg.Billing.RatePerUnit != 7.5 {
		t.Errorf("rate = %v, want 7.5", cfg.Billing.RatePerUnit)
	}
}

func TestLoadYAMLFileWithEnvOverride(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	yaml := "http:\n  port: \"7000\"\ndatabase:\n  dsn: postgres://localhost/fraud\n"
	if err := os.WriteFile(path, []byte(yaml), 0o600); err != nil {
		t.Fatal(err)
	}

	t.Setenv("CONFIG_FILE", path)
	t.Setenv("FRAUDWATCH_HTTP_PORT", "7001")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// Environment wins over the YAML file.
	if cfg.HTTPAddress() != ":7001" {
		t.Errorf("address = %q, want :7001", cfg.HTTPAddress())
	}
	if cfg.Database.DSN != "postgres://localhost/fraud" {
		t.Errorf("dsn = %q", cfg.Database.DSN)
	}
}
