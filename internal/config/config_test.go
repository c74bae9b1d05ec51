package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return dir
}

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := LoadConfig(t.TempDir())
	if err != nil {
		t.Fatalf("load config: %v", err)
	}

	if cfg.Server.Port != "8080" || cfg.Session.Store != "cookie" {
		t.Fatalf("defaults = %+v", cfg)
	}
	if cfg.Backend.Timeout != 10*time.Second {
		t.Fatalf("timeout = %v, want 10s", cfg.Backend.Timeout)
	}
	if cfg.ConfigPath != "" {
		t.Fatalf("config path = %q, want empty without a file", cfg.ConfigPath)
	}
	if cfg.Redis.PoolSize != 20 || cfg.Redis.DialTimeout != 3 {
		t.Fatalf("redis = %+v", cfg.Redis)
	}
	if cfg.Tracing.ServiceName != "edu-portal" || cfg.Tracing.SampleRatio != 1 {
		t.Fatalf("tracing = %+v", cfg.Tracing)
	}
}

func TestValidateRejectsSampleRatio(t *testing.T) {
	dir := writeConfig(t, "tracing:\n  sample_ratio: 1.5\n")
	if _, err := LoadConfig(dir); err == nil {
		t.Fatal("expected validation error for a sample ratio above 1")
	}
}

func TestLoadConfigFile(t *testing.T) {
	dir := writeConfig(t, `
server:
  port: "9000"
  mode: test
backend:
  base_url: http://backend:8000/api/v1
  timeout_seconds: 3
session:
  store: redis
  name: sid
rate_limit:
  max_requests: 5
  window_minutes: 2
`)

	cfg, err := LoadConfig(dir)
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.Server.Port != "9000" || cfg.Backend.BaseURL != "http://backend:8000/api/v1" {
		t.Fatalf("cfg = %+v", cfg)
	}
	if cfg.Backend.Timeout != 3*time.Second || cfg.Session.Store != "redis" || cfg.RateLimit.MaxRequests != 5 {
		t.Fatalf("cfg = %+v", cfg)
	}
	if filepath.Base(cfg.ConfigPath) != "config.yaml" {
		t.Fatalf("config path = %q", cfg.ConfigPath)
	}
}

func TestLoadConfigEnvOverride(t *testing.T) {
	dir := writeConfig(t, "backend:\n  base_url: http://file/api\n")
	t.Setenv("BACKEND_BASE_URL", "http://env/api")

	cfg, err := LoadConfig(dir)
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.Backend.BaseURL != "http://env/api" {
		t.Fatalf("base url = %q", cfg.Backend.BaseURL)
	}
}

func TestValidateRejectsInvalidStore(t *testing.T) {
	dir := writeConfig(t, "session:\n  store: memcached\n")
	if _, err := LoadConfig(dir); err == nil {
		t.Fatal("expected validation error")
	}
}

func TestValidateReleaseSecrets(t *testing.T) {
	dir := writeConfig(t, "server:\n  mode: release\nsession:\n  secret: short\n")
	if _, err := LoadConfig(dir); err == nil {
		t.Fatal("expected error for a short session secret in release mode")
	}
}
