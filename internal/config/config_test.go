package config

import (
	"strings"
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("DB_USER", "root")
	t.Setenv("JWT_SECRET", "s3cret")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Port != "3000" {
		t.Errorf("Port = %q, want 3000", cfg.Port)
	}
	if cfg.CookieName != "token" {
		t.Errorf("CookieName = %q, want token", cfg.CookieName)
	}
	if cfg.AccessTTL() != 24*time.Hour {
		t.Errorf("AccessTTL() = %v, want 24h", cfg.AccessTTL())
	}
	if !cfg.Cache.Methods["GET"] {
		t.Errorf("cache methods should include GET, got %v", cfg.Cache.Methods)
	}
	if cfg.RateLimit.TTL < 5*cfg.RateLimit.RefillInterval {
		t.Errorf("rate limit TTL %v shorter than five refill intervals", cfg.RateLimit.TTL)
	}
	if cfg.ReconcileInterval != 10*time.Minute {
		t.Errorf("ReconcileInterval = %v, want 10m", cfg.ReconcileInterval)
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("DB_USER", "root")
	t.Setenv("JWT_SECRET", "s3cret")
	t.Setenv("APP_ENV", "prod")
	t.Setenv("REDIS_HOST", "cache")
	t.Setenv("REDIS_PORT", "6380")
	t.Setenv("RATE_LIMIT_BURST", "5")
	t.Setenv("CORS_ORIGINS", "http://a.test, http://b.test")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if !cfg.IsProduction() {
		t.Error("expected production env")
	}
	if cfg.Redis.Addr != "cache:6380" {
		t.Errorf("Redis.Addr = %q, want cache:6380", cfg.Redis.Addr)
	}
	if cfg.RateLimit.Capacity != 5 {
		t.Errorf("RateLimit.Capacity = %d, want 5", cfg.RateLimit.Capacity)
	}
	if len(cfg.CORSOrigins) != 2 || cfg.CORSOrigins[1] != "http://b.test" {
		t.Errorf("CORSOrigins = %v", cfg.CORSOrigins)
	}
}

func TestLoadMissingRequired(t *testing.T) {
	t.Setenv("DB_USER", "")
	t.Setenv("JWT_SECRET", "")

	_, err := Load()
	if err == nil {
		t.Fatal("expected error for missing required vars")
	}
	for _, key := range []string{"DB_USER", "JWT_SECRET"} {
		if !strings.Contains(err.Error(), key) {
			t.Errorf("error %q should mention %s", err, key)
		}
	}
}
