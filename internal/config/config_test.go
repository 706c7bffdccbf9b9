package config

import (
	"testing"
	"time"
)

func TestLoadCacheConfigDefaults(t *testing.T) {
	cfg := LoadCacheConfig()
	if !cfg.Enabled {
		t.Error("cache should default to enabled")
	}
	if !cfg.Methods["GET"] {
		t.Errorf("cache methods = %v, want GET cached by default", cfg.Methods)
	}
	if cfg.TTL != 30*time.Second {
		t.Errorf("cache TTL = %v, want 30s default", cfg.TTL)
	}
}

func TestLoadCacheConfigFromEnv(t *testing.T) {
	t.Setenv("CACHE_METHODS", "get, head")
	t.Setenv("CACHE_TTL", "2m")
	cfg := LoadCacheConfig()
	if !cfg.Methods["GET"] || !cfg.Methods["HEAD"] {
		t.Errorf("cache methods = %v, want GET and HEAD upper-cased", cfg.Methods)
	}
	if cfg.TTL != 2*time.Minute {
		t.Errorf("cache TTL = %v, want 2m", cfg.TTL)
	}
}

func TestParseDurFallback(t *testing.T) {
	if d := parseDur("nonsense"); d != time.Second {
		t.Errorf("parseDur(nonsense) = %v, want 1s fallback", d)
	}
}

func TestLoadRateLimitConfigClamps(t *testing.T) {
	t.Setenv("RATE_LIMIT_CAPACITY", "0")
	t.Setenv("RATE_LIMIT_REFILL_TOKENS", "-2")
	t.Setenv("RATE_LIMIT_TTL", "1s")
	cfg := LoadRateLimitConfig()
	if cfg.Capacity != 1 {
		t.Errorf("capacity = %d, want clamp to 1", cfg.Capacity)
	}
	if cfg.RefillTokens != 1 {
		t.Errorf("refill tokens = %d, want clamp to 1", cfg.RefillTokens)
	}
	if min := 5 * cfg.RefillInterval; cfg.TTL < min {
		t.Errorf("TTL = %v, want at least %v", cfg.TTL, min)
	}
}

func TestEnvBool(t *testing.T) {
	t.Setenv("SOME_FLAG", "on")
	if !envBool("SOME_FLAG", false) {
		t.Error("envBool should accept on as true")
	}
	t.Setenv("SOME_FLAG", "0")
	if envBool("SOME_FLAG", true) {
		t.Error("envBool should accept 0 as false")
	}
	t.Setenv("SOME_FLAG", "maybe")
	if !envBool("SOME_FLAG", true) {
		t.Error("envBool should fall back to the default on unknown input")
	}
}
