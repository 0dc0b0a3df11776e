package config

import (
	"testing"
	"time"
)

func TestLoadRateLimitConfigDefaults(t *testing.T) {
	cfg := LoadRateLimitConfig()
	if !cfg.Enabled {
		t.Error("limiter should default to enabled")
	}
	if cfg.Limit != 10 {
		t.Errorf("Limit = %d, want 10", cfg.Limit)
	}
	if cfg.Window != time.Minute {
		t.Errorf("Window = %s, want 1m", cfg.Window)
	}
}

func TestLoadRateLimitConfigRejectsSubSecondWindow(t *testing.T) {
	for _, w := range []string{"500ms", "0s", "-1m", "garbage"} {
		t.Setenv("RATE_LIMIT_WINDOW", w)
		cfg := LoadRateLimitConfig()
		if cfg.Window < time.Second {
			t.Errorf("RATE_LIMIT_WINDOW=%q: Window = %s, want at least 1s", w, cfg.Window)
		}
	}
}
