package config

import "time"

// RateLimitConfig controls the fixed-window limiter applied to the
// authentication endpoints. The limiter exists to absorb credential
// stuffing and signup floods; a disabled limiter or a missing Redis
// client means requests pass through untouched.
type RateLimitConfig struct {
	Enabled bool
	Limit   int           // max requests per window per client
	Window  time.Duration // window length
	Prefix  string        // redis key namespace
}

// LoadRateLimitConfig reads limiter settings from the environment
// with conservative defaults suited to login/register traffic.
func LoadRateLimitConfig() RateLimitConfig {
	cfg := RateLimitConfig{
		Enabled: getenv("RATE_LIMIT_ENABLED", "true") == "true",
		Limit:   getenvInt("RATE_LIMIT_MAX", 10),
		Window:  parseDur(getenv("RATE_LIMIT_WINDOW", "1m")),
		Prefix:  getenv("RATE_LIMIT_PREFIX", "rl"),
	}
	if cfg.Limit < 1 {
		cfg.Limit = 1
	}
	// Sub-second windows are meaningless for login throttling and
	// would break second-granular window math downstream.
	if cfg.Window < time.Second {
		cfg.Window = time.Minute
	}
	return cfg
}

func parseDur(s string) time.Duration {
	d, err := time.ParseDuration(s)
	if err != nil {
		return time.Minute
	}
	return d
}
