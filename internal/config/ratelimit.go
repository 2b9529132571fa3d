package config

import "time"

// RateLimitConfig tunes the token bucket guarding the credential
// endpoints. The defaults allow a burst of 20 requests per client IP
// and route, refilling one token per second; generous for a human
// clicking through the demo, tight enough to blunt password guessing.
type RateLimitConfig struct {
	Enabled        bool
	Capacity       int
	RefillTokens   int
	RefillInterval time.Duration
	TTL            time.Duration
	Prefix         string
	PerRoute       bool
}

// LoadRateLimitConfig reads the AUTH_RATE_LIMIT_* environment
// variables. Out-of-range values are clamped rather than rejected, and
// the bucket TTL is kept long enough for a drained bucket to fully
// refill before Redis expires it.
func LoadRateLimitConfig() RateLimitConfig {
	cfg := RateLimitConfig{
		Enabled:        envBool("AUTH_RATE_LIMIT_ENABLED", true),
		Capacity:       envInt("AUTH_RATE_LIMIT_CAPACITY", 20),
		RefillTokens:   envInt("AUTH_RATE_LIMIT_REFILL_TOKENS", 1),
		RefillInterval: envDur("AUTH_RATE_LIMIT_REFILL_INTERVAL", time.Second),
		TTL:            envDur("AUTH_RATE_LIMIT_TTL", 10*time.Minute),
		Prefix:         envStr("AUTH_RATE_LIMIT_PREFIX", "passport:rl"),
		PerRoute:       envBool("AUTH_RATE_LIMIT_PER_ROUTE", true),
	}
	if cfg.Capacity < 1 {
		cfg.Capacity = 1
	}
	if cfg.RefillTokens < 1 {
		cfg.RefillTokens = 1
	}
	if cfg.RefillInterval <= 0 {
		cfg.RefillInterval = time.Second
	}
	refillAll := time.Duration(cfg.Capacity/cfg.RefillTokens+1) * cfg.RefillInterval
	if cfg.TTL < refillAll {
		cfg.TTL = refillAll
	}
	return cfg
}
