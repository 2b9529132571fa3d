package config

import "time"

// CacheConfig tunes the response cache sitting on the public lookup
// routes (product by code, passport verification). Cached verify
// responses can lag a just-appended history event by up to TTL, so the
// default stays short. A MaxBodyBytes of 0 means no size limit.
type CacheConfig struct {
	Enabled      bool
	TTL          time.Duration
	Prefix       string
	MaxBodyBytes int
}

// LoadCacheConfig reads the PASSPORT_CACHE_* environment variables,
// falling back to defaults suited to the demo deployment.
func LoadCacheConfig() CacheConfig {
	cfg := CacheConfig{
		Enabled:      envBool("PASSPORT_CACHE_ENABLED", true),
		TTL:          envDur("PASSPORT_CACHE_TTL", 30*time.Second),
		Prefix:       envStr("PASSPORT_CACHE_PREFIX", "passport:cache"),
		MaxBodyBytes: envInt("PASSPORT_CACHE_MAX_BODY_BYTES", 1<<20),
	}
	if cfg.TTL <= 0 {
		cfg.TTL = 30 * time.Second
	}
	return cfg
}
