package config // package config loads application configuration from environment variables

import (
	"log/slog"
	"os"
	"strconv"
	"time"
)

// Config holds the core runtime configuration. Each field corresponds to
// an environment variable; every value has a development default so the
// server starts with no environment at all. Redis, rate limiting and the
// response cache carry their own config structs in this package.
type Config struct {
	Env            string // application environment (e.g. "dev", "prod")
	Port           string // HTTP port to listen on
	JWTSecret      string // secret used to sign access tokens
	AccessTTLMin   int    // access token time-to-live in minutes
	RefreshTTLDays int    // refresh token time-to-live in days
	BcryptCost     int    // bcrypt cost for password hashing
	SeedDemoData   bool   // fill the store with demo data on startup
}

// Load reads configuration from environment variables, applying defaults
// for anything unset. A default JWT secret is tolerated but logged, since
// this service also runs as a public demo.
func Load() Config {
	cfg := Config{
		Env:            envStr("APP_ENV", "dev"),
		Port:           envStr("APP_PORT", "8080"),
		JWTSecret:      envStr("JWT_SECRET", ""),
		AccessTTLMin:   envInt("ACCESS_TOKEN_TTL_MIN", 15),
		RefreshTTLDays: envInt("REFRESH_TOKEN_TTL_DAYS", 7),
		BcryptCost:     envInt("BCRYPT_COST", 10),
		SeedDemoData:   envBool("SEED_DEMO_DATA", true),
	}
	if cfg.JWTSecret == "" {
		cfg.JWTSecret = "dev-only-secret"
		slog.Warn("JWT_SECRET not set, using development default")
	}
	return cfg
}

// env helpers shared by the loaders in this package.

func envStr(k, d string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return d
}

func envInt(k string, d int) int {
	v := os.Getenv(k)
	if v == "" {
		return d
	}
	if n, err := strconv.Atoi(v); err == nil {
		return n
	}
	return d
}

func envBool(k string, d bool) bool {
	v := os.Getenv(k)
	if v == "" {
		return d
	}
	switch v {
	case "1", "true", "TRUE", "True", "yes", "on":
		return true
	case "0", "false", "FALSE", "False", "no", "off":
		return false
	}
	return d
}

func envDur(k string, d time.Duration) time.Duration {
	v := os.Getenv(k)
	if v == "" {
		return d
	}
	if dur, err := time.ParseDuration(v); err == nil {
		return dur
	}
	return d
}
