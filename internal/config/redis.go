package config

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

// NewRedisClient connects to the Redis instance backing the auth rate
// limiter, the public-route response cache and the refresh-token store.
// It reads REDIS_ADDR (host:port), REDIS_PASSWORD and REDIS_DB, pings
// with a short timeout, and returns nil when the server is unreachable.
// Every consumer treats a nil client as "run without Redis": tokens
// fall back to process memory and both middlewares turn pass-through.
func NewRedisClient() *redis.Client {
	client := redis.NewClient(&redis.Options{
		Addr:     envStr("REDIS_ADDR", "localhost:6379"),
		Password: envStr("REDIS_PASSWORD", ""),
		DB:       envInt("REDIS_DB", 0),
	})

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil
	}
	return client
}
