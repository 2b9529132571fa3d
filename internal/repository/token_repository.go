package repository

import (
	"context"
	"errors"
	"strconv"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

// ErrTokenInvalid is returned when a refresh token hash is unknown,
// expired or revoked.
var ErrTokenInvalid = errors.New("invalid refresh token")

// TokenRepo stores refresh tokens by their SHA-256 hash. With a Redis
// client the hashes live in Redis under a TTL, so they survive restarts
// and expire on their own; without one (nil client) an in-process map is
// used and revocation/expiry are handled locally.
type TokenRepo struct {
	rdb    *redis.Client
	mu     sync.Mutex
	local  map[string]localToken
	prefix string
}

type localToken struct {
	userID uint64
	exp    time.Time
}

func NewTokenRepo(rdb *redis.Client) *TokenRepo {
	return &TokenRepo{
		rdb:    rdb,
		local:  make(map[string]localToken),
		prefix: "refresh:",
	}
}

// StoreRefresh records a token hash for the user until exp.
func (r *TokenRepo) StoreRefresh(ctx context.Context, userID uint64, tokenHash string, exp time.Time) error {
	if r.rdb != nil {
		ttl := time.Until(exp)
		if ttl <= 0 {
			return ErrTokenInvalid
		}
		return r.rdb.Set(ctx, r.prefix+tokenHash, strconv.FormatUint(userID, 10), ttl).Err()
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.local[tokenHash] = localToken{userID: userID, exp: exp}
	return nil
}

// ValidateRefresh returns the owning user id if the token hash exists and
// has not expired or been revoked.
func (r *TokenRepo) ValidateRefresh(ctx context.Context, tokenHash string) (uint64, error) {
	if r.rdb != nil {
		v, err := r.rdb.Get(ctx, r.prefix+tokenHash).Result()
		if err != nil {
			return 0, ErrTokenInvalid
		}
		uid, err := strconv.ParseUint(v, 10, 64)
		if err != nil {
			return 0, ErrTokenInvalid
		}
		return uid, nil
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	t, ok := r.local[tokenHash]
	if !ok || time.Now().UTC().After(t.exp) {
		delete(r.local, tokenHash)
		return 0, ErrTokenInvalid
	}
	return t.userID, nil
}

// RevokeByHash removes a single token.
func (r *TokenRepo) RevokeByHash(ctx context.Context, tokenHash string) error {
	if r.rdb != nil {
		return r.rdb.Del(ctx, r.prefix+tokenHash).Err()
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.local, tokenHash)
	return nil
}
