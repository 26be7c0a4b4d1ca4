package repository

import (
	"context"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisRevocationRepository keeps the token denylist in Redis. Each entry is
// a key with a TTL equal to the token's remaining lifetime, so Redis drops it
// exactly when the token would have been rejected as expired anyway.
type RedisRevocationRepository struct {
	client    redis.Cmdable
	keyPrefix string
	now       func() time.Time
}

// NewRedisRevocationRepository creates a RedisRevocationRepository.
func NewRedisRevocationRepository(client redis.Cmdable, keyPrefix string) *RedisRevocationRepository {
	return &RedisRevocationRepository{
		client:    client,
		keyPrefix: keyPrefix,
		now:       time.Now,
	}
}

func (r *RedisRevocationRepository) key(tokenID string) string {
	return r.keyPrefix + tokenID
}

// Revoke stores the token id until expiresAt. Already expired tokens are skipped.
func (r *RedisRevocationRepository) Revoke(ctx context.Context, tokenID string, userID int64, expiresAt time.Time) error {
	ttl := expiresAt.Sub(r.now())
	if ttl <= 0 {
		return nil
	}
	return r.client.Set(ctx, r.key(tokenID), strconv.FormatInt(userID, 10), ttl).Err()
}

func (r *RedisRevocationRepository) IsRevoked(ctx context.Context, tokenID string) (bool, error) {
	n, err := r.client.Exists(ctx, r.key(tokenID)).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// PurgeExpired is a no-op: keys expire on their own.
func (r *RedisRevocationRepository) PurgeExpired(context.Context) (int64, error) {
	return 0, nil
}
