package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"checkfree/utils"

	"github.com/go-redis/redis/v8"
)

// StateStore keeps OAuth state values between login and callback.
type StateStore interface {
	Save(ctx context.Context, state string, ttl time.Duration) error
	// Consume deletes state and reports whether it existed.
	Consume(ctx context.Context, state string) (bool, error)
}

// SessionStore tracks revoked session tokens and caches validated ones.
// Tokens are identified by their SHA-256 hash.
type SessionStore interface {
	Revoke(ctx context.Context, tokenHash string, ttl time.Duration) error
	IsRevoked(ctx context.Context, tokenHash string) (bool, error)
	// Remember caches the user id a validated token belongs to.
	Remember(ctx context.Context, tokenHash, userID string, ttl time.Duration) error
	// Lookup returns the cached user id and extends its TTL; "" on a miss.
	// A failed extension returns the id together with the error.
	Lookup(ctx context.Context, tokenHash string, ttl time.Duration) (string, error)
	Forget(ctx context.Context, tokenHash string) error
}

// RedisStore implements StateStore and SessionStore on the auth cache.
type RedisStore struct {
	Client *redis.Client
}

func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{Client: client}
}

func (s *RedisStore) Save(ctx context.Context, state string, ttl time.Duration) error {
	return s.Client.Set(ctx, utils.OAuthStatePrefix+state, "1", ttl).Err()
}

func (s *RedisStore) Consume(ctx context.Context, state string) (bool, error) {
	n, err := s.Client.Del(ctx, utils.OAuthStatePrefix+state).Result()
	if err != nil {
		return false, err
	}
	return n == 1, nil
}

func (s *RedisStore) Revoke(ctx context.Context, tokenHash string, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}
	return s.Client.Set(ctx, utils.RevokedTokenPrefix+tokenHash, "1", ttl).Err()
}

func (s *RedisStore) IsRevoked(ctx context.Context, tokenHash string) (bool, error) {
	n, err := s.Client.Exists(ctx, utils.RevokedTokenPrefix+tokenHash).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (s *RedisStore) Remember(ctx context.Context, tokenHash, userID string, ttl time.Duration) error {
	return s.Client.Set(ctx, utils.AuthCachePrefix+tokenHash, userID, ttl).Err()
}

func (s *RedisStore) Lookup(ctx context.Context, tokenHash string, ttl time.Duration) (string, error) {
	key := utils.AuthCachePrefix + tokenHash
	userID, err := s.Client.Get(ctx, key).Result()
	if errors.Is(err, redis.Nil) {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	if err := s.Client.Expire(ctx, key, ttl).Err(); err != nil {
		return userID, fmt.Errorf("failed to extend session cache: %w", err)
	}
	return userID, nil
}

func (s *RedisStore) Forget(ctx context.Context, tokenHash string) error {
	return s.Client.Del(ctx, utils.AuthCachePrefix+tokenHash).Err()
}
