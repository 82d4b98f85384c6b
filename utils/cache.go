package utils

import (
	"context"
	"fmt"
	"time"

	"checkfree/config"

	"github.com/go-redis/redis/v8"
)

// AuthCacheClient is the Redis client for sessions, OAuth states and the authorization cache.
var AuthCacheClient *redis.Client

// InitAuthCache connects AuthCacheClient using the REDIS_* settings.
func InitAuthCache(ctx context.Context) error {
	client := redis.NewClient(&redis.Options{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisAuthDB,
	})
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return fmt.Errorf("failed to connect to Redis (Auth Cache): %w", err)
	}
	AuthCacheClient = client
	return nil
}

// GetAuthCacheClient returns the Redis client for authorization caching.
func GetAuthCacheClient() *redis.Client {
	return AuthCacheClient
}
