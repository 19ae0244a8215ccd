package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/apothekehub/backend/internal/domain/shared"
	"github.com/redis/go-redis/v9"
)

// RedisSyncLock implements SyncLock using Redis.
// This is suitable for distributed deployments where multiple instances
// must agree on who runs a feed sync.
type RedisSyncLock struct {
	client    *redis.Client
	keyPrefix string
}

// RedisConfig holds Redis connection configuration
type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
}

// NewRedisSyncLock creates a new Redis-backed sync lock
func NewRedisSyncLock(cfg RedisConfig) (*RedisSyncLock, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	// Test connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return &RedisSyncLock{
		client:    client,
		keyPrefix: "sync:lock:",
	}, nil
}

// NewRedisSyncLockWithClient creates a lock with an existing Redis client.
// This is useful for testing or when sharing a client across components.
func NewRedisSyncLockWithClient(client *redis.Client, keyPrefix string) *RedisSyncLock {
	if keyPrefix == "" {
		keyPrefix = "sync:lock:"
	}
	return &RedisSyncLock{
		client:    client,
		keyPrefix: keyPrefix,
	}
}

// Acquire attempts to take the named lock with a TTL.
// Uses SETNX (SET if Not eXists) for atomic operation. The TTL guards
// against a crashed holder keeping the lock forever.
func (l *RedisSyncLock) Acquire(ctx context.Context, name string, ttl time.Duration) (bool, error) {
	key := l.keyPrefix + name

	result, err := l.client.SetNX(ctx, key, "1", ttl).Result()
	if err != nil {
		return false, fmt.Errorf("failed to acquire sync lock: %w", err)
	}

	return result, nil
}

// Release frees the named lock
func (l *RedisSyncLock) Release(ctx context.Context, name string) error {
	key := l.keyPrefix + name

	if err := l.client.Del(ctx, key).Err(); err != nil {
		return fmt.Errorf("failed to release sync lock: %w", err)
	}

	return nil
}

// Close closes the Redis client
func (l *RedisSyncLock) Close() error {
	return l.client.Close()
}

// GetClient returns the underlying Redis client (for testing/monitoring)
func (l *RedisSyncLock) GetClient() *redis.Client {
	return l.client
}

// Ensure RedisSyncLock implements SyncLock
var _ shared.SyncLock = (*RedisSyncLock)(nil)
