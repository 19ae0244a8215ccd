package cache

import (
	"fmt"

	"github.com/apothekehub/backend/internal/domain/shared"
	"github.com/apothekehub/backend/internal/infrastructure/config"
	"go.uber.org/zap"
)

// SyncLockFactory creates sync locks based on configuration
type SyncLockFactory struct {
	redisConfig           config.RedisConfig
	logger                *zap.Logger
	allowInMemoryFallback bool
}

// SyncLockFactoryOption is a functional option for configuring the factory
type SyncLockFactoryOption func(*SyncLockFactory)

// WithLogger sets the logger for the factory
func WithLogger(logger *zap.Logger) SyncLockFactoryOption {
	return func(f *SyncLockFactory) {
		f.logger = logger
	}
}

// WithInMemoryFallback controls whether to fall back to an in-memory lock
// when Redis is unavailable. Default is true (allow fallback).
func WithInMemoryFallback(allow bool) SyncLockFactoryOption {
	return func(f *SyncLockFactory) {
		f.allowInMemoryFallback = allow
	}
}

// NewSyncLockFactory creates a new factory
func NewSyncLockFactory(cfg config.RedisConfig, opts ...SyncLockFactoryOption) *SyncLockFactory {
	f := &SyncLockFactory{
		redisConfig:           cfg,
		logger:                zap.NewNop(),
		allowInMemoryFallback: true,
	}

	for _, opt := range opts {
		opt(f)
	}

	return f
}

// CreateRedisLock creates a Redis-backed sync lock
func (f *SyncLockFactory) CreateRedisLock() (shared.SyncLock, error) {
	redisCfg := RedisConfig{
		Host:     f.redisConfig.Host,
		Port:     f.redisConfig.Port,
		Password: f.redisConfig.Password,
		DB:       f.redisConfig.DB,
	}

	lock, err := NewRedisSyncLock(redisCfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create Redis sync lock: %w", err)
	}

	return lock, nil
}

// CreateInMemoryLock creates an in-memory sync lock.
// WARNING: In-memory locks do not share state across process instances,
// which can allow concurrent feed syncs in distributed deployments.
func (f *SyncLockFactory) CreateInMemoryLock() shared.SyncLock {
	return NewInMemorySyncLock()
}

// CreateLock creates a sync lock based on whether Redis is enabled and
// reachable, falling back to in-memory when allowed.
func (f *SyncLockFactory) CreateLock() (shared.SyncLock, error) {
	if !f.redisConfig.Enabled {
		f.logger.Info("Redis disabled, using in-memory sync lock")
		return f.CreateInMemoryLock(), nil
	}

	lock, err := f.CreateRedisLock()
	if err == nil {
		f.logger.Info("using Redis sync lock")
		return lock, nil
	}

	if !f.allowInMemoryFallback {
		return nil, fmt.Errorf("Redis required for sync lock but unavailable: %w", err)
	}

	f.logger.Warn("Redis unavailable, falling back to in-memory sync lock. "+
		"This may allow concurrent feed syncs in distributed deployments.",
		zap.Error(err),
	)
	return f.CreateInMemoryLock(), nil
}
