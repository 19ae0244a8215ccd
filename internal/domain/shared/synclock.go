package shared

import (
	"context"
	"time"
)

// SyncLock guards long-running jobs so only one run of a given job
// executes at a time, across all processes sharing the lock backend.
type SyncLock interface {
	// Acquire attempts to take the named lock with a TTL.
	// Returns false if another holder currently owns it.
	Acquire(ctx context.Context, name string, ttl time.Duration) (bool, error)

	// Release frees the named lock. Releasing a lock that is not
	// held is a no-op.
	Release(ctx context.Context, name string) error

	// Close closes the lock backend and releases resources
	Close() error
}
