package cache

import (
	"context"
	"sync"
	"time"

	"github.com/apothekehub/backend/internal/domain/shared"
)

// lockEntry represents a held lock with expiration
type lockEntry struct {
	expiresAt time.Time
}

// InMemorySyncLock implements SyncLock using an in-memory map.
// This is suitable for single-instance deployments and testing.
type InMemorySyncLock struct {
	mu        sync.Mutex
	locks     map[string]lockEntry
	stopChan  chan struct{}
	wg        sync.WaitGroup
	closeOnce sync.Once
}

// NewInMemorySyncLock creates a new in-memory sync lock.
// It starts a background goroutine to clean up expired locks.
func NewInMemorySyncLock() *InMemorySyncLock {
	l := &InMemorySyncLock{
		locks:    make(map[string]lockEntry),
		stopChan: make(chan struct{}),
	}

	l.wg.Add(1)
	go l.cleanupLoop()

	return l
}

// Acquire attempts to take the named lock with a TTL.
// Returns false if another holder currently owns it.
func (l *InMemorySyncLock) Acquire(ctx context.Context, name string, ttl time.Duration) (bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if e, exists := l.locks[name]; exists {
		if time.Now().Before(e.expiresAt) {
			return false, nil // Held by someone else
		}
		// Lock exists but expired, will be overwritten
	}

	l.locks[name] = lockEntry{
		expiresAt: time.Now().Add(ttl),
	}

	return true, nil
}

// Release frees the named lock. Releasing an unheld lock is a no-op.
func (l *InMemorySyncLock) Release(ctx context.Context, name string) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	delete(l.locks, name)
	return nil
}

// Close stops the cleanup goroutine and releases resources.
// Safe to call multiple times.
func (l *InMemorySyncLock) Close() error {
	l.closeOnce.Do(func() {
		close(l.stopChan)
		l.wg.Wait()
	})
	return nil
}

// cleanupLoop periodically removes expired locks
func (l *InMemorySyncLock) cleanupLoop() {
	defer l.wg.Done()

	ticker := time.NewTicker(time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-l.stopChan:
			return
		case <-ticker.C:
			l.cleanup()
		}
	}
}

// cleanup removes expired locks from the map
func (l *InMemorySyncLock) cleanup() {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := time.Now()
	for name, e := range l.locks {
		if now.After(e.expiresAt) {
			delete(l.locks, name)
		}
	}
}

// Size returns the number of held locks (for testing/monitoring)
func (l *InMemorySyncLock) Size() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.locks)
}

// Ensure InMemorySyncLock implements SyncLock
var _ shared.SyncLock = (*InMemorySyncLock)(nil)
