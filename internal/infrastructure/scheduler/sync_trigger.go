package scheduler

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"
)

// SyncTriggerConfig holds configuration for the periodic feed sync trigger
type SyncTriggerConfig struct {
	// SyncInterval is how often to trigger a full feed sync
	SyncInterval time.Duration

	// RunOnStart triggers a sync immediately when the trigger starts
	RunOnStart bool
}

// DefaultSyncTriggerConfig returns default sync trigger configuration
func DefaultSyncTriggerConfig() SyncTriggerConfig {
	return SyncTriggerConfig{
		SyncInterval: 6 * time.Hour,
		RunOnStart:   false,
	}
}

// SyncTrigger periodically submits feed sync jobs to the scheduler
type SyncTrigger struct {
	config    SyncTriggerConfig
	scheduler *Scheduler
	logger    *zap.Logger

	cancel    context.CancelFunc
	wg        sync.WaitGroup
	mu        sync.Mutex
	isRunning bool
}

// NewSyncTrigger creates a new periodic sync trigger
func NewSyncTrigger(config SyncTriggerConfig, scheduler *Scheduler, logger *zap.Logger) *SyncTrigger {
	return &SyncTrigger{
		config:    config,
		scheduler: scheduler,
		logger:    logger,
	}
}

// Start starts the trigger loop
func (t *SyncTrigger) Start(ctx context.Context) error {
	t.mu.Lock()
	if t.isRunning {
		t.mu.Unlock()
		return nil
	}
	t.isRunning = true
	t.mu.Unlock()

	ctx, cancel := context.WithCancel(ctx)
	t.cancel = cancel

	t.wg.Add(1)
	go t.run(ctx)

	t.logger.Info("Feed sync trigger started",
		zap.Duration("interval", t.config.SyncInterval),
	)

	return nil
}

// Stop stops the trigger loop
func (t *SyncTrigger) Stop() {
	t.mu.Lock()
	if !t.isRunning {
		t.mu.Unlock()
		return
	}
	t.isRunning = false
	t.mu.Unlock()

	if t.cancel != nil {
		t.cancel()
	}
	t.wg.Wait()

	t.logger.Info("Feed sync trigger stopped")
}

func (t *SyncTrigger) run(ctx context.Context) {
	defer t.wg.Done()

	if t.config.RunOnStart {
		t.trigger()
	}

	ticker := time.NewTicker(t.config.SyncInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			t.trigger()
		}
	}
}

func (t *SyncTrigger) trigger() {
	if err := t.scheduler.ScheduleFeedSync("", 0); err != nil {
		t.logger.Error("Failed to schedule periodic feed sync", zap.Error(err))
	}
}
