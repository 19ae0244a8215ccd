package sync

import (
	"fmt"
	"time"

	"github.com/apothekehub/backend/internal/domain/shared"
)

// SyncStatus represents the status of a feed sync run
type SyncStatus string

const (
	SyncStatusPending   SyncStatus = "pending"
	SyncStatusRunning   SyncStatus = "running"
	SyncStatusCompleted SyncStatus = "completed"
	SyncStatusFailed    SyncStatus = "failed"
)

// IsValid checks if the status is valid
func (s SyncStatus) IsValid() bool {
	switch s {
	case SyncStatusPending, SyncStatusRunning, SyncStatusCompleted, SyncStatusFailed:
		return true
	}
	return false
}

// IsTerminal returns true if this is a terminal state
func (s SyncStatus) IsTerminal() bool {
	return s == SyncStatusCompleted || s == SyncStatusFailed
}

// SyncTrigger records what started a sync run
type SyncTrigger string

const (
	SyncTriggerManual    SyncTrigger = "manual"
	SyncTriggerScheduled SyncTrigger = "scheduled"
)

// SyncHistory tracks one feed sync run: where the feed came from, how
// many items it yielded, and how the catalog changed.
type SyncHistory struct {
	shared.BaseAggregateRoot
	FeedURL      string      `gorm:"type:text;not null"`
	Trigger      SyncTrigger `gorm:"type:varchar(20);not null;default:'manual';column:triggered_by"`
	Status       SyncStatus  `gorm:"type:varchar(20);not null;default:'pending';index"`
	TotalItems   int         `gorm:"not null;default:0"`
	CreatedItems int         `gorm:"not null;default:0"`
	UpdatedItems int         `gorm:"not null;default:0"`
	SkippedItems int         `gorm:"not null;default:0"`
	ErrorMessage string      `gorm:"type:text"`
	StartedAt    *time.Time
	CompletedAt  *time.Time
}

// TableName returns the table name for GORM
func (SyncHistory) TableName() string {
	return "sync_histories"
}

// NewSyncHistory creates a pending sync run record
func NewSyncHistory(feedURL string, trigger SyncTrigger) (*SyncHistory, error) {
	if feedURL == "" {
		return nil, shared.NewDomainError("INVALID_FEED_URL", "Feed URL cannot be empty")
	}

	return &SyncHistory{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		FeedURL:           feedURL,
		Trigger:           trigger,
		Status:            SyncStatusPending,
	}, nil
}

// Start marks the run as running
func (h *SyncHistory) Start() error {
	if h.Status != SyncStatusPending {
		return shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Cannot start sync from state: %s", h.Status))
	}

	h.Status = SyncStatusRunning
	now := time.Now()
	h.StartedAt = &now
	h.UpdatedAt = now
	h.IncrementVersion()

	return nil
}

// Complete marks the run as completed with its final counters
func (h *SyncHistory) Complete(total, created, updated, skipped int) error {
	if h.Status != SyncStatusRunning {
		return shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Cannot complete sync from state: %s", h.Status))
	}

	h.Status = SyncStatusCompleted
	h.TotalItems = total
	h.CreatedItems = created
	h.UpdatedItems = updated
	h.SkippedItems = skipped
	now := time.Now()
	h.CompletedAt = &now
	h.UpdatedAt = now
	h.IncrementVersion()

	return nil
}

// Fail marks the run as failed, keeping whatever progress was made
func (h *SyncHistory) Fail(message string, created, updated, skipped int) error {
	if h.Status.IsTerminal() {
		return shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Cannot fail sync from terminal state: %s", h.Status))
	}

	h.Status = SyncStatusFailed
	h.ErrorMessage = message
	h.CreatedItems = created
	h.UpdatedItems = updated
	h.SkippedItems = skipped
	now := time.Now()
	h.CompletedAt = &now
	h.UpdatedAt = now
	h.IncrementVersion()

	return nil
}
