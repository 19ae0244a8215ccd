package sync

import (
	"github.com/apothekehub/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// Aggregate type constant
const AggregateTypeSyncHistory = "SyncHistory"

// Event type constants
const (
	EventTypeSyncCompleted = "SyncCompleted"
	EventTypeSyncFailed    = "SyncFailed"
)

// SyncCompletedEvent is published when a feed sync run finishes
type SyncCompletedEvent struct {
	shared.BaseDomainEvent
	SyncID       uuid.UUID `json:"sync_id"`
	FeedURL      string    `json:"feed_url"`
	TotalItems   int       `json:"total_items"`
	CreatedItems int       `json:"created_items"`
	UpdatedItems int       `json:"updated_items"`
	SkippedItems int       `json:"skipped_items"`
}

// NewSyncCompletedEvent creates a new SyncCompletedEvent
func NewSyncCompletedEvent(history *SyncHistory) *SyncCompletedEvent {
	return &SyncCompletedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeSyncCompleted, AggregateTypeSyncHistory, history.ID),
		SyncID:          history.ID,
		FeedURL:         history.FeedURL,
		TotalItems:      history.TotalItems,
		CreatedItems:    history.CreatedItems,
		UpdatedItems:    history.UpdatedItems,
		SkippedItems:    history.SkippedItems,
	}
}

// SyncFailedEvent is published when a feed sync run fails
type SyncFailedEvent struct {
	shared.BaseDomainEvent
	SyncID       uuid.UUID `json:"sync_id"`
	FeedURL      string    `json:"feed_url"`
	ErrorMessage string    `json:"error_message"`
}

// NewSyncFailedEvent creates a new SyncFailedEvent
func NewSyncFailedEvent(history *SyncHistory) *SyncFailedEvent {
	return &SyncFailedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeSyncFailed, AggregateTypeSyncHistory, history.ID),
		SyncID:          history.ID,
		FeedURL:         history.FeedURL,
		ErrorMessage:    history.ErrorMessage,
	}
}
