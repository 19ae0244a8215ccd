package sync

import (
	"context"

	"github.com/google/uuid"
)

// SyncHistoryFilter defines the filters for querying sync runs
type SyncHistoryFilter struct {
	Status  *SyncStatus
	Trigger *SyncTrigger
}

// SyncHistoryListResult represents a paginated list of sync runs
type SyncHistoryListResult struct {
	Items      []*SyncHistory
	TotalCount int64
	Page       int
	PageSize   int
}

// SyncHistoryRepository defines the interface for sync history persistence
type SyncHistoryRepository interface {
	// FindByID finds a sync run by ID
	FindByID(ctx context.Context, id uuid.UUID) (*SyncHistory, error)

	// FindAll returns sync runs, newest first, with pagination and filtering
	FindAll(ctx context.Context, filter SyncHistoryFilter, page, pageSize int) (*SyncHistoryListResult, error)

	// FindLatest returns the most recent sync run, if any
	FindLatest(ctx context.Context) (*SyncHistory, error)

	// Save saves a sync run (create or update)
	Save(ctx context.Context, history *SyncHistory) error
}
