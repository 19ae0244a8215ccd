package feedsync

import (
	"context"
	"time"

	"github.com/apothekehub/backend/internal/domain/shared"
	syncdomain "github.com/apothekehub/backend/internal/domain/sync"
	"github.com/google/uuid"
)

// ListHistoryRequest represents sync history query parameters
type ListHistoryRequest struct {
	Page     int    `form:"page" binding:"omitempty,min=1"`
	PageSize int    `form:"page_size" binding:"omitempty,min=1,max=100"`
	Status   string `form:"status" binding:"omitempty,oneof=pending running completed failed"`
	Trigger  string `form:"trigger" binding:"omitempty,oneof=manual scheduled"`
}

// SyncHistoryResponse represents one sync run in API responses
type SyncHistoryResponse struct {
	ID           uuid.UUID  `json:"id"`
	FeedURL      string     `json:"feed_url"`
	Trigger      string     `json:"trigger"`
	Status       string     `json:"status"`
	TotalItems   int        `json:"total_items"`
	CreatedItems int        `json:"created_items"`
	UpdatedItems int        `json:"updated_items"`
	SkippedItems int        `json:"skipped_items"`
	ErrorMessage string     `json:"error_message,omitempty"`
	StartedAt    *time.Time `json:"started_at"`
	CompletedAt  *time.Time `json:"completed_at"`
	CreatedAt    time.Time  `json:"created_at"`
}

func toSyncHistoryResponse(h *syncdomain.SyncHistory) SyncHistoryResponse {
	return SyncHistoryResponse{
		ID:           h.ID,
		FeedURL:      h.FeedURL,
		Trigger:      string(h.Trigger),
		Status:       string(h.Status),
		TotalItems:   h.TotalItems,
		CreatedItems: h.CreatedItems,
		UpdatedItems: h.UpdatedItems,
		SkippedItems: h.SkippedItems,
		ErrorMessage: h.ErrorMessage,
		StartedAt:    h.StartedAt,
		CompletedAt:  h.CompletedAt,
		CreatedAt:    h.CreatedAt,
	}
}

// HistoryListResult represents a paginated sync history list
type HistoryListResult struct {
	Items      []SyncHistoryResponse `json:"items"`
	Total      int64                 `json:"total"`
	Page       int                   `json:"page"`
	PageSize   int                   `json:"page_size"`
	TotalPages int                   `json:"total_pages"`
}

// HistoryService exposes the recorded sync runs
type HistoryService struct {
	historyRepo syncdomain.SyncHistoryRepository
}

// NewHistoryService creates a new HistoryService
func NewHistoryService(historyRepo syncdomain.SyncHistoryRepository) *HistoryService {
	return &HistoryService{historyRepo: historyRepo}
}

// GetSyncRun returns one sync run by ID
func (s *HistoryService) GetSyncRun(ctx context.Context, id uuid.UUID) (*SyncHistoryResponse, error) {
	history, err := s.historyRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	resp := toSyncHistoryResponse(history)
	return &resp, nil
}

// GetLatestSyncRun returns the most recent sync run, if any
func (s *HistoryService) GetLatestSyncRun(ctx context.Context) (*SyncHistoryResponse, error) {
	history, err := s.historyRepo.FindLatest(ctx)
	if err != nil {
		return nil, err
	}

	resp := toSyncHistoryResponse(history)
	return &resp, nil
}

// ListSyncRuns returns sync runs, newest first
func (s *HistoryService) ListSyncRuns(ctx context.Context, req ListHistoryRequest) (*HistoryListResult, error) {
	page := req.Page
	if page <= 0 {
		page = 1
	}
	pageSize := req.PageSize
	if pageSize <= 0 {
		pageSize = 20
	}

	filter := syncdomain.SyncHistoryFilter{}
	if req.Status != "" {
		status := syncdomain.SyncStatus(req.Status)
		filter.Status = &status
	}
	if req.Trigger != "" {
		trigger := syncdomain.SyncTrigger(req.Trigger)
		filter.Trigger = &trigger
	}

	listed, err := s.historyRepo.FindAll(ctx, filter, page, pageSize)
	if err != nil {
		return nil, err
	}

	items := make([]SyncHistoryResponse, len(listed.Items))
	for i, h := range listed.Items {
		items[i] = toSyncHistoryResponse(h)
	}

	paginated := shared.NewPaginated(items, listed.TotalCount, page, pageSize)
	return &HistoryListResult{
		Items:      paginated.Items,
		Total:      paginated.Total,
		Page:       paginated.Page,
		PageSize:   paginated.PageSize,
		TotalPages: paginated.TotalPages,
	}, nil
}
