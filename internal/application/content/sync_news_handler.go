package content

import (
	"context"
	"fmt"

	"github.com/apothekehub/backend/internal/domain/content"
	"github.com/apothekehub/backend/internal/domain/shared"
	syncdomain "github.com/apothekehub/backend/internal/domain/sync"
	"go.uber.org/zap"
)

var _ shared.EventHandler = (*SyncNewsHandler)(nil)

// SyncNewsHandler posts a dashboard announcement whenever a feed sync
// adds new products, so the sales team notices fresh catalog entries
// without checking the sync history.
type SyncNewsHandler struct {
	newsRepo content.NewsPostRepository
	logger   *zap.Logger
}

// NewSyncNewsHandler creates a new SyncNewsHandler
func NewSyncNewsHandler(newsRepo content.NewsPostRepository, logger *zap.Logger) *SyncNewsHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SyncNewsHandler{newsRepo: newsRepo, logger: logger}
}

// EventTypes implements shared.EventHandler
func (h *SyncNewsHandler) EventTypes() []string {
	return []string{syncdomain.EventTypeSyncCompleted}
}

// Handle implements shared.EventHandler
func (h *SyncNewsHandler) Handle(ctx context.Context, event shared.DomainEvent) error {
	completed, ok := event.(*syncdomain.SyncCompletedEvent)
	if !ok {
		return nil
	}

	// Syncs that only refreshed existing products are routine; an
	// announcement would just be noise.
	if completed.CreatedItems == 0 {
		return nil
	}

	title := fmt.Sprintf("%d new products arrived in the catalog", completed.CreatedItems)
	body := fmt.Sprintf(
		"The latest feed sync processed %d items: %d new, %d updated. Have a look at the new arrivals and add marketing content.",
		completed.TotalItems, completed.CreatedItems, completed.UpdatedItems)

	post, err := content.NewNewsPost(title, body, "")
	if err != nil {
		return err
	}

	if err := h.newsRepo.Save(ctx, post); err != nil {
		return fmt.Errorf("failed to save sync announcement: %w", err)
	}

	h.logger.Info("sync announcement posted",
		zap.String("sync_id", completed.SyncID.String()),
		zap.Int("created_items", completed.CreatedItems))

	return nil
}
