package feedsync

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/apothekehub/backend/internal/domain/catalog"
	"github.com/apothekehub/backend/internal/domain/shared"
	"github.com/apothekehub/backend/internal/infrastructure/feed"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ProductArchiver preserves marketing content before a product row
// disappears. Implemented by the backup service.
type ProductArchiver interface {
	ArchiveProduct(ctx context.Context, product *catalog.Product) (bool, string, error)
}

// OrphanProduct is one catalog product whose SKU no longer appears in
// the feed
type OrphanProduct struct {
	ID           uuid.UUID  `json:"id"`
	SKU          string     `json:"sku"`
	Name         string     `json:"name"`
	LastSyncedAt *time.Time `json:"last_synced_at"`
	HasMarketing bool       `json:"has_marketing"`
}

// OrphanCheckResult lists the orphans found in one check
type OrphanCheckResult struct {
	FeedURL      string          `json:"feed_url"`
	FeedSKUCount int             `json:"feed_sku_count"`
	Orphans      []OrphanProduct `json:"orphans"`
	CheckedAt    time.Time       `json:"checked_at"`
}

// DeletedOrphan reports the outcome of deleting one orphan
type DeletedOrphan struct {
	ID       uuid.UUID `json:"id"`
	SKU      string    `json:"sku,omitempty"`
	BackedUp bool      `json:"backed_up"`
	Reason   string    `json:"reason,omitempty"`
}

// DeleteOrphansResult summarizes an orphan deletion run
type DeleteOrphansResult struct {
	Deleted  []DeletedOrphan `json:"deleted"`
	NotFound []uuid.UUID     `json:"not_found"`
}

// OrphanService finds and removes catalog products the feed no longer
// carries. Detection and deletion are separate steps: the portal shows
// the candidates and a human confirms which ones go.
type OrphanService struct {
	productRepo catalog.ProductRepository
	source      FeedSource
	archiver    ProductArchiver
	eventBus    shared.EventPublisher
	feedURL     string
	logger      *zap.Logger
}

// NewOrphanService creates a new OrphanService
func NewOrphanService(
	productRepo catalog.ProductRepository,
	source FeedSource,
	archiver ProductArchiver,
	eventBus shared.EventPublisher,
	feedURL string,
	logger *zap.Logger,
) *OrphanService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &OrphanService{
		productRepo: productRepo,
		source:      source,
		archiver:    archiver,
		eventBus:    eventBus,
		feedURL:     feedURL,
		logger:      logger,
	}
}

// CheckOrphans fetches the current feed and reports every catalog
// product whose SKU is absent from it. Products without a SKU never
// count as orphans: they were created by hand and have no feed identity.
func (s *OrphanService) CheckOrphans(ctx context.Context, feedURL string) (*OrphanCheckResult, error) {
	if feedURL == "" {
		feedURL = s.feedURL
	}

	feedSKUs, err := s.fetchFeedSKUs(ctx, feedURL)
	if err != nil {
		return nil, err
	}

	catalogSKUs, err := s.productRepo.FindAllSKUs(ctx)
	if err != nil {
		return nil, err
	}

	result := &OrphanCheckResult{
		FeedURL:      feedURL,
		FeedSKUCount: len(feedSKUs),
		Orphans:      []OrphanProduct{},
		CheckedAt:    time.Now(),
	}

	for _, sku := range catalogSKUs {
		if _, ok := feedSKUs[sku]; ok {
			continue
		}

		product, err := s.productRepo.FindBySKU(ctx, sku)
		if err != nil {
			if errors.Is(err, shared.ErrNotFound) {
				continue
			}
			return nil, err
		}

		result.Orphans = append(result.Orphans, OrphanProduct{
			ID:           product.ID,
			SKU:          sku,
			Name:         product.Name,
			LastSyncedAt: product.LastSyncedAt,
			HasMarketing: product.HasMarketingContent(),
		})
	}

	s.logger.Info("orphan check finished",
		zap.String("feed_url", feedURL),
		zap.Int("feed_skus", len(feedSKUs)),
		zap.Int("orphans", len(result.Orphans)))

	return result, nil
}

// DeleteOrphans removes the given products, preserving marketing
// content and gallery references first. IDs that no longer resolve are
// reported, not failed: the check ran earlier and the catalog may have
// moved on.
func (s *OrphanService) DeleteOrphans(ctx context.Context, ids []uuid.UUID) (*DeleteOrphansResult, error) {
	result := &DeleteOrphansResult{
		Deleted:  []DeletedOrphan{},
		NotFound: []uuid.UUID{},
	}

	for _, id := range ids {
		product, err := s.productRepo.FindByID(ctx, id)
		if err != nil {
			if errors.Is(err, shared.ErrNotFound) {
				result.NotFound = append(result.NotFound, id)
				continue
			}
			return nil, err
		}

		backedUp, reason, err := s.archiver.ArchiveProduct(ctx, product)
		if err != nil {
			return nil, fmt.Errorf("failed to back up product %s: %w", id, err)
		}

		if err := s.productRepo.Delete(ctx, product.ID); err != nil {
			return nil, err
		}

		if s.eventBus != nil {
			_ = s.eventBus.Publish(ctx, catalog.NewProductDeletedEvent(product, backedUp))
		}

		deleted := DeletedOrphan{ID: product.ID, BackedUp: backedUp, Reason: reason}
		if product.SKU != nil {
			deleted.SKU = *product.SKU
		}
		result.Deleted = append(result.Deleted, deleted)
	}

	s.logger.Info("orphans deleted",
		zap.Int("deleted", len(result.Deleted)),
		zap.Int("not_found", len(result.NotFound)))

	return result, nil
}

// fetchFeedSKUs downloads and parses the feed, returning the SKU set
func (s *OrphanService) fetchFeedSKUs(ctx context.Context, feedURL string) (map[string]struct{}, error) {
	body, err := s.source.Fetch(ctx, feedURL)
	if err != nil {
		return nil, err
	}
	defer body.Close()

	parsed, err := feed.NewParser().Parse(body)
	if err != nil {
		return nil, err
	}

	skus := make(map[string]struct{}, len(parsed.Items))
	for _, item := range parsed.Items {
		skus[item.SKU] = struct{}{}
	}
	return skus, nil
}
