package feedsync

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/apothekehub/backend/internal/domain/catalog"
	"github.com/apothekehub/backend/internal/domain/shared"
	syncdomain "github.com/apothekehub/backend/internal/domain/sync"
	"github.com/apothekehub/backend/internal/infrastructure/feed"
	"go.uber.org/zap"
)

// lockName is the shared lock guarding sync runs. One name for the
// whole deployment: only one run, whatever triggered it.
const lockName = "feed-sync"

// FeedSource fetches the raw feed document. Implemented by feed.Client.
type FeedSource interface {
	Fetch(ctx context.Context, feedURL string) (io.ReadCloser, error)
}

// BatchRepos bundles the repositories a batch transaction works on.
// All of them are bound to the same database transaction.
type BatchRepos struct {
	Products       catalog.ProductRepository
	Taxonomies     catalog.FeedTaxonomyRepository
	Backups        catalog.MarketingBackupRepository
	GalleryImages  catalog.GalleryImageRepository
	GalleryBackups catalog.GalleryBackupRepository
}

// TransactionManager runs a function inside one database transaction,
// handing it repositories bound to that transaction
type TransactionManager interface {
	InTransaction(ctx context.Context, fn func(repos BatchRepos) error) error
}

// SyncServiceConfig holds configuration for the sync service
type SyncServiceConfig struct {
	// DefaultFeedURL is used when a request does not name a feed
	DefaultFeedURL string
	// BatchSize is the number of items written per transaction
	BatchSize int
	// LockTTL bounds how long a crashed run can hold the sync lock
	LockTTL time.Duration
}

// SyncService reconciles the catalog against the supplier feed. Feed
// fields are overwritten, marketing fields are never touched, and every
// run is recorded in the sync history.
type SyncService struct {
	source      FeedSource
	txManager   TransactionManager
	historyRepo syncdomain.SyncHistoryRepository
	lock        shared.SyncLock
	eventBus    shared.EventPublisher
	config      SyncServiceConfig
	logger      *zap.Logger
}

// NewSyncService creates a new SyncService
func NewSyncService(
	source FeedSource,
	txManager TransactionManager,
	historyRepo syncdomain.SyncHistoryRepository,
	lock shared.SyncLock,
	eventBus shared.EventPublisher,
	config SyncServiceConfig,
	logger *zap.Logger,
) *SyncService {
	if config.BatchSize <= 0 {
		config.BatchSize = 50
	}
	if config.LockTTL <= 0 {
		config.LockTTL = 30 * time.Minute
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SyncService{
		source:      source,
		txManager:   txManager,
		historyRepo: historyRepo,
		lock:        lock,
		eventBus:    eventBus,
		config:      config,
		logger:      logger,
	}
}

// SyncRequest describes one sync run
type SyncRequest struct {
	// FeedURL overrides the configured feed URL when set
	FeedURL string `json:"feed_url" binding:"omitempty,url"`
	// Limit caps the number of items processed; zero means all
	Limit int `json:"limit" binding:"omitempty,min=1"`
	// Trigger records what started the run
	Trigger syncdomain.SyncTrigger `json:"-"`
}

// SyncResult summarizes a finished sync run
type SyncResult struct {
	SyncID  string `json:"sync_id"`
	FeedURL string `json:"feed_url"`
	Total   int    `json:"total"`
	Created int    `json:"created"`
	Updated int    `json:"updated"`
	Skipped int    `json:"skipped"`
}

// SyncFromFeed runs one full reconciliation: fetch, parse, upsert in
// batches, record the run. Returns shared.ErrSyncInProgress when
// another run holds the lock.
func (s *SyncService) SyncFromFeed(ctx context.Context, req SyncRequest) (*SyncResult, error) {
	feedURL := req.FeedURL
	if feedURL == "" {
		feedURL = s.config.DefaultFeedURL
	}

	trigger := req.Trigger
	if trigger == "" {
		trigger = syncdomain.SyncTriggerManual
	}

	acquired, err := s.lock.Acquire(ctx, lockName, s.config.LockTTL)
	if err != nil {
		return nil, fmt.Errorf("failed to acquire sync lock: %w", err)
	}
	if !acquired {
		return nil, shared.ErrSyncInProgress
	}
	defer func() {
		if err := s.lock.Release(context.WithoutCancel(ctx), lockName); err != nil {
			s.logger.Warn("failed to release sync lock", zap.Error(err))
		}
	}()

	history, err := syncdomain.NewSyncHistory(feedURL, trigger)
	if err != nil {
		return nil, err
	}
	if err := s.historyRepo.Save(ctx, history); err != nil {
		return nil, err
	}
	if err := history.Start(); err != nil {
		return nil, err
	}
	if err := s.historyRepo.Save(ctx, history); err != nil {
		return nil, err
	}

	s.logger.Info("feed sync started",
		zap.String("sync_id", history.ID.String()),
		zap.String("feed_url", feedURL),
		zap.String("trigger", string(trigger)),
		zap.Int("limit", req.Limit))

	result, runErr := s.run(ctx, history, feedURL, req.Limit)
	if runErr != nil {
		return nil, s.fail(ctx, history, result, runErr)
	}

	if err := history.Complete(result.Total, result.Created, result.Updated, result.Skipped); err != nil {
		return nil, err
	}
	if err := s.historyRepo.Save(ctx, history); err != nil {
		return nil, err
	}

	if s.eventBus != nil {
		_ = s.eventBus.Publish(ctx, syncdomain.NewSyncCompletedEvent(history))
	}

	s.logger.Info("feed sync completed",
		zap.String("sync_id", history.ID.String()),
		zap.Int("total", result.Total),
		zap.Int("created", result.Created),
		zap.Int("updated", result.Updated),
		zap.Int("skipped", result.Skipped))

	result.SyncID = history.ID.String()
	result.FeedURL = feedURL
	return result, nil
}

// run does the fetch-parse-upsert work and returns partial counters on
// failure so the history keeps whatever progress was made
func (s *SyncService) run(ctx context.Context, history *syncdomain.SyncHistory, feedURL string, limit int) (*SyncResult, error) {
	result := &SyncResult{}

	body, err := s.source.Fetch(ctx, feedURL)
	if err != nil {
		return result, err
	}
	defer body.Close()

	var opts []feed.ParserOption
	if limit > 0 {
		opts = append(opts, feed.WithLimit(limit))
	}
	parsed, err := feed.NewParser(opts...).Parse(body)
	if err != nil {
		return result, err
	}

	result.Total = len(parsed.Items)
	result.Skipped = parsed.Skipped

	for start := 0; start < len(parsed.Items); start += s.config.BatchSize {
		end := start + s.config.BatchSize
		if end > len(parsed.Items) {
			end = len(parsed.Items)
		}

		created, updated, err := s.processBatch(ctx, parsed.Items[start:end])
		if err != nil {
			return result, fmt.Errorf("batch starting at item %d failed: %w", start, err)
		}
		result.Created += created
		result.Updated += updated

		s.logger.Debug("batch committed",
			zap.String("sync_id", history.ID.String()),
			zap.Int("batch_start", start),
			zap.Int("created", created),
			zap.Int("updated", updated))
	}

	return result, nil
}

// processBatch upserts one batch of feed items inside a single
// transaction. The taxonomy pairs observed in the batch are flushed in
// the same transaction, so a failed batch leaves no trace.
func (s *SyncService) processBatch(ctx context.Context, items []feed.Item) (int, int, error) {
	var created, updated int

	err := s.txManager.InTransaction(ctx, func(repos BatchRepos) error {
		created, updated = 0, 0
		accumulator := NewTaxonomyAccumulator()
		now := time.Now()

		for _, item := range items {
			wasCreated, err := upsertItem(ctx, repos, item, now)
			if err != nil {
				return fmt.Errorf("item %s: %w", item.SKU, err)
			}
			if wasCreated {
				created++
			} else {
				updated++
			}

			accumulator.Add(item.Fields.FeedCategory, item.Fields.FeedSubcategory)
		}

		_, err := accumulator.Flush(ctx, repos.Taxonomies)
		return err
	})

	return created, updated, err
}

// upsertItem reconciles one feed item with the catalog. An existing
// product keeps its identity and marketing content and gets the feed
// fields overwritten; an unknown SKU becomes a new product, picking up
// any marketing backup stored under the SKU on the way in.
func upsertItem(ctx context.Context, repos BatchRepos, item feed.Item, now time.Time) (bool, error) {
	existing, err := repos.Products.FindBySKU(ctx, item.SKU)
	switch {
	case err == nil:
		if err := existing.ApplyFeed(item.Fields, now); err != nil {
			return false, err
		}
		return false, repos.Products.Save(ctx, existing)
	case errors.Is(err, shared.ErrNotFound):
		product, err := catalog.NewProductFromFeed(item.SKU, item.Fields, now)
		if err != nil {
			return false, err
		}
		if err := restoreFromBackup(ctx, repos, product, item.SKU); err != nil {
			return false, err
		}
		return true, repos.Products.Save(ctx, product)
	default:
		return false, err
	}
}

// restoreFromBackup patches a freshly created product with the
// marketing snapshot stored under its SKU, if one exists. The snapshot
// and its preserved gallery rows are consumed: a product deleted as an
// orphan comes back with its marketing content exactly once.
func restoreFromBackup(ctx context.Context, repos BatchRepos, product *catalog.Product, sku string) error {
	snapshot, err := repos.Backups.FindBySKU(ctx, sku)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil
		}
		return err
	}

	product.RestoreMarketing(snapshot.MarketingFields, snapshot.BackedUpAt)

	preserved, err := repos.GalleryBackups.FindBySKU(ctx, sku)
	if err != nil {
		return err
	}
	for i := range preserved {
		if err := repos.GalleryImages.Save(ctx, preserved[i].ToGalleryImage(product.ID)); err != nil {
			return err
		}
	}
	if len(preserved) > 0 {
		if err := repos.GalleryBackups.DeleteBySKU(ctx, sku); err != nil {
			return err
		}
	}

	return repos.Backups.Delete(ctx, snapshot.ID)
}

// fail records the failure on the history, publishes the event and
// passes the original error through
func (s *SyncService) fail(ctx context.Context, history *syncdomain.SyncHistory, partial *SyncResult, cause error) error {
	if err := history.Fail(cause.Error(), partial.Created, partial.Updated, partial.Skipped); err != nil {
		s.logger.Error("failed to mark sync as failed", zap.Error(err))
		return cause
	}
	if err := s.historyRepo.Save(context.WithoutCancel(ctx), history); err != nil {
		s.logger.Error("failed to persist failed sync run", zap.Error(err))
	}

	if s.eventBus != nil {
		_ = s.eventBus.Publish(ctx, syncdomain.NewSyncFailedEvent(history))
	}

	s.logger.Error("feed sync failed",
		zap.String("sync_id", history.ID.String()),
		zap.String("feed_url", history.FeedURL),
		zap.Error(cause))

	return cause
}
