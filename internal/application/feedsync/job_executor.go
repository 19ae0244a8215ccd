package feedsync

import (
	"context"
	"fmt"

	syncdomain "github.com/apothekehub/backend/internal/domain/sync"
	"github.com/apothekehub/backend/internal/infrastructure/scheduler"
	"go.uber.org/zap"
)

var _ scheduler.JobExecutor = (*JobExecutor)(nil)

// JobExecutor routes scheduled jobs to the sync services
type JobExecutor struct {
	syncService   *SyncService
	orphanService *OrphanService
	logger        *zap.Logger
}

// NewJobExecutor creates a new JobExecutor
func NewJobExecutor(syncService *SyncService, orphanService *OrphanService, logger *zap.Logger) *JobExecutor {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &JobExecutor{
		syncService:   syncService,
		orphanService: orphanService,
		logger:        logger,
	}
}

// Execute runs one scheduled job
func (e *JobExecutor) Execute(ctx context.Context, job *scheduler.Job) error {
	switch job.Type {
	case scheduler.JobTypeFeedSync:
		result, err := e.syncService.SyncFromFeed(ctx, SyncRequest{
			FeedURL: job.FeedURL,
			Limit:   job.Limit,
			Trigger: syncdomain.SyncTriggerScheduled,
		})
		if err != nil {
			return err
		}
		e.logger.Info("scheduled sync finished",
			zap.String("job_id", job.ID.String()),
			zap.Int("created", result.Created),
			zap.Int("updated", result.Updated),
			zap.Int("skipped", result.Skipped))
		return nil

	case scheduler.JobTypeOrphanCheck:
		result, err := e.orphanService.CheckOrphans(ctx, job.FeedURL)
		if err != nil {
			return err
		}
		e.logger.Info("scheduled orphan check finished",
			zap.String("job_id", job.ID.String()),
			zap.Int("orphans", len(result.Orphans)))
		return nil

	default:
		return fmt.Errorf("%w: %s", scheduler.ErrInvalidJobType, job.Type)
	}
}
