package persistence

import (
	"context"
	"errors"

	"github.com/apothekehub/backend/internal/domain/shared"
	"github.com/apothekehub/backend/internal/domain/sync"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormSyncHistoryRepository implements SyncHistoryRepository using GORM
type GormSyncHistoryRepository struct {
	db *gorm.DB
}

// NewGormSyncHistoryRepository creates a new GormSyncHistoryRepository
func NewGormSyncHistoryRepository(db *gorm.DB) *GormSyncHistoryRepository {
	return &GormSyncHistoryRepository{db: db}
}

// FindByID finds a sync run by ID
func (r *GormSyncHistoryRepository) FindByID(ctx context.Context, id uuid.UUID) (*sync.SyncHistory, error) {
	var history sync.SyncHistory
	if err := r.db.WithContext(ctx).First(&history, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &history, nil
}

// FindAll returns sync runs, newest first, with pagination and filtering
func (r *GormSyncHistoryRepository) FindAll(ctx context.Context, filter sync.SyncHistoryFilter, page, pageSize int) (*sync.SyncHistoryListResult, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}

	query := r.db.WithContext(ctx).Model(&sync.SyncHistory{})
	if filter.Status != nil {
		query = query.Where("status = ?", *filter.Status)
	}
	if filter.Trigger != nil {
		query = query.Where("triggered_by = ?", *filter.Trigger)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, err
	}

	var items []*sync.SyncHistory
	if err := query.
		Order("created_at DESC").
		Offset((page - 1) * pageSize).
		Limit(pageSize).
		Find(&items).Error; err != nil {
		return nil, err
	}

	return &sync.SyncHistoryListResult{
		Items:      items,
		TotalCount: total,
		Page:       page,
		PageSize:   pageSize,
	}, nil
}

// FindLatest returns the most recent sync run, if any
func (r *GormSyncHistoryRepository) FindLatest(ctx context.Context) (*sync.SyncHistory, error) {
	var history sync.SyncHistory
	if err := r.db.WithContext(ctx).Order("created_at DESC").First(&history).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &history, nil
}

// Save saves a sync run (create or update)
func (r *GormSyncHistoryRepository) Save(ctx context.Context, history *sync.SyncHistory) error {
	return r.db.WithContext(ctx).Save(history).Error
}

// Ensure GormSyncHistoryRepository implements SyncHistoryRepository
var _ sync.SyncHistoryRepository = (*GormSyncHistoryRepository)(nil)
