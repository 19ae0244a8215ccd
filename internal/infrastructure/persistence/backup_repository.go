package persistence

import (
	"context"
	"errors"

	"github.com/apothekehub/backend/internal/domain/catalog"
	"github.com/apothekehub/backend/internal/domain/shared"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormMarketingBackupRepository implements MarketingBackupRepository using GORM
type GormMarketingBackupRepository struct {
	db *gorm.DB
}

// NewGormMarketingBackupRepository creates a new GormMarketingBackupRepository
func NewGormMarketingBackupRepository(db *gorm.DB) *GormMarketingBackupRepository {
	return &GormMarketingBackupRepository{db: db}
}

// FindBySKU finds the backup for a SKU, if any
func (r *GormMarketingBackupRepository) FindBySKU(ctx context.Context, sku string) (*catalog.MarketingBackup, error) {
	var backup catalog.MarketingBackup
	if err := r.db.WithContext(ctx).Where("sku = ?", sku).First(&backup).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &backup, nil
}

// FindAll returns every stored backup
func (r *GormMarketingBackupRepository) FindAll(ctx context.Context) ([]catalog.MarketingBackup, error) {
	var backups []catalog.MarketingBackup
	if err := r.db.WithContext(ctx).Order("sku ASC").Find(&backups).Error; err != nil {
		return nil, err
	}
	return backups, nil
}

// Save creates or updates a backup
func (r *GormMarketingBackupRepository) Save(ctx context.Context, backup *catalog.MarketingBackup) error {
	return r.db.WithContext(ctx).Save(backup).Error
}

// Delete deletes a backup
func (r *GormMarketingBackupRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&catalog.MarketingBackup{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Count counts stored backups
func (r *GormMarketingBackupRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&catalog.MarketingBackup{}).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Ensure GormMarketingBackupRepository implements MarketingBackupRepository
var _ catalog.MarketingBackupRepository = (*GormMarketingBackupRepository)(nil)

// GormGalleryBackupRepository implements GalleryBackupRepository using GORM
type GormGalleryBackupRepository struct {
	db *gorm.DB
}

// NewGormGalleryBackupRepository creates a new GormGalleryBackupRepository
func NewGormGalleryBackupRepository(db *gorm.DB) *GormGalleryBackupRepository {
	return &GormGalleryBackupRepository{db: db}
}

// FindBySKU finds all preserved images for a SKU
func (r *GormGalleryBackupRepository) FindBySKU(ctx context.Context, sku string) ([]catalog.GalleryBackup, error) {
	var backups []catalog.GalleryBackup
	if err := r.db.WithContext(ctx).
		Where("sku = ?", sku).
		Order("uploaded_at ASC").
		Find(&backups).Error; err != nil {
		return nil, err
	}
	return backups, nil
}

// ExistsBySKUAndKey checks whether an image is already preserved
func (r *GormGalleryBackupRepository) ExistsBySKUAndKey(ctx context.Context, sku, storageKey string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&catalog.GalleryBackup{}).
		Where("sku = ? AND storage_key = ?", sku, storageKey).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// Save creates or updates a gallery backup row
func (r *GormGalleryBackupRepository) Save(ctx context.Context, backup *catalog.GalleryBackup) error {
	return r.db.WithContext(ctx).Save(backup).Error
}

// DeleteBySKU removes all preserved images for a SKU
func (r *GormGalleryBackupRepository) DeleteBySKU(ctx context.Context, sku string) error {
	return r.db.WithContext(ctx).Delete(&catalog.GalleryBackup{}, "sku = ?", sku).Error
}

// Count counts preserved images
func (r *GormGalleryBackupRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&catalog.GalleryBackup{}).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Ensure GormGalleryBackupRepository implements GalleryBackupRepository
var _ catalog.GalleryBackupRepository = (*GormGalleryBackupRepository)(nil)
