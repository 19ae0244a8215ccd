package persistence

import (
	"context"
	"errors"

	"github.com/apothekehub/backend/internal/domain/catalog"
	"github.com/apothekehub/backend/internal/domain/shared"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormGalleryImageRepository implements GalleryImageRepository using GORM
type GormGalleryImageRepository struct {
	db *gorm.DB
}

// NewGormGalleryImageRepository creates a new GormGalleryImageRepository
func NewGormGalleryImageRepository(db *gorm.DB) *GormGalleryImageRepository {
	return &GormGalleryImageRepository{db: db}
}

// FindByID finds a gallery image by ID
func (r *GormGalleryImageRepository) FindByID(ctx context.Context, id uuid.UUID) (*catalog.GalleryImage, error) {
	var image catalog.GalleryImage
	if err := r.db.WithContext(ctx).First(&image, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &image, nil
}

// FindByProduct finds all gallery images of a product
func (r *GormGalleryImageRepository) FindByProduct(ctx context.Context, productID uuid.UUID) ([]catalog.GalleryImage, error) {
	var images []catalog.GalleryImage
	if err := r.db.WithContext(ctx).
		Where("product_id = ?", productID).
		Order("uploaded_at ASC").
		Find(&images).Error; err != nil {
		return nil, err
	}
	return images, nil
}

// Save creates or updates a gallery image
func (r *GormGalleryImageRepository) Save(ctx context.Context, image *catalog.GalleryImage) error {
	return r.db.WithContext(ctx).Save(image).Error
}

// Delete deletes a gallery image row
func (r *GormGalleryImageRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&catalog.GalleryImage{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// DeleteByProduct removes all gallery rows of a product
func (r *GormGalleryImageRepository) DeleteByProduct(ctx context.Context, productID uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&catalog.GalleryImage{}, "product_id = ?", productID).Error
}

// Ensure GormGalleryImageRepository implements GalleryImageRepository
var _ catalog.GalleryImageRepository = (*GormGalleryImageRepository)(nil)
