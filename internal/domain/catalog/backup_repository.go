package catalog

import (
	"context"

	"github.com/google/uuid"
)

// MarketingBackupRepository defines the interface for marketing backup persistence
type MarketingBackupRepository interface {
	// FindBySKU finds the backup for a SKU, if any
	FindBySKU(ctx context.Context, sku string) (*MarketingBackup, error)

	// FindAll returns every stored backup
	FindAll(ctx context.Context) ([]MarketingBackup, error)

	// Save creates or updates a backup
	Save(ctx context.Context, backup *MarketingBackup) error

	// Delete deletes a backup
	Delete(ctx context.Context, id uuid.UUID) error

	// Count counts stored backups
	Count(ctx context.Context) (int64, error)
}

// GalleryBackupRepository defines the interface for gallery backup persistence
type GalleryBackupRepository interface {
	// FindBySKU finds all preserved images for a SKU
	FindBySKU(ctx context.Context, sku string) ([]GalleryBackup, error)

	// ExistsBySKUAndKey checks whether an image is already preserved
	ExistsBySKUAndKey(ctx context.Context, sku, storageKey string) (bool, error)

	// Save creates or updates a gallery backup row
	Save(ctx context.Context, backup *GalleryBackup) error

	// DeleteBySKU removes all preserved images for a SKU
	DeleteBySKU(ctx context.Context, sku string) error

	// Count counts preserved images
	Count(ctx context.Context) (int64, error)
}

// GalleryImageRepository defines the interface for live gallery persistence
type GalleryImageRepository interface {
	// FindByID finds a gallery image by ID
	FindByID(ctx context.Context, id uuid.UUID) (*GalleryImage, error)

	// FindByProduct finds all gallery images of a product
	FindByProduct(ctx context.Context, productID uuid.UUID) ([]GalleryImage, error)

	// Save creates or updates a gallery image
	Save(ctx context.Context, image *GalleryImage) error

	// Delete deletes a gallery image row
	Delete(ctx context.Context, id uuid.UUID) error

	// DeleteByProduct removes all gallery rows of a product
	DeleteByProduct(ctx context.Context, productID uuid.UUID) error
}

// FeedTaxonomyRepository defines the interface for feed taxonomy persistence
type FeedTaxonomyRepository interface {
	// FindByCategory finds the taxonomy row for a category
	FindByCategory(ctx context.Context, category string) (*FeedTaxonomy, error)

	// FindAll returns the whole observed taxonomy
	FindAll(ctx context.Context) ([]FeedTaxonomy, error)

	// Save creates or updates a taxonomy row
	Save(ctx context.Context, taxonomy *FeedTaxonomy) error
}
