package catalog

import (
	"time"

	"github.com/apothekehub/backend/internal/domain/shared"
	"github.com/apothekehub/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
)

// MarketingBackup is a snapshot of a product's marketing fields, keyed
// by SKU. The store keeps exactly one snapshot per SKU; a new backup
// for the same SKU replaces the old one.
type MarketingBackup struct {
	shared.BaseAggregateRoot
	SKU             string `gorm:"type:varchar(100);not null;uniqueIndex;column:sku"`
	ProductName     string `gorm:"type:varchar(300);not null"`
	MarketingFields `gorm:"embedded"`
	BackedUpAt      time.Time `gorm:"not null"`
}

// TableName returns the table name for GORM
func (MarketingBackup) TableName() string {
	return "marketing_backups"
}

// NewMarketingBackup snapshots the marketing content of a product.
// The product must have a SKU and at least one marketing field set;
// callers check both before constructing a backup.
func NewMarketingBackup(product *Product) (*MarketingBackup, error) {
	if !product.HasSKU() {
		return nil, shared.ErrMissingSKU
	}

	return &MarketingBackup{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		SKU:               *product.SKU,
		ProductName:       product.Name,
		MarketingFields:   product.MarketingFields,
		BackedUpAt:        time.Now(),
	}, nil
}

// Refresh replaces the snapshot content in place, keeping the row identity
func (b *MarketingBackup) Refresh(product *Product) {
	b.ProductName = product.Name
	b.MarketingFields = product.MarketingFields
	b.BackedUpAt = time.Now()
	b.UpdatedAt = time.Now()
	b.IncrementVersion()
}

// GalleryBackup preserves one gallery image of a deleted product, keyed
// by SKU. Unlike marketing backups there may be many rows per SKU, one
// per image; restore consumes them.
type GalleryBackup struct {
	shared.BaseAggregateRoot
	SKU         string                 `gorm:"type:varchar(100);not null;index;column:sku"`
	StorageKey  string                 `gorm:"type:text;not null"`
	FileName    string                 `gorm:"type:varchar(300)"`
	ContentType string                 `gorm:"type:varchar(100)"`
	FileSize    int64                  `gorm:"not null;default:0"`
	Tags        valueobject.StringList `gorm:"type:text"`
	UploadedAt  time.Time
	BackedUpAt  time.Time `gorm:"not null"`
}

// TableName returns the table name for GORM
func (GalleryBackup) TableName() string {
	return "gallery_backups"
}

// NewGalleryBackup preserves a gallery image reference under a SKU.
// Only the storage key travels; the blob itself stays where it is.
func NewGalleryBackup(sku string, image *GalleryImage) (*GalleryBackup, error) {
	if err := validateSKU(sku); err != nil {
		return nil, err
	}

	return &GalleryBackup{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		SKU:               sku,
		StorageKey:        image.StorageKey,
		FileName:          image.FileName,
		ContentType:       image.ContentType,
		FileSize:          image.FileSize,
		Tags:              image.Tags,
		UploadedAt:        image.UploadedAt,
		BackedUpAt:        time.Now(),
	}, nil
}

// ToGalleryImage rebuilds a live gallery row for the given product
func (b *GalleryBackup) ToGalleryImage(productID uuid.UUID) *GalleryImage {
	return &GalleryImage{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		ProductID:         productID,
		StorageKey:        b.StorageKey,
		FileName:          b.FileName,
		ContentType:       b.ContentType,
		FileSize:          b.FileSize,
		Tags:              b.Tags,
		UploadedAt:        b.UploadedAt,
	}
}
