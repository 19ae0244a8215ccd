package catalog

import (
	"time"

	"github.com/apothekehub/backend/internal/domain/shared"
	"github.com/apothekehub/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
)

// GalleryImage is an uploaded image attached to a product. The bytes
// live in object storage; the row holds only the storage key and
// metadata.
type GalleryImage struct {
	shared.BaseAggregateRoot
	ProductID   uuid.UUID              `gorm:"type:uuid;not null;index"`
	StorageKey  string                 `gorm:"type:text;not null"`
	FileName    string                 `gorm:"type:varchar(300)"`
	ContentType string                 `gorm:"type:varchar(100)"`
	FileSize    int64                  `gorm:"not null;default:0"`
	Tags        valueobject.StringList `gorm:"type:text"`
	UploadedAt  time.Time              `gorm:"not null"`
}

// TableName returns the table name for GORM
func (GalleryImage) TableName() string {
	return "gallery_images"
}

// NewGalleryImage registers an uploaded object as a product gallery image
func NewGalleryImage(productID uuid.UUID, storageKey, fileName, contentType string, fileSize int64) (*GalleryImage, error) {
	if storageKey == "" {
		return nil, shared.NewDomainError("INVALID_STORAGE_KEY", "Storage key cannot be empty")
	}
	if fileSize < 0 {
		return nil, shared.NewDomainError("INVALID_FILE_SIZE", "File size cannot be negative")
	}

	return &GalleryImage{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		ProductID:         productID,
		StorageKey:        storageKey,
		FileName:          fileName,
		ContentType:       contentType,
		FileSize:          fileSize,
		UploadedAt:        time.Now(),
	}, nil
}

// SetTags replaces the image tags
func (g *GalleryImage) SetTags(tags []string) {
	g.Tags = tags
	g.UpdatedAt = time.Now()
	g.IncrementVersion()
}
