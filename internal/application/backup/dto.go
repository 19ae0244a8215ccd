package backup

import (
	"time"

	"github.com/google/uuid"
)

// Reasons a backup or restore finished without touching anything.
// These are outcomes, not errors: the portal shows them to the user.
const (
	ReasonMissingSKU         = "missing_sku"
	ReasonNoMarketingContent = "no_marketing_content"
	ReasonBackupNotFound     = "backup_not_found"
	ReasonProductNotFound    = "product_not_found"
)

// BackupResult reports the outcome of backing up one product
type BackupResult struct {
	ProductID     uuid.UUID  `json:"product_id"`
	SKU           string     `json:"sku,omitempty"`
	BackedUp      bool       `json:"backed_up"`
	Reason        string     `json:"reason,omitempty"`
	GalleryImages int        `json:"gallery_images"`
	BackedUpAt    *time.Time `json:"backed_up_at,omitempty"`
}

// RestoreResult reports the outcome of restoring one product
type RestoreResult struct {
	ProductID     uuid.UUID `json:"product_id"`
	SKU           string    `json:"sku"`
	Restored      bool      `json:"restored"`
	Reason        string    `json:"reason,omitempty"`
	GalleryImages int       `json:"gallery_images"`
}

// SkippedRestore records one backup that could not be applied
type SkippedRestore struct {
	SKU    string `json:"sku"`
	Reason string `json:"reason"`
}

// RestoreAllResult reports the outcome of a bulk restore
type RestoreAllResult struct {
	TotalBackups int              `json:"total_backups"`
	Restored     int              `json:"restored"`
	Skipped      []SkippedRestore `json:"skipped"`
}

// BackupResponse represents a stored backup in API responses
type BackupResponse struct {
	ID          uuid.UUID `json:"id"`
	SKU         string    `json:"sku"`
	ProductName string    `json:"product_name"`
	BackedUpAt  time.Time `json:"backed_up_at"`
}
