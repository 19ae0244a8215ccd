package persistence

import (
	"context"

	"github.com/apothekehub/backend/internal/application/feedsync"
	"gorm.io/gorm"
)

var _ feedsync.TransactionManager = (*GormTransactionManager)(nil)

// GormTransactionManager runs sync batches inside one database
// transaction, handing the batch repositories bound to it
type GormTransactionManager struct {
	db *Database
}

// NewGormTransactionManager creates a new GormTransactionManager
func NewGormTransactionManager(db *Database) *GormTransactionManager {
	return &GormTransactionManager{db: db}
}

// InTransaction implements feedsync.TransactionManager
func (m *GormTransactionManager) InTransaction(ctx context.Context, fn func(repos feedsync.BatchRepos) error) error {
	return m.db.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(feedsync.BatchRepos{
			Products:       NewGormProductRepository(tx),
			Taxonomies:     NewGormFeedTaxonomyRepository(tx),
			Backups:        NewGormMarketingBackupRepository(tx),
			GalleryImages:  NewGormGalleryImageRepository(tx),
			GalleryBackups: NewGormGalleryBackupRepository(tx),
		})
	})
}
