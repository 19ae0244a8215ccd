package persistence

import (
	"testing"

	"github.com/apothekehub/backend/internal/domain/catalog"
	"github.com/apothekehub/backend/internal/domain/content"
	"github.com/apothekehub/backend/internal/domain/sync"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// setupTestDB opens an in-memory SQLite database with the full schema
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	err = db.AutoMigrate(
		&catalog.Product{},
		&catalog.MarketingBackup{},
		&catalog.GalleryBackup{},
		&catalog.GalleryImage{},
		&catalog.FeedTaxonomy{},
		&sync.SyncHistory{},
		&content.NewsPost{},
		&content.Opportunity{},
	)
	require.NoError(t, err)

	return db
}
