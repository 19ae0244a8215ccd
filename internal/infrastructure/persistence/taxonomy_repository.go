package persistence

import (
	"context"
	"errors"

	"github.com/apothekehub/backend/internal/domain/catalog"
	"github.com/apothekehub/backend/internal/domain/shared"
	"gorm.io/gorm"
)

// GormFeedTaxonomyRepository implements FeedTaxonomyRepository using GORM
type GormFeedTaxonomyRepository struct {
	db *gorm.DB
}

// NewGormFeedTaxonomyRepository creates a new GormFeedTaxonomyRepository
func NewGormFeedTaxonomyRepository(db *gorm.DB) *GormFeedTaxonomyRepository {
	return &GormFeedTaxonomyRepository{db: db}
}

// FindByCategory finds the taxonomy row for a category
func (r *GormFeedTaxonomyRepository) FindByCategory(ctx context.Context, category string) (*catalog.FeedTaxonomy, error) {
	var taxonomy catalog.FeedTaxonomy
	if err := r.db.WithContext(ctx).Where("category = ?", category).First(&taxonomy).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &taxonomy, nil
}

// FindAll returns the whole observed taxonomy
func (r *GormFeedTaxonomyRepository) FindAll(ctx context.Context) ([]catalog.FeedTaxonomy, error) {
	var taxonomies []catalog.FeedTaxonomy
	if err := r.db.WithContext(ctx).Order("category ASC").Find(&taxonomies).Error; err != nil {
		return nil, err
	}
	return taxonomies, nil
}

// Save creates or updates a taxonomy row
func (r *GormFeedTaxonomyRepository) Save(ctx context.Context, taxonomy *catalog.FeedTaxonomy) error {
	return r.db.WithContext(ctx).Save(taxonomy).Error
}

// Ensure GormFeedTaxonomyRepository implements FeedTaxonomyRepository
var _ catalog.FeedTaxonomyRepository = (*GormFeedTaxonomyRepository)(nil)
