package persistence

import (
	"context"
	"errors"
	"strings"

	"github.com/apothekehub/backend/internal/domain/content"
	"github.com/apothekehub/backend/internal/domain/shared"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormNewsPostRepository implements NewsPostRepository using GORM
type GormNewsPostRepository struct {
	db *gorm.DB
}

// NewGormNewsPostRepository creates a new GormNewsPostRepository
func NewGormNewsPostRepository(db *gorm.DB) *GormNewsPostRepository {
	return &GormNewsPostRepository{db: db}
}

// FindByID finds a news post by ID
func (r *GormNewsPostRepository) FindByID(ctx context.Context, id uuid.UUID) (*content.NewsPost, error) {
	var post content.NewsPost
	if err := r.db.WithContext(ctx).First(&post, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &post, nil
}

// FindAll finds news posts, pinned first, newest first
func (r *GormNewsPostRepository) FindAll(ctx context.Context, filter shared.Filter) ([]content.NewsPost, error) {
	var posts []content.NewsPost
	query := r.db.WithContext(ctx).Model(&content.NewsPost{})

	if filter.Search != "" {
		pattern := "%" + strings.ToLower(filter.Search) + "%"
		query = query.Where("LOWER(title) LIKE ?", pattern)
	}
	if filter.Page > 0 && filter.PageSize > 0 {
		query = query.Offset((filter.Page - 1) * filter.PageSize).Limit(filter.PageSize)
	}

	if err := query.Order("pinned DESC, published_at DESC").Find(&posts).Error; err != nil {
		return nil, err
	}
	return posts, nil
}

// Save creates or updates a news post
func (r *GormNewsPostRepository) Save(ctx context.Context, post *content.NewsPost) error {
	return r.db.WithContext(ctx).Save(post).Error
}

// Delete deletes a news post
func (r *GormNewsPostRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&content.NewsPost{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Count counts news posts
func (r *GormNewsPostRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := r.db.WithContext(ctx).Model(&content.NewsPost{})
	if filter.Search != "" {
		pattern := "%" + strings.ToLower(filter.Search) + "%"
		query = query.Where("LOWER(title) LIKE ?", pattern)
	}
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Ensure GormNewsPostRepository implements NewsPostRepository
var _ content.NewsPostRepository = (*GormNewsPostRepository)(nil)

// GormOpportunityRepository implements OpportunityRepository using GORM
type GormOpportunityRepository struct {
	db *gorm.DB
}

// NewGormOpportunityRepository creates a new GormOpportunityRepository
func NewGormOpportunityRepository(db *gorm.DB) *GormOpportunityRepository {
	return &GormOpportunityRepository{db: db}
}

// FindByID finds a campaign by ID
func (r *GormOpportunityRepository) FindByID(ctx context.Context, id uuid.UUID) (*content.Opportunity, error) {
	var opportunity content.Opportunity
	if err := r.db.WithContext(ctx).First(&opportunity, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &opportunity, nil
}

// FindBySlug finds a campaign by its slug
func (r *GormOpportunityRepository) FindBySlug(ctx context.Context, slug string) (*content.Opportunity, error) {
	var opportunity content.Opportunity
	if err := r.db.WithContext(ctx).Where("slug = ?", slug).First(&opportunity).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &opportunity, nil
}

// FindAll finds campaigns matching the filter
func (r *GormOpportunityRepository) FindAll(ctx context.Context, filter shared.Filter) ([]content.Opportunity, error) {
	var opportunities []content.Opportunity
	query := r.db.WithContext(ctx).Model(&content.Opportunity{})

	if filter.Search != "" {
		pattern := "%" + strings.ToLower(filter.Search) + "%"
		query = query.Where("LOWER(title) LIKE ?", pattern)
	}
	if season, ok := filter.Filters["season"]; ok {
		query = query.Where("season = ?", season)
	}
	if filter.Page > 0 && filter.PageSize > 0 {
		query = query.Offset((filter.Page - 1) * filter.PageSize).Limit(filter.PageSize)
	}

	orderBy := ValidateSortField(filter.OrderBy, contentSortFields, "created_at")
	if err := query.Order(orderBy + " " + ValidateSortOrder(filter.OrderDir)).Find(&opportunities).Error; err != nil {
		return nil, err
	}
	return opportunities, nil
}

// Save creates or updates a campaign
func (r *GormOpportunityRepository) Save(ctx context.Context, opportunity *content.Opportunity) error {
	return r.db.WithContext(ctx).Save(opportunity).Error
}

// Delete deletes a campaign
func (r *GormOpportunityRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&content.Opportunity{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Count counts campaigns
func (r *GormOpportunityRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := r.db.WithContext(ctx).Model(&content.Opportunity{})
	if season, ok := filter.Filters["season"]; ok {
		query = query.Where("season = ?", season)
	}
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Ensure GormOpportunityRepository implements OpportunityRepository
var _ content.OpportunityRepository = (*GormOpportunityRepository)(nil)
