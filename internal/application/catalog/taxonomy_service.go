package catalog

import (
	"context"
	"errors"

	"github.com/apothekehub/backend/internal/domain/catalog"
	"github.com/apothekehub/backend/internal/domain/shared"
)

// TaxonomyService exposes the category tree observed in the feed.
// The tree is written only by the sync; this service is read-only.
type TaxonomyService struct {
	taxonomyRepo catalog.FeedTaxonomyRepository
}

// NewTaxonomyService creates a new TaxonomyService
func NewTaxonomyService(taxonomyRepo catalog.FeedTaxonomyRepository) *TaxonomyService {
	return &TaxonomyService{taxonomyRepo: taxonomyRepo}
}

// ListTaxonomy returns every observed feed category with its subcategories
func (s *TaxonomyService) ListTaxonomy(ctx context.Context) ([]TaxonomyResponse, error) {
	taxonomies, err := s.taxonomyRepo.FindAll(ctx)
	if err != nil {
		return nil, err
	}

	items := make([]TaxonomyResponse, len(taxonomies))
	for i, t := range taxonomies {
		items[i] = TaxonomyResponse{
			Category:      t.Category,
			Subcategories: t.Subcategories,
			UpdatedAt:     t.UpdatedAt,
		}
	}
	return items, nil
}

// GetCategory returns one category with its subcategories
func (s *TaxonomyService) GetCategory(ctx context.Context, category string) (*TaxonomyResponse, error) {
	taxonomy, err := s.taxonomyRepo.FindByCategory(ctx, category)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NewDomainError("CATEGORY_NOT_FOUND", "Category not observed in the feed")
		}
		return nil, err
	}

	return &TaxonomyResponse{
		Category:      taxonomy.Category,
		Subcategories: taxonomy.Subcategories,
		UpdatedAt:     taxonomy.UpdatedAt,
	}, nil
}
