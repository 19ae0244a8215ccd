package feedsync

import (
	"context"
	"errors"
	"sort"

	"github.com/apothekehub/backend/internal/domain/catalog"
	"github.com/apothekehub/backend/internal/domain/shared"
)

// TaxonomyAccumulator collects the category/subcategory pairs seen
// while walking feed items. It is a plain value holder: collection is
// separated from persistence so a batch can gather pairs item by item
// and write them once, inside the batch transaction.
type TaxonomyAccumulator struct {
	categories map[string]map[string]struct{}
}

// NewTaxonomyAccumulator creates an empty accumulator
func NewTaxonomyAccumulator() *TaxonomyAccumulator {
	return &TaxonomyAccumulator{
		categories: make(map[string]map[string]struct{}),
	}
}

// Add records one observed pair. Empty categories are ignored; an
// empty subcategory still records the category itself.
func (a *TaxonomyAccumulator) Add(category, subcategory string) {
	if category == "" {
		return
	}

	subs, ok := a.categories[category]
	if !ok {
		subs = make(map[string]struct{})
		a.categories[category] = subs
	}
	if subcategory != "" {
		subs[subcategory] = struct{}{}
	}
}

// Len returns the number of distinct categories collected
func (a *TaxonomyAccumulator) Len() int {
	return len(a.categories)
}

// Subcategories returns the collected subcategories of a category,
// sorted for deterministic persistence
func (a *TaxonomyAccumulator) Subcategories(category string) []string {
	subs := make([]string, 0, len(a.categories[category]))
	for sub := range a.categories[category] {
		subs = append(subs, sub)
	}
	sort.Strings(subs)
	return subs
}

// Flush merges the collected pairs into the stored taxonomy and empties
// the accumulator. Existing rows are read, unioned and written back;
// subcategories only ever accumulate. Returns the number of
// subcategories newly added across all categories.
func (a *TaxonomyAccumulator) Flush(ctx context.Context, repo catalog.FeedTaxonomyRepository) (int, error) {
	added := 0

	for category := range a.categories {
		subs := a.Subcategories(category)

		taxonomy, err := repo.FindByCategory(ctx, category)
		switch {
		case err == nil:
			merged := taxonomy.MergeSubcategories(subs)
			if merged == 0 {
				continue
			}
			added += merged
		case errors.Is(err, shared.ErrNotFound):
			taxonomy, err = catalog.NewFeedTaxonomy(category, subs)
			if err != nil {
				return added, err
			}
			added += len(subs)
		default:
			return added, err
		}

		if err := repo.Save(ctx, taxonomy); err != nil {
			return added, err
		}
	}

	a.categories = make(map[string]map[string]struct{})
	return added, nil
}
