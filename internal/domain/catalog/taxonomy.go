package catalog

import (
	"sort"
	"time"

	"github.com/apothekehub/backend/internal/domain/shared"
	"github.com/apothekehub/backend/internal/domain/shared/valueobject"
)

// FeedTaxonomy records the category tree observed in the supplier feed:
// one row per category, holding the set of subcategories seen under it.
// Subcategories only accumulate; a sync never removes one.
type FeedTaxonomy struct {
	shared.BaseAggregateRoot
	Category      string                 `gorm:"type:varchar(200);not null;uniqueIndex"`
	Subcategories valueobject.StringList `gorm:"type:text"`
}

// TableName returns the table name for GORM
func (FeedTaxonomy) TableName() string {
	return "feed_taxonomies"
}

// NewFeedTaxonomy creates a taxonomy row for a newly observed category
func NewFeedTaxonomy(category string, subcategories []string) (*FeedTaxonomy, error) {
	if category == "" {
		return nil, shared.NewDomainError("INVALID_CATEGORY", "Category cannot be empty")
	}

	t := &FeedTaxonomy{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Category:          category,
	}
	t.MergeSubcategories(subcategories)
	return t, nil
}

// MergeSubcategories unions new subcategories into the stored set.
// Returns the number of subcategories actually added.
func (t *FeedTaxonomy) MergeSubcategories(subcategories []string) int {
	added := 0
	for _, sub := range subcategories {
		if sub == "" || t.Subcategories.Contains(sub) {
			continue
		}
		t.Subcategories = append(t.Subcategories, sub)
		added++
	}
	if added > 0 {
		sort.Strings(t.Subcategories)
		t.UpdatedAt = time.Now()
		t.IncrementVersion()
	}
	return added
}
