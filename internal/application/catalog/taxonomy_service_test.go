package catalog

import (
	"context"
	"testing"

	"github.com/apothekehub/backend/internal/domain/catalog"
	"github.com/apothekehub/backend/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTaxonomyService_ListTaxonomy(t *testing.T) {
	ctx := context.Background()

	repo := new(MockFeedTaxonomyRepository)
	service := NewTaxonomyService(repo)

	herbal, err := catalog.NewFeedTaxonomy("Herbal Tea", []string{"Chamomile", "Mint"})
	require.NoError(t, err)
	black, err := catalog.NewFeedTaxonomy("Black Tea", nil)
	require.NoError(t, err)

	repo.On("FindAll", ctx).Return([]catalog.FeedTaxonomy{*herbal, *black}, nil)

	items, err := service.ListTaxonomy(ctx)
	require.NoError(t, err)

	require.Len(t, items, 2)
	assert.Equal(t, "Herbal Tea", items[0].Category)
	assert.ElementsMatch(t, []string{"Chamomile", "Mint"}, items[0].Subcategories)
}

func TestTaxonomyService_GetCategory(t *testing.T) {
	ctx := context.Background()

	t.Run("returns the category with its subcategories", func(t *testing.T) {
		repo := new(MockFeedTaxonomyRepository)
		service := NewTaxonomyService(repo)

		herbal, err := catalog.NewFeedTaxonomy("Herbal Tea", []string{"Chamomile"})
		require.NoError(t, err)

		repo.On("FindByCategory", ctx, "Herbal Tea").Return(herbal, nil)

		resp, err := service.GetCategory(ctx, "Herbal Tea")
		require.NoError(t, err)
		assert.Equal(t, []string{"Chamomile"}, resp.Subcategories)
	})

	t.Run("reports unobserved categories", func(t *testing.T) {
		repo := new(MockFeedTaxonomyRepository)
		service := NewTaxonomyService(repo)

		repo.On("FindByCategory", ctx, "Unknown").Return(nil, shared.ErrNotFound)

		_, err := service.GetCategory(ctx, "Unknown")
		require.Error(t, err)

		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "CATEGORY_NOT_FOUND", domainErr.Code)
	})
}
