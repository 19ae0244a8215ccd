package feedsync

import (
	"context"
	"testing"

	"github.com/apothekehub/backend/internal/domain/catalog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTaxonomyAccumulator_Add(t *testing.T) {
	t.Run("collects distinct pairs", func(t *testing.T) {
		acc := NewTaxonomyAccumulator()

		acc.Add("Herbal Tea", "Chamomile")
		acc.Add("Herbal Tea", "Mint")
		acc.Add("Herbal Tea", "Chamomile")
		acc.Add("Black Tea", "Earl Grey")

		assert.Equal(t, 2, acc.Len())
		assert.Equal(t, []string{"Chamomile", "Mint"}, acc.Subcategories("Herbal Tea"))
		assert.Equal(t, []string{"Earl Grey"}, acc.Subcategories("Black Tea"))
	})

	t.Run("ignores empty categories", func(t *testing.T) {
		acc := NewTaxonomyAccumulator()

		acc.Add("", "Chamomile")

		assert.Equal(t, 0, acc.Len())
	})

	t.Run("records a category without subcategory", func(t *testing.T) {
		acc := NewTaxonomyAccumulator()

		acc.Add("Black Tea", "")

		assert.Equal(t, 1, acc.Len())
		assert.Empty(t, acc.Subcategories("Black Tea"))
	})
}

func TestTaxonomyAccumulator_Flush(t *testing.T) {
	ctx := context.Background()

	t.Run("creates rows for unseen categories", func(t *testing.T) {
		repo := newFakeTaxonomyRepo()
		acc := NewTaxonomyAccumulator()
		acc.Add("Herbal Tea", "Chamomile")
		acc.Add("Herbal Tea", "Mint")

		added, err := acc.Flush(ctx, repo)
		require.NoError(t, err)
		assert.Equal(t, 2, added)

		stored, err := repo.FindByCategory(ctx, "Herbal Tea")
		require.NoError(t, err)
		assert.ElementsMatch(t, []string{"Chamomile", "Mint"}, []string(stored.Subcategories))
	})

	t.Run("unions into existing rows without removing anything", func(t *testing.T) {
		repo := newFakeTaxonomyRepo()
		existing, err := catalog.NewFeedTaxonomy("Herbal Tea", []string{"Chamomile", "Lavender"})
		require.NoError(t, err)
		require.NoError(t, repo.Save(ctx, existing))

		acc := NewTaxonomyAccumulator()
		acc.Add("Herbal Tea", "Mint")

		added, err := acc.Flush(ctx, repo)
		require.NoError(t, err)
		assert.Equal(t, 1, added)

		stored, err := repo.FindByCategory(ctx, "Herbal Tea")
		require.NoError(t, err)
		assert.ElementsMatch(t, []string{"Chamomile", "Lavender", "Mint"}, []string(stored.Subcategories))
	})

	t.Run("skips the write when nothing new was observed", func(t *testing.T) {
		repo := newFakeTaxonomyRepo()
		existing, err := catalog.NewFeedTaxonomy("Herbal Tea", []string{"Chamomile"})
		require.NoError(t, err)
		require.NoError(t, repo.Save(ctx, existing))
		storedBefore, err := repo.FindByCategory(ctx, "Herbal Tea")
		require.NoError(t, err)

		acc := NewTaxonomyAccumulator()
		acc.Add("Herbal Tea", "Chamomile")

		added, err := acc.Flush(ctx, repo)
		require.NoError(t, err)
		assert.Equal(t, 0, added)

		storedAfter, err := repo.FindByCategory(ctx, "Herbal Tea")
		require.NoError(t, err)
		assert.Equal(t, storedBefore.Version, storedAfter.Version)
	})

	t.Run("empties the accumulator", func(t *testing.T) {
		repo := newFakeTaxonomyRepo()
		acc := NewTaxonomyAccumulator()
		acc.Add("Herbal Tea", "Chamomile")

		_, err := acc.Flush(ctx, repo)
		require.NoError(t, err)
		assert.Equal(t, 0, acc.Len())

		added, err := acc.Flush(ctx, repo)
		require.NoError(t, err)
		assert.Equal(t, 0, added)
	})
}
