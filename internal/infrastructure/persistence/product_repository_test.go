package persistence

import (
	"context"
	"testing"
	"time"

	"github.com/apothekehub/backend/internal/domain/catalog"
	"github.com/apothekehub/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newFeedProduct(t *testing.T, sku, name string) *catalog.Product {
	t.Helper()
	product, err := catalog.NewProductFromFeed(sku, catalog.FeedFields{
		Name:         name,
		Price:        decimal.NewFromFloat(9.99),
		FeedCategory: "Tea",
	}, time.Now())
	require.NoError(t, err)
	return product
}

func TestGormProductRepository_SaveAndFind(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormProductRepository(db)
	ctx := context.Background()

	t.Run("saves and finds by ID", func(t *testing.T) {
		product := newFeedProduct(t, "SKU1", "Green Tea")
		require.NoError(t, repo.Save(ctx, product))

		found, err := repo.FindByID(ctx, product.ID)
		require.NoError(t, err)
		assert.Equal(t, "Green Tea", found.Name)
		require.NotNil(t, found.SKU)
		assert.Equal(t, "SKU1", *found.SKU)
	})

	t.Run("finds by SKU", func(t *testing.T) {
		found, err := repo.FindBySKU(ctx, "SKU1")
		require.NoError(t, err)
		assert.Equal(t, "Green Tea", found.Name)
	})

	t.Run("missing SKU yields ErrNotFound", func(t *testing.T) {
		_, err := repo.FindBySKU(ctx, "NOPE")
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})

	t.Run("missing ID yields ErrNotFound", func(t *testing.T) {
		_, err := repo.FindByID(ctx, uuid.New())
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})
}

func TestGormProductRepository_FindAllSKUs(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormProductRepository(db)
	ctx := context.Background()

	require.NoError(t, repo.Save(ctx, newFeedProduct(t, "SKU1", "Green Tea")))
	require.NoError(t, repo.Save(ctx, newFeedProduct(t, "SKU2", "Relax Blend")))

	manual, err := catalog.NewProduct("Manual Product")
	require.NoError(t, err)
	require.NoError(t, repo.Save(ctx, manual))

	skus, err := repo.FindAllSKUs(ctx)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"SKU1", "SKU2"}, skus)
}

func TestGormProductRepository_FindTop(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormProductRepository(db)
	ctx := context.Background()

	first := newFeedProduct(t, "SKU1", "Green Tea")
	first.SetTopStatus(true, 2)
	second := newFeedProduct(t, "SKU2", "Relax Blend")
	second.SetTopStatus(true, 1)
	third := newFeedProduct(t, "SKU3", "Plain Tea")

	require.NoError(t, repo.Save(ctx, first))
	require.NoError(t, repo.Save(ctx, second))
	require.NoError(t, repo.Save(ctx, third))

	top, err := repo.FindTop(ctx)
	require.NoError(t, err)
	require.Len(t, top, 2)
	assert.Equal(t, "Relax Blend", top[0].Name)
	assert.Equal(t, "Green Tea", top[1].Name)
}

func TestGormProductRepository_Filters(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormProductRepository(db)
	ctx := context.Background()

	product := newFeedProduct(t, "SKU1", "Green Tea Sencha")
	product.UpdateMarketing(catalog.MarketingFields{Category: "Wellness", Tier: "gold"}, "category")
	require.NoError(t, repo.Save(ctx, product))
	require.NoError(t, repo.Save(ctx, newFeedProduct(t, "SKU2", "Relax Blend")))

	t.Run("search matches name case-insensitively", func(t *testing.T) {
		filter := shared.DefaultFilter()
		filter.Search = "sencha"
		products, err := repo.FindAll(ctx, filter)
		require.NoError(t, err)
		require.Len(t, products, 1)
		assert.Equal(t, "Green Tea Sencha", products[0].Name)
	})

	t.Run("filters by marketing category", func(t *testing.T) {
		filter := shared.DefaultFilter()
		filter.Filters["category"] = "Wellness"
		products, err := repo.FindAll(ctx, filter)
		require.NoError(t, err)
		require.Len(t, products, 1)

		count, err := repo.Count(ctx, filter)
		require.NoError(t, err)
		assert.Equal(t, int64(1), count)
	})

	t.Run("rejects unknown sort fields", func(t *testing.T) {
		filter := shared.DefaultFilter()
		filter.OrderBy = "name; DROP TABLE products"
		_, err := repo.FindAll(ctx, filter)
		require.NoError(t, err)
	})
}

func TestGormProductRepository_Delete(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormProductRepository(db)
	ctx := context.Background()

	product := newFeedProduct(t, "SKU1", "Green Tea")
	require.NoError(t, repo.Save(ctx, product))

	require.NoError(t, repo.Delete(ctx, product.ID))
	assert.ErrorIs(t, repo.Delete(ctx, product.ID), shared.ErrNotFound)

	exists, err := repo.ExistsBySKU(ctx, "SKU1")
	require.NoError(t, err)
	assert.False(t, exists)
}
