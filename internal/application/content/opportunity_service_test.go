package content

import (
	"context"
	"testing"
	"time"

	"github.com/apothekehub/backend/internal/domain/content"
	"github.com/apothekehub/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockOpportunityRepository is a mock implementation of content.OpportunityRepository
type MockOpportunityRepository struct {
	mock.Mock
}

func (m *MockOpportunityRepository) FindByID(ctx context.Context, id uuid.UUID) (*content.Opportunity, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*content.Opportunity), args.Error(1)
}

func (m *MockOpportunityRepository) FindBySlug(ctx context.Context, slug string) (*content.Opportunity, error) {
	args := m.Called(ctx, slug)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*content.Opportunity), args.Error(1)
}

func (m *MockOpportunityRepository) FindAll(ctx context.Context, filter shared.Filter) ([]content.Opportunity, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]content.Opportunity), args.Error(1)
}

func (m *MockOpportunityRepository) Save(ctx context.Context, opportunity *content.Opportunity) error {
	args := m.Called(ctx, opportunity)
	return args.Error(0)
}

func (m *MockOpportunityRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockOpportunityRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func TestOpportunityService_CreateOpportunity(t *testing.T) {
	ctx := context.Background()

	t.Run("derives the slug from the title", func(t *testing.T) {
		repo := new(MockOpportunityRepository)
		service := NewOpportunityService(repo)

		repo.On("FindBySlug", ctx, "hay-fever-season-2026").Return(nil, shared.ErrNotFound)
		repo.On("Save", ctx, mock.AnythingOfType("*content.Opportunity")).Return(nil)

		resp, err := service.CreateOpportunity(ctx, CreateOpportunityRequest{
			Title:  "Hay Fever Season 2026",
			Season: "spring",
		})
		require.NoError(t, err)

		assert.Equal(t, "hay-fever-season-2026", resp.Slug)
		assert.Equal(t, "spring", resp.Season)
	})

	t.Run("rejects a taken slug", func(t *testing.T) {
		repo := new(MockOpportunityRepository)
		service := NewOpportunityService(repo)

		existing, err := content.NewOpportunity("Existing", "christmas", "winter")
		require.NoError(t, err)

		repo.On("FindBySlug", ctx, "christmas").Return(existing, nil)

		_, err = service.CreateOpportunity(ctx, CreateOpportunityRequest{Title: "Christmas", Slug: "christmas"})
		require.Error(t, err)

		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "SLUG_TAKEN", domainErr.Code)
	})

	t.Run("stores the active window and featured SKUs", func(t *testing.T) {
		repo := new(MockOpportunityRepository)
		service := NewOpportunityService(repo)

		starts := time.Now()
		ends := starts.Add(30 * 24 * time.Hour)

		repo.On("FindBySlug", ctx, "christmas-tea").Return(nil, shared.ErrNotFound)
		repo.On("Save", ctx, mock.AnythingOfType("*content.Opportunity")).Return(nil)

		resp, err := service.CreateOpportunity(ctx, CreateOpportunityRequest{
			Title:       "Christmas Tea",
			Season:      "winter",
			ProductSKUs: []string{"TEA-001", "TEA-002"},
			StartsAt:    &starts,
			EndsAt:      &ends,
		})
		require.NoError(t, err)

		assert.Equal(t, []string{"TEA-001", "TEA-002"}, resp.ProductSKUs)
		assert.True(t, resp.Active)
	})

	t.Run("rejects a window that ends before it starts", func(t *testing.T) {
		repo := new(MockOpportunityRepository)
		service := NewOpportunityService(repo)

		starts := time.Now()
		ends := starts.Add(-time.Hour)

		repo.On("FindBySlug", ctx, "broken").Return(nil, shared.ErrNotFound)

		_, err := service.CreateOpportunity(ctx, CreateOpportunityRequest{
			Title:    "Broken",
			Slug:     "broken",
			StartsAt: &starts,
			EndsAt:   &ends,
		})
		require.Error(t, err)
		repo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})
}

func TestOpportunityService_UpdateOpportunity(t *testing.T) {
	ctx := context.Background()

	repo := new(MockOpportunityRepository)
	service := NewOpportunityService(repo)

	opportunity, err := content.NewOpportunity("Original", "original", "spring")
	require.NoError(t, err)

	repo.On("FindByID", ctx, opportunity.ID).Return(opportunity, nil)
	repo.On("Save", ctx, opportunity).Return(nil)

	resp, err := service.UpdateOpportunity(ctx, opportunity.ID, UpdateOpportunityRequest{
		Title:       "Renamed",
		Season:      "summer",
		ProductSKUs: []string{"TEA-009"},
	})
	require.NoError(t, err)

	assert.Equal(t, "Renamed", resp.Title)
	assert.Equal(t, "summer", resp.Season)
	assert.Equal(t, "original", resp.Slug, "the slug never changes after creation")
	assert.Equal(t, []string{"TEA-009"}, resp.ProductSKUs)
}

func TestOpportunityService_GetOpportunityBySlug(t *testing.T) {
	ctx := context.Background()

	repo := new(MockOpportunityRepository)
	service := NewOpportunityService(repo)

	opportunity, err := content.NewOpportunity("Hay Fever", "hay-fever", "spring")
	require.NoError(t, err)

	repo.On("FindBySlug", ctx, "hay-fever").Return(opportunity, nil)

	resp, err := service.GetOpportunityBySlug(ctx, "hay-fever")
	require.NoError(t, err)
	assert.Equal(t, "Hay Fever", resp.Title)
}
