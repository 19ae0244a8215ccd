package catalog

import (
	"context"
	"time"

	"github.com/apothekehub/backend/internal/domain/catalog"
	"github.com/apothekehub/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

// MockProductRepository is a mock implementation of catalog.ProductRepository
type MockProductRepository struct {
	mock.Mock
}

func (m *MockProductRepository) FindByID(ctx context.Context, id uuid.UUID) (*catalog.Product, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Product), args.Error(1)
}

func (m *MockProductRepository) FindBySKU(ctx context.Context, sku string) (*catalog.Product, error) {
	args := m.Called(ctx, sku)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Product), args.Error(1)
}

func (m *MockProductRepository) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]catalog.Product, error) {
	args := m.Called(ctx, ids)
	return args.Get(0).([]catalog.Product), args.Error(1)
}

func (m *MockProductRepository) FindAll(ctx context.Context, filter shared.Filter) ([]catalog.Product, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]catalog.Product), args.Error(1)
}

func (m *MockProductRepository) FindTop(ctx context.Context) ([]catalog.Product, error) {
	args := m.Called(ctx)
	return args.Get(0).([]catalog.Product), args.Error(1)
}

func (m *MockProductRepository) FindAllSKUs(ctx context.Context) ([]string, error) {
	args := m.Called(ctx)
	return args.Get(0).([]string), args.Error(1)
}

func (m *MockProductRepository) Save(ctx context.Context, product *catalog.Product) error {
	args := m.Called(ctx, product)
	return args.Error(0)
}

func (m *MockProductRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockProductRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockProductRepository) ExistsBySKU(ctx context.Context, sku string) (bool, error) {
	args := m.Called(ctx, sku)
	return args.Bool(0), args.Error(1)
}

// MockGalleryImageRepository is a mock implementation of catalog.GalleryImageRepository
type MockGalleryImageRepository struct {
	mock.Mock
}

func (m *MockGalleryImageRepository) FindByID(ctx context.Context, id uuid.UUID) (*catalog.GalleryImage, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.GalleryImage), args.Error(1)
}

func (m *MockGalleryImageRepository) FindByProduct(ctx context.Context, productID uuid.UUID) ([]catalog.GalleryImage, error) {
	args := m.Called(ctx, productID)
	return args.Get(0).([]catalog.GalleryImage), args.Error(1)
}

func (m *MockGalleryImageRepository) Save(ctx context.Context, image *catalog.GalleryImage) error {
	args := m.Called(ctx, image)
	return args.Error(0)
}

func (m *MockGalleryImageRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockGalleryImageRepository) DeleteByProduct(ctx context.Context, productID uuid.UUID) error {
	args := m.Called(ctx, productID)
	return args.Error(0)
}

// MockFeedTaxonomyRepository is a mock implementation of catalog.FeedTaxonomyRepository
type MockFeedTaxonomyRepository struct {
	mock.Mock
}

func (m *MockFeedTaxonomyRepository) FindByCategory(ctx context.Context, category string) (*catalog.FeedTaxonomy, error) {
	args := m.Called(ctx, category)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.FeedTaxonomy), args.Error(1)
}

func (m *MockFeedTaxonomyRepository) FindAll(ctx context.Context) ([]catalog.FeedTaxonomy, error) {
	args := m.Called(ctx)
	return args.Get(0).([]catalog.FeedTaxonomy), args.Error(1)
}

func (m *MockFeedTaxonomyRepository) Save(ctx context.Context, taxonomy *catalog.FeedTaxonomy) error {
	args := m.Called(ctx, taxonomy)
	return args.Error(0)
}

// MockObjectStorage is a mock implementation of ObjectStorageService
type MockObjectStorage struct {
	mock.Mock
}

func (m *MockObjectStorage) GenerateUploadURL(ctx context.Context, storageKey, contentType string, expiresIn time.Duration) (string, time.Time, error) {
	args := m.Called(ctx, storageKey, contentType, expiresIn)
	return args.String(0), args.Get(1).(time.Time), args.Error(2)
}

func (m *MockObjectStorage) GenerateDownloadURL(ctx context.Context, storageKey string, expiresIn time.Duration) (string, time.Time, error) {
	args := m.Called(ctx, storageKey, expiresIn)
	return args.String(0), args.Get(1).(time.Time), args.Error(2)
}

func (m *MockObjectStorage) DeleteObject(ctx context.Context, storageKey string) error {
	args := m.Called(ctx, storageKey)
	return args.Error(0)
}

func (m *MockObjectStorage) ObjectExists(ctx context.Context, storageKey string) (bool, error) {
	args := m.Called(ctx, storageKey)
	return args.Bool(0), args.Error(1)
}

// MockArchiver is a mock implementation of ProductArchiver
type MockArchiver struct {
	mock.Mock
}

func (m *MockArchiver) ArchiveProduct(ctx context.Context, product *catalog.Product) (bool, string, error) {
	args := m.Called(ctx, product)
	return args.Bool(0), args.String(1), args.Error(2)
}
