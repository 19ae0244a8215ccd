package catalog

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/apothekehub/backend/internal/domain/catalog"
	"github.com/apothekehub/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// GalleryServiceConfig holds configuration for the gallery service
type GalleryServiceConfig struct {
	// UploadURLExpiry is the duration for which upload URLs are valid
	UploadURLExpiry time.Duration
	// DownloadURLExpiry is the duration for which download URLs are valid
	DownloadURLExpiry time.Duration
	// MaxImagesPerProduct caps the gallery size of a single product
	MaxImagesPerProduct int
	// MaxFileSize caps the declared upload size in bytes
	MaxFileSize int64
}

// DefaultGalleryServiceConfig returns the default configuration
func DefaultGalleryServiceConfig() GalleryServiceConfig {
	return GalleryServiceConfig{
		UploadURLExpiry:     15 * time.Minute,
		DownloadURLExpiry:   1 * time.Hour,
		MaxImagesPerProduct: 30,
		MaxFileSize:         20 * 1024 * 1024,
	}
}

// GalleryService handles product gallery uploads. The image bytes go
// straight to object storage via presigned URLs; the service only
// hands out URLs and keeps the rows.
type GalleryService struct {
	galleryRepo catalog.GalleryImageRepository
	productRepo catalog.ProductRepository
	storage     ObjectStorageService
	config      GalleryServiceConfig
}

// NewGalleryService creates a new GalleryService
func NewGalleryService(
	galleryRepo catalog.GalleryImageRepository,
	productRepo catalog.ProductRepository,
	storage ObjectStorageService,
) *GalleryService {
	return &GalleryService{
		galleryRepo: galleryRepo,
		productRepo: productRepo,
		storage:     storage,
		config:      DefaultGalleryServiceConfig(),
	}
}

// SetConfig sets the service configuration
func (s *GalleryService) SetConfig(config GalleryServiceConfig) {
	s.config = config
}

// RequestUpload validates the upload and returns a presigned PUT URL.
// No row is written yet; the client confirms after the upload succeeds.
func (s *GalleryService) RequestUpload(ctx context.Context, productID uuid.UUID, req RequestUploadRequest) (*RequestUploadResponse, error) {
	product, err := s.productRepo.FindByID(ctx, productID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NewDomainError("PRODUCT_NOT_FOUND", "Product not found")
		}
		return nil, err
	}

	if !AllowedImageContentTypes[strings.ToLower(req.ContentType)] {
		return nil, shared.NewDomainError("CONTENT_TYPE_NOT_ALLOWED",
			fmt.Sprintf("Content type %s is not allowed for gallery uploads", req.ContentType))
	}
	if req.FileSize > s.config.MaxFileSize {
		return nil, shared.NewDomainError("FILE_TOO_LARGE",
			fmt.Sprintf("File exceeds the maximum size of %d bytes", s.config.MaxFileSize))
	}

	existing, err := s.galleryRepo.FindByProduct(ctx, productID)
	if err != nil {
		return nil, err
	}
	if len(existing) >= s.config.MaxImagesPerProduct {
		return nil, shared.NewDomainError("GALLERY_FULL",
			fmt.Sprintf("Product already has %d gallery images", len(existing)))
	}

	storageKey := buildStorageKey(product, req.FileName)
	uploadURL, expiresAt, err := s.storage.GenerateUploadURL(ctx, storageKey, req.ContentType, s.config.UploadURLExpiry)
	if err != nil {
		return nil, fmt.Errorf("failed to generate upload URL: %w", err)
	}

	return &RequestUploadResponse{
		StorageKey: storageKey,
		UploadURL:  uploadURL,
		ExpiresAt:  expiresAt,
	}, nil
}

// ConfirmUpload registers a completed upload as a gallery image. The
// object must exist in storage; a confirm for a failed upload is rejected.
func (s *GalleryService) ConfirmUpload(ctx context.Context, productID uuid.UUID, req ConfirmUploadRequest) (*GalleryImageResponse, error) {
	if _, err := s.productRepo.FindByID(ctx, productID); err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NewDomainError("PRODUCT_NOT_FOUND", "Product not found")
		}
		return nil, err
	}

	exists, err := s.storage.ObjectExists(ctx, req.StorageKey)
	if err != nil {
		return nil, fmt.Errorf("failed to check object existence: %w", err)
	}
	if !exists {
		return nil, shared.NewDomainError("OBJECT_NOT_FOUND", "Uploaded object not found in storage")
	}

	image, err := catalog.NewGalleryImage(productID, req.StorageKey, req.FileName, req.ContentType, req.FileSize)
	if err != nil {
		return nil, err
	}

	if err := s.galleryRepo.Save(ctx, image); err != nil {
		return nil, err
	}

	resp := ToGalleryImageResponse(image)
	return &resp, nil
}

// ListImages returns the gallery of a product with fresh download URLs
func (s *GalleryService) ListImages(ctx context.Context, productID uuid.UUID) ([]GalleryImageResponse, error) {
	images, err := s.galleryRepo.FindByProduct(ctx, productID)
	if err != nil {
		return nil, err
	}

	items := make([]GalleryImageResponse, len(images))
	for i := range images {
		items[i] = ToGalleryImageResponse(&images[i])
		url, _, err := s.storage.GenerateDownloadURL(ctx, images[i].StorageKey, s.config.DownloadURLExpiry)
		if err != nil {
			return nil, fmt.Errorf("failed to generate download URL: %w", err)
		}
		items[i].DownloadURL = url
	}
	return items, nil
}

// SetTags replaces the tags on a gallery image
func (s *GalleryService) SetTags(ctx context.Context, imageID uuid.UUID, req SetImageTagsRequest) (*GalleryImageResponse, error) {
	image, err := s.galleryRepo.FindByID(ctx, imageID)
	if err != nil {
		return nil, err
	}

	image.SetTags(req.Tags)

	if err := s.galleryRepo.Save(ctx, image); err != nil {
		return nil, err
	}

	resp := ToGalleryImageResponse(image)
	return &resp, nil
}

// DeleteImage removes a gallery image row and its stored object
func (s *GalleryService) DeleteImage(ctx context.Context, imageID uuid.UUID) error {
	image, err := s.galleryRepo.FindByID(ctx, imageID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return shared.NewDomainError("IMAGE_NOT_FOUND", "Gallery image not found")
		}
		return err
	}

	if err := s.storage.DeleteObject(ctx, image.StorageKey); err != nil {
		return fmt.Errorf("failed to delete stored object: %w", err)
	}

	return s.galleryRepo.Delete(ctx, image.ID)
}

// buildStorageKey derives a collision-free object key. The key is
// grouped by SKU when the product has one, otherwise by product ID.
func buildStorageKey(product *catalog.Product, fileName string) string {
	prefix := product.ID.String()
	if product.HasSKU() {
		prefix = *product.SKU
	}

	ext := strings.ToLower(filepath.Ext(fileName))
	return fmt.Sprintf("gallery/%s/%s%s", prefix, uuid.New().String(), ext)
}
