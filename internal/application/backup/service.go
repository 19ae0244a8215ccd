package backup

import (
	"context"
	"errors"
	"fmt"

	catalogapp "github.com/apothekehub/backend/internal/application/catalog"
	"github.com/apothekehub/backend/internal/domain/catalog"
	"github.com/apothekehub/backend/internal/domain/shared"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

var _ catalogapp.ProductArchiver = (*Service)(nil)

// Service preserves marketing content across product deletions. The
// marketing fields are snapshotted one-per-SKU; gallery images are
// preserved one row per image and consumed on restore.
type Service struct {
	productRepo       catalog.ProductRepository
	backupRepo        catalog.MarketingBackupRepository
	galleryRepo       catalog.GalleryImageRepository
	galleryBackupRepo catalog.GalleryBackupRepository
	logger            *zap.Logger
}

// NewService creates a new backup Service
func NewService(
	productRepo catalog.ProductRepository,
	backupRepo catalog.MarketingBackupRepository,
	galleryRepo catalog.GalleryImageRepository,
	galleryBackupRepo catalog.GalleryBackupRepository,
	logger *zap.Logger,
) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		productRepo:       productRepo,
		backupRepo:        backupRepo,
		galleryRepo:       galleryRepo,
		galleryBackupRepo: galleryBackupRepo,
		logger:            logger,
	}
}

// BackupProduct snapshots the marketing content of a product by ID
func (s *Service) BackupProduct(ctx context.Context, productID uuid.UUID) (*BackupResult, error) {
	product, err := s.productRepo.FindByID(ctx, productID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NewDomainError("PRODUCT_NOT_FOUND", "Product not found")
		}
		return nil, err
	}

	backedUp, reason, err := s.ArchiveProduct(ctx, product)
	if err != nil {
		return nil, err
	}

	result := &BackupResult{ProductID: product.ID, BackedUp: backedUp, Reason: reason}
	if product.SKU != nil {
		result.SKU = *product.SKU
	}
	if backedUp {
		stored, err := s.backupRepo.FindBySKU(ctx, *product.SKU)
		if err == nil {
			result.BackedUpAt = &stored.BackedUpAt
		}
		images, err := s.galleryBackupRepo.FindBySKU(ctx, *product.SKU)
		if err == nil {
			result.GalleryImages = len(images)
		}
	}
	return result, nil
}

// ArchiveProduct preserves a product's marketing content and gallery.
// A product without a SKU or without marketing content yields a
// structured no-op, not an error: there is nothing worth keeping, and
// callers on the delete path must not be blocked by that.
func (s *Service) ArchiveProduct(ctx context.Context, product *catalog.Product) (bool, string, error) {
	if !product.HasSKU() {
		return false, ReasonMissingSKU, nil
	}
	if !product.HasMarketingContent() {
		return false, ReasonNoMarketingContent, nil
	}

	sku := *product.SKU

	existing, err := s.backupRepo.FindBySKU(ctx, sku)
	switch {
	case err == nil:
		existing.Refresh(product)
		if err := s.backupRepo.Save(ctx, existing); err != nil {
			return false, "", fmt.Errorf("failed to refresh backup for %s: %w", sku, err)
		}
	case errors.Is(err, shared.ErrNotFound):
		snapshot, err := catalog.NewMarketingBackup(product)
		if err != nil {
			return false, "", err
		}
		if err := s.backupRepo.Save(ctx, snapshot); err != nil {
			return false, "", fmt.Errorf("failed to store backup for %s: %w", sku, err)
		}
	default:
		return false, "", err
	}

	if err := s.preserveGallery(ctx, sku, product.ID); err != nil {
		return false, "", err
	}

	s.logger.Info("marketing content backed up",
		zap.String("sku", sku),
		zap.String("product_id", product.ID.String()))

	return true, "", nil
}

// preserveGallery moves gallery rows into the backup store, keyed by
// SKU. Images already preserved under the same storage key are not
// duplicated. The live rows are cleared afterwards; the stored objects
// themselves stay in the blob store and are re-linked on restore.
func (s *Service) preserveGallery(ctx context.Context, sku string, productID uuid.UUID) error {
	images, err := s.galleryRepo.FindByProduct(ctx, productID)
	if err != nil {
		return err
	}

	for i := range images {
		exists, err := s.galleryBackupRepo.ExistsBySKUAndKey(ctx, sku, images[i].StorageKey)
		if err != nil {
			return err
		}
		if exists {
			continue
		}

		preserved, err := catalog.NewGalleryBackup(sku, &images[i])
		if err != nil {
			return err
		}
		if err := s.galleryBackupRepo.Save(ctx, preserved); err != nil {
			return fmt.Errorf("failed to preserve gallery image %s: %w", images[i].StorageKey, err)
		}
	}

	if len(images) > 0 {
		if err := s.galleryRepo.DeleteByProduct(ctx, productID); err != nil {
			return fmt.Errorf("failed to clear gallery for %s: %w", sku, err)
		}
	}
	return nil
}

// RestoreToProduct applies the backup stored under the given SKU to a
// product. A missing backup is a structured outcome, not an error.
func (s *Service) RestoreToProduct(ctx context.Context, productID uuid.UUID, sku string) (*RestoreResult, error) {
	product, err := s.productRepo.FindByID(ctx, productID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NewDomainError("PRODUCT_NOT_FOUND", "Product not found")
		}
		return nil, err
	}

	result := &RestoreResult{ProductID: product.ID, SKU: sku}

	snapshot, err := s.backupRepo.FindBySKU(ctx, sku)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			result.Reason = ReasonBackupNotFound
			return result, nil
		}
		return nil, err
	}

	restored, err := s.applyBackup(ctx, product, snapshot)
	if err != nil {
		return nil, err
	}

	result.Restored = true
	result.GalleryImages = restored
	return result, nil
}

// RestoreAll walks every stored backup and applies it to the product
// currently carrying the SKU. Applied backups are consumed; backups
// whose SKU is not in the catalog are reported as skipped and kept
// for a later run.
func (s *Service) RestoreAll(ctx context.Context) (*RestoreAllResult, error) {
	backups, err := s.backupRepo.FindAll(ctx)
	if err != nil {
		return nil, err
	}

	result := &RestoreAllResult{
		TotalBackups: len(backups),
		Skipped:      []SkippedRestore{},
	}

	for i := range backups {
		snapshot := &backups[i]

		product, err := s.productRepo.FindBySKU(ctx, snapshot.SKU)
		if err != nil {
			if errors.Is(err, shared.ErrNotFound) {
				result.Skipped = append(result.Skipped, SkippedRestore{
					SKU:    snapshot.SKU,
					Reason: ReasonProductNotFound,
				})
				continue
			}
			return nil, err
		}

		if _, err := s.applyBackup(ctx, product, snapshot); err != nil {
			return nil, fmt.Errorf("failed to restore %s: %w", snapshot.SKU, err)
		}
		result.Restored++
	}

	s.logger.Info("bulk restore finished",
		zap.Int("total", result.TotalBackups),
		zap.Int("restored", result.Restored),
		zap.Int("skipped", len(result.Skipped)))

	return result, nil
}

// ListBackups returns the stored marketing backups
func (s *Service) ListBackups(ctx context.Context) ([]BackupResponse, error) {
	backups, err := s.backupRepo.FindAll(ctx)
	if err != nil {
		return nil, err
	}

	items := make([]BackupResponse, len(backups))
	for i, b := range backups {
		items[i] = BackupResponse{
			ID:          b.ID,
			SKU:         b.SKU,
			ProductName: b.ProductName,
			BackedUpAt:  b.BackedUpAt,
		}
	}
	return items, nil
}

// applyBackup writes the snapshot onto the product and rebuilds its
// gallery. The snapshot and its gallery backups are consumed: a second
// restore finds nothing, and a later deletion snapshots afresh.
func (s *Service) applyBackup(ctx context.Context, product *catalog.Product, snapshot *catalog.MarketingBackup) (int, error) {
	product.RestoreMarketing(snapshot.MarketingFields, snapshot.BackedUpAt)

	if err := s.productRepo.Save(ctx, product); err != nil {
		return 0, err
	}

	preserved, err := s.galleryBackupRepo.FindBySKU(ctx, snapshot.SKU)
	if err != nil {
		return 0, err
	}

	restored := 0
	for i := range preserved {
		image := preserved[i].ToGalleryImage(product.ID)
		if err := s.galleryRepo.Save(ctx, image); err != nil {
			return restored, err
		}
		restored++
	}

	if len(preserved) > 0 {
		if err := s.galleryBackupRepo.DeleteBySKU(ctx, snapshot.SKU); err != nil {
			return restored, err
		}
	}

	if err := s.backupRepo.Delete(ctx, snapshot.ID); err != nil {
		return restored, err
	}

	s.logger.Info("marketing content restored",
		zap.String("sku", snapshot.SKU),
		zap.String("product_id", product.ID.String()),
		zap.Int("gallery_images", restored))

	return restored, nil
}
