package catalog

import (
	"context"
	"errors"

	"github.com/apothekehub/backend/internal/domain/catalog"
	"github.com/apothekehub/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// ProductArchiver preserves a product's marketing content and gallery
// before the product row disappears. Implemented by the backup service.
type ProductArchiver interface {
	ArchiveProduct(ctx context.Context, product *catalog.Product) (bool, string, error)
}

// ProductService handles catalog product operations
type ProductService struct {
	productRepo catalog.ProductRepository
	archiver    ProductArchiver
	eventBus    shared.EventPublisher
}

// NewProductService creates a new ProductService
func NewProductService(
	productRepo catalog.ProductRepository,
	archiver ProductArchiver,
	eventBus shared.EventPublisher,
) *ProductService {
	return &ProductService{
		productRepo: productRepo,
		archiver:    archiver,
		eventBus:    eventBus,
	}
}

// CreateProduct creates a product by hand. The SKU is optional: the
// marketing team sometimes prepares content before the item appears in
// the supplier feed.
func (s *ProductService) CreateProduct(ctx context.Context, req CreateProductRequest) (*ProductResponse, error) {
	product, err := catalog.NewProduct(req.Name)
	if err != nil {
		return nil, err
	}

	if req.SKU != nil && *req.SKU != "" {
		exists, err := s.productRepo.ExistsBySKU(ctx, *req.SKU)
		if err != nil {
			return nil, err
		}
		if exists {
			return nil, shared.NewDomainError("SKU_TAKEN", "A product with this SKU already exists")
		}
		if err := product.AssignSKU(*req.SKU); err != nil {
			return nil, err
		}
	}

	if err := s.productRepo.Save(ctx, product); err != nil {
		return nil, err
	}

	s.publishEvents(ctx, product)

	resp := ToProductResponse(product)
	return &resp, nil
}

// GetProduct returns a product by ID
func (s *ProductService) GetProduct(ctx context.Context, id uuid.UUID) (*ProductResponse, error) {
	product, err := s.productRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	resp := ToProductResponse(product)
	return &resp, nil
}

// GetProductBySKU returns a product by its feed SKU
func (s *ProductService) GetProductBySKU(ctx context.Context, sku string) (*ProductResponse, error) {
	product, err := s.productRepo.FindBySKU(ctx, sku)
	if err != nil {
		return nil, err
	}

	resp := ToProductResponse(product)
	return &resp, nil
}

// ListProducts returns a filtered, paginated product list
func (s *ProductService) ListProducts(ctx context.Context, req ListProductsRequest) (*ProductListResult, error) {
	filter := shared.DefaultFilter()
	if req.Page > 0 {
		filter.Page = req.Page
	}
	if req.PageSize > 0 {
		filter.PageSize = req.PageSize
	}
	if req.OrderBy != "" {
		filter.OrderBy = req.OrderBy
	}
	if req.OrderDir != "" {
		filter.OrderDir = req.OrderDir
	}
	filter.Search = req.Search
	if req.Category != "" {
		filter.Filters["category"] = req.Category
	}

	products, err := s.productRepo.FindAll(ctx, filter)
	if err != nil {
		return nil, err
	}

	total, err := s.productRepo.Count(ctx, filter)
	if err != nil {
		return nil, err
	}

	items := make([]ProductResponse, len(products))
	for i := range products {
		items[i] = ToProductResponse(&products[i])
	}

	paginated := shared.NewPaginated(items, total, filter.Page, filter.PageSize)
	return &ProductListResult{
		Items:      paginated.Items,
		Total:      paginated.Total,
		Page:       paginated.Page,
		PageSize:   paginated.PageSize,
		TotalPages: paginated.TotalPages,
	}, nil
}

// ListTopProducts returns the products flagged for the top shelf,
// ordered by their configured position
func (s *ProductService) ListTopProducts(ctx context.Context) ([]ProductResponse, error) {
	products, err := s.productRepo.FindTop(ctx)
	if err != nil {
		return nil, err
	}

	items := make([]ProductResponse, len(products))
	for i := range products {
		items[i] = ToProductResponse(&products[i])
	}
	return items, nil
}

// UpdateMarketing replaces the marketing-owned fields of a product.
// Feed-owned fields are not reachable through this operation.
func (s *ProductService) UpdateMarketing(ctx context.Context, id uuid.UUID, req UpdateMarketingRequest) (*ProductResponse, error) {
	product, err := s.productRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	product.UpdateMarketing(req.MarketingFields(product.MarketingFields), req.UpdatedField)

	if err := s.productRepo.Save(ctx, product); err != nil {
		return nil, err
	}

	s.publishEvents(ctx, product)

	resp := ToProductResponse(product)
	return &resp, nil
}

// SetTopStatus flags or unflags a product for the top-products shelf
func (s *ProductService) SetTopStatus(ctx context.Context, id uuid.UUID, req SetTopStatusRequest) (*ProductResponse, error) {
	product, err := s.productRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	product.SetTopStatus(req.IsTop, req.TopOrder)

	if err := s.productRepo.Save(ctx, product); err != nil {
		return nil, err
	}

	resp := ToProductResponse(product)
	return &resp, nil
}

// AssignSKU links a manually created product to a feed identity so the
// next sync reconciles it instead of creating a duplicate
func (s *ProductService) AssignSKU(ctx context.Context, id uuid.UUID, req AssignSKURequest) (*ProductResponse, error) {
	product, err := s.productRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if product.HasSKU() {
		return nil, shared.NewDomainError("SKU_ALREADY_ASSIGNED", "Product already has a SKU")
	}

	exists, err := s.productRepo.ExistsBySKU(ctx, req.SKU)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, shared.NewDomainError("SKU_TAKEN", "A product with this SKU already exists")
	}

	if err := product.AssignSKU(req.SKU); err != nil {
		return nil, err
	}

	if err := s.productRepo.Save(ctx, product); err != nil {
		return nil, err
	}

	resp := ToProductResponse(product)
	return &resp, nil
}

// DeleteProduct removes a product. When the product carries marketing
// content under a SKU, the content is preserved in the backup store
// first so a future feed item with the same SKU can be re-enriched.
func (s *ProductService) DeleteProduct(ctx context.Context, id uuid.UUID) (*DeleteProductResult, error) {
	product, err := s.productRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NewDomainError("PRODUCT_NOT_FOUND", "Product not found")
		}
		return nil, err
	}

	result := &DeleteProductResult{ID: product.ID}

	backedUp, reason, err := s.archiver.ArchiveProduct(ctx, product)
	if err != nil {
		return nil, err
	}
	result.BackedUp = backedUp
	result.Reason = reason

	if err := s.productRepo.Delete(ctx, product.ID); err != nil {
		return nil, err
	}

	if s.eventBus != nil {
		event := catalog.NewProductDeletedEvent(product, backedUp)
		_ = s.eventBus.Publish(ctx, event)
	}

	return result, nil
}

func (s *ProductService) publishEvents(ctx context.Context, product *catalog.Product) {
	if s.eventBus == nil {
		return
	}
	events := product.GetDomainEvents()
	if len(events) == 0 {
		return
	}
	_ = s.eventBus.Publish(ctx, events...)
	product.ClearDomainEvents()
}
