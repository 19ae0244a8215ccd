package catalog

import (
	"github.com/apothekehub/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// Aggregate type constant
const AggregateTypeProduct = "Product"

// Event type constants
const (
	EventTypeProductCreated           = "ProductCreated"
	EventTypeProductFeedApplied       = "ProductFeedApplied"
	EventTypeProductMarketingUpdated  = "ProductMarketingUpdated"
	EventTypeProductMarketingRestored = "ProductMarketingRestored"
	EventTypeProductDeleted           = "ProductDeleted"
)

// ProductCreatedEvent is published when a new product is created
type ProductCreatedEvent struct {
	shared.BaseDomainEvent
	ProductID uuid.UUID `json:"product_id"`
	SKU       string    `json:"sku,omitempty"`
	Name      string    `json:"name"`
}

// NewProductCreatedEvent creates a new ProductCreatedEvent
func NewProductCreatedEvent(product *Product) *ProductCreatedEvent {
	event := &ProductCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeProductCreated, AggregateTypeProduct, product.ID),
		ProductID:       product.ID,
		Name:            product.Name,
	}
	if product.SKU != nil {
		event.SKU = *product.SKU
	}
	return event
}

// ProductFeedAppliedEvent is published when a sync patches feed fields
type ProductFeedAppliedEvent struct {
	shared.BaseDomainEvent
	ProductID uuid.UUID `json:"product_id"`
	SKU       string    `json:"sku"`
	Name      string    `json:"name"`
}

// NewProductFeedAppliedEvent creates a new ProductFeedAppliedEvent
func NewProductFeedAppliedEvent(product *Product) *ProductFeedAppliedEvent {
	event := &ProductFeedAppliedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeProductFeedApplied, AggregateTypeProduct, product.ID),
		ProductID:       product.ID,
		Name:            product.Name,
	}
	if product.SKU != nil {
		event.SKU = *product.SKU
	}
	return event
}

// ProductMarketingUpdatedEvent is published when marketing content changes
type ProductMarketingUpdatedEvent struct {
	shared.BaseDomainEvent
	ProductID    uuid.UUID `json:"product_id"`
	Name         string    `json:"name"`
	UpdatedField string    `json:"updated_field,omitempty"`
}

// NewProductMarketingUpdatedEvent creates a new ProductMarketingUpdatedEvent
func NewProductMarketingUpdatedEvent(product *Product) *ProductMarketingUpdatedEvent {
	return &ProductMarketingUpdatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeProductMarketingUpdated, AggregateTypeProduct, product.ID),
		ProductID:       product.ID,
		Name:            product.Name,
		UpdatedField:    product.LastUpdatedField,
	}
}

// ProductMarketingRestoredEvent is published when marketing content is
// rebuilt from a backup
type ProductMarketingRestoredEvent struct {
	shared.BaseDomainEvent
	ProductID uuid.UUID `json:"product_id"`
	SKU       string    `json:"sku,omitempty"`
	Name      string    `json:"name"`
}

// NewProductMarketingRestoredEvent creates a new ProductMarketingRestoredEvent
func NewProductMarketingRestoredEvent(product *Product) *ProductMarketingRestoredEvent {
	event := &ProductMarketingRestoredEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeProductMarketingRestored, AggregateTypeProduct, product.ID),
		ProductID:       product.ID,
		Name:            product.Name,
	}
	if product.SKU != nil {
		event.SKU = *product.SKU
	}
	return event
}

// ProductDeletedEvent is published when a product is removed from the catalog
type ProductDeletedEvent struct {
	shared.BaseDomainEvent
	ProductID uuid.UUID `json:"product_id"`
	SKU       string    `json:"sku,omitempty"`
	Name      string    `json:"name"`
	BackedUp  bool      `json:"backed_up"`
}

// NewProductDeletedEvent creates a new ProductDeletedEvent
func NewProductDeletedEvent(product *Product, backedUp bool) *ProductDeletedEvent {
	event := &ProductDeletedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeProductDeleted, AggregateTypeProduct, product.ID),
		ProductID:       product.ID,
		Name:            product.Name,
		BackedUp:        backedUp,
	}
	if product.SKU != nil {
		event.SKU = *product.SKU
	}
	return event
}
