package catalog

import (
	"strings"
	"time"

	"github.com/apothekehub/backend/internal/domain/shared"
	"github.com/apothekehub/backend/internal/domain/shared/valueobject"
	"github.com/shopspring/decimal"
)

// LastUpdatedFieldRestored marks products whose marketing content was
// rebuilt from a backup rather than edited by hand.
const LastUpdatedFieldRestored = "restored_from_backup"

// FeedFields holds the product attributes owned by the supplier feed.
// Every sync overwrites them wholesale; nothing else writes them.
type FeedFields struct {
	Name            string          `gorm:"type:varchar(300);not null"`
	Description     string          `gorm:"type:text"`
	ImageURL        string          `gorm:"type:text"`
	Price           decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	ProductURL      string          `gorm:"type:text"`
	Availability    string          `gorm:"type:varchar(200)"`
	Brand           string          `gorm:"type:varchar(200)"`
	GTIN            string          `gorm:"type:varchar(50);column:gtin"`
	ProductType     string          `gorm:"type:varchar(200)"`
	FeedCategory    string          `gorm:"type:varchar(200);index"`
	FeedSubcategory string          `gorm:"type:varchar(200)"`
}

// MarketingFields holds the attributes owned by the marketing team.
// A feed patch cannot touch them: ApplyFeed only accepts FeedFields.
type MarketingFields struct {
	Category              string                 `gorm:"type:varchar(200);index"`
	SalesClaim            string                 `gorm:"type:text"`
	SalesClaimSubtitle    string                 `gorm:"type:text"`
	WhyBuy                valueobject.StringList `gorm:"type:text"`
	TargetAudience        string                 `gorm:"type:text"`
	PDFURL                string                 `gorm:"type:text;column:pdf_url"`
	BannerURLs            valueobject.StringList `gorm:"type:text;column:banner_urls"`
	SocialPostText        string                 `gorm:"type:text"`
	SocialPostImages      valueobject.StringList `gorm:"type:text"`
	Hashtags              valueobject.StringList `gorm:"type:text"`
	BrandPillar           string                 `gorm:"type:varchar(200)"`
	Tier                  string                 `gorm:"type:varchar(50)"`
	QuickReferenceCard    string                 `gorm:"type:text"`
	FAQ                   string                 `gorm:"type:text;column:faq"`
	FAQText               string                 `gorm:"type:text;column:faq_text"`
	SalesForecast         string                 `gorm:"type:text"`
	SensoryProfile        string                 `gorm:"type:text"`
	SeasonalOpportunities string                 `gorm:"type:text"`
	MainBenefits          string                 `gorm:"type:text"`
	HerbComposition       string                 `gorm:"type:text"`
	CompetitionComparison string                 `gorm:"type:text"`
	ArticleURLs           valueobject.StringList `gorm:"type:text;column:article_urls"`
	IsTop                 bool                   `gorm:"not null;default:false;index"`
	TopOrder              int                    `gorm:"not null;default:0"`
}

// HasContent reports whether any of the marketing fields that justify
// a backup snapshot carry a value.
func (m MarketingFields) HasContent() bool {
	return m.SalesClaim != "" ||
		m.Tier != "" ||
		m.BrandPillar != "" ||
		m.SocialPostText != "" ||
		!m.SocialPostImages.IsEmpty() ||
		!m.WhyBuy.IsEmpty() ||
		m.QuickReferenceCard != "" ||
		m.FAQ != "" ||
		m.IsTop
}

// Product represents a catalog item enriched with marketing content.
// It is the aggregate root for all product operations. The SKU links a
// product to the supplier feed; products without a SKU exist only in
// the catalog and are never reconciled or backed up.
type Product struct {
	shared.BaseAggregateRoot
	SKU                *string `gorm:"type:varchar(100);uniqueIndex;column:sku"`
	FeedFields         `gorm:"embedded"`
	MarketingFields    `gorm:"embedded"`
	LastSyncedAt       *time.Time
	MarketingUpdatedAt *time.Time
	LastUpdatedField   string `gorm:"type:varchar(100)"`
}

// TableName returns the table name for GORM
func (Product) TableName() string {
	return "products"
}

// NewProduct creates a new product without a feed identity
func NewProduct(name string) (*Product, error) {
	if err := validateProductName(name); err != nil {
		return nil, err
	}

	product := &Product{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		FeedFields: FeedFields{
			Name:  name,
			Price: decimal.Zero,
		},
	}

	product.AddDomainEvent(NewProductCreatedEvent(product))

	return product, nil
}

// NewProductFromFeed creates a product from a feed record. The SKU is
// mandatory here: feed products are always addressable by SKU.
func NewProductFromFeed(sku string, fields FeedFields, now time.Time) (*Product, error) {
	if err := validateSKU(sku); err != nil {
		return nil, err
	}
	if err := validateProductName(fields.Name); err != nil {
		return nil, err
	}

	product := &Product{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		SKU:               &sku,
		FeedFields:        fields,
		LastSyncedAt:      &now,
	}

	product.AddDomainEvent(NewProductCreatedEvent(product))

	return product, nil
}

// ApplyFeed overwrites the feed-owned fields with a fresh feed record.
// Marketing fields are untouched by construction.
func (p *Product) ApplyFeed(fields FeedFields, now time.Time) error {
	if err := validateProductName(fields.Name); err != nil {
		return err
	}

	p.FeedFields = fields
	p.LastSyncedAt = &now
	p.UpdatedAt = now
	p.IncrementVersion()

	p.AddDomainEvent(NewProductFeedAppliedEvent(p))

	return nil
}

// UpdateMarketing replaces the marketing-owned fields
func (p *Product) UpdateMarketing(fields MarketingFields, updatedField string) {
	now := time.Now()
	p.MarketingFields = fields
	p.MarketingUpdatedAt = &now
	p.LastUpdatedField = updatedField
	p.UpdatedAt = now
	p.IncrementVersion()

	p.AddDomainEvent(NewProductMarketingUpdatedEvent(p))
}

// RestoreMarketing rebuilds the marketing fields from a backup snapshot.
// The marketing timestamp is set to the snapshot time, not to now, so
// the catalog shows when the content was last genuinely edited.
func (p *Product) RestoreMarketing(fields MarketingFields, backedUpAt time.Time) {
	p.MarketingFields = fields
	p.MarketingUpdatedAt = &backedUpAt
	p.LastUpdatedField = LastUpdatedFieldRestored
	p.UpdatedAt = time.Now()
	p.IncrementVersion()

	p.AddDomainEvent(NewProductMarketingRestoredEvent(p))
}

// SetTopStatus flags the product for the top-products shelf
func (p *Product) SetTopStatus(isTop bool, order int) {
	now := time.Now()
	p.IsTop = isTop
	p.TopOrder = order
	p.MarketingUpdatedAt = &now
	p.LastUpdatedField = "is_top"
	p.UpdatedAt = now
	p.IncrementVersion()
}

// AssignSKU links a manually created product to a feed identity
func (p *Product) AssignSKU(sku string) error {
	if err := validateSKU(sku); err != nil {
		return err
	}

	p.SKU = &sku
	p.UpdatedAt = time.Now()
	p.IncrementVersion()

	return nil
}

// HasSKU reports whether the product participates in feed reconciliation
func (p *Product) HasSKU() bool {
	return p.SKU != nil && *p.SKU != ""
}

// HasMarketingContent reports whether the product carries marketing
// content worth preserving in a backup
func (p *Product) HasMarketingContent() bool {
	return p.MarketingFields.HasContent()
}

func validateSKU(sku string) error {
	if strings.TrimSpace(sku) == "" {
		return shared.NewDomainError("INVALID_SKU", "SKU cannot be empty")
	}
	if len(sku) > 100 {
		return shared.NewDomainError("INVALID_SKU", "SKU cannot exceed 100 characters")
	}
	return nil
}

func validateProductName(name string) error {
	if name == "" {
		return shared.NewDomainError("INVALID_NAME", "Product name cannot be empty")
	}
	if len(name) > 300 {
		return shared.NewDomainError("INVALID_NAME", "Product name cannot exceed 300 characters")
	}
	return nil
}
