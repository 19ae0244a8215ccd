package catalog

import (
	"time"

	"github.com/apothekehub/backend/internal/domain/catalog"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CreateProductRequest represents a request to create a product by hand,
// without a feed identity
type CreateProductRequest struct {
	Name string  `json:"name" binding:"required,min=1,max=300"`
	SKU  *string `json:"sku" binding:"omitempty,min=1,max=100"`
}

// UpdateMarketingRequest carries a full replacement of the marketing
// fields. The feed-owned fields are not part of the payload on purpose.
type UpdateMarketingRequest struct {
	Category              string   `json:"category" binding:"max=200"`
	SalesClaim            string   `json:"sales_claim"`
	SalesClaimSubtitle    string   `json:"sales_claim_subtitle"`
	WhyBuy                []string `json:"why_buy"`
	TargetAudience        string   `json:"target_audience"`
	PDFURL                string   `json:"pdf_url"`
	BannerURLs            []string `json:"banner_urls"`
	SocialPostText        string   `json:"social_post_text"`
	SocialPostImages      []string `json:"social_post_images"`
	Hashtags              []string `json:"hashtags"`
	BrandPillar           string   `json:"brand_pillar" binding:"max=200"`
	Tier                  string   `json:"tier" binding:"max=50"`
	QuickReferenceCard    string   `json:"quick_reference_card"`
	FAQ                   string   `json:"faq"`
	FAQText               string   `json:"faq_text"`
	SalesForecast         string   `json:"sales_forecast"`
	SensoryProfile        string   `json:"sensory_profile"`
	SeasonalOpportunities string   `json:"seasonal_opportunities"`
	MainBenefits          string   `json:"main_benefits"`
	HerbComposition       string   `json:"herb_composition"`
	CompetitionComparison string   `json:"competition_comparison"`
	ArticleURLs           []string `json:"article_urls"`
	UpdatedField          string   `json:"updated_field" binding:"max=100"`
}

// MarketingFields converts the request into domain marketing fields,
// preserving the top-shelf flags already on the product
func (r UpdateMarketingRequest) MarketingFields(current catalog.MarketingFields) catalog.MarketingFields {
	return catalog.MarketingFields{
		Category:              r.Category,
		SalesClaim:            r.SalesClaim,
		SalesClaimSubtitle:    r.SalesClaimSubtitle,
		WhyBuy:                r.WhyBuy,
		TargetAudience:        r.TargetAudience,
		PDFURL:                r.PDFURL,
		BannerURLs:            r.BannerURLs,
		SocialPostText:        r.SocialPostText,
		SocialPostImages:      r.SocialPostImages,
		Hashtags:              r.Hashtags,
		BrandPillar:           r.BrandPillar,
		Tier:                  r.Tier,
		QuickReferenceCard:    r.QuickReferenceCard,
		FAQ:                   r.FAQ,
		FAQText:               r.FAQText,
		SalesForecast:         r.SalesForecast,
		SensoryProfile:        r.SensoryProfile,
		SeasonalOpportunities: r.SeasonalOpportunities,
		MainBenefits:          r.MainBenefits,
		HerbComposition:       r.HerbComposition,
		CompetitionComparison: r.CompetitionComparison,
		ArticleURLs:           r.ArticleURLs,
		IsTop:                 current.IsTop,
		TopOrder:              current.TopOrder,
	}
}

// SetTopStatusRequest flags a product for the top-products shelf
type SetTopStatusRequest struct {
	IsTop    bool `json:"is_top"`
	TopOrder int  `json:"top_order" binding:"min=0"`
}

// AssignSKURequest links a manually created product to a feed identity
type AssignSKURequest struct {
	SKU string `json:"sku" binding:"required,min=1,max=100"`
}

// ListProductsRequest represents product list query parameters
type ListProductsRequest struct {
	Page     int    `form:"page" binding:"omitempty,min=1"`
	PageSize int    `form:"page_size" binding:"omitempty,min=1,max=100"`
	Search   string `form:"search" binding:"omitempty,max=200"`
	Category string `form:"category" binding:"omitempty,max=200"`
	OrderBy  string `form:"order_by" binding:"omitempty,max=50"`
	OrderDir string `form:"order_dir" binding:"omitempty,oneof=asc desc"`
}

// ProductResponse represents a product in API responses
type ProductResponse struct {
	ID                 uuid.UUID       `json:"id"`
	SKU                *string         `json:"sku"`
	Name               string          `json:"name"`
	Description        string          `json:"description"`
	ImageURL           string          `json:"image_url"`
	Price              decimal.Decimal `json:"price"`
	ProductURL         string          `json:"product_url"`
	Availability       string          `json:"availability"`
	Brand              string          `json:"brand"`
	GTIN               string          `json:"gtin"`
	ProductType        string          `json:"product_type"`
	FeedCategory       string          `json:"feed_category"`
	FeedSubcategory    string          `json:"feed_subcategory"`
	Category           string          `json:"category"`
	SalesClaim         string          `json:"sales_claim"`
	SalesClaimSubtitle string          `json:"sales_claim_subtitle"`
	WhyBuy             []string        `json:"why_buy"`
	TargetAudience     string          `json:"target_audience"`
	PDFURL             string          `json:"pdf_url"`
	BannerURLs         []string        `json:"banner_urls"`
	SocialPostText     string          `json:"social_post_text"`
	SocialPostImages   []string        `json:"social_post_images"`
	Hashtags           []string        `json:"hashtags"`
	BrandPillar        string          `json:"brand_pillar"`
	Tier               string          `json:"tier"`
	QuickReferenceCard string          `json:"quick_reference_card"`
	FAQ                string          `json:"faq"`
	FAQText            string          `json:"faq_text"`
	SalesForecast      string          `json:"sales_forecast"`
	SensoryProfile     string          `json:"sensory_profile"`
	SeasonalOpps       string          `json:"seasonal_opportunities"`
	MainBenefits       string          `json:"main_benefits"`
	HerbComposition    string          `json:"herb_composition"`
	CompetitionComp    string          `json:"competition_comparison"`
	ArticleURLs        []string        `json:"article_urls"`
	IsTop              bool            `json:"is_top"`
	TopOrder           int             `json:"top_order"`
	LastSyncedAt       *time.Time      `json:"last_synced_at"`
	MarketingUpdatedAt *time.Time      `json:"marketing_updated_at"`
	LastUpdatedField   string          `json:"last_updated_field"`
	CreatedAt          time.Time       `json:"created_at"`
	UpdatedAt          time.Time       `json:"updated_at"`
	Version            int             `json:"version"`
}

// ToProductResponse converts a product to its API representation
func ToProductResponse(p *catalog.Product) ProductResponse {
	return ProductResponse{
		ID:                 p.ID,
		SKU:                p.SKU,
		Name:               p.Name,
		Description:        p.Description,
		ImageURL:           p.ImageURL,
		Price:              p.Price,
		ProductURL:         p.ProductURL,
		Availability:       p.Availability,
		Brand:              p.Brand,
		GTIN:               p.GTIN,
		ProductType:        p.ProductType,
		FeedCategory:       p.FeedCategory,
		FeedSubcategory:    p.FeedSubcategory,
		Category:           p.Category,
		SalesClaim:         p.SalesClaim,
		SalesClaimSubtitle: p.SalesClaimSubtitle,
		WhyBuy:             p.WhyBuy,
		TargetAudience:     p.TargetAudience,
		PDFURL:             p.PDFURL,
		BannerURLs:         p.BannerURLs,
		SocialPostText:     p.SocialPostText,
		SocialPostImages:   p.SocialPostImages,
		Hashtags:           p.Hashtags,
		BrandPillar:        p.BrandPillar,
		Tier:               p.Tier,
		QuickReferenceCard: p.QuickReferenceCard,
		FAQ:                p.FAQ,
		FAQText:            p.FAQText,
		SalesForecast:      p.SalesForecast,
		SensoryProfile:     p.SensoryProfile,
		SeasonalOpps:       p.SeasonalOpportunities,
		MainBenefits:       p.MainBenefits,
		HerbComposition:    p.HerbComposition,
		CompetitionComp:    p.CompetitionComparison,
		ArticleURLs:        p.ArticleURLs,
		IsTop:              p.IsTop,
		TopOrder:           p.TopOrder,
		LastSyncedAt:       p.LastSyncedAt,
		MarketingUpdatedAt: p.MarketingUpdatedAt,
		LastUpdatedField:   p.LastUpdatedField,
		CreatedAt:          p.CreatedAt,
		UpdatedAt:          p.UpdatedAt,
		Version:            p.Version,
	}
}

// ProductListResult represents a paginated product list
type ProductListResult struct {
	Items      []ProductResponse `json:"items"`
	Total      int64             `json:"total"`
	Page       int               `json:"page"`
	PageSize   int               `json:"page_size"`
	TotalPages int               `json:"total_pages"`
}

// DeleteProductResult reports what happened to a deleted product
type DeleteProductResult struct {
	ID       uuid.UUID `json:"id"`
	BackedUp bool      `json:"backed_up"`
	Reason   string    `json:"reason,omitempty"`
}

// TaxonomyResponse is one observed feed category with its subcategories
type TaxonomyResponse struct {
	Category      string    `json:"category"`
	Subcategories []string  `json:"subcategories"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// RequestUploadRequest asks for a presigned gallery upload
type RequestUploadRequest struct {
	FileName    string `json:"file_name" binding:"required,min=1,max=300"`
	ContentType string `json:"content_type" binding:"required"`
	FileSize    int64  `json:"file_size" binding:"required,min=1"`
}

// RequestUploadResponse carries the presigned upload URL
type RequestUploadResponse struct {
	StorageKey string    `json:"storage_key"`
	UploadURL  string    `json:"upload_url"`
	ExpiresAt  time.Time `json:"expires_at"`
}

// ConfirmUploadRequest registers a completed upload as a gallery image
type ConfirmUploadRequest struct {
	StorageKey  string `json:"storage_key" binding:"required"`
	FileName    string `json:"file_name" binding:"required,min=1,max=300"`
	ContentType string `json:"content_type" binding:"required"`
	FileSize    int64  `json:"file_size" binding:"required,min=1"`
}

// SetImageTagsRequest replaces the tags on a gallery image
type SetImageTagsRequest struct {
	Tags []string `json:"tags"`
}

// GalleryImageResponse represents a gallery image in API responses
type GalleryImageResponse struct {
	ID          uuid.UUID `json:"id"`
	ProductID   uuid.UUID `json:"product_id"`
	StorageKey  string    `json:"storage_key"`
	FileName    string    `json:"file_name"`
	ContentType string    `json:"content_type"`
	FileSize    int64     `json:"file_size"`
	Tags        []string  `json:"tags"`
	UploadedAt  time.Time `json:"uploaded_at"`
	DownloadURL string    `json:"download_url,omitempty"`
}

// ToGalleryImageResponse converts a gallery image to its API representation
func ToGalleryImageResponse(img *catalog.GalleryImage) GalleryImageResponse {
	return GalleryImageResponse{
		ID:          img.ID,
		ProductID:   img.ProductID,
		StorageKey:  img.StorageKey,
		FileName:    img.FileName,
		ContentType: img.ContentType,
		FileSize:    img.FileSize,
		Tags:        img.Tags,
		UploadedAt:  img.UploadedAt,
	}
}
