package content

import (
	"time"

	"github.com/apothekehub/backend/internal/domain/content"
	"github.com/google/uuid"
)

// CreateNewsPostRequest creates a dashboard announcement
type CreateNewsPostRequest struct {
	Title    string `json:"title" binding:"required,min=1,max=300"`
	Body     string `json:"body"`
	ImageURL string `json:"image_url" binding:"omitempty,url"`
	Pinned   bool   `json:"pinned"`
}

// UpdateNewsPostRequest replaces the content of an announcement
type UpdateNewsPostRequest struct {
	Title    string `json:"title" binding:"required,min=1,max=300"`
	Body     string `json:"body"`
	ImageURL string `json:"image_url" binding:"omitempty,url"`
}

// SetPinnedRequest pins or unpins an announcement
type SetPinnedRequest struct {
	Pinned bool `json:"pinned"`
}

// NewsPostResponse represents an announcement in API responses
type NewsPostResponse struct {
	ID          uuid.UUID `json:"id"`
	Title       string    `json:"title"`
	Body        string    `json:"body"`
	ImageURL    string    `json:"image_url"`
	Pinned      bool      `json:"pinned"`
	PublishedAt time.Time `json:"published_at"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func toNewsPostResponse(post *content.NewsPost) NewsPostResponse {
	return NewsPostResponse{
		ID:          post.ID,
		Title:       post.Title,
		Body:        post.Body,
		ImageURL:    post.ImageURL,
		Pinned:      post.Pinned,
		PublishedAt: post.PublishedAt,
		CreatedAt:   post.CreatedAt,
		UpdatedAt:   post.UpdatedAt,
	}
}

// ListRequest represents list query parameters shared by the content
// endpoints
type ListRequest struct {
	Page     int `form:"page" binding:"omitempty,min=1"`
	PageSize int `form:"page_size" binding:"omitempty,min=1,max=100"`
}

// NewsListResult represents a paginated announcement list
type NewsListResult struct {
	Items      []NewsPostResponse `json:"items"`
	Total      int64              `json:"total"`
	Page       int                `json:"page"`
	PageSize   int                `json:"page_size"`
	TotalPages int                `json:"total_pages"`
}

// CreateOpportunityRequest creates a campaign page
type CreateOpportunityRequest struct {
	Title        string     `json:"title" binding:"required,min=1,max=300"`
	Slug         string     `json:"slug" binding:"omitempty,max=200"`
	Season       string     `json:"season" binding:"omitempty,max=100"`
	Description  string     `json:"description"`
	HeroImageURL string     `json:"hero_image_url" binding:"omitempty,url"`
	ProductSKUs  []string   `json:"product_skus"`
	StartsAt     *time.Time `json:"starts_at"`
	EndsAt       *time.Time `json:"ends_at"`
}

// UpdateOpportunityRequest replaces the campaign content
type UpdateOpportunityRequest struct {
	Title        string     `json:"title" binding:"required,min=1,max=300"`
	Season       string     `json:"season" binding:"omitempty,max=100"`
	Description  string     `json:"description"`
	HeroImageURL string     `json:"hero_image_url" binding:"omitempty,url"`
	ProductSKUs  []string   `json:"product_skus"`
	StartsAt     *time.Time `json:"starts_at"`
	EndsAt       *time.Time `json:"ends_at"`
}

// OpportunityResponse represents a campaign in API responses
type OpportunityResponse struct {
	ID           uuid.UUID  `json:"id"`
	Title        string     `json:"title"`
	Slug         string     `json:"slug"`
	Season       string     `json:"season"`
	Description  string     `json:"description"`
	HeroImageURL string     `json:"hero_image_url"`
	ProductSKUs  []string   `json:"product_skus"`
	StartsAt     *time.Time `json:"starts_at"`
	EndsAt       *time.Time `json:"ends_at"`
	Active       bool       `json:"active"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

func toOpportunityResponse(o *content.Opportunity) OpportunityResponse {
	return OpportunityResponse{
		ID:           o.ID,
		Title:        o.Title,
		Slug:         o.Slug,
		Season:       o.Season,
		Description:  o.Description,
		HeroImageURL: o.HeroImageURL,
		ProductSKUs:  o.ProductSKUs,
		StartsAt:     o.StartsAt,
		EndsAt:       o.EndsAt,
		Active:       o.IsActiveAt(time.Now()),
		CreatedAt:    o.CreatedAt,
		UpdatedAt:    o.UpdatedAt,
	}
}

// OpportunityListResult represents a paginated campaign list
type OpportunityListResult struct {
	Items      []OpportunityResponse `json:"items"`
	Total      int64                 `json:"total"`
	Page       int                   `json:"page"`
	PageSize   int                   `json:"page_size"`
	TotalPages int                   `json:"total_pages"`
}
