package content

import (
	"context"
	"errors"

	"github.com/apothekehub/backend/internal/domain/content"
	"github.com/apothekehub/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// OpportunityService handles seasonal campaign pages
type OpportunityService struct {
	opportunityRepo content.OpportunityRepository
}

// NewOpportunityService creates a new OpportunityService
func NewOpportunityService(opportunityRepo content.OpportunityRepository) *OpportunityService {
	return &OpportunityService{opportunityRepo: opportunityRepo}
}

// CreateOpportunity creates a campaign page. The slug is derived from
// the title when not given explicitly.
func (s *OpportunityService) CreateOpportunity(ctx context.Context, req CreateOpportunityRequest) (*OpportunityResponse, error) {
	slug := req.Slug
	if slug == "" {
		slug = content.Slugify(req.Title)
	}

	if _, err := s.opportunityRepo.FindBySlug(ctx, slug); err == nil {
		return nil, shared.NewDomainError("SLUG_TAKEN", "A campaign with this slug already exists")
	} else if !errors.Is(err, shared.ErrNotFound) {
		return nil, err
	}

	opportunity, err := content.NewOpportunity(req.Title, slug, req.Season)
	if err != nil {
		return nil, err
	}

	if req.Description != "" || req.HeroImageURL != "" {
		if err := opportunity.Update(req.Title, req.Season, req.Description, req.HeroImageURL); err != nil {
			return nil, err
		}
	}
	if len(req.ProductSKUs) > 0 {
		opportunity.SetProducts(req.ProductSKUs)
	}
	if err := opportunity.SetActiveWindow(req.StartsAt, req.EndsAt); err != nil {
		return nil, err
	}

	if err := s.opportunityRepo.Save(ctx, opportunity); err != nil {
		return nil, err
	}

	resp := toOpportunityResponse(opportunity)
	return &resp, nil
}

// GetOpportunity returns one campaign by ID
func (s *OpportunityService) GetOpportunity(ctx context.Context, id uuid.UUID) (*OpportunityResponse, error) {
	opportunity, err := s.opportunityRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	resp := toOpportunityResponse(opportunity)
	return &resp, nil
}

// GetOpportunityBySlug returns one campaign by its URL slug
func (s *OpportunityService) GetOpportunityBySlug(ctx context.Context, slug string) (*OpportunityResponse, error) {
	opportunity, err := s.opportunityRepo.FindBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}

	resp := toOpportunityResponse(opportunity)
	return &resp, nil
}

// ListOpportunities returns campaigns, newest first
func (s *OpportunityService) ListOpportunities(ctx context.Context, req ListRequest) (*OpportunityListResult, error) {
	filter := shared.DefaultFilter()
	if req.Page > 0 {
		filter.Page = req.Page
	}
	if req.PageSize > 0 {
		filter.PageSize = req.PageSize
	}

	opportunities, err := s.opportunityRepo.FindAll(ctx, filter)
	if err != nil {
		return nil, err
	}

	total, err := s.opportunityRepo.Count(ctx, filter)
	if err != nil {
		return nil, err
	}

	items := make([]OpportunityResponse, len(opportunities))
	for i := range opportunities {
		items[i] = toOpportunityResponse(&opportunities[i])
	}

	paginated := shared.NewPaginated(items, total, filter.Page, filter.PageSize)
	return &OpportunityListResult{
		Items:      paginated.Items,
		Total:      paginated.Total,
		Page:       paginated.Page,
		PageSize:   paginated.PageSize,
		TotalPages: paginated.TotalPages,
	}, nil
}

// UpdateOpportunity replaces the campaign content
func (s *OpportunityService) UpdateOpportunity(ctx context.Context, id uuid.UUID, req UpdateOpportunityRequest) (*OpportunityResponse, error) {
	opportunity, err := s.opportunityRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := opportunity.Update(req.Title, req.Season, req.Description, req.HeroImageURL); err != nil {
		return nil, err
	}
	opportunity.SetProducts(req.ProductSKUs)
	if err := opportunity.SetActiveWindow(req.StartsAt, req.EndsAt); err != nil {
		return nil, err
	}

	if err := s.opportunityRepo.Save(ctx, opportunity); err != nil {
		return nil, err
	}

	resp := toOpportunityResponse(opportunity)
	return &resp, nil
}

// DeleteOpportunity removes a campaign page
func (s *OpportunityService) DeleteOpportunity(ctx context.Context, id uuid.UUID) error {
	if _, err := s.opportunityRepo.FindByID(ctx, id); err != nil {
		return err
	}
	return s.opportunityRepo.Delete(ctx, id)
}
