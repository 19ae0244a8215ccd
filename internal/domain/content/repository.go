package content

import (
	"context"

	"github.com/apothekehub/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// NewsPostRepository defines the interface for news post persistence
type NewsPostRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*NewsPost, error)
	FindAll(ctx context.Context, filter shared.Filter) ([]NewsPost, error)
	Save(ctx context.Context, post *NewsPost) error
	Delete(ctx context.Context, id uuid.UUID) error
	Count(ctx context.Context, filter shared.Filter) (int64, error)
}

// OpportunityRepository defines the interface for campaign persistence
type OpportunityRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Opportunity, error)
	FindBySlug(ctx context.Context, slug string) (*Opportunity, error)
	FindAll(ctx context.Context, filter shared.Filter) ([]Opportunity, error)
	Save(ctx context.Context, opportunity *Opportunity) error
	Delete(ctx context.Context, id uuid.UUID) error
	Count(ctx context.Context, filter shared.Filter) (int64, error)
}
