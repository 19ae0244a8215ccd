package content

import (
	"context"

	"github.com/apothekehub/backend/internal/domain/content"
	"github.com/apothekehub/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// NewsService handles dashboard announcements
type NewsService struct {
	newsRepo content.NewsPostRepository
}

// NewNewsService creates a new NewsService
func NewNewsService(newsRepo content.NewsPostRepository) *NewsService {
	return &NewsService{newsRepo: newsRepo}
}

// CreateNewsPost publishes an announcement
func (s *NewsService) CreateNewsPost(ctx context.Context, req CreateNewsPostRequest) (*NewsPostResponse, error) {
	post, err := content.NewNewsPost(req.Title, req.Body, req.ImageURL)
	if err != nil {
		return nil, err
	}
	if req.Pinned {
		post.SetPinned(true)
	}

	if err := s.newsRepo.Save(ctx, post); err != nil {
		return nil, err
	}

	resp := toNewsPostResponse(post)
	return &resp, nil
}

// GetNewsPost returns one announcement by ID
func (s *NewsService) GetNewsPost(ctx context.Context, id uuid.UUID) (*NewsPostResponse, error) {
	post, err := s.newsRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	resp := toNewsPostResponse(post)
	return &resp, nil
}

// ListNewsPosts returns announcements, pinned first, newest first
func (s *NewsService) ListNewsPosts(ctx context.Context, req ListRequest) (*NewsListResult, error) {
	filter := shared.DefaultFilter()
	if req.Page > 0 {
		filter.Page = req.Page
	}
	if req.PageSize > 0 {
		filter.PageSize = req.PageSize
	}
	filter.OrderBy = "published_at"

	posts, err := s.newsRepo.FindAll(ctx, filter)
	if err != nil {
		return nil, err
	}

	total, err := s.newsRepo.Count(ctx, filter)
	if err != nil {
		return nil, err
	}

	items := make([]NewsPostResponse, len(posts))
	for i := range posts {
		items[i] = toNewsPostResponse(&posts[i])
	}

	paginated := shared.NewPaginated(items, total, filter.Page, filter.PageSize)
	return &NewsListResult{
		Items:      paginated.Items,
		Total:      paginated.Total,
		Page:       paginated.Page,
		PageSize:   paginated.PageSize,
		TotalPages: paginated.TotalPages,
	}, nil
}

// UpdateNewsPost replaces the content of an announcement
func (s *NewsService) UpdateNewsPost(ctx context.Context, id uuid.UUID, req UpdateNewsPostRequest) (*NewsPostResponse, error) {
	post, err := s.newsRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := post.Update(req.Title, req.Body, req.ImageURL); err != nil {
		return nil, err
	}

	if err := s.newsRepo.Save(ctx, post); err != nil {
		return nil, err
	}

	resp := toNewsPostResponse(post)
	return &resp, nil
}

// SetPinned pins or unpins an announcement
func (s *NewsService) SetPinned(ctx context.Context, id uuid.UUID, req SetPinnedRequest) (*NewsPostResponse, error) {
	post, err := s.newsRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	post.SetPinned(req.Pinned)

	if err := s.newsRepo.Save(ctx, post); err != nil {
		return nil, err
	}

	resp := toNewsPostResponse(post)
	return &resp, nil
}

// DeleteNewsPost removes an announcement
func (s *NewsService) DeleteNewsPost(ctx context.Context, id uuid.UUID) error {
	if _, err := s.newsRepo.FindByID(ctx, id); err != nil {
		return err
	}
	return s.newsRepo.Delete(ctx, id)
}
