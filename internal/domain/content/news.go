package content

import (
	"time"

	"github.com/apothekehub/backend/internal/domain/shared"
)

// NewsPost is an announcement shown on the dashboard home page
type NewsPost struct {
	shared.BaseAggregateRoot
	Title       string    `gorm:"type:varchar(300);not null"`
	Body        string    `gorm:"type:text"`
	ImageURL    string    `gorm:"type:text"`
	Pinned      bool      `gorm:"not null;default:false;index"`
	PublishedAt time.Time `gorm:"not null;index"`
}

// TableName returns the table name for GORM
func (NewsPost) TableName() string {
	return "news_posts"
}

// NewNewsPost creates a news post published now
func NewNewsPost(title, body, imageURL string) (*NewsPost, error) {
	if title == "" {
		return nil, shared.NewDomainError("INVALID_TITLE", "Title cannot be empty")
	}
	if len(title) > 300 {
		return nil, shared.NewDomainError("INVALID_TITLE", "Title cannot exceed 300 characters")
	}

	return &NewsPost{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Title:             title,
		Body:              body,
		ImageURL:          imageURL,
		PublishedAt:       time.Now(),
	}, nil
}

// Update replaces the post content
func (n *NewsPost) Update(title, body, imageURL string) error {
	if title == "" {
		return shared.NewDomainError("INVALID_TITLE", "Title cannot be empty")
	}

	n.Title = title
	n.Body = body
	n.ImageURL = imageURL
	n.UpdatedAt = time.Now()
	n.IncrementVersion()

	return nil
}

// SetPinned pins or unpins the post
func (n *NewsPost) SetPinned(pinned bool) {
	n.Pinned = pinned
	n.UpdatedAt = time.Now()
	n.IncrementVersion()
}
