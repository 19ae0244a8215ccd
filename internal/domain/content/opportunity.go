package content

import (
	"regexp"
	"strings"
	"time"

	"github.com/apothekehub/backend/internal/domain/shared"
	"github.com/apothekehub/backend/internal/domain/shared/valueobject"
)

var slugPattern = regexp.MustCompile(`^[a-z0-9]+(?:-[a-z0-9]+)*$`)

// Opportunity is a seasonal campaign page grouping products around a
// sales moment (e.g. hay fever season, Christmas)
type Opportunity struct {
	shared.BaseAggregateRoot
	Title        string                 `gorm:"type:varchar(300);not null"`
	Slug         string                 `gorm:"type:varchar(200);not null;uniqueIndex"`
	Season       string                 `gorm:"type:varchar(100);index"`
	Description  string                 `gorm:"type:text"`
	HeroImageURL string                 `gorm:"type:text"`
	ProductSKUs  valueobject.StringList `gorm:"type:text;column:product_skus"`
	StartsAt     *time.Time
	EndsAt       *time.Time
}

// TableName returns the table name for GORM
func (Opportunity) TableName() string {
	return "opportunities"
}

// NewOpportunity creates a campaign page
func NewOpportunity(title, slug, season string) (*Opportunity, error) {
	if title == "" {
		return nil, shared.NewDomainError("INVALID_TITLE", "Title cannot be empty")
	}
	if !slugPattern.MatchString(slug) {
		return nil, shared.NewDomainError("INVALID_SLUG", "Slug must be lowercase letters, digits and hyphens")
	}

	return &Opportunity{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Title:             title,
		Slug:              slug,
		Season:            season,
	}, nil
}

// Slugify derives a URL slug from a title
func Slugify(title string) string {
	s := strings.ToLower(strings.TrimSpace(title))
	var b strings.Builder
	lastHyphen := true
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			lastHyphen = false
		default:
			if !lastHyphen {
				b.WriteRune('-')
				lastHyphen = true
			}
		}
	}
	return strings.TrimSuffix(b.String(), "-")
}

// Update replaces the campaign content
func (o *Opportunity) Update(title, season, description, heroImageURL string) error {
	if title == "" {
		return shared.NewDomainError("INVALID_TITLE", "Title cannot be empty")
	}

	o.Title = title
	o.Season = season
	o.Description = description
	o.HeroImageURL = heroImageURL
	o.UpdatedAt = time.Now()
	o.IncrementVersion()

	return nil
}

// SetProducts replaces the SKUs featured by the campaign
func (o *Opportunity) SetProducts(skus []string) {
	o.ProductSKUs = skus
	o.UpdatedAt = time.Now()
	o.IncrementVersion()
}

// SetActiveWindow sets the campaign's visibility window
func (o *Opportunity) SetActiveWindow(startsAt, endsAt *time.Time) error {
	if startsAt != nil && endsAt != nil && endsAt.Before(*startsAt) {
		return shared.NewDomainError("INVALID_WINDOW", "Campaign cannot end before it starts")
	}

	o.StartsAt = startsAt
	o.EndsAt = endsAt
	o.UpdatedAt = time.Now()
	o.IncrementVersion()

	return nil
}

// IsActiveAt reports whether the campaign is visible at the given time
func (o *Opportunity) IsActiveAt(t time.Time) bool {
	if o.StartsAt != nil && t.Before(*o.StartsAt) {
		return false
	}
	if o.EndsAt != nil && t.After(*o.EndsAt) {
		return false
	}
	return true
}
