package feed

import (
	"encoding/xml"
	"fmt"
	"io"
	"strings"

	"github.com/apothekehub/backend/internal/domain/catalog"
	"github.com/shopspring/decimal"
)

// Item is one usable product record extracted from the feed
type Item struct {
	SKU    string
	Fields catalog.FeedFields
}

// Result holds the outcome of parsing a feed document. Skipped counts
// items that were present but unusable (missing SKU or title, or
// undecodable); they never abort the parse.
type Result struct {
	Items   []Item
	Skipped int
}

// Parser parses supplier item feeds (XML)
type Parser struct {
	limit int
}

// ParserOption is a functional option for Parser configuration
type ParserOption func(*Parser)

// WithLimit caps the number of items read from the feed. Zero means
// no limit. The parser stops consuming the stream once the cap is hit.
func WithLimit(limit int) ParserOption {
	return func(p *Parser) {
		p.limit = limit
	}
}

// NewParser creates a feed parser
func NewParser(opts ...ParserOption) *Parser {
	parser := &Parser{}
	for _, opt := range opts {
		opt(parser)
	}
	return parser
}

// xmlCategory carries the category text plus the primary marker
type xmlCategory struct {
	Primary string `xml:"primary,attr"`
	Value   string `xml:",chardata"`
}

// xmlItem mirrors one <item> element of the supplier feed
type xmlItem struct {
	Title        string        `xml:"title"`
	Description  string        `xml:"description"`
	ImageLink    string        `xml:"image_link_l"`
	URL          string        `xml:"url"`
	Price        string        `xml:"price_level_1"`
	Availability string        `xml:"availability_rank_text"`
	Brand        string        `xml:"brand"`
	EAN          string        `xml:"ean"`
	ProductCode  string        `xml:"product_code_2"`
	ProductType  string        `xml:"product_type"`
	Categories   []xmlCategory `xml:"category"`
}

// Parse reads the feed document and extracts typed item records.
// Items missing the SKU or the title are counted as skipped, not
// errors. A broken XML stream ends the parse with the items collected
// so far; only a document that yields nothing at all is an error.
func (p *Parser) Parse(r io.Reader) (*Result, error) {
	decoder := xml.NewDecoder(r)
	result := &Result{}

	for {
		if p.limit > 0 && len(result.Items) >= p.limit {
			break
		}

		tok, err := decoder.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			// The stream is unusable past this point; keep what we have
			if len(result.Items) == 0 && result.Skipped == 0 {
				return nil, fmt.Errorf("%w: %v", ErrEmptyFeed, err)
			}
			break
		}

		start, ok := tok.(xml.StartElement)
		if !ok || start.Name.Local != "item" {
			continue
		}

		var raw xmlItem
		if err := decoder.DecodeElement(&raw, &start); err != nil {
			result.Skipped++
			continue
		}

		item, ok := buildItem(raw)
		if !ok {
			result.Skipped++
			continue
		}
		result.Items = append(result.Items, item)
	}

	if len(result.Items) == 0 && result.Skipped == 0 {
		return nil, ErrEmptyFeed
	}

	return result, nil
}

// buildItem converts a raw feed element into a typed record. SKU and
// title are mandatory; everything else degrades gracefully.
func buildItem(raw xmlItem) (Item, bool) {
	sku := strings.TrimSpace(raw.ProductCode)
	title := strings.TrimSpace(raw.Title)
	if sku == "" || title == "" {
		return Item{}, false
	}

	category, subcategory := splitCategory(primaryCategory(raw.Categories))

	return Item{
		SKU: sku,
		Fields: catalog.FeedFields{
			Name:            title,
			Description:     strings.TrimSpace(raw.Description),
			ImageURL:        strings.TrimSpace(raw.ImageLink),
			Price:           parsePrice(raw.Price),
			ProductURL:      strings.TrimSpace(raw.URL),
			Availability:    stripMarkup(raw.Availability),
			Brand:           strings.TrimSpace(raw.Brand),
			GTIN:            strings.TrimSpace(raw.EAN),
			ProductType:     strings.TrimSpace(raw.ProductType),
			FeedCategory:    category,
			FeedSubcategory: subcategory,
		},
	}, true
}

// primaryCategory picks the category marked primary="true", falling
// back to the first one present
func primaryCategory(categories []xmlCategory) string {
	for _, c := range categories {
		if strings.EqualFold(c.Primary, "true") {
			return c.Value
		}
	}
	if len(categories) > 0 {
		return categories[0].Value
	}
	return ""
}

// splitCategory splits a "Main | Sub" category path into its two levels
func splitCategory(value string) (string, string) {
	value = strings.TrimSpace(value)
	if value == "" {
		return "", ""
	}
	parts := strings.SplitN(value, "|", 2)
	category := strings.TrimSpace(parts[0])
	subcategory := ""
	if len(parts) == 2 {
		subcategory = strings.TrimSpace(parts[1])
	}
	return category, subcategory
}

// parsePrice turns feed price text like "12,99 €" or "EUR 1.299,00"
// into a decimal. Unparseable input yields zero rather than an error.
func parsePrice(value string) decimal.Decimal {
	var b strings.Builder
	for _, r := range value {
		if (r >= '0' && r <= '9') || r == ',' || r == '.' {
			b.WriteRune(r)
		}
	}
	cleaned := b.String()
	if cleaned == "" {
		return decimal.Zero
	}

	// Both separators present: the dots are thousands marks
	if strings.Contains(cleaned, ",") && strings.Contains(cleaned, ".") {
		cleaned = strings.ReplaceAll(cleaned, ".", "")
	}
	cleaned = strings.ReplaceAll(cleaned, ",", ".")

	if strings.Count(cleaned, ".") > 1 {
		return decimal.Zero
	}

	price, err := decimal.NewFromString(cleaned)
	if err != nil {
		return decimal.Zero
	}
	return price
}

// stripMarkup flattens embedded markup like "<b>In stock</b>" to its
// text content and collapses whitespace
func stripMarkup(value string) string {
	var b strings.Builder
	inTag := false
	for _, r := range value {
		switch {
		case r == '<':
			inTag = true
		case r == '>':
			inTag = false
		case !inTag:
			b.WriteRune(r)
		}
	}
	return strings.Join(strings.Fields(b.String()), " ")
}
