package feed

import (
	"errors"
	"fmt"
)

// Feed error codes
const (
	ErrCodeFeedFetch      = "ERR_FEED_FETCH"
	ErrCodeFeedEmpty      = "ERR_FEED_EMPTY"
	ErrCodeFeedInvalidXML = "ERR_FEED_INVALID_XML"
)

// Common feed errors
var (
	// ErrEmptyFeed is returned when the feed document contains no items
	ErrEmptyFeed = errors.New("feed contains no items")

	// ErrInvalidURL is returned when the feed URL cannot be parsed
	ErrInvalidURL = errors.New("invalid feed URL")
)

// FetchError is returned when the feed endpoint answers with a
// non-success status. The whole sync run fails on it.
type FetchError struct {
	URL        string
	StatusCode int
}

// Error implements the error interface
func (e *FetchError) Error() string {
	return fmt.Sprintf("feed fetch failed with status %d for %s", e.StatusCode, e.URL)
}
