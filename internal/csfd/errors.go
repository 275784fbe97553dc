package csfd

import (
	"errors"
	"fmt"
)

// ErrRateLimited is returned when the server keeps answering 429 after the
// whole retry budget has been spent.
var ErrRateLimited = errors.New("rate limited: too many requests")

// ErrEmptyQuery is returned when a search query is empty or whitespace-only.
var ErrEmptyQuery = errors.New("search query cannot be empty")

// StatusError is returned when the server answers with an unexpected HTTP
// status code.
type StatusError struct {
	URL        string
	StatusCode int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("http %d on %s", e.StatusCode, e.URL)
}

// NotFoundError is returned when the server answers 404. It is never
// retried.
type NotFoundError struct {
	URL string
}

func (e *NotFoundError) Error() string {
	return "not found: " + e.URL
}

// ElementNotFoundError is returned when a required element is missing from
// a page, e.g. the show name on a detail page. Optional fields never
// produce it.
type ElementNotFoundError struct {
	Element string
}

func (e *ElementNotFoundError) Error() string {
	return "element not found: " + e.Element
}

// InvalidIDError is returned when the caller passes a non-positive ČSFD id.
type InvalidIDError struct {
	ID int
}

func (e *InvalidIDError) Error() string {
	return fmt.Sprintf("invalid ČSFD id: %d", e.ID)
}
