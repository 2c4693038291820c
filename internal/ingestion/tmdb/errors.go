package tmdb

import (
	"errors"
	"fmt"
)

var (
	// ErrUnavailable means the catalog could not be reached at all
	ErrUnavailable = errors.New("movie catalog unavailable")

	// ErrUnexpectedResponse means the catalog answered with a status or body we cannot use
	ErrUnexpectedResponse = errors.New("unexpected movie catalog response")

	// ErrNotFound means the catalog has no title with the requested id
	ErrNotFound = errors.New("title not found in movie catalog")
)

// statusError is a non-200 answer. It is always an ErrUnexpectedResponse;
// callers that give a status a meaning of their own inspect StatusCode.
type statusError struct {
	StatusCode int
	Body       string
}

func (e *statusError) Error() string {
	return fmt.Sprintf("%s: HTTP %d: %s", ErrUnexpectedResponse, e.StatusCode, e.Body)
}

func (e *statusError) Unwrap() error { return ErrUnexpectedResponse }
