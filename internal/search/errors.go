package search

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// Category names the failure class of a search error. It drives the
// supplementary diagnostics in HandleError and the error metrics; it never
// changes control flow.
type Category string

const (
	CategoryValidation   Category = "validation"
	CategoryUnauthorized Category = "unauthorized"
	CategoryRateLimited  Category = "rate_limited"
	CategoryServerFault  Category = "server_fault"
	CategoryTransport    Category = "transport"
)

// APIError is raised when the provider answered with a non-2xx status. Its
// message format is an external contract: callers pattern-match on it.
type APIError struct {
	StatusCode int
	Reason     string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("Twitter API error: %d %s", e.StatusCode, e.Reason)
}

// Classify maps an error to its Category. Errors carrying a structured
// status are compared numerically; substring inspection is kept only as a
// fallback for transport-sourced errors without one, so a status like 4019
// cannot false-positive on "401".
func Classify(err error) Category {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		switch apiErr.StatusCode {
		case http.StatusUnauthorized:
			return CategoryUnauthorized
		case http.StatusTooManyRequests:
			return CategoryRateLimited
		default:
			return CategoryServerFault
		}
	}

	if errors.Is(err, ErrEmptyQuery) || errors.Is(err, ErrInvalidLimit) {
		return CategoryValidation
	}

	msg := err.Error()
	switch {
	case strings.Contains(msg, "401"), strings.Contains(msg, "Unauthorized"):
		return CategoryUnauthorized
	case strings.Contains(msg, "429"):
		return CategoryRateLimited
	default:
		return CategoryTransport
	}
}
