package leetcode

import (
	"context"
	"errors"
	"fmt"
	"net/http"
)

var (
	// ErrEmptyUsername is returned before any request is made.
	ErrEmptyUsername = errors.New("username cannot be empty")

	// ErrUserNotFound means the profile API does not know the user.
	ErrUserNotFound = errors.New("LeetCode user not found")

	// ErrUpstream is the parent of every non-2xx or undecodable response.
	ErrUpstream = errors.New("LeetCode API error")

	// ErrUpstreamUnavailable means the API could not be reached or the
	// circuit breaker is open.
	ErrUpstreamUnavailable = errors.New("could not connect to LeetCode API")
)

// HTTPError is a non-2xx response from the profile API.
type HTTPError struct {
	StatusCode int
	Body       string
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("LeetCode API returned %d %s", e.StatusCode, http.StatusText(e.StatusCode))
}

// Is lets errors.Is match ErrUpstream for every HTTPError and ErrUserNotFound
// for a 404.
func (e *HTTPError) Is(target error) bool {
	switch target {
	case ErrUpstream:
		return true
	case ErrUserNotFound:
		return e.StatusCode == http.StatusNotFound
	default:
		return false
	}
}

// countsAsFailure reports whether err should move the circuit breaker
// towards open. Unknown users and callers that went away don't.
func countsAsFailure(err error) bool {
	if err == nil || errors.Is(err, ErrUserNotFound) || errors.Is(err, context.Canceled) {
		return false
	}
	var httpErr *HTTPError
	if errors.As(err, &httpErr) {
		return httpErr.StatusCode >= 500 || httpErr.StatusCode == http.StatusTooManyRequests
	}
	return true
}
