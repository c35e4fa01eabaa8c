package github

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound is returned for HTTP 404.
	ErrNotFound = errors.New("not found")

	// ErrRateLimited is returned for HTTP 403, which GitHub uses when the
	// rate limit is exhausted.
	ErrRateLimited = errors.New("rate limit exceeded")
)

// StatusError is returned for any other non-2xx response.
type StatusError struct {
	StatusCode int
	Message    string // "message" field of the error body, if any
}

func (e *StatusError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("github: HTTP %d: %s", e.StatusCode, e.Message)
	}
	return fmt.Sprintf("github: HTTP %d", e.StatusCode)
}

// TransportError wraps failures that happened before a response was read:
// DNS, connection, TLS, cancelled context, malformed body.
type TransportError struct {
	Op  string
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("github: %s: %v", e.Op, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// classify maps a non-2xx status code onto the error taxonomy.
func classify(status int, message string) error {
	switch status {
	case 404:
		return ErrNotFound
	case 403:
		return ErrRateLimited
	default:
		return &StatusError{StatusCode: status, Message: message}
	}
}
