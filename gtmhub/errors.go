// Package gtmhub provides a read-only Go client for the GTMHub OKR API.
package gtmhub

import (
	"errors"
	"fmt"
)

// TransportError reports a network-level failure: the request never
// completed. It wraps the underlying cause.
type TransportError struct {
	Endpoint string
	Err      error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("gtmhub: GET %s: %v", e.Endpoint, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// DecodeError reports a response body that does not match the expected
// schema for the named endpoint.
type DecodeError struct {
	Endpoint string
	Err      error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("gtmhub: decode GET %s response: %v", e.Endpoint, e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }

// APIError reports a non-2xx HTTP status from the API, with a bounded
// excerpt of the response body for context.
type APIError struct {
	StatusCode int
	Endpoint   string
	Body       string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("gtmhub: GET %s: status %d: %s", e.Endpoint, e.StatusCode, e.Body)
}

// IsUnauthorized returns true if the error is a 401 from the API.
func IsUnauthorized(err error) bool {
	var e *APIError
	if errors.As(err, &e) {
		return e.StatusCode == 401
	}
	return false
}

// IsNotFound returns true if the error is a 404 from the API.
func IsNotFound(err error) bool {
	var e *APIError
	if errors.As(err, &e) {
		return e.StatusCode == 404
	}
	return false
}
