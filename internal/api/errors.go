package api

import (
	"errors"
	"fmt"
	"net/http"
)

// TransportError reports that no response was obtained: the network was
// unreachable, the request timed out, or the connection dropped mid-flight.
type TransportError struct {
	Operation string
	Err       error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("%s: transport failure: %v", e.Operation, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// APIError reports a non-2xx response, carrying the status code and whatever
// detail message the server attached.
type APIError struct {
	Operation  string
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("%s: server returned status %d", e.Operation, e.StatusCode)
	}
	return fmt.Sprintf("%s: server returned status %d: %s", e.Operation, e.StatusCode, e.Message)
}

// NotFound reports whether the server answered 404 for this operation.
func (e *APIError) NotFound() bool {
	return e.StatusCode == http.StatusNotFound
}

// ValidationError reports a client-side precondition failure. No request was
// sent when this is returned.
type ValidationError struct {
	Err error
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid request: %v", e.Err)
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

// IsNotFound reports whether err is an APIError with a 404 status.
func IsNotFound(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.NotFound()
}
