package api

import (
	"errors"
	"fmt"
)

// NetworkError wraps a transport-level failure: the request never produced an
// HTTP response. Always retryable by the user; callers show a generic message
// and keep the form editable.
type NetworkError struct {
	Op  string
	Err error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("api: %s: request failed: %v", e.Op, e.Err)
}

func (e *NetworkError) Unwrap() error { return e.Err }

// UserMessage is the inline text shown for any transport failure.
func (e *NetworkError) UserMessage() string {
	return "Request failed. Please check your connection and try again."
}

// BackendError is a 4xx/5xx response. The backend's own message, when it sent
// one, is surfaced verbatim to the user.
type BackendError struct {
	Op      string
	Status  int
	Message string
}

func (e *BackendError) Error() string {
	return fmt.Sprintf("api: %s: backend returned %d: %s", e.Op, e.Status, e.Message)
}

// UserMessage returns the backend's message or a generic fallback.
func (e *BackendError) UserMessage() string {
	if e.Message != "" {
		return e.Message
	}
	return "Something went wrong. Please try again."
}

// UserMessage extracts the text a form should display for any client error.
func UserMessage(err error) string {
	var backend *BackendError
	if errors.As(err, &backend) {
		return backend.UserMessage()
	}
	var network *NetworkError
	if errors.As(err, &network) {
		return network.UserMessage()
	}
	return "Something went wrong. Please try again."
}

// IsBackendError returns the typed error when err carries one.
func IsBackendError(err error) *BackendError {
	if err == nil {
		return nil
	}
	var backend *BackendError
	if errors.As(err, &backend) {
		return backend
	}
	return nil
}
