package core

import (
	"errors"
	"fmt"
)

// Sentinel errors classifying transient transport failures. They appear
// as the cause of an APIError during retries and of a ServiceError once
// retries are exhausted.
var (
	ErrNetwork     = errors.New("network error")
	ErrTimeout     = errors.New("request timed out")
	ErrRateLimited = errors.New("rate limited")
	ErrServer      = errors.New("server error")
)

// APIError represents one failed HTTP attempt against the service with
// full context. APIErrors are internal to the retry loop: callers only
// see them wrapped inside a ServiceError after the attempt budget is
// spent.
type APIError struct {
	Status    int
	Code      string
	Message   string
	RequestID string
	Err       error
}

// Error implements the error interface.
func (e *APIError) Error() string {
	if e.RequestID != "" {
		return fmt.Sprintf("weco: %s (status=%d, code=%s, request_id=%s)",
			e.Message, e.Status, e.Code, e.RequestID)
	}
	return fmt.Sprintf("weco: %s (status=%d, code=%s)", e.Message, e.Status, e.Code)
}

// Unwrap returns the classification sentinel for error chaining.
func (e *APIError) Unwrap() error {
	return e.Err
}

// InputError reports malformed caller-supplied data: empty text input,
// an unreadable local image path, mismatched batch lengths. It is raised
// before any network call and never retried.
type InputError struct {
	Message string
}

func (e *InputError) Error() string {
	return "weco: invalid input: " + e.Message
}

// NewInputError creates an InputError with a formatted message.
func NewInputError(format string, args ...any) *InputError {
	return &InputError{Message: fmt.Sprintf(format, args...)}
}

// AuthError reports that no API key could be resolved at client
// construction, from either the explicit argument or the environment.
// No network call is made.
type AuthError struct {
	Message string
}

func (e *AuthError) Error() string {
	return "weco: " + e.Message
}

// RequestError reports a non-retryable client error from the service
// (4xx other than 429). It is surfaced immediately after one attempt.
type RequestError struct {
	Status    int
	Code      string
	Message   string
	RequestID string
}

func (e *RequestError) Error() string {
	if e.RequestID != "" {
		return fmt.Sprintf("weco: request rejected: %s (status=%d, code=%s, request_id=%s)",
			e.Message, e.Status, e.Code, e.RequestID)
	}
	return fmt.Sprintf("weco: request rejected: %s (status=%d, code=%s)",
		e.Message, e.Status, e.Code)
}

// ServiceError reports that retries were exhausted against retryable
// conditions. Status and friends describe the last observed failure;
// Attempts counts every attempt made, including the first.
type ServiceError struct {
	Status    int
	Code      string
	Message   string
	RequestID string
	Attempts  int
	Err       error
}

func (e *ServiceError) Error() string {
	return fmt.Sprintf("weco: service unavailable after %d attempts: %s (last status=%d)",
		e.Attempts, e.Message, e.Status)
}

// Unwrap returns the classification sentinel of the last attempt.
func (e *ServiceError) Unwrap() error {
	return e.Err
}

// ResponseError reports a response body that does not match the
// expected contract shape. Unlike a ServiceError this signals a
// client/service version mismatch, not a request-level failure.
type ResponseError struct {
	Field   string
	Message string
}

func (e *ResponseError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("weco: unexpected response shape: field %q: %s", e.Field, e.Message)
	}
	return "weco: unexpected response shape: " + e.Message
}
