package rest

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

// Sentinel errors for use with errors.Is().
var (
	// ErrUnauthorized is returned when the backend rejects the bearer token.
	ErrUnauthorized = errors.New("unauthorized")

	// ErrTimeout is returned when a request exceeds its deadline.
	ErrTimeout = errors.New("request timeout")

	// ErrNetwork is returned when no response was received at all.
	ErrNetwork = errors.New("network error")

	// ErrServer is returned when the backend responds with an error status.
	ErrServer = errors.New("server error")
)

// timeoutMessage and networkMessage are the connectivity-oriented hints
// used when the backend supplied no message of its own.
const (
	timeoutMessage = "Request timeout. Please check your connection and try again."
	networkMessage = "Network error. Please check your internet connection and ensure the server is running."
)

// UnauthorizedError is returned when any call receives a 401. By the
// time the caller sees it, the forced session clear has already been
// performed and navigation to login has been scheduled.
type UnauthorizedError struct {
	// Path is the request path that was rejected.
	Path string
	// Message is the normalized human-readable message.
	Message string
}

// Error returns a human-readable description of the rejection.
func (e *UnauthorizedError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("unauthorized: %s", e.Path)
}

// Is reports whether this error matches the target error.
// It supports errors.Is(err, ErrUnauthorized).
func (e *UnauthorizedError) Is(target error) bool {
	return target == ErrUnauthorized
}

// TimeoutError is returned when the request exceeded the configured
// deadline. Distinct from NetworkError: the connection may be fine and
// the server merely slow, so reads are safe to retry.
type TimeoutError struct {
	// Path is the request path that timed out.
	Path string
	// Timeout is the deadline that was exceeded.
	Timeout time.Duration
	// Message is the normalized human-readable message.
	Message string
}

// Error returns a human-readable description of the timeout.
func (e *TimeoutError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("request to %s timed out after %s", e.Path, e.Timeout)
}

// Is reports whether this error matches the target error.
// It supports errors.Is(err, ErrTimeout).
func (e *TimeoutError) Is(target error) bool {
	return target == ErrTimeout
}

// NetworkError is returned when no response was received at all
// (connection refused, DNS failure, broken connection).
type NetworkError struct {
	// Path is the request path that failed.
	Path string
	// Cause is the underlying transport error.
	Cause error
	// Message is the normalized human-readable message.
	Message string
}

// Error returns a human-readable description of the failure.
func (e *NetworkError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("network error on %s: %v", e.Path, e.Cause)
}

// Unwrap returns the underlying transport error.
func (e *NetworkError) Unwrap() error {
	return e.Cause
}

// Is reports whether this error matches the target error.
// It supports errors.Is(err, ErrNetwork).
func (e *NetworkError) Is(target error) bool {
	return target == ErrNetwork
}

// ServerError is returned when the backend responded with an error
// status other than 401. Message carries the backend's own error text
// verbatim when the payload included one.
type ServerError struct {
	// Status is the HTTP status code.
	Status int
	// Path is the request path that failed.
	Path string
	// Message is the normalized human-readable message.
	Message string
}

// Error returns the backend's message, or a generic description.
func (e *ServerError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("server returned %d for %s", e.Status, e.Path)
}

// Is reports whether this error matches the target error.
// It supports errors.Is(err, ErrServer).
func (e *ServerError) Is(target error) bool {
	return target == ErrServer
}

// errorBody is the backend's error payload. The error field is either a
// bare string or an object with a message.
type errorBody struct {
	Message string          `json:"message"`
	Error   json.RawMessage `json:"error"`
}

// extractMessage pulls the backend-supplied error message out of a
// response body, in priority order: structured error message (string or
// nested .message), then top-level message. Returns "" when the body
// carries neither.
func extractMessage(body []byte) string {
	if len(body) == 0 {
		return ""
	}
	var eb errorBody
	if err := json.Unmarshal(body, &eb); err != nil {
		return ""
	}
	if len(eb.Error) > 0 {
		var s string
		if err := json.Unmarshal(eb.Error, &s); err == nil && s != "" {
			return s
		}
		var nested struct {
			Message string `json:"message"`
		}
		if err := json.Unmarshal(eb.Error, &nested); err == nil && nested.Message != "" {
			return nested.Message
		}
	}
	return eb.Message
}
