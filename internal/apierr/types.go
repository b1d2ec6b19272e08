// Package apierr provides the structured error type shared by the SDK.
// Stores keep a normalized display message in their state and return the
// structured error to callers, so call sites can branch on Kind instead of
// parsing message strings.
package apierr

import (
	"errors"
	"fmt"
)

// Kind partitions failures by where they originated.
type Kind int

const (
	// KindTransport covers network-level failures: no HTTP response was
	// received (DNS, connect, timeout, broken connection).
	KindTransport Kind = iota

	// KindServer covers requests the server answered with a non-2xx status.
	KindServer

	// KindValidation covers failures detected locally before any network
	// call (missing identifier, empty payload).
	KindValidation
)

// String returns a human-readable representation of the kind.
func (k Kind) String() string {
	switch k {
	case KindTransport:
		return "transport"
	case KindServer:
		return "server"
	case KindValidation:
		return "validation"
	default:
		return fmt.Sprintf("unknown(%d)", int(k))
	}
}

// Error carries a failure's kind, the HTTP status (0 when none), the
// server-supplied message when one was decoded, and the underlying error.
type Error struct {
	Kind       Kind
	StatusCode int
	Message    string // server "message" field, empty when unavailable
	Err        error
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.StatusCode > 0 {
		if e.Message != "" {
			return fmt.Sprintf("[%s] HTTP %d: %s", e.Kind, e.StatusCode, e.Message)
		}
		return fmt.Sprintf("[%s] HTTP %d: %v", e.Kind, e.StatusCode, e.Err)
	}
	return fmt.Sprintf("[%s] %v", e.Kind, e.Err)
}

// Unwrap returns the underlying error for error chain compatibility.
func (e *Error) Unwrap() error { return e.Err }

// DisplayMessage returns the best human-readable message for err: the
// server-supplied message when present, else fallback.
func DisplayMessage(err error, fallback string) string {
	var ae *Error
	if errors.As(err, &ae) && ae.Message != "" {
		return ae.Message
	}
	return fallback
}

// IsKind reports whether err is an *Error of kind k.
func IsKind(err error, k Kind) bool {
	var ae *Error
	return errors.As(err, &ae) && ae.Kind == k
}

// Recoverable reports whether err may succeed on retry. Transport failures
// and 5xx (plus 408/429) are recoverable; other 4xx and local validation
// failures are not. Non-*Error values are treated as recoverable.
func Recoverable(err error) bool {
	var ae *Error
	if !errors.As(err, &ae) {
		return true
	}
	switch ae.Kind {
	case KindTransport:
		return true
	case KindValidation:
		return false
	}
	switch {
	case ae.StatusCode == 408, ae.StatusCode == 429:
		return true
	case ae.StatusCode >= 400 && ae.StatusCode < 500:
		return false
	default:
		return true
	}
}
