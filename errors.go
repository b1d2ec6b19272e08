package getlisted

import (
	"errors"

	"github.com/getlisted/getlisted-go/internal/apierr"
)

var errEmptyBaseURL = errors.New("baseURL cannot be empty")

// Error is the structured failure type returned by every SDK operation.
// Callers can branch on Kind instead of parsing message strings; the
// stores additionally keep a normalized display message in their state.
type Error = apierr.Error

// ErrorKind partitions failures by origin.
type ErrorKind = apierr.Kind

const (
	// KindTransport: no HTTP response was received.
	KindTransport = apierr.KindTransport
	// KindServer: the server answered with a non-2xx status.
	KindServer = apierr.KindServer
	// KindValidation: the failure was detected locally, before any network call.
	KindValidation = apierr.KindValidation
)

// IsKind reports whether err is an SDK *Error of kind k.
func IsKind(err error, k ErrorKind) bool { return apierr.IsKind(err, k) }
