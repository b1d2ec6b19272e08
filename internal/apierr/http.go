package apierr

import (
	"encoding/json"
	"fmt"
)

// serverBody is the error envelope the backend returns on non-2xx responses.
type serverBody struct {
	Message string `json:"message"`
	Error   string `json:"error"`
}

// FromResponse builds a KindServer error from a non-2xx response body. The
// body is decoded for a "message" field when it is JSON; anything else is
// kept only in the underlying error.
func FromResponse(operation string, statusCode int, body []byte) *Error {
	var sb serverBody
	msg := ""
	if err := json.Unmarshal(body, &sb); err == nil {
		msg = sb.Message
		if msg == "" {
			msg = sb.Error
		}
	}
	return &Error{
		Kind:       KindServer,
		StatusCode: statusCode,
		Message:    msg,
		Err:        fmt.Errorf("%s: status %d", operation, statusCode),
	}
}

// FromTransport wraps a network-level failure (no HTTP response).
func FromTransport(operation string, err error) *Error {
	return &Error{
		Kind: KindTransport,
		Err:  fmt.Errorf("%s: %w", operation, err),
	}
}

// Validation builds a local pre-flight failure.
func Validation(operation, msg string) *Error {
	return &Error{
		Kind:    KindValidation,
		Message: msg,
		Err:     fmt.Errorf("%s: %s", operation, msg),
	}
}
