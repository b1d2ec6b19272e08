package api

import (
	"io"
	"net/http"

	"github.com/getlisted/getlisted-go/internal/apierr"
)

// HTTPClient interface for dependency injection in tests.
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// maxErrorBody bounds how much of an error response is read for the
// server-supplied message.
const maxErrorBody = 64 << 10

// statusError drains up to maxErrorBody of the response and builds a
// server error carrying the decoded message, if any.
func statusError(operation string, resp *http.Response) *apierr.Error {
	body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	return apierr.FromResponse(operation, resp.StatusCode, body)
}
