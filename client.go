// Package getlisted is the Go client SDK for the GetListed startup
// directory. The Client is the single point of HTTP egress; SessionStore
// and StartupStore sit on top of it and own the reactive client state the
// application reads.
package getlisted

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/getlisted/getlisted-go/internal/api"
	"github.com/getlisted/getlisted-go/internal/tokenstore"
)

// --------------------------------------------------------------------
// Client core
// --------------------------------------------------------------------

type Client struct {
	baseURL string
	http    *http.Client
	tokens  tokenstore.Store
}

// New constructs a Client for the API at baseURL. Additional knobs are
// provided via functional options. The default token store is in-memory;
// supply WithTokenStore to persist the session across processes.
func New(baseURL string, opts ...Option) (*Client, error) {
	if baseURL == "" {
		return nil, errEmptyBaseURL
	}

	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: 30 * time.Second},
	}

	// Auto-enable debug via env variable without changing code.
	if debugLoggingRequested() {
		opts = append(opts, WithDebugLogging(true))
	}

	for _, opt := range opts {
		if err := opt(c); err != nil {
			return nil, err
		}
	}
	if c.tokens == nil {
		c.tokens = tokenstore.NewMemStore()
	}

	c.wrapTransport()
	return c, nil
}

// wrapTransport installs the standing transport chain: request metrics and
// a request ID on every call, then the bearer token, outermost so the
// header is present on whatever the inner transports emit.
func (c *Client) wrapTransport() {
	base := c.http.Transport
	if base == nil {
		base = http.DefaultTransport
	}
	base = &metricsTransport{base: base}
	base = &requestIDTransport{base: base}
	c.http.Transport = &bearerTransport{base: base, tokens: c.tokens}
}

// Tokens exposes the client's token persistence, primarily so callers can
// inspect or reset the session outside the SessionStore.
func (c *Client) Tokens() TokenStore { return c.tokens }

// bearerTransport attaches the persisted bearer token to outgoing requests
// when one is present. The token is read per request, so a login that
// happened after the Client was built is picked up immediately.
type bearerTransport struct {
	base   http.RoundTripper
	tokens tokenstore.Store
}

func (t *bearerTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	tok, ok := t.tokens.Token()
	if !ok {
		return t.base.RoundTrip(req)
	}
	// Clone the request to avoid modifying the original.
	cloned := req.Clone(req.Context())
	cloned.Header.Set("Authorization", "Bearer "+tok)
	return t.base.RoundTrip(cloned)
}

// requestIDTransport stamps each request with a fresh X-Request-ID unless
// the caller set one already.
type requestIDTransport struct {
	base http.RoundTripper
}

func (t *requestIDTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	if req.Header.Get("X-Request-ID") != "" {
		return t.base.RoundTrip(req)
	}
	cloned := req.Clone(req.Context())
	cloned.Header.Set("X-Request-ID", uuid.NewString())
	return t.base.RoundTrip(cloned)
}

// --------------------------------------------------------------------
// Auth operations - delegated to internal/api
// --------------------------------------------------------------------
//
// These are the low-level calls beneath SessionStore. They do not touch
// the token store or any client-side state.

// Me retrieves the user behind the current bearer token.
func (c *Client) Me(ctx context.Context) (*User, error) {
	return api.Me(ctx, c.http, c.baseURL)
}

// Register creates a new account. Login stays gated on email verification.
func (c *Client) Register(ctx context.Context, req RegisterRequest) (*StatusResponse, error) {
	return api.Register(ctx, c.http, c.baseURL, req)
}

// Login exchanges credentials for a token and the user record.
func (c *Client) Login(ctx context.Context, email, password string) (*AuthResponse, error) {
	return api.Login(ctx, c.http, c.baseURL, email, password)
}

// Logout invalidates the server-side session.
func (c *Client) Logout(ctx context.Context) error {
	return api.Logout(ctx, c.http, c.baseURL)
}

// ForgotPassword asks the server to mail a password-reset link.
func (c *Client) ForgotPassword(ctx context.Context, email string) (*StatusResponse, error) {
	return api.ForgotPassword(ctx, c.http, c.baseURL, email)
}

// ResetPassword sets a new password using the emailed reset token.
func (c *Client) ResetPassword(ctx context.Context, token, password string) (*AuthResponse, error) {
	return api.ResetPassword(ctx, c.http, c.baseURL, token, password)
}

// VerifyEmail confirms an address using the emailed verification token.
func (c *Client) VerifyEmail(ctx context.Context, token string) error {
	return api.VerifyEmail(ctx, c.http, c.baseURL, token)
}

// UpdateProfile applies a partial update to the current user's details.
func (c *Client) UpdateProfile(ctx context.Context, req UpdateProfileRequest) (*User, error) {
	return api.UpdateProfile(ctx, c.http, c.baseURL, req)
}

// UpdatePassword changes the password for the authenticated user.
func (c *Client) UpdatePassword(ctx context.Context, currentPassword, newPassword string) error {
	return api.UpdatePassword(ctx, c.http, c.baseURL, currentPassword, newPassword)
}

// --------------------------------------------------------------------
// Startup operations - delegated to internal/api
// --------------------------------------------------------------------

// ListStartups fetches one page of the directory.
func (c *Client) ListStartups(ctx context.Context, filter *StartupFilter, page, limit int) (*ListStartupsResponse, error) {
	return api.ListStartups(ctx, c.http, c.baseURL, filter, page, limit)
}

// GetStartup retrieves a single startup by ID.
func (c *Client) GetStartup(ctx context.Context, id string) (*Startup, error) {
	return api.GetStartup(ctx, c.http, c.baseURL, id)
}

// CreateStartup submits a new listing.
func (c *Client) CreateStartup(ctx context.Context, req CreateStartupRequest) (*Startup, error) {
	return api.CreateStartup(ctx, c.http, c.baseURL, req)
}

// UpdateStartup applies a partial update to a listing.
func (c *Client) UpdateStartup(ctx context.Context, id string, req UpdateStartupRequest) (*Startup, error) {
	return api.UpdateStartup(ctx, c.http, c.baseURL, id, req)
}

// DeleteStartup removes a listing by ID.
func (c *Client) DeleteStartup(ctx context.Context, id string) error {
	return api.DeleteStartup(ctx, c.http, c.baseURL, id)
}
