package getlisted

import (
	"github.com/getlisted/getlisted-go/internal/tokenstore"
	"github.com/getlisted/getlisted-go/internal/types"
)

// Public type aliases so SDK consumers can import only the getlisted package.
type (
	// Domain entities
	User           = types.User
	Startup        = types.Startup
	Founder        = types.Founder
	FundingRound   = types.FundingRound
	Metrics        = types.Metrics
	SocialProfiles = types.SocialProfiles
	PageCursor     = types.PageCursor
	Pagination     = types.Pagination

	// Requests
	RegisterRequest      = types.RegisterRequest
	UpdateProfileRequest = types.UpdateProfileRequest
	CreateStartupRequest = types.CreateStartupRequest
	UpdateStartupRequest = types.UpdateStartupRequest
	StartupFilter        = types.StartupFilter
	Range                = types.Range

	// Responses
	AuthResponse         = types.AuthResponse
	StatusResponse       = types.StatusResponse
	ListStartupsResponse = types.ListStartupsResponse
)

// TokenStore persists the session's bearer token. See WithTokenStore.
type TokenStore = tokenstore.Store

// NewFileTokenStore returns a TokenStore backed by a single file written
// 0600, the CLI's equivalent of durable browser storage.
func NewFileTokenStore(path string) TokenStore { return tokenstore.NewFileStore(path) }

// NewMemoryTokenStore returns a process-scoped TokenStore, the default.
func NewMemoryTokenStore() TokenStore { return tokenstore.NewMemStore() }
