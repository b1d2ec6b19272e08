package types

// ------------------------------
// Response Types
// ------------------------------

// AuthResponse is returned by login and reset-password: a fresh bearer
// token alongside the authenticated user.
type AuthResponse struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}

// UserResponse wraps endpoints that return a single user under "data"
// (session restore, profile update).
type UserResponse struct {
	Data User `json:"data"`
}

// StatusResponse wraps endpoints that return only an acknowledgement
// (register, forgot-password, verify-email, logout, update-password).
type StatusResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
}

// StartupResponse wraps endpoints that return a single startup under "data".
type StartupResponse struct {
	Data Startup `json:"data"`
}

// ListStartupsResponse mirrors the list endpoint's page shape.
type ListStartupsResponse struct {
	Data       []Startup   `json:"data"`
	Count      int         `json:"count"`
	Pagination *Pagination `json:"pagination,omitempty"`
}
