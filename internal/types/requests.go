package types

// ------------------------------
// Request Types
// ------------------------------

// RegisterRequest holds parameters for a new account.
type RegisterRequest struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	Password  string `json:"password"`
	Role      string `json:"role"`
}

// LoginRequest holds credentials for login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// ForgotPasswordRequest asks the server to mail a reset link.
type ForgotPasswordRequest struct {
	Email string `json:"email"`
}

// ResetPasswordRequest carries the new password; the reset token travels in
// the URL path.
type ResetPasswordRequest struct {
	Password string `json:"password"`
}

// UpdateProfileRequest holds the profile fields a user may change. Empty
// fields are omitted so the server applies a partial update.
type UpdateProfileRequest struct {
	FirstName string `json:"firstName,omitempty"`
	LastName  string `json:"lastName,omitempty"`
	Email     string `json:"email,omitempty"`
}

// UpdatePasswordRequest changes the password for the current session.
type UpdatePasswordRequest struct {
	CurrentPassword string `json:"currentPassword"`
	NewPassword     string `json:"newPassword"`
}

// CreateStartupRequest holds the startup fields a founder submits. The
// server assigns the identifier, owner reference, and timestamps.
type CreateStartupRequest struct {
	Name           string         `json:"name"`
	Logo           string         `json:"logo,omitempty"`
	Tagline        string         `json:"tagline,omitempty"`
	Description    string         `json:"description,omitempty"`
	Website        string         `json:"website,omitempty"`
	Category       string         `json:"category,omitempty"`
	SubCategory    string         `json:"subCategory,omitempty"`
	Country        string         `json:"country,omitempty"`
	City           string         `json:"city,omitempty"`
	FoundingDate   string         `json:"foundingDate,omitempty"`
	Stage          string         `json:"stage,omitempty"`
	Metrics        *Metrics       `json:"metrics,omitempty"`
	SocialProfiles *SocialProfiles `json:"socialProfiles,omitempty"`
	Founders       []Founder      `json:"founders,omitempty"`
	FundingRounds  []FundingRound `json:"fundingRounds,omitempty"`
}

// UpdateStartupRequest is a partial update; the same shape as create with
// every field optional.
type UpdateStartupRequest = CreateStartupRequest

// Range bounds a numeric filter; nil ends are unconstrained.
type Range struct {
	Min *float64
	Max *float64
}

// StartupFilter is the ephemeral set of directory constraints. It is
// translated to query parameters by Values; filtering itself is entirely
// server-side.
type StartupFilter struct {
	Category      string
	Country       string
	Stage         string
	SearchTerm    string
	FundingRange  *Range
	EmployeeCount *Range
	// OwnerID scopes the listing to one creator ("my startups").
	OwnerID string
}
