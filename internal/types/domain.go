package types

import "time"

// ------------------------------
// Core Domain Entities
// ------------------------------

// User represents an account holder (founder, investor, or admin).
type User struct {
	ID         string `json:"_id"`
	FirstName  string `json:"firstName"`
	LastName   string `json:"lastName"`
	Email      string `json:"email"`
	Role       string `json:"role"`
	IsVerified bool   `json:"isVerified,omitempty"`
}

// Metrics holds a startup's headline numbers.
type Metrics struct {
	FundingTotal float64 `json:"fundingTotal"`
	Employees    int     `json:"employees"`
	Connections  int     `json:"connections"`
	Views        int     `json:"views"`
	Revenue      string  `json:"revenue"`
}

// SocialProfiles holds a startup's social links.
type SocialProfiles struct {
	LinkedIn  string `json:"linkedin"`
	Twitter   string `json:"twitter"`
	Facebook  string `json:"facebook"`
	Instagram string `json:"instagram"`
}

// Founder is one member of a startup's founding team.
type Founder struct {
	Name     string `json:"name"`
	Role     string `json:"role"`
	LinkedIn string `json:"linkedin"`
	Bio      string `json:"bio,omitempty"`
}

// FundingRound records one raise in a startup's funding history.
type FundingRound struct {
	Stage     string    `json:"stage"`
	Date      time.Time `json:"date"`
	Amount    float64   `json:"amount"`
	Valuation float64   `json:"valuation,omitempty"`
	Investors []string  `json:"investors,omitempty"`
	Notes     string    `json:"notes,omitempty"`
}

// Startup is a directory listing owned by exactly one user.
type Startup struct {
	ID             string         `json:"_id"`
	Name           string         `json:"name"`
	Logo           string         `json:"logo"`
	Tagline        string         `json:"tagline"`
	Description    string         `json:"description"`
	Website        string         `json:"website"`
	Category       string         `json:"category"`
	SubCategory    string         `json:"subCategory"`
	Country        string         `json:"country"`
	City           string         `json:"city"`
	FoundingDate   string         `json:"foundingDate"`
	Stage          string         `json:"stage"`
	Metrics        Metrics        `json:"metrics"`
	SocialProfiles SocialProfiles `json:"socialProfiles"`
	Founders       []Founder      `json:"founders"`
	FundingRounds  []FundingRound `json:"fundingRounds,omitempty"`
	CreatedBy      string         `json:"createdBy"`
	IsVerified     bool           `json:"isVerified"`
	CreatedAt      time.Time      `json:"createdAt"`
	UpdatedAt      time.Time      `json:"updatedAt"`
}

// PageCursor points at one page of a paginated listing.
type PageCursor struct {
	Page  int `json:"page"`
	Limit int `json:"limit"`
}

// Pagination carries the server's neighbouring-page cursors, when any.
type Pagination struct {
	Next *PageCursor `json:"next,omitempty"`
	Prev *PageCursor `json:"prev,omitempty"`
}
