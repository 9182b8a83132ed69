// Package domain defines the normalized domain types for the GitHub browser.
// These types represent the core concepts independent of the GitHub REST API structure.
package domain

import "time"

// Repository represents a GitHub repository as shown in lists.
// Records are immutable once received and live only for one display cycle.
type Repository struct {
	ID          int64     // GitHub repository ID
	Owner       string    // Owner login (user or organization)
	Name        string    // Repository name without owner
	Description string    // Optional description, empty if unset
	Stars       int       // Stargazer count
	Language    string    // Optional primary language, empty if unknown
	URL         string    // HTML URL of the repository
	UpdatedAt   time.Time // Last update timestamp
}

// FullName returns "owner/name", or just the name when the owner is unknown.
func (r Repository) FullName() string {
	if r.Owner == "" {
		return r.Name
	}
	return r.Owner + "/" + r.Name
}

// User represents the authenticated GitHub user.
// It is the only record that is persisted (see package prefs).
type User struct {
	Login       string `json:"login"`
	AvatarURL   string `json:"avatar_url"`
	Name        string `json:"name,omitempty"`
	PublicRepos int    `json:"public_repos"`
}

// DisplayName returns the user's name, falling back to the login.
func (u User) DisplayName() string {
	if u.Name != "" {
		return u.Name
	}
	return u.Login
}

// Topic is a trending topic entry. Topics are static demo data.
type Topic struct {
	ID              int
	Title           string
	DiscussionCount int
	GrowthRate      string // e.g. "+32%"
}

// IssueDraft holds the target repository and the user-entered content
// while the issue dialog is open.
type IssueDraft struct {
	Owner  string
	Repo   string
	Title  string
	Body   string
	Labels []string
}

// CreatedIssue is the subset of the issue creation response we keep.
type CreatedIssue struct {
	ID     int64
	Number int
	URL    string
}

// RateLimit reports the API quota of the configured credential.
type RateLimit struct {
	Limit     int
	Remaining int
	ResetAt   time.Time
}
