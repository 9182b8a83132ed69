// Package repository wraps the API client and the preference store behind
// small facades. Every fault below this boundary comes back as an error,
// never as a panic.
package repository

import (
	"context"
	"fmt"

	"github.com/h0rv/ghbrowse/internal/domain"
)

// SearchAPI is the part of the API client used for browsing.
type SearchAPI interface {
	SearchRepositories(ctx context.Context, query string) ([]domain.Repository, error)
}

// UserAPI is the part of the API client used for the authenticated user.
type UserAPI interface {
	GetAuthenticatedUser(ctx context.Context) (domain.User, error)
	ListUserRepositories(ctx context.Context) ([]domain.Repository, error)
	RateLimit(ctx context.Context) (domain.RateLimit, error)
}

// IssueAPI is the part of the API client used to file issues.
type IssueAPI interface {
	CreateIssue(ctx context.Context, owner, repo string, draft domain.IssueDraft) (domain.CreatedIssue, error)
}

// UserCache persists the current user. Implemented by prefs.Store.
type UserCache interface {
	SaveUser(user domain.User) error
	CachedUser() (*domain.User, bool)
	ClearUser() error
}

// recoverFault converts a panic in the API layer into an error for op.
// It must be deferred directly by a function with a named error result.
func recoverFault(op string, err *error) {
	if r := recover(); r != nil {
		*err = fmt.Errorf("%s: unexpected fault: %v", op, r)
	}
}
