package repository

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/h0rv/ghbrowse/internal/domain"
)

// Auth fetches the authenticated user and caches it.
//
// The user returned by Login is the owner of the configured credential; the
// entered username and password are only checked by the caller's demo gate.
type Auth struct {
	api    UserAPI
	cache  UserCache
	logger *slog.Logger
}

// NewAuth creates an Auth repository.
func NewAuth(api UserAPI, cache UserCache, logger *slog.Logger) *Auth {
	if logger == nil {
		logger = slog.Default()
	}
	return &Auth{api: api, cache: cache, logger: logger}
}

// Login fetches the authenticated user and stores it in the cache. A cache
// write failure is logged, not returned: the login itself succeeded.
func (a *Auth) Login(ctx context.Context, username, password string) (user domain.User, err error) {
	defer recoverFault("login", &err)

	user, err = a.api.GetAuthenticatedUser(ctx)
	if err != nil {
		return domain.User{}, err
	}

	if err := a.cache.SaveUser(user); err != nil {
		a.logger.Warn("failed to cache user",
			slog.String("login", user.Login),
			slog.String("error", err.Error()),
		)
	}

	a.logger.Info("logged in", slog.String("login", user.Login))
	return user, nil
}

// UserRepositories lists the authenticated user's repositories.
func (a *Auth) UserRepositories(ctx context.Context) (repos []domain.Repository, err error) {
	defer recoverFault("user repositories", &err)

	repos, err = a.api.ListUserRepositories(ctx)
	if err != nil {
		return nil, fmt.Errorf("user repositories: %w", err)
	}
	return repos, nil
}

// RateLimit reports the remaining API quota of the configured credential.
func (a *Auth) RateLimit(ctx context.Context) (rl domain.RateLimit, err error) {
	defer recoverFault("rate limit", &err)

	return a.api.RateLimit(ctx)
}

// CachedUser reads the cached user without network access.
func (a *Auth) CachedUser() (*domain.User, bool) {
	return a.cache.CachedUser()
}

// ClearCachedUser deletes the cached user.
func (a *Auth) ClearCachedUser() error {
	return a.cache.ClearUser()
}
