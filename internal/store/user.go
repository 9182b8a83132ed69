package store

import (
	"context"
	"log/slog"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/h0rv/ghbrowse/internal/domain"
	"github.com/h0rv/ghbrowse/internal/uistate"
)

// Demo credentials accepted by Login. They gate the UI only; the API call
// uses the configured token.
const (
	DemoUsername = "HSBC"
	DemoPassword = "123456"
)

// ErrBadCredentials is the message shown when the demo check fails.
const ErrBadCredentials = "invalid username or password, see README"

// AuthRepository is the data source of the user controller.
type AuthRepository interface {
	Login(ctx context.Context, username, password string) (domain.User, error)
	UserRepositories(ctx context.Context) ([]domain.Repository, error)
	RateLimit(ctx context.Context) (domain.RateLimit, error)
	CachedUser() (*domain.User, bool)
	ClearCachedUser() error
}

// LoginResultMsg carries the result of a login.
type LoginResultMsg struct {
	seq  uint64
	User domain.User
	Err  error
}

// UserReposLoadedMsg carries the result of a user repositories fetch.
type UserReposLoadedMsg struct {
	seq   uint64
	Repos []domain.Repository
	Err   error
}

// RateLimitLoadedMsg carries the result of a quota fetch.
type RateLimitLoadedMsg struct {
	seq       uint64
	RateLimit domain.RateLimit
	Err       error
}

// User holds the login state, the profile and the user's repositories.
type User struct {
	deps
	repo AuthRepository

	user     *domain.User
	loading  bool
	errorMsg string

	repos uistate.State[[]domain.Repository]
	quota uistate.State[domain.RateLimit]

	loginSeq seq
	reposSeq seq
	quotaSeq seq
}

// NewUser creates the user controller with no user loaded.
func NewUser(ctx context.Context, repo AuthRepository, logger *slog.Logger) *User {
	return &User{
		deps: newDeps(ctx, logger),
		repo: repo,
	}
}

// CurrentUser returns the logged-in user, or nil.
func (u *User) CurrentUser() *domain.User { return u.user }

// IsLoading reports whether a login is in flight.
func (u *User) IsLoading() bool { return u.loading }

// ErrorMessage returns the last login error, or "".
func (u *User) ErrorMessage() string { return u.errorMsg }

// Repositories returns the user repositories slot.
func (u *User) Repositories() uistate.State[[]domain.Repository] { return u.repos }

// Quota returns the rate limit slot.
func (u *User) Quota() uistate.State[domain.RateLimit] { return u.quota }

// Login checks the demo credentials. On mismatch it sets the error and clears
// the user without touching the repository. On match it starts the login.
func (u *User) Login(username, password string) tea.Cmd {
	if username != DemoUsername || password != DemoPassword {
		u.errorMsg = ErrBadCredentials
		u.user = nil
		return nil
	}

	u.loading = true
	u.errorMsg = ""
	n := u.loginSeq.next()
	ctx, repo := u.ctx, u.repo

	return func() tea.Msg {
		user, err := repo.Login(ctx, username, password)
		return LoginResultMsg{seq: n, User: user, Err: err}
	}
}

// ReloadUser reads the cached user. No network access.
func (u *User) ReloadUser() {
	if user, ok := u.repo.CachedUser(); ok {
		u.user = user
		return
	}
	u.user = nil
}

// Logout clears the in-memory state and the cached record. In-flight
// results for the old session are dropped.
func (u *User) Logout() {
	u.user = nil
	u.loading = false
	u.errorMsg = ""
	u.repos = uistate.Idle[[]domain.Repository]()
	u.quota = uistate.Idle[domain.RateLimit]()
	u.loginSeq.next()
	u.reposSeq.next()
	u.quotaSeq.next()

	if err := u.repo.ClearCachedUser(); err != nil {
		u.logger.Warn("failed to clear cached user", slog.String("error", err.Error()))
	}
}

// LoadRepositories sets the repositories slot to Loading and returns the fetch.
func (u *User) LoadRepositories() tea.Cmd {
	u.repos = uistate.Loading[[]domain.Repository]()
	n := u.reposSeq.next()
	ctx, repo := u.ctx, u.repo

	return func() tea.Msg {
		repos, err := repo.UserRepositories(ctx)
		return UserReposLoadedMsg{seq: n, Repos: repos, Err: err}
	}
}

// LoadRateLimit sets the quota slot to Loading and returns the fetch.
func (u *User) LoadRateLimit() tea.Cmd {
	u.quota = uistate.Loading[domain.RateLimit]()
	n := u.quotaSeq.next()
	ctx, repo := u.ctx, u.repo

	return func() tea.Msg {
		rl, err := repo.RateLimit(ctx)
		return RateLimitLoadedMsg{seq: n, RateLimit: rl, Err: err}
	}
}

// Update applies login, repositories and quota results.
func (u *User) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case LoginResultMsg:
		if !u.loginSeq.current(msg.seq) {
			return u.dropStale("login", msg.seq)
		}
		u.loading = false
		if msg.Err != nil {
			u.errorMsg = "login failed: " + errorText(msg.Err)
			u.user = nil
			return nil
		}
		user := msg.User
		u.user = &user
		u.errorMsg = ""

	case UserReposLoadedMsg:
		if !u.reposSeq.current(msg.seq) {
			return u.dropStale("user repos", msg.seq)
		}
		if msg.Err != nil {
			u.repos = uistate.FromError[[]domain.Repository](msg.Err, FallbackError)
			return nil
		}
		u.repos = uistate.FromSlice(msg.Repos)

	case RateLimitLoadedMsg:
		if !u.quotaSeq.current(msg.seq) {
			return u.dropStale("quota", msg.seq)
		}
		if msg.Err != nil {
			u.quota = uistate.FromError[domain.RateLimit](msg.Err, FallbackError)
			return nil
		}
		u.quota = uistate.Success(msg.RateLimit)
	}
	return nil
}

func errorText(err error) string {
	if err == nil || err.Error() == "" {
		return FallbackError
	}
	return err.Error()
}
