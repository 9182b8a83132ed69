package tui

import (
	"context"
	"errors"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/h0rv/ghbrowse/internal/domain"
	"github.com/h0rv/ghbrowse/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeRepo implements every repository interface the controllers need.
type fakeRepo struct {
	repos    []domain.Repository
	user     domain.User
	cached   *domain.User
	issue    domain.CreatedIssue
	issueErr error
	drafts   []domain.IssueDraft
}

func (f *fakeRepo) SearchRepositories(ctx context.Context, query string) ([]domain.Repository, error) {
	return f.repos, nil
}

func (f *fakeRepo) HotRepositories(ctx context.Context) ([]domain.Repository, error) {
	return f.repos, nil
}

func (f *fakeRepo) TrendingTopics() []domain.Topic {
	return []domain.Topic{{ID: 1, Title: "Go generics", DiscussionCount: 1200, GrowthRate: "+20%"}}
}

func (f *fakeRepo) Login(ctx context.Context, username, password string) (domain.User, error) {
	u := f.user
	f.cached = &u
	return f.user, nil
}

func (f *fakeRepo) UserRepositories(ctx context.Context) ([]domain.Repository, error) {
	return f.repos, nil
}

func (f *fakeRepo) RateLimit(ctx context.Context) (domain.RateLimit, error) {
	return domain.RateLimit{Limit: 5000, Remaining: 4990}, nil
}

func (f *fakeRepo) CachedUser() (*domain.User, bool) { return f.cached, f.cached != nil }

func (f *fakeRepo) ClearCachedUser() error {
	f.cached = nil
	return nil
}

func (f *fakeRepo) CreateIssue(ctx context.Context, draft domain.IssueDraft) (domain.CreatedIssue, error) {
	f.drafts = append(f.drafts, draft)
	return f.issue, f.issueErr
}

func createTestRepo() *fakeRepo {
	return &fakeRepo{
		repos: []domain.Repository{
			{ID: 1, Owner: "golang", Name: "go", Stars: 120000, Language: "Go", URL: "https://github.com/golang/go"},
			{ID: 2, Owner: "spf13", Name: "cobra", Stars: 38000, Language: "Go", URL: "https://github.com/spf13/cobra"},
		},
		user:  domain.User{Login: "octocat", Name: "The Octocat", PublicRepos: 8},
		issue: domain.CreatedIssue{ID: 10, Number: 3, URL: "https://github.com/golang/go/issues/3"},
	}
}

// createTestApp builds an app over fake repositories with a fixed window size.
func createTestApp(repo *fakeRepo) AppModel {
	ctx := context.Background()
	app := NewAppModel(Controllers{
		Home:   store.NewHome(ctx, repo, nil),
		Search: store.NewSearch(ctx, repo, nil),
		User:   store.NewUser(ctx, repo, nil),
		Issue:  store.NewIssue(ctx, repo, nil),
	}, nil)
	model, _ := app.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	return model.(AppModel)
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

// send delivers msg and returns the updated app and command.
func send(t *testing.T, m AppModel, msg tea.Msg) (AppModel, tea.Cmd) {
	t.Helper()
	model, cmd := m.Update(msg)
	app, ok := model.(AppModel)
	require.True(t, ok)
	return app, cmd
}

// deliver runs a controller command and feeds every resulting message back.
func deliver(t *testing.T, m AppModel, cmd tea.Cmd) (AppModel, tea.Cmd) {
	t.Helper()
	require.NotNil(t, cmd)
	msg := cmd()
	if batch, ok := msg.(tea.BatchMsg); ok {
		var next []tea.Cmd
		for _, c := range batch {
			var out tea.Cmd
			m, out = deliver(t, m, c)
			next = append(next, out)
		}
		return m, tea.Batch(next...)
	}
	return send(t, m, msg)
}

func TestAppModel_HotReposPopulateList(t *testing.T) {
	m := createTestApp(createTestRepo())

	cmd := m.ctl.Home.LoadHotRepositories()
	assert.Contains(t, m.View(), "Loading repositories")

	m, _ = deliver(t, m, cmd)

	assert.Len(t, m.home.list.Items(), 2)
	repo, ok := selectedRepo(m.home.list)
	require.True(t, ok)
	assert.Equal(t, "golang/go", repo.FullName())
}

func TestAppModel_TabNavigation(t *testing.T) {
	m := createTestApp(createTestRepo())
	assert.Equal(t, TabHome, m.tab)

	m, _ = send(t, m, tea.KeyMsg{Type: tea.KeyTab})
	assert.Equal(t, TabSearch, m.tab)
	assert.True(t, m.search.input.Focused())

	m, _ = send(t, m, tea.KeyMsg{Type: tea.KeyTab})
	assert.Equal(t, TabProfile, m.tab)
	assert.False(t, m.search.input.Focused())

	m, _ = send(t, m, tea.KeyMsg{Type: tea.KeyTab})
	assert.Equal(t, TabHome, m.tab)

	m, _ = send(t, m, tea.KeyMsg{Type: tea.KeyShiftTab})
	assert.Equal(t, TabProfile, m.tab)
}

func TestAppModel_SearchTypingUpdatesQuery(t *testing.T) {
	m := createTestApp(createTestRepo())
	m, _ = send(t, m, tea.KeyMsg{Type: tea.KeyTab})

	m, cmd := send(t, m, runes("g"))
	assert.NotNil(t, cmd, "a debounce timer is scheduled")
	assert.Equal(t, "g", m.ctl.Search.Query())

	m, _ = send(t, m, runes("o"))
	assert.Equal(t, "go", m.ctl.Search.Query())
	assert.True(t, m.ctl.Search.Results().IsIdle(), "nothing runs before the timer fires")

	// q is text while the input is focused
	m, _ = send(t, m, runes("q"))
	assert.Equal(t, "goq", m.ctl.Search.Query())
}

func TestAppModel_LoginFlow(t *testing.T) {
	repo := createTestRepo()
	m := createTestApp(repo)

	m, _ = send(t, m, tea.KeyMsg{Type: tea.KeyShiftTab})
	require.Equal(t, TabProfile, m.tab)
	assert.Contains(t, m.View(), "Sign in")

	m, _ = send(t, m, runes(store.DemoUsername))
	m, _ = send(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	m, _ = send(t, m, runes(store.DemoPassword))
	m, cmd := send(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	assert.True(t, m.ctl.User.IsLoading())

	m, cmd = deliver(t, m, cmd)
	require.NotNil(t, m.ctl.User.CurrentUser())
	assert.Equal(t, "octocat", m.ctl.User.CurrentUser().Login)
	assert.True(t, m.ctl.User.Repositories().IsLoading())

	m, _ = deliver(t, m, cmd)
	assert.Len(t, m.profile.list.Items(), 2)
	assert.True(t, m.ctl.User.Quota().IsSuccess())
	assert.Contains(t, m.View(), "The Octocat")
}

func TestAppModel_LoginRejected(t *testing.T) {
	m := createTestApp(createTestRepo())
	m, _ = send(t, m, tea.KeyMsg{Type: tea.KeyShiftTab})

	m, _ = send(t, m, runes("admin"))
	m, _ = send(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	m, _ = send(t, m, runes("admin"))
	m, cmd := send(t, m, tea.KeyMsg{Type: tea.KeyEnter})

	assert.Nil(t, cmd)
	assert.Equal(t, store.ErrBadCredentials, m.ctl.User.ErrorMessage())
	assert.Contains(t, m.View(), store.ErrBadCredentials)
}

// loggedIn returns an app on the profile tab with the user's repositories loaded.
func loggedIn(t *testing.T, repo *fakeRepo) AppModel {
	t.Helper()
	user := repo.user
	repo.cached = &user

	m := createTestApp(repo)
	m, cmd := send(t, m, tea.KeyMsg{Type: tea.KeyShiftTab})
	require.NotNil(t, m.ctl.User.CurrentUser())
	m, _ = deliver(t, m, cmd)
	require.Len(t, m.profile.list.Items(), 2)
	return m
}

func TestAppModel_IssueDialog(t *testing.T) {
	repo := createTestRepo()
	m := loggedIn(t, repo)

	m, _ = send(t, m, runes("n"))
	require.True(t, m.ctl.Issue.DialogOpen())
	assert.Contains(t, m.View(), "New issue in golang/go")

	m, _ = send(t, m, runes("Crash on start"))
	m, cmd := send(t, m, tea.KeyMsg{Type: tea.KeyCtrlS})
	assert.True(t, m.ctl.Issue.State().IsLoading())

	m, _ = deliver(t, m, cmd)
	assert.False(t, m.ctl.Issue.DialogOpen())
	assert.True(t, m.ctl.Issue.ShowSuccessToast())
	assert.Contains(t, m.View(), "Issue #3 created")
	require.Len(t, repo.drafts, 1)
	assert.Equal(t, domain.IssueDraft{Owner: "golang", Repo: "go", Title: "Crash on start"}, repo.drafts[0])

	m, _ = send(t, m, toastExpiredMsg{})
	assert.False(t, m.ctl.Issue.ShowSuccessToast())
}

func TestAppModel_IssueDialogCancel(t *testing.T) {
	repo := createTestRepo()
	repo.issueErr = errors.New("403 Forbidden")
	m := loggedIn(t, repo)

	m, _ = send(t, m, runes("n"))
	m, cmd := send(t, m, tea.KeyMsg{Type: tea.KeyCtrlS})
	m, _ = deliver(t, m, cmd)
	assert.True(t, m.ctl.Issue.DialogOpen())
	assert.Contains(t, m.View(), "403 Forbidden")

	m, _ = send(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	assert.False(t, m.ctl.Issue.DialogOpen())
	assert.True(t, m.ctl.Issue.State().IsIdle())
	assert.False(t, m.dialog.open)
}

func TestAppModel_Logout(t *testing.T) {
	repo := createTestRepo()
	m := loggedIn(t, repo)

	m, _ = send(t, m, runes("X"))

	assert.Nil(t, m.ctl.User.CurrentUser())
	assert.Nil(t, repo.cached)
	assert.Empty(t, m.profile.list.Items())
	assert.True(t, strings.Contains(m.View(), "Sign in"))
}

func TestAppModel_OpenInBrowser(t *testing.T) {
	m := createTestApp(createTestRepo())
	var opened []string
	m.openURL = func(url string) error {
		opened = append(opened, url)
		return nil
	}

	m, _ = deliver(t, m, m.ctl.Home.LoadHotRepositories())
	m, cmd := send(t, m, runes("o"))
	m, _ = deliver(t, m, cmd)

	assert.Equal(t, []string{"https://github.com/golang/go"}, opened)
	assert.Empty(t, m.status)
}

func TestAppModel_OpenFailureShowsStatus(t *testing.T) {
	m := createTestApp(createTestRepo())
	m.openURL = func(string) error { return errors.New("no display") }

	m, _ = deliver(t, m, m.ctl.Home.LoadHotRepositories())
	m, cmd := send(t, m, runes("o"))
	m, _ = deliver(t, m, cmd)

	assert.Contains(t, m.status, "no display")
}

func TestAppModel_Quit(t *testing.T) {
	m := createTestApp(createTestRepo())

	_, cmd := send(t, m, runes("q"))
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}

func TestDescriptionLine(t *testing.T) {
	assert.Equal(t, "No description", descriptionLine("  ", 40))
	assert.Equal(t, "short", descriptionLine("short", 40))

	long := descriptionLine("a fairly long description that will not fit on one line", 20)
	assert.True(t, strings.HasSuffix(long, "…"))
}
