package store

import (
	"context"
	"log/slog"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/h0rv/ghbrowse/internal/domain"
	"github.com/h0rv/ghbrowse/internal/uistate"
)

// DebounceDelay is how long typing must pause before a search runs.
const DebounceDelay = 500 * time.Millisecond

// tickFunc schedules fn after d. tea.Tick in production.
type tickFunc func(d time.Duration, fn func(time.Time) tea.Msg) tea.Cmd

// searchDebounceMsg fires when a debounce timer expires.
type searchDebounceMsg struct {
	id    uint64
	query string
}

// SearchResultMsg carries the result of a repository search.
type SearchResultMsg struct {
	seq   uint64
	Query string
	Repos []domain.Repository
	Err   error
}

// Search holds the search-as-you-type screen.
type Search struct {
	deps
	repo BrowseRepository
	tick tickFunc

	query   string
	results uistate.State[[]domain.Repository]

	// debounce is the id of the only live timer; older ids are cancelled.
	debounce  seq
	searchSeq seq
}

// NewSearch creates the search controller. Results start Idle.
func NewSearch(ctx context.Context, repo BrowseRepository, logger *slog.Logger) *Search {
	return &Search{
		deps: newDeps(ctx, logger),
		repo: repo,
		tick: tea.Tick,
	}
}

// Query returns the current input.
func (s *Search) Query() string { return s.query }

// Results returns the search results slot.
func (s *Search) Results() uistate.State[[]domain.Repository] { return s.results }

// SetQuery records a keystroke. The query updates immediately; any pending
// debounce timer is cancelled and a new one is scheduled.
func (s *Search) SetQuery(query string) tea.Cmd {
	s.query = query
	id := s.debounce.next()

	return s.tick(DebounceDelay, func(time.Time) tea.Msg {
		return searchDebounceMsg{id: id, query: query}
	})
}

// Retry reruns the current query immediately if it is not blank.
func (s *Search) Retry() tea.Cmd {
	if strings.TrimSpace(s.query) == "" {
		return nil
	}
	return s.search(s.query)
}

// search sets Loading and returns the fetch. The query is matched as a
// language filter.
func (s *Search) search(query string) tea.Cmd {
	s.results = uistate.Loading[[]domain.Repository]()
	n := s.searchSeq.next()
	ctx, repo := s.ctx, s.repo

	return func() tea.Msg {
		repos, err := repo.SearchRepositories(ctx, "language:"+query)
		return SearchResultMsg{seq: n, Query: query, Repos: repos, Err: err}
	}
}

// Update applies debounce ticks and search results.
func (s *Search) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case searchDebounceMsg:
		if !s.debounce.current(msg.id) {
			return nil // superseded by a later keystroke
		}
		if strings.TrimSpace(msg.query) == "" {
			return nil
		}
		return s.search(msg.query)

	case SearchResultMsg:
		if !s.searchSeq.current(msg.seq) {
			return s.dropStale("search", msg.seq)
		}
		if msg.Err != nil {
			s.logger.Warn("search failed",
				slog.String("query", msg.Query),
				slog.String("error", msg.Err.Error()),
			)
			s.results = uistate.FromError[[]domain.Repository](msg.Err, FallbackError)
			return nil
		}
		s.results = uistate.FromSlice(msg.Repos)
	}
	return nil
}
