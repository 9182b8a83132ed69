package store

import (
	"context"
	"fmt"
	"log/slog"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/h0rv/ghbrowse/internal/domain"
	"github.com/h0rv/ghbrowse/internal/uistate"
)

// BrowseRepository is the data source of the home feed and search.
type BrowseRepository interface {
	SearchRepositories(ctx context.Context, query string) ([]domain.Repository, error)
	HotRepositories(ctx context.Context) ([]domain.Repository, error)
	TrendingTopics() []domain.Topic
}

// HotReposLoadedMsg carries the result of a hot-repositories fetch.
type HotReposLoadedMsg struct {
	seq   uint64
	Repos []domain.Repository
	Err   error
}

// TopicsLoadedMsg carries the result of a trending-topics fetch.
type TopicsLoadedMsg struct {
	seq    uint64
	Topics []domain.Topic
	Err    error
}

// Home holds the home feed: hot repositories and trending topics.
type Home struct {
	deps
	repo BrowseRepository

	hot    uistate.State[[]domain.Repository]
	topics uistate.State[[]domain.Topic]

	hotSeq    seq
	topicsSeq seq
}

// NewHome creates the home controller. Both slots start Idle until Init.
func NewHome(ctx context.Context, repo BrowseRepository, logger *slog.Logger) *Home {
	return &Home{
		deps: newDeps(ctx, logger),
		repo: repo,
	}
}

// Init issues both default fetches. Each slot is Loading when Init returns.
func (h *Home) Init() tea.Cmd {
	return tea.Batch(h.LoadHotRepositories(), h.LoadTrendingTopics())
}

// LoadHotRepositories sets the hot slot to Loading and returns the fetch.
func (h *Home) LoadHotRepositories() tea.Cmd {
	h.hot = uistate.Loading[[]domain.Repository]()
	n := h.hotSeq.next()
	ctx, repo := h.ctx, h.repo

	return func() tea.Msg {
		repos, err := repo.HotRepositories(ctx)
		return HotReposLoadedMsg{seq: n, Repos: repos, Err: err}
	}
}

// LoadTrendingTopics sets the topics slot to Loading and returns the fetch.
func (h *Home) LoadTrendingTopics() tea.Cmd {
	h.topics = uistate.Loading[[]domain.Topic]()
	n := h.topicsSeq.next()
	repo := h.repo

	return func() (msg tea.Msg) {
		defer func() {
			if r := recover(); r != nil {
				msg = TopicsLoadedMsg{seq: n, Err: fmt.Errorf("trending topics: %v", r)}
			}
		}()
		return TopicsLoadedMsg{seq: n, Topics: repo.TrendingTopics()}
	}
}

// Update applies fetch results.
func (h *Home) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case HotReposLoadedMsg:
		if !h.hotSeq.current(msg.seq) {
			return h.dropStale("hot", msg.seq)
		}
		if msg.Err != nil {
			h.logger.Warn("failed to load hot repositories", slog.String("error", msg.Err.Error()))
			h.hot = uistate.FromError[[]domain.Repository](msg.Err, FallbackError)
			return nil
		}
		h.hot = uistate.FromSlice(msg.Repos)

	case TopicsLoadedMsg:
		if !h.topicsSeq.current(msg.seq) {
			return h.dropStale("topics", msg.seq)
		}
		if msg.Err != nil {
			h.topics = uistate.FromError[[]domain.Topic](msg.Err, FallbackError)
			return nil
		}
		h.topics = uistate.FromSlice(msg.Topics)
	}
	return nil
}

// HotRepos returns the hot repositories slot.
func (h *Home) HotRepos() uistate.State[[]domain.Repository] { return h.hot }

// Topics returns the trending topics slot.
func (h *Home) Topics() uistate.State[[]domain.Topic] { return h.topics }
