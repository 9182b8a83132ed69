package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/h0rv/ghbrowse/internal/domain"
)

// DefaultHotLanguage is the language filter of the "hot repositories" feed.
const DefaultHotLanguage = "kotlin"

// trendingTopics is a stand-in: the public API has no trending endpoint.
var trendingTopics = []domain.Topic{
	{ID: 1, Title: "Kotlin coroutine best practices", DiscussionCount: 980, GrowthRate: "+32%"},
	{ID: 2, Title: "Compose performance tuning", DiscussionCount: 1200, GrowthRate: "+45%"},
	{ID: 3, Title: "Structured concurrency in practice", DiscussionCount: 760, GrowthRate: "+18%"},
	{ID: 4, Title: "Multiplatform project setup", DiscussionCount: 540, GrowthRate: "+12%"},
}

// Browse serves the home feed and repository search.
type Browse struct {
	api      SearchAPI
	hotQuery string
}

// NewBrowse creates a Browse repository. An empty hotLanguage uses DefaultHotLanguage.
func NewBrowse(api SearchAPI, hotLanguage string) *Browse {
	hotLanguage = strings.TrimSpace(hotLanguage)
	if hotLanguage == "" {
		hotLanguage = DefaultHotLanguage
	}
	return &Browse{
		api:      api,
		hotQuery: "language:" + hotLanguage,
	}
}

// SearchRepositories forwards query to the API unchanged.
func (b *Browse) SearchRepositories(ctx context.Context, query string) (repos []domain.Repository, err error) {
	defer recoverFault("search repositories", &err)

	repos, err = b.api.SearchRepositories(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("search %q: %w", query, err)
	}
	return repos, nil
}

// HotRepositories runs the canned hot-repositories query.
func (b *Browse) HotRepositories(ctx context.Context) (repos []domain.Repository, err error) {
	defer recoverFault("hot repositories", &err)

	repos, err = b.api.SearchRepositories(ctx, b.hotQuery)
	if err != nil {
		return nil, fmt.Errorf("hot repositories: %w", err)
	}
	return repos, nil
}

// HotQuery returns the query used by HotRepositories.
func (b *Browse) HotQuery() string {
	return b.hotQuery
}

// TrendingTopics returns the static topic list. No network call is made.
func (b *Browse) TrendingTopics() []domain.Topic {
	topics := make([]domain.Topic, len(trendingTopics))
	copy(topics, trendingTopics)
	return topics
}
