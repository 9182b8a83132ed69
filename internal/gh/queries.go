package gh

import (
	"context"
	"fmt"

	"github.com/google/go-github/v82/github"
	"github.com/h0rv/ghbrowse/internal/domain"
)

// UserReposPageSize is the number of repositories fetched for the profile.
const UserReposPageSize = 20

// SearchRepositories runs a repository search sorted by stars, descending.
// Only the first page is returned.
func (c *Client) SearchRepositories(ctx context.Context, query string) ([]domain.Repository, error) {
	opts := &github.SearchOptions{
		Sort:  "stars",
		Order: "desc",
	}

	result, _, err := c.anon.Search.Repositories(ctx, query, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to search repositories: %w", err)
	}

	return toRepositories(result.Repositories), nil
}

// GetAuthenticatedUser returns the user owning the configured credential.
func (c *Client) GetAuthenticatedUser(ctx context.Context) (domain.User, error) {
	client, err := c.authed(SchemeBearer)
	if err != nil {
		return domain.User{}, err
	}

	user, _, err := client.Users.Get(ctx, "")
	if err != nil {
		return domain.User{}, fmt.Errorf("failed to get authenticated user: %w", err)
	}

	return domain.User{
		Login:       user.GetLogin(),
		AvatarURL:   user.GetAvatarURL(),
		Name:        user.GetName(),
		PublicRepos: user.GetPublicRepos(),
	}, nil
}

// ListUserRepositories lists the authenticated user's repositories, most
// recently updated first, limited to one page of UserReposPageSize.
func (c *Client) ListUserRepositories(ctx context.Context) ([]domain.Repository, error) {
	client, err := c.authed(SchemeBearer)
	if err != nil {
		return nil, err
	}

	opts := &github.RepositoryListByAuthenticatedUserOptions{
		Sort:        "updated",
		Direction:   "desc",
		ListOptions: github.ListOptions{PerPage: UserReposPageSize},
	}

	repos, _, err := client.Repositories.ListByAuthenticatedUser(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list user repositories: %w", err)
	}

	return toRepositories(repos), nil
}

// toRepositories normalizes API repositories, preserving order.
func toRepositories(repos []*github.Repository) []domain.Repository {
	result := make([]domain.Repository, 0, len(repos))
	for _, r := range repos {
		if r == nil {
			continue
		}
		result = append(result, domain.Repository{
			ID:          r.GetID(),
			Owner:       r.GetOwner().GetLogin(),
			Name:        r.GetName(),
			Description: r.GetDescription(),
			Stars:       r.GetStargazersCount(),
			Language:    r.GetLanguage(),
			URL:         r.GetHTMLURL(),
			UpdatedAt:   r.GetUpdatedAt().Time,
		})
	}
	return result
}
