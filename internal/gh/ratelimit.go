package gh

import (
	"context"
	"fmt"
	"time"

	"github.com/h0rv/ghbrowse/internal/domain"
	"github.com/machinebox/graphql"
)

// RateLimit reports the GraphQL quota of the configured credential.
// The profile screen shows it next to the user card.
func (c *Client) RateLimit(ctx context.Context) (domain.RateLimit, error) {
	req := graphql.NewRequest(`
		query {
			rateLimit {
				limit
				remaining
				resetAt
			}
		}
	`)

	var resp struct {
		RateLimit struct {
			Limit     int       `json:"limit"`
			Remaining int       `json:"remaining"`
			ResetAt   time.Time `json:"resetAt"`
		} `json:"rateLimit"`
	}

	if err := c.makeRequest(ctx, req, &resp); err != nil {
		return domain.RateLimit{}, fmt.Errorf("failed to get rate limit: %w", err)
	}

	return domain.RateLimit{
		Limit:     resp.RateLimit.Limit,
		Remaining: resp.RateLimit.Remaining,
		ResetAt:   resp.RateLimit.ResetAt,
	}, nil
}
