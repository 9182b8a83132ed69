package gh

import (
	"context"
	"fmt"

	"github.com/google/go-github/v82/github"
	"github.com/h0rv/ghbrowse/internal/domain"
)

// CreateIssue opens an issue on owner/repo. The request body always carries
// a labels array, empty when none are given.
func (c *Client) CreateIssue(ctx context.Context, owner, repo string, draft domain.IssueDraft) (domain.CreatedIssue, error) {
	client, err := c.authed(SchemeToken)
	if err != nil {
		return domain.CreatedIssue{}, err
	}

	labels := draft.Labels
	if labels == nil {
		labels = []string{}
	}

	req := &github.IssueRequest{
		Title:  github.Ptr(draft.Title),
		Body:   github.Ptr(draft.Body),
		Labels: &labels,
	}

	issue, _, err := client.Issues.Create(ctx, owner, repo, req)
	if err != nil {
		return domain.CreatedIssue{}, fmt.Errorf("failed to create issue in %s/%s: %w", owner, repo, err)
	}

	return domain.CreatedIssue{
		ID:     issue.GetID(),
		Number: issue.GetNumber(),
		URL:    issue.GetHTMLURL(),
	}, nil
}
