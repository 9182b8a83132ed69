package repository

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/h0rv/ghbrowse/internal/domain"
)

// ErrInvalidDraft indicates an issue draft is missing its target or title.
var ErrInvalidDraft = errors.New("invalid issue draft")

// Issue files issues against a repository.
type Issue struct {
	api    IssueAPI
	logger *slog.Logger
}

// NewIssue creates an Issue repository.
func NewIssue(api IssueAPI, logger *slog.Logger) *Issue {
	if logger == nil {
		logger = slog.Default()
	}
	return &Issue{api: api, logger: logger}
}

// CreateIssue validates draft and submits it.
func (i *Issue) CreateIssue(ctx context.Context, draft domain.IssueDraft) (issue domain.CreatedIssue, err error) {
	defer recoverFault("create issue", &err)

	if err := validateDraft(draft); err != nil {
		return domain.CreatedIssue{}, err
	}

	issue, err = i.api.CreateIssue(ctx, draft.Owner, draft.Repo, draft)
	if err != nil {
		return domain.CreatedIssue{}, err
	}

	i.logger.Info("created issue",
		slog.String("repo", draft.Owner+"/"+draft.Repo),
		slog.Int("number", issue.Number),
	)
	return issue, nil
}

func validateDraft(draft domain.IssueDraft) error {
	switch {
	case strings.TrimSpace(draft.Owner) == "" || strings.TrimSpace(draft.Repo) == "":
		return fmt.Errorf("%w: no target repository", ErrInvalidDraft)
	case strings.TrimSpace(draft.Title) == "":
		return fmt.Errorf("%w: title is required", ErrInvalidDraft)
	}
	return nil
}
