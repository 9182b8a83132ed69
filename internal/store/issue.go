package store

import (
	"context"
	"log/slog"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/h0rv/ghbrowse/internal/domain"
	"github.com/h0rv/ghbrowse/internal/uistate"
)

// IssueRepository files issues.
type IssueRepository interface {
	CreateIssue(ctx context.Context, draft domain.IssueDraft) (domain.CreatedIssue, error)
}

// IssueCreatedMsg carries the result of an issue submission.
type IssueCreatedMsg struct {
	seq   uint64
	Issue domain.CreatedIssue
	Err   error
}

// Issue holds the issue creation dialog.
type Issue struct {
	deps
	repo IssueRepository

	owner, name string
	hasTarget   bool
	dialogOpen  bool
	state       uistate.State[domain.CreatedIssue]
	showToast   bool

	submitSeq seq
}

// NewIssue creates the issue controller with the dialog closed.
func NewIssue(ctx context.Context, repo IssueRepository, logger *slog.Logger) *Issue {
	return &Issue{
		deps: newDeps(ctx, logger),
		repo: repo,
	}
}

// ShowCreateDialog records the target repository and opens the dialog.
func (i *Issue) ShowCreateDialog(owner, repo string) {
	i.owner, i.name = owner, repo
	i.hasTarget = true
	i.dialogOpen = true
}

// CancelDialog discards the draft. A submission still in flight is ignored
// when it returns.
func (i *Issue) CancelDialog() {
	i.dialogOpen = false
	i.state = uistate.Idle[domain.CreatedIssue]()
	i.submitSeq.next()
}

// CreateIssue submits title and body to the recorded target. Without a
// target it does nothing.
func (i *Issue) CreateIssue(title, body string) tea.Cmd {
	if !i.hasTarget {
		return nil
	}

	i.state = uistate.Loading[domain.CreatedIssue]()
	n := i.submitSeq.next()
	ctx, repo := i.ctx, i.repo
	draft := domain.IssueDraft{Owner: i.owner, Repo: i.name, Title: title, Body: body}

	return func() tea.Msg {
		issue, err := repo.CreateIssue(ctx, draft)
		return IssueCreatedMsg{seq: n, Issue: issue, Err: err}
	}
}

// ResetToast clears the one-shot success flag once it has been shown.
func (i *Issue) ResetToast() {
	i.showToast = false
}

// Update applies submission results. Success closes the dialog and raises
// the success flag.
func (i *Issue) Update(msg tea.Msg) tea.Cmd {
	if msg, ok := msg.(IssueCreatedMsg); ok {
		if !i.submitSeq.current(msg.seq) {
			return i.dropStale("issue", msg.seq)
		}
		if msg.Err != nil {
			i.state = uistate.FromError[domain.CreatedIssue](msg.Err, "failed to submit issue")
			return nil
		}
		i.state = uistate.Success(msg.Issue)
		i.dialogOpen = false
		i.showToast = true
	}
	return nil
}

// Target returns the repository the dialog files against.
func (i *Issue) Target() (owner, repo string, ok bool) {
	return i.owner, i.name, i.hasTarget
}

// DialogOpen reports whether the dialog is shown.
func (i *Issue) DialogOpen() bool { return i.dialogOpen }

// State returns the submission slot.
func (i *Issue) State() uistate.State[domain.CreatedIssue] { return i.state }

// ShowSuccessToast reports whether a success notice is pending.
func (i *Issue) ShowSuccessToast() bool { return i.showToast }
