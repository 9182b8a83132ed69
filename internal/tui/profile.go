package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"
	"github.com/h0rv/ghbrowse/internal/domain"
)

// profileView is the login form when signed out and the user card with
// the user's repositories when signed in.
type profileView struct {
	username textinput.Model
	password textinput.Model
	list     list.Model
}

func newProfileView() profileView {
	user := textinput.New()
	user.Placeholder = "Username"
	user.Prompt = "Username: "
	user.CharLimit = 64

	pass := textinput.New()
	pass.Placeholder = "Password"
	pass.Prompt = "Password: "
	pass.CharLimit = 64
	pass.EchoMode = textinput.EchoPassword
	pass.EchoCharacter = '•'

	return profileView{
		username: user,
		password: pass,
		list:     newRepoList("Your repositories"),
	}
}

// focusForm focuses the username field.
func (p *profileView) focusForm() tea.Cmd {
	p.password.Blur()
	return p.username.Focus()
}

// toggleField moves focus between username and password.
func (p *profileView) toggleField() tea.Cmd {
	if p.username.Focused() {
		p.username.Blur()
		return p.password.Focus()
	}
	p.password.Blur()
	return p.username.Focus()
}

// resetForm clears both fields.
func (p *profileView) resetForm() {
	p.username.Reset()
	p.password.Reset()
	p.username.Blur()
	p.password.Blur()
}

func (m AppModel) updateProfile(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.ctl.User.CurrentUser() == nil {
		return m.updateLogin(msg)
	}

	switch {
	case key.Matches(msg, m.keys.Retry):
		return m, tea.Batch(m.ctl.User.LoadRepositories(), m.ctl.User.LoadRateLimit())
	case key.Matches(msg, m.keys.Logout):
		m.ctl.User.Logout()
		m.profile.list.SetItems(nil)
		cmd := m.profile.focusForm()
		return m, cmd
	case key.Matches(msg, m.keys.Open):
		if repo, ok := selectedRepo(m.profile.list); ok && m.ctl.User.Repositories().IsSuccess() {
			return m, m.open(repo.URL)
		}
		return m, nil
	case key.Matches(msg, m.keys.NewIssue):
		repo, ok := selectedRepo(m.profile.list)
		if !ok || !m.ctl.User.Repositories().IsSuccess() {
			return m, nil
		}
		m.ctl.Issue.ShowCreateDialog(repo.Owner, repo.Name)
		cmd := m.dialog.show(repo)
		return m, cmd
	}

	var cmd tea.Cmd
	m.profile.list, cmd = m.profile.list.Update(msg)
	return m, cmd
}

func (m AppModel) updateLogin(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.ctl.User.IsLoading() {
		return m, nil
	}

	switch msg.String() {
	case "up", "down", "ctrl+n":
		cmd := m.profile.toggleField()
		return m, cmd
	case "esc":
		m.profile.username.Blur()
		m.profile.password.Blur()
		return m, nil
	case "enter":
		if m.profile.username.Focused() {
			cmd := m.profile.toggleField()
			return m, cmd
		}
		return m, m.ctl.User.Login(m.profile.username.Value(), m.profile.password.Value())
	}

	if !m.profile.username.Focused() && !m.profile.password.Focused() {
		cmd := m.profile.focusForm()
		return m, cmd
	}

	var cmds [2]tea.Cmd
	m.profile.username, cmds[0] = m.profile.username.Update(msg)
	m.profile.password, cmds[1] = m.profile.password.Update(msg)
	return m, tea.Batch(cmds[:]...)
}

func (m AppModel) profileView() string {
	user := m.ctl.User.CurrentUser()
	if user == nil {
		return m.loginView()
	}

	card := CardStyle.Render(userCard(*user) + "\n" + m.quotaLine())

	repos := renderState(m.ctl.User.Repositories(), m.spinner, "repositories", func([]domain.Repository) string {
		return m.profile.list.View()
	})

	var toast string
	if m.ctl.Issue.ShowSuccessToast() {
		if issue, ok := m.ctl.Issue.State().Data(); ok {
			toast = SuccessStyle.Render(fmt.Sprintf("Issue #%d created: %s", issue.Number, issue.URL))
		}
	}

	view := lipgloss.JoinVertical(lipgloss.Left, card, toast, repos)
	if m.ctl.Issue.DialogOpen() {
		view = lipgloss.JoinVertical(lipgloss.Left, card, m.dialogView())
	}
	return view
}

func userCard(u domain.User) string {
	lines := []string{
		TitleStyle.UnsetMarginBottom().Render(u.DisplayName()),
		MutedStyle.Render("@" + u.Login),
		fmt.Sprintf("%d public repositories", u.PublicRepos),
	}
	return strings.Join(lines, "\n")
}

func (m AppModel) quotaLine() string {
	return renderState(m.ctl.User.Quota(), m.spinner, "quota", func(rl domain.RateLimit) string {
		line := fmt.Sprintf("API quota: %s / %s", humanize.Comma(int64(rl.Remaining)), humanize.Comma(int64(rl.Limit)))
		if !rl.ResetAt.IsZero() && rl.ResetAt.After(time.Now()) {
			line += ", resets " + humanize.Time(rl.ResetAt)
		}
		return MutedStyle.Render(line)
	})
}

func (m AppModel) loginView() string {
	var b strings.Builder
	b.WriteString(TitleStyle.Render("Sign in"))
	b.WriteString("\n")
	b.WriteString(m.profile.username.View())
	b.WriteString("\n")
	b.WriteString(m.profile.password.View())
	b.WriteString("\n\n")

	switch {
	case m.ctl.User.IsLoading():
		b.WriteString(m.spinner.View() + " Signing in...")
	case m.ctl.User.ErrorMessage() != "":
		b.WriteString(ErrorStyle.Render(m.ctl.User.ErrorMessage()))
	default:
		b.WriteString(MutedStyle.Render("enter: next / sign in • ↑/↓: switch field"))
	}
	return b.String()
}
