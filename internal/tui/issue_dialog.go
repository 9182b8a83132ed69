package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/h0rv/ghbrowse/internal/domain"
)

// issueDialog collects the title and body of a new issue.
type issueDialog struct {
	open   bool
	target string
	title  textinput.Model
	body   textarea.Model
}

func newIssueDialog() issueDialog {
	ti := textinput.New()
	ti.Placeholder = "Issue title"
	ti.Prompt = "Title: "
	ti.CharLimit = 256

	ta := textarea.New()
	ta.Placeholder = "Describe the issue..."
	ta.CharLimit = 65535
	ta.SetHeight(6)
	ta.SetWidth(60)
	ta.ShowLineNumbers = false
	ta.FocusedStyle.CursorLine = lipgloss.NewStyle() // No highlight on cursor line
	ta.FocusedStyle.Base = lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("228"))
	ta.BlurredStyle.Base = lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240"))

	return issueDialog{title: ti, body: ta}
}

// show opens the dialog for repo with the title focused.
func (d *issueDialog) show(repo domain.Repository) tea.Cmd {
	d.reset()
	d.open = true
	d.target = repo.FullName()
	return d.title.Focus()
}

// reset clears and closes the dialog.
func (d *issueDialog) reset() {
	d.open = false
	d.target = ""
	d.title.Reset()
	d.title.Blur()
	d.body.Reset()
	d.body.Blur()
}

func (d *issueDialog) toggleField() tea.Cmd {
	if d.title.Focused() {
		d.title.Blur()
		return d.body.Focus()
	}
	d.body.Blur()
	return d.title.Focus()
}

func (d *issueDialog) resize(width int) {
	w := width - 8
	if w < 30 {
		w = 30
	}
	d.title.Width = w - 8
	d.body.SetWidth(w)
}

func (m AppModel) updateDialog(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.ctl.Issue.State().IsLoading() {
		if key.Matches(msg, m.keys.Cancel) {
			m.ctl.Issue.CancelDialog()
			m.dialog.reset()
		}
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.Cancel):
		m.ctl.Issue.CancelDialog()
		m.dialog.reset()
		return m, nil
	case key.Matches(msg, m.keys.Submit):
		return m, m.ctl.Issue.CreateIssue(m.dialog.title.Value(), m.dialog.body.Value())
	case key.Matches(msg, m.keys.NextField):
		cmd := m.dialog.toggleField()
		return m, cmd
	}

	if msg.String() == "enter" && m.dialog.title.Focused() {
		cmd := m.dialog.toggleField()
		return m, cmd
	}

	var cmd tea.Cmd
	if m.dialog.title.Focused() {
		m.dialog.title, cmd = m.dialog.title.Update(msg)
	} else {
		m.dialog.body, cmd = m.dialog.body.Update(msg)
	}
	return m, cmd
}

func (m AppModel) dialogView() string {
	var b strings.Builder
	b.WriteString(TitleStyle.Render("New issue in " + m.dialog.target))
	b.WriteString("\n")
	b.WriteString(m.dialog.title.View())
	b.WriteString("\n")
	b.WriteString(m.dialog.body.View())
	b.WriteString("\n")

	state := m.ctl.Issue.State()
	switch {
	case state.IsLoading():
		b.WriteString(m.spinner.View() + " Submitting...")
	case state.IsError():
		b.WriteString(ErrorStyle.Render("Error: " + state.Message()))
	}
	return CardStyle.Render(b.String())
}
