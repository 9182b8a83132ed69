package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"
	"github.com/h0rv/ghbrowse/internal/domain"
)

// homeView shows hot repositories beside the trending topics.
type homeView struct {
	list list.Model
}

func newHomeView() homeView {
	return homeView{list: newRepoList("Hot repositories")}
}

func (m AppModel) updateHome(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Retry):
		return m, m.ctl.Home.Init()
	case key.Matches(msg, m.keys.Open):
		if repo, ok := selectedRepo(m.home.list); ok && m.ctl.Home.HotRepos().IsSuccess() {
			return m, m.open(repo.URL)
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.home.list, cmd = m.home.list.Update(msg)
	return m, cmd
}

func (m AppModel) homeView() string {
	hot := renderState(m.ctl.Home.HotRepos(), m.spinner, "repositories", func([]domain.Repository) string {
		return m.home.list.View()
	})
	if !m.ctl.Home.HotRepos().IsSuccess() {
		hot = TitleStyle.Render("Hot repositories") + "\n" + hot
	}

	topics := TitleStyle.Render("Trending topics") + "\n" +
		renderState(m.ctl.Home.Topics(), m.spinner, "topics", renderTopics)

	if m.width >= 2*topicsWidth {
		side := lipgloss.NewStyle().Width(topicsWidth).MarginLeft(2).Render(topics)
		return lipgloss.JoinHorizontal(lipgloss.Top, hot, side)
	}
	return lipgloss.JoinVertical(lipgloss.Left, hot, "", topics)
}

func renderTopics(topics []domain.Topic) string {
	var b strings.Builder
	for _, t := range topics {
		b.WriteString(NormalItemStyle.Render("# " + t.Title))
		b.WriteString("\n  ")
		b.WriteString(MutedStyle.Render(fmt.Sprintf("%s discussions · %s",
			humanize.Comma(int64(t.DiscussionCount)), t.GrowthRate)))
		b.WriteString("\n")
	}
	return b.String()
}
