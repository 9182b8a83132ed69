package tui

import (
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/h0rv/ghbrowse/internal/domain"
)

// searchView is the search-as-you-type screen.
type searchView struct {
	input textinput.Model
	list  list.Model
}

func newSearchView() searchView {
	ti := textinput.New()
	ti.Placeholder = "Language, e.g. go"
	ti.Prompt = "Search: "
	ti.CharLimit = 100
	ti.Width = 40

	return searchView{
		input: ti,
		list:  newRepoList("Results"),
	}
}

func (m AppModel) updateSearch(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.search.input.Focused() {
		switch msg.String() {
		case "esc", "enter", "down":
			m.search.input.Blur()
			return m, nil
		}

		before := m.search.input.Value()
		var cmd tea.Cmd
		m.search.input, cmd = m.search.input.Update(msg)
		if after := m.search.input.Value(); after != before {
			return m, tea.Batch(cmd, m.ctl.Search.SetQuery(after))
		}
		return m, cmd
	}

	switch {
	case key.Matches(msg, m.keys.Search):
		cmd := m.search.input.Focus()
		return m, cmd
	case key.Matches(msg, m.keys.Retry):
		return m, m.ctl.Search.Retry()
	case key.Matches(msg, m.keys.Open):
		if repo, ok := selectedRepo(m.search.list); ok && m.ctl.Search.Results().IsSuccess() {
			return m, m.open(repo.URL)
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.search.list, cmd = m.search.list.Update(msg)
	return m, cmd
}

func (m AppModel) searchView() string {
	results := renderState(m.ctl.Search.Results(), m.spinner, "repositories", func([]domain.Repository) string {
		return m.search.list.View()
	})
	if m.ctl.Search.Results().IsIdle() {
		results = MutedStyle.Render("Type a language to search repositories, most starred first.")
	}
	return PromptStyle.Render(m.search.input.View()) + "\n" + results
}
