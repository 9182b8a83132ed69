package tui

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/dustin/go-humanize"
	"github.com/h0rv/ghbrowse/internal/domain"
	"github.com/muesli/reflow/truncate"
	"github.com/muesli/reflow/wordwrap"
)

// repoItem wraps a domain.Repository for use in bubbles/list.
type repoItem struct {
	repo domain.Repository
}

func (i repoItem) FilterValue() string { return i.repo.FullName() }

func (i repoItem) Title() string { return i.repo.FullName() }

// Meta returns the star, language and update line.
func (i repoItem) Meta() string {
	parts := []string{StarStyle.Render("★ " + humanize.Comma(int64(i.repo.Stars)))}
	if i.repo.Language != "" {
		parts = append(parts, i.repo.Language)
	}
	if !i.repo.UpdatedAt.IsZero() {
		parts = append(parts, "updated "+humanize.Time(i.repo.UpdatedAt))
	}
	return strings.Join(parts, MutedStyle.Render(" · "))
}

// repoDelegate renders a repository over three lines: name, description, meta.
type repoDelegate struct{}

func (d repoDelegate) Height() int                             { return 3 }
func (d repoDelegate) Spacing() int                            { return 1 }
func (d repoDelegate) Update(_ tea.Msg, _ *list.Model) tea.Cmd { return nil }
func (d repoDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	i, ok := item.(repoItem)
	if !ok {
		return
	}

	width := m.Width() - 4
	if width < 20 {
		width = 20
	}

	title := i.Title()
	if index == m.Index() {
		fmt.Fprint(w, SelectedItemStyle.Render("> "+title))
	} else {
		fmt.Fprint(w, NormalItemStyle.Render("  "+title))
	}
	fmt.Fprint(w, "\n  "+MutedStyle.Render(descriptionLine(i.repo.Description, width)))
	fmt.Fprint(w, "\n  "+i.Meta())
}

// descriptionLine wraps desc to width and keeps the first line, marking
// anything cut off with an ellipsis.
func descriptionLine(desc string, width int) string {
	desc = strings.TrimSpace(desc)
	if desc == "" {
		return "No description"
	}
	wrapped := wordwrap.String(desc, width)
	first, rest, _ := strings.Cut(wrapped, "\n")
	if strings.TrimSpace(rest) != "" {
		first += "…"
	}
	return truncate.StringWithTail(first, uint(width), "…")
}

// newRepoList creates an empty repository list.
func newRepoList(title string) list.Model {
	l := list.New(nil, repoDelegate{}, 80, 20)
	l.Title = title
	l.SetShowStatusBar(false)
	l.SetShowHelp(false)
	l.SetFilteringEnabled(false)
	l.DisableQuitKeybindings()
	l.Styles.Title = TitleStyle
	l.Styles.HelpStyle = HelpStyle
	return l
}

// repoItems converts repositories to list items, preserving order.
func repoItems(repos []domain.Repository) []list.Item {
	items := make([]list.Item, len(repos))
	for i, r := range repos {
		items[i] = repoItem{repo: r}
	}
	return items
}

// selectedRepo returns the repository under the cursor.
func selectedRepo(l list.Model) (domain.Repository, bool) {
	item, ok := l.SelectedItem().(repoItem)
	if !ok {
		return domain.Repository{}, false
	}
	return item.repo, true
}
