package tui

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/h0rv/ghbrowse/internal/store"
	"github.com/h0rv/ghbrowse/internal/uistate"
	"github.com/pkg/browser"
)

// Tab identifies a top-level screen.
type Tab int

const (
	TabHome Tab = iota
	TabSearch
	TabProfile
)

var tabNames = []string{"Home", "Search", "Profile"}

// String returns the tab label.
func (t Tab) String() string {
	if int(t) < len(tabNames) {
		return tabNames[t]
	}
	return fmt.Sprintf("Tab(%d)", int(t))
}

// Layout constants
const (
	headerHeight = 2
	footerHeight = 2
	topicsWidth  = 36
)

// Controllers are the view-state holders the screens render.
type Controllers struct {
	Home   *store.Home
	Search *store.Search
	User   *store.User
	Issue  *store.Issue
}

// AppModel is the root Bubble Tea model. It owns the tab bar and routes
// messages to the controllers and the active screen.
type AppModel struct {
	ctl    Controllers
	logger *slog.Logger

	keys    KeyMap
	help    HelpModel
	spinner spinner.Model

	tab      Tab
	showHelp bool
	status   string
	width    int
	height   int

	home    homeView
	search  searchView
	profile profileView
	dialog  issueDialog

	openURL func(url string) error
}

// NewAppModel creates the root model.
func NewAppModel(ctl Controllers, logger *slog.Logger) AppModel {
	if logger == nil {
		logger = slog.Default()
	}

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))

	keys := DefaultKeyMap()
	return AppModel{
		ctl:     ctl,
		logger:  logger,
		keys:    keys,
		help:    NewHelpModel(keys),
		spinner: sp,
		home:    newHomeView(),
		search:  newSearchView(),
		profile: newProfileView(),
		dialog:  newIssueDialog(),
		openURL: browser.OpenURL,
	}
}

// Init starts the home feed.
func (m AppModel) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.ctl.Home.Init(), tea.WindowSize())
}

// Update handles UI messages and forwards everything else to the controllers.
func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		return m.handleKey(msg)

	case toastExpiredMsg:
		m.ctl.Issue.ResetToast()
		return m, nil

	case browserOpenedMsg:
		if msg.err != nil {
			m.logger.Warn("failed to open browser", slog.String("url", msg.url), slog.String("error", msg.err.Error()))
			m.status = "could not open browser: " + msg.err.Error()
		}
		return m, nil
	}

	return m.dispatch(msg)
}

// dispatch feeds msg to every controller, then refreshes the lists and
// chains follow-up work.
func (m AppModel) dispatch(msg tea.Msg) (tea.Model, tea.Cmd) {
	cmds := []tea.Cmd{
		m.ctl.Home.Update(msg),
		m.ctl.Search.Update(msg),
		m.ctl.User.Update(msg),
		m.ctl.Issue.Update(msg),
	}

	switch msg := msg.(type) {
	case store.HotReposLoadedMsg:
		m.home.list.SetItems(repoItems(listData(m.ctl.Home.HotRepos())))

	case store.SearchResultMsg:
		m.search.list.SetItems(repoItems(listData(m.ctl.Search.Results())))

	case store.UserReposLoadedMsg:
		m.profile.list.SetItems(repoItems(listData(m.ctl.User.Repositories())))

	case store.LoginResultMsg:
		if msg.Err == nil && m.ctl.User.CurrentUser() != nil {
			m.profile.resetForm()
			cmds = append(cmds, m.ctl.User.LoadRepositories(), m.ctl.User.LoadRateLimit())
		}

	case store.IssueCreatedMsg:
		if m.ctl.Issue.ShowSuccessToast() {
			m.dialog.reset()
			cmds = append(cmds, tea.Tick(ToastDuration, func(time.Time) tea.Msg {
				return toastExpiredMsg{}
			}))
		}
	}

	if m.dialog.open && !m.ctl.Issue.DialogOpen() {
		m.dialog.reset()
	}
	return m, tea.Batch(cmds...)
}

// handleKey routes a key press to the dialog, a focused input or the tab.
func (m AppModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.ForceQuit) {
		return m, tea.Quit
	}

	if m.ctl.Issue.DialogOpen() {
		return m.updateDialog(msg)
	}

	if !m.typing() {
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, m.keys.Help):
			m.showHelp = !m.showHelp
			return m, nil
		}
	}

	switch {
	case key.Matches(msg, m.keys.NextTab):
		return m.switchTab((m.tab + 1) % Tab(len(tabNames)))
	case key.Matches(msg, m.keys.PrevTab):
		return m.switchTab((m.tab + Tab(len(tabNames)) - 1) % Tab(len(tabNames)))
	}

	m.status = ""
	switch m.tab {
	case TabHome:
		return m.updateHome(msg)
	case TabSearch:
		return m.updateSearch(msg)
	case TabProfile:
		return m.updateProfile(msg)
	}
	return m, nil
}

// typing reports whether key presses go to a text input.
func (m AppModel) typing() bool {
	switch m.tab {
	case TabSearch:
		return m.search.input.Focused()
	case TabProfile:
		return m.ctl.User.CurrentUser() == nil
	}
	return false
}

// switchTab activates t. Entering the profile reloads the cached user and,
// when someone is logged in, their repositories and quota.
func (m AppModel) switchTab(t Tab) (tea.Model, tea.Cmd) {
	m.tab = t
	m.status = ""

	switch t {
	case TabSearch:
		cmd := m.search.input.Focus()
		return m, cmd

	case TabProfile:
		m.search.input.Blur()
		m.ctl.User.ReloadUser()
		if m.ctl.User.CurrentUser() == nil {
			cmd := m.profile.focusForm()
			return m, cmd
		}
		return m, tea.Batch(m.ctl.User.LoadRepositories(), m.ctl.User.LoadRateLimit())
	}

	m.search.input.Blur()
	return m, nil
}

// open returns a command opening url in the browser.
func (m AppModel) open(url string) tea.Cmd {
	if url == "" {
		return nil
	}
	openURL := m.openURL
	return func() tea.Msg {
		return browserOpenedMsg{url: url, err: openURL(url)}
	}
}

// resize lays out every screen for a w x h terminal.
func (m *AppModel) resize(w, h int) {
	m.width, m.height = w, h

	bodyHeight := h - headerHeight - footerHeight
	if bodyHeight < 6 {
		bodyHeight = 6
	}

	homeWidth := w
	if w >= 2*topicsWidth {
		homeWidth = w - topicsWidth - 2
	}
	m.home.list.SetSize(homeWidth, bodyHeight)
	m.search.list.SetSize(w, bodyHeight-2)
	m.search.input.Width = w - 12
	m.profile.list.SetSize(w, bodyHeight-6)
	m.dialog.resize(w)
}

// View renders the tab bar, the active screen and the footer.
func (m AppModel) View() string {
	var body string
	switch m.tab {
	case TabHome:
		body = m.homeView()
	case TabSearch:
		body = m.searchView()
	case TabProfile:
		body = m.profileView()
	}

	if m.showHelp {
		body = m.help.View(m.width)
	}

	return lipgloss.JoinVertical(lipgloss.Left, m.tabBar(), body, m.footer())
}

func (m AppModel) tabBar() string {
	tabs := make([]string, len(tabNames))
	for i, name := range tabNames {
		if Tab(i) == m.tab {
			tabs[i] = ActiveTabStyle.Render(name)
		} else {
			tabs[i] = TabStyle.Render(name)
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, tabs...) + "\n"
}

func (m AppModel) footer() string {
	var parts []string
	if m.status != "" {
		parts = append(parts, ErrorStyle.Render(m.status))
	}
	parts = append(parts, HelpStyle.Render(m.footerHint()))
	return strings.Join(parts, "  ")
}

func (m AppModel) footerHint() string {
	switch {
	case m.ctl.Issue.DialogOpen():
		return "ctrl+n: next field • ctrl+s: submit • esc: cancel"
	case m.typing():
		return "tab: next tab • esc: stop typing • ctrl+c: quit"
	}
	return "tab: next tab • o: open • r: refresh • ?: help • q: quit"
}

// renderState renders the non-success states of a slot, delegating Success
// to success.
func renderState[T any](s uistate.State[T], sp spinner.Model, what string, success func(T) string) string {
	switch s.Kind() {
	case uistate.KindLoading:
		return sp.View() + " Loading " + what + "..."
	case uistate.KindEmpty:
		return MutedStyle.Render("No " + what + " found.")
	case uistate.KindError:
		return ErrorStyle.Render("Error: "+s.Message()) + "\n" + MutedStyle.Render("Press r to retry.")
	case uistate.KindSuccess:
		data, _ := s.Data()
		return success(data)
	}
	return ""
}

// listData returns the slice held by a Success slot, or nil.
func listData[E any](s uistate.State[[]E]) []E {
	data, _ := s.Data()
	return data
}
