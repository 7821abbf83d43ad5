package tui

import (
	"context"
	"time"

	"swing-copilot/internal/domain"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// Screen selects between the auth prompt and the main tabbed surface.
type Screen int

const (
	ScreenAuth Screen = iota
	ScreenMain
)

// Tab represents a screen tab on the main surface.
type Tab int

const (
	TabAnalyze Tab = iota
	TabWatchlist
)

var tabNames = []string{"Analyze", "Watchlist"}

const defaultAuthReturnDelay = 3 * time.Second

// returnToAuthMsg fires after the revocation message has been readable for a
// moment.
type returnToAuthMsg struct{}

// loggedOutMsg follows a voluntary ctrl+l logout.
type loggedOutMsg struct{}

// AppModel is the root Bubble Tea model that gates the main surface behind
// the license prompt.
type AppModel struct {
	services  Services
	screen    Screen
	activeTab Tab
	auth      AuthModel
	analyze   AnalyzeModel
	watchlist WatchlistModel
	width     int
	height    int
	quitting  bool
}

// NewAppModel creates the root application model. A valid persisted
// credential skips the auth prompt.
func NewAppModel(svc Services) AppModel {
	screen := ScreenAuth
	if svc.License != nil && svc.License.State() == domain.CredentialValid {
		screen = ScreenMain
	}
	return AppModel{
		services:  svc,
		screen:    screen,
		auth:      NewAuthModel(svc),
		analyze:   NewAnalyzeModel(svc),
		watchlist: NewWatchlistModel(svc),
	}
}

// Init initializes the child models.
func (m AppModel) Init() tea.Cmd {
	return tea.Batch(m.auth.Init(), m.analyze.Init())
}

// Update handles incoming messages.
func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.propagateSize()
		return m, nil

	case activatedMsg:
		var cmd tea.Cmd
		m.auth, cmd = m.auth.Update(msg)
		m.analyze.ClearRevocation()
		m.screen = ScreenMain
		m.activeTab = TabAnalyze
		return m, cmd

	case activateErrMsg:
		var cmd tea.Cmd
		m.auth, cmd = m.auth.Update(msg)
		return m, cmd

	case credentialRevokedMsg:
		var cmd tea.Cmd
		m.analyze, cmd = m.analyze.Update(msg)
		return m, tea.Batch(cmd, m.returnToAuthCmd())

	case returnToAuthMsg:
		m.screen = ScreenAuth
		m.auth.SetNotice("License no longer valid. Enter a new license key.")
		return m, nil

	case loggedOutMsg:
		m.screen = ScreenAuth
		m.auth.SetNotice("License cleared. Enter a license key to continue.")
		return m, nil

	case selectSymbolMsg:
		m.analyze.SetSymbol(string(msg))
		m.activeTab = TabAnalyze
		return m, nil

	case analysisMsg, analysisErrMsg:
		var cmd tea.Cmd
		m.analyze, cmd = m.analyze.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, DefaultKeyMap.Quit):
			m.quitting = true
			return m, tea.Quit

		case m.screen == ScreenMain && key.Matches(msg, DefaultKeyMap.Tab):
			m.activeTab = Tab((int(m.activeTab) + 1) % len(tabNames))
			return m, nil

		case m.screen == ScreenMain && key.Matches(msg, DefaultKeyMap.ShiftTab):
			next := int(m.activeTab) - 1
			if next < 0 {
				next = len(tabNames) - 1
			}
			m.activeTab = Tab(next)
			return m, nil

		case m.screen == ScreenMain && key.Matches(msg, DefaultKeyMap.Logout):
			return m, m.logoutCmd()
		}
	}

	return m.routeToActive(msg)
}

// View renders the active screen.
func (m AppModel) View() string {
	if m.quitting {
		return "Goodbye!\n"
	}

	if m.screen == ScreenAuth {
		return m.auth.View()
	}

	var content string
	switch m.activeTab {
	case TabAnalyze:
		content = m.analyze.View()
	case TabWatchlist:
		content = m.watchlist.View()
	}

	return lipgloss.JoinVertical(lipgloss.Left, m.renderTabBar(), content)
}

// SetSize updates dimensions on the root model and propagates to children.
func (m *AppModel) SetSize(w, h int) {
	m.width = w
	m.height = h
	m.propagateSize()
}

// ActiveScreen returns the current screen (for testing).
func (m AppModel) ActiveScreen() Screen { return m.screen }

// ActiveTab returns the currently active tab (for testing).
func (m AppModel) ActiveTab() Tab { return m.activeTab }

// AnalyzeModel returns the analyze child model (for testing).
func (m AppModel) AnalyzeModel() AnalyzeModel { return m.analyze }

// AuthModel returns the auth child model (for testing).
func (m AppModel) AuthModel() AuthModel { return m.auth }

func (m AppModel) routeToActive(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	if m.screen == ScreenAuth {
		m.auth, cmd = m.auth.Update(msg)
		return m, cmd
	}

	switch m.activeTab {
	case TabAnalyze:
		m.analyze, cmd = m.analyze.Update(msg)
	case TabWatchlist:
		m.watchlist, cmd = m.watchlist.Update(msg)
	}
	return m, cmd
}

func (m AppModel) returnToAuthCmd() tea.Cmd {
	delay := m.services.AuthReturnDelay
	if delay <= 0 {
		delay = defaultAuthReturnDelay
	}
	return tea.Tick(delay, func(time.Time) tea.Msg {
		return returnToAuthMsg{}
	})
}

func (m AppModel) logoutCmd() tea.Cmd {
	return func() tea.Msg {
		_ = m.services.License.Revoke(context.Background())
		return loggedOutMsg{}
	}
}

func (m *AppModel) propagateSize() {
	contentHeight := m.height - 2 // account for tab bar
	m.auth.SetSize(m.width, m.height)
	m.analyze.SetSize(m.width, contentHeight)
	m.watchlist.SetSize(m.width, contentHeight)
}

func (m AppModel) renderTabBar() string {
	var tabs []string
	for i, name := range tabNames {
		if Tab(i) == m.activeTab {
			tabs = append(tabs, ActiveTabStyle.Render(name))
		} else {
			tabs = append(tabs, InactiveTabStyle.Render(name))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
}
