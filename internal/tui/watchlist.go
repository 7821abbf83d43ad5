package tui

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
)

// selectSymbolMsg asks the app to hand a watchlist symbol to the analyze
// screen.
type selectSymbolMsg string

// WatchlistModel is the Bubble Tea model for the static watchlist screen.
type WatchlistModel struct {
	symbols []string
	cursor  int
	width   int
	height  int
}

// NewWatchlistModel creates the watchlist screen.
func NewWatchlistModel(svc Services) WatchlistModel {
	return WatchlistModel{symbols: svc.Watchlist}
}

// Init is a no-op; the watchlist is static.
func (m WatchlistModel) Init() tea.Cmd {
	return nil
}

// Update handles incoming messages.
func (m WatchlistModel) Update(msg tea.Msg) (WatchlistModel, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok || len(m.symbols) == 0 {
		return m, nil
	}

	switch keyMsg.String() {
	case "j", "down":
		if m.cursor < len(m.symbols)-1 {
			m.cursor++
		}
	case "k", "up":
		if m.cursor > 0 {
			m.cursor--
		}
	case "enter":
		symbol := m.symbols[m.cursor]
		return m, func() tea.Msg { return selectSymbolMsg(symbol) }
	}
	return m, nil
}

// View renders the watchlist.
func (m WatchlistModel) View() string {
	var sections []string
	sections = append(sections, HeaderStyle.Render("  Watchlist"))
	sections = append(sections, "")

	if len(m.symbols) == 0 {
		sections = append(sections, SubtextStyle.Render("  Watchlist is empty"))
		return strings.Join(sections, "\n")
	}

	for i, symbol := range m.symbols {
		if i == m.cursor {
			sections = append(sections, ActiveTabStyle.Render(symbol))
			continue
		}
		sections = append(sections, "  "+symbol)
	}

	sections = append(sections, "")
	sections = append(sections, SubtextStyle.Render("  [j/k] move  [enter] analyze  [tab] back"))
	return strings.Join(sections, "\n")
}

// SetSize updates the model dimensions.
func (m *WatchlistModel) SetSize(w, h int) {
	m.width = w
	m.height = h
}

// Cursor returns the highlighted index (for testing).
func (m WatchlistModel) Cursor() int { return m.cursor }
