package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// Auth message types.
type activatedMsg struct{}
type activateErrMsg struct{ err error }

// AuthModel is the Bubble Tea model for the license activation screen.
type AuthModel struct {
	services  Services
	input     textinput.Model
	spinner   spinner.Model
	verifying bool
	errText   string
	notice    string
	width     int
	height    int
}

// NewAuthModel creates the license prompt screen.
func NewAuthModel(svc Services) AuthModel {
	ti := textinput.New()
	ti.Placeholder = "PRO-XXXXXX-YYYYYY"
	ti.CharLimit = 17
	ti.Width = 24
	ti.Focus()

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(SpinnerColor)

	return AuthModel{
		services: svc,
		input:    ti,
		spinner:  sp,
	}
}

// Init starts the input cursor blink.
func (m AuthModel) Init() tea.Cmd {
	return textinput.Blink
}

// SetNotice shows a one-shot message above the prompt (e.g. after a
// revocation) and clears any stale input.
func (m *AuthModel) SetNotice(text string) {
	m.notice = text
	m.errText = ""
	m.verifying = false
	m.input.SetValue("")
	m.input.Focus()
}

// Update handles incoming messages.
func (m AuthModel) Update(msg tea.Msg) (AuthModel, tea.Cmd) {
	switch msg := msg.(type) {
	case activatedMsg:
		m.verifying = false
		m.errText = ""
		return m, nil

	case activateErrMsg:
		m.verifying = false
		m.errText = msg.err.Error()
		return m, nil

	case spinner.TickMsg:
		if !m.verifying {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		if m.verifying {
			return m, nil
		}
		if msg.Type == tea.KeyEnter {
			candidate := strings.TrimSpace(m.input.Value())
			if candidate == "" {
				return m, nil
			}
			m.verifying = true
			m.errText = ""
			m.notice = ""
			return m, tea.Batch(m.spinner.Tick, m.activateCmd(candidate))
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// View renders the activation prompt.
func (m AuthModel) View() string {
	var sections []string

	sections = append(sections, "")
	sections = append(sections, HeaderStyle.Render("  Swing Trading Copilot"))
	sections = append(sections, SubtextStyle.Render("  Enter your license key to begin"))
	sections = append(sections, "")

	if m.notice != "" {
		sections = append(sections, NoticeStyle.Render("  "+m.notice))
		sections = append(sections, "")
	}

	sections = append(sections, "  "+m.input.View())
	sections = append(sections, "")

	if m.verifying {
		sections = append(sections, fmt.Sprintf("  %s Verifying license...", m.spinner.View()))
	} else if m.errText != "" {
		sections = append(sections, ErrorStyle.Render("  "+m.errText))
	}

	sections = append(sections, "")
	sections = append(sections, SubtextStyle.Render("  [enter] activate  [ctrl+c] quit"))

	return strings.Join(sections, "\n")
}

// SetSize updates the model dimensions.
func (m *AuthModel) SetSize(w, h int) {
	m.width = w
	m.height = h
}

// Verifying reports whether an activation probe is in flight (for testing).
func (m AuthModel) Verifying() bool { return m.verifying }

// ErrText returns the current error line (for testing).
func (m AuthModel) ErrText() string { return m.errText }

func (m AuthModel) activateCmd(candidate string) tea.Cmd {
	return func() tea.Msg {
		if err := m.services.License.Activate(context.Background(), candidate); err != nil {
			return activateErrMsg{err: err}
		}
		return activatedMsg{}
	}
}
