package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"swing-copilot/internal/domain"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// Analyze message types.
type analysisMsg *domain.AnalysisResult
type analysisErrMsg struct{ err error }

// credentialRevokedMsg is emitted when the server rejects the stored
// credential mid-use; the app shows the message, then returns to auth.
type credentialRevokedMsg struct{ message string }

// AnalyzeModel is the Bubble Tea model for the analysis screen.
type AnalyzeModel struct {
	services Services
	input    textinput.Model
	spinner  spinner.Model
	aiOn     bool
	waiting  bool
	result   *domain.AnalysisResult
	errText  string
	revoked  string
	width    int
	height   int
}

// NewAnalyzeModel creates the analysis screen.
func NewAnalyzeModel(svc Services) AnalyzeModel {
	ti := textinput.New()
	ti.Placeholder = "AAPL"
	ti.CharLimit = 6
	ti.Width = 10
	ti.Focus()

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(SpinnerColor)

	return AnalyzeModel{
		services: svc,
		input:    ti,
		spinner:  sp,
		aiOn:     true,
	}
}

// Init starts the input cursor blink.
func (m AnalyzeModel) Init() tea.Cmd {
	return textinput.Blink
}

// ClearRevocation drops the revocation banner, so that a re-activated
// session starts from a clean analyze screen.
func (m *AnalyzeModel) ClearRevocation() {
	m.revoked = ""
}

// SetSymbol pre-fills the ticker input (watchlist hand-off).
func (m *AnalyzeModel) SetSymbol(symbol string) {
	m.input.SetValue(symbol)
	m.input.CursorEnd()
}

// Update handles incoming messages.
func (m AnalyzeModel) Update(msg tea.Msg) (AnalyzeModel, tea.Cmd) {
	switch msg := msg.(type) {
	case analysisMsg:
		m.waiting = false
		m.result = (*domain.AnalysisResult)(msg)
		m.errText = ""
		m.revoked = ""
		return m, nil

	case analysisErrMsg:
		m.waiting = false
		m.errText = msg.err.Error()
		m.revoked = ""
		return m, nil

	case credentialRevokedMsg:
		m.waiting = false
		m.result = nil
		m.revoked = msg.message
		return m, nil

	case spinner.TickMsg:
		if !m.waiting {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, DefaultKeyMap.ToggleAI):
			m.aiOn = !m.aiOn
			return m, nil

		case msg.Type == tea.KeyEnter:
			// The trigger is disabled while a request is in flight;
			// duplicates are dropped, not queued.
			if m.waiting {
				return m, nil
			}
			raw := strings.TrimSpace(m.input.Value())
			if raw == "" {
				return m, nil
			}
			m.waiting = true
			m.errText = ""
			m.revoked = ""
			return m, tea.Batch(m.spinner.Tick, m.runAnalysisCmd(raw, m.aiOn))
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// View renders the analysis screen.
func (m AnalyzeModel) View() string {
	var sections []string

	aiLabel := "on"
	if !m.aiOn {
		aiLabel = "off"
	}
	sections = append(sections, fmt.Sprintf("  Ticker: %s   %s",
		m.input.View(),
		SubtextStyle.Render(fmt.Sprintf("AI summary: %s (ctrl+a)", aiLabel)),
	))
	sections = append(sections, "")

	switch {
	case m.revoked != "":
		sections = append(sections, ErrorStyle.Render("  "+m.revoked))
		sections = append(sections, SubtextStyle.Render("  Returning to license entry..."))

	case m.waiting:
		sections = append(sections, fmt.Sprintf("  %s Analyzing...", m.spinner.View()))

	case m.errText != "":
		sections = append(sections, ErrorStyle.Render("  "+m.errText))

	case m.result != nil:
		sections = append(sections, renderResult(m.result, m.width))

	default:
		sections = append(sections, SubtextStyle.Render("  Enter a ticker and press enter"))
	}

	sections = append(sections, "")
	sections = append(sections, SubtextStyle.Render("  [enter] analyze  [ctrl+a] AI  [tab] watchlist  [ctrl+l] forget license  [ctrl+c] quit"))

	return strings.Join(sections, "\n")
}

// SetSize updates the model dimensions.
func (m *AnalyzeModel) SetSize(w, h int) {
	m.width = w
	m.height = h
}

// Waiting reports whether an analysis is in flight (for testing).
func (m AnalyzeModel) Waiting() bool { return m.waiting }

// Result returns the last resolved result (for testing).
func (m AnalyzeModel) Result() *domain.AnalysisResult { return m.result }

// ErrText returns the current error line (for testing).
func (m AnalyzeModel) ErrText() string { return m.errText }

// AiEnabled reports the AI toggle state (for testing).
func (m AnalyzeModel) AiEnabled() bool { return m.aiOn }

func (m AnalyzeModel) runAnalysisCmd(rawSymbol string, useAI bool) tea.Cmd {
	return func() tea.Msg {
		result, err := m.services.Analysis.Analyze(context.Background(), rawSymbol, useAI)
		if err != nil {
			var rejected *domain.CredentialRejectedError
			if errors.As(err, &rejected) {
				return credentialRevokedMsg{message: rejected.Error()}
			}
			return analysisErrMsg{err: err}
		}
		return analysisMsg(result)
	}
}
