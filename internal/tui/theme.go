package tui

import (
	"swing-copilot/internal/domain"

	"github.com/charmbracelet/lipgloss"
)

var (
	// Tab bar styles
	TabStyle       = lipgloss.NewStyle().Padding(0, 2)
	ActiveTabStyle = TabStyle.Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4"))
	InactiveTabStyle = TabStyle.
				Foreground(lipgloss.Color("#888888"))

	// Verdict badge styles
	BadgeStrongBuyStyle = lipgloss.NewStyle().Bold(true).
				Foreground(lipgloss.Color("#000000")).
				Background(lipgloss.Color("#00FF00")).Padding(0, 1)
	BadgeBuyStyle = lipgloss.NewStyle().Bold(true).
			Foreground(lipgloss.Color("#00FF00")).Padding(0, 1)
	BadgeHoldStyle = lipgloss.NewStyle().Bold(true).
			Foreground(lipgloss.Color("#FFFF00")).Padding(0, 1)
	BadgeAvoidStyle = lipgloss.NewStyle().Bold(true).
			Foreground(lipgloss.Color("#FF8800")).Padding(0, 1)
	BadgeStrongSellStyle = lipgloss.NewStyle().Bold(true).
				Foreground(lipgloss.Color("#FAFAFA")).
				Background(lipgloss.Color("#FF0000")).Padding(0, 1)
	BadgePlainStyle = lipgloss.NewStyle().Padding(0, 1)

	// Score gauge colors
	GaugeLowStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF0000"))
	GaugeMidStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#FFBB00"))
	GaugeHighStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#00FF00"))

	// Entry zone styles
	ZoneInStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#00FF00")).Bold(true)
	ZoneWaitStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#FFBB00")).Bold(true)
	ZoneBelowStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF8800"))

	// General styles
	HeaderStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#FAFAFA"))
	SubtextStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#888888"))
	BorderStyle  = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("#555555"))
	ErrorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF0000"))
	NoticeStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#FFBB00"))
	SpinnerColor = lipgloss.Color("#7D56F4")

	WarningStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF8800"))
)

// VerdictStyle returns the badge style for a classified verdict. An
// unclassified verdict renders without badge styling.
func VerdictStyle(v domain.Verdict) lipgloss.Style {
	switch v {
	case domain.VerdictStrongBuy:
		return BadgeStrongBuyStyle
	case domain.VerdictBuy:
		return BadgeBuyStyle
	case domain.VerdictHold:
		return BadgeHoldStyle
	case domain.VerdictAvoid:
		return BadgeAvoidStyle
	case domain.VerdictStrongSell:
		return BadgeStrongSellStyle
	default:
		return BadgePlainStyle
	}
}

// GaugeStyle returns the color style for a score band.
func GaugeStyle(band domain.ScoreBand) lipgloss.Style {
	switch band {
	case domain.BandHigh:
		return GaugeHighStyle
	case domain.BandMid:
		return GaugeMidStyle
	default:
		return GaugeLowStyle
	}
}
