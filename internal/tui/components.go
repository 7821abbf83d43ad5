package tui

import (
	"fmt"
	"strings"
	"time"

	"swing-copilot/internal/domain"
)

const gaugeWidth = 25

// renderResult renders the full verdict dashboard for a resolved result.
func renderResult(r *domain.AnalysisResult, width int) string {
	var sections []string

	badge := VerdictStyle(r.Verdict).Render(r.Verdict.String())
	sections = append(sections, fmt.Sprintf("  %s  %s  $%.2f",
		HeaderStyle.Render(r.Symbol), badge, r.Price))
	sections = append(sections, "")

	sections = append(sections, "  Score  "+FormatGauge(r.Score, r.Band))
	sections = append(sections, "")

	sections = append(sections, renderBreakdown(r.Breakdown)...)
	sections = append(sections, "")

	sections = append(sections, renderSetup(r.Setup)...)
	sections = append(sections, "")

	sections = append(sections, renderNarrative(r.Narrative)...)

	if len(r.News) > 0 {
		sections = append(sections, "")
		sections = append(sections, renderNews(r.News)...)
	}

	return strings.Join(sections, "\n")
}

// FormatGauge renders the score as a colored bar with its numeric value.
func FormatGauge(score int, band domain.ScoreBand) string {
	filled := score * gaugeWidth / 100
	if filled > gaugeWidth {
		filled = gaugeWidth
	}
	bar := strings.Repeat("█", filled) + strings.Repeat("░", gaugeWidth-filled)
	return fmt.Sprintf("%s %d/100", GaugeStyle(band).Render(bar), score)
}

func renderBreakdown(b domain.Breakdown) []string {
	return []string{
		"  " + formatComponent("Technicals", b.Technicals, domain.MaxTechnicals),
		"  " + formatComponent("Market regime", b.MarketRegime, domain.MaxMarketRegime),
		"  " + formatComponent("Rel. strength", b.RelStrength, domain.MaxRelStrength),
		"  " + formatComponent("AI sentiment", b.AiSentiment, domain.MaxAiSentiment),
	}
}

func formatComponent(label string, points, max int) string {
	const barWidth = 10
	filled := 0
	if max > 0 {
		filled = points * barWidth / max
	}
	if filled < 0 {
		filled = 0
	}
	if filled > barWidth {
		filled = barWidth
	}
	bar := strings.Repeat("█", filled) + strings.Repeat("░", barWidth-filled)
	return fmt.Sprintf("%-14s %s %2d/%d", label, SubtextStyle.Render(bar), points, max)
}

func renderSetup(s domain.TradeSetup) []string {
	lines := []string{
		"  " + FormatZone(s),
	}
	if s.EntryLow > 0 && s.EntryHigh > 0 {
		lines = append(lines, fmt.Sprintf("  Entry zone     $%.2f - $%.2f", s.EntryLow, s.EntryHigh))
	}
	lines = append(lines, fmt.Sprintf("  Stop loss      $%.2f", s.Stop))
	lines = append(lines, fmt.Sprintf("  Target (safe)  $%.2f (+%.1f%%)  %d%% est. win", s.TargetSafe, s.TargetSafePct, s.ProbSafe))

	aggro := fmt.Sprintf("  Target (aggro) $%.2f (+%.1f%%)  %d%% est. win", s.TargetAggro, s.TargetAggroPct, s.ProbAggro)
	if s.AggroLowProbability {
		aggro += "  " + WarningStyle.Render("low probability")
	}
	lines = append(lines, aggro)

	if s.RecommendSafe {
		lines = append(lines, SubtextStyle.Render("  Recommendation: take the safe target"))
	} else {
		lines = append(lines, WarningStyle.Render("  Recommendation: caution, win odds are below the usual bar"))
	}
	return lines
}

// FormatZone renders the entry-zone status line.
func FormatZone(s domain.TradeSetup) string {
	switch s.ZoneStatus {
	case domain.ZoneInRange:
		return ZoneInStyle.Render("IN ZONE") + "  price is inside the ideal entry range"
	case domain.ZoneAboveRange:
		return ZoneWaitStyle.Render("WAIT FOR DIP") + fmt.Sprintf("  ~%.2f%% above ideal range", s.PctAboveZone)
	case domain.ZoneBelowRange:
		return ZoneBelowStyle.Render("BELOW ZONE") + "  caution: verify the trend before entering"
	default:
		return SubtextStyle.Render("ENTRY ZONE PENDING") + "  not enough data to place the price"
	}
}

func renderNarrative(n domain.Narrative) []string {
	return []string{
		"  " + HeaderStyle.Render("Summary") + "   " + n.Summary,
		"  " + HeaderStyle.Render("Strength") + "  " + n.Strength,
		"  " + HeaderStyle.Render("Risk") + "      " + n.Risk,
	}
}

func renderNews(items []domain.NewsItem) []string {
	lines := []string{"  " + HeaderStyle.Render("News")}
	for _, item := range items {
		lines = append(lines, fmt.Sprintf("  • %s  %s",
			item.Title,
			SubtextStyle.Render(fmt.Sprintf("(%s, %s)", item.Source, relativeAge(item.PublishedAt))),
		))
	}
	return lines
}

func relativeAge(t time.Time) string {
	if t.IsZero() {
		return "recently"
	}
	age := time.Since(t)
	switch {
	case age < time.Hour:
		return fmt.Sprintf("%dm ago", int(age.Minutes()))
	case age < 24*time.Hour:
		return fmt.Sprintf("%dh ago", int(age.Hours()))
	default:
		return fmt.Sprintf("%dd ago", int(age.Hours()/24))
	}
}
