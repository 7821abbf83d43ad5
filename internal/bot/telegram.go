package bot

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"swing-copilot/internal/domain"

	tele "gopkg.in/telebot.v3"
)

type LicenseStater interface {
	State() domain.CredentialState
}

type AnalysisRunner interface {
	Analyze(ctx context.Context, symbol string, wantsAiSummary bool) (*domain.AnalysisResult, error)
}

// StartTelegramBot exposes the analyzer over Telegram. It reuses the same
// gate and controller as the TUI, so revocations behave identically.
func StartTelegramBot(token string, gate LicenseStater, analyzer AnalysisRunner) *tele.Bot {
	if token == "" {
		log.Println("TELEGRAM_BOT_TOKEN not set, skipping Telegram bot startup")
		return nil
	}
	pref := tele.Settings{
		Token:  token,
		Poller: &tele.LongPoller{Timeout: 10 * time.Second},
	}
	b, err := tele.NewBot(pref)
	if err != nil {
		log.Fatalf("failed to create Telegram bot: %v", err)
	}

	b.Handle("/ping", func(c tele.Context) error {
		return c.Send("pong")
	})

	b.Handle("/license", func(c tele.Context) error {
		return c.Send(fmt.Sprintf("License state: %s", gate.State()))
	})

	b.Handle("/analyze", func(c tele.Context) error {
		symbol, useAI, err := ParseAnalyzeArgs(c.Args())
		if err != nil {
			return c.Send("Usage: /analyze AAPL [noai]")
		}

		result, err := analyzer.Analyze(context.Background(), symbol, useAI)
		if err != nil {
			return c.Send(fmt.Sprintf("Analysis failed: %v", err))
		}
		return c.Send(FormatResult(result))
	})

	go b.Start()
	log.Println("Telegram bot started")
	return b
}

// ParseAnalyzeArgs extracts the symbol and AI flag from /analyze arguments.
func ParseAnalyzeArgs(args []string) (symbol string, useAI bool, err error) {
	if len(args) == 0 {
		return "", false, fmt.Errorf("missing symbol")
	}
	useAI = true
	for _, arg := range args[1:] {
		if strings.EqualFold(strings.TrimSpace(arg), "noai") {
			useAI = false
		}
	}
	return args[0], useAI, nil
}

// FormatResult renders a resolved analysis as a plain-text Telegram message.
func FormatResult(r *domain.AnalysisResult) string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "%s: %s\n", r.Symbol, r.Verdict)
	fmt.Fprintf(&sb, "Price: $%.2f | Score: %d/100\n", r.Price, r.Score)
	fmt.Fprintf(&sb, "Technicals %d/%d, Regime %d/%d, Rel.Str %d/%d, AI %d/%d\n",
		r.Breakdown.Technicals, domain.MaxTechnicals,
		r.Breakdown.MarketRegime, domain.MaxMarketRegime,
		r.Breakdown.RelStrength, domain.MaxRelStrength,
		r.Breakdown.AiSentiment, domain.MaxAiSentiment,
	)

	switch r.Setup.ZoneStatus {
	case domain.ZoneInRange:
		sb.WriteString("Entry: IN ZONE\n")
	case domain.ZoneAboveRange:
		fmt.Fprintf(&sb, "Entry: wait for dip (~%.2f%% above range)\n", r.Setup.PctAboveZone)
	case domain.ZoneBelowRange:
		sb.WriteString("Entry: below zone, verify trend\n")
	default:
		sb.WriteString("Entry: pending more data\n")
	}

	fmt.Fprintf(&sb, "Stop $%.2f | Safe $%.2f (+%.1f%%, %d%%) | Aggro $%.2f (+%.1f%%, %d%%)",
		r.Setup.Stop,
		r.Setup.TargetSafe, r.Setup.TargetSafePct, r.Setup.ProbSafe,
		r.Setup.TargetAggro, r.Setup.TargetAggroPct, r.Setup.ProbAggro,
	)
	if r.Setup.AggroLowProbability {
		sb.WriteString(" [low prob]")
	}
	sb.WriteString("\n")

	fmt.Fprintf(&sb, "Summary: %s\nRisk: %s", r.Narrative.Summary, r.Narrative.Risk)

	if r.Warning != "" {
		fmt.Fprintf(&sb, "\n⚠ %s", r.Warning)
	}
	return sb.String()
}
