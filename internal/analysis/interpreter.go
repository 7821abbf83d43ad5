package analysis

import (
	"fmt"
	"strings"
	"time"

	"swing-copilot/internal/domain"
)

const (
	defaultSafeTargetMult  = 1.04
	defaultSafeTargetPct   = 4.0
	defaultAggroTargetMult = 1.10
	defaultAggroTargetPct  = 10.0
	defaultStopMult        = 0.92
	defaultProbSafe        = 75
	defaultProbAggro       = 40

	lowProbAggroThreshold  = 30
	recommendSafeThreshold = 70

	bandMidFloor  = 40
	bandHighFloor = 70
)

// Fixed fallback texts for the narrative chains.
const (
	summaryPending   = "AI analysis in progress. Technical read shown below."
	strengthFallback = "Technical conditions are favorable for a swing entry."
	riskFallback     = "No outsized risks flagged. Monitor the position daily."
	warningPrefix    = "⚠ "
	unknownPublisher = "Unknown"
)

// Upstream texts that mean "no real AI output"; they must not be rendered
// as if they were analysis.
var aiPlaceholders = map[string]struct{}{
	"AI analysis disabled":      {},
	"N/A":                       {},
	"Sentiment analysis failed": {},
}

// Interpret resolves a raw scoring payload into the presentation model.
// Every optional field defaults; only a missing ticker, price or score is an
// error.
func Interpret(payload *domain.AnalysisPayload) (*domain.AnalysisResult, error) {
	if payload == nil || strings.TrimSpace(payload.Ticker) == "" {
		return nil, &domain.MalformedPayloadError{Field: "ticker"}
	}
	if payload.CurrentPrice == nil || *payload.CurrentPrice <= 0 {
		return nil, &domain.MalformedPayloadError{Field: "current_price"}
	}
	if payload.Score == nil {
		return nil, &domain.MalformedPayloadError{Field: "score"}
	}

	price := *payload.CurrentPrice
	score := clamp(*payload.Score, 0, 100)

	result := &domain.AnalysisResult{
		Symbol:    strings.ToUpper(strings.TrimSpace(payload.Ticker)),
		Price:     price,
		Score:     score,
		Verdict:   ClassifyVerdict(payload.Verdict),
		Band:      Band(score),
		Breakdown: resolveBreakdown(payload.Breakdown),
		Setup:     resolveSetup(price, payload.TradeSetup),
		Narrative: resolveNarrative(payload),
		News:      resolveNews(payload.News),
		Warning:   payload.Warning,
	}
	return result, nil
}

// ClassifyVerdict matches the raw verdict text case-insensitively, most
// specific phrase first: "strong buy" contains "buy" and must win.
func ClassifyVerdict(raw string) domain.Verdict {
	v := strings.ToLower(raw)
	switch {
	case strings.Contains(v, "strong buy"):
		return domain.VerdictStrongBuy
	case strings.Contains(v, "buy"):
		return domain.VerdictBuy
	case strings.Contains(v, "hold"):
		return domain.VerdictHold
	case strings.Contains(v, "avoid"), strings.Contains(v, "weakness"):
		return domain.VerdictAvoid
	case strings.Contains(v, "strong sell"), strings.Contains(v, "sell"):
		return domain.VerdictStrongSell
	default:
		return domain.VerdictUnclassified
	}
}

// Band maps the final score to the gauge color band.
func Band(score int) domain.ScoreBand {
	switch {
	case score < bandMidFloor:
		return domain.BandLow
	case score < bandHighFloor:
		return domain.BandMid
	default:
		return domain.BandHigh
	}
}

func resolveBreakdown(b *domain.BreakdownPayload) domain.Breakdown {
	if b == nil {
		return domain.Breakdown{}
	}
	return domain.Breakdown{
		Technicals:   intOrZero(b.Technicals),
		MarketRegime: intOrZero(b.MarketRegime),
		RelStrength:  intOrZero(b.RelStrength),
		AiSentiment:  intOrZero(b.AiSentiment),
	}
}

func resolveSetup(price float64, ts *domain.TradeSetupPayload) domain.TradeSetup {
	if ts == nil {
		ts = &domain.TradeSetupPayload{}
	}

	setup := domain.TradeSetup{
		EntryLow:            floatOrZero(ts.BuyMin),
		EntryHigh:           floatOrZero(ts.BuyMax),
		Stop:                floatOr(ts.SellStop, price*defaultStopMult),
		TargetSafe:          floatOr(ts.TargetSafe, price*defaultSafeTargetMult),
		TargetSafePct:       floatOr(ts.TargetSafePct, defaultSafeTargetPct),
		TargetAggro:         floatOr(ts.TargetAggro, price*defaultAggroTargetMult),
		TargetAggroPct:      floatOr(ts.TargetAggroPct, defaultAggroTargetPct),
		ProbSafe:            intOr(ts.ProbSafe, defaultProbSafe),
		ProbAggro:           intOr(ts.ProbAggro, defaultProbAggro),
		VolatilitySupported: boolOr(ts.VolatilitySupported, true),
	}

	setup.AggroLowProbability = !setup.VolatilitySupported || setup.ProbAggro < lowProbAggroThreshold
	setup.RecommendSafe = setup.ProbSafe >= recommendSafeThreshold
	setup.ZoneStatus, setup.PctAboveZone = classifyZone(price, setup.EntryLow, setup.EntryHigh)

	return setup
}

// classifyZone places price against the entry range, boundaries inclusive.
// Without a price and both positive bounds the status stays indeterminate;
// it never guesses a zone.
func classifyZone(price, entryLow, entryHigh float64) (domain.EntryZoneStatus, float64) {
	if price <= 0 || entryLow <= 0 || entryHigh <= 0 {
		return domain.ZoneIndeterminate, 0
	}
	switch {
	case price > entryHigh:
		return domain.ZoneAboveRange, (price - entryHigh) / entryHigh * 100
	case price < entryLow:
		return domain.ZoneBelowRange, 0
	default:
		return domain.ZoneInRange, 0
	}
}

// candidate is one (predicate, value) entry of a fallback chain.
type candidate struct {
	ok   bool
	text string
}

func firstOf(fallback string, chain ...candidate) string {
	for _, c := range chain {
		if c.ok && strings.TrimSpace(c.text) != "" {
			return c.text
		}
	}
	return fallback
}

func resolveNarrative(payload *domain.AnalysisPayload) domain.Narrative {
	var tech *domain.TechnicalDetails
	var rel *domain.RelStrengthDetails
	var ai *domain.AiSentimentDetails
	if payload.Breakdown != nil && payload.Breakdown.Details != nil {
		tech = payload.Breakdown.Details.Technicals
		rel = payload.Breakdown.Details.RelStrength
		ai = payload.Breakdown.Details.AiSentiment
	}

	var aiAnalysis, aiRisk string
	if ai != nil {
		aiAnalysis = ai.Analysis
		aiRisk = ai.KeyRisk
	}
	var techSnippet string
	if tech != nil && tech.RsiSignal != "" {
		techSnippet = fmt.Sprintf("Technicals: %s", tech.RsiSignal)
	}
	var relStatus string
	if rel != nil && rel.Status != "" {
		relStatus = fmt.Sprintf("Relative strength: %s", rel.Status)
	}

	return domain.Narrative{
		Summary: firstOf(summaryPending,
			candidate{ok: !isPlaceholder(payload.AiSummary), text: payload.AiSummary},
		),
		Strength: firstOf(strengthFallback,
			candidate{ok: !isPlaceholder(aiAnalysis), text: aiAnalysis},
			candidate{ok: techSnippet != "", text: techSnippet},
		),
		Risk: firstOf(riskFallback,
			candidate{ok: !isPlaceholder(aiRisk), text: aiRisk},
			candidate{ok: payload.Warning != "", text: warningPrefix + payload.Warning},
			candidate{ok: relStatus != "", text: relStatus},
		),
	}
}

func isPlaceholder(text string) bool {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return true
	}
	_, ok := aiPlaceholders[trimmed]
	return ok
}

func resolveNews(items []domain.NewsPayload) []domain.NewsItem {
	if len(items) == 0 {
		return nil
	}
	out := make([]domain.NewsItem, 0, len(items))
	for _, item := range items {
		if strings.TrimSpace(item.Title) == "" {
			continue
		}
		source := item.Publisher
		if source == "" {
			source = unknownPublisher
		}
		published, _ := time.Parse(time.RFC3339, item.PublishedUTC)
		out = append(out, domain.NewsItem{
			Title:       item.Title,
			Source:      source,
			URL:         item.ArticleURL,
			PublishedAt: published,
		})
	}
	return out
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func intOrZero(p *int) int {
	if p == nil {
		return 0
	}
	return *p
}

func intOr(p *int, def int) int {
	if p == nil {
		return def
	}
	return *p
}

func floatOrZero(p *float64) float64 {
	if p == nil {
		return 0
	}
	return *p
}

func floatOr(p *float64, def float64) float64 {
	if p == nil {
		return def
	}
	return *p
}

func boolOr(p *bool, def bool) bool {
	if p == nil {
		return def
	}
	return *p
}
