package analysis

import (
	"errors"
	"math"
	"testing"

	"swing-copilot/internal/domain"
)

func ip(v int) *int         { return &v }
func fp(v float64) *float64 { return &v }
func bp(v bool) *bool       { return &v }

func basePayload() *domain.AnalysisPayload {
	return &domain.AnalysisPayload{
		Ticker:       "AAPL",
		Score:        ip(72),
		Verdict:      "BUY",
		CurrentPrice: fp(100),
	}
}

func TestInterpretRejectsMalformedPayload(t *testing.T) {
	cases := []struct {
		name    string
		payload *domain.AnalysisPayload
		field   string
	}{
		{"nil payload", nil, "ticker"},
		{"blank ticker", &domain.AnalysisPayload{Ticker: "  ", Score: ip(50), CurrentPrice: fp(10)}, "ticker"},
		{"missing price", &domain.AnalysisPayload{Ticker: "AAPL", Score: ip(50)}, "current_price"},
		{"zero price", &domain.AnalysisPayload{Ticker: "AAPL", Score: ip(50), CurrentPrice: fp(0)}, "current_price"},
		{"missing score", &domain.AnalysisPayload{Ticker: "AAPL", CurrentPrice: fp(10)}, "score"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Interpret(tc.payload)
			var malformed *domain.MalformedPayloadError
			if !errors.As(err, &malformed) {
				t.Fatalf("expected malformed payload error, got %v", err)
			}
			if malformed.Field != tc.field {
				t.Fatalf("expected field %q, got %q", tc.field, malformed.Field)
			}
		})
	}
}

func TestInterpretClampsScore(t *testing.T) {
	payload := basePayload()
	payload.Score = ip(150)
	got, err := Interpret(payload)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Score != 100 {
		t.Fatalf("expected score clamped to 100, got %d", got.Score)
	}

	payload.Score = ip(-5)
	got, err = Interpret(payload)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Score != 0 {
		t.Fatalf("expected score clamped to 0, got %d", got.Score)
	}
}

func TestClassifyVerdict(t *testing.T) {
	cases := []struct {
		raw  string
		want domain.Verdict
	}{
		{"STRONG BUY", domain.VerdictStrongBuy},
		{"Strong Buy (pullback)", domain.VerdictStrongBuy},
		{"BUY", domain.VerdictBuy},
		{"buy the dip", domain.VerdictBuy},
		{"HOLD", domain.VerdictHold},
		{"AVOID", domain.VerdictAvoid},
		{"showing weakness", domain.VerdictAvoid},
		{"STRONG SELL", domain.VerdictStrongSell},
		{"sell now", domain.VerdictStrongSell},
		{"", domain.VerdictUnclassified},
		{"mystery", domain.VerdictUnclassified},
	}

	for _, tc := range cases {
		if got := ClassifyVerdict(tc.raw); got != tc.want {
			t.Fatalf("ClassifyVerdict(%q) = %v, want %v", tc.raw, got, tc.want)
		}
	}
}

func TestBandBoundaries(t *testing.T) {
	cases := []struct {
		score int
		want  domain.ScoreBand
	}{
		{0, domain.BandLow},
		{39, domain.BandLow},
		{40, domain.BandMid},
		{69, domain.BandMid},
		{70, domain.BandHigh},
		{100, domain.BandHigh},
	}
	for _, tc := range cases {
		if got := Band(tc.score); got != tc.want {
			t.Fatalf("Band(%d) = %v, want %v", tc.score, got, tc.want)
		}
	}
}

func TestInterpretDefaultsSetupFromPrice(t *testing.T) {
	payload := basePayload()

	got, err := Interpret(payload)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	s := got.Setup
	if s.TargetSafe != 104.0 || s.TargetSafePct != 4.0 {
		t.Fatalf("unexpected safe target: %.2f / %.2f", s.TargetSafe, s.TargetSafePct)
	}
	if math.Abs(s.TargetAggro-110.0) > 1e-9 || s.TargetAggroPct != 10.0 {
		t.Fatalf("unexpected aggressive target: %.2f / %.2f", s.TargetAggro, s.TargetAggroPct)
	}
	if s.Stop != 92.0 {
		t.Fatalf("unexpected stop: %.2f", s.Stop)
	}
	if s.ProbSafe != 75 || s.ProbAggro != 40 {
		t.Fatalf("unexpected probabilities: %d / %d", s.ProbSafe, s.ProbAggro)
	}
	if !s.VolatilitySupported {
		t.Fatal("expected volatility supported by default")
	}
	if s.AggroLowProbability {
		t.Fatal("aggressive target should not be low-probability by default")
	}
	if !s.RecommendSafe {
		t.Fatal("expected safe target recommended at 75% probability")
	}
	if s.ZoneStatus != domain.ZoneIndeterminate {
		t.Fatalf("expected indeterminate zone without bounds, got %v", s.ZoneStatus)
	}
}

func TestInterpretZoneClassification(t *testing.T) {
	cases := []struct {
		name    string
		price   float64
		min     float64
		max     float64
		want    domain.EntryZoneStatus
		wantPct float64
	}{
		{"inside", 97, 95, 99, domain.ZoneInRange, 0},
		{"upper bound inclusive", 99, 95, 99, domain.ZoneInRange, 0},
		{"lower bound inclusive", 95, 95, 99, domain.ZoneInRange, 0},
		{"above", 100, 95, 99, domain.ZoneAboveRange, (100 - 99.0) / 99.0 * 100},
		{"below", 90, 95, 99, domain.ZoneBelowRange, 0},
		{"missing bounds", 100, 0, 0, domain.ZoneIndeterminate, 0},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			payload := basePayload()
			payload.CurrentPrice = fp(tc.price)
			payload.TradeSetup = &domain.TradeSetupPayload{
				BuyMin: fp(tc.min),
				BuyMax: fp(tc.max),
			}

			got, err := Interpret(payload)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got.Setup.ZoneStatus != tc.want {
				t.Fatalf("expected zone %v, got %v", tc.want, got.Setup.ZoneStatus)
			}
			if math.Abs(got.Setup.PctAboveZone-tc.wantPct) > 1e-9 {
				t.Fatalf("expected pct %.4f, got %.4f", tc.wantPct, got.Setup.PctAboveZone)
			}
		})
	}
}

func TestInterpretAggressiveTargetFlags(t *testing.T) {
	payload := basePayload()
	payload.TradeSetup = &domain.TradeSetupPayload{
		ProbAggro: ip(25),
	}
	got, err := Interpret(payload)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !got.Setup.AggroLowProbability {
		t.Fatal("expected low-probability flag at 25%")
	}

	payload.TradeSetup = &domain.TradeSetupPayload{
		ProbAggro:           ip(60),
		VolatilitySupported: bp(false),
	}
	got, err = Interpret(payload)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !got.Setup.AggroLowProbability {
		t.Fatal("expected low-probability flag when volatility unsupported")
	}

	payload.TradeSetup = &domain.TradeSetupPayload{
		ProbSafe: ip(65),
	}
	got, err = Interpret(payload)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Setup.RecommendSafe {
		t.Fatal("safe target should not be recommended below 70%")
	}
}

func TestInterpretNarrativeChains(t *testing.T) {
	payload := basePayload()
	payload.AiSummary = "AI analysis disabled"
	payload.Breakdown = &domain.BreakdownPayload{
		Details: &domain.DetailsPayload{
			Technicals:  &domain.TechnicalDetails{RsiSignal: "RSI rebounding from oversold"},
			RelStrength: &domain.RelStrengthDetails{Status: "Outperforming SPY"},
			AiSentiment: &domain.AiSentimentDetails{Analysis: "N/A", KeyRisk: "Sentiment analysis failed"},
		},
	}

	got, err := Interpret(payload)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	n := got.Narrative
	if n.Summary != "AI analysis in progress. Technical read shown below." {
		t.Fatalf("expected pending summary, got %q", n.Summary)
	}
	if n.Strength != "Technicals: RSI rebounding from oversold" {
		t.Fatalf("expected technical strength line, got %q", n.Strength)
	}
	if n.Risk != "Relative strength: Outperforming SPY" {
		t.Fatalf("expected relative strength risk line, got %q", n.Risk)
	}
}

func TestInterpretNarrativePrefersAiAndWarning(t *testing.T) {
	payload := basePayload()
	payload.AiSummary = "Momentum is building into earnings."
	payload.Warning = "Earnings in 3 days"
	payload.Breakdown = &domain.BreakdownPayload{
		Details: &domain.DetailsPayload{
			AiSentiment: &domain.AiSentimentDetails{Analysis: "Coverage is broadly positive."},
		},
	}

	got, err := Interpret(payload)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	n := got.Narrative
	if n.Summary != "Momentum is building into earnings." {
		t.Fatalf("expected upstream summary, got %q", n.Summary)
	}
	if n.Strength != "Coverage is broadly positive." {
		t.Fatalf("expected AI strength line, got %q", n.Strength)
	}
	if n.Risk != "⚠ Earnings in 3 days" {
		t.Fatalf("expected warning risk line, got %q", n.Risk)
	}
}

func TestInterpretNarrativeFallbacks(t *testing.T) {
	got, err := Interpret(basePayload())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	n := got.Narrative
	if n.Strength != "Technical conditions are favorable for a swing entry." {
		t.Fatalf("unexpected strength fallback: %q", n.Strength)
	}
	if n.Risk != "No outsized risks flagged. Monitor the position daily." {
		t.Fatalf("unexpected risk fallback: %q", n.Risk)
	}
}

func TestInterpretNews(t *testing.T) {
	payload := basePayload()
	payload.News = []domain.NewsPayload{
		{Title: "", Publisher: "Reuters"},
		{Title: "Apple unveils new chip", Publisher: "", PublishedUTC: "2026-08-28T14:30:00Z", ArticleURL: "https://example.com/a"},
		{Title: "Analysts raise targets", Publisher: "Bloomberg", PublishedUTC: "not-a-time"},
	}

	got, err := Interpret(payload)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got.News) != 2 {
		t.Fatalf("expected 2 news items (blank title skipped), got %d", len(got.News))
	}
	if got.News[0].Source != "Unknown" {
		t.Fatalf("expected Unknown publisher, got %q", got.News[0].Source)
	}
	if got.News[0].PublishedAt.IsZero() {
		t.Fatal("expected parsed publish time")
	}
	if !got.News[1].PublishedAt.IsZero() {
		t.Fatal("expected zero time for unparseable timestamp")
	}
}

func TestInterpretBreakdown(t *testing.T) {
	payload := basePayload()
	payload.Breakdown = &domain.BreakdownPayload{
		Technicals:   ip(32),
		MarketRegime: ip(20),
		RelStrength:  ip(15),
	}

	got, err := Interpret(payload)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	b := got.Breakdown
	if b.Technicals != 32 || b.MarketRegime != 20 || b.RelStrength != 15 || b.AiSentiment != 0 {
		t.Fatalf("unexpected breakdown: %+v", b)
	}
}

func TestInterpretUppercasesSymbol(t *testing.T) {
	payload := basePayload()
	payload.Ticker = " aapl "
	got, err := Interpret(payload)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Symbol != "AAPL" {
		t.Fatalf("expected AAPL, got %q", got.Symbol)
	}
}
