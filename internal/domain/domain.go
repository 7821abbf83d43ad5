package domain

import (
	"regexp"
	"strings"
	"time"
)

// CredentialState tracks the license gate lifecycle. Only a confirmed-valid
// credential may be persisted.
type CredentialState int

const (
	CredentialUnset CredentialState = iota
	CredentialVerifying
	CredentialValid
)

func (s CredentialState) String() string {
	switch s {
	case CredentialVerifying:
		return "verifying"
	case CredentialValid:
		return "valid"
	default:
		return "unset"
	}
}

// credentialPattern matches keys of the form TIER-XXXXXX-YYYYYY with six
// uppercase-hex characters per group.
var credentialPattern = regexp.MustCompile(`^(PRO|ENT|FREE)-[0-9A-F]{6}-[0-9A-F]{6}$`)

// ValidCredentialFormat reports whether input is syntactically a license key.
// A passing check says nothing about whether the key is live.
func ValidCredentialFormat(input string) bool {
	return credentialPattern.MatchString(strings.TrimSpace(input))
}

var symbolPattern = regexp.MustCompile(`^[A-Z]{1,5}$`)

// NormalizeSymbol trims, uppercases and strips $ from a user-entered ticker.
// The second return is false when the result is not 1-5 uppercase letters.
func NormalizeSymbol(raw string) (string, bool) {
	cleaned := strings.ToUpper(strings.TrimSpace(raw))
	cleaned = strings.ReplaceAll(cleaned, "$", "")
	if !symbolPattern.MatchString(cleaned) {
		return "", false
	}
	return cleaned, true
}

// AnalysisRequest is immutable once issued.
type AnalysisRequest struct {
	Symbol         string `json:"ticker"`
	WantsAiSummary bool   `json:"use_ai"`
}

// Verdict is the categorical trading recommendation.
type Verdict int

const (
	VerdictUnclassified Verdict = iota
	VerdictStrongBuy
	VerdictBuy
	VerdictHold
	VerdictAvoid
	VerdictStrongSell
)

func (v Verdict) String() string {
	switch v {
	case VerdictStrongBuy:
		return "STRONG BUY"
	case VerdictBuy:
		return "BUY"
	case VerdictHold:
		return "HOLD"
	case VerdictAvoid:
		return "AVOID"
	case VerdictStrongSell:
		return "STRONG SELL"
	default:
		return "UNCLASSIFIED"
	}
}

// ScoreBand drives the score-gauge color.
type ScoreBand int

const (
	BandLow  ScoreBand = iota // score < 40
	BandMid                   // 40 <= score < 70
	BandHigh                  // score >= 70
)

// EntryZoneStatus is the three-way classification of current price against
// the suggested entry range, plus Indeterminate when inputs are missing.
type EntryZoneStatus int

const (
	ZoneIndeterminate EntryZoneStatus = iota
	ZoneInRange
	ZoneAboveRange // wait for a dip
	ZoneBelowRange // caution, verify trend
)

// Breakdown component maxima are fixed contracts, not derived from the
// payload.
const (
	MaxTechnicals   = 40
	MaxMarketRegime = 30
	MaxRelStrength  = 20
	MaxAiSentiment  = 10
)

type Breakdown struct {
	Technicals   int
	MarketRegime int
	RelStrength  int
	AiSentiment  int
}

type TradeSetup struct {
	EntryLow  float64
	EntryHigh float64
	Stop      float64

	TargetSafe     float64
	TargetSafePct  float64
	TargetAggro    float64
	TargetAggroPct float64

	ProbSafe  int
	ProbAggro int

	VolatilitySupported bool

	// AggroLowProbability flags the aggressive target when volatility does
	// not support it or its win probability is under 30%.
	AggroLowProbability bool

	// RecommendSafe is true when ProbSafe >= 70.
	RecommendSafe bool

	ZoneStatus   EntryZoneStatus
	PctAboveZone float64
}

type Narrative struct {
	Summary  string
	Strength string
	Risk     string
}

type NewsItem struct {
	Title       string
	Source      string
	URL         string
	PublishedAt time.Time
}

// AnalysisResult is the fully resolved decision model consumed by
// presentation. Every optional upstream field has been defaulted; nothing
// here is ever unset.
type AnalysisResult struct {
	Symbol  string
	Price   float64
	Score   int
	Verdict Verdict
	Band    ScoreBand

	Breakdown Breakdown
	Setup     TradeSetup
	Narrative Narrative
	News      []NewsItem

	Warning string
}
