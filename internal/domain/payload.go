package domain

// AnalysisPayload is the raw success body returned by the scoring API.
// Optional fields are pointers so the interpreter can tell absent from zero.
type AnalysisPayload struct {
	Ticker       string             `json:"ticker"`
	Score        *int               `json:"score,omitempty"`
	Verdict      string             `json:"verdict,omitempty"`
	Breakdown    *BreakdownPayload  `json:"breakdown,omitempty"`
	AiSummary    string             `json:"ai_summary,omitempty"`
	CurrentPrice *float64           `json:"current_price,omitempty"`
	News         []NewsPayload      `json:"news,omitempty"`
	Timestamp    string             `json:"timestamp,omitempty"`
	TradeSetup   *TradeSetupPayload `json:"trade_setup,omitempty"`
	Warning      string             `json:"warning,omitempty"`
}

type BreakdownPayload struct {
	Technicals   *int            `json:"technicals,omitempty"`
	MarketRegime *int            `json:"market_regime,omitempty"`
	RelStrength  *int            `json:"rel_strength,omitempty"`
	AiSentiment  *int            `json:"ai_sentiment,omitempty"`
	Details      *DetailsPayload `json:"details,omitempty"`
}

type DetailsPayload struct {
	Technicals  *TechnicalDetails   `json:"technicals,omitempty"`
	RelStrength *RelStrengthDetails `json:"rel_strength,omitempty"`
	AiSentiment *AiSentimentDetails `json:"ai_sentiment,omitempty"`
}

type TechnicalDetails struct {
	RsiSignal   string `json:"rsi_signal,omitempty"`
	EmaSignal   string `json:"ema_signal,omitempty"`
	TrendFilter string `json:"trend_filter,omitempty"`
}

type RelStrengthDetails struct {
	Status string `json:"status,omitempty"`
}

type AiSentimentDetails struct {
	Analysis string `json:"analysis,omitempty"`
	KeyRisk  string `json:"key_risk,omitempty"`
}

type TradeSetupPayload struct {
	BuyMin              *float64 `json:"buy_min,omitempty"`
	BuyMax              *float64 `json:"buy_max,omitempty"`
	SellStop            *float64 `json:"sell_stop,omitempty"`
	TargetSafe          *float64 `json:"target_safe,omitempty"`
	TargetSafePct       *float64 `json:"target_safe_pct,omitempty"`
	TargetAggro         *float64 `json:"target_aggro,omitempty"`
	TargetAggroPct      *float64 `json:"target_aggro_pct,omitempty"`
	ProbSafe            *int     `json:"prob_safe,omitempty"`
	ProbAggro           *int     `json:"prob_aggro,omitempty"`
	VolatilitySupported *bool    `json:"volatility_supported,omitempty"`
	Recommended         string   `json:"recommended,omitempty"`
}

type NewsPayload struct {
	Title        string `json:"title"`
	Description  string `json:"description,omitempty"`
	Publisher    string `json:"publisher,omitempty"`
	PublishedUTC string `json:"published_utc,omitempty"`
	ArticleURL   string `json:"article_url,omitempty"`
}
