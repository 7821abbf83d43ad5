package stub

import (
	"fmt"
	"hash/fnv"
	"net/http"
	"time"

	"swing-copilot/internal/domain"

	"github.com/gin-gonic/gin"
)

// Handler serves a canned, deterministic rendition of the scoring API so the
// client can be developed and demoed offline. It computes nothing; responses
// are derived from the ticker letters only.
type Handler struct {
	validKeys map[string]struct{}
}

func New(validKeys []string) *Handler {
	keys := make(map[string]struct{}, len(validKeys))
	for _, k := range validKeys {
		keys[k] = struct{}{}
	}
	return &Handler{validKeys: keys}
}

func (h *Handler) RegisterRoutes(r *gin.Engine) {
	r.GET("/health", h.Health)
	r.POST("/api/analyze", h.Analyze)
}

func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "healthy",
		"timestamp": time.Now().Format(time.RFC3339),
		"api_type":  "STUB",
	})
}

func (h *Handler) Analyze(c *gin.Context) {
	key := c.GetHeader("X-License-Key")
	if _, ok := h.validKeys[key]; !ok {
		c.JSON(http.StatusUnauthorized, gin.H{
			"error":   "Unauthorized",
			"message": "License key invalid or revoked",
			"hint":    "Include valid license key in X-License-Key header",
		})
		return
	}

	var req domain.AnalysisRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request body",
		})
		return
	}

	symbol, ok := domain.NormalizeSymbol(req.Symbol)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid ticker symbol. Please enter 1-5 letters (e.g. AAPL, TSLA)",
		})
		return
	}

	c.JSON(http.StatusOK, cannedPayload(symbol, req.WantsAiSummary))
}

// splitScore divides a headline score into the four breakdown components so
// they sum back to it, respecting the 40/30/20/10 maxima. With AI disabled
// the AI component is zero and the score carries no AI contribution.
func splitScore(score int, useAI bool) (technicals, regime, relStrength, aiSentiment int) {
	if useAI {
		aiSentiment = score * domain.MaxAiSentiment / 100
		score -= aiSentiment
	}
	technicals = score * domain.MaxTechnicals / 90
	regime = score * domain.MaxMarketRegime / 90
	relStrength = score - technicals - regime
	if relStrength > domain.MaxRelStrength {
		technicals += relStrength - domain.MaxRelStrength
		relStrength = domain.MaxRelStrength
	}
	if technicals > domain.MaxTechnicals {
		regime += technicals - domain.MaxTechnicals
		technicals = domain.MaxTechnicals
	}
	return technicals, regime, relStrength, aiSentiment
}

// cannedPayload fabricates a stable payload for a symbol. The same ticker
// always yields the same numbers.
func cannedPayload(symbol string, useAI bool) domain.AnalysisPayload {
	h := fnv.New32a()
	h.Write([]byte(symbol))
	seed := h.Sum32()

	price := 40.0 + float64(seed%400) + float64(seed%100)/100
	score := int(35 + seed%56)
	if useAI {
		score += int(seed % 11)
	}
	technicals, regime, relStrength, aiSentiment := splitScore(score, useAI)

	verdict := "AVOID"
	switch {
	case score >= 80:
		verdict = "STRONG BUY"
	case score >= 60:
		verdict = "BUY"
	case score >= 40:
		verdict = "HOLD"
	}

	buyMin := price * 0.97
	buyMax := price * 1.01
	stop := price * 0.92
	targetSafe := price * 1.04
	targetAggro := price * 1.10
	safePct := 4.0
	aggroPct := 10.0
	probSafe := 75
	probAggro := 40
	volSupported := seed%5 != 0

	aiSummary := "AI analysis disabled"
	var details *domain.DetailsPayload
	if useAI {
		aiSummary = fmt.Sprintf("%s shows a constructive pullback setup; momentum is steady and the broader tape is supportive.", symbol)
		details = &domain.DetailsPayload{
			AiSentiment: &domain.AiSentimentDetails{
				Analysis: fmt.Sprintf("Sentiment on %s is mildly positive on balance.", symbol),
				KeyRisk:  "A broad market pullback would invalidate the setup.",
			},
		}
	}

	return domain.AnalysisPayload{
		Ticker:  symbol,
		Score:   &score,
		Verdict: verdict,
		Breakdown: &domain.BreakdownPayload{
			Technicals:   &technicals,
			MarketRegime: &regime,
			RelStrength:  &relStrength,
			AiSentiment:  &aiSentiment,
			Details:      details,
		},
		AiSummary:    aiSummary,
		CurrentPrice: &price,
		Timestamp:    time.Now().Format("2006-01-02 15:04:05"),
		TradeSetup: &domain.TradeSetupPayload{
			BuyMin:              &buyMin,
			BuyMax:              &buyMax,
			SellStop:            &stop,
			TargetSafe:          &targetSafe,
			TargetSafePct:       &safePct,
			TargetAggro:         &targetAggro,
			TargetAggroPct:      &aggroPct,
			ProbSafe:            &probSafe,
			ProbAggro:           &probAggro,
			VolatilitySupported: &volSupported,
			Recommended:         "safe",
		},
		News: []domain.NewsPayload{
			{
				Title:        fmt.Sprintf("%s in focus as traders weigh the latest setup", symbol),
				Publisher:    "Stub Wire",
				PublishedUTC: time.Now().Add(-2 * time.Hour).UTC().Format(time.RFC3339),
				ArticleURL:   "https://example.com/news/" + symbol,
			},
		},
	}
}
