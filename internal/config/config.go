package config

import (
	"log"
	"os"
	"strconv"
	"strings"
)

type Config struct {
	ScoringAPIURL      string
	RequestTimeoutSecs int
	RedisURL           string

	ProbeSymbol         string
	AuthReturnDelaySecs int

	TelegramBotToken string

	Watchlist []string
}

var defaultWatchlist = []string{"AAPL", "MSFT", "NVDA", "TSLA", "AMZN", "META", "GOOGL", "AMD"}

func Load() *Config {
	cfg := &Config{
		ScoringAPIURL:    strings.TrimRight(strings.TrimSpace(os.Getenv("SWING_API_URL")), "/"),
		RedisURL:         os.Getenv("REDIS_URL"),
		TelegramBotToken: os.Getenv("TELEGRAM_BOT_TOKEN"),
	}

	if cfg.ScoringAPIURL == "" {
		log.Println("Warning: SWING_API_URL not set, defaulting to http://localhost:5000")
		cfg.ScoringAPIURL = "http://localhost:5000"
	}
	if cfg.RedisURL == "" {
		log.Println("Warning: REDIS_URL not set, defaulting to localhost:6379")
		cfg.RedisURL = "localhost:6379"
	}

	cfg.RequestTimeoutSecs = 30
	if v := strings.TrimSpace(os.Getenv("SWING_REQUEST_TIMEOUT_SECS")); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.RequestTimeoutSecs = n
		}
	}

	cfg.ProbeSymbol = strings.ToUpper(strings.TrimSpace(os.Getenv("SWING_PROBE_SYMBOL")))
	if cfg.ProbeSymbol == "" {
		cfg.ProbeSymbol = "AAPL"
	}

	cfg.AuthReturnDelaySecs = 3
	if v := strings.TrimSpace(os.Getenv("SWING_AUTH_RETURN_DELAY_SECS")); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.AuthReturnDelaySecs = n
		}
	}

	cfg.Watchlist = parseWatchlist(os.Getenv("SWING_WATCHLIST"))

	return cfg
}

func parseWatchlist(raw string) []string {
	if strings.TrimSpace(raw) == "" {
		return defaultWatchlist
	}

	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	seen := make(map[string]struct{}, len(parts))
	for _, part := range parts {
		symbol := strings.ToUpper(strings.TrimSpace(part))
		if symbol == "" {
			continue
		}
		if _, ok := seen[symbol]; ok {
			continue
		}
		seen[symbol] = struct{}{}
		out = append(out, symbol)
	}
	if len(out) == 0 {
		return defaultWatchlist
	}
	return out
}
