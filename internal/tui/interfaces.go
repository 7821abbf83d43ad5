package tui

import (
	"context"
	"time"

	"swing-copilot/internal/domain"
)

// LicenseActivator is the license gate surface the TUI drives.
type LicenseActivator interface {
	State() domain.CredentialState
	Activate(ctx context.Context, input string) error
	Revoke(ctx context.Context) error
}

// AnalysisRunner runs one analysis request to a terminal outcome.
type AnalysisRunner interface {
	Analyze(ctx context.Context, symbol string, wantsAiSummary bool) (*domain.AnalysisResult, error)
}

// Services bundles all dependencies injected into the TUI.
type Services struct {
	License  LicenseActivator
	Analysis AnalysisRunner

	Watchlist []string

	// AuthReturnDelay is how long a revocation message stays on screen
	// before the TUI returns to the auth prompt.
	AuthReturnDelay time.Duration
}
