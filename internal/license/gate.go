package license

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"sync"

	"swing-copilot/internal/domain"

	"go.opentelemetry.io/otel/trace"
)

// Prober issues the probe analysis call used to confirm a candidate
// credential against the remote service.
type Prober interface {
	Analyze(ctx context.Context, req domain.AnalysisRequest, credential string) (*domain.AnalysisPayload, error)
}

// Store persists the confirmed credential.
type Store interface {
	Get(ctx context.Context) (string, error)
	Set(ctx context.Context, credential string) error
	Remove(ctx context.Context) error
}

// Gate owns the credential lifecycle: Unset -> Verifying -> Valid, back to
// Unset on any authoritative rejection.
type Gate struct {
	tracer      trace.Tracer
	prober      Prober
	store       Store
	probeSymbol string

	mu         sync.Mutex
	state      domain.CredentialState
	credential string
}

func NewGate(tracer trace.Tracer, prober Prober, store Store, probeSymbol string) *Gate {
	if probeSymbol == "" {
		probeSymbol = "AAPL"
	}
	return &Gate{
		tracer:      tracer,
		prober:      prober,
		store:       store,
		probeSymbol: probeSymbol,
		state:       domain.CredentialUnset,
	}
}

// Load reads the persisted credential on cold start. A stored key with a
// broken format is discarded rather than trusted.
func (g *Gate) Load(ctx context.Context) error {
	_, span := g.tracer.Start(ctx, "license-gate.load")
	defer span.End()

	stored, err := g.store.Get(ctx)
	if err != nil {
		return err
	}
	if stored == "" {
		return nil
	}
	if !domain.ValidCredentialFormat(stored) {
		log.Printf("discarding stored credential with invalid format")
		return g.store.Remove(ctx)
	}

	g.mu.Lock()
	g.credential = stored
	g.state = domain.CredentialValid
	g.mu.Unlock()
	return nil
}

func (g *Gate) State() domain.CredentialState {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.state
}

// Credential returns the active key, or "" unless the gate is Valid.
func (g *Gate) Credential() string {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.state != domain.CredentialValid {
		return ""
	}
	return g.credential
}

// ValidateFormat is the local syntax check. It never touches the network.
func (g *Gate) ValidateFormat(input string) bool {
	return domain.ValidCredentialFormat(input)
}

// Activate verifies a candidate key with one probe round-trip (a real
// analysis call against a benign symbol, AI disabled) and persists it on
// acceptance. Only an explicit authorization rejection fails the probe; any
// other upstream trouble must not block activation of an otherwise-valid
// key.
func (g *Gate) Activate(ctx context.Context, input string) error {
	_, span := g.tracer.Start(ctx, "license-gate.activate")
	defer span.End()

	candidate := strings.TrimSpace(input)
	if !domain.ValidCredentialFormat(candidate) {
		return domain.ErrBadKeyFormat
	}

	g.mu.Lock()
	if g.state == domain.CredentialVerifying {
		g.mu.Unlock()
		return domain.ErrBusy
	}
	g.state = domain.CredentialVerifying
	g.mu.Unlock()

	probe := domain.AnalysisRequest{Symbol: g.probeSymbol, WantsAiSummary: false}
	_, err := g.prober.Analyze(ctx, probe, candidate)

	var rejected *domain.CredentialRejectedError
	if errors.As(err, &rejected) {
		g.mu.Lock()
		g.state = domain.CredentialUnset
		g.mu.Unlock()
		return rejected
	}
	if err != nil {
		log.Printf("probe request failed without auth rejection, accepting credential: %v", err)
	}

	if err := g.store.Set(ctx, candidate); err != nil {
		g.mu.Lock()
		g.state = domain.CredentialUnset
		g.mu.Unlock()
		return fmt.Errorf("activate license: %w", err)
	}

	g.mu.Lock()
	g.credential = candidate
	g.state = domain.CredentialValid
	g.mu.Unlock()
	return nil
}

// Revoke clears the persisted credential and returns the gate to Unset.
// The in-memory copy is dropped even if the store delete fails.
func (g *Gate) Revoke(ctx context.Context) error {
	_, span := g.tracer.Start(ctx, "license-gate.revoke")
	defer span.End()

	g.mu.Lock()
	g.credential = ""
	g.state = domain.CredentialUnset
	g.mu.Unlock()

	return g.store.Remove(ctx)
}
