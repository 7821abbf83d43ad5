package service

import (
	"context"
	"errors"
	"log"
	"sync/atomic"

	"swing-copilot/internal/analysis"
	"swing-copilot/internal/domain"

	"go.opentelemetry.io/otel/trace"
)

// LicenseGate is the credential authority the controller consults and, on an
// authoritative rejection, instructs to evict.
type LicenseGate interface {
	State() domain.CredentialState
	Credential() string
	Revoke(ctx context.Context) error
}

// Analyzer issues the remote analysis round-trip.
type Analyzer interface {
	Analyze(ctx context.Context, req domain.AnalysisRequest, credential string) (*domain.AnalysisPayload, error)
}

// AnalysisService owns the request lifecycle: precondition checks, the
// single in-flight guard, failure interpretation and credential eviction.
type AnalysisService struct {
	tracer trace.Tracer
	gate   LicenseGate
	client Analyzer

	inFlight atomic.Bool
}

func NewAnalysisService(tracer trace.Tracer, gate LicenseGate, client Analyzer) *AnalysisService {
	return &AnalysisService{
		tracer: tracer,
		gate:   gate,
		client: client,
	}
}

// Busy reports whether an analysis round-trip is currently in flight.
func (s *AnalysisService) Busy() bool {
	return s.inFlight.Load()
}

// Analyze runs one request to completion and returns exactly one terminal
// outcome: a resolved result, or an error describing why there is none.
// A credential rejection from the server evicts the stored key before the
// error is returned.
func (s *AnalysisService) Analyze(ctx context.Context, rawSymbol string, wantsAiSummary bool) (*domain.AnalysisResult, error) {
	_, span := s.tracer.Start(ctx, "analysis-service.analyze")
	defer span.End()

	if s.gate.State() != domain.CredentialValid {
		return nil, domain.ErrNoCredential
	}

	symbol, ok := domain.NormalizeSymbol(rawSymbol)
	if !ok {
		return nil, domain.ErrBadSymbol
	}

	if !s.inFlight.CompareAndSwap(false, true) {
		return nil, domain.ErrBusy
	}
	defer s.inFlight.Store(false)

	req := domain.AnalysisRequest{Symbol: symbol, WantsAiSummary: wantsAiSummary}
	payload, err := s.client.Analyze(ctx, req, s.gate.Credential())

	var rejected *domain.CredentialRejectedError
	if errors.As(err, &rejected) {
		if revokeErr := s.gate.Revoke(ctx); revokeErr != nil {
			log.Printf("credential eviction after rejection failed: %v", revokeErr)
		}
		return nil, rejected
	}
	if err != nil {
		return nil, err
	}

	return analysis.Interpret(payload)
}
