package provider

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"swing-copilot/internal/domain"

	"github.com/go-resty/resty/v2"
	"go.opentelemetry.io/otel/trace"
)

// licenseHeader carries the credential on every analysis call.
const licenseHeader = "X-License-Key"

// ScoringClient talks to the remote swing-scoring API.
type ScoringClient struct {
	tracer trace.Tracer
	client *resty.Client
}

func NewScoringClient(tracer trace.Tracer, baseURL string, timeout time.Duration) *ScoringClient {
	client := resty.New()
	client.SetBaseURL(baseURL)
	client.SetTimeout(timeout)

	return &ScoringClient{
		tracer: tracer,
		client: client,
	}
}

type authRejectionBody struct {
	Error   string `json:"error"`
	Message string `json:"message"`
	Hint    string `json:"hint"`
}

type upstreamErrorBody struct {
	Error string `json:"error"`
}

// Analyze issues one analysis round-trip. A 401 maps to
// domain.CredentialRejectedError, any other non-200 to domain.UpstreamError,
// and network failures are wrapped transport errors.
func (c *ScoringClient) Analyze(ctx context.Context, req domain.AnalysisRequest, credential string) (*domain.AnalysisPayload, error) {
	_, span := c.tracer.Start(ctx, "scoring-client.analyze")
	defer span.End()

	resp, err := c.client.R().
		SetContext(ctx).
		SetHeader(licenseHeader, credential).
		SetBody(req).
		Post("/api/analyze")
	if err != nil {
		return nil, fmt.Errorf("call analysis service: %w", err)
	}

	switch {
	case resp.StatusCode() == http.StatusUnauthorized:
		var body authRejectionBody
		_ = json.Unmarshal(resp.Body(), &body)
		return nil, &domain.CredentialRejectedError{Message: body.Message}

	case resp.StatusCode() != http.StatusOK:
		var body upstreamErrorBody
		_ = json.Unmarshal(resp.Body(), &body)
		return nil, &domain.UpstreamError{Status: resp.StatusCode(), Message: body.Error}
	}

	var payload domain.AnalysisPayload
	if err := json.Unmarshal(resp.Body(), &payload); err != nil {
		return nil, fmt.Errorf("parse analysis response: %w", err)
	}
	return &payload, nil
}
