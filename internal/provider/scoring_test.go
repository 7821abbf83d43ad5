package provider

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"swing-copilot/internal/domain"

	"go.opentelemetry.io/otel/trace"
)

func newTestClient(baseURL string) *ScoringClient {
	return NewScoringClient(trace.NewNoopTracerProvider().Tracer("test"), baseURL, 5*time.Second)
}

func TestScoringClientSendsCredentialAndBody(t *testing.T) {
	var gotHeader string
	var gotBody domain.AnalysisRequest

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/api/analyze" {
			t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		gotHeader = r.Header.Get("X-License-Key")
		if err := json.NewDecoder(r.Body).Decode(&gotBody); err != nil {
			t.Errorf("decode request: %v", err)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"ticker":"AAPL","score":72,"verdict":"BUY","current_price":231.5}`))
	}))
	defer srv.Close()

	client := newTestClient(srv.URL)
	payload, err := client.Analyze(context.Background(), domain.AnalysisRequest{Symbol: "AAPL", WantsAiSummary: true}, "PRO-1A2B3C-4D5E6F")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if gotHeader != "PRO-1A2B3C-4D5E6F" {
		t.Fatalf("expected credential header, got %q", gotHeader)
	}
	if gotBody.Symbol != "AAPL" || !gotBody.WantsAiSummary {
		t.Fatalf("unexpected request body: %+v", gotBody)
	}
	if payload.Ticker != "AAPL" || payload.Score == nil || *payload.Score != 72 {
		t.Fatalf("unexpected payload: %+v", payload)
	}
	if payload.CurrentPrice == nil || *payload.CurrentPrice != 231.5 {
		t.Fatalf("unexpected price: %+v", payload.CurrentPrice)
	}
}

func TestScoringClientMapsUnauthorized(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"error":"Unauthorized","message":"License key invalid or revoked","hint":"Include valid license key in X-License-Key header"}`))
	}))
	defer srv.Close()

	client := newTestClient(srv.URL)
	_, err := client.Analyze(context.Background(), domain.AnalysisRequest{Symbol: "AAPL"}, "PRO-1A2B3C-4D5E6F")

	var rejected *domain.CredentialRejectedError
	if !errors.As(err, &rejected) {
		t.Fatalf("expected CredentialRejectedError, got %v", err)
	}
	if rejected.Message != "License key invalid or revoked" {
		t.Fatalf("unexpected message: %q", rejected.Message)
	}
}

func TestScoringClientMapsUpstreamFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`{"error":"Analysis failed"}`))
	}))
	defer srv.Close()

	client := newTestClient(srv.URL)
	_, err := client.Analyze(context.Background(), domain.AnalysisRequest{Symbol: "AAPL"}, "PRO-1A2B3C-4D5E6F")

	var upstream *domain.UpstreamError
	if !errors.As(err, &upstream) {
		t.Fatalf("expected UpstreamError, got %v", err)
	}
	if upstream.Status != http.StatusInternalServerError || upstream.Message != "Analysis failed" {
		t.Fatalf("unexpected upstream error: %+v", upstream)
	}
}

func TestScoringClientWrapsTransportError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close()

	client := newTestClient(srv.URL)
	_, err := client.Analyze(context.Background(), domain.AnalysisRequest{Symbol: "AAPL"}, "PRO-1A2B3C-4D5E6F")
	if err == nil {
		t.Fatal("expected transport error")
	}
	var rejected *domain.CredentialRejectedError
	var upstream *domain.UpstreamError
	if errors.As(err, &rejected) || errors.As(err, &upstream) {
		t.Fatalf("transport failure must not map to an API error, got %v", err)
	}
}

func TestScoringClientBadJSONBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"ticker":`))
	}))
	defer srv.Close()

	client := newTestClient(srv.URL)
	if _, err := client.Analyze(context.Background(), domain.AnalysisRequest{Symbol: "AAPL"}, "PRO-1A2B3C-4D5E6F"); err == nil {
		t.Fatal("expected parse error")
	}
}
