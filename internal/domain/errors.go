package domain

import (
	"errors"
	"fmt"
)

// Local precondition failures. None of these ever reach the network.
var (
	ErrBadKeyFormat = errors.New("license key must look like PRO-XXXXXX-YYYYYY")
	ErrNoCredential = errors.New("no active license, enter a license key first")
	ErrBadSymbol    = errors.New("enter a ticker of 1-5 letters (e.g. AAPL, TSLA)")
	ErrBusy         = errors.New("an analysis is already running")
)

// CredentialRejectedError is the authoritative rejection from the scoring
// service. Receiving one evicts the stored credential.
type CredentialRejectedError struct {
	Message string
}

func (e *CredentialRejectedError) Error() string {
	if e.Message == "" {
		return "license key was rejected by the server"
	}
	return e.Message
}

// UpstreamError covers any non-success, non-auth-rejection response.
type UpstreamError struct {
	Status  int
	Message string
}

func (e *UpstreamError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("analysis service returned status %d", e.Status)
	}
	return e.Message
}

// MalformedPayloadError means a success response was structurally unusable:
// one of the required fields (ticker, price, score) is missing.
type MalformedPayloadError struct {
	Field string
}

func (e *MalformedPayloadError) Error() string {
	return fmt.Sprintf("analysis payload is missing required field %q", e.Field)
}
