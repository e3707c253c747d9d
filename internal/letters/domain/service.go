// Package domain defines clinical letter generation for a visit. Letters are
// drafted by the configured AI provider; when the provider fails or is not
// configured, a template fallback is returned so the caller is never blocked.
package domain

import (
	"context"
	"errors"
)

// Kind names one generatable clinical document.
type Kind string

const (
	KindDischargeSummary Kind = "discharge_summary"
	KindApprovalLetter   Kind = "approval_letter"
	KindOTNotes          Kind = "ot_notes"
)

// ParseKind validates a kind from the request body.
func ParseKind(raw string) (Kind, error) {
	switch Kind(raw) {
	case KindDischargeSummary, KindApprovalLetter, KindOTNotes:
		return Kind(raw), nil
	default:
		return "", ErrUnknownKind
	}
}

// Patient carries the demographic fields the letter templates need.
type Patient struct {
	Name    string `json:"name"`
	Age     string `json:"age,omitempty"`
	Sex     string `json:"sex,omitempty"`
	ClaimID string `json:"claim_id,omitempty"`
}

type GenerateRequest struct {
	VisitID   string
	Kind      Kind
	Patient   Patient
	Diagnoses []string
	Surgeries []string
	Extra     string
}

// GenerateResponse carries the letter text. Fallback is true when the content
// came from the built-in template instead of the provider.
type GenerateResponse struct {
	RequestID string `json:"request_id"`
	Kind      Kind   `json:"kind"`
	Content   string `json:"content"`
	Fallback  bool   `json:"fallback"`
}

type Service interface {
	Generate(ctx context.Context, req GenerateRequest) (GenerateResponse, error)
}

var (
	ErrInvalidVisit = errors.New("invalid_visit")
	ErrUnknownKind  = errors.New("unknown_letter_kind")
)
