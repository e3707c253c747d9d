package domain

import (
	"context"
	"errors"
	"time"

	"github.com/bwmarrin/snowflake"
)

// Kind names one visit-scoped side collection.
type Kind string

const (
	KindDiagnosis    Kind = "diagnosis"
	KindSurgery      Kind = "surgery"
	KindComplication Kind = "complication"
	KindLab          Kind = "lab"
	KindRadiology    Kind = "radiology"
	KindMedication   Kind = "medication"
)

// ParseKind validates a kind from the HTTP path.
func ParseKind(raw string) (Kind, error) {
	switch Kind(raw) {
	case KindDiagnosis, KindSurgery, KindComplication, KindLab, KindRadiology, KindMedication:
		return Kind(raw), nil
	default:
		return "", ErrUnknownKind
	}
}

// Row is the kind-agnostic wire shape of one link. Fields that a kind does not
// carry stay zero.
type Row struct {
	EntityID       snowflake.ID `json:"entity_id"`
	IsPrimary      bool         `json:"is_primary,omitempty"`
	Status         string       `json:"status,omitempty"`
	SanctionStatus string       `json:"sanction_status,omitempty"`
	Date           *time.Time   `json:"date,omitempty"`
}

type Service interface {
	// Upsert applies rows to a visit's collection. Diagnoses, surgeries and
	// complications append with a duplicate guard on (visit, entity); labs,
	// radiology and medications replace the visit's full collection.
	Upsert(ctx context.Context, visitID string, kind Kind, rows []Row) error
	List(ctx context.Context, visitID string, kind Kind) ([]Row, error)
}

var (
	ErrInvalidVisit = errors.New("invalid_visit")
	ErrUnknownKind  = errors.New("unknown_collection_kind")
)
