package domain

import (
	"context"
	"errors"

	"github.com/bwmarrin/snowflake"
	"github.com/chatgptnotes/esic-billing/pkg/db/pagination"
)

// Kind names one searchable reference table.
type Kind string

const (
	KindDiagnosis    Kind = "diagnosis"
	KindSurgery      Kind = "surgery"
	KindLab          Kind = "lab"
	KindRadiology    Kind = "radiology"
	KindMedication   Kind = "medication"
	KindComplication Kind = "complication"
)

// ParseKind validates a kind from the HTTP path.
func ParseKind(raw string) (Kind, error) {
	switch Kind(raw) {
	case KindDiagnosis, KindSurgery, KindLab, KindRadiology, KindMedication, KindComplication:
		return Kind(raw), nil
	default:
		return "", ErrUnknownKind
	}
}

// Entry is the kind-agnostic search hit. Rate carries the primary tariff for
// billable kinds and stays zero otherwise; Detail carries the kind-specific
// secondary field (ICD code, strength, risk level).
type Entry struct {
	ID     snowflake.ID `json:"id"`
	Name   string       `json:"name"`
	Code   string       `json:"code,omitempty"`
	Rate   int64        `json:"rate,omitempty"`
	Detail string       `json:"detail,omitempty"`
}

type SearchRequest struct {
	Kind  Kind
	Query string
	pagination.Pagination
}

type SearchResponse struct {
	Entries  []Entry              `json:"entries"`
	PageInfo *pagination.PageInfo `json:"page_info"`
}

type Service interface {
	// Search returns an empty result until the query reaches two characters.
	Search(ctx context.Context, req SearchRequest) (SearchResponse, error)
}

var ErrUnknownKind = errors.New("unknown_catalog_kind")
