package domain

import (
	"context"
	"errors"
	"time"

	"github.com/chatgptnotes/esic-billing/internal/billdoc"
)

// LoadBillResponse carries the reconstructed document. Saved reports whether a
// bill exists in storage; when false the document is the untouched seed tree.
type LoadBillResponse struct {
	Doc         *billdoc.Document `json:"doc"`
	Saved       bool              `json:"saved"`
	BillNo      string            `json:"bill_no"`
	ClaimID     string            `json:"claim_id"`
	Category    string            `json:"category"`
	BillDate    *time.Time        `json:"bill_date,omitempty"`
	TotalAmount int64             `json:"total_amount"`
}

// SaveBillRequest overwrites the visit's stored bill with the given document.
type SaveBillRequest struct {
	VisitID  string
	Doc      *billdoc.Document
	BillNo   string
	ClaimID  string
	Category string
	BillDate *time.Time
}

type Service interface {
	Load(ctx context.Context, visitID string) (LoadBillResponse, error)
	Save(ctx context.Context, req SaveBillRequest) error
}

var (
	ErrInvalidVisit = errors.New("invalid_visit")
	ErrEmptyBill    = errors.New("empty_bill")
)
