package pdf

import (
	"context"
	"io"

	"github.com/chatgptnotes/esic-billing/internal/billdoc"
)

// BillData carries everything the final-bill PDF needs.
type BillData struct {
	HospitalName    string
	HospitalAddress string

	VisitID  string
	BillNo   string
	ClaimID  string
	Category string
	BillDate string

	Doc *billdoc.Document
}

type Provider interface {
	RenderBill(ctx context.Context, data BillData) (io.Reader, error)
}

type NoOpProvider struct{}

func (p *NoOpProvider) RenderBill(ctx context.Context, data BillData) (io.Reader, error) {
	return nil, nil
}
