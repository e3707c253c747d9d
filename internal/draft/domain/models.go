// Package domain contains the per-visit draft snapshot model. A draft is the
// JSON-serialized editor tree saved independently of the final bill.
package domain

import (
	"context"
	"errors"
	"time"

	"github.com/bwmarrin/snowflake"
	"gorm.io/datatypes"
)

type BillDraft struct {
	ID      snowflake.ID   `gorm:"primaryKey"`
	VisitID string         `gorm:"type:text;not null;uniqueIndex"`
	Tree    datatypes.JSON `gorm:"not null"`
	SavedAt time.Time      `gorm:"not null"`
}

// TableName sets the database table name.
func (BillDraft) TableName() string { return "bill_drafts" }

type Service interface {
	// Save upserts the visit's draft; the previous snapshot is replaced.
	Save(ctx context.Context, visitID string, tree datatypes.JSON) (*BillDraft, error)
	Load(ctx context.Context, visitID string) (*BillDraft, error)
}

var (
	ErrInvalidVisit  = errors.New("invalid_visit")
	ErrEmptyDraft    = errors.New("empty_draft")
	ErrDraftNotFound = errors.New("draft_not_found")
)
