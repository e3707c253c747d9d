// Package domain contains persistence models for the final bill.
package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
	"gorm.io/datatypes"
)

// ItemType distinguishes tree line items from surgical adjustment rows in the
// flat storage shape.
type ItemType string

const (
	ItemTypeStandard ItemType = "standard"
	ItemTypeSurgical ItemType = "surgical"
)

// Bill is the per-visit header row. A visit has at most one bill; each save
// fully overwrites the stored sections and line items.
type Bill struct {
	ID          snowflake.ID `gorm:"primaryKey"`
	VisitID     string       `gorm:"type:text;not null;uniqueIndex:ux_bill_visit"`
	BillNo      string       `gorm:"type:text"`
	ClaimID     string       `gorm:"type:text"`
	Category    string       `gorm:"type:text"`
	BillDate    *time.Time   `gorm:""`
	TotalAmount int64        `gorm:"not null;default:0"`
	CreatedAt   time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP"`
	UpdatedAt   time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP"`
}

// TableName sets the database table name.
func (Bill) TableName() string { return "bills" }

// BillSection is a stored grouping header. Date ranges are not persisted for
// sections; reconstruction restores titles only.
type BillSection struct {
	ID       snowflake.ID `gorm:"primaryKey"`
	BillID   snowflake.ID `gorm:"not null;index"`
	Position int          `gorm:"not null"`
	Title    string       `gorm:"type:text;not null"`
}

// TableName sets the database table name.
func (BillSection) TableName() string { return "bill_sections" }

// BillLineItem is one flattened invoice row. Tree rows carry their owning
// category in ParentDescription; surgical rows carry the adjustment columns.
type BillLineItem struct {
	ID                  snowflake.ID   `gorm:"primaryKey"`
	BillID              snowflake.ID   `gorm:"not null;index"`
	Position            int            `gorm:"not null"`
	ParentDescription   string         `gorm:"type:text;not null"`
	SrNo                string         `gorm:"type:text"`
	Description         string         `gorm:"type:text"`
	Code                string         `gorm:"column:cghs_nabh_code;type:text"`
	Rate                int64          `gorm:"column:cghs_nabh_rate;not null;default:0"`
	Quantity            int64          `gorm:"column:qty;not null;default:0"`
	Amount              int64          `gorm:"not null;default:0"`
	ItemType            ItemType       `gorm:"type:text;not null;default:'standard'"`
	DatesInfo           datatypes.JSON `gorm:"column:dates_info"`
	BaseAmount          int64          `gorm:"not null;default:0"`
	PrimaryAdjustment   string         `gorm:"type:text"`
	SecondaryAdjustment string         `gorm:"type:text"`
}

// TableName sets the database table name.
func (BillLineItem) TableName() string { return "bill_line_items" }
