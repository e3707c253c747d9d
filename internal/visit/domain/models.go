// Package domain contains persistence models for visit-scoped clinical links.
package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
)

// VisitDiagnosis links a diagnosis to a visit.
type VisitDiagnosis struct {
	ID          snowflake.ID `gorm:"primaryKey"`
	VisitID     string       `gorm:"type:text;not null;index"`
	DiagnosisID snowflake.ID `gorm:"not null"`
	IsPrimary   bool         `gorm:"not null;default:false"`
	CreatedAt   time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP"`
}

// TableName sets the database table name.
func (VisitDiagnosis) TableName() string { return "visit_diagnoses" }

// VisitSurgery links a sanctioned surgery to a visit.
type VisitSurgery struct {
	ID             snowflake.ID `gorm:"primaryKey"`
	VisitID        string       `gorm:"type:text;not null;index"`
	SurgeryID      snowflake.ID `gorm:"not null"`
	IsPrimary      bool         `gorm:"not null;default:false"`
	Status         string       `gorm:"type:text"`
	SanctionStatus string       `gorm:"type:text"`
	CreatedAt      time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP"`
}

// TableName sets the database table name.
func (VisitSurgery) TableName() string { return "visit_surgeries" }

// VisitComplication links a recorded complication to a visit.
type VisitComplication struct {
	ID             snowflake.ID `gorm:"primaryKey"`
	VisitID        string       `gorm:"type:text;not null;index"`
	ComplicationID snowflake.ID `gorm:"not null"`
	CreatedAt      time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP"`
}

// TableName sets the database table name.
func (VisitComplication) TableName() string { return "visit_complications" }

// VisitLab links an ordered lab investigation to a visit.
type VisitLab struct {
	ID          snowflake.ID `gorm:"primaryKey"`
	VisitID     string       `gorm:"type:text;not null;index"`
	LabID       snowflake.ID `gorm:"not null"`
	Status      string       `gorm:"type:text"`
	OrderedDate *time.Time   `gorm:""`
	CreatedAt   time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP"`
}

// TableName sets the database table name.
func (VisitLab) TableName() string { return "visit_labs" }

// VisitRadiology links an ordered radiology investigation to a visit.
type VisitRadiology struct {
	ID          snowflake.ID `gorm:"primaryKey"`
	VisitID     string       `gorm:"type:text;not null;index"`
	RadiologyID snowflake.ID `gorm:"not null"`
	Status      string       `gorm:"type:text"`
	OrderedDate *time.Time   `gorm:""`
	CreatedAt   time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP"`
}

// TableName sets the database table name.
func (VisitRadiology) TableName() string { return "visit_radiology" }

// VisitMedication links a prescribed medication to a visit.
type VisitMedication struct {
	ID             snowflake.ID `gorm:"primaryKey"`
	VisitID        string       `gorm:"type:text;not null;index"`
	MedicationID   snowflake.ID `gorm:"not null"`
	Status         string       `gorm:"type:text"`
	PrescribedDate *time.Time   `gorm:""`
	CreatedAt      time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP"`
}

// TableName sets the database table name.
func (VisitMedication) TableName() string { return "visit_medications" }
