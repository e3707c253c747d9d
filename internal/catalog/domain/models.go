// Package domain contains the CGHS/NABH reference tables the editor searches
// when adding rows to a bill.
package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
)

// Diagnosis is an ICD-coded diagnosis reference entry.
type Diagnosis struct {
	ID        snowflake.ID `gorm:"primaryKey"`
	Name      string       `gorm:"type:text;not null;index"`
	ICDCode   string       `gorm:"type:text"`
	CreatedAt time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP"`
}

// TableName sets the database table name.
func (Diagnosis) TableName() string { return "diagnoses" }

// Surgery is a CGHS-coded procedure with its tariff rates.
type Surgery struct {
	ID            snowflake.ID `gorm:"primaryKey"`
	Name          string       `gorm:"type:text;not null;index"`
	CGHSCode      string       `gorm:"column:cghs_code;type:text"`
	CGHSRate      int64        `gorm:"column:cghs_rate;not null;default:0"`
	GuidelineRate int64        `gorm:"not null;default:0"`
	CreatedAt     time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP"`
}

// TableName sets the database table name.
func (Surgery) TableName() string { return "surgeries" }

// Lab is a laboratory investigation with NABH and non-NABH tariffs.
type Lab struct {
	ID          snowflake.ID `gorm:"primaryKey"`
	Name        string       `gorm:"type:text;not null;index"`
	CGHSCode    string       `gorm:"column:cghs_code;type:text"`
	NABHRate    int64        `gorm:"column:nabh_rate;not null;default:0"`
	NonNABHRate int64        `gorm:"column:non_nabh_rate;not null;default:0"`
	CreatedAt   time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP"`
}

// TableName sets the database table name.
func (Lab) TableName() string { return "labs" }

// Radiology is an imaging investigation with NABH and non-NABH tariffs.
type Radiology struct {
	ID          snowflake.ID `gorm:"primaryKey"`
	Name        string       `gorm:"type:text;not null;index"`
	CGHSCode    string       `gorm:"column:cghs_code;type:text"`
	NABHRate    int64        `gorm:"column:nabh_rate;not null;default:0"`
	NonNABHRate int64        `gorm:"column:non_nabh_rate;not null;default:0"`
	CreatedAt   time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP"`
}

// TableName sets the database table name.
func (Radiology) TableName() string { return "radiology" }

// Medication is a formulary entry.
type Medication struct {
	ID        snowflake.ID `gorm:"primaryKey"`
	Name      string       `gorm:"type:text;not null;index"`
	Strength  string       `gorm:"type:text"`
	Route     string       `gorm:"type:text"`
	Cost      int64        `gorm:"not null;default:0"`
	CreatedAt time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP"`
}

// TableName sets the database table name.
func (Medication) TableName() string { return "medications" }

// Complication is a recordable post-operative complication.
type Complication struct {
	ID        snowflake.ID `gorm:"primaryKey"`
	Name      string       `gorm:"type:text;not null;index"`
	RiskLevel string       `gorm:"type:text"`
	CreatedAt time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP"`
}

// TableName sets the database table name.
func (Complication) TableName() string { return "complications" }
