// Package seed bootstraps the CGHS reference catalog so a fresh install can
// search and bill without an import step.
package seed

import (
	"context"
	"errors"

	"github.com/bwmarrin/snowflake"
	catalogdomain "github.com/chatgptnotes/esic-billing/internal/catalog/domain"
	"gorm.io/gorm"
)

// EnsureCatalog inserts the starter reference rows when their tables are
// empty. Existing data is never touched.
func EnsureCatalog(db *gorm.DB) error {
	if db == nil {
		return errors.New("seed database handle is required")
	}

	node, err := snowflake.NewNode(1)
	if err != nil {
		return err
	}

	ctx := context.Background()
	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := ensureDiagnoses(tx, node); err != nil {
			return err
		}
		if err := ensureSurgeries(tx, node); err != nil {
			return err
		}
		if err := ensureLabs(tx, node); err != nil {
			return err
		}
		if err := ensureRadiology(tx, node); err != nil {
			return err
		}
		if err := ensureMedications(tx, node); err != nil {
			return err
		}
		return ensureComplications(tx, node)
	})
}

func isEmpty(tx *gorm.DB, model any) (bool, error) {
	var count int64
	if err := tx.Model(model).Count(&count).Error; err != nil {
		return false, err
	}
	return count == 0, nil
}

func ensureDiagnoses(tx *gorm.DB, node *snowflake.Node) error {
	empty, err := isEmpty(tx, &catalogdomain.Diagnosis{})
	if err != nil || !empty {
		return err
	}

	rows := []catalogdomain.Diagnosis{
		{Name: "Acute Appendicitis", ICDCode: "K35"},
		{Name: "Cholelithiasis", ICDCode: "K80"},
		{Name: "Inguinal Hernia", ICDCode: "K40"},
		{Name: "Type 2 Diabetes Mellitus", ICDCode: "E11"},
		{Name: "Essential Hypertension", ICDCode: "I10"},
		{Name: "Acute Gastroenteritis", ICDCode: "A09"},
	}
	for i := range rows {
		rows[i].ID = node.Generate()
	}
	return tx.Create(&rows).Error
}

func ensureSurgeries(tx *gorm.DB, node *snowflake.Node) error {
	empty, err := isEmpty(tx, &catalogdomain.Surgery{})
	if err != nil || !empty {
		return err
	}

	rows := []catalogdomain.Surgery{
		{Name: "Appendicectomy", CGHSCode: "CGHS-0347", CGHSRate: 10000, GuidelineRate: 9000},
		{Name: "Laparoscopic Cholecystectomy", CGHSCode: "CGHS-0512", CGHSRate: 18000, GuidelineRate: 16200},
		{Name: "Inguinal Hernia Repair", CGHSCode: "CGHS-0421", CGHSRate: 12500, GuidelineRate: 11250},
		{Name: "Haemorrhoidectomy", CGHSCode: "CGHS-0388", CGHSRate: 8000, GuidelineRate: 7200},
	}
	for i := range rows {
		rows[i].ID = node.Generate()
	}
	return tx.Create(&rows).Error
}

func ensureLabs(tx *gorm.DB, node *snowflake.Node) error {
	empty, err := isEmpty(tx, &catalogdomain.Lab{})
	if err != nil || !empty {
		return err
	}

	rows := []catalogdomain.Lab{
		{Name: "Complete Blood Count", CGHSCode: "LAB-001", NABHRate: 116, NonNABHRate: 98},
		{Name: "Blood Sugar Fasting", CGHSCode: "LAB-014", NABHRate: 46, NonNABHRate: 40},
		{Name: "Serum Creatinine", CGHSCode: "LAB-022", NABHRate: 58, NonNABHRate: 50},
		{Name: "Liver Function Test", CGHSCode: "LAB-031", NABHRate: 261, NonNABHRate: 227},
	}
	for i := range rows {
		rows[i].ID = node.Generate()
	}
	return tx.Create(&rows).Error
}

func ensureRadiology(tx *gorm.DB, node *snowflake.Node) error {
	empty, err := isEmpty(tx, &catalogdomain.Radiology{})
	if err != nil || !empty {
		return err
	}

	rows := []catalogdomain.Radiology{
		{Name: "X-Ray Chest PA", CGHSCode: "RAD-001", NABHRate: 92, NonNABHRate: 80},
		{Name: "USG Abdomen", CGHSCode: "RAD-017", NABHRate: 518, NonNABHRate: 450},
		{Name: "CT Scan Head", CGHSCode: "RAD-042", NABHRate: 1466, NonNABHRate: 1275},
	}
	for i := range rows {
		rows[i].ID = node.Generate()
	}
	return tx.Create(&rows).Error
}

func ensureMedications(tx *gorm.DB, node *snowflake.Node) error {
	empty, err := isEmpty(tx, &catalogdomain.Medication{})
	if err != nil || !empty {
		return err
	}

	rows := []catalogdomain.Medication{
		{Name: "Ceftriaxone", Strength: "1g", Route: "IV", Cost: 85},
		{Name: "Paracetamol", Strength: "500mg", Route: "PO", Cost: 2},
		{Name: "Pantoprazole", Strength: "40mg", Route: "IV", Cost: 18},
		{Name: "Metronidazole", Strength: "500mg", Route: "IV", Cost: 24},
	}
	for i := range rows {
		rows[i].ID = node.Generate()
	}
	return tx.Create(&rows).Error
}

func ensureComplications(tx *gorm.DB, node *snowflake.Node) error {
	empty, err := isEmpty(tx, &catalogdomain.Complication{})
	if err != nil || !empty {
		return err
	}

	rows := []catalogdomain.Complication{
		{Name: "Surgical Site Infection", RiskLevel: "moderate"},
		{Name: "Post-operative Ileus", RiskLevel: "low"},
		{Name: "Deep Vein Thrombosis", RiskLevel: "high"},
	}
	for i := range rows {
		rows[i].ID = node.Generate()
	}
	return tx.Create(&rows).Error
}
