package migration

import (
	billdomain "github.com/chatgptnotes/esic-billing/internal/bill/domain"
	catalogdomain "github.com/chatgptnotes/esic-billing/internal/catalog/domain"
	"github.com/chatgptnotes/esic-billing/internal/config"
	draftdomain "github.com/chatgptnotes/esic-billing/internal/draft/domain"
	"github.com/chatgptnotes/esic-billing/internal/seed"
	visitdomain "github.com/chatgptnotes/esic-billing/internal/visit/domain"
	"go.uber.org/fx"
	"gorm.io/gorm"
)

var Module = fx.Module("migrations",
	fx.Invoke(func(conn *gorm.DB, cfg config.Config) error {
		if cfg.DBType == "postgres" {
			sqlDB, err := conn.DB()
			if err != nil {
				return err
			}
			if err := RunMigrations(sqlDB); err != nil {
				return err
			}
		} else {
			if err := autoMigrate(conn); err != nil {
				return err
			}
		}

		return seed.EnsureCatalog(conn)
	}),
)

func autoMigrate(conn *gorm.DB) error {
	return conn.AutoMigrate(
		&billdomain.Bill{},
		&billdomain.BillSection{},
		&billdomain.BillLineItem{},
		&visitdomain.VisitDiagnosis{},
		&visitdomain.VisitSurgery{},
		&visitdomain.VisitComplication{},
		&visitdomain.VisitLab{},
		&visitdomain.VisitRadiology{},
		&visitdomain.VisitMedication{},
		&draftdomain.BillDraft{},
		&catalogdomain.Diagnosis{},
		&catalogdomain.Surgery{},
		&catalogdomain.Lab{},
		&catalogdomain.Radiology{},
		&catalogdomain.Medication{},
		&catalogdomain.Complication{},
	)
}
