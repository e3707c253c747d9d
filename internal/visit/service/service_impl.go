package service

import (
	"context"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	visitdomain "github.com/chatgptnotes/esic-billing/internal/visit/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type ServiceParam struct {
	fx.In

	DB    *gorm.DB
	Log   *zap.Logger
	GenID *snowflake.Node
}

type Service struct {
	db    *gorm.DB
	log   *zap.Logger
	genID *snowflake.Node
}

func NewService(p ServiceParam) visitdomain.Service {
	return &Service{
		db:    p.DB,
		log:   p.Log.Named("visit.service"),
		genID: p.GenID,
	}
}

// Upsert keeps the historical split between the two collection families:
// clinical links (diagnosis/surgery/complication) only ever grow, with a
// duplicate guard on the (visit, entity) pair; ordered investigations and
// medications are replaced wholesale on every save.
func (s *Service) Upsert(ctx context.Context, visitID string, kind visitdomain.Kind, rows []visitdomain.Row) error {
	visitID = strings.TrimSpace(visitID)
	if visitID == "" {
		return visitdomain.ErrInvalidVisit
	}

	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		switch kind {
		case visitdomain.KindDiagnosis:
			existing, err := existingIDs[visitdomain.VisitDiagnosis](tx, visitID, "diagnosis_id")
			if err != nil {
				return err
			}
			return appendLinks(tx, rows, existing, func(row visitdomain.Row, now time.Time) any {
				return &visitdomain.VisitDiagnosis{
					ID: s.genID.Generate(), VisitID: visitID,
					DiagnosisID: row.EntityID, IsPrimary: row.IsPrimary, CreatedAt: now,
				}
			})
		case visitdomain.KindSurgery:
			existing, err := existingIDs[visitdomain.VisitSurgery](tx, visitID, "surgery_id")
			if err != nil {
				return err
			}
			return appendLinks(tx, rows, existing, func(row visitdomain.Row, now time.Time) any {
				return &visitdomain.VisitSurgery{
					ID: s.genID.Generate(), VisitID: visitID,
					SurgeryID: row.EntityID, IsPrimary: row.IsPrimary,
					Status: row.Status, SanctionStatus: row.SanctionStatus, CreatedAt: now,
				}
			})
		case visitdomain.KindComplication:
			existing, err := existingIDs[visitdomain.VisitComplication](tx, visitID, "complication_id")
			if err != nil {
				return err
			}
			return appendLinks(tx, rows, existing, func(row visitdomain.Row, now time.Time) any {
				return &visitdomain.VisitComplication{
					ID: s.genID.Generate(), VisitID: visitID,
					ComplicationID: row.EntityID, CreatedAt: now,
				}
			})
		case visitdomain.KindLab:
			return replaceLinks(tx, visitID, rows, &visitdomain.VisitLab{},
				func(row visitdomain.Row, now time.Time) any {
					return &visitdomain.VisitLab{
						ID: s.genID.Generate(), VisitID: visitID,
						LabID: row.EntityID, Status: row.Status, OrderedDate: row.Date, CreatedAt: now,
					}
				})
		case visitdomain.KindRadiology:
			return replaceLinks(tx, visitID, rows, &visitdomain.VisitRadiology{},
				func(row visitdomain.Row, now time.Time) any {
					return &visitdomain.VisitRadiology{
						ID: s.genID.Generate(), VisitID: visitID,
						RadiologyID: row.EntityID, Status: row.Status, OrderedDate: row.Date, CreatedAt: now,
					}
				})
		case visitdomain.KindMedication:
			return replaceLinks(tx, visitID, rows, &visitdomain.VisitMedication{},
				func(row visitdomain.Row, now time.Time) any {
					return &visitdomain.VisitMedication{
						ID: s.genID.Generate(), VisitID: visitID,
						MedicationID: row.EntityID, Status: row.Status, PrescribedDate: row.Date, CreatedAt: now,
					}
				})
		default:
			return visitdomain.ErrUnknownKind
		}
	})
}

func (s *Service) List(ctx context.Context, visitID string, kind visitdomain.Kind) ([]visitdomain.Row, error) {
	visitID = strings.TrimSpace(visitID)
	if visitID == "" {
		return nil, visitdomain.ErrInvalidVisit
	}

	db := s.db.WithContext(ctx)
	switch kind {
	case visitdomain.KindDiagnosis:
		var links []visitdomain.VisitDiagnosis
		if err := db.Where("visit_id = ?", visitID).Order("created_at, id").Find(&links).Error; err != nil {
			return nil, err
		}
		rows := make([]visitdomain.Row, 0, len(links))
		for _, l := range links {
			rows = append(rows, visitdomain.Row{EntityID: l.DiagnosisID, IsPrimary: l.IsPrimary})
		}
		return rows, nil
	case visitdomain.KindSurgery:
		var links []visitdomain.VisitSurgery
		if err := db.Where("visit_id = ?", visitID).Order("created_at, id").Find(&links).Error; err != nil {
			return nil, err
		}
		rows := make([]visitdomain.Row, 0, len(links))
		for _, l := range links {
			rows = append(rows, visitdomain.Row{
				EntityID: l.SurgeryID, IsPrimary: l.IsPrimary,
				Status: l.Status, SanctionStatus: l.SanctionStatus,
			})
		}
		return rows, nil
	case visitdomain.KindComplication:
		var links []visitdomain.VisitComplication
		if err := db.Where("visit_id = ?", visitID).Order("created_at, id").Find(&links).Error; err != nil {
			return nil, err
		}
		rows := make([]visitdomain.Row, 0, len(links))
		for _, l := range links {
			rows = append(rows, visitdomain.Row{EntityID: l.ComplicationID})
		}
		return rows, nil
	case visitdomain.KindLab:
		var links []visitdomain.VisitLab
		if err := db.Where("visit_id = ?", visitID).Order("created_at, id").Find(&links).Error; err != nil {
			return nil, err
		}
		rows := make([]visitdomain.Row, 0, len(links))
		for _, l := range links {
			rows = append(rows, visitdomain.Row{EntityID: l.LabID, Status: l.Status, Date: l.OrderedDate})
		}
		return rows, nil
	case visitdomain.KindRadiology:
		var links []visitdomain.VisitRadiology
		if err := db.Where("visit_id = ?", visitID).Order("created_at, id").Find(&links).Error; err != nil {
			return nil, err
		}
		rows := make([]visitdomain.Row, 0, len(links))
		for _, l := range links {
			rows = append(rows, visitdomain.Row{EntityID: l.RadiologyID, Status: l.Status, Date: l.OrderedDate})
		}
		return rows, nil
	case visitdomain.KindMedication:
		var links []visitdomain.VisitMedication
		if err := db.Where("visit_id = ?", visitID).Order("created_at, id").Find(&links).Error; err != nil {
			return nil, err
		}
		rows := make([]visitdomain.Row, 0, len(links))
		for _, l := range links {
			rows = append(rows, visitdomain.Row{EntityID: l.MedicationID, Status: l.Status, Date: l.PrescribedDate})
		}
		return rows, nil
	default:
		return nil, visitdomain.ErrUnknownKind
	}
}

func existingIDs[T any](tx *gorm.DB, visitID, column string) (map[snowflake.ID]bool, error) {
	var ids []snowflake.ID
	if err := tx.Model(new(T)).Where("visit_id = ?", visitID).Pluck(column, &ids).Error; err != nil {
		return nil, err
	}
	seen := make(map[snowflake.ID]bool, len(ids))
	for _, id := range ids {
		seen[id] = true
	}
	return seen, nil
}

func appendLinks(tx *gorm.DB, rows []visitdomain.Row, existing map[snowflake.ID]bool, build func(visitdomain.Row, time.Time) any) error {
	now := time.Now().UTC()
	for _, row := range rows {
		if row.EntityID == 0 || existing[row.EntityID] {
			continue
		}
		existing[row.EntityID] = true
		if err := tx.Create(build(row, now)).Error; err != nil {
			return err
		}
	}
	return nil
}

func replaceLinks(tx *gorm.DB, visitID string, rows []visitdomain.Row, model any, build func(visitdomain.Row, time.Time) any) error {
	if err := tx.Where("visit_id = ?", visitID).Delete(model).Error; err != nil {
		return err
	}
	now := time.Now().UTC()
	for _, row := range rows {
		if row.EntityID == 0 {
			continue
		}
		if err := tx.Create(build(row, now)).Error; err != nil {
			return err
		}
	}
	return nil
}
