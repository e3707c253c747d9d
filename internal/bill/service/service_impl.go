package service

import (
	"context"
	"encoding/json"
	"errors"
	"math"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	billdomain "github.com/chatgptnotes/esic-billing/internal/bill/domain"
	"github.com/chatgptnotes/esic-billing/internal/billdoc"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// SurgicalParent groups surgical adjustment rows in the flat storage shape.
const SurgicalParent = "Surgical Treatment"

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

func NewService(p ServiceParam) billdomain.Service {
	return &Service{
		db:    p.DB,
		log:   p.Log.Named("bill.service"),
		genID: p.GenID,
	}
}

func (s *Service) Load(ctx context.Context, visitID string) (billdomain.LoadBillResponse, error) {
	visitID = strings.TrimSpace(visitID)
	if visitID == "" {
		return billdomain.LoadBillResponse{}, billdomain.ErrInvalidVisit
	}

	doc := billdoc.SeedDocument(s.genID)

	var bill billdomain.Bill
	err := s.db.WithContext(ctx).Where("visit_id = ?", visitID).First(&bill).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return billdomain.LoadBillResponse{Doc: doc}, nil
		}
		return billdomain.LoadBillResponse{}, err
	}

	var sections []billdomain.BillSection
	if err := s.db.WithContext(ctx).
		Where("bill_id = ?", bill.ID).
		Order("position").
		Find(&sections).Error; err != nil {
		return billdomain.LoadBillResponse{}, err
	}

	var items []billdomain.BillLineItem
	if err := s.db.WithContext(ctx).
		Where("bill_id = ?", bill.ID).
		Order("position").
		Find(&items).Error; err != nil {
		return billdomain.LoadBillResponse{}, err
	}

	s.appendStored(doc, sections, items)

	return billdomain.LoadBillResponse{
		Doc:         doc,
		Saved:       true,
		BillNo:      bill.BillNo,
		ClaimID:     bill.ClaimID,
		Category:    bill.Category,
		BillDate:    bill.BillDate,
		TotalAmount: bill.TotalAmount,
	}, nil
}

// appendStored rebuilds the saved tree after the seed items: stored sections
// come back as headers (titles only; section ranges are not persisted), and
// flat rows regroup under synthetic main items keyed by parent description in
// first-seen order. Seed sections are never replaced, only augmented.
func (s *Service) appendStored(doc *billdoc.Document, sections []billdomain.BillSection, items []billdomain.BillLineItem) {
	for _, sec := range sections {
		doc.Items = append(doc.Items, billdoc.Item{
			Kind:    billdoc.KindSection,
			Section: &billdoc.Section{ID: sec.ID, Title: sec.Title},
		})
	}

	nextSrNo := 0
	for _, main := range doc.MainItems() {
		if main.SrNo > nextSrNo {
			nextSrNo = main.SrNo
		}
	}

	grouped := map[string]*billdoc.MainItem{}
	var order []string
	for _, row := range items {
		if row.ItemType == billdomain.ItemTypeSurgical {
			doc.Surgeries = append(doc.Surgeries, billdoc.SurgeryRow{
				ID:                  row.ID,
				Name:                row.Description,
				Code:                row.Code,
				Rate:                row.Rate,
				Quantity:            row.Quantity,
				PrimaryAdjustment:   billdoc.AdjustmentCode(row.PrimaryAdjustment),
				SecondaryAdjustment: billdoc.AdjustmentCode(row.SecondaryAdjustment),
			})
			continue
		}

		main, ok := grouped[row.ParentDescription]
		if !ok {
			nextSrNo++
			main = &billdoc.MainItem{
				ID:          s.genID.Generate(),
				SrNo:        nextSrNo,
				Description: row.ParentDescription,
			}
			grouped[row.ParentDescription] = main
			order = append(order, row.ParentDescription)
		}

		sub := billdoc.SubItem{
			ID:          row.ID,
			Label:       row.SrNo,
			Description: row.Description,
			Code:        row.Code,
			Rate:        row.Rate,
			Quantity:    row.Quantity,
			Amount:      row.Amount,
		}
		sub.Dates, sub.AdditionalDates = decodeDates(row.DatesInfo, s.log)
		main.SubItems = append(main.SubItems, sub)
	}

	for _, parent := range order {
		doc.Items = append(doc.Items, billdoc.Item{Kind: billdoc.KindMainItem, Main: grouped[parent]})
	}
}

func (s *Service) Save(ctx context.Context, req billdomain.SaveBillRequest) error {
	visitID := strings.TrimSpace(req.VisitID)
	if visitID == "" {
		return billdomain.ErrInvalidVisit
	}
	if req.Doc == nil {
		return billdomain.ErrEmptyBill
	}

	claimID := NormalizeClaimID(req.ClaimID)
	total := req.Doc.TotalRounded()
	now := time.Now().UTC()

	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var bill billdomain.Bill
		creating := false
		err := tx.Where("visit_id = ?", visitID).First(&bill).Error
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			creating = true
			bill = billdomain.Bill{
				ID:        s.genID.Generate(),
				VisitID:   visitID,
				CreatedAt: now,
			}
		case err != nil:
			return err
		}

		bill.BillNo = strings.TrimSpace(req.BillNo)
		bill.ClaimID = claimID
		bill.Category = strings.TrimSpace(req.Category)
		bill.BillDate = req.BillDate
		bill.TotalAmount = total
		bill.UpdatedAt = now
		if creating {
			err = tx.Create(&bill).Error
		} else {
			err = tx.Save(&bill).Error
		}
		if err != nil {
			return err
		}

		// Full overwrite: saving is never a diff against what is stored.
		if err := tx.Where("bill_id = ?", bill.ID).Delete(&billdomain.BillSection{}).Error; err != nil {
			return err
		}
		if err := tx.Where("bill_id = ?", bill.ID).Delete(&billdomain.BillLineItem{}).Error; err != nil {
			return err
		}

		sections, items := s.flatten(bill.ID, req.Doc)
		if len(sections) > 0 {
			if err := tx.Create(&sections).Error; err != nil {
				return err
			}
		}
		if len(items) > 0 {
			if err := tx.Create(&items).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

func (s *Service) flatten(billID snowflake.ID, doc *billdoc.Document) ([]billdomain.BillSection, []billdomain.BillLineItem) {
	var sections []billdomain.BillSection
	var items []billdomain.BillLineItem

	position := 0
	for _, item := range doc.Items {
		position++
		switch item.Kind {
		case billdoc.KindSection:
			sections = append(sections, billdomain.BillSection{
				ID:       s.genID.Generate(),
				BillID:   billID,
				Position: position,
				Title:    item.Section.Title,
			})
		case billdoc.KindMainItem:
			main := item.Main
			for i := range main.SubItems {
				sub := &main.SubItems[i]
				position++
				items = append(items, billdomain.BillLineItem{
					ID:                s.genID.Generate(),
					BillID:            billID,
					Position:          position,
					ParentDescription: main.Description,
					SrNo:              sub.Label,
					Description:       sub.Description,
					Code:              sub.Code,
					Rate:              sub.Rate,
					Quantity:          sub.Quantity,
					Amount:            sub.Amount,
					ItemType:          billdomain.ItemTypeStandard,
					DatesInfo:         encodeDates(sub.Dates, sub.AdditionalDates, s.log),
				})
			}
		}
	}

	for i := range doc.Surgeries {
		row := &doc.Surgeries[i]
		position++
		items = append(items, billdomain.BillLineItem{
			ID:                  s.genID.Generate(),
			BillID:              billID,
			Position:            position,
			ParentDescription:   SurgicalParent,
			Description:         row.Name,
			Code:                row.Code,
			Rate:                row.Rate,
			Quantity:            row.Quantity,
			Amount:              int64(math.Round(row.Final())),
			ItemType:            billdomain.ItemTypeSurgical,
			BaseAmount:          row.Base(),
			PrimaryAdjustment:   string(row.PrimaryAdjustment),
			SecondaryAdjustment: string(row.SecondaryAdjustment),
		})
	}

	return sections, items
}

// NormalizeClaimID collapses whitespace and removes duplicate tokens while
// keeping the original token order.
func NormalizeClaimID(claimID string) string {
	tokens := strings.Fields(claimID)
	seen := make(map[string]bool, len(tokens))
	out := tokens[:0]
	for _, tok := range tokens {
		if seen[tok] {
			continue
		}
		seen[tok] = true
		out = append(out, tok)
	}
	return strings.Join(out, " ")
}

type datesInfo struct {
	Primary    *billdoc.DateRange  `json:"primary,omitempty"`
	Additional []billdoc.DateRange `json:"additional,omitempty"`
}

func encodeDates(primary *billdoc.DateRange, additional []billdoc.DateRange, log *zap.Logger) datatypes.JSON {
	if primary == nil && len(additional) == 0 {
		return nil
	}
	b, err := json.Marshal(datesInfo{Primary: primary, Additional: additional})
	if err != nil {
		log.Warn("encode dates_info", zap.Error(err))
		return nil
	}
	return datatypes.JSON(b)
}

func decodeDates(raw datatypes.JSON, log *zap.Logger) (*billdoc.DateRange, []billdoc.DateRange) {
	if len(raw) == 0 {
		return nil, nil
	}
	var info datesInfo
	if err := json.Unmarshal(raw, &info); err != nil {
		log.Warn("decode dates_info", zap.Error(err))
		return nil, nil
	}
	return info.Primary, info.Additional
}
