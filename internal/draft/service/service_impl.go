package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	draftdomain "github.com/chatgptnotes/esic-billing/internal/draft/domain"
	"github.com/chatgptnotes/esic-billing/pkg/db"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/datatypes"
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

func NewService(p ServiceParam) draftdomain.Service {
	return &Service{
		db:    p.DB,
		log:   p.Log.Named("draft.service"),
		genID: p.GenID,
	}
}

func (s *Service) Save(ctx context.Context, visitID string, tree datatypes.JSON) (*draftdomain.BillDraft, error) {
	visitID = strings.TrimSpace(visitID)
	if visitID == "" {
		return nil, draftdomain.ErrInvalidVisit
	}
	if len(tree) == 0 {
		return nil, draftdomain.ErrEmptyDraft
	}

	now := time.Now().UTC()

	var draft draftdomain.BillDraft
	err := s.db.WithContext(ctx).Where("visit_id = ?", visitID).First(&draft).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		draft = draftdomain.BillDraft{
			ID:      s.genID.Generate(),
			VisitID: visitID,
			Tree:    tree,
			SavedAt: now,
		}
		createErr := s.db.WithContext(ctx).Create(&draft).Error
		if createErr == nil {
			return &draft, nil
		}
		if !db.IsDuplicateKeyErr(createErr) {
			return nil, createErr
		}
		// Concurrent first save; fall through to the update path.
		if err := s.db.WithContext(ctx).Where("visit_id = ?", visitID).First(&draft).Error; err != nil {
			return nil, err
		}
	case err != nil:
		return nil, err
	}

	draft.Tree = tree
	draft.SavedAt = now
	if err := s.db.WithContext(ctx).Save(&draft).Error; err != nil {
		return nil, err
	}
	return &draft, nil
}

func (s *Service) Load(ctx context.Context, visitID string) (*draftdomain.BillDraft, error) {
	visitID = strings.TrimSpace(visitID)
	if visitID == "" {
		return nil, draftdomain.ErrInvalidVisit
	}

	var draft draftdomain.BillDraft
	err := s.db.WithContext(ctx).Where("visit_id = ?", visitID).First(&draft).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, draftdomain.ErrDraftNotFound
		}
		return nil, err
	}
	return &draft, nil
}
