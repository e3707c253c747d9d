package service

import (
	"context"
	"strings"

	"github.com/bwmarrin/snowflake"
	catalogdomain "github.com/chatgptnotes/esic-billing/internal/catalog/domain"
	"github.com/chatgptnotes/esic-billing/pkg/db/option"
	"github.com/chatgptnotes/esic-billing/pkg/db/pagination"
	"github.com/chatgptnotes/esic-billing/pkg/repository"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// minQueryLen gates searching until the query is specific enough to bound the
// result set.
const minQueryLen = 2

type ServiceParam struct {
	fx.In

	DB  *gorm.DB
	Log *zap.Logger
}

type Service struct {
	log           *zap.Logger
	diagnoses     repository.Repository[catalogdomain.Diagnosis]
	surgeries     repository.Repository[catalogdomain.Surgery]
	labs          repository.Repository[catalogdomain.Lab]
	radiology     repository.Repository[catalogdomain.Radiology]
	medications   repository.Repository[catalogdomain.Medication]
	complications repository.Repository[catalogdomain.Complication]
}

func NewService(p ServiceParam) catalogdomain.Service {
	return &Service{
		log:           p.Log.Named("catalog.service"),
		diagnoses:     repository.ProvideStore[catalogdomain.Diagnosis](p.DB),
		surgeries:     repository.ProvideStore[catalogdomain.Surgery](p.DB),
		labs:          repository.ProvideStore[catalogdomain.Lab](p.DB),
		radiology:     repository.ProvideStore[catalogdomain.Radiology](p.DB),
		medications:   repository.ProvideStore[catalogdomain.Medication](p.DB),
		complications: repository.ProvideStore[catalogdomain.Complication](p.DB),
	}
}

func (s *Service) Search(ctx context.Context, req catalogdomain.SearchRequest) (catalogdomain.SearchResponse, error) {
	if len(strings.TrimSpace(req.Query)) < minQueryLen {
		return catalogdomain.SearchResponse{
			Entries:  []catalogdomain.Entry{},
			PageInfo: &pagination.PageInfo{},
		}, nil
	}

	switch req.Kind {
	case catalogdomain.KindDiagnosis:
		return search(ctx, s.diagnoses, req, func(d *catalogdomain.Diagnosis) catalogdomain.Entry {
			return catalogdomain.Entry{ID: d.ID, Name: d.Name, Code: d.ICDCode, Detail: d.ICDCode}
		})
	case catalogdomain.KindSurgery:
		return search(ctx, s.surgeries, req, func(x *catalogdomain.Surgery) catalogdomain.Entry {
			return catalogdomain.Entry{ID: x.ID, Name: x.Name, Code: x.CGHSCode, Rate: x.CGHSRate}
		})
	case catalogdomain.KindLab:
		return search(ctx, s.labs, req, func(x *catalogdomain.Lab) catalogdomain.Entry {
			return catalogdomain.Entry{ID: x.ID, Name: x.Name, Code: x.CGHSCode, Rate: x.NABHRate}
		})
	case catalogdomain.KindRadiology:
		return search(ctx, s.radiology, req, func(x *catalogdomain.Radiology) catalogdomain.Entry {
			return catalogdomain.Entry{ID: x.ID, Name: x.Name, Code: x.CGHSCode, Rate: x.NABHRate}
		})
	case catalogdomain.KindMedication:
		return search(ctx, s.medications, req, func(x *catalogdomain.Medication) catalogdomain.Entry {
			return catalogdomain.Entry{ID: x.ID, Name: x.Name, Rate: x.Cost, Detail: x.Strength}
		})
	case catalogdomain.KindComplication:
		return search(ctx, s.complications, req, func(x *catalogdomain.Complication) catalogdomain.Entry {
			return catalogdomain.Entry{ID: x.ID, Name: x.Name, Detail: x.RiskLevel}
		})
	default:
		return catalogdomain.SearchResponse{}, catalogdomain.ErrUnknownKind
	}
}

func search[T any](ctx context.Context, repo repository.Repository[T], req catalogdomain.SearchRequest, toEntry func(*T) catalogdomain.Entry) (catalogdomain.SearchResponse, error) {
	limit := req.PageSize
	if limit <= 0 {
		limit = 10
	}
	if limit > 250 {
		limit = 250
	}

	opts := []option.QueryOption{
		option.ApplyOperator(option.Condition{
			Field:    "LOWER(name)",
			Operator: option.LIKE,
			Value:    "%" + strings.ToLower(strings.TrimSpace(req.Query)) + "%",
		}),
		option.WithSortBy(option.QuerySortBy{Field: "id", Allow: map[string]bool{"id": true}}),
		option.WithLimit(limit + 1),
	}

	if req.PageToken != "" {
		cursor, err := pagination.DecodeCursor(req.PageToken)
		if err != nil {
			return catalogdomain.SearchResponse{}, err
		}
		after, err := snowflake.ParseString(cursor.ID)
		if err != nil {
			return catalogdomain.SearchResponse{}, err
		}
		opts = append(opts, option.ApplyOperator(option.Condition{
			Field:    "id",
			Operator: option.GT,
			Value:    after,
		}))
	}

	data, err := repo.Find(ctx, new(T), opts...)
	if err != nil {
		return catalogdomain.SearchResponse{}, err
	}

	pageInfo, data := pagination.BuildCursorPageInfo(data, limit, func(t *T) string {
		token, _ := pagination.EncodeCursor(pagination.Cursor{ID: toEntry(t).ID.String()})
		return token
	})

	entries := make([]catalogdomain.Entry, 0, len(data))
	for _, t := range data {
		entries = append(entries, toEntry(t))
	}

	return catalogdomain.SearchResponse{Entries: entries, PageInfo: pageInfo}, nil
}
