package service

import (
	"context"
	"fmt"
	"testing"

	"github.com/bwmarrin/snowflake"
	catalogdomain "github.com/chatgptnotes/esic-billing/internal/catalog/domain"
	"github.com/chatgptnotes/esic-billing/pkg/db/pagination"
	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func setupService(t *testing.T) (catalogdomain.Service, *gorm.DB, *snowflake.Node) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())), &gorm.Config{})
	require.NoError(t, err)

	err = db.AutoMigrate(
		&catalogdomain.Diagnosis{},
		&catalogdomain.Surgery{},
		&catalogdomain.Lab{},
		&catalogdomain.Radiology{},
		&catalogdomain.Medication{},
		&catalogdomain.Complication{},
	)
	require.NoError(t, err)

	node, err := snowflake.NewNode(1)
	require.NoError(t, err)

	return NewService(ServiceParam{DB: db, Log: zap.NewNop()}), db, node
}

func TestSearch_ShortQueryReturnsNothing(t *testing.T) {
	svc, db, node := setupService(t)
	ctx := context.Background()

	require.NoError(t, db.Create(&catalogdomain.Diagnosis{ID: node.Generate(), Name: "Acute Appendicitis", ICDCode: "K35"}).Error)

	for _, q := range []string{"", "a", "  a  "} {
		resp, err := svc.Search(ctx, catalogdomain.SearchRequest{Kind: catalogdomain.KindDiagnosis, Query: q})
		require.NoError(t, err)
		assert.Empty(t, resp.Entries)
		assert.False(t, resp.PageInfo.HasMore)
	}
}

func TestSearch_MatchesCaseInsensitiveSubstring(t *testing.T) {
	svc, db, node := setupService(t)
	ctx := context.Background()

	require.NoError(t, db.Create(&catalogdomain.Surgery{ID: node.Generate(), Name: "Appendicectomy", CGHSCode: "CGHS-0347", CGHSRate: 10000}).Error)
	require.NoError(t, db.Create(&catalogdomain.Surgery{ID: node.Generate(), Name: "Cholecystectomy", CGHSCode: "CGHS-0512", CGHSRate: 18000}).Error)

	resp, err := svc.Search(ctx, catalogdomain.SearchRequest{Kind: catalogdomain.KindSurgery, Query: "APPEND"})
	require.NoError(t, err)
	require.Len(t, resp.Entries, 1)
	assert.Equal(t, "Appendicectomy", resp.Entries[0].Name)
	assert.Equal(t, "CGHS-0347", resp.Entries[0].Code)
	assert.Equal(t, int64(10000), resp.Entries[0].Rate)

	resp, err = svc.Search(ctx, catalogdomain.SearchRequest{Kind: catalogdomain.KindSurgery, Query: "ectomy"})
	require.NoError(t, err)
	assert.Len(t, resp.Entries, 2)
}

func TestSearch_CursorPagination(t *testing.T) {
	svc, db, node := setupService(t)
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		require.NoError(t, db.Create(&catalogdomain.Lab{
			ID: node.Generate(), Name: fmt.Sprintf("CBC Panel %d", i), CGHSCode: fmt.Sprintf("LAB-%d", i), NABHRate: 350,
		}).Error)
	}

	req := catalogdomain.SearchRequest{
		Kind:       catalogdomain.KindLab,
		Query:      "CBC",
		Pagination: pagination.Pagination{PageSize: 2},
	}

	seen := map[snowflake.ID]bool{}
	pages := 0
	for {
		resp, err := svc.Search(ctx, req)
		require.NoError(t, err)
		pages++
		for _, e := range resp.Entries {
			assert.False(t, seen[e.ID], "entry repeated across pages")
			seen[e.ID] = true
		}
		if !resp.PageInfo.HasMore {
			break
		}
		req.PageToken = resp.PageInfo.NextPageToken
	}

	assert.Equal(t, 3, pages)
	assert.Len(t, seen, 5)
}

func TestSearch_MedicationAndComplicationFields(t *testing.T) {
	svc, db, node := setupService(t)
	ctx := context.Background()

	require.NoError(t, db.Create(&catalogdomain.Medication{ID: node.Generate(), Name: "Ceftriaxone", Strength: "1g", Route: "IV", Cost: 85}).Error)
	require.NoError(t, db.Create(&catalogdomain.Complication{ID: node.Generate(), Name: "Surgical Site Infection", RiskLevel: "moderate"}).Error)

	resp, err := svc.Search(ctx, catalogdomain.SearchRequest{Kind: catalogdomain.KindMedication, Query: "ceft"})
	require.NoError(t, err)
	require.Len(t, resp.Entries, 1)
	assert.Equal(t, "1g", resp.Entries[0].Detail)
	assert.Equal(t, int64(85), resp.Entries[0].Rate)

	resp, err = svc.Search(ctx, catalogdomain.SearchRequest{Kind: catalogdomain.KindComplication, Query: "site"})
	require.NoError(t, err)
	require.Len(t, resp.Entries, 1)
	assert.Equal(t, "moderate", resp.Entries[0].Detail)
}

func TestSearch_UnknownKind(t *testing.T) {
	svc, _, _ := setupService(t)

	_, err := svc.Search(context.Background(), catalogdomain.SearchRequest{Kind: "vitals", Query: "ab"})
	assert.ErrorIs(t, err, catalogdomain.ErrUnknownKind)
}
