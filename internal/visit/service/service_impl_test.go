package service

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	visitdomain "github.com/chatgptnotes/esic-billing/internal/visit/domain"
	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func setupService(t *testing.T) (visitdomain.Service, *snowflake.Node) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())), &gorm.Config{})
	require.NoError(t, err)

	err = db.AutoMigrate(
		&visitdomain.VisitDiagnosis{},
		&visitdomain.VisitSurgery{},
		&visitdomain.VisitComplication{},
		&visitdomain.VisitLab{},
		&visitdomain.VisitRadiology{},
		&visitdomain.VisitMedication{},
	)
	require.NoError(t, err)

	node, err := snowflake.NewNode(1)
	require.NoError(t, err)

	return NewService(ServiceParam{DB: db, Log: zap.NewNop(), GenID: node}), node
}

func TestParseKind(t *testing.T) {
	for _, raw := range []string{"diagnosis", "surgery", "complication", "lab", "radiology", "medication"} {
		kind, err := visitdomain.ParseKind(raw)
		require.NoError(t, err)
		assert.Equal(t, visitdomain.Kind(raw), kind)
	}

	_, err := visitdomain.ParseKind("vitals")
	assert.ErrorIs(t, err, visitdomain.ErrUnknownKind)
}

func TestUpsert_DiagnosisAppendsWithDedup(t *testing.T) {
	svc, node := setupService(t)
	ctx := context.Background()

	d1 := node.Generate()
	d2 := node.Generate()

	err := svc.Upsert(ctx, "VISIT-DX", visitdomain.KindDiagnosis, []visitdomain.Row{
		{EntityID: d1, IsPrimary: true},
	})
	require.NoError(t, err)

	// Resubmitting d1 alongside a new entry must not duplicate it.
	err = svc.Upsert(ctx, "VISIT-DX", visitdomain.KindDiagnosis, []visitdomain.Row{
		{EntityID: d1, IsPrimary: true},
		{EntityID: d2},
	})
	require.NoError(t, err)

	rows, err := svc.List(ctx, "VISIT-DX", visitdomain.KindDiagnosis)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, d1, rows[0].EntityID)
	assert.True(t, rows[0].IsPrimary)
	assert.Equal(t, d2, rows[1].EntityID)
	assert.False(t, rows[1].IsPrimary)
}

func TestUpsert_SurgeryKeepsSanctionFields(t *testing.T) {
	svc, node := setupService(t)
	ctx := context.Background()

	id := node.Generate()
	err := svc.Upsert(ctx, "VISIT-SX", visitdomain.KindSurgery, []visitdomain.Row{
		{EntityID: id, IsPrimary: true, Status: "planned", SanctionStatus: "sanctioned"},
	})
	require.NoError(t, err)

	rows, err := svc.List(ctx, "VISIT-SX", visitdomain.KindSurgery)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "planned", rows[0].Status)
	assert.Equal(t, "sanctioned", rows[0].SanctionStatus)
	assert.True(t, rows[0].IsPrimary)
}

func TestUpsert_LabReplacesCollection(t *testing.T) {
	svc, node := setupService(t)
	ctx := context.Background()

	l1 := node.Generate()
	l2 := node.Generate()
	l3 := node.Generate()
	ordered := time.Date(2024, 3, 12, 0, 0, 0, 0, time.UTC)

	err := svc.Upsert(ctx, "VISIT-LAB", visitdomain.KindLab, []visitdomain.Row{
		{EntityID: l1, Status: "ordered"},
		{EntityID: l2, Status: "ordered"},
	})
	require.NoError(t, err)

	// A second save replaces the collection outright, dropped rows included.
	err = svc.Upsert(ctx, "VISIT-LAB", visitdomain.KindLab, []visitdomain.Row{
		{EntityID: l3, Status: "completed", Date: &ordered},
	})
	require.NoError(t, err)

	rows, err := svc.List(ctx, "VISIT-LAB", visitdomain.KindLab)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, l3, rows[0].EntityID)
	assert.Equal(t, "completed", rows[0].Status)
	require.NotNil(t, rows[0].Date)
	assert.Equal(t, ordered, rows[0].Date.UTC())
}

func TestUpsert_MedicationEmptyClearsCollection(t *testing.T) {
	svc, node := setupService(t)
	ctx := context.Background()

	err := svc.Upsert(ctx, "VISIT-RX", visitdomain.KindMedication, []visitdomain.Row{
		{EntityID: node.Generate(), Status: "active"},
	})
	require.NoError(t, err)

	require.NoError(t, svc.Upsert(ctx, "VISIT-RX", visitdomain.KindMedication, nil))

	rows, err := svc.List(ctx, "VISIT-RX", visitdomain.KindMedication)
	require.NoError(t, err)
	assert.Empty(t, rows)
}

func TestUpsert_SkipsZeroEntityIDs(t *testing.T) {
	svc, node := setupService(t)
	ctx := context.Background()

	err := svc.Upsert(ctx, "VISIT-Z", visitdomain.KindComplication, []visitdomain.Row{
		{EntityID: 0},
		{EntityID: node.Generate()},
	})
	require.NoError(t, err)

	rows, err := svc.List(ctx, "VISIT-Z", visitdomain.KindComplication)
	require.NoError(t, err)
	assert.Len(t, rows, 1)
}

func TestUpsert_Validation(t *testing.T) {
	svc, node := setupService(t)
	ctx := context.Background()

	err := svc.Upsert(ctx, "   ", visitdomain.KindDiagnosis, nil)
	assert.ErrorIs(t, err, visitdomain.ErrInvalidVisit)

	err = svc.Upsert(ctx, "VISIT-V", "vitals", []visitdomain.Row{{EntityID: node.Generate()}})
	assert.ErrorIs(t, err, visitdomain.ErrUnknownKind)

	_, err = svc.List(ctx, "", visitdomain.KindLab)
	assert.ErrorIs(t, err, visitdomain.ErrInvalidVisit)

	_, err = svc.List(ctx, "VISIT-V", "vitals")
	assert.ErrorIs(t, err, visitdomain.ErrUnknownKind)
}
