package billdoc

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSurgeryRow_SequentialAdjustments(t *testing.T) {
	// The second percentage applies to the post-first-discount amount:
	// (1000 - 10%) = 900, then 900 - 50% = 450. Additive math would say 400.
	row := SurgeryRow{
		Rate:                1000,
		Quantity:            1,
		PrimaryAdjustment:   AdjustmentWard10,
		SecondaryAdjustment: AdjustmentSecond50,
	}
	assert.Equal(t, float64(450), row.Final())
}

func TestSurgeryRow_AdjustmentEdgeCases(t *testing.T) {
	tests := []struct {
		name string
		row  SurgeryRow
		want float64
	}{
		{"no adjustments", SurgeryRow{Rate: 2000, Quantity: 1}, 2000},
		{"zero percent is a true no-op", SurgeryRow{Rate: 2000, Quantity: 1, PrimaryAdjustment: AdjustmentNone}, 2000},
		{"missing secondary equals zero percent", SurgeryRow{Rate: 1000, Quantity: 2, PrimaryAdjustment: AdjustmentGuideline25}, 1500},
		{"unknown code treated as no adjustment", SurgeryRow{Rate: 500, Quantity: 1, PrimaryAdjustment: "bogus"}, 500},
		{"negative inputs propagate", SurgeryRow{Rate: -100, Quantity: 2}, -200},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.row.Final())
		})
	}
}

func TestAdjustmentOptions_UniqueCodes(t *testing.T) {
	seen := map[AdjustmentCode]bool{}
	for _, opt := range AdjustmentOptions {
		assert.False(t, seen[opt.Code], "duplicate adjustment code %s", opt.Code)
		seen[opt.Code] = true
	}
}

func TestComputeTotal(t *testing.T) {
	node := newNode(t)
	doc := SeedDocument(node)

	accommodation := doc.MainItems()[1]
	require.Equal(t, CategoryAccommodation, accommodation.Description)
	row := doc.AddSubItem(node, accommodation.ID)
	doc.SetField(accommodation.ID, row.ID, FieldRate, int64(1500))
	doc.SetField(accommodation.ID, row.ID, FieldQuantity, int64(6))

	doc.Surgeries = append(doc.Surgeries, SurgeryRow{
		ID:                node.Generate(),
		Name:              "Appendicectomy",
		Code:              "CGHS-0347",
		Rate:              10000,
		Quantity:          1,
		PrimaryAdjustment: AdjustmentGuideline25,
	})

	assert.Equal(t, float64(9000+7500), doc.ComputeTotal())
	assert.Equal(t, int64(16500), doc.TotalRounded())
}

func TestComputeTotal_Idempotent(t *testing.T) {
	node := newNode(t)
	doc := SeedDocument(node)

	accommodation := doc.MainItems()[1]
	row := doc.AddSubItem(node, accommodation.ID)
	doc.SetField(accommodation.ID, row.ID, FieldRate, int64(1375))
	doc.SetField(accommodation.ID, row.ID, FieldQuantity, int64(3))
	doc.Surgeries = append(doc.Surgeries, SurgeryRow{
		Rate:                3333,
		Quantity:            1,
		PrimaryAdjustment:   AdjustmentGuideline25,
		SecondaryAdjustment: AdjustmentSecond50,
	})

	first := doc.ComputeTotal()
	second := doc.ComputeTotal()
	assert.Equal(t, first, second)
}

func TestComputeTotal_CollapsedSectionsStillCount(t *testing.T) {
	node := newNode(t)
	doc := SeedDocument(node)

	accommodation := doc.MainItems()[1]
	row := doc.AddSubItem(node, accommodation.ID)
	doc.SetField(accommodation.ID, row.ID, FieldRate, int64(800))
	doc.SetField(accommodation.ID, row.ID, FieldQuantity, int64(2))

	before := doc.ComputeTotal()
	for _, sec := range doc.Sections() {
		doc.ToggleSection(sec.ID)
	}
	assert.Equal(t, before, doc.ComputeTotal())
}

func TestComputeTotal_ReadsStoredAmounts(t *testing.T) {
	node := newNode(t)
	doc := SeedDocument(node)

	accommodation := doc.MainItems()[1]
	row := doc.AddSubItem(node, accommodation.ID)
	doc.SetField(accommodation.ID, row.ID, FieldRate, int64(1500))
	doc.SetField(accommodation.ID, row.ID, FieldQuantity, int64(6))
	doc.SetField(accommodation.ID, row.ID, FieldAmount, int64(100))

	// The override, not rate×qty, is what the fold sees.
	assert.Equal(t, float64(100), doc.ComputeTotal())
}
