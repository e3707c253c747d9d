package billdoc

import "github.com/bwmarrin/snowflake"

// Canonical category descriptions used by the seed document and by the
// defaults applied when rows are added to them.
const (
	CategoryConsultation  = "Consultation for Inpatients"
	CategoryAccommodation = "Accommodation Charges"
	CategoryPathology     = "Pathology Charges"
	CategoryRadiology     = "Radiology Charges"
	CategoryMedicine      = "Medicine Charges"
	CategoryOther         = "Other Charges"
	CategoryMiscellaneous = "Miscellaneous Charges"

	SectionConservative    = "Conservative Treatment"
	SectionSurgicalPackage = "Surgical Package ( Days)"
)

type categoryDefault struct {
	description string
	seedsOneDay bool
}

var categoryDefaults = map[string]categoryDefault{
	CategoryConsultation:  {description: "Doctor Consultation", seedsOneDay: true},
	CategoryAccommodation: {description: "General Ward", seedsOneDay: true},
}

func defaultDescription(category string) string {
	return categoryDefaults[category].description
}

func seedsOneDayRange(category string) bool {
	return categoryDefaults[category].seedsOneDay
}

// SeedDocument builds the fixed document a visit starts with before any bill
// has been saved. The conservative-treatment section is linked by id to the
// inpatient-consultation category so date edits there can be mirrored down.
func SeedDocument(gen *snowflake.Node) *Document {
	consultation := &MainItem{ID: gen.Generate(), SrNo: 1, Description: CategoryConsultation}

	conservative := &Section{
		ID:               gen.Generate(),
		Title:            SectionConservative,
		LinkedMainItemID: consultation.ID,
	}

	doc := &Document{
		Items: []Item{
			{Kind: KindSection, Section: conservative},
			{Kind: KindMainItem, Main: consultation},
			{Kind: KindMainItem, Main: &MainItem{ID: gen.Generate(), SrNo: 2, Description: CategoryAccommodation}},
			{Kind: KindMainItem, Main: &MainItem{ID: gen.Generate(), SrNo: 3, Description: CategoryPathology}},
			{Kind: KindMainItem, Main: &MainItem{ID: gen.Generate(), SrNo: 4, Description: CategoryRadiology}},
			{Kind: KindMainItem, Main: &MainItem{ID: gen.Generate(), SrNo: 5, Description: CategoryMedicine}},
			{Kind: KindSection, Section: &Section{ID: gen.Generate(), Title: SectionSurgicalPackage}},
			{Kind: KindMainItem, Main: &MainItem{ID: gen.Generate(), SrNo: 6, Description: CategoryOther}},
			{Kind: KindMainItem, Main: &MainItem{ID: gen.Generate(), SrNo: 7, Description: CategoryMiscellaneous}},
		},
	}
	return doc
}
