package billdoc

import "github.com/bwmarrin/snowflake"

// AdjustmentCode selects a CGHS percentage reduction for a surgical charge.
type AdjustmentCode string

const (
	AdjustmentNone         AdjustmentCode = "none"
	AdjustmentWard10       AdjustmentCode = "ward10"       // general ward entitlement
	AdjustmentGuideline25  AdjustmentCode = "guideline25"  // CGHS guideline reduction
	AdjustmentSecond50     AdjustmentCode = "second50"     // second procedure, same sitting
	AdjustmentSubsequent75 AdjustmentCode = "subsequent75" // third and later procedures
)

// AdjustmentOption describes one selectable reduction.
type AdjustmentOption struct {
	Code    AdjustmentCode `json:"code"`
	Label   string         `json:"label"`
	Percent float64        `json:"percent"`
}

// AdjustmentOptions lists the selectable reductions, keyed uniquely by code.
var AdjustmentOptions = []AdjustmentOption{
	{Code: AdjustmentNone, Label: "No Adjustment", Percent: 0},
	{Code: AdjustmentWard10, Label: "Ward Entitlement (-10%)", Percent: 10},
	{Code: AdjustmentGuideline25, Label: "As per CGHS Guideline (-25%)", Percent: 25},
	{Code: AdjustmentSecond50, Label: "Second Procedure (-50%)", Percent: 50},
	{Code: AdjustmentSubsequent75, Label: "Subsequent Procedure (-75%)", Percent: 75},
}

// AdjustmentPercent resolves a code to its percentage. Unknown or empty codes
// behave as no adjustment.
func AdjustmentPercent(code AdjustmentCode) float64 {
	for _, opt := range AdjustmentOptions {
		if opt.Code == code {
			return opt.Percent
		}
	}
	return 0
}

// SurgeryRow is a standalone surgical charge subject to up to two sequential
// percentage reductions. It lives beside the invoice tree, not inside it.
type SurgeryRow struct {
	ID                  snowflake.ID   `json:"id"`
	Name                string         `json:"name"`
	Code                string         `json:"code,omitempty"`
	Rate                int64          `json:"rate"`
	Quantity            int64          `json:"quantity"`
	PrimaryAdjustment   AdjustmentCode `json:"primary_adjustment,omitempty"`
	SecondaryAdjustment AdjustmentCode `json:"secondary_adjustment,omitempty"`
}

// Base is the undiscounted charge.
func (r *SurgeryRow) Base() int64 {
	return r.Rate * r.Quantity
}

// Final applies the two reductions in sequence: the second percentage is taken
// from the post-first-discount amount, not the original base.
func (r *SurgeryRow) Final() float64 {
	base := float64(r.Base())
	afterFirst := base - base*(AdjustmentPercent(r.PrimaryAdjustment)/100)
	return afterFirst - afterFirst*(AdjustmentPercent(r.SecondaryAdjustment)/100)
}
