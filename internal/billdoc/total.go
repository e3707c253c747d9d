package billdoc

import "math"

// ComputeTotal folds the document into the single "Total Bill Amount" figure:
// the sum of every sub-item's stored amount plus the post-adjustment amount of
// every surgery row. Collapsed sections still contribute; collapsing is a
// display concern. The fold reads stored amounts as-is and never re-derives
// them, so repeated calls with no intervening mutation are bit-identical.
func (d *Document) ComputeTotal() float64 {
	var total float64
	for _, main := range d.MainItems() {
		total += float64(main.Amount())
	}
	for i := range d.Surgeries {
		total += d.Surgeries[i].Final()
	}
	return total
}

// TotalRounded returns the total in whole currency units for display and
// persistence, rounding half away from zero.
func (d *Document) TotalRounded() int64 {
	return int64(math.Round(d.ComputeTotal()))
}
