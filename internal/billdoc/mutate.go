package billdoc

import (
	"time"

	"github.com/bwmarrin/snowflake"
	"go.uber.org/zap"
)

// Field names a mutable attribute on a main item or sub-item.
type Field string

const (
	FieldDescription Field = "description"
	FieldCode        Field = "code"
	FieldRate        Field = "rate"
	FieldQuantity    Field = "quantity"
	FieldAmount      Field = "amount"
	FieldDates       Field = "dates"
)

// MoveDirection selects the neighbor for MoveSubItem.
type MoveDirection string

const (
	MoveUp   MoveDirection = "up"
	MoveDown MoveDirection = "down"
)

// SetField updates one field, re-deriving quantity and amount where the edited
// field demands it. With a zero subID the edit targets the main item itself.
// Edits referencing unknown ids are logged and dropped.
//
// Derivation rules: dates recompute quantity (inclusive day count across the
// primary and additional ranges) and then amount; rate or quantity recompute
// amount. A direct amount edit sticks until the next rate/quantity/dates edit.
func (d *Document) SetField(mainID, subID snowflake.ID, field Field, value any) {
	main := d.findMainItem(mainID)
	if main == nil {
		zap.L().Warn("bill item not found", zap.Int64("main_item_id", int64(mainID)))
		return
	}

	if subID == 0 {
		if field == FieldDescription {
			if s, ok := asString(value); ok {
				main.Description = s
			}
			return
		}
		zap.L().Warn("unsupported main item field", zap.String("field", string(field)))
		return
	}

	sub := findSubItem(main, subID)
	if sub == nil {
		zap.L().Warn("bill sub-item not found",
			zap.Int64("main_item_id", int64(mainID)),
			zap.Int64("sub_item_id", int64(subID)),
		)
		return
	}

	switch field {
	case FieldDescription:
		if s, ok := asString(value); ok {
			sub.Description = s
		}
	case FieldCode:
		if s, ok := asString(value); ok {
			sub.Code = s
		}
	case FieldRate:
		if n, ok := asInt64(value); ok {
			sub.Rate = n
			sub.Amount = sub.Rate * sub.Quantity
		}
	case FieldQuantity:
		if n, ok := asInt64(value); ok {
			sub.Quantity = n
			sub.Amount = sub.Rate * sub.Quantity
		}
	case FieldAmount:
		if n, ok := asInt64(value); ok {
			sub.Amount = n
		}
	case FieldDates:
		r, ok := asDateRange(value)
		if !ok {
			zap.L().Warn("invalid dates value", zap.Int64("sub_item_id", int64(subID)))
			return
		}
		sub.Dates = r
		sub.Quantity = totalDays(sub.Dates, sub.AdditionalDates)
		sub.Amount = sub.Rate * sub.Quantity
	default:
		zap.L().Warn("unknown field", zap.String("field", string(field)))
	}
}

// AddSubItem appends a row with the category's default description, the next
// contiguous serial label, and (for date-driven categories) a one-day range
// seeded to today. Returns the new row, or nil when mainID is unknown.
func (d *Document) AddSubItem(gen *snowflake.Node, mainID snowflake.ID) *SubItem {
	main := d.findMainItem(mainID)
	if main == nil {
		zap.L().Warn("bill item not found", zap.Int64("main_item_id", int64(mainID)))
		return nil
	}

	sub := SubItem{
		ID:          gen.Generate(),
		Description: defaultDescription(main.Description),
		Quantity:    1,
	}
	if seedsOneDayRange(main.Description) {
		today := truncateDay(time.Now().UTC())
		r := DateRange{Start: today, End: today}
		sub.Dates = &r
	}
	main.SubItems = append(main.SubItems, sub)
	relabel(main)
	return &main.SubItems[len(main.SubItems)-1]
}

// RemoveSubItem deletes the row and renumbers the remaining labels from "a)".
func (d *Document) RemoveSubItem(mainID, subID snowflake.ID) {
	main := d.findMainItem(mainID)
	if main == nil {
		zap.L().Warn("bill item not found", zap.Int64("main_item_id", int64(mainID)))
		return
	}
	for i := range main.SubItems {
		if main.SubItems[i].ID == subID {
			main.SubItems = append(main.SubItems[:i], main.SubItems[i+1:]...)
			relabel(main)
			return
		}
	}
	zap.L().Warn("bill sub-item not found", zap.Int64("sub_item_id", int64(subID)))
}

// MoveSubItem swaps the row with its neighbor; moving past either end is a
// no-op. Labels are renumbered so they stay positional.
func (d *Document) MoveSubItem(mainID, subID snowflake.ID, dir MoveDirection) {
	main := d.findMainItem(mainID)
	if main == nil {
		zap.L().Warn("bill item not found", zap.Int64("main_item_id", int64(mainID)))
		return
	}
	for i := range main.SubItems {
		if main.SubItems[i].ID != subID {
			continue
		}
		j := i
		switch dir {
		case MoveUp:
			j = i - 1
		case MoveDown:
			j = i + 1
		}
		if j < 0 || j >= len(main.SubItems) || j == i {
			return
		}
		main.SubItems[i], main.SubItems[j] = main.SubItems[j], main.SubItems[i]
		relabel(main)
		return
	}
	zap.L().Warn("bill sub-item not found", zap.Int64("sub_item_id", int64(subID)))
}

// ToggleSection flips the collapse flag. Totals ignore it.
func (d *Document) ToggleSection(sectionID snowflake.ID) {
	sec := d.findSection(sectionID)
	if sec == nil {
		zap.L().Warn("bill section not found", zap.Int64("section_id", int64(sectionID)))
		return
	}
	sec.Collapsed = !sec.Collapsed
}

// SetSectionDates replaces a section's primary and additional ranges. Callers
// that edit a linked section follow up with SyncLinkedSection.
func (d *Document) SetSectionDates(sectionID snowflake.ID, primary *DateRange, additional []DateRange) {
	sec := d.findSection(sectionID)
	if sec == nil {
		zap.L().Warn("bill section not found", zap.Int64("section_id", int64(sectionID)))
		return
	}
	sec.Dates = primary
	sec.AdditionalDates = additional
}

// SyncLinkedSection propagates the section's ranges into every sub-item of its
// linked main item and re-derives each row's quantity as the day total across
// the primary and additional windows. One-directional; sections without a link
// are ignored.
func (d *Document) SyncLinkedSection(sectionID snowflake.ID) {
	sec := d.findSection(sectionID)
	if sec == nil {
		zap.L().Warn("bill section not found", zap.Int64("section_id", int64(sectionID)))
		return
	}
	if sec.LinkedMainItemID == 0 {
		return
	}
	main := d.findMainItem(sec.LinkedMainItemID)
	if main == nil {
		zap.L().Warn("linked main item not found",
			zap.Int64("section_id", int64(sectionID)),
			zap.Int64("main_item_id", int64(sec.LinkedMainItemID)),
		)
		return
	}

	days := totalDays(sec.Dates, sec.AdditionalDates)
	for i := range main.SubItems {
		sub := &main.SubItems[i]
		if sec.Dates != nil {
			r := *sec.Dates
			sub.Dates = &r
		} else {
			sub.Dates = nil
		}
		sub.AdditionalDates = append([]DateRange(nil), sec.AdditionalDates...)
		sub.Quantity = days
		sub.Amount = sub.Rate * sub.Quantity
	}
}

func findSubItem(main *MainItem, subID snowflake.ID) *SubItem {
	for i := range main.SubItems {
		if main.SubItems[i].ID == subID {
			return &main.SubItems[i]
		}
	}
	return nil
}

func asString(v any) (string, bool) {
	s, ok := v.(string)
	return s, ok
}

func asInt64(v any) (int64, bool) {
	switch n := v.(type) {
	case int64:
		return n, true
	case int:
		return int64(n), true
	case float64:
		return int64(n), true
	default:
		return 0, false
	}
}

func asDateRange(v any) (*DateRange, bool) {
	switch r := v.(type) {
	case nil:
		return nil, true
	case *DateRange:
		return r, true
	case DateRange:
		return &r, true
	default:
		return nil, false
	}
}
