// Package billdoc holds the in-memory model of an itemized hospital final bill
// and the pure computations derived from it. Nothing in this package touches
// storage; the bill service flattens and restores documents at its boundary.
package billdoc

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/bwmarrin/snowflake"
)

// ItemKind discriminates the two invoice tree node variants.
type ItemKind string

const (
	KindSection  ItemKind = "section"
	KindMainItem ItemKind = "main_item"
)

// Section is a non-billable grouping header. A section carries no cost of its
// own; its date ranges exist for display and for propagation into the linked
// main item (see Document.SyncLinkedSection).
type Section struct {
	ID              snowflake.ID `json:"id"`
	Title           string       `json:"title"`
	Dates           *DateRange   `json:"dates,omitempty"`
	AdditionalDates []DateRange  `json:"additional_dates,omitempty"`
	Collapsed       bool         `json:"collapsed"`

	// LinkedMainItemID names the one main item whose sub-item date ranges
	// mirror this section's ranges. Zero when the section drives nothing.
	LinkedMainItemID snowflake.ID `json:"linked_main_item_id,omitempty"`
}

const dayPlaceholder = "( Days)"

// RenderTitle substitutes the day-count placeholder with the inclusive day
// count of the section's range. Display-only; the stored title keeps the
// placeholder.
func (s *Section) RenderTitle() string {
	if !strings.Contains(s.Title, dayPlaceholder) {
		return s.Title
	}
	return strings.Replace(s.Title, dayPlaceholder, fmt.Sprintf("(%d Days)", s.Dates.Days()), 1)
}

// MainItem is a billable category owning ordered sub-item rows.
type MainItem struct {
	ID          snowflake.ID `json:"id"`
	SrNo        int          `json:"sr_no"`
	Description string       `json:"description"`
	SubItems    []SubItem    `json:"sub_items"`
}

// Amount is the displayed category amount: the sum of stored sub-item amounts.
func (m *MainItem) Amount() int64 {
	var sum int64
	for i := range m.SubItems {
		sum += m.SubItems[i].Amount
	}
	return sum
}

// SubItem is the leaf billable row. Amount is stored independently of
// Rate×Quantity so operators can override it; the mutation API re-derives it
// only when rate, quantity, or dates change.
type SubItem struct {
	ID              snowflake.ID `json:"id"`
	Label           string       `json:"label"`
	Description     string       `json:"description"`
	Code            string       `json:"code,omitempty"`
	Rate            int64        `json:"rate"`
	Quantity        int64        `json:"quantity"`
	Amount          int64        `json:"amount"`
	Dates           *DateRange   `json:"dates,omitempty"`
	AdditionalDates []DateRange  `json:"additional_dates,omitempty"`
}

// Item is the tagged union stored in document order.
type Item struct {
	Kind    ItemKind
	Section *Section
	Main    *MainItem
}

type itemJSON struct {
	Kind    ItemKind  `json:"kind"`
	Section *Section  `json:"section,omitempty"`
	Main    *MainItem `json:"main_item,omitempty"`
}

func (i Item) MarshalJSON() ([]byte, error) {
	return json.Marshal(itemJSON{Kind: i.Kind, Section: i.Section, Main: i.Main})
}

func (i *Item) UnmarshalJSON(b []byte) error {
	var raw itemJSON
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	switch raw.Kind {
	case KindSection:
		if raw.Section == nil {
			return fmt.Errorf("section item without section body")
		}
	case KindMainItem:
		if raw.Main == nil {
			return fmt.Errorf("main_item item without main_item body")
		}
	default:
		return fmt.Errorf("unknown item kind %q", raw.Kind)
	}
	i.Kind = raw.Kind
	i.Section = raw.Section
	i.Main = raw.Main
	return nil
}

// Document is the ordered invoice tree plus the parallel surgical charge list.
type Document struct {
	Items     []Item       `json:"items"`
	Surgeries []SurgeryRow `json:"surgeries"`
}

func (d *Document) findSection(id snowflake.ID) *Section {
	for i := range d.Items {
		if d.Items[i].Kind == KindSection && d.Items[i].Section.ID == id {
			return d.Items[i].Section
		}
	}
	return nil
}

func (d *Document) findMainItem(id snowflake.ID) *MainItem {
	for i := range d.Items {
		if d.Items[i].Kind == KindMainItem && d.Items[i].Main.ID == id {
			return d.Items[i].Main
		}
	}
	return nil
}

// MainItems returns the billable categories in document order.
func (d *Document) MainItems() []*MainItem {
	out := make([]*MainItem, 0, len(d.Items))
	for i := range d.Items {
		if d.Items[i].Kind == KindMainItem {
			out = append(out, d.Items[i].Main)
		}
	}
	return out
}

// Sections returns the grouping headers in document order.
func (d *Document) Sections() []*Section {
	out := make([]*Section, 0, len(d.Items))
	for i := range d.Items {
		if d.Items[i].Kind == KindSection {
			out = append(out, d.Items[i].Section)
		}
	}
	return out
}
