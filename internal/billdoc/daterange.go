package billdoc

import (
	"encoding/json"
	"strings"
	"time"
)

const dateLayout = "2006-01-02"

// DateRange is an inclusive, date-only treatment window.
type DateRange struct {
	Start time.Time
	End   time.Time
}

// NewDateRange builds a range from date-only values, dropping any time-of-day part.
func NewDateRange(start, end time.Time) DateRange {
	return DateRange{Start: truncateDay(start), End: truncateDay(end)}
}

// Days returns the inclusive whole-day count. A zero, absent, or inverted range
// never implies fewer than one day.
func (r *DateRange) Days() int64 {
	if r == nil || r.Start.IsZero() || r.End.IsZero() {
		return 1
	}
	days := int64(truncateDay(r.End).Sub(truncateDay(r.Start))/(24*time.Hour)) + 1
	if days < 1 {
		return 1
	}
	return days
}

type dateRangeJSON struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

func (r DateRange) MarshalJSON() ([]byte, error) {
	out := dateRangeJSON{}
	if !r.Start.IsZero() {
		out.Start = r.Start.Format(dateLayout)
	}
	if !r.End.IsZero() {
		out.End = r.End.Format(dateLayout)
	}
	return json.Marshal(out)
}

func (r *DateRange) UnmarshalJSON(b []byte) error {
	var raw dateRangeJSON
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	start, err := parseDate(raw.Start)
	if err != nil {
		return err
	}
	end, err := parseDate(raw.End)
	if err != nil {
		return err
	}
	r.Start = start
	r.End = end
	return nil
}

func parseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, nil
	}
	return time.ParseInLocation(dateLayout, s, time.UTC)
}

func truncateDay(t time.Time) time.Time {
	if t.IsZero() {
		return t
	}
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// totalDays sums the inclusive day counts of a primary range and its additional
// windows. Only present ranges contribute; no ranges at all still count one day.
func totalDays(primary *DateRange, additional []DateRange) int64 {
	var days int64
	if primary != nil && !primary.Start.IsZero() {
		days += primary.Days()
	}
	for i := range additional {
		r := additional[i]
		if r.Start.IsZero() && r.End.IsZero() {
			continue
		}
		days += r.Days()
	}
	if days < 1 {
		return 1
	}
	return days
}
