package billdoc

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestDateRange_Days(t *testing.T) {
	tests := []struct {
		name string
		r    *DateRange
		want int64
	}{
		{"nil range", nil, 1},
		{"same day", &DateRange{Start: date(2024, 3, 10), End: date(2024, 3, 10)}, 1},
		{"six day window", &DateRange{Start: date(2024, 3, 10), End: date(2024, 3, 15)}, 6},
		{"inverted clamps to one", &DateRange{Start: date(2024, 3, 15), End: date(2024, 3, 10)}, 1},
		{"missing end", &DateRange{Start: date(2024, 3, 10)}, 1},
		{"zero range", &DateRange{}, 1},
		{"month boundary", &DateRange{Start: date(2024, 2, 28), End: date(2024, 3, 1)}, 3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.r.Days())
		})
	}
}

func TestDateRange_DaysIgnoresTimeOfDay(t *testing.T) {
	r := NewDateRange(
		time.Date(2024, 3, 10, 23, 50, 0, 0, time.UTC),
		time.Date(2024, 3, 11, 0, 5, 0, 0, time.UTC),
	)
	assert.Equal(t, int64(2), r.Days())
}

func TestDateRange_JSONRoundTrip(t *testing.T) {
	r := DateRange{Start: date(2024, 3, 10), End: date(2024, 3, 15)}

	b, err := json.Marshal(r)
	assert.NoError(t, err)
	assert.JSONEq(t, `{"start":"2024-03-10","end":"2024-03-15"}`, string(b))

	var back DateRange
	assert.NoError(t, json.Unmarshal(b, &back))
	assert.Equal(t, r, back)
}

func TestTotalDays(t *testing.T) {
	primary := DateRange{Start: date(2024, 3, 1), End: date(2024, 3, 3)}
	additional := []DateRange{
		{Start: date(2024, 3, 10), End: date(2024, 3, 11)},
		{}, // empty windows are skipped
	}

	assert.Equal(t, int64(5), totalDays(&primary, additional))
	assert.Equal(t, int64(2), totalDays(nil, additional[:1]))
	assert.Equal(t, int64(1), totalDays(nil, nil))
}
