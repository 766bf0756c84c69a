package ledger

import (
	"fmt"
	"time"
)

// Period is a reporting window ending now.
type Period string

// Supported periods. All means no time filter.
const (
	All   Period = ""
	Day   Period = "day"
	Week  Period = "week"
	Month Period = "month"
)

// ParsePeriod validates a period tag.
func ParsePeriod(s string) (Period, error) {
	switch p := Period(s); p {
	case All, Day, Week, Month:
		return p, nil
	default:
		return All, fmt.Errorf("unknown period %q", s)
	}
}

// Since returns the start of the period containing now, in now's location.
// Day starts at midnight, week on the most recent Monday, month on the first.
// It returns nil for All.
func (p Period) Since(now time.Time) *time.Time {
	y, m, d := now.Date()
	loc := now.Location()

	var start time.Time
	switch p {
	case Day:
		start = time.Date(y, m, d, 0, 0, 0, 0, loc)
	case Week:
		offset := (int(now.Weekday()) + 6) % 7
		start = time.Date(y, m, d-offset, 0, 0, 0, 0, loc)
	case Month:
		start = time.Date(y, m, 1, 0, 0, 0, 0, loc)
	default:
		return nil
	}
	return &start
}
