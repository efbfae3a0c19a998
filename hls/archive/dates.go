package archive

import (
	"fmt"
	"time"
)

var dateLayouts = []string{"20060102", "2006-01-02"}

// ParseDate parses a calendar date in YYYYMMDD or YYYY-MM-DD form.
func ParseDate(s string) (time.Time, error) {
	for _, layout := range dateLayouts {
		if t, err := time.ParseInLocation(layout, s, time.UTC); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("archive: invalid date %q: expected YYYYMMDD or YYYY-MM-DD", s)
}

var monthLayouts = []string{"200601", "2006-01"}

// ParseMonth parses a year-month in YYYYMM or YYYY-MM form.
func ParseMonth(s string) (year, month int, err error) {
	for _, layout := range monthLayouts {
		if t, err := time.ParseInLocation(layout, s, time.UTC); err == nil {
			return t.Year(), int(t.Month()), nil
		}
	}
	return 0, 0, fmt.Errorf("archive: invalid month %q: expected YYYYMM or YYYY-MM", s)
}

// lastDayOfMonth is the day number of the final day of a month: the first
// day of the next month minus one day.
func lastDayOfMonth(year, month int) int {
	return time.Date(year, time.Month(month)+1, 1, 0, 0, 0, 0, time.UTC).
		AddDate(0, 0, -1).Day()
}
