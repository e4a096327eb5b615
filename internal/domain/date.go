package domain

import (
	"fmt"
	"time"
)

// DateLayout is the only accepted calendar date format (ISO 8601, YYYY-MM-DD).
const DateLayout = "2006-01-02"

// ParseDate parses a YYYY-MM-DD string into a UTC midnight time.Time.
// A malformed string yields a *ValidationError for the "date" field.
func ParseDate(s string) (time.Time, error) {
	d, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, NewValidationError("date", fmt.Sprintf("expected %s, got %q", "YYYY-MM-DD", s))
	}
	return d, nil
}

// TruncateToDate drops the clock part of t, keeping the calendar date as seen
// in t's own location, and returns it as UTC midnight. Dates produced this way
// compare correctly with DATE columns scanned by pgx.
func TruncateToDate(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// FormatDate renders a date in DateLayout.
func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}
