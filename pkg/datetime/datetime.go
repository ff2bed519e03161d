// Package datetime provides date and time utility functions.
package datetime

import "time"

// MustParseTime parses a date string using the given layout and panics on error.
// This is intended for use in tests where the date string is known to be valid.
func MustParseTime(layout, dateStr string) time.Time {
	t, err := time.Parse(layout, dateStr)
	if err != nil {
		panic(err)
	}
	return t
}

// OffsetDays returns the given time offset by the given number of days.
func OffsetDays(t time.Time, days int) time.Time {
	return t.AddDate(0, 0, days)
}

// FormatRFC3339 renders a time in the wire format used for envelopes and
// responses.
func FormatRFC3339(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}

// ParseRFC3339 parses a timestamp in the wire format, returning the zero time
// on failure alongside the error.
func ParseRFC3339(value string) (time.Time, error) {
	return time.Parse(time.RFC3339, value)
}
