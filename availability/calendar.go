package availability

import "time"

// DateLayout is the canonical key format for a calendar day.
const DateLayout = time.DateOnly

// DaysInMonth returns the number of days in the given month.
func DaysInMonth(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// FirstWeekday returns the weekday of the first day of the month, Sunday being 0.
func FirstWeekday(year int, month time.Month) time.Weekday {
	return time.Date(year, month, 1, 0, 0, 0, 0, time.UTC).Weekday()
}

// GridBlanks returns the empty cells before day 1 and after the last day
// of a seven column, Sunday-first month grid.
func GridBlanks(year int, month time.Month) (leading, trailing int) {
	leading = int(FirstWeekday(year, month))
	trailing = (7 - (leading+DaysInMonth(year, month))%7) % 7
	return leading, trailing
}

// Key formats a calendar day as YYYY-MM-DD.
func Key(year int, month time.Month, day int) string {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC).Format(DateLayout)
}

// ParseDate reads a booking date. Plain dates and RFC 3339 timestamps are
// accepted; a timestamp keeps its own calendar day and is not shifted to UTC.
func ParseDate(s string) (year int, month time.Month, day int, ok bool) {
	for _, layout := range []string{DateLayout, time.RFC3339Nano, time.RFC3339} {
		t, err := time.Parse(layout, s)
		if err == nil {
			year, month, day = t.Date()
			return year, month, day, true
		}
	}
	return 0, 0, 0, false
}

// NormalizeDate returns the YYYY-MM-DD key for s, or false when s is not a date.
func NormalizeDate(s string) (string, bool) {
	y, m, d, ok := ParseDate(s)
	if !ok {
		return "", false
	}
	return Key(y, m, d), true
}

func dayOrdinal(year int, month time.Month, day int) int64 {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC).Unix() / 86400
}
