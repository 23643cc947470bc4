package normalize

import (
	"fmt"
	"strconv"
	"time"
)

// KST is the fixed business timezone. Overdue detection and "today"
// comparisons use it regardless of the machine's local zone.
var KST = time.FixedZone("KST", 9*60*60)

const datePrefixLen = len("2006-01-02")

// Date parses the "YYYY-MM-DD" prefix of a stored value into a calendar
// date at midnight KST. Building the date from its components (instead of
// a UTC-based parse) keeps the calendar day from shifting across
// timezones. Returns false for empty or malformed values.
func Date(raw string) (time.Time, bool) {
	if len(raw) < datePrefixLen {
		return time.Time{}, false
	}
	t, err := time.Parse("2006-01-02", raw[:datePrefixLen])
	if err != nil {
		return time.Time{}, false
	}
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, KST), true
}

// FormatDate renders a calendar date back to its "YYYY-MM-DD" form.
func FormatDate(t time.Time) string {
	return t.Format("2006-01-02")
}

// FormatDateParts builds a "YYYY-MM-DD" value from separately captured
// year, month, and day strings, zero-padding the short forms ("2026",
// "3", "7" becomes "2026-03-07"). Returns "" when any part is not a
// number or out of range.
func FormatDateParts(year, month, day string) string {
	y, errY := strconv.Atoi(year)
	m, errM := strconv.Atoi(month)
	d, errD := strconv.Atoi(day)
	if errY != nil || errM != nil || errD != nil {
		return ""
	}
	if y < 1000 || m < 1 || m > 12 || d < 1 || d > 31 {
		return ""
	}
	return fmt.Sprintf("%04d-%02d-%02d", y, m, d)
}

// Today returns the current calendar date at midnight KST.
func Today() time.Time {
	now := time.Now().In(KST)
	y, m, d := now.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, KST)
}

// DaysUntil returns the whole calendar days from today until the stored
// date value. Negative values mean the date has passed; ok is false when
// the value does not parse.
func DaysUntil(raw string) (days int, ok bool) {
	d, ok := Date(raw)
	if !ok {
		return 0, false
	}
	return int(d.Sub(Today()).Hours() / 24), true
}

// Overdue reports whether the stored date value falls strictly before
// today in the business timezone.
func Overdue(raw string) bool {
	d, ok := Date(raw)
	if !ok {
		return false
	}
	return d.Before(Today())
}
