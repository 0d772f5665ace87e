package importer

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/budgetbook/budgetbook/internal/model"
)

// dateLayouts are tried before the numeric fallback. Only the calendar date
// as written is kept; offsets are ignored.
var dateLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02",
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"2006-1-2",
	"2006/01/02",
	"2006/1/2",
	"2006.01.02",
	"Jan 2, 2006",
	"January 2, 2006",
	"Jan 2 2006",
	"2 Jan 2006",
	"2 January 2006",
	"02-Jan-2006",
	"02-Jan-06",
	"Mon, 02 Jan 2006",
	"Mon Jan 2 2006",
	time.RFC1123,
	time.RFC1123Z,
}

// numericDate matches month/day/year with '/' or '-' separators.
var numericDate = regexp.MustCompile(`^(\d{1,2})[/-](\d{1,2})[/-](\d{2}|\d{4})$`)

// NormalizeDate converts a bank date to YYYY-MM-DD.
//
// Unambiguous layouts are tried first. Otherwise the value is read as
// month/day/year, with two-digit years above 50 in the 1900s and the rest in
// the 2000s. When the first part exceeds 12 and the second does not, the two
// are swapped. A date like 03/04/2024 is always read as March 4th.
func NormalizeDate(raw string) (string, error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return "", errInvalidDate
	}

	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.Format(model.DateFormat), nil
		}
	}

	parts := numericDate.FindStringSubmatch(s)
	if parts == nil {
		return "", errInvalidDate
	}
	month, _ := strconv.Atoi(parts[1])
	day, _ := strconv.Atoi(parts[2])
	year, _ := strconv.Atoi(parts[3])

	if len(parts[3]) == 2 {
		if year > 50 {
			year += 1900
		} else {
			year += 2000
		}
	}
	if month > 12 && day <= 12 {
		month, day = day, month
	}

	t, ok := calendarDate(year, month, day)
	if !ok {
		return "", errInvalidDate
	}
	return t.Format(model.DateFormat), nil
}

// IsAmbiguousDate reports whether raw is a numeric date whose first two
// parts could each be the month, such as 03/04/2024. NormalizeDate reads
// these as month/day.
func IsAmbiguousDate(raw string) bool {
	parts := numericDate.FindStringSubmatch(strings.TrimSpace(raw))
	if parts == nil {
		return false
	}
	a, _ := strconv.Atoi(parts[1])
	b, _ := strconv.Atoi(parts[2])
	return a != b && a >= 1 && a <= 12 && b >= 1 && b <= 12
}

// calendarDate rejects values time.Date would silently normalize.
func calendarDate(year, month, day int) (time.Time, bool) {
	if month < 1 || month > 12 || day < 1 {
		return time.Time{}, false
	}
	t := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	if t.Month() != time.Month(month) || t.Day() != day {
		return time.Time{}, false
	}
	return t, true
}
