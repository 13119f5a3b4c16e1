// Package dateutils holds the calendar arithmetic behind billing cycles and
// the date parsing contract for transaction records.
package dateutils

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// Layouts used by the transaction date contract.
const (
	DateLayoutISO = "2006-01-02"
	DateLayoutKey = "2006-01"
)

// timeLayouts are the accepted trailing time-of-day components. The time is
// validated and then discarded.
var timeLayouts = []string{
	"15:04",
	"15:04:05",
	"15:04:05.999999999",
	"15:04Z07:00",
	"15:04:05Z07:00",
	"15:04:05.999999999Z07:00",
	"15:04:05 Z07:00",
	"15:04:05 MST",
}

// ErrEmptyDate is returned by ParseDate for blank input.
var ErrEmptyDate = errors.New("empty date")

// IsLeapYear applies the Gregorian rule.
func IsLeapYear(year int) bool {
	return year%4 == 0 && (year%100 != 0 || year%400 == 0)
}

// DaysInMonth returns the number of days in month of year.
func DaysInMonth(year int, month time.Month) int {
	switch month {
	case time.February:
		if IsLeapYear(year) {
			return 29
		}
		return 28
	case time.April, time.June, time.September, time.November:
		return 30
	default:
		return 31
	}
}

// EffectiveCycleDay clamps startDay to the length of the given month, so a
// start day of 31 becomes 28 or 29 in February and 30 in April.
func EffectiveCycleDay(year int, month time.Month, startDay int) int {
	return min(startDay, DaysInMonth(year, month))
}

// ParseDate parses a transaction date of the form YYYY-MM-DD, optionally
// followed by a space or 'T' and a time of day. The time component is
// validated but ignored: the result is the calendar date at midnight UTC.
func ParseDate(value string) (time.Time, error) {
	s := strings.TrimSpace(value)
	if s == "" {
		return time.Time{}, ErrEmptyDate
	}
	if len(s) < len(DateLayoutISO) {
		return time.Time{}, fmt.Errorf("unable to parse date %q: expected YYYY-MM-DD", value)
	}

	datePart, rest := s[:len(DateLayoutISO)], s[len(DateLayoutISO):]
	d, err := time.Parse(DateLayoutISO, datePart)
	if err != nil {
		return time.Time{}, fmt.Errorf("unable to parse date %q: %w", value, err)
	}

	if rest != "" {
		if err := checkTimeOfDay(rest); err != nil {
			return time.Time{}, fmt.Errorf("unable to parse date %q: %w", value, err)
		}
	}

	return time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, time.UTC), nil
}

func checkTimeOfDay(rest string) error {
	sep := rest[0]
	if sep != ' ' && sep != '\t' && sep != 'T' {
		return fmt.Errorf("unexpected %q after date", rest)
	}
	clock := strings.TrimSpace(rest[1:])
	for _, layout := range timeLayouts {
		if _, err := time.Parse(layout, clock); err == nil {
			return nil
		}
	}
	return fmt.Errorf("invalid time component %q", clock)
}

// ToISODate formats date as YYYY-MM-DD.
func ToISODate(date time.Time) string {
	return date.Format(DateLayoutISO)
}
