// Package cycle assigns calendar dates to billing cycles.
//
// A cycle is named after the month it starts in. With a start day of 1
// cycles are plain calendar months. With any other start day s, a date whose
// day-of-month is on or before min(s, days in its month) is the tail of the
// cycle that started the previous month; later dates open the cycle of their
// own month. For start days of 29 and above this yields uneven catch-up
// cycles after short months, and that behaviour is part of the contract.
package cycle

import (
	"fmt"
	"time"

	"fjacquet/cycle-spend/internal/dateutils"
	"fjacquet/cycle-spend/internal/parsererror"
)

// Bounds of a configurable cycle start day.
const (
	MinStartDay = 1
	MaxStartDay = 31
)

// Key identifies a billing cycle by the year and month it starts in.
type Key struct {
	Year  int
	Month time.Month
}

// String renders the key as "YYYY-MM".
func (k Key) String() string {
	return fmt.Sprintf("%04d-%02d", k.Year, int(k.Month))
}

// Before reports whether k is chronologically earlier than other.
func (k Key) Before(other Key) bool {
	if k.Year != other.Year {
		return k.Year < other.Year
	}
	return k.Month < other.Month
}

// Prev returns the key of the preceding month.
func (k Key) Prev() Key {
	if k.Month == time.January {
		return Key{Year: k.Year - 1, Month: time.December}
	}
	return Key{Year: k.Year, Month: k.Month - 1}
}

// Next returns the key of the following month.
func (k Key) Next() Key {
	if k.Month == time.December {
		return Key{Year: k.Year + 1, Month: time.January}
	}
	return Key{Year: k.Year, Month: k.Month + 1}
}

// ParseKey parses a "YYYY-MM" label.
func ParseKey(s string) (Key, error) {
	t, err := time.Parse(dateutils.DateLayoutKey, s)
	if err != nil {
		return Key{}, fmt.Errorf("invalid cycle key %q: %w", s, err)
	}
	return Key{Year: t.Year(), Month: t.Month()}, nil
}

// ValidateStartDay rejects start days outside 1..31.
func ValidateStartDay(startDay int) error {
	if startDay < MinStartDay || startDay > MaxStartDay {
		return &parsererror.ConfigError{
			Key:    "cycle.start_day",
			Value:  startDay,
			Reason: fmt.Sprintf("must be between %d and %d", MinStartDay, MaxStartDay),
		}
	}
	return nil
}

// KeyFor returns the cycle that date belongs to. startDay must already be
// validated.
func KeyFor(date time.Time, startDay int) Key {
	current := Key{Year: date.Year(), Month: date.Month()}
	if startDay == 1 {
		return current
	}

	effectiveDay := dateutils.EffectiveCycleDay(date.Year(), date.Month(), startDay)
	if date.Day() <= effectiveDay {
		return current.Prev()
	}
	return current
}

// Span returns the first and last calendar dates that KeyFor assigns to key.
// With start days of 29 and above the span can lie entirely in the month
// after key: for start day 31 the "2024-03" cycle is April 1st to 30th.
func Span(key Key, startDay int) (first, last time.Time) {
	if startDay == 1 {
		first = time.Date(key.Year, key.Month, 1, 0, 0, 0, 0, time.UTC)
		last = time.Date(key.Year, key.Month, dateutils.DaysInMonth(key.Year, key.Month), 0, 0, 0, 0, time.UTC)
		return first, last
	}

	next := key.Next()
	openDay := dateutils.EffectiveCycleDay(key.Year, key.Month, startDay) + 1
	closeDay := dateutils.EffectiveCycleDay(next.Year, next.Month, startDay)

	// time.Date normalizes day overflow into the next month.
	first = time.Date(key.Year, key.Month, openDay, 0, 0, 0, 0, time.UTC)
	last = time.Date(next.Year, next.Month, closeDay, 0, 0, 0, 0, time.UTC)
	return first, last
}

// MarshalText lets keys be used as JSON object keys.
func (k Key) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// UnmarshalText parses a "YYYY-MM" label.
func (k *Key) UnmarshalText(text []byte) error {
	parsed, err := ParseKey(string(text))
	if err != nil {
		return err
	}
	*k = parsed
	return nil
}
