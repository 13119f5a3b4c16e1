package cycle

import (
	"errors"
	"testing"
	"time"

	"fjacquet/cycle-spend/internal/parsererror"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestKeyFor(t *testing.T) {
	tests := []struct {
		name     string
		date     time.Time
		startDay int
		want     string
	}{
		{name: "calendar month", date: date(2024, time.March, 31), startDay: 1, want: "2024-03"},
		{name: "calendar month first day", date: date(2024, time.January, 1), startDay: 1, want: "2024-01"},

		// The start day itself closes the previous cycle.
		{name: "day 16 on start day", date: date(2024, time.January, 16), startDay: 16, want: "2023-12"},
		{name: "day after start day", date: date(2024, time.January, 17), startDay: 16, want: "2024-01"},
		{name: "start day of next month", date: date(2024, time.February, 16), startDay: 16, want: "2024-01"},
		{name: "day after next start day", date: date(2024, time.February, 17), startDay: 16, want: "2024-02"},
		{name: "january rolls back a year", date: date(2024, time.January, 3), startDay: 5, want: "2023-12"},
		{name: "december stays", date: date(2024, time.December, 20), startDay: 5, want: "2024-12"},

		// Start day 31 clamps to the month length.
		{name: "leap february 28", date: date(2024, time.February, 28), startDay: 31, want: "2024-01"},
		{name: "leap february 29", date: date(2024, time.February, 29), startDay: 31, want: "2024-01"},
		{name: "march 1 catches up into february", date: date(2024, time.March, 1), startDay: 31, want: "2024-02"},
		{name: "march 30", date: date(2024, time.March, 30), startDay: 31, want: "2024-02"},
		{name: "march 31 on effective day", date: date(2024, time.March, 31), startDay: 31, want: "2024-02"},
		{name: "april 30 on effective day", date: date(2024, time.April, 30), startDay: 31, want: "2024-03"},
		{name: "january 31", date: date(2024, time.January, 31), startDay: 31, want: "2023-12"},

		{name: "non-leap february clamps to 28", date: date(2023, time.February, 28), startDay: 30, want: "2023-01"},
		{name: "march 29 after short february", date: date(2023, time.March, 29), startDay: 30, want: "2023-02"},
		{name: "march 31 past start day 30", date: date(2023, time.March, 31), startDay: 30, want: "2023-03"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, KeyFor(tt.date, tt.startDay).String())
		})
	}
}

func TestKeyFor_StartDayOneIsCalendarMonth(t *testing.T) {
	for d := date(2023, time.January, 1); d.Year() < 2026; d = d.AddDate(0, 0, 1) {
		require.Equal(t, d.Format("2006-01"), KeyFor(d, 1).String(), d.Format("2006-01-02"))
	}
}

func TestKeyFor_IgnoresTimeOfDay(t *testing.T) {
	late := time.Date(2024, time.February, 16, 23, 59, 59, 0, time.UTC)
	assert.Equal(t, "2024-01", KeyFor(late, 16).String())
}

func TestSpan_ContainsEveryClassifiedDate(t *testing.T) {
	for startDay := MinStartDay; startDay <= MaxStartDay; startDay++ {
		for d := date(2023, time.January, 1); d.Year() < 2025; d = d.AddDate(0, 0, 1) {
			key := KeyFor(d, startDay)
			first, last := Span(key, startDay)
			if d.Before(first) || d.After(last) {
				t.Fatalf("start day %d: %s classified as %s but span is %s..%s",
					startDay, d.Format("2006-01-02"), key,
					first.Format("2006-01-02"), last.Format("2006-01-02"))
			}
		}
	}
}

func TestSpan_ConsecutiveCyclesAreContiguous(t *testing.T) {
	for startDay := MinStartDay; startDay <= MaxStartDay; startDay++ {
		key := Key{Year: 2023, Month: time.January}
		for i := 0; i < 24; i++ {
			_, last := Span(key, startDay)
			nextFirst, _ := Span(key.Next(), startDay)
			require.Equal(t, last.AddDate(0, 0, 1), nextFirst, "start day %d, cycle %s", startDay, key)
			key = key.Next()
		}
	}
}

func TestSpan_Examples(t *testing.T) {
	first, last := Span(Key{Year: 2024, Month: time.January}, 16)
	assert.Equal(t, date(2024, time.January, 17), first)
	assert.Equal(t, date(2024, time.February, 16), last)

	first, last = Span(Key{Year: 2024, Month: time.March}, 31)
	assert.Equal(t, date(2024, time.April, 1), first)
	assert.Equal(t, date(2024, time.April, 30), last)

	first, last = Span(Key{Year: 2024, Month: time.February}, 1)
	assert.Equal(t, date(2024, time.February, 1), first)
	assert.Equal(t, date(2024, time.February, 29), last)
}

func TestKey_OrderingAndNavigation(t *testing.T) {
	dec := Key{Year: 2023, Month: time.December}
	jan := Key{Year: 2024, Month: time.January}

	assert.True(t, dec.Before(jan))
	assert.False(t, jan.Before(dec))
	assert.False(t, jan.Before(jan))
	assert.Equal(t, jan, dec.Next())
	assert.Equal(t, dec, jan.Prev())
	assert.Less(t, dec.String(), jan.String())
}

func TestParseKey(t *testing.T) {
	k, err := ParseKey("2024-07")
	require.NoError(t, err)
	assert.Equal(t, Key{Year: 2024, Month: time.July}, k)
	assert.Equal(t, "2024-07", k.String())

	_, err = ParseKey("2024-13")
	assert.Error(t, err)
	_, err = ParseKey("July 2024")
	assert.Error(t, err)
}

func TestValidateStartDay(t *testing.T) {
	for _, ok := range []int{1, 15, 28, 31} {
		assert.NoError(t, ValidateStartDay(ok))
	}
	for _, bad := range []int{0, -1, 32, 100} {
		err := ValidateStartDay(bad)
		require.Error(t, err)
		var cfgErr *parsererror.ConfigError
		require.True(t, errors.As(err, &cfgErr))
		assert.Equal(t, "cycle.start_day", cfgErr.Key)
		assert.Equal(t, bad, cfgErr.Value)
	}
}
