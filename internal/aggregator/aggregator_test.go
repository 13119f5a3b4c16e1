package aggregator

import (
	"errors"
	"testing"
	"time"

	"fjacquet/cycle-spend/internal/categorizer"
	"fjacquet/cycle-spend/internal/cycle"
	"fjacquet/cycle-spend/internal/logging"
	"fjacquet/cycle-spend/internal/models"
	"fjacquet/cycle-spend/internal/parsererror"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testRules = models.CategoryRules{
	{Name: "Travel", Keywords: []string{"UBER", "airline"}},
	{Name: "Food", Keywords: []string{"swiggy", "zomato"}},
}

func tx(date, desc, amount string) models.Transaction {
	d, err := time.Parse("2006-01-02", date)
	if err != nil {
		panic(err)
	}
	return models.NewTransaction(d, desc, decimal.RequireFromString(amount))
}

func key(y int, m time.Month) cycle.Key {
	return cycle.Key{Year: y, Month: m}
}

func newTestAggregator(t *testing.T, startDay int) (*Aggregator, *logging.MockLogger) {
	t.Helper()
	logger := logging.NewMockLogger()
	agg, err := New(categorizer.NewKeywordStrategy(testRules, logger), startDay, logger)
	require.NoError(t, err)
	return agg, logger
}

func TestNew_RejectsInvalidStartDay(t *testing.T) {
	for _, day := range []int{0, -1, 32, 100} {
		_, err := New(categorizer.NewKeywordStrategy(testRules, nil), day, nil)
		require.Error(t, err)

		var cfgErr *parsererror.ConfigError
		assert.True(t, errors.As(err, &cfgErr), "start day %d", day)
	}
}

func TestNew_RequiresCategorizer(t *testing.T) {
	_, err := New(nil, 1, nil)
	assert.Error(t, err)
}

func TestAggregate_CalendarMonths(t *testing.T) {
	agg, _ := newTestAggregator(t, 1)

	totals, stats := agg.Aggregate([]models.Transaction{
		tx("2024-01-05", "UBER TRIP", "-100"),
		tx("2024-01-20", "Swiggy order", "-50.25"),
		tx("2024-02-01", "Corner shop", "-10"),
		tx("2024-02-03", "Salary", "5000"),
	})

	require.Len(t, totals, 2)
	jan := totals[key(2024, time.January)]
	require.NotNil(t, jan)
	assert.True(t, decimal.RequireFromString("100").Equal(jan.Category("Travel")))
	assert.True(t, decimal.RequireFromString("50.25").Equal(jan.Category("Food")))
	assert.True(t, decimal.RequireFromString("150.25").Equal(jan.Total))

	feb := totals[key(2024, time.February)]
	require.NotNil(t, feb)
	assert.True(t, decimal.RequireFromString("10").Equal(feb.Category(models.CategoryUncategorized)))

	assert.Equal(t, models.AggregationStats{Rows: 4, Credits: 1, Spend: 3, Uncategorized: 1}, stats)
	require.NoError(t, totals.Verify())
}

func TestAggregate_BillingCycleStartDay(t *testing.T) {
	agg, _ := newTestAggregator(t, 16)

	totals, _ := agg.Aggregate([]models.Transaction{
		tx("2024-01-15", "UBER", "-10"),
		tx("2024-01-16", "UBER", "-20"),
		tx("2024-01-17", "UBER", "-30"),
	})

	assert.True(t, decimal.NewFromInt(30).Equal(totals[key(2023, time.December)].Total))
	assert.True(t, decimal.NewFromInt(30).Equal(totals[key(2024, time.January)].Total))
	assert.Len(t, totals, 2)
}

func TestAggregate_ExcludesCreditsAndPayments(t *testing.T) {
	agg, logger := newTestAggregator(t, 1)

	totals, stats := agg.Aggregate([]models.Transaction{
		tx("2024-03-01", "Refund UBER", "25"),
		tx("2024-03-02", "Zero fee", "0"),
		tx("2024-03-03", "Credit Card Payment - thank you", "-900"),
		tx("2024-03-04", "cc payment received", "-100"),
		tx("2024-03-05", "NetBanking Transfer to savings", "-500"),
	})

	assert.Empty(t, totals)
	assert.Equal(t, 5, stats.Rows)
	assert.Equal(t, 2, stats.Credits)
	assert.Equal(t, 3, stats.Payments)
	assert.Equal(t, 0, stats.Spend)
	assert.True(t, logger.HasEntry("INFO", "Aggregation summary"))
}

func TestAggregate_Empty(t *testing.T) {
	agg, _ := newTestAggregator(t, 10)

	totals, stats := agg.Aggregate(nil)

	assert.NotNil(t, totals)
	assert.Empty(t, totals)
	assert.Equal(t, models.AggregationStats{}, stats)
}

func TestAggregate_Idempotent(t *testing.T) {
	agg, _ := newTestAggregator(t, 25)
	input := []models.Transaction{
		tx("2024-02-24", "UBER", "-12.34"),
		tx("2024-02-26", "Zomato", "-5.66"),
		tx("2024-03-25", "Bookshop", "-7"),
	}

	first, _ := agg.Aggregate(input)
	second, _ := agg.Aggregate(input)

	require.Equal(t, first.Keys(), second.Keys())
	for _, k := range first.Keys() {
		assert.True(t, first[k].Total.Equal(second[k].Total), "cycle %s", k)
		assert.Equal(t, len(first[k].Categories), len(second[k].Categories))
	}
}

func TestAggregate_SumInvariant(t *testing.T) {
	agg, _ := newTestAggregator(t, 31)

	var input []models.Transaction
	start := time.Date(2023, time.November, 1, 0, 0, 0, 0, time.UTC)
	descriptions := []string{"UBER", "swiggy", "misc", "AIRLINE", "zomato"}
	for i := 0; i < 200; i++ {
		d := start.AddDate(0, 0, i*2)
		input = append(input, models.NewTransaction(d, descriptions[i%len(descriptions)],
			decimal.New(-int64(i*37+1), -2)))
	}

	totals, stats := agg.Aggregate(input)

	require.NoError(t, totals.Verify())
	assert.Equal(t, 200, stats.Spend)

	grand := decimal.Zero
	for _, in := range input {
		grand = grand.Add(in.Spend())
	}
	assert.True(t, grand.Equal(totals.GrandTotal()))
}

func TestAggregateRows_Valid(t *testing.T) {
	agg, _ := newTestAggregator(t, 1)

	totals, stats, err := agg.AggregateRows("dump.csv", []models.TransactionRow{
		{Date: "2024-05-01", Description: "UBER", Amount: "-12.50"},
		{Date: "2024-05-02 10:30:00", Description: "Swiggy", Amount: "-7.50"},
		{Date: "2024-05-03", Description: "Salary", Amount: "1000"},
	})

	require.NoError(t, err)
	assert.Equal(t, 3, stats.Rows)
	assert.True(t, decimal.NewFromInt(20).Equal(totals[key(2024, time.May)].Total))
}

func TestAggregateRows_MalformedRecord(t *testing.T) {
	tests := []struct {
		name  string
		rows  []models.TransactionRow
		row   int
		field string
	}{
		{
			name: "bad date",
			rows: []models.TransactionRow{
				{Date: "2024-05-01", Description: "UBER", Amount: "-1"},
				{Date: "05/02/2024", Description: "UBER", Amount: "-1"},
			},
			row:   2,
			field: "Date",
		},
		{
			name: "bad amount",
			rows: []models.TransactionRow{
				{Date: "2024-05-01", Description: "UBER", Amount: "twelve"},
			},
			row:   1,
			field: "Amount",
		},
		{
			name: "malformed credit row still fails",
			rows: []models.TransactionRow{
				{Date: "2024-05-01", Description: "UBER", Amount: "-1"},
				{Date: "2024-05-02", Description: "Refund", Amount: "1,000.00"},
			},
			row:   2,
			field: "Amount",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			agg, logger := newTestAggregator(t, 1)

			totals, _, err := agg.AggregateRows("dump.csv", tt.rows)

			require.Error(t, err)
			assert.Nil(t, totals)

			var parseErr *parsererror.ParseError
			require.True(t, errors.As(err, &parseErr))
			assert.Equal(t, tt.row, parseErr.Row)
			assert.Equal(t, tt.field, parseErr.Field)
			assert.Equal(t, "dump.csv", parseErr.Source)
			// The caller reports the returned error; it is not logged twice.
			assert.True(t, logger.HasEntry("DEBUG", "Malformed transaction record"))
			assert.Empty(t, logger.EntriesByLevel("ERROR"))
		})
	}
}

func TestAggregateFunc(t *testing.T) {
	totals, err := Aggregate([]models.Transaction{
		tx("2024-01-31", "uber", "-1"),
	}, testRules, 31)
	require.NoError(t, err)
	assert.True(t, decimal.NewFromInt(1).Equal(totals[key(2023, time.December)].Category("Travel")))

	_, err = Aggregate(nil, testRules, 0)
	assert.Error(t, err)
}

func TestAggregateRows_UsesLineNumbers(t *testing.T) {
	agg, _ := newTestAggregator(t, 1)

	_, _, err := agg.AggregateRows("dump.csv", []models.TransactionRow{
		{Date: "2024-05-01", Description: "UBER", Amount: "-1", Line: 1},
		{Date: "2024-05-02", Description: "UBER", Amount: "oops", Line: 4},
	})

	var parseErr *parsererror.ParseError
	require.True(t, errors.As(err, &parseErr))
	assert.Equal(t, 2, parseErr.Row)
	assert.Equal(t, 4, parseErr.Line)
	assert.Contains(t, err.Error(), "dump.csv: line 4:")
}

func TestAggregateRows_SkippedRowsDateNotParsed(t *testing.T) {
	agg, _ := newTestAggregator(t, 1)

	totals, stats, err := agg.AggregateRows("dump.csv", []models.TransactionRow{
		{Date: "2024-01-05", Description: "SWIGGY", Amount: "-100"},
		{Date: "05/01/2024", Description: "CREDIT CARD PAYMENT RECEIVED", Amount: "5000"},
		{Date: "", Description: "Cashback", Amount: "12.50"},
		{Date: "yesterday", Description: "NetBanking Transfer", Amount: "-250"},
	})

	require.NoError(t, err)
	require.Len(t, totals, 1)
	jan := totals[key(2024, time.January)]
	require.NotNil(t, jan)
	assert.True(t, decimal.NewFromInt(100).Equal(jan.Total))
	assert.True(t, decimal.NewFromInt(100).Equal(jan.Category("Food")))
	assert.Equal(t, models.AggregationStats{Rows: 4, Credits: 2, Payments: 1, Spend: 1}, stats)
}

func TestNew_DefaultLoggerIsQuiet(t *testing.T) {
	adapter, ok := defaultLogger().(*logging.LogrusAdapter)
	require.True(t, ok)
	assert.Equal(t, logrus.WarnLevel, adapter.Level())
}
