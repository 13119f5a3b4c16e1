// Package aggregator buckets spend transactions into billing cycles and
// categories.
package aggregator

import (
	"fmt"

	"fjacquet/cycle-spend/internal/categorizer"
	"fjacquet/cycle-spend/internal/cycle"
	"fjacquet/cycle-spend/internal/logging"
	"fjacquet/cycle-spend/internal/models"
)

// Aggregator accumulates spend per cycle and category. It holds no state
// between calls; every Aggregate call builds a fresh CycleTotals.
type Aggregator struct {
	categorizer categorizer.Categorizer
	startDay    int
	logger      logging.Logger
}

// New creates an Aggregator. The start day is validated here so that a bad
// configuration is rejected before any record is read. A nil logger logs
// warnings only.
func New(cat categorizer.Categorizer, startDay int, logger logging.Logger) (*Aggregator, error) {
	if err := cycle.ValidateStartDay(startDay); err != nil {
		return nil, err
	}
	if cat == nil {
		return nil, fmt.Errorf("aggregator requires a categorizer")
	}
	if logger == nil {
		logger = defaultLogger()
	}
	return &Aggregator{
		categorizer: cat,
		startDay:    startDay,
		logger:      logger.WithField(logging.FieldComponent, "aggregator"),
	}, nil
}

// defaultLogger keeps library callers quiet: the aggregation summary is
// logged at info level.
func defaultLogger() logging.Logger {
	return logging.NewLogrusAdapter("warn", "text")
}

// StartDay returns the configured cycle start day.
func (a *Aggregator) StartDay() int {
	return a.startDay
}

// AggregateRows parses raw rows and aggregates them. Each row is handled in
// order: its amount is parsed, credits (amount >= 0) and card payments or
// transfers are skipped, then the date of the remaining rows is parsed. A
// malformed amount, or a malformed date on a spend row, aborts the run with
// a *parsererror.ParseError; the date of a skipped row is never read.
func (a *Aggregator) AggregateRows(source string, rows []models.TransactionRow) (models.CycleTotals, models.AggregationStats, error) {
	stats := models.AggregationStats{Rows: len(rows)}
	spend := make([]models.Transaction, 0, len(rows))

	for i, row := range rows {
		amount, err := row.ParseAmount(source, i+1)
		if err != nil {
			return nil, models.AggregationStats{}, a.malformed(source, err)
		}
		tx := models.Transaction{Description: row.Description, Amount: amount, Row: i + 1}
		if a.skip(tx, &stats) {
			continue
		}

		tx.Date, err = row.ParseDate(source, i+1)
		if err != nil {
			return nil, models.AggregationStats{}, a.malformed(source, err)
		}
		spend = append(spend, tx)
	}

	totals := a.accumulate(spend, &stats)
	stats.LogSummary(a.logger)
	return totals, stats, nil
}

func (a *Aggregator) malformed(source string, err error) error {
	a.logger.WithError(err).Debug("Malformed transaction record",
		logging.Field{Key: logging.FieldFile, Value: source})
	return fmt.Errorf("aggregating %s: %w", source, err)
}

// Aggregate buckets already parsed transactions. Credits (amount >= 0) and
// card payments or transfers are skipped; every other transaction adds its
// absolute amount to exactly one cycle and one category.
func (a *Aggregator) Aggregate(transactions []models.Transaction) (models.CycleTotals, models.AggregationStats) {
	stats := models.AggregationStats{Rows: len(transactions)}
	spend := make([]models.Transaction, 0, len(transactions))
	for _, tx := range transactions {
		if !a.skip(tx, &stats) {
			spend = append(spend, tx)
		}
	}

	totals := a.accumulate(spend, &stats)
	stats.LogSummary(a.logger)
	return totals, stats
}

// skip counts and reports transactions that are not spending.
func (a *Aggregator) skip(tx models.Transaction, stats *models.AggregationStats) bool {
	switch {
	case !tx.IsSpend():
		stats.Credits++
		return true
	case tx.IsPayment():
		stats.Payments++
		return true
	}
	return false
}

func (a *Aggregator) accumulate(spend []models.Transaction, stats *models.AggregationStats) models.CycleTotals {
	totals := make(models.CycleTotals)
	for _, tx := range spend {
		key := cycle.KeyFor(tx.Date, a.startDay)
		category := a.categorizer.Categorize(tx.Description)
		if category == models.CategoryUncategorized {
			stats.Uncategorized++
		}
		stats.Spend++

		totals.Add(key, category, tx.Spend())
	}

	a.logger.Debug("Transactions aggregated",
		logging.Field{Key: logging.FieldStartDay, Value: a.startDay},
		logging.Field{Key: "cycles", Value: len(totals)})
	return totals
}

// Aggregate is the one-shot form: validate startDay, categorize with rules
// and bucket transactions. It logs warnings only.
func Aggregate(transactions []models.Transaction, rules models.CategoryRules, startDay int) (models.CycleTotals, error) {
	agg, err := New(categorizer.NewKeywordStrategy(rules, nil), startDay, nil)
	if err != nil {
		return nil, err
	}
	totals, _ := agg.Aggregate(transactions)
	return totals, nil
}
