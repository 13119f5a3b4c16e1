// Package spending analyzes card spending per billing cycle. It is the
// library entry point to the aggregation and trend engine used by the
// cycle-spend CLI.
//
// A billing cycle is identified by the year and month it starts in. With a
// start day of 1 cycles are calendar months; with a start day d > 1 a cycle
// runs from the day after d in one month through day d of the next, with d
// clamped to the length of short months.
package spending

import (
	"io"
	"time"

	"fjacquet/cycle-spend/internal/aggregator"
	"fjacquet/cycle-spend/internal/categorizer"
	"fjacquet/cycle-spend/internal/common"
	"fjacquet/cycle-spend/internal/cycle"
	"fjacquet/cycle-spend/internal/logging"
	"fjacquet/cycle-spend/internal/models"
	"fjacquet/cycle-spend/internal/report"
	"fjacquet/cycle-spend/internal/store"
	"fjacquet/cycle-spend/internal/trend"
)

type (
	// Transaction is a parsed account movement; negative amounts are spend.
	Transaction = models.Transaction
	// Row is a raw Date, Description, Amount record.
	Row = models.TransactionRow
	// Rules are ordered category rules; the first matching category wins.
	Rules = models.CategoryRules
	// Rule is one category and its keywords.
	Rule = models.CategoryConfig
	// CycleKey identifies a billing cycle.
	CycleKey = cycle.Key
	// CycleTotals maps each cycle to its per-category spend.
	CycleTotals = models.CycleTotals
	// Stats counts how rows were treated.
	Stats = models.AggregationStats
	// Report holds the trend statistics.
	Report = trend.Report
	// Logger is the structured logger accepted by Options.
	Logger = logging.Logger
)

// Options tune an analysis run.
type Options struct {
	// StartDay is the day of month (1-31) a cycle starts on. Zero means 1.
	StartDay int
	// Logger receives progress and summary logs. Nil discards below warn.
	Logger Logger
}

func (o Options) normalize() Options {
	if o.StartDay == 0 {
		o.StartDay = cycle.MinStartDay
	}
	if o.Logger == nil {
		o.Logger = logging.NewLogrusAdapter("warn", "text")
	}
	return o
}

// Result is the outcome of an analysis.
type Result struct {
	StartDay int
	Totals   CycleTotals
	Stats    Stats
	Trend    Report
}

// Analyze aggregates transactions and computes trends. The only errors are
// an invalid start day.
func Analyze(transactions []Transaction, rules Rules, opts Options) (*Result, error) {
	opts = opts.normalize()
	agg, err := aggregator.New(categorizer.NewKeywordStrategy(rules, opts.Logger), opts.StartDay, opts.Logger)
	if err != nil {
		return nil, err
	}
	totals, stats := agg.Aggregate(transactions)
	return newResult(opts.StartDay, totals, stats, rules), nil
}

// AnalyzeRows parses raw rows and analyzes them. A malformed date or amount
// fails the whole run with a *parsererror.ParseError naming the row.
func AnalyzeRows(source string, rows []Row, rules Rules, opts Options) (*Result, error) {
	opts = opts.normalize()
	agg, err := aggregator.New(categorizer.NewKeywordStrategy(rules, opts.Logger), opts.StartDay, opts.Logger)
	if err != nil {
		return nil, err
	}
	totals, stats, err := agg.AggregateRows(source, rows)
	if err != nil {
		return nil, err
	}
	return newResult(opts.StartDay, totals, stats, rules), nil
}

// AnalyzeFiles reads a comma separated transaction export and a JSON or
// YAML rules file, then analyzes them.
func AnalyzeFiles(transactionsPath, rulesPath string, opts Options) (*Result, error) {
	opts = opts.normalize()
	if err := cycle.ValidateStartDay(opts.StartDay); err != nil {
		return nil, err
	}

	rules, err := store.NewCategoryStore(rulesPath, opts.Logger).LoadRules()
	if err != nil {
		return nil, err
	}
	rows, err := common.NewCSVCodec(common.DefaultDelimiter, opts.Logger).ReadTransactionRows(transactionsPath)
	if err != nil {
		return nil, err
	}
	return AnalyzeRows(transactionsPath, rows, rules, opts)
}

func newResult(startDay int, totals models.CycleTotals, stats models.AggregationStats, rules Rules) *Result {
	return &Result{
		StartDay: startDay,
		Totals:   totals,
		Stats:    stats,
		Trend:    trend.Analyze(totals, rules.Names()),
	}
}

// ParseRules decodes category rules from JSON or YAML, preserving order.
func ParseRules(data []byte) (Rules, error) {
	return store.ParseRules(data)
}

// Categorize returns the category of description under rules.
func Categorize(description string, rules Rules) string {
	return categorizer.Categorize(description, rules)
}

// KeyFor returns the billing cycle of date for startDay.
func KeyFor(date time.Time, startDay int) (CycleKey, error) {
	if err := cycle.ValidateStartDay(startDay); err != nil {
		return CycleKey{}, err
	}
	return cycle.KeyFor(date, startDay), nil
}

// WriteReport renders r as "text", "json" or "csv" to w.
func (r *Result) WriteReport(w io.Writer, format string) error {
	f, err := report.ParseFormat(format)
	if err != nil {
		return err
	}
	gen := report.NewGenerator(report.Options{StartDay: r.StartDay}, logging.NewLogrusAdapter("warn", "text"))
	return gen.Generate(w, f, r.Totals, r.Trend)
}
