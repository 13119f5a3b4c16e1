package models

import (
	"fjacquet/cycle-spend/internal/logging"
)

// AggregationStats counts how input rows were treated by one aggregation run.
type AggregationStats struct {
	Rows          int // rows read
	Credits       int // skipped: zero or positive amount
	Payments      int // skipped: card payment or transfer phrase
	Spend         int // counted as spending
	Uncategorized int // counted, but matched no category rule
}

// LogSummary logs the counters at info level.
func (s AggregationStats) LogSummary(logger logging.Logger) {
	if logger == nil {
		return
	}

	logger.Info("Aggregation summary",
		logging.Field{Key: "rows", Value: s.Rows},
		logging.Field{Key: "credits_skipped", Value: s.Credits},
		logging.Field{Key: "payments_skipped", Value: s.Payments},
		logging.Field{Key: "spend", Value: s.Spend},
		logging.Field{Key: "uncategorized", Value: s.Uncategorized},
		logging.Field{Key: "categorized_rate", Value: s.CategorizedRate()},
	)
}

// CategorizedRate is the share of spend rows that matched a rule, in percent.
func (s AggregationStats) CategorizedRate() float64 {
	if s.Spend == 0 {
		return 0.0
	}
	return float64(s.Spend-s.Uncategorized) / float64(s.Spend) * 100.0
}
