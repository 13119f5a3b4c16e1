// Package trend computes spending statistics over per-cycle totals:
// month-over-month change, first versus second half, per-category trend,
// highest and lowest cycles and volatility.
//
// All money and percentage values are decimals. Degenerate inputs (no
// cycles, a zero baseline) produce explicit sentinel values, never NaN or
// infinity.
package trend

import (
	"sort"

	"fjacquet/cycle-spend/internal/cycle"
	"fjacquet/cycle-spend/internal/models"

	"github.com/shopspring/decimal"
)

// Thresholds
const (
	// MaterialityThreshold is the first-half category average a category
	// must exceed before a trend is reported for it.
	MaterialityThreshold = 100
	// TrendThresholdPercent separates Up and Down from Flat.
	TrendThresholdPercent = 15
	// TopN is the number of highest and lowest cycles reported.
	TopN = 3
	// HighVolatilityCV and ModerateVolatilityCV are coefficient of
	// variation bands, in percent.
	HighVolatilityCV     = 50
	ModerateVolatilityCV = 30
)

var hundred = decimal.NewFromInt(100)

// Change is one row of the month-over-month series.
type Change struct {
	Key      cycle.Key       `json:"cycle"`
	Total    decimal.Decimal `json:"total"`
	HasPrior bool            `json:"has_prior"`
	Delta    decimal.Decimal `json:"delta"`
	Percent  decimal.Decimal `json:"percent"`
}

// MonthOverMonth returns one Change per cycle in chronological order. The
// first entry has no prior cycle. Percent is 0 when the prior total is 0.
func MonthOverMonth(totals models.CycleTotals) []Change {
	keys := totals.Keys()
	changes := make([]Change, 0, len(keys))

	for i, k := range keys {
		c := Change{Key: k, Total: totals[k].Total}
		if i > 0 {
			prev := totals[keys[i-1]].Total
			c.HasPrior = true
			c.Delta = c.Total.Sub(prev)
			if !prev.IsZero() {
				c.Percent = c.Delta.Mul(hundred).Div(prev)
			}
		}
		changes = append(changes, c)
	}
	return changes
}

// Extreme is a cycle and its total.
type Extreme struct {
	Key   cycle.Key       `json:"cycle"`
	Total decimal.Decimal `json:"total"`
}

// Extremes returns the TopN highest and TopN lowest cycles. Cycles are
// ordered by total descending, ties by key ascending; lowest is the tail of
// that order, so the two lists overlap when there are fewer than 2*TopN
// cycles.
func Extremes(totals models.CycleTotals) (highest, lowest []Extreme) {
	ranked := make([]Extreme, 0, len(totals))
	for _, k := range totals.Keys() {
		ranked = append(ranked, Extreme{Key: k, Total: totals[k].Total})
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Total.GreaterThan(ranked[j].Total)
	})

	n := min(TopN, len(ranked))
	highest = append([]Extreme(nil), ranked[:n]...)
	lowest = append([]Extreme(nil), ranked[len(ranked)-n:]...)
	return highest, lowest
}

// average divides sum by n, returning zero when n is 0.
func average(sum decimal.Decimal, n int) decimal.Decimal {
	if n == 0 {
		return decimal.Zero
	}
	return sum.Div(decimal.NewFromInt(int64(n)))
}

// split returns the chronological halves used by the half-period and
// category comparisons. The first half holds n/2 cycles.
func split(keys []cycle.Key) (first, second []cycle.Key) {
	mid := len(keys) / 2
	return keys[:mid], keys[mid:]
}
