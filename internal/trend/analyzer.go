package trend

import (
	"fjacquet/cycle-spend/internal/cycle"
	"fjacquet/cycle-spend/internal/models"
)

// Report bundles every statistic computed over one set of cycle totals.
type Report struct {
	Cycles     []cycle.Key     `json:"cycles"`
	Changes    []Change        `json:"month_over_month"`
	Halves     HalfSplit       `json:"halves"`
	Categories []CategoryTrend `json:"category_trends"`
	Highest    []Extreme       `json:"highest"`
	Lowest     []Extreme       `json:"lowest"`
	Volatility Volatility      `json:"volatility"`
}

// Empty reports whether there was no spending to analyze.
func (r Report) Empty() bool {
	return len(r.Cycles) == 0
}

// Analyze computes the full report. ruleOrder is the category rule order,
// used to order the category trends.
func Analyze(totals models.CycleTotals, ruleOrder []string) Report {
	highest, lowest := Extremes(totals)
	return Report{
		Cycles:     totals.Keys(),
		Changes:    MonthOverMonth(totals),
		Halves:     Halves(totals),
		Categories: CategoryTrends(totals, TrackedCategories(ruleOrder, totals)),
		Highest:    highest,
		Lowest:     lowest,
		Volatility: Measure(totals),
	}
}
