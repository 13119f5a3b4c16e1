package trend

import (
	"fjacquet/cycle-spend/internal/cycle"
	"fjacquet/cycle-spend/internal/models"

	"github.com/shopspring/decimal"
)

// CategoryDirection classifies a category's half-over-half change.
type CategoryDirection string

const (
	CategoryUp            CategoryDirection = "up"
	CategoryDown          CategoryDirection = "down"
	CategoryFlat          CategoryDirection = "flat"
	CategoryNotApplicable CategoryDirection = "not_applicable"
)

// CategoryTrend compares one category's average spend per cycle across the
// two halves.
type CategoryTrend struct {
	Category      string            `json:"category"`
	FirstAverage  decimal.Decimal   `json:"first_average"`
	SecondAverage decimal.Decimal   `json:"second_average"`
	Direction     CategoryDirection `json:"direction"`
	// Percent is signed and only meaningful when Direction is not
	// not_applicable.
	Percent decimal.Decimal `json:"percent"`
}

// TrackedCategories returns the categories to report on: ruleOrder first,
// then models.CategoryUncategorized, then any other category with recorded
// spend in alphabetical order. Duplicates are dropped.
func TrackedCategories(ruleOrder []string, totals models.CycleTotals) []string {
	seen := make(map[string]bool)
	var tracked []string
	add := func(name string) {
		if seen[name] {
			return
		}
		seen[name] = true
		tracked = append(tracked, name)
	}

	for _, name := range ruleOrder {
		add(name)
	}
	add(models.CategoryUncategorized)
	for _, name := range totals.Categories() {
		add(name)
	}
	return tracked
}

// CategoryTrends computes a CategoryTrend for each category, in the order
// given. Averages are taken over the number of cycles in each half, so a
// cycle without spend in a category counts as zero.
func CategoryTrends(totals models.CycleTotals, categories []string) []CategoryTrend {
	first, second := split(totals.Keys())
	threshold := decimal.NewFromInt(MaterialityThreshold)
	band := decimal.NewFromInt(TrendThresholdPercent)

	trends := make([]CategoryTrend, 0, len(categories))
	for _, name := range categories {
		ct := CategoryTrend{
			Category:      name,
			FirstAverage:  average(sumCategory(totals, first, name), len(first)),
			SecondAverage: average(sumCategory(totals, second, name), len(second)),
			Direction:     CategoryNotApplicable,
		}

		if ct.FirstAverage.GreaterThan(threshold) {
			ct.Percent = ct.SecondAverage.Sub(ct.FirstAverage).Mul(hundred).Div(ct.FirstAverage)
			switch {
			case ct.Percent.GreaterThan(band):
				ct.Direction = CategoryUp
			case ct.Percent.LessThan(band.Neg()):
				ct.Direction = CategoryDown
			default:
				ct.Direction = CategoryFlat
			}
		}
		trends = append(trends, ct)
	}
	return trends
}

func sumCategory(totals models.CycleTotals, keys []cycle.Key, name string) decimal.Decimal {
	sum := decimal.Zero
	for _, k := range keys {
		sum = sum.Add(totals[k].Category(name))
	}
	return sum
}
