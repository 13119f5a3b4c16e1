package models

import (
	"fmt"
	"sort"

	"fjacquet/cycle-spend/internal/cycle"

	"github.com/shopspring/decimal"
)

// CycleSummary is the spend of one billing cycle, split by category.
// Total always equals the sum of Categories.
type CycleSummary struct {
	Key        cycle.Key                  `json:"cycle"`
	Categories map[string]decimal.Decimal `json:"categories"`
	Total      decimal.Decimal            `json:"total"`
}

// Category returns the spend recorded for name, zero when absent.
func (s *CycleSummary) Category(name string) decimal.Decimal {
	return s.Categories[name]
}

// CycleTotals maps each billing cycle to its summary.
type CycleTotals map[cycle.Key]*CycleSummary

// Add records amount against key and category, creating the cycle entry on
// first use.
func (ct CycleTotals) Add(key cycle.Key, category string, amount decimal.Decimal) {
	summary, ok := ct[key]
	if !ok {
		summary = &CycleSummary{
			Key:        key,
			Categories: make(map[string]decimal.Decimal),
		}
		ct[key] = summary
	}
	summary.Categories[category] = summary.Categories[category].Add(amount)
	summary.Total = summary.Total.Add(amount)
}

// Keys returns the cycle keys in chronological order.
func (ct CycleTotals) Keys() []cycle.Key {
	keys := make([]cycle.Key, 0, len(ct))
	for k := range ct {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		return keys[i].Before(keys[j])
	})
	return keys
}

// Summaries returns the cycle summaries in chronological order.
func (ct CycleTotals) Summaries() []*CycleSummary {
	keys := ct.Keys()
	out := make([]*CycleSummary, 0, len(keys))
	for _, k := range keys {
		out = append(out, ct[k])
	}
	return out
}

// Categories returns every category with recorded spend, sorted by name.
func (ct CycleTotals) Categories() []string {
	seen := make(map[string]struct{})
	for _, s := range ct {
		for name := range s.Categories {
			seen[name] = struct{}{}
		}
	}
	names := make([]string, 0, len(seen))
	for name := range seen {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// GrandTotal sums every cycle total.
func (ct CycleTotals) GrandTotal() decimal.Decimal {
	total := decimal.Zero
	for _, s := range ct {
		total = total.Add(s.Total)
	}
	return total
}

// Verify checks that every cycle's category amounts sum exactly to its total.
func (ct CycleTotals) Verify() error {
	for _, k := range ct.Keys() {
		s := ct[k]
		sum := decimal.Zero
		for _, v := range s.Categories {
			sum = sum.Add(v)
		}
		if !sum.Equal(s.Total) {
			return fmt.Errorf("cycle %s: categories sum to %s but total is %s", k, sum, s.Total)
		}
	}
	return nil
}
