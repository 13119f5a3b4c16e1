// Package categorizer assigns spending categories to transaction
// descriptions using ordered keyword rules.
package categorizer

import (
	"fjacquet/cycle-spend/internal/models"
)

// Categorizer maps a transaction description to a category name. It never
// fails: unmatched descriptions get models.CategoryUncategorized.
type Categorizer interface {
	Categorize(description string) string
}

// Categorize returns the first category in rules with a pattern occurring in
// description, ignoring case, or models.CategoryUncategorized.
func Categorize(description string, rules models.CategoryRules) string {
	return NewKeywordStrategy(rules, nil).Categorize(description)
}
