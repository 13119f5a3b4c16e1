package categorizer

import (
	"strings"

	"fjacquet/cycle-spend/internal/logging"
	"fjacquet/cycle-spend/internal/models"
)

// KeywordStrategy categorizes descriptions by case-insensitive substring
// match against ordered category rules. The first category with a matching
// pattern wins.
type KeywordStrategy struct {
	rules  []compiledCategory
	logger logging.Logger
}

type compiledCategory struct {
	name     string
	patterns []string // original spelling
	upper    []string // uppercased, same order
}

// NewKeywordStrategy prepares rules for matching. Empty patterns are dropped
// since they would match every description.
func NewKeywordStrategy(rules models.CategoryRules, logger logging.Logger) *KeywordStrategy {
	compiled := make([]compiledCategory, 0, len(rules))
	for _, rule := range rules {
		cc := compiledCategory{name: rule.Name}
		for _, p := range rule.Keywords {
			if strings.TrimSpace(p) == "" {
				continue
			}
			cc.patterns = append(cc.patterns, p)
			cc.upper = append(cc.upper, strings.ToUpper(p))
		}
		compiled = append(compiled, cc)
	}

	if logger != nil {
		logger.Debug("Keyword rules loaded", logging.Field{Key: logging.FieldCount, Value: len(compiled)})
	}

	return &KeywordStrategy{
		rules:  compiled,
		logger: logger,
	}
}

// Name returns the strategy name used in logs.
func (s *KeywordStrategy) Name() string {
	return "Keyword"
}

// Match returns the first category whose patterns occur in description,
// along with the pattern that matched.
func (s *KeywordStrategy) Match(description string) (category, pattern string, ok bool) {
	desc := strings.ToUpper(description)
	for _, rule := range s.rules {
		for i, p := range rule.upper {
			if strings.Contains(desc, p) {
				return rule.name, rule.patterns[i], true
			}
		}
	}
	return "", "", false
}

// Categorize returns the matching category or models.CategoryUncategorized.
func (s *KeywordStrategy) Categorize(description string) string {
	category, pattern, ok := s.Match(description)
	if !ok {
		return models.CategoryUncategorized
	}

	if s.logger != nil {
		s.logger.Debug("Description categorized",
			logging.Field{Key: logging.FieldDescription, Value: description},
			logging.Field{Key: logging.FieldPattern, Value: pattern},
			logging.Field{Key: logging.FieldCategory, Value: category})
	}
	return category
}
