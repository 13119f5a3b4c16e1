// Package models provides the data structures shared by the spending engine.
package models

// CategoryConfig is one named category and its description patterns.
type CategoryConfig struct {
	Name     string   `yaml:"name" json:"name"`
	Keywords []string `yaml:"keywords" json:"keywords"`
}

// CategoryRules is the ordered rule set used for categorization. Earlier
// categories win when several match.
type CategoryRules []CategoryConfig

// CategoriesConfig is the wrapped YAML shape: "categories: [...]".
type CategoriesConfig struct {
	Categories []CategoryConfig `yaml:"categories"`
}

// Names returns the category names in rule order.
func (r CategoryRules) Names() []string {
	names := make([]string, 0, len(r))
	for _, c := range r {
		names = append(names, c.Name)
	}
	return names
}
