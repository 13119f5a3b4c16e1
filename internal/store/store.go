// Package store loads category rules from disk.
package store

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"fjacquet/cycle-spend/internal/fileutils"
	"fjacquet/cycle-spend/internal/logging"
	"fjacquet/cycle-spend/internal/models"
	"fjacquet/cycle-spend/internal/parsererror"

	"gopkg.in/yaml.v3"
)

// DefaultCategoriesFile is used when no rules file is configured.
const DefaultCategoriesFile = "categories.json"

// CategoryStore reads the ordered category rules file. Both JSON and YAML
// files are accepted; JSON is read through the YAML parser so key order is
// kept in either case.
type CategoryStore struct {
	CategoriesFile string
	logger         logging.Logger
}

// NewCategoryStore creates a store for the given rules file.
func NewCategoryStore(categoriesFile string, logger logging.Logger) *CategoryStore {
	if logger == nil {
		logger = logging.NewLogrusAdapter("info", "text")
	}
	return &CategoryStore{
		CategoriesFile: categoriesFile,
		logger:         logger,
	}
}

// FindConfigFile resolves filename against the working directory, ./config
// and ~/.config/cycle-spend, in that order.
func (s *CategoryStore) FindConfigFile(filename string) (string, error) {
	locations := []string{filename}
	if !filepath.IsAbs(filename) {
		locations = append(locations, filepath.Join("config", filename))
		if homeDir, err := os.UserHomeDir(); err == nil {
			locations = append(locations, filepath.Join(homeDir, ".config", "cycle-spend", filename))
		}
	}

	if location, ok := fileutils.FirstExisting(locations...); ok {
		return location, nil
	}
	return "", fmt.Errorf("categories file %s: %w", filename, os.ErrNotExist)
}

// LoadRules reads and parses the rules file. A missing file is an error:
// without rules every transaction would silently become uncategorized.
func (s *CategoryStore) LoadRules() (models.CategoryRules, error) {
	filename := s.CategoriesFile
	if filename == "" {
		filename = DefaultCategoriesFile
	}

	filePath, err := s.FindConfigFile(filename)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(filePath) // #nosec G304 -- user supplied rules file
	if err != nil {
		return nil, fmt.Errorf("error reading categories file: %w", err)
	}

	rules, err := ParseRules(data)
	if err != nil {
		return nil, &parsererror.ValidationError{FilePath: filePath, Reason: err.Error()}
	}

	s.logger.Info("Loaded category rules",
		logging.Field{Key: logging.FieldFile, Value: filePath},
		logging.Field{Key: logging.FieldCount, Value: len(rules)})
	return rules, nil
}

// ParseRules decodes category rules in one of three shapes, keeping order:
//
//	{"Travel": ["UBER", "INDIGO"], "Food": ["SWIGGY"]}     flat mapping
//	categories: [{name: Travel, keywords: [UBER]}]         wrapped list
//	[{name: Travel, keywords: [UBER]}]                     bare list
func ParseRules(data []byte) (models.CategoryRules, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("malformed rules document: %w", err)
	}
	if doc.Kind == 0 || len(doc.Content) == 0 {
		return models.CategoryRules{}, nil
	}

	root := doc.Content[0]
	switch root.Kind {
	case yaml.SequenceNode:
		return decodeList(root)
	case yaml.MappingNode:
		if isWrappedList(root) {
			return decodeList(root.Content[1])
		}
		return decodeMapping(root)
	default:
		return nil, errors.New("rules must be a mapping of category to patterns or a list of categories")
	}
}

// isWrappedList tells "categories: [{name, keywords}]" apart from a flat
// mapping that happens to define a category called "categories".
func isWrappedList(root *yaml.Node) bool {
	if len(root.Content) != 2 || root.Content[0].Value != "categories" {
		return false
	}
	list := root.Content[1]
	if list.Kind != yaml.SequenceNode {
		return false
	}
	return len(list.Content) == 0 || list.Content[0].Kind == yaml.MappingNode
}

func decodeList(node *yaml.Node) (models.CategoryRules, error) {
	var list []models.CategoryConfig
	if err := node.Decode(&list); err != nil {
		return nil, fmt.Errorf("invalid category list: %w", err)
	}

	seen := make(map[string]bool, len(list))
	for i, c := range list {
		if c.Name == "" {
			return nil, fmt.Errorf("category #%d has no name", i+1)
		}
		if seen[c.Name] {
			return nil, fmt.Errorf("category %q is defined twice", c.Name)
		}
		seen[c.Name] = true
	}
	return models.CategoryRules(list), nil
}

func decodeMapping(node *yaml.Node) (models.CategoryRules, error) {
	rules := make(models.CategoryRules, 0, len(node.Content)/2)
	seen := make(map[string]bool, len(node.Content)/2)

	for i := 0; i+1 < len(node.Content); i += 2 {
		keyNode, valueNode := node.Content[i], node.Content[i+1]
		name := keyNode.Value
		if keyNode.Kind != yaml.ScalarNode || name == "" {
			return nil, fmt.Errorf("line %d: category name must be a non-empty string", keyNode.Line)
		}
		if seen[name] {
			return nil, fmt.Errorf("line %d: category %q is defined twice", keyNode.Line, name)
		}
		seen[name] = true

		if valueNode.Kind != yaml.SequenceNode {
			return nil, fmt.Errorf("line %d: category %q must map to a list of patterns", valueNode.Line, name)
		}
		var patterns []string
		if err := valueNode.Decode(&patterns); err != nil {
			return nil, fmt.Errorf("line %d: category %q: %w", valueNode.Line, name, err)
		}
		rules = append(rules, models.CategoryConfig{Name: name, Keywords: patterns})
	}
	return rules, nil
}
