// Package container provides dependency injection for the cycle-spend
// application. It centralizes the creation and wiring of all application
// dependencies, making them explicit and testable.
package container

import (
	"fmt"

	"fjacquet/cycle-spend/internal/aggregator"
	"fjacquet/cycle-spend/internal/categorizer"
	"fjacquet/cycle-spend/internal/common"
	"fjacquet/cycle-spend/internal/config"
	"fjacquet/cycle-spend/internal/logging"
	"fjacquet/cycle-spend/internal/models"
	"fjacquet/cycle-spend/internal/pdfparser"
	"fjacquet/cycle-spend/internal/report"
	"fjacquet/cycle-spend/internal/store"
)

// Container holds all application dependencies and provides methods to
// access them.
//
// Category rules are loaded on first use, so commands that never categorize
// do not need a rules file.
type Container struct {
	logger   logging.Logger
	config   *config.Config
	store    *store.CategoryStore
	codec    *common.CSVCodec
	reporter *report.Generator

	rules       models.CategoryRules
	categorizer *categorizer.KeywordStrategy
}

// NewContainer creates and wires all application dependencies.
func NewContainer(cfg *config.Config) (*Container, error) {
	if cfg == nil {
		return nil, fmt.Errorf("configuration cannot be nil")
	}
	return NewContainerWithLogger(cfg, config.ConfigureLoggingFromConfig(cfg))
}

// NewContainerWithLogger is NewContainer with a caller supplied logger.
func NewContainerWithLogger(cfg *config.Config, logger logging.Logger) (*Container, error) {
	if cfg == nil {
		return nil, fmt.Errorf("configuration cannot be nil")
	}
	if logger == nil {
		return nil, fmt.Errorf("logger cannot be nil")
	}

	delimiter := cfg.DelimiterRune()
	format, err := report.ParseFormat(cfg.Report.Format)
	if err != nil {
		return nil, err
	}

	c := &Container{
		logger: logger,
		config: cfg,
		store:  store.NewCategoryStore(cfg.Input.Categories, logger),
		codec:  common.NewCSVCodec(delimiter, logger),
		reporter: report.NewGenerator(report.Options{
			StartDay:  cfg.Cycle.StartDay,
			Color:     cfg.Report.Color,
			Delimiter: delimiter,
		}, logger),
	}

	logger.Debug("Container initialized successfully",
		logging.Field{Key: logging.FieldStartDay, Value: cfg.Cycle.StartDay},
		logging.Field{Key: logging.FieldFormat, Value: string(format)},
		logging.Field{Key: logging.FieldDelimiter, Value: string(delimiter)})

	return c, nil
}

// GetRules loads the category rules on first call and returns the cached
// rules afterwards.
func (c *Container) GetRules() (models.CategoryRules, error) {
	if c.rules != nil {
		return c.rules, nil
	}
	rules, err := c.store.LoadRules()
	if err != nil {
		return nil, err
	}
	c.rules = rules
	return rules, nil
}

// GetCategorizer returns the keyword categorizer built from the rules.
func (c *Container) GetCategorizer() (*categorizer.KeywordStrategy, error) {
	if c.categorizer != nil {
		return c.categorizer, nil
	}
	rules, err := c.GetRules()
	if err != nil {
		return nil, err
	}
	c.categorizer = categorizer.NewKeywordStrategy(rules, c.logger)
	return c.categorizer, nil
}

// NewAggregator returns an aggregator using the configured start day and
// the loaded rules.
func (c *Container) NewAggregator() (*aggregator.Aggregator, error) {
	cat, err := c.GetCategorizer()
	if err != nil {
		return nil, err
	}
	return aggregator.New(cat, c.config.Cycle.StartDay, c.logger)
}

// NewStatementParser returns a PDF statement parser. A nil extractor runs
// pdftotext with the configured statement password.
func (c *Container) NewStatementParser(extractor pdfparser.PDFExtractor) *pdfparser.Parser {
	if extractor == nil {
		extractor = pdfparser.NewRealPDFExtractor(c.config.Statement.Password)
	}
	return pdfparser.NewParser(extractor, c.logger)
}

// GetLogger returns the container's logger instance.
func (c *Container) GetLogger() logging.Logger {
	return c.logger
}

// GetConfig returns the container's configuration instance.
func (c *Container) GetConfig() *config.Config {
	return c.config
}

// GetStore returns the container's category store instance.
func (c *Container) GetStore() *store.CategoryStore {
	return c.store
}

// GetCSVCodec returns the codec used for transaction files.
func (c *Container) GetCSVCodec() *common.CSVCodec {
	return c.codec
}

// GetReportGenerator returns the report renderer.
func (c *Container) GetReportGenerator() *report.Generator {
	return c.reporter
}

// Close performs cleanup of container resources.
// This method should be called when the container is no longer needed.
func (c *Container) Close() error {
	// Currently no resources need explicit cleanup
	c.logger.Debug("Container closed")
	return nil
}
