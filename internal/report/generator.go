// Package report renders cycle totals and their trend analysis as text,
// JSON or CSV.
package report

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"fjacquet/cycle-spend/internal/common"
	"fjacquet/cycle-spend/internal/cycle"
	"fjacquet/cycle-spend/internal/dateutils"
	"fjacquet/cycle-spend/internal/fileutils"
	"fjacquet/cycle-spend/internal/logging"
	"fjacquet/cycle-spend/internal/models"
	"fjacquet/cycle-spend/internal/parsererror"
	"fjacquet/cycle-spend/internal/trend"

	"github.com/shopspring/decimal"
)

// Format selects the report renderer.
type Format string

const (
	FormatText Format = "text"
	FormatJSON Format = "json"
	FormatCSV  Format = "csv"
)

// Formats lists the supported formats.
var Formats = []Format{FormatText, FormatJSON, FormatCSV}

// ParseFormat validates a format name, ignoring case.
func ParseFormat(s string) (Format, error) {
	f := Format(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range Formats {
		if f == known {
			return f, nil
		}
	}
	return "", &parsererror.ConfigError{
		Key:    "report.format",
		Value:  s,
		Reason: "must be one of text, json, csv",
	}
}

// Options configures a Generator.
type Options struct {
	// StartDay is the cycle start day used to label cycle date ranges.
	StartDay int
	// Color enables ANSI colors in the text report.
	Color bool
	// Delimiter is the CSV field separator.
	Delimiter rune
}

// Generator renders reports.
type Generator struct {
	opts   Options
	codec  *common.CSVCodec
	logger logging.Logger
}

// NewGenerator creates a Generator. A zero StartDay means calendar months.
func NewGenerator(opts Options, logger logging.Logger) *Generator {
	if opts.StartDay == 0 {
		opts.StartDay = cycle.MinStartDay
	}
	if opts.Delimiter == 0 {
		opts.Delimiter = common.DefaultDelimiter
	}
	if logger == nil {
		logger = logging.NewLogrusAdapter("info", "text")
	}
	return &Generator{
		opts:   opts,
		codec:  common.NewCSVCodec(opts.Delimiter, logger),
		logger: logger.WithField(logging.FieldComponent, "report"),
	}
}

// Generate writes the report for totals and its analysis to w.
func (g *Generator) Generate(w io.Writer, format Format, totals models.CycleTotals, analysis trend.Report) error {
	g.logger.Debug("Generating report",
		logging.Field{Key: logging.FieldFormat, Value: string(format)},
		logging.Field{Key: logging.FieldCount, Value: len(totals)})

	switch format {
	case FormatText:
		return g.generateText(w, totals, analysis)
	case FormatJSON:
		return g.generateJSON(w, totals, analysis)
	case FormatCSV:
		return g.generateCSV(w, totals, analysis)
	default:
		return fmt.Errorf("unsupported report format: %s", format)
	}
}

// GenerateFile renders the report and atomically replaces path with it,
// creating parent directories.
func (g *Generator) GenerateFile(path string, format Format, totals models.CycleTotals, analysis trend.Report) error {
	var buf bytes.Buffer
	if err := g.Generate(&buf, format, totals, analysis); err != nil {
		return err
	}

	if err := fileutils.WriteFileAtomic(path, buf.Bytes(), models.PermissionOutputFile); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}

	g.logger.Info("Report written",
		logging.Field{Key: logging.FieldOutputFile, Value: path},
		logging.Field{Key: logging.FieldFormat, Value: string(format)})
	return nil
}

// CategoryAmount is one category's spend within a cycle.
type CategoryAmount struct {
	Category string          `json:"category"`
	Amount   decimal.Decimal `json:"amount"`
}

// CycleEntry is one cycle of the JSON document.
type CycleEntry struct {
	Cycle      cycle.Key        `json:"cycle"`
	From       string           `json:"from"`
	To         string           `json:"to"`
	Total      decimal.Decimal  `json:"total"`
	Categories []CategoryAmount `json:"categories"`
}

// Document is the JSON report.
type Document struct {
	StartDay   int             `json:"cycle_start_day"`
	GrandTotal decimal.Decimal `json:"grand_total"`
	Cycles     []CycleEntry    `json:"cycles"`
	Trend      trend.Report    `json:"trend"`
}

// BuildDocument assembles the JSON document. Categories within a cycle
// follow the analysis category order and omit categories without spend.
func (g *Generator) BuildDocument(totals models.CycleTotals, analysis trend.Report) Document {
	order := categoryOrder(analysis)
	doc := Document{
		StartDay:   g.opts.StartDay,
		GrandTotal: totals.GrandTotal(),
		Cycles:     make([]CycleEntry, 0, len(totals)),
		Trend:      analysis,
	}

	for _, s := range totals.Summaries() {
		first, last := cycle.Span(s.Key, g.opts.StartDay)
		entry := CycleEntry{
			Cycle:      s.Key,
			From:       dateutils.ToISODate(first),
			To:         dateutils.ToISODate(last),
			Total:      s.Total,
			Categories: []CategoryAmount{},
		}
		for _, name := range order {
			if amount, ok := s.Categories[name]; ok {
				entry.Categories = append(entry.Categories, CategoryAmount{Category: name, Amount: amount})
			}
		}
		doc.Cycles = append(doc.Cycles, entry)
	}
	return doc
}

func (g *Generator) generateJSON(w io.Writer, totals models.CycleTotals, analysis trend.Report) error {
	out, err := json.MarshalIndent(g.BuildDocument(totals, analysis), "", "  ")
	if err != nil {
		g.logger.WithError(err).Error("Failed to marshal JSON report")
		return fmt.Errorf("failed to marshal JSON report: %w", err)
	}
	out = append(out, '\n')
	_, err = w.Write(out)
	return err
}

// categoryOrder returns the analysis category order. Categories present in
// a cycle are always part of it, since the tracked list includes every
// observed category.
func categoryOrder(analysis trend.Report) []string {
	names := make([]string, 0, len(analysis.Categories))
	for _, c := range analysis.Categories {
		names = append(names, c.Category)
	}
	return names
}
