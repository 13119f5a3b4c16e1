// Package pdfparser converts credit card statement PDFs into the
// Date, Description, Amount transaction export read by the analyzer.
package pdfparser

import (
	"fmt"
	"io"

	"fjacquet/cycle-spend/internal/common"
	"fjacquet/cycle-spend/internal/logging"
	"fjacquet/cycle-spend/internal/parsererror"
)

// Parser reads statement rows out of PDF files.
type Parser struct {
	extractor PDFExtractor
	logger    logging.Logger
}

// NewParser creates a Parser. A nil extractor runs pdftotext without a
// password.
func NewParser(extractor PDFExtractor, logger logging.Logger) *Parser {
	if extractor == nil {
		extractor = NewRealPDFExtractor("")
	}
	if logger == nil {
		logger = logging.NewLogrusAdapter("warn", "text")
	}
	return &Parser{
		extractor: extractor,
		logger:    logger.WithField(logging.FieldComponent, "pdfparser"),
	}
}

// ParseFile extracts the transaction rows of one statement. Rows without an
// amount column are skipped with a warning.
func (p *Parser) ParseFile(pdfPath string) ([]Entry, error) {
	p.logger.Info("Parsing PDF statement", logging.Field{Key: logging.FieldFile, Value: pdfPath})

	text, err := p.extractor.ExtractText(pdfPath)
	if err != nil {
		return nil, &parsererror.ParseError{
			Source: pdfPath,
			Field:  "text extraction",
			Value:  pdfPath,
			Err:    err,
		}
	}

	var entries []Entry
	for _, line := range parseStatementText(text) {
		if !line.hasAmount {
			p.logger.Warn("Skipping statement row without amount",
				logging.Field{Key: logging.FieldFile, Value: pdfPath},
				logging.Field{Key: logging.FieldDescription, Value: line.entry.Description})
			continue
		}
		entries = append(entries, line.entry)
	}

	p.logger.Debug("Parsed PDF statement",
		logging.Field{Key: logging.FieldFile, Value: pdfPath},
		logging.Field{Key: logging.FieldCount, Value: len(entries)})
	return entries, nil
}

// ParseDir parses every statement of dir. With a sortFormat (strftime, e.g.
// "%d-%m-%Y") files are read in the order of the date in their names,
// otherwise by name. Any unreadable statement fails the whole run.
func (p *Parser) ParseDir(dir, sortFormat string) ([]Entry, error) {
	files, err := FindStatements(dir)
	if err != nil {
		return nil, err
	}
	if sortFormat != "" {
		if err := SortByFilenameDate(files, sortFormat); err != nil {
			return nil, err
		}
	}

	var all []Entry
	for _, f := range files {
		entries, err := p.ParseFile(f)
		if err != nil {
			return nil, fmt.Errorf("failed to parse statement: %w", err)
		}
		all = append(all, entries...)
	}

	p.logger.Info("Parsed PDF statements",
		logging.Field{Key: logging.FieldInputFile, Value: dir},
		logging.Field{Key: "files", Value: len(files)},
		logging.Field{Key: logging.FieldCount, Value: len(all)})
	return all, nil
}

// StatementRow is one record of the transaction export. The analyzer reads
// Date, Description and Amount and ignores Reward Points.
type StatementRow struct {
	Date        string `csv:"Date"`
	Description string `csv:"Description"`
	Points      int    `csv:"Reward Points"`
	Amount      string `csv:"Amount"`
}

// rowDateLayout is accepted by the analyzer's date contract.
const rowDateLayout = "2006-01-02 15:04:05"

// Rows converts entries to export records, keeping their order.
func Rows(entries []Entry) []StatementRow {
	rows := make([]StatementRow, 0, len(entries))
	for _, e := range entries {
		rows = append(rows, StatementRow{
			Date:        e.Date.Format(rowDateLayout),
			Description: e.Description,
			Points:      e.Points,
			Amount:      e.Amount.StringFixed(2),
		})
	}
	return rows
}

// WriteCSV writes entries as a transaction export with a header line.
func WriteCSV(codec *common.CSVCodec, w io.Writer, entries []Entry) error {
	return common.WriteCSV(codec, w, Rows(entries))
}
