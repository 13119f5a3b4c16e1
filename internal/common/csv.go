// Package common provides the CSV plumbing shared by the transaction loader
// and the report exporter.
package common

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"

	"fjacquet/cycle-spend/internal/logging"
	"fjacquet/cycle-spend/internal/models"
	"fjacquet/cycle-spend/internal/parsererror"

	"github.com/gocarina/gocsv"
)

// DefaultDelimiter is the field separator of bank CSV exports.
const DefaultDelimiter = ','

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// RequiredColumns must be present in the header of a transaction export.
var RequiredColumns = []string{"Date", "Description", "Amount"}

// CSVCodec reads and writes delimited files with gocsv.
type CSVCodec struct {
	Delimiter rune
	logger    logging.Logger
}

// NewCSVCodec returns a codec using delimiter; zero means DefaultDelimiter.
func NewCSVCodec(delimiter rune, logger logging.Logger) *CSVCodec {
	if delimiter == 0 {
		delimiter = DefaultDelimiter
	}
	if logger == nil {
		logger = logging.NewLogrusAdapter("info", "text")
	}
	return &CSVCodec{Delimiter: delimiter, logger: logger}
}

func (c *CSVCodec) newReader(r io.Reader) *csv.Reader {
	reader := csv.NewReader(r)
	reader.Comma = c.Delimiter
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true
	return reader
}

// ReadCSV decodes delimited data into a slice of structs tagged with
// `csv:"..."`. A leading UTF-8 byte order mark is ignored.
func ReadCSV[TRow any](c *CSVCodec, data []byte) ([]TRow, error) {
	data = bytes.TrimPrefix(data, utf8BOM)

	var rows []TRow
	if err := gocsv.UnmarshalCSV(c.newReader(bytes.NewReader(data)), &rows); err != nil {
		return nil, fmt.Errorf("error parsing CSV data: %w", err)
	}
	return rows, nil
}

// ReadTransactionRows loads a bank export. The header must name the Date,
// Description and Amount columns; rows whose three fields are all blank are
// skipped. Each row records the file line it starts on.
func (c *CSVCodec) ReadTransactionRows(filePath string) ([]models.TransactionRow, error) {
	c.logger.Info("Reading transactions file", logging.Field{Key: logging.FieldFile, Value: filePath})

	data, err := os.ReadFile(filePath) // #nosec G304 -- user supplied input file
	if err != nil {
		return nil, fmt.Errorf("error opening CSV file: %w", err)
	}

	lines, err := c.recordLines(filePath, data)
	if err != nil {
		return nil, err
	}

	rows, err := ReadCSV[models.TransactionRow](c, data)
	if err != nil {
		return nil, &parsererror.ValidationError{FilePath: filePath, Reason: err.Error()}
	}
	if len(rows) != len(lines) {
		return nil, &parsererror.ValidationError{
			FilePath: filePath,
			Reason:   fmt.Sprintf("read %d records but located %d", len(rows), len(lines)),
		}
	}

	kept := rows[:0]
	for i, row := range rows {
		row.Line = lines[i]
		if isBlank(row) {
			c.logger.Warn("Skipping blank row",
				logging.Field{Key: logging.FieldFile, Value: filePath},
				logging.Field{Key: logging.FieldLine, Value: row.Line})
			continue
		}
		kept = append(kept, row)
	}

	c.logger.Info("Read transactions",
		logging.Field{Key: logging.FieldFile, Value: filePath},
		logging.Field{Key: logging.FieldCount, Value: len(kept)})
	return kept, nil
}

// recordLines checks the header and returns the file line each data record
// starts on. encoding/csv skips empty lines and quoted fields may span
// several lines, so record indexes and line numbers differ in general.
func (c *CSVCodec) recordLines(filePath string, data []byte) ([]int, error) {
	reader := c.newReader(bytes.NewReader(bytes.TrimPrefix(data, utf8BOM)))

	header, err := reader.Read()
	if err == io.EOF {
		return nil, &parsererror.ValidationError{FilePath: filePath, Reason: "file is empty"}
	}
	if err != nil {
		return nil, &parsererror.ValidationError{FilePath: filePath, Reason: err.Error()}
	}
	if err := checkHeader(filePath, header); err != nil {
		return nil, err
	}

	var lines []int
	for {
		if _, err := reader.Read(); err == io.EOF {
			break
		} else if err != nil {
			return nil, &parsererror.ValidationError{FilePath: filePath, Reason: err.Error()}
		}
		line, _ := reader.FieldPos(0)
		lines = append(lines, line)
	}
	return lines, nil
}

func checkHeader(filePath string, header []string) error {
	present := make(map[string]bool, len(header))
	for _, col := range header {
		present[strings.TrimSpace(col)] = true
	}
	var missing []string
	for _, col := range RequiredColumns {
		if !present[col] {
			missing = append(missing, col)
		}
	}
	if len(missing) > 0 {
		return &parsererror.ValidationError{
			FilePath: filePath,
			Reason:   fmt.Sprintf("missing column(s) %s", strings.Join(missing, ", ")),
		}
	}
	return nil
}

func isBlank(row models.TransactionRow) bool {
	return strings.TrimSpace(row.Date) == "" &&
		strings.TrimSpace(row.Description) == "" &&
		strings.TrimSpace(row.Amount) == ""
}

// WriteCSV encodes rows with a header line using the codec's delimiter.
func WriteCSV[TRow any](c *CSVCodec, w io.Writer, rows []TRow) error {
	writer := csv.NewWriter(w)
	writer.Comma = c.Delimiter

	if err := gocsv.MarshalCSV(rows, gocsv.NewSafeCSVWriter(writer)); err != nil {
		return fmt.Errorf("error writing CSV data: %w", err)
	}
	writer.Flush()
	return writer.Error()
}
