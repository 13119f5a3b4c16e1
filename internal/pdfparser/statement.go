package pdfparser

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Section headings after which a statement page lists transactions.
var sectionHeadings = []string{
	"Domestic Transactions",
	"International Transactions",
}

// Date layouts of a statement row, with and without time of day.
const (
	statementDateTime = "02/01/2006 15:04:05"
	statementDate     = "02/01/2006"
)

// creditMarker follows the amount of refunds and payments.
const creditMarker = "Cr"

var (
	rowStart     = regexp.MustCompile(`^(\d{2}/\d{2}/\d{4})(?:\s+(\d{2}:\d{2}:\d{2}))?(?:\s+(.*))?$`)
	columnBreak  = regexp.MustCompile(`\s{2,}`)
	pointsSpacer = strings.NewReplacer("- ", "-")
)

// Entry is one statement row. Amount is negative for purchases and positive
// for rows marked Cr.
type Entry struct {
	Date        time.Time
	Description string
	Points      int
	Amount      decimal.Decimal
}

// statementLine is the outcome of reading one transaction line.
type statementLine struct {
	entry     Entry
	hasAmount bool
}

// parseStatementText reads the transaction rows of extracted statement
// text. Pages are separated by form feeds; on each page rows are read only
// after a section heading. A row starts with a dd/mm/yyyy date, optionally
// followed by a time, and its columns are separated by two or more spaces:
// description, reward points, amount and the Cr marker.
func parseStatementText(text string) []statementLine {
	var lines []statementLine
	for _, page := range strings.Split(text, "\f") {
		inSection := false
		for _, raw := range strings.Split(page, "\n") {
			line := strings.TrimSpace(raw)
			if line == "" {
				continue
			}
			if isSectionHeading(line) {
				inSection = true
				continue
			}
			if !inSection {
				continue
			}
			if parsed, ok := parseStatementLine(line); ok {
				lines = append(lines, parsed)
			}
		}
	}
	return lines
}

func isSectionHeading(line string) bool {
	for _, h := range sectionHeadings {
		if strings.HasPrefix(line, h) {
			return true
		}
	}
	return false
}

func parseStatementLine(line string) (statementLine, bool) {
	m := rowStart.FindStringSubmatch(line)
	if m == nil {
		return statementLine{}, false
	}

	var (
		date time.Time
		err  error
	)
	if m[2] != "" {
		date, err = time.Parse(statementDateTime, m[1]+" "+m[2])
	} else {
		date, err = time.Parse(statementDate, m[1])
	}
	if err != nil {
		return statementLine{}, false
	}

	out := statementLine{entry: Entry{Date: date}}
	credit := false
	for i, col := range columnBreak.Split(strings.TrimSpace(m[3]), -1) {
		col = strings.TrimSpace(col)
		if col == "" {
			continue
		}
		if i == 0 {
			out.entry.Description = col
			continue
		}

		if col == creditMarker {
			credit = true
			continue
		}
		if amountText, ok := strings.CutSuffix(col, " "+creditMarker); ok {
			credit = true
			col = strings.TrimSpace(amountText)
		}

		if strings.Contains(col, ".") {
			if amount, err := decimal.NewFromString(strings.ReplaceAll(col, ",", "")); err == nil {
				out.entry.Amount = amount.Neg()
				out.hasAmount = true
				continue
			}
		}
		if points, err := strconv.Atoi(pointsSpacer.Replace(col)); err == nil {
			out.entry.Points = points
		}
	}

	if credit {
		out.entry.Amount = out.entry.Amount.Neg()
	}
	return out, true
}
