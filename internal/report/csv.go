package report

import (
	"io"

	"fjacquet/cycle-spend/internal/common"
	"fjacquet/cycle-spend/internal/models"
	"fjacquet/cycle-spend/internal/trend"
)

// TotalLabel marks the per-cycle total row in CSV output.
const TotalLabel = "TOTAL"

// CycleCategoryRow is one CSV output record.
type CycleCategoryRow struct {
	Cycle    string `csv:"Cycle"`
	From     string `csv:"From"`
	To       string `csv:"To"`
	Category string `csv:"Category"`
	Amount   string `csv:"Amount"`
}

// Rows flattens totals into one row per cycle and category, followed by a
// TOTAL row for each cycle.
func (g *Generator) Rows(totals models.CycleTotals, analysis trend.Report) []CycleCategoryRow {
	doc := g.BuildDocument(totals, analysis)
	rows := make([]CycleCategoryRow, 0)
	for _, c := range doc.Cycles {
		for _, ca := range c.Categories {
			rows = append(rows, CycleCategoryRow{
				Cycle:    c.Cycle.String(),
				From:     c.From,
				To:       c.To,
				Category: ca.Category,
				Amount:   ca.Amount.StringFixed(2),
			})
		}
		rows = append(rows, CycleCategoryRow{
			Cycle:    c.Cycle.String(),
			From:     c.From,
			To:       c.To,
			Category: TotalLabel,
			Amount:   c.Total.StringFixed(2),
		})
	}
	return rows
}

func (g *Generator) generateCSV(w io.Writer, totals models.CycleTotals, analysis trend.Report) error {
	return common.WriteCSV(g.codec, w, g.Rows(totals, analysis))
}
