// Package analyze implements the spending analysis command
package analyze

import (
	"fmt"
	"io"

	"fjacquet/cycle-spend/cmd/root"
	"fjacquet/cycle-spend/internal/container"
	"fjacquet/cycle-spend/internal/logging"
	"fjacquet/cycle-spend/internal/models"
	"fjacquet/cycle-spend/internal/report"
	"fjacquet/cycle-spend/internal/trend"

	"github.com/spf13/cobra"
)

// Options selects the input and output of one analysis run. Empty fields
// fall back to the container configuration.
type Options struct {
	Transactions string
	Format       string
	Output       string
}

var flags Options

// Cmd represents the analyze command
var Cmd = &cobra.Command{
	Use:   "analyze",
	Short: "Report spending per billing cycle and category with trends",
	Long: `Analyze reads the transaction CSV (Date, Description, Amount), ignores
credits and card payments, groups spending by billing cycle and category and
prints per-cycle totals, cycle-over-cycle change, half-period and category
trends, the highest and lowest cycles and spending volatility.`,
	Example: `  cycle-spend analyze --csv dump.csv --categories categories.json --cycle-start 16
  cycle-spend analyze --format json --output report.json`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return Run(root.AppContainer, flags, cmd.OutOrStdout())
	},
}

func init() {
	Cmd.Flags().StringVar(&flags.Transactions, "csv", "", "Transaction CSV file (default from config input.transactions)")
	Cmd.Flags().StringVarP(&flags.Format, "format", "f", "", "Report format: text, json or csv")
	Cmd.Flags().StringVarP(&flags.Output, "output", "o", "", "Write the report to this file instead of stdout")
}

// Result is the outcome of an analysis run.
type Result struct {
	Totals   models.CycleTotals
	Stats    models.AggregationStats
	Analysis trend.Report
}

// Analyze loads the transactions and rules configured in c and computes
// cycle totals and trends.
func Analyze(c *container.Container, transactions string) (*Result, error) {
	if c == nil {
		return nil, fmt.Errorf("container is not initialized")
	}
	if transactions == "" {
		transactions = c.GetConfig().Input.Transactions
	}

	agg, err := c.NewAggregator()
	if err != nil {
		return nil, err
	}
	rules, err := c.GetRules()
	if err != nil {
		return nil, err
	}

	rows, err := c.GetCSVCodec().ReadTransactionRows(transactions)
	if err != nil {
		return nil, err
	}

	totals, stats, err := agg.AggregateRows(transactions, rows)
	if err != nil {
		return nil, err
	}
	if err := totals.Verify(); err != nil {
		return nil, err
	}

	return &Result{
		Totals:   totals,
		Stats:    stats,
		Analysis: trend.Analyze(totals, rules.Names()),
	}, nil
}

// Run analyzes and renders the report to opts.Output, or to w when no
// output file is set.
func Run(c *container.Container, opts Options, w io.Writer) error {
	if c == nil {
		return fmt.Errorf("container is not initialized")
	}
	cfg := c.GetConfig()

	formatName := opts.Format
	if formatName == "" {
		formatName = cfg.Report.Format
	}
	format, err := report.ParseFormat(formatName)
	if err != nil {
		return err
	}
	output := opts.Output
	if output == "" {
		output = cfg.Report.Output
	}

	result, err := Analyze(c, opts.Transactions)
	if err != nil {
		return err
	}

	logger := c.GetLogger()
	logger.Info("Analysis complete",
		logging.Field{Key: "cycles", Value: len(result.Totals)},
		logging.Field{Key: "grand_total", Value: result.Totals.GrandTotal().StringFixed(2)})

	gen := c.GetReportGenerator()
	if output != "" {
		return gen.GenerateFile(output, format, result.Totals, result.Analysis)
	}
	return gen.Generate(w, format, result.Totals, result.Analysis)
}
