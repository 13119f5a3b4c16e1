// Package pdf handles PDF statement conversion commands
package pdf

import (
	"bytes"
	"fmt"
	"io"

	"fjacquet/cycle-spend/cmd/root"
	"fjacquet/cycle-spend/internal/common"
	"fjacquet/cycle-spend/internal/container"
	"fjacquet/cycle-spend/internal/fileutils"
	"fjacquet/cycle-spend/internal/logging"
	"fjacquet/cycle-spend/internal/models"
	"fjacquet/cycle-spend/internal/pdfparser"

	"github.com/spf13/cobra"
)

// StdoutOutput writes the export to standard output.
const StdoutOutput = "-"

// Options selects the statements to convert and where the export goes.
type Options struct {
	Dir        string
	Output     string
	Password   string
	SortFormat string
}

var flags Options

// Cmd represents the pdf command
var Cmd = &cobra.Command{
	Use:   "pdf",
	Short: "Convert credit card statement PDFs to a transaction CSV",
	Long: `Convert every PDF statement of a directory into one Date, Description,
Amount CSV that the analyze command reads. Purchases are negative, rows
marked Cr positive. Text is extracted with pdftotext, which must be
installed.`,
	Example: `  cycle-spend pdf --dir statements --output dump.csv
  cycle-spend pdf --dir statements --password secret --sortformat "%d-%m-%Y" -o -`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return Run(root.AppContainer, flags, cmd.OutOrStdout())
	},
}

func init() {
	Cmd.Flags().StringVar(&flags.Dir, "dir", "", "Directory holding the PDF statements")
	Cmd.Flags().StringVarP(&flags.Output, "output", "o", "", "Output CSV file, '-' for stdout (default from config input.transactions)")
	Cmd.Flags().StringVar(&flags.Password, "password", "", "Password of encrypted statements (default from config statement.password)")
	Cmd.Flags().StringVar(&flags.SortFormat, "sortformat", "", "strftime format of the date in statement file names, e.g. %d-%m-%Y")
	_ = Cmd.MarkFlagRequired("dir")
}

// Run converts the statements with the container's configuration. Empty
// options fall back to the config file.
func Run(c *container.Container, opts Options, w io.Writer) error {
	if c == nil {
		return fmt.Errorf("container is not initialized")
	}
	cfg := c.GetConfig()
	if opts.Password == "" {
		opts.Password = cfg.Statement.Password
	}
	if opts.SortFormat == "" {
		opts.SortFormat = cfg.Statement.SortFormat
	}
	if opts.Output == "" {
		opts.Output = cfg.Input.Transactions
	}

	parser := c.NewStatementParser(pdfparser.NewRealPDFExtractor(opts.Password))
	return Convert(parser, c.GetCSVCodec(), opts, w, c.GetLogger())
}

// Convert parses the statements of opts.Dir and writes the export to
// opts.Output, or to w when it is StdoutOutput or empty.
func Convert(parser *pdfparser.Parser, codec *common.CSVCodec, opts Options, w io.Writer, logger logging.Logger) error {
	if opts.Dir == "" {
		return fmt.Errorf("statement directory is required")
	}

	entries, err := parser.ParseDir(opts.Dir, opts.SortFormat)
	if err != nil {
		return err
	}

	var buf bytes.Buffer
	if err := pdfparser.WriteCSV(codec, &buf, entries); err != nil {
		return err
	}

	if opts.Output == "" || opts.Output == StdoutOutput {
		_, err := w.Write(buf.Bytes())
		return err
	}
	if err := fileutils.WriteFileAtomic(opts.Output, buf.Bytes(), models.PermissionOutputFile); err != nil {
		return fmt.Errorf("failed to write transactions: %w", err)
	}

	logger.Info("PDF to CSV conversion completed",
		logging.Field{Key: logging.FieldOutputFile, Value: opts.Output},
		logging.Field{Key: logging.FieldCount, Value: len(entries)})
	return nil
}
