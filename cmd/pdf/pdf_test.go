package pdf

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"fjacquet/cycle-spend/internal/common"
	"fjacquet/cycle-spend/internal/config"
	"fjacquet/cycle-spend/internal/container"
	"fjacquet/cycle-spend/internal/logging"
	"fjacquet/cycle-spend/internal/pdfparser"
	"fjacquet/cycle-spend/pkg/spending"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const janStatement = `Domestic Transactions
05/01/2024 10:11:12  SWIGGY BANGALORE     12    350.00
06/01/2024           UBER TRIP                  120.00
07/01/2024           CREDIT CARD PAYMENT        5,000.00 Cr
`

const febStatement = `Domestic Transactions
05/02/2024           ZOMATO               2     80.00
06/02/2024           ZOMATO REFUND              80.00 Cr
`

func statementDir(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	for _, name := range []string{"hdfc_05-02-2024.pdf", "hdfc_05-01-2024.pdf"} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte("%PDF-1.4"), 0600))
	}
	return dir
}

func mockExtractor() *pdfparser.MockPDFExtractor {
	mock := pdfparser.NewMockPDFExtractor("", nil)
	mock.Texts = map[string]string{
		"hdfc_05-01-2024.pdf": janStatement,
		"hdfc_05-02-2024.pdf": febStatement,
	}
	return mock
}

func TestCommand_Metadata(t *testing.T) {
	assert.Equal(t, "pdf", Cmd.Use)
	assert.NotEmpty(t, Cmd.Short)
	for _, name := range []string{"dir", "output", "password", "sortformat"} {
		assert.NotNil(t, Cmd.Flags().Lookup(name), name)
	}
	assert.Equal(t, "o", Cmd.Flags().Lookup("output").Shorthand)
}

func TestConvert_Stdout(t *testing.T) {
	logger := logging.NewMockLogger()
	mock := mockExtractor()
	parser := pdfparser.NewParser(mock, logger)

	var out bytes.Buffer
	err := Convert(parser, common.NewCSVCodec(',', logger), Options{Dir: statementDir(t), Output: StdoutOutput, SortFormat: "%d-%m-%Y"}, &out, logger)
	require.NoError(t, err)

	assert.Equal(t, "Date,Description,Reward Points,Amount\n"+
		"2024-01-05 10:11:12,SWIGGY BANGALORE,12,-350.00\n"+
		"2024-01-06 00:00:00,UBER TRIP,0,-120.00\n"+
		"2024-01-07 00:00:00,CREDIT CARD PAYMENT,0,5000.00\n"+
		"2024-02-05 00:00:00,ZOMATO,2,-80.00\n"+
		"2024-02-06 00:00:00,ZOMATO REFUND,0,80.00\n", out.String())
	assert.Equal(t, []string{"hdfc_05-01-2024.pdf", "hdfc_05-02-2024.pdf"},
		[]string{filepath.Base(mock.Calls[0]), filepath.Base(mock.Calls[1])})
}

func TestConvert_FileFeedsAnalyzer(t *testing.T) {
	logger := logging.NewMockLogger()
	parser := pdfparser.NewParser(mockExtractor(), logger)
	output := filepath.Join(t.TempDir(), "dump.csv")

	var out bytes.Buffer
	err := Convert(parser, common.NewCSVCodec(',', logger), Options{Dir: statementDir(t), Output: output}, &out, logger)
	require.NoError(t, err)
	assert.Empty(t, out.String())
	assert.True(t, logger.HasEntry("INFO", "PDF to CSV conversion completed"))

	rulesPath := filepath.Join(t.TempDir(), "categories.json")
	require.NoError(t, os.WriteFile(rulesPath, []byte(`{"Food & Dining": ["SWIGGY", "ZOMATO"], "Travel": ["UBER"]}`), 0600))

	result, err := spending.AnalyzeFiles(output, rulesPath, spending.Options{Logger: logger})
	require.NoError(t, err)
	summaries := result.Totals.Summaries()
	require.Len(t, summaries, 2)
	assert.Equal(t, "470.00", summaries[0].Total.StringFixed(2))
	assert.Equal(t, "120.00", summaries[0].Category("Travel").StringFixed(2))
	assert.Equal(t, "80.00", summaries[1].Total.StringFixed(2))
	assert.Equal(t, 2, result.Stats.Credits)
}

func TestConvert_Errors(t *testing.T) {
	logger := logging.NewMockLogger()
	codec := common.NewCSVCodec(',', logger)

	err := Convert(pdfparser.NewParser(mockExtractor(), logger), codec, Options{}, &bytes.Buffer{}, logger)
	assert.Error(t, err)

	failing := pdfparser.NewMockPDFExtractor("", errors.New("incorrect password"))
	err = Convert(pdfparser.NewParser(failing, logger), codec, Options{Dir: statementDir(t)}, &bytes.Buffer{}, logger)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "incorrect password")
}

func TestRun_NilContainer(t *testing.T) {
	err := Run(nil, Options{Dir: "."}, &bytes.Buffer{})
	assert.Error(t, err)
}

func TestRun_EmptyDirectory(t *testing.T) {
	cfg := &config.Config{}
	cfg.Log.Level = "info"
	cfg.Log.Format = "text"
	cfg.Cycle.StartDay = 1
	cfg.Input.Categories = filepath.Join(t.TempDir(), "categories.json")
	cfg.CSV.Delimiter = ","
	cfg.Report.Format = "text"
	cfg.Statement.Password = "from-config"

	c, err := container.NewContainerWithLogger(cfg, logging.NewMockLogger())
	require.NoError(t, err)

	var out bytes.Buffer
	require.NoError(t, Run(c, Options{Dir: t.TempDir(), Output: StdoutOutput}, &out))
	assert.Equal(t, "Date,Description,Reward Points,Amount\n", out.String())
}
