package main

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"fjacquet/cycle-spend/cmd/root"
	"fjacquet/cycle-spend/internal/parsererror"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// execute runs the CLI with args from inside dir and returns stdout.
func execute(t *testing.T, dir string, args ...string) (string, error) {
	t.Helper()

	originalDir, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { require.NoError(t, os.Chdir(originalDir)) })
	t.Setenv("HOME", dir)

	var out bytes.Buffer
	root.Cmd.SetOut(&out)
	root.Cmd.SetArgs(args)
	t.Cleanup(func() {
		root.Cmd.SetOut(nil)
		root.Cmd.SetArgs(nil)
	})

	err = root.Cmd.Execute()
	return out.String(), err
}

func writeFixtures(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	files := map[string]string{
		"config.yaml": "log:\n  level: error\n",
		"dump.csv": "Date,Description,Amount\n" +
			"2024-01-10,UBER,-100\n" +
			"2024-01-20,SWIGGY,-50\n" +
			"2024-02-12,UBER,-300\n" +
			"2024-02-13,CC PAYMENT,-999\n",
		"categories.json": `{"Travel": ["uber"], "Food": ["swiggy"]}`,
	}
	for name, content := range files {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0600))
	}
	return dir
}

func TestCLI_Analyze(t *testing.T) {
	dir := writeFixtures(t)

	out, err := execute(t, dir, "analyze", "--format", "csv", "--cycle-start", "15")
	require.NoError(t, err)

	assert.Equal(t, "Cycle,From,To,Category,Amount\n"+
		"2023-12,2023-12-16,2024-01-15,Travel,100.00\n"+
		"2023-12,2023-12-16,2024-01-15,TOTAL,100.00\n"+
		"2024-01,2024-01-16,2024-02-15,Travel,300.00\n"+
		"2024-01,2024-01-16,2024-02-15,Food,50.00\n"+
		"2024-01,2024-01-16,2024-02-15,TOTAL,350.00\n",
		out)
}

func TestCLI_InvalidCycleStart(t *testing.T) {
	dir := writeFixtures(t)

	_, err := execute(t, dir, "cycle", "--cycle-start", "40", "2024-01-01")
	require.Error(t, err)

	var cfgErr *parsererror.ConfigError
	assert.True(t, errors.As(err, &cfgErr))
}

func TestCLI_Subcommands(t *testing.T) {
	names := make(map[string]bool)
	for _, c := range root.Cmd.Commands() {
		names[c.Name()] = true
	}
	assert.True(t, names["analyze"])
	assert.True(t, names["categorize"])
	assert.True(t, names["cycle"])
	assert.True(t, names["pdf"])
}
