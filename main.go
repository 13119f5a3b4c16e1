package main

import (
	"fmt"
	"os"

	"fjacquet/cycle-spend/cmd/analyze"
	"fjacquet/cycle-spend/cmd/categorize"
	"fjacquet/cycle-spend/cmd/cycle"
	"fjacquet/cycle-spend/cmd/pdf"
	"fjacquet/cycle-spend/cmd/root"
)

func init() {
	// Initialize root command flags, then add all subcommands
	root.Init()

	root.Cmd.AddCommand(analyze.Cmd)
	root.Cmd.AddCommand(categorize.Cmd)
	root.Cmd.AddCommand(cycle.Cmd)
	root.Cmd.AddCommand(pdf.Cmd)
}

func main() {
	if err := root.Cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
