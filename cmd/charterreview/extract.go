package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/dgallion1/charterreview/internal/parser"
	"github.com/spf13/cobra"
)

var (
	extractCells  string
	extractTables bool
)

var extractCmd = &cobra.Command{
	Use:   "extract <file>",
	Short: "Print the text stream of one document",
	Long: `Prints the lines the extractor sees for a document: one line per body
paragraph and one tab-separated line per table row, in document order.`,
	Args: cobra.ExactArgs(1),
	RunE: runExtract,
}

func init() {
	extractCmd.Flags().StringVar(&extractCells, "cells", "substitute", "form fields in table cells: substitute or append")
	extractCmd.Flags().BoolVar(&extractTables, "mark-tables", false, "prefix table rows with their table number")
	rootCmd.AddCommand(extractCmd)
}

func runExtract(cmd *cobra.Command, args []string) error {
	path := args[0]
	strategy, err := parser.ParseCellStrategy(extractCells)
	if err != nil {
		return err
	}
	p, err := parser.ForFile(path)
	if err != nil {
		return err
	}
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	doc, err := p.Parse(f, filepath.Base(path))
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	for _, l := range parser.Gather(doc, strategy) {
		if extractTables && l.IsRow() {
			fmt.Fprintf(out, "[t%d] %s\n", l.Table+1, l.Text)
			continue
		}
		fmt.Fprintln(out, l.Text)
	}
	return nil
}
