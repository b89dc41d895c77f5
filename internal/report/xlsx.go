package report

import (
	"fmt"

	"github.com/dgallion1/charterreview/internal/compilation"
	"github.com/dgallion1/charterreview/internal/extract"
	"github.com/xuri/excelize/v2"
)

// SheetName is the worksheet holding one row per comment.
const SheetName = "Comments"

var xlsxHeader = []interface{}{"Section", "Kind", "Reviewer", "Comment", "Page Reference"}

// WriteXLSX saves res as a workbook with a header row and one row per
// comment, in report order.
func WriteXLSX(res *compilation.Result, path string) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", SheetName); err != nil {
		return fmt.Errorf("rename sheet: %w", err)
	}
	if err := f.SetSheetRow(SheetName, "A1", &xlsxHeader); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	row := 2
	for _, sec := range res.Sections() {
		for _, kind := range extract.Kinds {
			for _, c := range sortedByReviewer(sec.Comments(kind)) {
				cell, err := excelize.CoordinatesToCellName(1, row)
				if err != nil {
					return err
				}
				values := []interface{}{sec.Key.Title, kind.Heading(), c.Reviewer, c.Text, c.PageReference}
				if err := f.SetSheetRow(SheetName, cell, &values); err != nil {
					return fmt.Errorf("write row %d: %w", row, err)
				}
				row++
			}
		}
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("save %s: %w", path, err)
	}
	return nil
}
