// =============================================================================
// Vertragswert Tool - XLSX Results Workbook
// =============================================================================
//
// Writes the projection results as a spreadsheet workbook next to the CSV
// table. The operators of the legacy tool open the results in a spreadsheet
// anyway; the workbook saves them the import dialog. Same columns and row
// order as the tabular export, with the final amount as a real number cell.
//
// =============================================================================

package export

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"github.com/zbt-tools/vertragswert/internal/contract"
)

// workbookSheet is the sheet the results are written to.
const workbookSheet = "Sheet1"

// WriteWorkbook writes the results as an XLSX workbook to w.
func WriteWorkbook(w io.Writer, results []contract.Result) error {
	f := excelize.NewFile()
	defer f.Close()

	for col, name := range TableHeader {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return fmt.Errorf("failed to build header cell name: %w", err)
		}
		if err := f.SetCellValue(workbookSheet, cell, name); err != nil {
			return fmt.Errorf("failed to write workbook header: %w", err)
		}
	}

	for i, res := range results {
		row := i + 2

		// The final amount is stored as a number so spreadsheet formulas work
		// on it; the two-decimal rendering matches the CSV table.
		final, _ := res.FinalAmount.Round(2).Float64()

		values := []any{res.ContractID, res.CustomerName, final}
		for col, value := range values {
			cell, err := excelize.CoordinatesToCellName(col+1, row)
			if err != nil {
				return fmt.Errorf("failed to build cell name: %w", err)
			}
			if err := f.SetCellValue(workbookSheet, cell, value); err != nil {
				return fmt.Errorf("failed to write workbook row %d: %w", row, err)
			}
		}
	}

	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	return nil
}
