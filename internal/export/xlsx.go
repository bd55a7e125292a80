package export

import (
	"fmt"

	"github.com/xuri/excelize/v2"
)

const sheetName = "Invoices"

// WriteWorkbook stages the batch as an .xlsx workbook at path.
func WriteWorkbook(path string, headers []string, rows [][]string) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", sheetName); err != nil {
		return fmt.Errorf("rename sheet: %w", err)
	}

	if err := f.SetSheetRow(sheetName, "A1", rowValues(headers)); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	if len(headers) > 0 {
		styleID, err := f.NewStyle(&excelize.Style{
			Font: &excelize.Font{Bold: true, Color: "FFFFFF"},
			Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"4472C4"}},
		})
		if err != nil {
			return fmt.Errorf("header style: %w", err)
		}
		end, err := excelize.CoordinatesToCellName(len(headers), 1)
		if err != nil {
			return fmt.Errorf("header range: %w", err)
		}
		if err := f.SetCellStyle(sheetName, "A1", end, styleID); err != nil {
			return fmt.Errorf("style header: %w", err)
		}
		lastCol, err := excelize.ColumnNumberToName(len(headers))
		if err != nil {
			return fmt.Errorf("column name: %w", err)
		}
		if err := f.SetColWidth(sheetName, "A", lastCol, 25); err != nil {
			return fmt.Errorf("column width: %w", err)
		}
	}

	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return fmt.Errorf("row cell: %w", err)
		}
		if err := f.SetSheetRow(sheetName, cell, rowValues(row)); err != nil {
			return fmt.Errorf("write row %d: %w", i+1, err)
		}
	}

	return f.SaveAs(path)
}

func rowValues(cells []string) *[]interface{} {
	vals := make([]interface{}, len(cells))
	for i, cell := range cells {
		vals[i] = cell
	}
	return &vals
}
