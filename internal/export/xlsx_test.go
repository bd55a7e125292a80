package export

import (
	"path/filepath"
	"testing"

	"github.com/xuri/excelize/v2"
)

func TestWriteWorkbookRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "invoices.xlsx")
	headers := []string{"File Name", "Invoice No.", "Invoice Date", "Total Amount", "Due On", "Payable Upon Receipt"}
	rows := [][]string{
		{"a.pdf", "111", "1/2/2024", "9.99", "2/1/2024", "No"},
		{"b.pdf", "222", "3/4/2024", "19.99", "4/1/2024", "Yes"},
	}

	if err := WriteWorkbook(path, headers, rows); err != nil {
		t.Fatalf("write workbook: %v", err)
	}

	f, err := excelize.OpenFile(path)
	if err != nil {
		t.Fatalf("open workbook: %v", err)
	}
	defer f.Close()

	got, err := f.GetRows(sheetName)
	if err != nil {
		t.Fatalf("read rows: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("expected header + 2 rows, got %d", len(got))
	}
	if got[0][0] != "File Name" || got[0][5] != "Payable Upon Receipt" {
		t.Fatalf("unexpected header row: %v", got[0])
	}
	if got[2][1] != "222" || got[2][5] != "Yes" {
		t.Fatalf("unexpected data row: %v", got[2])
	}
}
