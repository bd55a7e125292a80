package export

import (
	"fmt"

	"invoice-backend/internal/invoices"
)

var fixedHeaders = []string{
	"File Name",
	"Invoice No.",
	"Invoice Date",
	"Total Amount",
	"Due On",
	"Payable Upon Receipt",
}

// BuildExport computes a unified header row for the batch and one padded row
// per record. Records with fewer charge items than the widest record are
// padded with empty cells so every row has exactly 6 + 2*max cells.
func BuildExport(records []invoices.Record) (headers []string, rows [][]string) {
	maxItems := 0
	for _, rec := range records {
		if n := len(rec.ChargeItems); n > maxItems {
			maxItems = n
		}
	}

	headers = append(headers, fixedHeaders...)
	for i := 1; i <= maxItems; i++ {
		headers = append(headers,
			fmt.Sprintf("Charge %d Description", i),
			fmt.Sprintf("Charge %d Amount", i),
		)
	}

	rows = make([][]string, 0, len(records))
	for _, rec := range records {
		row := make([]string, 0, len(headers))
		row = append(row, rec.FileName, rec.InvoiceNo, rec.InvoiceDate, rec.Amount, rec.DueOn, rec.PayableUponReceipt)
		for _, item := range rec.ChargeItems {
			row = append(row, item.Description, item.Amount)
		}
		for i := len(rec.ChargeItems); i < maxItems; i++ {
			row = append(row, "", "")
		}
		rows = append(rows, row)
	}
	return headers, rows
}
