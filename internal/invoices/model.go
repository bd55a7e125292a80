package invoices

// ChargeItem is one description/amount pair from an invoice's itemized
// charges block. Amounts stay raw strings so separators and leading zeros
// survive round-trips.
type ChargeItem struct {
	Description string `json:"description"`
	Amount      string `json:"amount"`
}

// Record is the structured result of extracting one invoice document.
// Every field defaults to an empty value rather than being absent, so
// consumers never check for missing keys. Records live for a single request.
type Record struct {
	FileName           string       `json:"fileName"`
	InvoiceNo          string       `json:"invoiceNo"`
	InvoiceDate        string       `json:"invoiceDate"`
	DueOn              string       `json:"dueOn"`
	Amount             string       `json:"amount"`
	PayableUponReceipt string       `json:"payableUponReceipt"`
	ChargeItems        []ChargeItem `json:"chargeItems"`
	Description        string       `json:"description"`
}
