package invoices

import (
	"encoding/json"
	"reflect"
	"strings"
	"testing"
)

func TestParseIsDeterministic(t *testing.T) {
	text := "Invoice No: 12345\nTotal Due: $1,000.00\nDue On: 4/1/2024\n"

	first := Parse(text)
	second := Parse(text)

	if !reflect.DeepEqual(first, second) {
		t.Fatalf("expected identical records, got %+v vs %+v", first, second)
	}
}

func TestParseEmptyTextYieldsDefaults(t *testing.T) {
	rec := Parse("")

	if rec.InvoiceNo != "" || rec.InvoiceDate != "" || rec.DueOn != "" || rec.Amount != "" {
		t.Fatalf("expected empty string fields, got %+v", rec)
	}
	if rec.PayableUponReceipt != "No" {
		t.Fatalf("expected payableUponReceipt No, got %q", rec.PayableUponReceipt)
	}
	if rec.ChargeItems == nil || len(rec.ChargeItems) != 0 {
		t.Fatalf("expected empty charge items slice, got %#v", rec.ChargeItems)
	}
	if rec.Description != "" {
		t.Fatalf("expected empty description, got %q", rec.Description)
	}
}

func TestChargeItemsMarshalAsEmptyArray(t *testing.T) {
	data, err := json.Marshal(Parse(""))
	if err != nil {
		t.Fatalf("marshal record: %v", err)
	}
	if !strings.Contains(string(data), `"chargeItems":[]`) {
		t.Fatalf("expected chargeItems to serialize as [], got %s", data)
	}
}

func TestInvoiceNoGarbledLabelBeatsPlainLabel(t *testing.T) {
	text := "roveieNo. | 11111\nInvoice No: 22222\n"

	rec := Parse(text)
	if rec.InvoiceNo != "11111" {
		t.Fatalf("expected garbled-label rule to win with 11111, got %q", rec.InvoiceNo)
	}
}

func TestInvoiceNoPlainLabel(t *testing.T) {
	rec := Parse("Invoice No: 22222\n")
	if rec.InvoiceNo != "22222" {
		t.Fatalf("expected 22222, got %q", rec.InvoiceNo)
	}
}

func TestInvoiceNoHashLabel(t *testing.T) {
	rec := Parse("Invoice # 445566\n")
	if rec.InvoiceNo != "445566" {
		t.Fatalf("expected 445566, got %q", rec.InvoiceNo)
	}
}

func TestInvoiceNoPositionalFallbacks(t *testing.T) {
	// No explicit label anywhere; the number after the postal box marker and
	// the digits-before-a-date token both point at the same value.
	text := "ACME Corp\nP.O. BOX 500 123456\n45 Main St 123456 3/1/2024\n"

	rec := Parse(text)
	if rec.InvoiceNo != "123456" {
		t.Fatalf("expected positional rules to yield 123456, got %q", rec.InvoiceNo)
	}
}

func TestInvoiceNoDigitsBeforeDate(t *testing.T) {
	rec := Parse("billing ref 98765 3/1/2024\n")
	if rec.InvoiceNo != "98765" {
		t.Fatalf("expected 98765 from digits-before-date rule, got %q", rec.InvoiceNo)
	}
}

func TestDatePositionalSplit(t *testing.T) {
	// Two unlabeled dates: the first is the invoice date, the last the due
	// date.
	text := "ACME Corp\nissued 1/2/2024 for services\nsettle by 3/4/2024 please\n"

	rec := Parse(text)
	if rec.InvoiceDate != "1/2/2024" {
		t.Fatalf("expected first date as invoice date, got %q", rec.InvoiceDate)
	}
	if rec.DueOn != "3/4/2024" {
		t.Fatalf("expected last date as due date, got %q", rec.DueOn)
	}
}

func TestDueOnSingleDateLeftEmpty(t *testing.T) {
	rec := Parse("issued 1/2/2024 only\n")
	if rec.InvoiceDate != "1/2/2024" {
		t.Fatalf("expected invoice date 1/2/2024, got %q", rec.InvoiceDate)
	}
	if rec.DueOn != "" {
		t.Fatalf("expected empty due date with a single date token, got %q", rec.DueOn)
	}
}

func TestDueOnLabeledBeatsPositional(t *testing.T) {
	text := "issued 1/2/2024\nDue On: 2/15/2024\nfooter 9/9/2099\n"

	rec := Parse(text)
	if rec.DueOn != "2/15/2024" {
		t.Fatalf("expected labeled due date 2/15/2024, got %q", rec.DueOn)
	}
}

func TestAmountDollarAtLineEnd(t *testing.T) {
	rec := Parse("Services rendered\nBalance $ 1,234.56\nthank you\n")
	if rec.Amount != "1,234.56" {
		t.Fatalf("expected 1,234.56, got %q", rec.Amount)
	}
}

func TestAmountTotalDueLabel(t *testing.T) {
	rec := Parse("Total due: 500.00 USD\n")
	if rec.Amount != "500.00" {
		t.Fatalf("expected 500.00 from total-due label, got %q", rec.Amount)
	}
}

func TestAmountLastLineNumberFallback(t *testing.T) {
	text := "line one 100.00\nline two 250.00\nline three 999.99\n"

	rec := Parse(text)
	if rec.Amount != "999.99" {
		t.Fatalf("expected last line-ending number 999.99, got %q", rec.Amount)
	}
}

func TestPayableUponReceipt(t *testing.T) {
	yes := Parse("Payment due upon receipt\n")
	if yes.PayableUponReceipt != "Yes" {
		t.Fatalf("expected Yes, got %q", yes.PayableUponReceipt)
	}

	no := Parse("net 30 terms\n")
	if no.PayableUponReceipt != "No" {
		t.Fatalf("expected No, got %q", no.PayableUponReceipt)
	}
}

func TestChargeItemsDropMalformedLines(t *testing.T) {
	text := strings.Join([]string{
		"Description of Charges",
		"Amount",
		"| --------",
		"Consulting services 1,200.00",
		"Travel 300.50",
		"Subtotal note without trailing figure",
		"Supplies 45.99",
		"Due On: 4/1/2024",
	}, "\n")

	rec := Parse(text)
	want := []ChargeItem{
		{Description: "Consulting services", Amount: "1,200.00"},
		{Description: "Travel", Amount: "300.50"},
		{Description: "Supplies", Amount: "45.99"},
	}
	if !reflect.DeepEqual(rec.ChargeItems, want) {
		t.Fatalf("expected %+v, got %+v", want, rec.ChargeItems)
	}
	if rec.Description != "Consulting services: 1,200.00; Travel: 300.50; Supplies: 45.99" {
		t.Fatalf("unexpected description: %q", rec.Description)
	}
}

func TestChargeItemsBlockEndsAtPayable(t *testing.T) {
	text := strings.Join([]string{
		"Description of Charges",
		"Hosting 80.00",
		"Payable upon receipt",
		"Hidden line 999.00",
	}, "\n")

	rec := Parse(text)
	if len(rec.ChargeItems) != 1 || rec.ChargeItems[0].Description != "Hosting" {
		t.Fatalf("expected block to end at payable marker, got %+v", rec.ChargeItems)
	}
}

func TestDescriptionTruncatedTo300(t *testing.T) {
	var lines []string
	lines = append(lines, "Description of Charges")
	for i := 0; i < 20; i++ {
		lines = append(lines, "A very repetitive billable engineering work item 1,000.00")
	}
	text := strings.Join(lines, "\n")

	rec := Parse(text)
	if got := len([]rune(rec.Description)); got > 300 {
		t.Fatalf("expected description capped at 300 characters, got %d", got)
	}
	if !strings.HasPrefix(rec.Description, "A very repetitive billable engineering work item: 1,000.00; ") {
		t.Fatalf("unexpected description prefix: %q", rec.Description)
	}
}
