package invoices

import (
	"regexp"
	"strings"
)

// A rule resolves one field candidate from raw invoice text. The rules for a
// field run in priority order and the first match wins; later rules are never
// consulted once one succeeds.
type rule func(text string) (string, bool)

func pattern(expr string) rule {
	re := regexp.MustCompile(expr)
	return func(text string) (string, bool) {
		m := re.FindStringSubmatch(text)
		if len(m) > 1 {
			return strings.TrimSpace(m[1]), true
		}
		return "", false
	}
}

const datePattern = `\d{1,2}[-/.]\d{1,2}[-/.]\d{2,4}`

var (
	invoiceNoRules = []rule{
		// OCR frequently garbles the "invoiceNo" label (e.g. "roveieNo").
		pattern(`(?i)[ri]o[vi]ei[ce]No\.\s*\|\s*(\d{4,})`),
		pattern(`(?i)invoice\s*(?:no\.?|number|#)[:\s]+(\d{4,})`),
		pattern(`(?i)inv\.?\s*[:\s]*(\d{4,})`),
		pattern(`חשבונית\s*[#:]?\s*([0-9-]{4,})`),
		pattern(`(?i)(?:P\.?O\.?\s+)?BOX\s+\d+\s+(\d{4,})`),
		// Templates with no label at all: a 5-6 digit number right before a date.
		pattern(`(\d{5,6})\s+\d{1,2}/\d{1,2}/\d{2,4}`),
	}

	invoiceDateRules = []rule{
		pattern(`(?i)invoiceDate\s*\|\s*(` + datePattern + `)`),
		pattern(`(?i)(?:invoice\s+)?date[:\s]+(` + datePattern + `)`),
		pattern(`תאריך[:\s]+(` + datePattern + `)`),
		firstDate,
	}

	dueOnRules = []rule{
		pattern(`(?i)due\s+on[:\s]+(` + datePattern + `)`),
		pattern(`(?i)payment\s+due[:\s]+(` + datePattern + `)`),
		pattern(`תאריך\s+תשלום[:\s]+(` + datePattern + `)`),
		lastDate,
	}

	amountRules = []rule{
		pattern(`(?m)\$\s*([\d,]+\.\d{2})\s*$`),
		pattern(`(?i)total\s+due[:\s]*\$?\s*([\d,]+\.\d{2})`),
		pattern(`(?i)payable.*?\$\s*([\d,]+\.\d{2})`),
		lastLineAmount,
	}

	dateTokenRe    = regexp.MustCompile(datePattern)
	lineAmountRe   = regexp.MustCompile(`(?m)([\d,]+\.\d{2})\s*$`)
	payableRe      = regexp.MustCompile(`(?i)payable\s+upon\s+receipt|payment\s+due\s+upon\s+receipt|מיד עם קבלה`)
	chargesBlockRe = regexp.MustCompile(`(?is)description\s+of\s+charges(.*?)(?:due\s+on|payable|$)`)
	chargeLineRe   = regexp.MustCompile(`^(.+?)\s+([\d,]+\.\d{2})$`)
	amountHeaderRe = regexp.MustCompile(`(?i)^amount$`)
)

// firstDate picks the first date-shaped token anywhere in the text.
func firstDate(text string) (string, bool) {
	if m := dateTokenRe.FindString(text); m != "" {
		return m, true
	}
	return "", false
}

// lastDate assumes the first date in a document is the invoice date and the
// last is the due date. With fewer than two dates it refuses to guess.
func lastDate(text string) (string, bool) {
	dates := dateTokenRe.FindAllString(text, -1)
	if len(dates) < 2 {
		return "", false
	}
	return dates[len(dates)-1], true
}

// lastLineAmount picks the last line-ending decimal number, on the heuristic
// that the grand total appears last in the document.
func lastLineAmount(text string) (string, bool) {
	all := lineAmountRe.FindAllStringSubmatch(text, -1)
	if len(all) == 0 {
		return "", false
	}
	return all[len(all)-1][1], true
}

// Parse extracts structured invoice fields from raw document text. It is
// deterministic and performs no I/O; any field the cascades cannot resolve
// stays at its empty default.
func Parse(text string) Record {
	rec := Record{
		InvoiceNo:          resolve(text, invoiceNoRules),
		InvoiceDate:        resolve(text, invoiceDateRules),
		DueOn:              resolve(text, dueOnRules),
		Amount:             resolve(text, amountRules),
		PayableUponReceipt: "No",
		ChargeItems:        parseChargeItems(text),
	}
	if payableRe.MatchString(text) {
		rec.PayableUponReceipt = "Yes"
	}
	rec.Description = summarizeCharges(rec.ChargeItems)
	return rec
}

func resolve(text string, rules []rule) string {
	for _, r := range rules {
		if v, ok := r(text); ok {
			return v
		}
	}
	return ""
}

// parseChargeItems extracts the itemized lines between the "description of
// charges" label and the first "due on"/"payable" marker (or end of text).
// Lines without a trailing two-decimal amount are dropped silently.
func parseChargeItems(text string) []ChargeItem {
	items := []ChargeItem{}
	block := chargesBlockRe.FindStringSubmatch(text)
	if len(block) < 2 {
		return items
	}
	for _, line := range strings.Split(block[1], "\n") {
		line = strings.TrimSpace(line)
		if line == "" || amountHeaderRe.MatchString(line) || strings.HasPrefix(line, "|") {
			continue
		}
		m := chargeLineRe.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		items = append(items, ChargeItem{Description: strings.TrimSpace(m[1]), Amount: m[2]})
	}
	return items
}

const maxDescriptionLen = 300

// summarizeCharges renders charge items as a single bounded field for
// consumers that predate itemized columns. Presentation only.
func summarizeCharges(items []ChargeItem) string {
	parts := make([]string, 0, len(items))
	for _, item := range items {
		parts = append(parts, item.Description+": "+item.Amount)
	}
	joined := strings.Join(parts, "; ")
	if runes := []rune(joined); len(runes) > maxDescriptionLen {
		return string(runes[:maxDescriptionLen])
	}
	return joined
}
