package csvexport

import (
	"encoding/csv"
	"fmt"
	"io"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"invonest/internal/gst"
)

// UTF-8 BOM bytes for Excel compatibility on Windows.
var BOM = []byte{0xEF, 0xBB, 0xBF}

// columns defines the CSV header row (18 columns).
var columns = []string{
	"#",
	"Description",
	"HSN/SAC",
	"Quantity",
	"Unit",
	"Rate",
	"Discount %",
	"Gross Amount",
	"Discount",
	"Taxable Amount",
	"Tax Rate %",
	"CGST Rate %",
	"CGST",
	"SGST Rate %",
	"SGST",
	"IGST Rate %",
	"IGST",
	"Total",
}

// Columns returns a copy of the line item header row.
func Columns() []string {
	out := make([]string, len(columns))
	copy(out, columns)
	return out
}

// Writer wraps csv.Writer for exporting calculations as CSV.
type Writer struct {
	csv *csv.Writer
}

// NewWriter creates a Writer that writes CSV to w.
func NewWriter(w io.Writer) *Writer {
	return &Writer{csv: csv.NewWriter(w)}
}

// WriteHeader writes the 18-column header row.
func (w *Writer) WriteHeader() error {
	return w.csv.Write(columns)
}

// WriteItems writes one row per calculated line item.
func (w *Writer) WriteItems(items []gst.LineItemResult) error {
	for i := range items {
		if err := w.csv.Write(itemToRow(&items[i])); err != nil {
			return err
		}
	}
	return nil
}

// WriteTotals writes a blank separator row followed by one row per invoice
// total. Labels go in the Description column and amounts in the Total
// column so every row keeps the header's width.
func (w *Writer) WriteTotals(res *gst.CalculationResult) error {
	if err := w.csv.Write(make([]string, len(columns))); err != nil {
		return err
	}
	for _, s := range SummaryLines(res) {
		row := make([]string, len(columns))
		row[1] = s.Label
		row[len(columns)-1] = s.Value
		if err := w.csv.Write(row); err != nil {
			return err
		}
	}
	return nil
}

// WriteCalculation writes the header, items and totals, then flushes.
func (w *Writer) WriteCalculation(res *gst.CalculationResult) error {
	if err := w.WriteHeader(); err != nil {
		return err
	}
	if err := w.WriteItems(res.Items); err != nil {
		return err
	}
	if err := w.WriteTotals(res); err != nil {
		return err
	}
	w.Flush()
	return w.Error()
}

// Flush flushes the underlying csv.Writer buffer.
func (w *Writer) Flush() {
	w.csv.Flush()
}

// Error returns any error from the underlying csv.Writer.
func (w *Writer) Error() error {
	return w.csv.Error()
}

// SummaryLine is one labelled invoice-level figure.
type SummaryLine struct {
	Label string
	Value string
}

// SummaryLines lists the invoice totals in display order. CGST/SGST rows are
// shown for intra-state invoices and the IGST row for inter-state ones.
func SummaryLines(res *gst.CalculationResult) []SummaryLine {
	t := &res.Totals
	lines := []SummaryLine{
		{"Tax Type", taxTypeLabel(res.TaxType)},
		{"Subtotal", FormatMoney(t.Subtotal)},
		{"Total Discount", FormatMoney(t.TotalDiscount)},
		{"Taxable Amount", FormatMoney(t.TaxableAmount)},
	}
	if res.IsIntraState() {
		lines = append(lines,
			SummaryLine{"CGST", FormatMoney(t.TotalCGST)},
			SummaryLine{"SGST", FormatMoney(t.TotalSGST)},
		)
	} else {
		lines = append(lines, SummaryLine{"IGST", FormatMoney(t.TotalIGST)})
	}
	lines = append(lines,
		SummaryLine{"Total Tax", FormatMoney(t.TotalTax)},
		SummaryLine{"Grand Total", FormatMoney(t.GrandTotal)},
		SummaryLine{"Round Off", FormatMoney(t.RoundOff)},
		SummaryLine{"Amount Payable", FormatMoney(t.RoundedGrandTotal)},
		SummaryLine{"Amount in Words", t.AmountInWords},
	)
	return lines
}

func taxTypeLabel(t gst.TaxType) string {
	if t == gst.TaxTypeIntraState {
		return "Intra-state (CGST + SGST)"
	}
	return "Inter-state (IGST)"
}

// itemToRow converts one line item to an 18-element string slice.
func itemToRow(r *gst.LineItemResult) []string {
	return []string{
		strconv.Itoa(r.Index + 1),
		r.Description,
		r.HSNCode,
		r.Quantity.String(),
		r.Unit,
		FormatMoney(r.Rate),
		r.DiscountPercent.String(),
		FormatMoney(r.GrossAmount),
		FormatMoney(r.DiscountAmount),
		FormatMoney(r.TaxableAmount),
		r.TaxRatePercent.String(),
		r.CGSTRate.String(),
		FormatMoney(r.CGSTAmount),
		r.SGSTRate.String(),
		FormatMoney(r.SGSTAmount),
		r.IGSTRate.String(),
		FormatMoney(r.IGSTAmount),
		FormatMoney(r.TotalAmount),
	}
}

// FormatMoney renders an amount with exactly two decimal places.
func FormatMoney(v decimal.Decimal) string {
	return v.StringFixed(gst.CurrencyPlaces)
}

// nonAlphanumeric matches characters that are not alphanumeric, hyphen, or underscore.
var nonAlphanumeric = regexp.MustCompile(`[^a-zA-Z0-9_-]+`)

// multiUnderscore matches consecutive underscores.
var multiUnderscore = regexp.MustCompile(`_{2,}`)

// SanitizeFilename cleans a name for use in Content-Disposition.
// Replaces non-alphanumeric chars (except - _) with _, collapses consecutive
// underscores, and truncates to 100 chars.
func SanitizeFilename(name string) string {
	s := nonAlphanumeric.ReplaceAllString(name, "_")
	s = multiUnderscore.ReplaceAllString(s, "_")
	s = strings.Trim(s, "_")
	if len(s) > 100 {
		s = s[:100]
	}
	return s
}

// BuildFilename returns a sanitized filename for Content-Disposition header.
// Format: {sanitized_name}_{YYYY-MM-DD}.{ext}; an empty name becomes "invoice".
func BuildFilename(name, ext string, date time.Time) string {
	sanitized := SanitizeFilename(name)
	if sanitized == "" {
		sanitized = "invoice"
	}
	return fmt.Sprintf("%s_%s.%s", sanitized, date.Format("2006-01-02"), ext)
}
