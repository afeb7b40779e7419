package invoice

import (
	"context"
	"fmt"
	"math"
	"time"

	"invonest/internal/domain"
	"invonest/internal/gst"
)

// Notified GST slab rates.
var validTaxRates = []float64{0, 0.1, 0.25, 1.5, 3, 5, 12, 18, 28, 40}

// now is replaced in tests.
var now = time.Now

// logicalValidator checks logical constraints on the invoice data.
type logicalValidator struct {
	ruleKey  string
	ruleName string
	severity domain.ValidationSeverity
	validate func(*GSTInvoice) []ValidationResult
}

func (v *logicalValidator) RuleKey() string                     { return v.ruleKey }
func (v *logicalValidator) RuleName() string                    { return v.ruleName }
func (v *logicalValidator) RuleType() domain.ValidationRuleType { return domain.ValidationRuleCustom }
func (v *logicalValidator) Severity() domain.ValidationSeverity { return v.severity }

func (v *logicalValidator) Validate(_ context.Context, data *GSTInvoice) []ValidationResult {
	return v.validate(data)
}

type namedAmount struct {
	field string
	value float64
}

func isSlabRate(rate float64) bool {
	for _, r := range validTaxRates {
		if math.Abs(r-rate) < 0.001 {
			return true
		}
	}
	return false
}

func nonNegative(ruleName, fp string, val float64) ValidationResult {
	passed := val >= 0
	msg := fmt.Sprintf("%s: %s is non-negative", ruleName, fp)
	if !passed {
		msg = fmt.Sprintf("%s: %s is negative (%.2f)", ruleName, fp, val)
	}
	return ValidationResult{
		Passed: passed, FieldPath: fp,
		ExpectedValue: ">= 0", ActualValue: fmtf(val), Message: msg,
	}
}

// LogicalValidators returns all logical validators.
func LogicalValidators() []*logicalValidator {
	return []*logicalValidator{
		{
			ruleKey: "logic.line_items.at_least_one", ruleName: "Logical: At Least One Line Item",
			severity: domain.ValidationSeverityError,
			validate: func(d *GSTInvoice) []ValidationResult {
				passed := len(d.LineItems) >= 1
				msg := "Logical: At Least One Line Item: invoice has line items"
				if !passed {
					msg = "Logical: At Least One Line Item: invoice has no line items"
				}
				return []ValidationResult{{
					Passed: passed, FieldPath: "lineItems",
					ExpectedValue: ">= 1 line item",
					ActualValue:   fmt.Sprintf("%d", len(d.LineItems)),
					Message:       msg,
				}}
			},
		},
		{
			ruleKey: "logic.line_item.calculable", ruleName: "Logical: Line Item Calculable",
			severity: domain.ValidationSeverityError,
			validate: func(d *GSTInvoice) []ValidationResult {
				results := make([]ValidationResult, 0, len(d.LineItems))
				for i := range d.LineItems {
					item := &d.LineItems[i]
					in := item.CalculatorInput()
					passed := gst.Valid(&in)
					fp := itemPath(i, "")
					msg := fmt.Sprintf("Logical: Line Item Calculable: %s has a positive quantity, non-negative price and a discount within 0-100%%", fp)
					if !passed {
						msg = fmt.Sprintf("Logical: Line Item Calculable: %s would be excluded from the calculation", fp)
					}
					results = append(results, ValidationResult{
						Passed: passed, FieldPath: fp,
						ExpectedValue: "quantity > 0, unitPrice >= 0, 0 <= discountPercent <= 100, rate >= 0",
						ActualValue: fmt.Sprintf("quantity=%s, unitPrice=%s, discountPercent=%s, rate=%s",
							fmtf(item.Quantity), fmtf(item.UnitPrice), fmtf(item.DiscountPercent), fmtf(item.EffectiveRate())),
						Message: msg,
					})
				}
				return results
			},
		},
		{
			ruleKey: "logic.line_item.non_negative", ruleName: "Logical: Line Item Non-Negative Amounts",
			severity: domain.ValidationSeverityError,
			validate: func(d *GSTInvoice) []ValidationResult {
				var results []ValidationResult
				for i := range d.LineItems {
					item := &d.LineItems[i]
					for _, a := range []namedAmount{
						{"taxableAmount", item.TaxableAmount},
						{"cgstAmount", item.CGSTAmount},
						{"sgstAmount", item.SGSTAmount},
						{"igstAmount", item.IGSTAmount},
						{"total", item.Total},
					} {
						results = append(results, nonNegative("Logical: Line Item Non-Negative Amounts", itemPath(i, a.field), a.value))
					}
				}
				return results
			},
		},
		{
			ruleKey: "logic.line_item.valid_tax_rate", ruleName: "Logical: Valid Tax Rate",
			severity: domain.ValidationSeverityWarning,
			validate: func(d *GSTInvoice) []ValidationResult {
				results := make([]ValidationResult, 0, len(d.LineItems))
				for i := range d.LineItems {
					rate := d.LineItems[i].EffectiveRate()
					fp := itemPath(i, "")
					passed := isSlabRate(rate)
					msg := fmt.Sprintf("Logical: Valid Tax Rate: %s has a standard GST rate", fp)
					if !passed {
						msg = fmt.Sprintf("Logical: Valid Tax Rate: %s has non-standard rate %.2f%%", fp, rate)
					}
					results = append(results, ValidationResult{
						Passed: passed, FieldPath: fp,
						ExpectedValue: "one of {0, 0.1, 0.25, 1.5, 3, 5, 12, 18, 28, 40}",
						ActualValue:   fmtf(rate), Message: msg,
					})
				}
				return results
			},
		},
		{
			ruleKey: "logic.line_item.cgst_eq_sgst", ruleName: "Logical: CGST Equals SGST",
			severity: domain.ValidationSeverityError,
			validate: func(d *GSTInvoice) []ValidationResult {
				results := make([]ValidationResult, 0, len(d.LineItems))
				for i := range d.LineItems {
					item := &d.LineItems[i]
					fp := itemPath(i, "")
					passed := item.CGSTRate == item.SGSTRate && approxEqual(item.CGSTAmount, item.SGSTAmount)
					msg := fmt.Sprintf("Logical: CGST Equals SGST: %s CGST and SGST match", fp)
					if !passed {
						msg = fmt.Sprintf("Logical: CGST Equals SGST: %s CGST (%.2f%%, %.2f) != SGST (%.2f%%, %.2f)",
							fp, item.CGSTRate, item.CGSTAmount, item.SGSTRate, item.SGSTAmount)
					}
					results = append(results, ValidationResult{
						Passed: passed, FieldPath: fp,
						ExpectedValue: "cgstRate == sgstRate, cgstAmount == sgstAmount",
						ActualValue:   fmt.Sprintf("cgst=%.2f/%.2f, sgst=%.2f/%.2f", item.CGSTRate, item.CGSTAmount, item.SGSTRate, item.SGSTAmount),
						Message:       msg,
					})
				}
				return results
			},
		},
		{
			ruleKey: "logic.line_item.exclusive_tax", ruleName: "Logical: Exclusive Tax Types",
			severity: domain.ValidationSeverityError,
			validate: func(d *GSTInvoice) []ValidationResult {
				results := make([]ValidationResult, 0, len(d.LineItems))
				for i := range d.LineItems {
					item := &d.LineItems[i]
					fp := itemPath(i, "")
					hasCgstSgst := item.CGSTRate > 0 || item.SGSTRate > 0 || item.CGSTAmount > 0 || item.SGSTAmount > 0
					hasIgst := item.IGSTRate > 0 || item.IGSTAmount > 0
					passed := !(hasCgstSgst && hasIgst)
					msg := fmt.Sprintf("Logical: Exclusive Tax Types: %s uses either CGST+SGST or IGST, not both", fp)
					if !passed {
						msg = fmt.Sprintf("Logical: Exclusive Tax Types: %s has both CGST/SGST and IGST applied", fp)
					}
					results = append(results, ValidationResult{
						Passed: passed, FieldPath: fp,
						ExpectedValue: "either CGST+SGST or IGST, not both",
						ActualValue:   ratesActual(item),
						Message:       msg,
					})
				}
				return results
			},
		},
		{
			ruleKey: "logic.invoice.date_not_future", ruleName: "Logical: Invoice Date Not in Future",
			severity: domain.ValidationSeverityWarning,
			validate: func(d *GSTInvoice) []ValidationResult {
				if d.Invoice.InvoiceDate == "" {
					return []ValidationResult{{
						Passed: true, FieldPath: "invoice.invoiceDate",
						Message: "Logical: Invoice Date Not in Future: date missing, skipping",
					}}
				}
				invDate, err := parseDate(d.Invoice.InvoiceDate)
				if err != nil {
					return []ValidationResult{{
						Passed: true, FieldPath: "invoice.invoiceDate",
						Message: "Logical: Invoice Date Not in Future: date not parseable, skipping",
					}}
				}
				today := now().UTC().Truncate(24 * time.Hour)
				passed := !invDate.After(today)
				msg := "Logical: Invoice Date Not in Future: invoice date is not in the future"
				if !passed {
					msg = "Logical: Invoice Date Not in Future: invoice date is in the future"
				}
				return []ValidationResult{{
					Passed: passed, FieldPath: "invoice.invoiceDate",
					ExpectedValue: fmt.Sprintf("<= %s", today.Format("2006-01-02")),
					ActualValue:   d.Invoice.InvoiceDate, Message: msg,
				}}
			},
		},
		{
			ruleKey: "logic.totals.non_negative", ruleName: "Logical: Non-Negative Totals",
			severity: domain.ValidationSeverityError,
			validate: func(d *GSTInvoice) []ValidationResult {
				amounts := []namedAmount{
					{"totals.subtotal", d.Totals.Subtotal},
					{"totals.taxableAmount", d.Totals.TaxableAmount},
					{"totals.cgst", d.Totals.CGST},
					{"totals.sgst", d.Totals.SGST},
					{"totals.igst", d.Totals.IGST},
					{"totals.total", d.Totals.Total},
				}
				results := make([]ValidationResult, 0, len(amounts))
				for _, a := range amounts {
					results = append(results, nonNegative("Logical: Non-Negative Totals", a.field, a.value))
				}
				return results
			},
		},
	}
}
