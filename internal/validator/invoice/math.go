package invoice

import (
	"context"
	"fmt"
	"math"

	"invonest/internal/domain"
	"invonest/internal/gst"
)

const mathTolerance = 1.00

// mathValidator checks arithmetic relationships between fields.
type mathValidator struct {
	ruleKey  string
	ruleName string
	severity domain.ValidationSeverity
	validate func(*GSTInvoice) []ValidationResult
}

func (v *mathValidator) RuleKey() string                     { return v.ruleKey }
func (v *mathValidator) RuleName() string                    { return v.ruleName }
func (v *mathValidator) RuleType() domain.ValidationRuleType { return domain.ValidationRuleSumCheck }
func (v *mathValidator) Severity() domain.ValidationSeverity { return v.severity }

func (v *mathValidator) Validate(_ context.Context, data *GSTInvoice) []ValidationResult {
	return v.validate(data)
}

func approxEqual(a, b float64) bool {
	return math.Abs(a-b) <= mathTolerance
}

func mathResult(passed bool, fieldPath, expected, actual, ruleName string) ValidationResult {
	msg := fmt.Sprintf("%s: %s calculation matches", ruleName, fieldPath)
	if !passed {
		msg = fmt.Sprintf("%s: %s calculation mismatch (expected %s, got %s)", ruleName, fieldPath, expected, actual)
	}
	return ValidationResult{
		Passed: passed, FieldPath: fieldPath,
		ExpectedValue: expected, ActualValue: actual, Message: msg,
	}
}

func fmtf(v float64) string {
	return fmt.Sprintf("%.2f", v)
}

func gross(li *LineItem) float64 {
	return li.Quantity * li.UnitPrice
}

func discount(li *LineItem) float64 {
	return gross(li) * li.DiscountPercent / 100
}

// perItem runs check over every line and reports against field.
func perItem(field, ruleName string, expected func(*LineItem) float64, actual func(*LineItem) float64) func(*GSTInvoice) []ValidationResult {
	return func(d *GSTInvoice) []ValidationResult {
		results := make([]ValidationResult, 0, len(d.LineItems))
		for i := range d.LineItems {
			item := &d.LineItems[i]
			exp, act := expected(item), actual(item)
			results = append(results, mathResult(approxEqual(act, exp), itemPath(i, field), fmtf(exp), fmtf(act), ruleName))
		}
		return results
	}
}

// sumCheck compares a stated total with the sum of a per-line amount.
func sumCheck(field, ruleName string, line func(*LineItem) float64, stated func(*Totals) float64) func(*GSTInvoice) []ValidationResult {
	return func(d *GSTInvoice) []ValidationResult {
		var sum float64
		for i := range d.LineItems {
			sum += line(&d.LineItems[i])
		}
		act := stated(&d.Totals)
		return []ValidationResult{mathResult(approxEqual(act, sum), field, fmtf(sum), fmtf(act), ruleName)}
	}
}

// MathValidators returns all mathematical validators.
func MathValidators() []*mathValidator {
	return []*mathValidator{
		{
			ruleKey: "math.line_item.taxable_amount", ruleName: "Math: Line Item Taxable Amount",
			severity: domain.ValidationSeverityError,
			validate: perItem("taxableAmount", "Math: Line Item Taxable Amount",
				func(li *LineItem) float64 { return gross(li) - discount(li) },
				func(li *LineItem) float64 { return li.TaxableAmount }),
		},
		{
			ruleKey: "math.line_item.cgst_amount", ruleName: "Math: Line Item CGST Amount",
			severity: domain.ValidationSeverityError,
			validate: perItem("cgstAmount", "Math: Line Item CGST Amount",
				func(li *LineItem) float64 { return li.TaxableAmount * li.CGSTRate / 100 },
				func(li *LineItem) float64 { return li.CGSTAmount }),
		},
		{
			ruleKey: "math.line_item.sgst_amount", ruleName: "Math: Line Item SGST Amount",
			severity: domain.ValidationSeverityError,
			validate: perItem("sgstAmount", "Math: Line Item SGST Amount",
				func(li *LineItem) float64 { return li.TaxableAmount * li.SGSTRate / 100 },
				func(li *LineItem) float64 { return li.SGSTAmount }),
		},
		{
			ruleKey: "math.line_item.igst_amount", ruleName: "Math: Line Item IGST Amount",
			severity: domain.ValidationSeverityError,
			validate: perItem("igstAmount", "Math: Line Item IGST Amount",
				func(li *LineItem) float64 { return li.TaxableAmount * li.IGSTRate / 100 },
				func(li *LineItem) float64 { return li.IGSTAmount }),
		},
		{
			ruleKey: "math.line_item.total", ruleName: "Math: Line Item Total",
			severity: domain.ValidationSeverityError,
			validate: perItem("total", "Math: Line Item Total",
				func(li *LineItem) float64 { return li.TaxableAmount + li.CGSTAmount + li.SGSTAmount + li.IGSTAmount },
				func(li *LineItem) float64 { return li.Total }),
		},
		{
			ruleKey: "math.totals.subtotal", ruleName: "Math: Subtotal",
			severity: domain.ValidationSeverityError,
			validate: sumCheck("totals.subtotal", "Math: Subtotal", gross,
				func(t *Totals) float64 { return t.Subtotal }),
		},
		{
			ruleKey: "math.totals.total_discount", ruleName: "Math: Total Discount",
			severity: domain.ValidationSeverityError,
			validate: sumCheck("totals.totalDiscount", "Math: Total Discount", discount,
				func(t *Totals) float64 { return t.TotalDiscount }),
		},
		{
			ruleKey: "math.totals.taxable_amount", ruleName: "Math: Taxable Amount",
			severity: domain.ValidationSeverityError,
			validate: func(d *GSTInvoice) []ValidationResult {
				expected := d.Totals.Subtotal - d.Totals.TotalDiscount
				passed := approxEqual(d.Totals.TaxableAmount, expected)
				return []ValidationResult{mathResult(passed, "totals.taxableAmount", fmtf(expected), fmtf(d.Totals.TaxableAmount), "Math: Taxable Amount")}
			},
		},
		{
			ruleKey: "math.totals.cgst", ruleName: "Math: Total CGST",
			severity: domain.ValidationSeverityError,
			validate: sumCheck("totals.cgst", "Math: Total CGST",
				func(li *LineItem) float64 { return li.CGSTAmount },
				func(t *Totals) float64 { return t.CGST }),
		},
		{
			ruleKey: "math.totals.sgst", ruleName: "Math: Total SGST",
			severity: domain.ValidationSeverityError,
			validate: sumCheck("totals.sgst", "Math: Total SGST",
				func(li *LineItem) float64 { return li.SGSTAmount },
				func(t *Totals) float64 { return t.SGST }),
		},
		{
			ruleKey: "math.totals.igst", ruleName: "Math: Total IGST",
			severity: domain.ValidationSeverityError,
			validate: sumCheck("totals.igst", "Math: Total IGST",
				func(li *LineItem) float64 { return li.IGSTAmount },
				func(t *Totals) float64 { return t.IGST }),
		},
		{
			ruleKey: "math.totals.grand_total", ruleName: "Math: Grand Total",
			severity: domain.ValidationSeverityError,
			validate: func(d *GSTInvoice) []ValidationResult {
				expected := d.Totals.TaxableAmount + d.Totals.CGST + d.Totals.SGST + d.Totals.IGST + d.Totals.RoundOff
				passed := approxEqual(d.Totals.Total, expected)
				return []ValidationResult{mathResult(passed, "totals.total", fmtf(expected), fmtf(d.Totals.Total), "Math: Grand Total")}
			},
		},
		{
			ruleKey: "math.totals.round_off", ruleName: "Math: Round Off",
			severity: domain.ValidationSeverityWarning,
			validate: func(d *GSTInvoice) []ValidationResult {
				passed := math.Abs(d.Totals.RoundOff) <= 0.50
				msg := "Math: Round Off: within acceptable range"
				if !passed {
					msg = fmt.Sprintf("Math: Round Off: abs(%.2f) > 0.50", d.Totals.RoundOff)
				}
				return []ValidationResult{{
					Passed: passed, FieldPath: "totals.roundOff",
					ExpectedValue: "abs(roundOff) <= 0.50", ActualValue: fmtf(d.Totals.RoundOff), Message: msg,
				}}
			},
		},
		{
			ruleKey: "math.invoice.recalculated", ruleName: "Math: Recalculated Grand Total",
			severity: domain.ValidationSeverityError,
			validate: recalculatedTotal,
		},
	}
}

// recalculatedTotal runs the lines through the calculator with the regime
// implied by the parties' states and compares the grand total before
// round-off. Invoices the calculator cannot price are left to the required
// and logical rules.
func recalculatedTotal(d *GSTInvoice) []ValidationResult {
	const ruleName = "Math: Recalculated Grand Total"
	items := make([]gst.LineItem, 0, len(d.LineItems))
	for i := range d.LineItems {
		items = append(items, d.LineItems[i].CalculatorInput())
	}
	res, err := gst.Calculate(d.Seller.StateKey(), d.Buyer.StateKey(), items)
	if err != nil {
		return []ValidationResult{{
			Passed: true, FieldPath: "totals.total",
			Message: fmt.Sprintf("%s: cannot recalculate (%v), skipping", ruleName, err),
		}}
	}
	expected := res.Totals.GrandTotal.InexactFloat64()
	actual := d.Totals.Total - d.Totals.RoundOff
	return []ValidationResult{mathResult(approxEqual(actual, expected), "totals.total", fmtf(expected), fmtf(actual), ruleName)}
}
