package invoice

import (
	"context"
	"fmt"

	"invonest/internal/domain"
)

// requiredFieldValidator checks that a required field is not empty.
type requiredFieldValidator struct {
	ruleKey     string
	ruleName    string
	fieldPath   string
	severity    domain.ValidationSeverity
	extract     func(*GSTInvoice) string
	perItem     bool // true for line-item level checks
	extractItem func(*LineItem) string
}

func (v *requiredFieldValidator) RuleKey() string  { return v.ruleKey }
func (v *requiredFieldValidator) RuleName() string { return v.ruleName }
func (v *requiredFieldValidator) RuleType() domain.ValidationRuleType {
	return domain.ValidationRuleRequired
}
func (v *requiredFieldValidator) Severity() domain.ValidationSeverity { return v.severity }

func (v *requiredFieldValidator) Validate(_ context.Context, data *GSTInvoice) []ValidationResult {
	if v.perItem {
		results := make([]ValidationResult, 0, len(data.LineItems))
		for i := range data.LineItems {
			val := v.extractItem(&data.LineItems[i])
			fieldPath := itemPath(i, v.fieldPath)
			results = append(results, ValidationResult{
				Passed:        val != "",
				FieldPath:     fieldPath,
				ExpectedValue: "non-empty value",
				ActualValue:   val,
				Message:       fieldMessage(val != "", v.ruleName, fieldPath),
			})
		}
		return results
	}

	val := v.extract(data)
	return []ValidationResult{{
		Passed:        val != "",
		FieldPath:     v.fieldPath,
		ExpectedValue: "non-empty value",
		ActualValue:   val,
		Message:       fieldMessage(val != "", v.ruleName, v.fieldPath),
	}}
}

func fieldMessage(passed bool, ruleName, fieldPath string) string {
	if passed {
		return fmt.Sprintf("%s: %s is present", ruleName, fieldPath)
	}
	return fmt.Sprintf("%s: %s is missing or empty", ruleName, fieldPath)
}

// itemPath builds "lineItems[i].field".
func itemPath(i int, field string) string {
	if field == "" {
		return fmt.Sprintf("lineItems[%d]", i)
	}
	return fmt.Sprintf("lineItems[%d].%s", i, field)
}

// RequiredFieldValidators returns all required-field validators.
func RequiredFieldValidators() []*requiredFieldValidator {
	return []*requiredFieldValidator{
		{
			ruleKey: "req.invoice.number", ruleName: "Required: Invoice Number",
			fieldPath: "invoice.invoiceNumber", severity: domain.ValidationSeverityWarning,
			extract: func(d *GSTInvoice) string { return d.Invoice.InvoiceNumber },
		},
		{
			ruleKey: "req.seller.state", ruleName: "Required: Seller State",
			fieldPath: "seller.state", severity: domain.ValidationSeverityError,
			extract: func(d *GSTInvoice) string { return firstNonEmpty(d.Seller.StateCode, d.Seller.State) },
		},
		{
			ruleKey: "req.buyer.state", ruleName: "Required: Buyer State",
			fieldPath: "buyer.state", severity: domain.ValidationSeverityError,
			extract: func(d *GSTInvoice) string { return firstNonEmpty(d.Buyer.StateCode, d.Buyer.State) },
		},
		{
			ruleKey: "req.line_item.description", ruleName: "Required: Line Item Description",
			fieldPath: "description", severity: domain.ValidationSeverityWarning,
			perItem: true, extractItem: func(li *LineItem) string { return li.Description },
		},
	}
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if v != "" {
			return v
		}
	}
	return ""
}
