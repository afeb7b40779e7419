package invoice

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"time"

	"invonest/internal/domain"
	"invonest/internal/gst"
)

var (
	gstinPattern = regexp.MustCompile(`^\d{2}[A-Z]{5}\d{4}[A-Z][1-9A-Z]Z[0-9A-Z]$`)
	hsnPattern   = regexp.MustCompile(`^\d{4,8}$`)
)

// formatValidator checks a field against a regex or format rule.
type formatValidator struct {
	ruleKey  string
	ruleName string
	severity domain.ValidationSeverity
	validate func(*GSTInvoice) []ValidationResult
}

func (v *formatValidator) RuleKey() string                     { return v.ruleKey }
func (v *formatValidator) RuleName() string                    { return v.ruleName }
func (v *formatValidator) RuleType() domain.ValidationRuleType { return domain.ValidationRuleRegex }
func (v *formatValidator) Severity() domain.ValidationSeverity { return v.severity }

func (v *formatValidator) Validate(_ context.Context, data *GSTInvoice) []ValidationResult {
	return v.validate(data)
}

func regexCheck(fieldPath, value, pattern, ruleName string, re *regexp.Regexp) ValidationResult {
	if value == "" {
		return ValidationResult{
			Passed: true, FieldPath: fieldPath,
			ExpectedValue: pattern, ActualValue: value,
			Message: fmt.Sprintf("%s: field is empty, skipping format check", ruleName),
		}
	}
	passed := re.MatchString(value)
	msg := fmt.Sprintf("%s: %s matches expected format", ruleName, fieldPath)
	if !passed {
		msg = fmt.Sprintf("%s: %s does not match expected format", ruleName, fieldPath)
	}
	return ValidationResult{
		Passed: passed, FieldPath: fieldPath,
		ExpectedValue: pattern, ActualValue: value, Message: msg,
	}
}

func dateCheck(fieldPath, value, ruleName string) ValidationResult {
	if value == "" {
		return ValidationResult{
			Passed: true, FieldPath: fieldPath,
			ExpectedValue: "parseable date", ActualValue: value,
			Message: fmt.Sprintf("%s: field is empty, skipping date check", ruleName),
		}
	}
	_, err := parseDate(value)
	passed := err == nil
	msg := fmt.Sprintf("%s: %s is a valid date", ruleName, fieldPath)
	if !passed {
		msg = fmt.Sprintf("%s: %s is not a parseable date", ruleName, fieldPath)
	}
	return ValidationResult{
		Passed: passed, FieldPath: fieldPath,
		ExpectedValue: "parseable date", ActualValue: value, Message: msg,
	}
}

// stateCheck reports whether a party's declared state is a known Indian
// state or union territory.
func stateCheck(fieldPath string, p *Party, ruleName string) ValidationResult {
	value := firstNonEmpty(p.StateCode, p.State)
	if value == "" {
		return ValidationResult{
			Passed: true, FieldPath: fieldPath,
			ExpectedValue: "known state, abbreviation or GST state code", ActualValue: value,
			Message: fmt.Sprintf("%s: field is empty, skipping state check", ruleName),
		}
	}
	st, passed := gst.LookupState(value)
	msg := fmt.Sprintf("%s: %s is %s (%s)", ruleName, fieldPath, st.Name, st.Code)
	if !passed {
		msg = fmt.Sprintf("%s: %s %q is not a recognised state or union territory", ruleName, fieldPath, value)
	}
	return ValidationResult{
		Passed: passed, FieldPath: fieldPath,
		ExpectedValue: "known state, abbreviation or GST state code", ActualValue: value, Message: msg,
	}
}

// parseDate tries common date formats.
func parseDate(s string) (time.Time, error) {
	formats := []string{
		"2006-01-02",
		"02-01-2006",
		"02/01/2006",
		"2006/01/02",
		"02 Jan 2006",
		"2 Jan 2006",
		"Jan 02, 2006",
		"January 02, 2006",
		"02-01-2006 15:04:05",
		"2006-01-02T15:04:05Z07:00",
	}
	for _, f := range formats {
		if t, err := time.Parse(f, strings.TrimSpace(s)); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unparseable date: %s", s)
}

// FormatValidators returns all format validators.
func FormatValidators() []*formatValidator {
	return []*formatValidator{
		{
			ruleKey: "fmt.seller.gstin", ruleName: "Format: Seller GSTIN",
			severity: domain.ValidationSeverityError,
			validate: func(d *GSTInvoice) []ValidationResult {
				return []ValidationResult{regexCheck("seller.gstin", d.Seller.GSTIN, "15-char GSTIN format", "Format: Seller GSTIN", gstinPattern)}
			},
		},
		{
			ruleKey: "fmt.buyer.gstin", ruleName: "Format: Buyer GSTIN",
			severity: domain.ValidationSeverityError,
			validate: func(d *GSTInvoice) []ValidationResult {
				return []ValidationResult{regexCheck("buyer.gstin", d.Buyer.GSTIN, "15-char GSTIN format", "Format: Buyer GSTIN", gstinPattern)}
			},
		},
		{
			ruleKey: "fmt.seller.state", ruleName: "Format: Seller State",
			severity: domain.ValidationSeverityWarning,
			validate: func(d *GSTInvoice) []ValidationResult {
				return []ValidationResult{stateCheck("seller.state", &d.Seller, "Format: Seller State")}
			},
		},
		{
			ruleKey: "fmt.buyer.state", ruleName: "Format: Buyer State",
			severity: domain.ValidationSeverityWarning,
			validate: func(d *GSTInvoice) []ValidationResult {
				return []ValidationResult{stateCheck("buyer.state", &d.Buyer, "Format: Buyer State")}
			},
		},
		{
			ruleKey: "fmt.invoice.date", ruleName: "Format: Invoice Date",
			severity: domain.ValidationSeverityWarning,
			validate: func(d *GSTInvoice) []ValidationResult {
				return []ValidationResult{dateCheck("invoice.invoiceDate", d.Invoice.InvoiceDate, "Format: Invoice Date")}
			},
		},
		{
			ruleKey: "fmt.line_item.hsn_sac", ruleName: "Format: HSN/SAC Code",
			severity: domain.ValidationSeverityWarning,
			validate: func(d *GSTInvoice) []ValidationResult {
				results := make([]ValidationResult, 0, len(d.LineItems))
				for i := range d.LineItems {
					results = append(results, regexCheck(itemPath(i, "hsnSacCode"), d.LineItems[i].HSNSACCode, "4-8 digit HSN/SAC code", "Format: HSN/SAC Code", hsnPattern))
				}
				return results
			},
		},
	}
}
