package invoice

import (
	"context"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"invonest/internal/domain"
	"invonest/internal/hsn"
)

// HSNValidators returns validators that use the HSN master for code existence
// and rate cross-validation. The lookup is captured by closure.
func HSNValidators(lookup *hsn.Lookup) []*BuiltinValidator {
	return []*BuiltinValidator{
		{
			key:      "logic.line_item.hsn_exists",
			name:     "Logical: HSN Code Exists in Master",
			ruleType: domain.ValidationRuleCustom,
			sev:      domain.ValidationSeverityWarning,
			fn:       hsnExistsValidator(lookup),
		},
		{
			key:      "xf.line_item.hsn_rate",
			name:     "Cross-field: HSN Code GST Rate Match",
			ruleType: domain.ValidationRuleCrossField,
			sev:      domain.ValidationSeverityWarning,
			fn:       hsnRateValidator(lookup),
		},
	}
}

func hsnExistsValidator(lookup *hsn.Lookup) func(context.Context, *GSTInvoice) []ValidationResult {
	return func(_ context.Context, inv *GSTInvoice) []ValidationResult {
		results := make([]ValidationResult, 0, len(inv.LineItems))
		for i := range inv.LineItems {
			item := &inv.LineItems[i]
			fp := itemPath(i, "hsnSacCode")

			if item.HSNSACCode == "" {
				results = append(results, ValidationResult{
					Passed: true, FieldPath: fp,
					Message: "Logical: HSN Code Exists in Master: HSN/SAC code is empty, skipping",
				})
				continue
			}

			exists := lookup.Exists(item.HSNSACCode)
			msg := fmt.Sprintf("Logical: HSN Code Exists in Master: %s found in HSN master list", fp)
			if !exists {
				msg = fmt.Sprintf("Logical: HSN Code Exists in Master: %s code %q not found in HSN master list", fp, item.HSNSACCode)
			}
			results = append(results, ValidationResult{
				Passed:        exists,
				FieldPath:     fp,
				ExpectedValue: "valid HSN/SAC code from master list",
				ActualValue:   item.HSNSACCode,
				Message:       msg,
			})
		}
		return results
	}
}

func hsnRateValidator(lookup *hsn.Lookup) func(context.Context, *GSTInvoice) []ValidationResult {
	return func(_ context.Context, inv *GSTInvoice) []ValidationResult {
		results := make([]ValidationResult, 0, len(inv.LineItems))
		for i := range inv.LineItems {
			item := &inv.LineItems[i]
			fp := itemPath(i, "")

			if item.HSNSACCode == "" {
				results = append(results, ValidationResult{
					Passed: true, FieldPath: fp,
					Message: "Cross-field: HSN Code GST Rate Match: HSN/SAC code is empty, skipping",
				})
				continue
			}

			if !lookup.Exists(item.HSNSACCode) {
				results = append(results, ValidationResult{
					Passed: true, FieldPath: fp,
					Message: fmt.Sprintf("Cross-field: HSN Code GST Rate Match: HSN code %q not in master, skipping rate check", item.HSNSACCode),
				})
				continue
			}

			effectiveRate := item.EffectiveRate()
			matched, validRates := lookup.RateMatches(item.HSNSACCode, decimal.NewFromFloat(effectiveRate))

			msg := fmt.Sprintf("Cross-field: HSN Code GST Rate Match: %s rate matches HSN %s", fp, item.HSNSACCode)
			if !matched {
				msg = fmt.Sprintf("Cross-field: HSN Code GST Rate Match: %s rate %s%% does not match expected rates for HSN %s", fp, fmtf(effectiveRate), item.HSNSACCode)
			}
			results = append(results, ValidationResult{
				Passed:        matched,
				FieldPath:     fp,
				ExpectedValue: formatExpectedRates(validRates),
				ActualValue:   fmtf(effectiveRate) + "%",
				Message:       msg,
			})
		}
		return results
	}
}

func formatExpectedRates(rates []hsn.RateEntry) string {
	if len(rates) == 0 {
		return "no rates found"
	}
	parts := make([]string, 0, len(rates))
	for idx := range rates {
		r := &rates[idx]
		s := r.Rate.StringFixed(2) + "%"
		if r.ConditionDesc != "" {
			s += " (" + r.ConditionDesc + ")"
		}
		parts = append(parts, s)
	}
	return strings.Join(parts, ", ")
}
