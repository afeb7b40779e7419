package invoice

import (
	"context"
	"fmt"

	"invonest/internal/domain"
	"invonest/internal/gst"
)

// crossFieldValidator checks relationships between different fields.
type crossFieldValidator struct {
	ruleKey  string
	ruleName string
	severity domain.ValidationSeverity
	validate func(*GSTInvoice) []ValidationResult
}

func (v *crossFieldValidator) RuleKey() string                     { return v.ruleKey }
func (v *crossFieldValidator) RuleName() string                    { return v.ruleName }
func (v *crossFieldValidator) RuleType() domain.ValidationRuleType { return domain.ValidationRuleCrossField }
func (v *crossFieldValidator) Severity() domain.ValidationSeverity { return v.severity }

func (v *crossFieldValidator) Validate(_ context.Context, data *GSTInvoice) []ValidationResult {
	return v.validate(data)
}

// regime reports the tax type implied by the parties' states; ok is false
// when either state is missing.
func regime(d *GSTInvoice) (taxType gst.TaxType, ok bool) {
	seller, buyer := d.Seller.StateKey(), d.Buyer.StateKey()
	if seller == "" || buyer == "" {
		return "", false
	}
	if seller == buyer {
		return gst.TaxTypeIntraState, true
	}
	return gst.TaxTypeInterState, true
}

func ratesActual(item *LineItem) string {
	return fmt.Sprintf("CGST=%.2f, SGST=%.2f, IGST=%.2f", item.CGSTRate, item.SGSTRate, item.IGSTRate)
}

// CrossFieldValidators returns all cross-field validators.
func CrossFieldValidators() []*crossFieldValidator {
	return []*crossFieldValidator{
		{
			ruleKey: "xf.seller.gstin_state", ruleName: "Cross-field: Seller GSTIN-State Match",
			severity: domain.ValidationSeverityError,
			validate: func(d *GSTInvoice) []ValidationResult {
				return gstinStateCheck("seller", &d.Seller)
			},
		},
		{
			ruleKey: "xf.buyer.gstin_state", ruleName: "Cross-field: Buyer GSTIN-State Match",
			severity: domain.ValidationSeverityError,
			validate: func(d *GSTInvoice) []ValidationResult {
				return gstinStateCheck("buyer", &d.Buyer)
			},
		},
		{
			ruleKey: "xf.tax_type.intrastate", ruleName: "Cross-field: Intrastate Tax Type",
			severity: domain.ValidationSeverityError,
			validate: func(d *GSTInvoice) []ValidationResult {
				taxType, ok := regime(d)
				if !ok {
					return []ValidationResult{{
						Passed: true, FieldPath: "taxType",
						Message: "Cross-field: Intrastate Tax Type: states missing, skipping",
					}}
				}
				if taxType != gst.TaxTypeIntraState {
					return nil
				}
				results := make([]ValidationResult, 0, len(d.LineItems))
				for i := range d.LineItems {
					item := &d.LineItems[i]
					// Zero-rated lines pass: they carry no tax on either side.
					passed := item.IGSTRate == 0 && item.IGSTAmount == 0
					fp := itemPath(i, "")
					msg := fmt.Sprintf("Cross-field: Intrastate Tax Type: %s uses CGST+SGST correctly", fp)
					if !passed {
						msg = fmt.Sprintf("Cross-field: Intrastate Tax Type: %s should use CGST+SGST (not IGST) for same-state supply", fp)
					}
					results = append(results, ValidationResult{
						Passed: passed, FieldPath: fp,
						ExpectedValue: "CGST+SGST used, IGST=0",
						ActualValue:   ratesActual(item),
						Message:       msg,
					})
				}
				return results
			},
		},
		{
			ruleKey: "xf.tax_type.interstate", ruleName: "Cross-field: Interstate Tax Type",
			severity: domain.ValidationSeverityError,
			validate: func(d *GSTInvoice) []ValidationResult {
				taxType, ok := regime(d)
				if !ok {
					return []ValidationResult{{
						Passed: true, FieldPath: "taxType",
						Message: "Cross-field: Interstate Tax Type: states missing, skipping",
					}}
				}
				if taxType != gst.TaxTypeInterState {
					return nil
				}
				results := make([]ValidationResult, 0, len(d.LineItems))
				for i := range d.LineItems {
					item := &d.LineItems[i]
					passed := item.CGSTRate == 0 && item.CGSTAmount == 0 && item.SGSTRate == 0 && item.SGSTAmount == 0
					fp := itemPath(i, "")
					msg := fmt.Sprintf("Cross-field: Interstate Tax Type: %s uses IGST correctly", fp)
					if !passed {
						msg = fmt.Sprintf("Cross-field: Interstate Tax Type: %s should use IGST (not CGST+SGST) for inter-state supply", fp)
					}
					results = append(results, ValidationResult{
						Passed: passed, FieldPath: fp,
						ExpectedValue: "IGST used, CGST+SGST=0",
						ActualValue:   ratesActual(item),
						Message:       msg,
					})
				}
				return results
			},
		},
		{
			ruleKey: "xf.invoice.place_of_supply", ruleName: "Cross-field: Place of Supply Matches Buyer",
			severity: domain.ValidationSeverityWarning,
			validate: func(d *GSTInvoice) []ValidationResult {
				pos := d.Invoice.PlaceOfSupply
				buyer := d.Buyer.StateKey()
				if pos == "" || buyer == "" {
					return []ValidationResult{{
						Passed: true, FieldPath: "invoice.placeOfSupply",
						Message: "Cross-field: Place of Supply Matches Buyer: fields missing, skipping",
					}}
				}
				passed := gst.NormalizeState(pos) == buyer
				msg := "Cross-field: Place of Supply Matches Buyer: place of supply is the buyer's state"
				if !passed {
					msg = fmt.Sprintf("Cross-field: Place of Supply Matches Buyer: %q differs from buyer state", pos)
				}
				return []ValidationResult{{
					Passed: passed, FieldPath: "invoice.placeOfSupply",
					ExpectedValue: buyer, ActualValue: gst.NormalizeState(pos), Message: msg,
				}}
			},
		},
		{
			ruleKey: "xf.parties.different_gstin", ruleName: "Cross-field: Different Party GSTINs",
			severity: domain.ValidationSeverityWarning,
			validate: func(d *GSTInvoice) []ValidationResult {
				if d.Seller.GSTIN == "" || d.Buyer.GSTIN == "" {
					return []ValidationResult{{
						Passed: true, FieldPath: "seller.gstin",
						Message: "Cross-field: Different Party GSTINs: GSTINs missing, skipping",
					}}
				}
				passed := d.Seller.GSTIN != d.Buyer.GSTIN
				msg := "Cross-field: Different Party GSTINs: seller and buyer have different GSTINs"
				if !passed {
					msg = "Cross-field: Different Party GSTINs: seller and buyer have the same GSTIN"
				}
				return []ValidationResult{{
					Passed: passed, FieldPath: "seller.gstin",
					ExpectedValue: "seller.gstin != buyer.gstin",
					ActualValue:   fmt.Sprintf("seller=%s, buyer=%s", d.Seller.GSTIN, d.Buyer.GSTIN),
					Message:       msg,
				}}
			},
		},
	}
}

// gstinStateCheck compares the state encoded in a GSTIN with the party's
// declared state, resolving names and codes through the state registry.
func gstinStateCheck(party string, p *Party) []ValidationResult {
	fieldPath := party + ".gstin"
	declared := firstNonEmpty(p.StateCode, p.State)
	if p.GSTIN == "" || declared == "" {
		return []ValidationResult{{
			Passed: true, FieldPath: fieldPath,
			Message: fmt.Sprintf("Cross-field: %s GSTIN-State Match: fields missing, skipping", party),
		}}
	}
	want, known := gst.LookupState(declared)
	if !known {
		return []ValidationResult{{
			Passed: true, FieldPath: fieldPath,
			Message: fmt.Sprintf("Cross-field: %s GSTIN-State Match: state %q not recognised, skipping", party, declared),
		}}
	}
	got, ok := gst.StateFromGSTIN(p.GSTIN)
	if !ok {
		return []ValidationResult{{
			Passed: false, FieldPath: fieldPath,
			ExpectedValue: fmt.Sprintf("GSTIN[0:2] == %s", want.Code),
			ActualValue:   p.GSTIN,
			Message:       fmt.Sprintf("Cross-field: %s GSTIN-State Match: GSTIN has no valid state prefix", party),
		}}
	}
	passed := got.Code == want.Code
	msg := fmt.Sprintf("Cross-field: %s GSTIN-State Match: GSTIN state code matches", party)
	if !passed {
		msg = fmt.Sprintf("Cross-field: %s GSTIN-State Match: GSTIN prefix %s (%s) does not match %s (%s)", party, got.Code, got.Name, want.Code, want.Name)
	}
	return []ValidationResult{{
		Passed: passed, FieldPath: fieldPath,
		ExpectedValue: fmt.Sprintf("GSTIN[0:2] == %s", want.Code),
		ActualValue:   got.Code, Message: msg,
	}}
}
