package invoice_test

import (
	"invonest/internal/validator/invoice"
)

// validInvoice returns an intra-state invoice (Karnataka to Karnataka) that
// passes every built-in rule.
// 1 line item: qty=10, price=100, taxable=1000, CGST=9%/90, SGST=9%/90, total=1180.
func validInvoice() *invoice.GSTInvoice {
	return &invoice.GSTInvoice{
		Invoice: invoice.InvoiceHeader{
			InvoiceNumber: "INV-001",
			InvoiceDate:   "2025-01-15",
			PlaceOfSupply: "Karnataka",
		},
		Seller: invoice.Party{
			Name:      "Seller Corp",
			GSTIN:     "29ABCDE1234F1Z5",
			State:     "Karnataka",
			StateCode: "29",
		},
		Buyer: invoice.Party{
			Name:      "Buyer Corp",
			GSTIN:     "29FGHIJ5678K1Z2",
			State:     "Karnataka",
			StateCode: "29",
		},
		LineItems: []invoice.LineItem{
			{
				Description:   "Widget",
				HSNSACCode:    "8471",
				Quantity:      10,
				Unit:          "Nos",
				UnitPrice:     100,
				TaxableAmount: 1000,
				CGSTRate:      9,
				CGSTAmount:    90,
				SGSTRate:      9,
				SGSTAmount:    90,
				Total:         1180,
			},
		},
		Totals: invoice.Totals{
			Subtotal:      1000,
			TaxableAmount: 1000,
			CGST:          90,
			SGST:          90,
			Total:         1180,
		},
	}
}

// validInterstateInvoice returns a valid Karnataka to Maharashtra invoice, IGST only.
func validInterstateInvoice() *invoice.GSTInvoice {
	inv := validInvoice()
	inv.Invoice.PlaceOfSupply = "Maharashtra"
	inv.Buyer.State = "Maharashtra"
	inv.Buyer.StateCode = "27"
	inv.Buyer.GSTIN = "27FGHIJ5678K1Z2"
	inv.LineItems[0].CGSTRate = 0
	inv.LineItems[0].CGSTAmount = 0
	inv.LineItems[0].SGSTRate = 0
	inv.LineItems[0].SGSTAmount = 0
	inv.LineItems[0].IGSTRate = 18
	inv.LineItems[0].IGSTAmount = 180
	inv.Totals.CGST = 0
	inv.Totals.SGST = 0
	inv.Totals.IGST = 180
	return inv
}

func findValidator(key string) *invoice.BuiltinValidator {
	for _, v := range invoice.AllBuiltinValidators(nil) {
		if v.RuleKey() == key {
			return v
		}
	}
	return nil
}

func failed(results []invoice.ValidationResult) []invoice.ValidationResult {
	var out []invoice.ValidationResult
	for _, r := range results {
		if !r.Passed {
			out = append(out, r)
		}
	}
	return out
}
