package gst

import "github.com/shopspring/decimal"

// TaxType is the invoice-level GST regime.
type TaxType string

const (
	TaxTypeIntraState TaxType = "intra_state"
	TaxTypeInterState TaxType = "inter_state"
)

// LineItem is a single invoice line as entered by the caller.
// TaxRatePercent is the full nominal GST rate resolved from the HSN/SAC code.
type LineItem struct {
	Description     string
	HSNCode         string
	Quantity        decimal.Decimal
	Unit            string
	Rate            decimal.Decimal
	DiscountPercent decimal.Decimal
	TaxRatePercent  decimal.Decimal
}

// LineItemResult holds the computed amounts for one included line item.
// Index points back at the item's position in the request.
type LineItemResult struct {
	Index           int
	Description     string
	HSNCode         string
	Unit            string
	Quantity        decimal.Decimal
	Rate            decimal.Decimal
	DiscountPercent decimal.Decimal
	TaxRatePercent  decimal.Decimal

	GrossAmount    decimal.Decimal
	DiscountAmount decimal.Decimal
	TaxableAmount  decimal.Decimal
	CGSTRate       decimal.Decimal
	SGSTRate       decimal.Decimal
	IGSTRate       decimal.Decimal
	CGSTAmount     decimal.Decimal
	SGSTAmount     decimal.Decimal
	IGSTAmount     decimal.Decimal
	TotalAmount    decimal.Decimal
}

// TaxAmount returns the combined GST on the line.
func (r *LineItemResult) TaxAmount() decimal.Decimal {
	return r.CGSTAmount.Add(r.SGSTAmount).Add(r.IGSTAmount)
}

// InvoiceTotals aggregates every included line.
type InvoiceTotals struct {
	Subtotal      decimal.Decimal
	TotalDiscount decimal.Decimal
	TaxableAmount decimal.Decimal
	TotalCGST     decimal.Decimal
	TotalSGST     decimal.Decimal
	TotalIGST     decimal.Decimal
	TotalTax      decimal.Decimal
	GrandTotal    decimal.Decimal

	// RoundedGrandTotal is GrandTotal rounded to the nearest rupee;
	// RoundOff is the signed adjustment, never more than 0.50 either way.
	RoundedGrandTotal decimal.Decimal
	RoundOff          decimal.Decimal
	AmountInWords     string
}

// CalculationResult is the full output of Calculate.
type CalculationResult struct {
	TaxType       TaxType
	SellerState   string
	BuyerState    string
	Items         []LineItemResult
	ExcludedItems []int
	Totals        InvoiceTotals
}

// IsIntraState reports whether CGST+SGST applies.
func (r *CalculationResult) IsIntraState() bool {
	return r.TaxType == TaxTypeIntraState
}
