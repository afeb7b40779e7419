package invoice

import (
	"github.com/shopspring/decimal"

	"invonest/internal/gst"
)

// GSTInvoice is a fully filled-in invoice whose stated amounts are to be
// checked against the calculator.
type GSTInvoice struct {
	Invoice   InvoiceHeader `json:"invoice"`
	Seller    Party         `json:"seller"`
	Buyer     Party         `json:"buyer"`
	LineItems []LineItem    `json:"lineItems"`
	Totals    Totals        `json:"totals"`
}

// InvoiceHeader holds top-level invoice metadata.
type InvoiceHeader struct {
	InvoiceNumber string `json:"invoiceNumber" example:"INV-2025-001"`
	InvoiceDate   string `json:"invoiceDate" example:"2025-01-15"`
	PlaceOfSupply string `json:"placeOfSupply" example:"Karnataka"`
}

// Party represents a seller or buyer.
type Party struct {
	Name      string `json:"name" example:"Acme Traders"`
	GSTIN     string `json:"gstin" example:"27ABCDE1234F1Z5"`
	State     string `json:"state" example:"Maharashtra"`
	StateCode string `json:"stateCode" example:"27"`
}

// StateKey is the normalised state used to decide the tax regime. The GST
// state code wins over the free-text name when both are present.
func (p *Party) StateKey() string {
	if p.StateCode != "" {
		return gst.NormalizeState(p.StateCode)
	}
	return gst.NormalizeState(p.State)
}

// LineItem is a line as printed on the invoice, stated amounts included.
type LineItem struct {
	Description     string  `json:"description"`
	HSNSACCode      string  `json:"hsnSacCode"`
	Quantity        float64 `json:"quantity"`
	Unit            string  `json:"unit"`
	UnitPrice       float64 `json:"unitPrice"`
	DiscountPercent float64 `json:"discountPercent"`
	TaxableAmount   float64 `json:"taxableAmount"`
	CGSTRate        float64 `json:"cgstRate"`
	CGSTAmount      float64 `json:"cgstAmount"`
	SGSTRate        float64 `json:"sgstRate"`
	SGSTAmount      float64 `json:"sgstAmount"`
	IGSTRate        float64 `json:"igstRate"`
	IGSTAmount      float64 `json:"igstAmount"`
	Total           float64 `json:"total"`
}

// EffectiveRate is the nominal GST rate the line was charged at.
func (li *LineItem) EffectiveRate() float64 {
	if li.IGSTRate != 0 {
		return li.IGSTRate
	}
	return li.CGSTRate + li.SGSTRate
}

// CalculatorInput converts the line into calculator input.
func (li *LineItem) CalculatorInput() gst.LineItem {
	return gst.LineItem{
		Description:     li.Description,
		HSNCode:         li.HSNSACCode,
		Unit:            li.Unit,
		Quantity:        decimal.NewFromFloat(li.Quantity),
		Rate:            decimal.NewFromFloat(li.UnitPrice),
		DiscountPercent: decimal.NewFromFloat(li.DiscountPercent),
		TaxRatePercent:  decimal.NewFromFloat(li.EffectiveRate()),
	}
}

// Totals holds the invoice totals as stated.
type Totals struct {
	Subtotal      float64 `json:"subtotal"`
	TotalDiscount float64 `json:"totalDiscount"`
	TaxableAmount float64 `json:"taxableAmount"`
	CGST          float64 `json:"cgst"`
	SGST          float64 `json:"sgst"`
	IGST          float64 `json:"igst"`
	RoundOff      float64 `json:"roundOff"`
	Total         float64 `json:"total"`
}

// ValidationResult is the outcome of one rule against one field.
type ValidationResult struct {
	Passed        bool
	FieldPath     string
	ExpectedValue string
	ActualValue   string
	Message       string
}
