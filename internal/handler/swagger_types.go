package handler

// Swagger type definitions for API documentation.
// These types are used by swag to generate OpenAPI documentation.

// --- Generic Response Wrappers ---

// Response wraps a successful response with data.
type Response struct {
	Success bool        `json:"success" example:"true"`
	Data    interface{} `json:"data,omitempty"`
}

// ErrorResponseBody wraps an error response.
type ErrorResponseBody struct {
	Success bool      `json:"success" example:"false"`
	Error   *APIError `json:"error"`
}

// --- Reference Data ---

// HSNRate is one GST rate entry for an HSN/SAC code.
type HSNRate struct {
	Rate          string `json:"rate" example:"18"`
	Description   string `json:"description" example:"Automatic data processing machines"`
	ConditionDesc string `json:"conditionDesc,omitempty" example:"sale value exceeding Rs 1000 per piece"`
}

// RuleInfo describes a verification rule.
type RuleInfo struct {
	Key      string `json:"key" example:"math.line_item.taxable_amount"`
	Name     string `json:"name" example:"Line item taxable amount"`
	RuleType string `json:"ruleType" example:"sum_check"`
	Severity string `json:"severity" example:"error"`
}

// --- Invoice Schema (for documentation) ---

// GSTInvoice is the invoice submitted for verification.
type GSTInvoice struct {
	Invoice   InvoiceHeader `json:"invoice"`
	Seller    Party         `json:"seller"`
	Buyer     Party         `json:"buyer"`
	LineItems []LineItem    `json:"lineItems"`
	Totals    Totals        `json:"totals"`
}

// InvoiceHeader represents invoice header fields.
type InvoiceHeader struct {
	InvoiceNumber string `json:"invoiceNumber" example:"INV-2025-001"`
	InvoiceDate   string `json:"invoiceDate" example:"2025-01-15"`
	PlaceOfSupply string `json:"placeOfSupply" example:"Karnataka"`
}

// Party represents seller or buyer information.
type Party struct {
	Name      string `json:"name" example:"Acme Supplies Pvt Ltd"`
	GSTIN     string `json:"gstin" example:"29ABCDE1234F1Z5"`
	State     string `json:"state" example:"Karnataka"`
	StateCode string `json:"stateCode" example:"29"`
}

// LineItem represents a single line item in the invoice.
type LineItem struct {
	Description     string  `json:"description" example:"Laptop"`
	HSNSACCode      string  `json:"hsnSacCode" example:"8471"`
	Quantity        float64 `json:"quantity" example:"10"`
	Unit            string  `json:"unit" example:"Nos"`
	UnitPrice       float64 `json:"unitPrice" example:"100"`
	DiscountPercent float64 `json:"discountPercent" example:"0"`
	TaxableAmount   float64 `json:"taxableAmount" example:"1000"`
	CGSTRate        float64 `json:"cgstRate" example:"9"`
	CGSTAmount      float64 `json:"cgstAmount" example:"90"`
	SGSTRate        float64 `json:"sgstRate" example:"9"`
	SGSTAmount      float64 `json:"sgstAmount" example:"90"`
	IGSTRate        float64 `json:"igstRate" example:"0"`
	IGSTAmount      float64 `json:"igstAmount" example:"0"`
	Total           float64 `json:"total" example:"1180"`
}

// Totals represents invoice totals.
type Totals struct {
	Subtotal      float64 `json:"subtotal" example:"1000"`
	TotalDiscount float64 `json:"totalDiscount" example:"0"`
	TaxableAmount float64 `json:"taxableAmount" example:"1000"`
	CGST          float64 `json:"cgst" example:"90"`
	SGST          float64 `json:"sgst" example:"90"`
	IGST          float64 `json:"igst" example:"0"`
	RoundOff      float64 `json:"roundOff" example:"0"`
	Total         float64 `json:"total" example:"1180"`
}

// --- Verification Report ---

// ValidationSummary represents validation summary statistics.
type ValidationSummary struct {
	Total    int `json:"total" example:"42"`
	Passed   int `json:"passed" example:"40"`
	Errors   int `json:"errors" example:"1"`
	Warnings int `json:"warnings" example:"1"`
}

// ValidationResultEntry represents a single validation rule result.
type ValidationResultEntry struct {
	RuleKey       string `json:"ruleKey" example:"math.line_item.taxable_amount"`
	RuleName      string `json:"ruleName" example:"Line item taxable amount"`
	RuleType      string `json:"ruleType" example:"sum_check"`
	Severity      string `json:"severity" example:"error"`
	Passed        bool   `json:"passed" example:"false"`
	FieldPath     string `json:"fieldPath" example:"lineItems[0].taxableAmount"`
	ExpectedValue string `json:"expectedValue" example:"1000.00"`
	ActualValue   string `json:"actualValue" example:"1100.00"`
	Message       string `json:"message" example:"lineItems[0]: taxable amount calculation mismatch (expected 1000.00, got 1100.00)"`
}

// FieldStatus represents the validation status of a single field.
type FieldStatus struct {
	Status   string   `json:"status" example:"invalid"`
	Messages []string `json:"messages"`
}

// ValidationReport represents the full verification result for an invoice.
type ValidationReport struct {
	InvoiceNumber    string                  `json:"invoiceNumber" example:"INV-2025-001"`
	ValidationStatus string                  `json:"validationStatus" example:"invalid"`
	Summary          ValidationSummary       `json:"summary"`
	Results          []ValidationResultEntry `json:"results"`
	FieldStatuses    map[string]FieldStatus  `json:"fieldStatuses"`
}
