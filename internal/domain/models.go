package domain

// LineItemInput is a line item as submitted by the invoice form.
// TaxRatePercent may be omitted when HSNCode resolves to a single rate in
// the HSN/SAC master.
type LineItemInput struct {
	Description     string   `json:"description" example:"Website development"`
	HSNCode         string   `json:"hsnCode" example:"998314"`
	Quantity        float64  `json:"quantity" example:"2"`
	Unit            string   `json:"unit" example:"Nos"`
	Rate            float64  `json:"rate" example:"1000"`
	DiscountPercent float64  `json:"discountPercent" example:"0"`
	TaxRatePercent  *float64 `json:"taxRatePercent,omitempty" example:"18"`
}

// CalculateRequest is the body of POST /invoices/calculate.
type CalculateRequest struct {
	Items       []LineItemInput `json:"items"`
	SellerState string          `json:"sellerState" example:"Maharashtra"`
	BuyerState  string          `json:"buyerState" example:"Karnataka"`
}

// LineItemView is one calculated line in API responses.
type LineItemView struct {
	Index           int     `json:"index"`
	Description     string  `json:"description"`
	HSNCode         string  `json:"hsnCode"`
	Unit            string  `json:"unit"`
	Quantity        float64 `json:"quantity"`
	Rate            float64 `json:"rate"`
	DiscountPercent float64 `json:"discountPercent"`
	TaxRatePercent  float64 `json:"taxRatePercent"`
	GrossAmount     float64 `json:"grossAmount"`
	DiscountAmount  float64 `json:"discountAmount"`
	TaxableAmount   float64 `json:"taxableAmount"`
	CGSTRate        float64 `json:"cgstRate"`
	SGSTRate        float64 `json:"sgstRate"`
	IGSTRate        float64 `json:"igstRate"`
	CGSTAmount      float64 `json:"cgstAmount"`
	SGSTAmount      float64 `json:"sgstAmount"`
	IGSTAmount      float64 `json:"igstAmount"`
	TotalAmount     float64 `json:"totalAmount"`
}

// CalculationView is the data payload of a successful calculation.
type CalculationView struct {
	TaxType           string         `json:"taxType" example:"inter_state"`
	SellerState       string         `json:"sellerState" example:"maharashtra"`
	BuyerState        string         `json:"buyerState" example:"karnataka"`
	Subtotal          float64        `json:"subtotal" example:"2000"`
	TotalDiscount     float64        `json:"totalDiscount" example:"0"`
	TaxableAmount     float64        `json:"taxableAmount" example:"2000"`
	TotalCGST         float64        `json:"totalCGST" example:"0"`
	TotalSGST         float64        `json:"totalSGST" example:"0"`
	TotalIGST         float64        `json:"totalIGST" example:"360"`
	TotalTax          float64        `json:"totalTax" example:"360"`
	GrandTotal        float64        `json:"grandTotal" example:"2360"`
	RoundOff          float64        `json:"roundOff" example:"0"`
	RoundedGrandTotal float64        `json:"roundedGrandTotal" example:"2360"`
	AmountInWords     string         `json:"amountInWords" example:"Rupees Two Thousand Three Hundred Sixty Only"`
	Items             []LineItemView `json:"items"`
	ExcludedItems     []int          `json:"excludedItems"`
}
