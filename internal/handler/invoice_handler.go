package handler

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"invonest/internal/domain"
	"invonest/internal/service"
	"invonest/internal/validator/invoice"
)

// InvoiceHandler handles invoice calculation and verification endpoints.
type InvoiceHandler struct {
	invoiceService service.InvoiceService
}

// NewInvoiceHandler creates a new InvoiceHandler.
func NewInvoiceHandler(invoiceService service.InvoiceService) *InvoiceHandler {
	return &InvoiceHandler{invoiceService: invoiceService}
}

// Calculate handles POST /api/v1/invoices/calculate
// @Summary Calculate GST for an invoice
// @Description Computes per-line and invoice-level CGST/SGST or IGST from line items and the seller and buyer states. Line items that cannot be calculated (zero quantity, negative rate, discount outside 0-100) are skipped and listed in excludedItems. taxRatePercent may be omitted when hsnCode maps to a single rate. Seller and buyer states must be registry names, abbreviations or GST state codes; anything else is MISSING_STATE. Each line is rounded to paise for display while invoice totals are rounded from unrounded sums, so the sum of items[] may differ from the totals by up to one paisa per line; the totals are authoritative.
// @Tags invoices
// @Accept json
// @Produce json
// @Param request body domain.CalculateRequest true "Line items and parties"
// @Success 200 {object} Response{data=domain.CalculationView} "Calculated invoice"
// @Failure 400 {object} ErrorResponseBody "Malformed request body"
// @Failure 413 {object} ErrorResponseBody "Too many line items"
// @Failure 422 {object} ErrorResponseBody "Insufficient input, missing state or unresolved tax rate"
// @Router /invoices/calculate [post]
func (h *InvoiceHandler) Calculate(c *gin.Context) {
	var req domain.CalculateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", "invalid request body")
		return
	}

	res, err := h.invoiceService.Calculate(c.Request.Context(), &req)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, service.NewCalculationView(res))
}

// Export handles POST /api/v1/invoices/calculate/export
// @Summary Export a calculated invoice
// @Description Calculates the invoice and returns it as a CSV (UTF-8 with BOM) or XLSX download with one row per line item followed by the invoice totals.
// @Tags invoices
// @Accept json
// @Produce text/csv
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param format query string false "Export format" Enums(csv, xlsx) default(csv)
// @Param request body domain.CalculateRequest true "Line items and parties"
// @Success 200 {file} file "Exported invoice"
// @Failure 400 {object} ErrorResponseBody "Malformed request body or unsupported format"
// @Failure 422 {object} ErrorResponseBody "Insufficient input, missing state or unresolved tax rate"
// @Router /invoices/calculate/export [post]
func (h *InvoiceHandler) Export(c *gin.Context) {
	format := domain.ExportFormat(strings.ToLower(c.DefaultQuery("format", string(domain.ExportFormatCSV))))

	var req domain.CalculateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", "invalid request body")
		return
	}

	file, err := h.invoiceService.Export(c.Request.Context(), &req, format)
	if err != nil {
		HandleError(c, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, file.Filename))
	c.Data(http.StatusOK, file.ContentType, file.Data)
}

// Verify handles POST /api/v1/invoices/verify
// @Summary Verify a GST invoice
// @Description Runs every built-in rule (required fields, formats, arithmetic, tax regime, HSN master) against a complete invoice and reports per-rule and per-field results.
// @Tags invoices
// @Accept json
// @Produce json
// @Param request body GSTInvoice true "Invoice to verify"
// @Success 200 {object} Response{data=ValidationReport} "Verification report"
// @Failure 400 {object} ErrorResponseBody "Malformed request body"
// @Failure 413 {object} ErrorResponseBody "Too many line items"
// @Router /invoices/verify [post]
func (h *InvoiceHandler) Verify(c *gin.Context) {
	var inv invoice.GSTInvoice
	if err := c.ShouldBindJSON(&inv); err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", "invalid request body")
		return
	}

	report, err := h.invoiceService.Verify(c.Request.Context(), &inv)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, report)
}

// Rules handles GET /api/v1/invoices/rules
// @Summary List verification rules
// @Description Lists the rules applied by the verify endpoint, in execution order.
// @Tags invoices
// @Produce json
// @Success 200 {object} Response{data=[]RuleInfo} "Registered rules"
// @Router /invoices/rules [get]
func (h *InvoiceHandler) Rules(c *gin.Context) {
	RespondOK(c, h.invoiceService.Rules())
}
