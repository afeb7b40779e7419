package handler

import (
	"github.com/gin-gonic/gin"

	"invonest/internal/service"
)

// ReferenceHandler serves the lookup data the invoice form needs.
type ReferenceHandler struct {
	invoiceService service.InvoiceService
}

// NewReferenceHandler creates a new ReferenceHandler.
func NewReferenceHandler(invoiceService service.InvoiceService) *ReferenceHandler {
	return &ReferenceHandler{invoiceService: invoiceService}
}

// HSNRates handles GET /api/v1/hsn/:code
// @Summary Look up GST rates for an HSN/SAC code
// @Description Returns the rate entries for the code, falling back to its 6 and 4 digit parents. Codes with conditional rates return one entry per condition.
// @Tags reference
// @Produce json
// @Param code path string true "HSN or SAC code"
// @Success 200 {object} Response{data=[]HSNRate} "Rate entries"
// @Failure 404 {object} ErrorResponseBody "Code not in the HSN master"
// @Failure 422 {object} ErrorResponseBody "HSN master not configured"
// @Router /hsn/{code} [get]
func (h *ReferenceHandler) HSNRates(c *gin.Context) {
	rates, err := h.invoiceService.HSNRates(c.Request.Context(), c.Param("code"))
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, rates)
}

// States handles GET /api/v1/states
// @Summary List Indian states and union territories
// @Tags reference
// @Produce json
// @Success 200 {object} Response{data=[]gst.State} "State registry"
// @Router /states [get]
func (h *ReferenceHandler) States(c *gin.Context) {
	RespondOK(c, h.invoiceService.States())
}
