package handler_test

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"invonest/internal/domain"
	"invonest/internal/gst"
	"invonest/internal/handler"
	"invonest/internal/hsn"
	"invonest/internal/service"
	"invonest/internal/validator"
	"invonest/mocks"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newInvoiceHandler() (*handler.InvoiceHandler, *mocks.MockInvoiceService) {
	mockSvc := new(mocks.MockInvoiceService)
	return handler.NewInvoiceHandler(mockSvc), mockSvc
}

func jsonRequest(t *testing.T, method, target string, body interface{}) *http.Request {
	t.Helper()
	var raw []byte
	switch b := body.(type) {
	case string:
		raw = []byte(b)
	default:
		var err error
		raw, err = json.Marshal(b)
		require.NoError(t, err)
	}
	req, err := http.NewRequest(method, target, bytes.NewReader(raw))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	return req
}

func decode(t *testing.T, w *httptest.ResponseRecorder) handler.APIResponse {
	t.Helper()
	var resp handler.APIResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

func sampleRequest() domain.CalculateRequest {
	rate := 18.0
	return domain.CalculateRequest{
		SellerState: "Maharashtra",
		BuyerState:  "Karnataka",
		Items: []domain.LineItemInput{
			{Description: "Website development", HSNCode: "998314", Quantity: 2, Rate: 1000, TaxRatePercent: &rate},
		},
	}
}

func TestInvoiceHandler_Calculate_Success(t *testing.T) {
	h, mockSvc := newInvoiceHandler()

	res, err := gst.Calculate("Maharashtra", "Karnataka", []gst.LineItem{
		{Quantity: decimal.NewFromInt(2), Rate: decimal.NewFromInt(1000), TaxRatePercent: decimal.NewFromInt(18)},
	})
	require.NoError(t, err)
	mockSvc.On("Calculate", mock.Anything, mock.AnythingOfType("*domain.CalculateRequest")).Return(res, nil)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = jsonRequest(t, http.MethodPost, "/api/v1/invoices/calculate", sampleRequest())

	h.Calculate(c)

	assert.Equal(t, http.StatusOK, w.Code)
	resp := decode(t, w)
	assert.True(t, resp.Success)

	data := resp.Data.(map[string]interface{})
	assert.Equal(t, "inter_state", data["taxType"])
	assert.Equal(t, 360.0, data["totalIGST"])
	assert.Equal(t, 2360.0, data["grandTotal"])
	assert.Equal(t, []interface{}{}, data["excludedItems"])
	mockSvc.AssertExpectations(t)
}

func TestInvoiceHandler_Calculate_MalformedJSON(t *testing.T) {
	h, mockSvc := newInvoiceHandler()

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = jsonRequest(t, http.MethodPost, "/api/v1/invoices/calculate", `{"items": [`)

	h.Calculate(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "INVALID_REQUEST", decode(t, w).Error.Code)
	mockSvc.AssertNotCalled(t, "Calculate", mock.Anything, mock.Anything)
}

func TestInvoiceHandler_Calculate_DomainErrors(t *testing.T) {
	tests := []struct {
		err    error
		status int
		code   string
	}{
		{gst.ErrInsufficientInput, http.StatusUnprocessableEntity, "INSUFFICIENT_INPUT"},
		{gst.ErrMissingState, http.StatusUnprocessableEntity, "MISSING_STATE"},
		{fmt.Errorf("line item 1: %w", hsn.ErrRateNotFound), http.StatusUnprocessableEntity, "RATE_NOT_FOUND"},
		{fmt.Errorf("line item 2: %w", hsn.ErrRateAmbiguous), http.StatusUnprocessableEntity, "RATE_AMBIGUOUS"},
		{domain.ErrRateResolutionDisabled, http.StatusUnprocessableEntity, "RATE_REQUIRED"},
		{domain.ErrTooManyLineItems, http.StatusRequestEntityTooLarge, "TOO_MANY_LINE_ITEMS"},
		{errors.New("boom"), http.StatusInternalServerError, "INTERNAL_ERROR"},
	}

	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			h, mockSvc := newInvoiceHandler()
			mockSvc.On("Calculate", mock.Anything, mock.Anything).Return(nil, tt.err)

			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)
			c.Request = jsonRequest(t, http.MethodPost, "/api/v1/invoices/calculate", sampleRequest())

			h.Calculate(c)

			assert.Equal(t, tt.status, w.Code)
			resp := decode(t, w)
			assert.False(t, resp.Success)
			assert.Equal(t, tt.code, resp.Error.Code)
		})
	}
}

func TestInvoiceHandler_Export_CSV(t *testing.T) {
	h, mockSvc := newInvoiceHandler()

	file := &service.ExportFile{
		Filename:    "invoice_2025-01-15.csv",
		ContentType: "text/csv; charset=utf-8",
		Data:        []byte("\xEF\xBB\xBF#,Description\n"),
	}
	mockSvc.On("Export", mock.Anything, mock.Anything, domain.ExportFormatCSV).Return(file, nil)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = jsonRequest(t, http.MethodPost, "/api/v1/invoices/calculate/export?format=CSV", sampleRequest())

	h.Export(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "text/csv; charset=utf-8", w.Header().Get("Content-Type"))
	assert.Contains(t, w.Header().Get("Content-Disposition"), "invoice_2025-01-15.csv")
	assert.Equal(t, file.Data, w.Body.Bytes())
	mockSvc.AssertExpectations(t)
}

func TestInvoiceHandler_Export_DefaultsToCSV(t *testing.T) {
	h, mockSvc := newInvoiceHandler()
	mockSvc.On("Export", mock.Anything, mock.Anything, domain.ExportFormatCSV).
		Return(&service.ExportFile{Filename: "invoice.csv", ContentType: "text/csv; charset=utf-8"}, nil)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = jsonRequest(t, http.MethodPost, "/api/v1/invoices/calculate/export", sampleRequest())

	h.Export(c)

	assert.Equal(t, http.StatusOK, w.Code)
	mockSvc.AssertExpectations(t)
}

func TestInvoiceHandler_Export_UnsupportedFormat(t *testing.T) {
	h, mockSvc := newInvoiceHandler()
	mockSvc.On("Export", mock.Anything, mock.Anything, domain.ExportFormat("pdf")).
		Return(nil, domain.ErrUnsupportedExportFormat)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = jsonRequest(t, http.MethodPost, "/api/v1/invoices/calculate/export?format=pdf", sampleRequest())

	h.Export(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "UNSUPPORTED_FORMAT", decode(t, w).Error.Code)
}

func TestInvoiceHandler_Verify(t *testing.T) {
	h, mockSvc := newInvoiceHandler()

	report := &validator.Report{
		InvoiceNumber:    "INV-001",
		ValidationStatus: domain.ValidationStatusWarning,
		Summary:          validator.ValidationSummary{Total: 2, Passed: 1, Warnings: 1},
		Results:          []validator.ValidationResultItem{},
	}
	mockSvc.On("Verify", mock.Anything, mock.AnythingOfType("*invoice.GSTInvoice")).Return(report, nil)

	body := `{"invoice":{"invoiceNumber":"INV-001"},"lineItems":[{"description":"Laptop","quantity":1}]}`
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = jsonRequest(t, http.MethodPost, "/api/v1/invoices/verify", body)

	h.Verify(c)

	assert.Equal(t, http.StatusOK, w.Code)
	data := decode(t, w).Data.(map[string]interface{})
	assert.Equal(t, "warning", data["validationStatus"])
	assert.Equal(t, "INV-001", data["invoiceNumber"])
	mockSvc.AssertExpectations(t)
}

func TestInvoiceHandler_Verify_MalformedJSON(t *testing.T) {
	h, _ := newInvoiceHandler()

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = jsonRequest(t, http.MethodPost, "/api/v1/invoices/verify", `not json`)

	h.Verify(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestInvoiceHandler_Rules(t *testing.T) {
	h, mockSvc := newInvoiceHandler()
	mockSvc.On("Rules").Return([]validator.RuleInfo{
		{Key: "req.invoice.number", Name: "Invoice number present", RuleType: domain.ValidationRuleRequired, Severity: domain.ValidationSeverityWarning},
	})

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodGet, "/api/v1/invoices/rules", http.NoBody)

	h.Rules(c)

	assert.Equal(t, http.StatusOK, w.Code)
	rules := decode(t, w).Data.([]interface{})
	require.Len(t, rules, 1)
	assert.Equal(t, "req.invoice.number", rules[0].(map[string]interface{})["key"])
}
