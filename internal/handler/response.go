package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"invonest/internal/domain"
	"invonest/internal/gst"
	"invonest/internal/hsn"
	"invonest/internal/middleware"
)

// APIResponse is the standard envelope for all API responses.
type APIResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   *APIError   `json:"error,omitempty"`
}

// APIError holds error details in the response.
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// RespondOK sends a 200 success response.
func RespondOK(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, APIResponse{Success: true, Data: data})
}

// RespondError sends an error response with the given status code.
func RespondError(c *gin.Context, status int, code, msg string) {
	c.JSON(status, APIResponse{
		Success: false,
		Error:   &APIError{Code: code, Message: msg},
	})
}

// MapDomainError translates domain errors to HTTP status codes and error codes.
// Calculation errors carry their own message since it tells the form what is
// still missing.
func MapDomainError(err error) (status int, code, msg string) {
	switch {
	case errors.Is(err, gst.ErrMissingState):
		return http.StatusUnprocessableEntity, "MISSING_STATE", err.Error()
	case errors.Is(err, gst.ErrInsufficientInput):
		return http.StatusUnprocessableEntity, "INSUFFICIENT_INPUT", gst.ErrInsufficientInput.Error()
	case errors.Is(err, hsn.ErrRateNotFound):
		return http.StatusUnprocessableEntity, "RATE_NOT_FOUND", err.Error()
	case errors.Is(err, hsn.ErrRateAmbiguous):
		return http.StatusUnprocessableEntity, "RATE_AMBIGUOUS", err.Error()
	case errors.Is(err, domain.ErrRateResolutionDisabled):
		return http.StatusUnprocessableEntity, "RATE_REQUIRED", err.Error()
	case errors.Is(err, domain.ErrTooManyLineItems):
		return http.StatusRequestEntityTooLarge, "TOO_MANY_LINE_ITEMS", err.Error()
	case errors.Is(err, domain.ErrUnsupportedExportFormat):
		return http.StatusBadRequest, "UNSUPPORTED_FORMAT", "unsupported export format; allowed: csv, xlsx"
	case errors.Is(err, domain.ErrInvalidRequest):
		return http.StatusBadRequest, "INVALID_REQUEST", "invalid request"
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound, "NOT_FOUND", "resource not found"
	default:
		return http.StatusInternalServerError, "INTERNAL_ERROR", "an internal error occurred"
	}
}

// HandleError maps a domain error and sends the appropriate error response.
func HandleError(c *gin.Context, err error) {
	status, code, msg := MapDomainError(err)
	if status >= 500 {
		zap.L().Error("internal error",
			zap.String("request_id", middleware.GetRequestID(c)),
			zap.Error(err),
		)
	}
	RespondError(c, status, code, msg)
}
