package domain

import "errors"

var (
	ErrNotFound                = errors.New("resource not found")
	ErrInvalidRequest          = errors.New("invalid request")
	ErrTooManyLineItems        = errors.New("too many line items")
	ErrUnsupportedExportFormat = errors.New("unsupported export format")
	ErrRateResolutionDisabled  = errors.New("tax rate is required when HSN rate lookup is disabled")
)
