package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"invonest/internal/domain"
	"invonest/internal/gst"
	"invonest/internal/hsn"
	"invonest/internal/service"
	"invonest/internal/validator"
	"invonest/internal/validator/invoice"
)

// MockInvoiceService is a mock implementation of service.InvoiceService.
type MockInvoiceService struct {
	mock.Mock
}

func (m *MockInvoiceService) Calculate(ctx context.Context, req *domain.CalculateRequest) (*gst.CalculationResult, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*gst.CalculationResult), args.Error(1)
}

func (m *MockInvoiceService) Export(ctx context.Context, req *domain.CalculateRequest, format domain.ExportFormat) (*service.ExportFile, error) {
	args := m.Called(ctx, req, format)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.ExportFile), args.Error(1)
}

func (m *MockInvoiceService) Verify(ctx context.Context, inv *invoice.GSTInvoice) (*validator.Report, error) {
	args := m.Called(ctx, inv)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*validator.Report), args.Error(1)
}

func (m *MockInvoiceService) Rules() []validator.RuleInfo {
	args := m.Called()
	if args.Get(0) == nil {
		return nil
	}
	return args.Get(0).([]validator.RuleInfo)
}

func (m *MockInvoiceService) HSNRates(ctx context.Context, code string) ([]hsn.RateEntry, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]hsn.RateEntry), args.Error(1)
}

func (m *MockInvoiceService) States() []gst.State {
	args := m.Called()
	if args.Get(0) == nil {
		return nil
	}
	return args.Get(0).([]gst.State)
}
