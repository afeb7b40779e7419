package service

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/samber/lo"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"invonest/internal/csvexport"
	"invonest/internal/domain"
	"invonest/internal/gst"
	"invonest/internal/hsn"
	"invonest/internal/port"
	"invonest/internal/validator"
	"invonest/internal/validator/invoice"
	"invonest/internal/xlsxexport"
)

// ExportFile is a rendered calculation ready to be downloaded.
type ExportFile struct {
	Filename    string
	ContentType string
	Data        []byte
}

// InvoiceService calculates, verifies and exports GST invoices.
type InvoiceService interface {
	Calculate(ctx context.Context, req *domain.CalculateRequest) (*gst.CalculationResult, error)
	Export(ctx context.Context, req *domain.CalculateRequest, format domain.ExportFormat) (*ExportFile, error)
	Verify(ctx context.Context, inv *invoice.GSTInvoice) (*validator.Report, error)
	Rules() []validator.RuleInfo
	HSNRates(ctx context.Context, code string) ([]hsn.RateEntry, error)
	States() []gst.State
}

type invoiceService struct {
	resolver     port.RateResolver
	lookup       *hsn.Lookup
	engine       *validator.Engine
	maxLineItems int
	logger       *zap.Logger
	now          func() time.Time
}

// NewInvoiceService creates a new InvoiceService implementation.
// resolver and lookup may be nil when no HSN master is configured; line
// items must then carry their own tax rate.
func NewInvoiceService(
	resolver port.RateResolver,
	lookup *hsn.Lookup,
	engine *validator.Engine,
	maxLineItems int,
	logger *zap.Logger,
) InvoiceService {
	return &invoiceService{
		resolver:     resolver,
		lookup:       lookup,
		engine:       engine,
		maxLineItems: maxLineItems,
		logger:       logger,
		now:          time.Now,
	}
}

func (s *invoiceService) Calculate(ctx context.Context, req *domain.CalculateRequest) (*gst.CalculationResult, error) {
	if req == nil {
		return nil, domain.ErrInvalidRequest
	}
	if s.maxLineItems > 0 && len(req.Items) > s.maxLineItems {
		return nil, fmt.Errorf("%w: %d items, limit is %d", domain.ErrTooManyLineItems, len(req.Items), s.maxLineItems)
	}
	// States first, so a blank state is reported even when rate lookup would fail.
	if err := gst.CheckStates(req.SellerState, req.BuyerState); err != nil {
		return nil, err
	}

	items, err := s.lineItems(ctx, req.Items)
	if err != nil {
		return nil, err
	}

	res, err := gst.Calculate(req.SellerState, req.BuyerState, items)
	if err != nil {
		return nil, err
	}

	s.logger.Debug("invoice calculated",
		zap.String("tax_type", string(res.TaxType)),
		zap.Int("items", len(res.Items)),
		zap.Ints("excluded", res.ExcludedItems),
		zap.String("grand_total", res.Totals.GrandTotal.StringFixed(gst.CurrencyPlaces)),
	)
	return res, nil
}

// lineItems converts request items to calculator input, filling in missing
// tax rates from the HSN master. Items the calculator will drop anyway are
// not resolved, so blank form rows never cause a lookup error.
func (s *invoiceService) lineItems(ctx context.Context, in []domain.LineItemInput) ([]gst.LineItem, error) {
	out := make([]gst.LineItem, 0, len(in))
	for i := range in {
		src := &in[i]
		item := gst.LineItem{
			Description:     src.Description,
			HSNCode:         src.HSNCode,
			Unit:            src.Unit,
			Quantity:        decimal.NewFromFloat(src.Quantity),
			Rate:            decimal.NewFromFloat(src.Rate),
			DiscountPercent: decimal.NewFromFloat(src.DiscountPercent),
		}
		if src.TaxRatePercent != nil {
			item.TaxRatePercent = decimal.NewFromFloat(*src.TaxRatePercent)
		} else if gst.Valid(&item) {
			rate, err := s.resolveRate(ctx, src.HSNCode)
			if err != nil {
				return nil, fmt.Errorf("line item %d: %w", i+1, err)
			}
			item.TaxRatePercent = rate
		}
		out = append(out, item)
	}
	return out, nil
}

func (s *invoiceService) resolveRate(ctx context.Context, code string) (decimal.Decimal, error) {
	if s.resolver == nil {
		return decimal.Zero, domain.ErrRateResolutionDisabled
	}
	if code == "" {
		return decimal.Zero, fmt.Errorf("%w: no HSN/SAC code given", hsn.ErrRateNotFound)
	}
	return s.resolver.Resolve(ctx, code)
}

func (s *invoiceService) Export(ctx context.Context, req *domain.CalculateRequest, format domain.ExportFormat) (*ExportFile, error) {
	contentType, ok := domain.ExportContentTypes[format]
	if !ok {
		return nil, fmt.Errorf("%w: %q", domain.ErrUnsupportedExportFormat, format)
	}

	res, err := s.Calculate(ctx, req)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	switch format {
	case domain.ExportFormatCSV:
		buf.Write(csvexport.BOM)
		if err := csvexport.NewWriter(&buf).WriteCalculation(res); err != nil {
			return nil, fmt.Errorf("writing csv: %w", err)
		}
	case domain.ExportFormatXLSX:
		if err := xlsxexport.Write(&buf, res); err != nil {
			return nil, fmt.Errorf("writing xlsx: %w", err)
		}
	}

	return &ExportFile{
		Filename:    csvexport.BuildFilename("invoice", string(format), s.now()),
		ContentType: contentType,
		Data:        buf.Bytes(),
	}, nil
}

func (s *invoiceService) Verify(ctx context.Context, inv *invoice.GSTInvoice) (*validator.Report, error) {
	if inv == nil {
		return nil, domain.ErrInvalidRequest
	}
	if s.maxLineItems > 0 && len(inv.LineItems) > s.maxLineItems {
		return nil, fmt.Errorf("%w: %d items, limit is %d", domain.ErrTooManyLineItems, len(inv.LineItems), s.maxLineItems)
	}
	return s.engine.Verify(ctx, inv)
}

func (s *invoiceService) Rules() []validator.RuleInfo {
	return s.engine.Rules()
}

func (s *invoiceService) HSNRates(_ context.Context, code string) ([]hsn.RateEntry, error) {
	if s.lookup == nil {
		return nil, domain.ErrRateResolutionDisabled
	}
	rates := s.lookup.Rates(code)
	if len(rates) == 0 {
		return nil, domain.ErrNotFound
	}
	return rates, nil
}

func (s *invoiceService) States() []gst.State {
	return gst.States()
}

// NewCalculationView flattens a calculation into the API response shape.
func NewCalculationView(res *gst.CalculationResult) *domain.CalculationView {
	t := &res.Totals
	return &domain.CalculationView{
		TaxType:           string(res.TaxType),
		SellerState:       res.SellerState,
		BuyerState:        res.BuyerState,
		Subtotal:          t.Subtotal.InexactFloat64(),
		TotalDiscount:     t.TotalDiscount.InexactFloat64(),
		TaxableAmount:     t.TaxableAmount.InexactFloat64(),
		TotalCGST:         t.TotalCGST.InexactFloat64(),
		TotalSGST:         t.TotalSGST.InexactFloat64(),
		TotalIGST:         t.TotalIGST.InexactFloat64(),
		TotalTax:          t.TotalTax.InexactFloat64(),
		GrandTotal:        t.GrandTotal.InexactFloat64(),
		RoundOff:          t.RoundOff.InexactFloat64(),
		RoundedGrandTotal: t.RoundedGrandTotal.InexactFloat64(),
		AmountInWords:     t.AmountInWords,
		Items:             lo.Map(res.Items, func(r gst.LineItemResult, _ int) domain.LineItemView { return newLineItemView(&r) }),
		ExcludedItems:     append([]int{}, res.ExcludedItems...),
	}
}

func newLineItemView(r *gst.LineItemResult) domain.LineItemView {
	return domain.LineItemView{
		Index:           r.Index,
		Description:     r.Description,
		HSNCode:         r.HSNCode,
		Unit:            r.Unit,
		Quantity:        r.Quantity.InexactFloat64(),
		Rate:            r.Rate.InexactFloat64(),
		DiscountPercent: r.DiscountPercent.InexactFloat64(),
		TaxRatePercent:  r.TaxRatePercent.InexactFloat64(),
		GrossAmount:     r.GrossAmount.InexactFloat64(),
		DiscountAmount:  r.DiscountAmount.InexactFloat64(),
		TaxableAmount:   r.TaxableAmount.InexactFloat64(),
		CGSTRate:        r.CGSTRate.InexactFloat64(),
		SGSTRate:        r.SGSTRate.InexactFloat64(),
		IGSTRate:        r.IGSTRate.InexactFloat64(),
		CGSTAmount:      r.CGSTAmount.InexactFloat64(),
		SGSTAmount:      r.SGSTAmount.InexactFloat64(),
		IGSTAmount:      r.IGSTAmount.InexactFloat64(),
		TotalAmount:     r.TotalAmount.InexactFloat64(),
	}
}
