package gst

import (
	"errors"
	"fmt"

	"github.com/samber/lo"
	"github.com/shopspring/decimal"
)

var (
	// ErrInsufficientInput means no line item passed the validity filter.
	// Callers treat it as "not ready to calculate", not as a failure.
	ErrInsufficientInput = errors.New("at least one line item with positive quantity and non-negative rate is required")
	// ErrMissingState means the seller or buyer state is blank or not a
	// recognised state or union territory, so the tax regime cannot be decided.
	ErrMissingState = errors.New("seller state and buyer state are required")
)

// CurrencyPlaces is the number of decimal places kept on money values.
const CurrencyPlaces = 2

var (
	hundred = decimal.NewFromInt(100)
	two     = decimal.NewFromInt(2)
)

// line carries the unrounded amounts of one included item.
type line struct {
	gross, discount, taxable decimal.Decimal
	cgst, sgst, igst         decimal.Decimal
}

// CheckStates returns ErrMissingState unless both parties name a state or
// union territory in the registry. A misspelled state is never guessed as
// inter-state.
func CheckStates(sellerState, buyerState string) error {
	for _, s := range []string{sellerState, buyerState} {
		if NormalizeState(s) == "" {
			return ErrMissingState
		}
	}
	for _, s := range []string{sellerState, buyerState} {
		if _, ok := LookupState(s); !ok {
			return fmt.Errorf("%w: unrecognised state %q", ErrMissingState, s)
		}
	}
	return nil
}

// Calculate computes per-line GST and invoice totals.
//
// The regime is decided once: CGST+SGST (half the nominal rate each) when the
// normalised seller and buyer states match, IGST at the full rate otherwise.
// Items with a non-positive quantity, a negative rate or tax rate, or a
// discount outside [0,100] are skipped and listed in ExcludedItems.
//
// Arithmetic is exact. Each money field is rounded half-up to two places when
// it is emitted; invoice component totals are rounded from unrounded sums and
// TotalTax/GrandTotal are built from the rounded components, so
// GrandTotal == TaxableAmount + TotalCGST + TotalSGST + TotalIGST exactly.
func Calculate(sellerState, buyerState string, items []LineItem) (*CalculationResult, error) {
	if err := CheckStates(sellerState, buyerState); err != nil {
		return nil, err
	}
	seller := NormalizeState(sellerState)
	buyer := NormalizeState(buyerState)

	taxType := TaxTypeInterState
	if seller == buyer {
		taxType = TaxTypeIntraState
	}

	res := &CalculationResult{
		TaxType:     taxType,
		SellerState: seller,
		BuyerState:  buyer,
	}

	lines := make([]line, 0, len(items))
	for i := range items {
		item := &items[i]
		if !Valid(item) {
			res.ExcludedItems = append(res.ExcludedItems, i)
			continue
		}
		l := computeLine(item, taxType)
		lines = append(lines, l)
		res.Items = append(res.Items, l.result(i, item, taxType))
	}
	if len(lines) == 0 {
		return nil, ErrInsufficientInput
	}

	res.Totals = aggregate(lines)
	return res, nil
}

// Valid reports whether an item takes part in the calculation.
func Valid(item *LineItem) bool {
	return item.Quantity.IsPositive() &&
		!item.Rate.IsNegative() &&
		!item.TaxRatePercent.IsNegative() &&
		!item.DiscountPercent.IsNegative() &&
		item.DiscountPercent.LessThanOrEqual(hundred)
}

// SplitRates returns the CGST, SGST and IGST rates for a nominal rate.
func SplitRates(taxRatePercent decimal.Decimal, taxType TaxType) (cgst, sgst, igst decimal.Decimal) {
	if taxType == TaxTypeIntraState {
		half := taxRatePercent.Div(two)
		return half, half, decimal.Zero
	}
	return decimal.Zero, decimal.Zero, taxRatePercent
}

func computeLine(item *LineItem, taxType TaxType) line {
	gross := item.Quantity.Mul(item.Rate)
	discount := gross.Mul(item.DiscountPercent).Div(hundred)
	taxable := gross.Sub(discount)

	cgstRate, sgstRate, igstRate := SplitRates(item.TaxRatePercent, taxType)
	return line{
		gross:    gross,
		discount: discount,
		taxable:  taxable,
		cgst:     percentOf(taxable, cgstRate),
		sgst:     percentOf(taxable, sgstRate),
		igst:     percentOf(taxable, igstRate),
	}
}

func (l line) result(index int, item *LineItem, taxType TaxType) LineItemResult {
	cgstRate, sgstRate, igstRate := SplitRates(item.TaxRatePercent, taxType)
	r := LineItemResult{
		Index:           index,
		Description:     item.Description,
		HSNCode:         item.HSNCode,
		Unit:            item.Unit,
		Quantity:        item.Quantity,
		Rate:            item.Rate,
		DiscountPercent: item.DiscountPercent,
		TaxRatePercent:  item.TaxRatePercent,
		GrossAmount:     Round(l.gross),
		DiscountAmount:  Round(l.discount),
		TaxableAmount:   Round(l.taxable),
		CGSTRate:        cgstRate,
		SGSTRate:        sgstRate,
		IGSTRate:        igstRate,
		CGSTAmount:      Round(l.cgst),
		SGSTAmount:      Round(l.sgst),
		IGSTAmount:      Round(l.igst),
	}
	r.TotalAmount = r.TaxableAmount.Add(r.TaxAmount())
	return r
}

func aggregate(lines []line) InvoiceTotals {
	sum := func(field func(line) decimal.Decimal) decimal.Decimal {
		return lo.Reduce(lines, func(acc decimal.Decimal, l line, _ int) decimal.Decimal {
			return acc.Add(field(l))
		}, decimal.Zero)
	}

	t := InvoiceTotals{
		Subtotal:      Round(sum(func(l line) decimal.Decimal { return l.gross })),
		TotalDiscount: Round(sum(func(l line) decimal.Decimal { return l.discount })),
		TaxableAmount: Round(sum(func(l line) decimal.Decimal { return l.taxable })),
		TotalCGST:     Round(sum(func(l line) decimal.Decimal { return l.cgst })),
		TotalSGST:     Round(sum(func(l line) decimal.Decimal { return l.sgst })),
		TotalIGST:     Round(sum(func(l line) decimal.Decimal { return l.igst })),
	}
	t.TotalTax = t.TotalCGST.Add(t.TotalSGST).Add(t.TotalIGST)
	t.GrandTotal = t.TaxableAmount.Add(t.TotalTax)
	t.RoundedGrandTotal = t.GrandTotal.Round(0)
	t.RoundOff = t.RoundedGrandTotal.Sub(t.GrandTotal)
	t.AmountInWords = AmountInWords(t.RoundedGrandTotal)
	return t
}

func percentOf(amount, pct decimal.Decimal) decimal.Decimal {
	if pct.IsZero() {
		return decimal.Zero
	}
	return amount.Mul(pct).Div(hundred)
}

// Round rounds a money value half-up to CurrencyPlaces.
func Round(d decimal.Decimal) decimal.Decimal {
	return d.Round(CurrencyPlaces)
}
