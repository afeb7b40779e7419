package invoice_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"invonest/internal/validator/invoice"
)

func TestLogical_AtLeastOneLineItem(t *testing.T) {
	v := findValidator("logic.line_items.at_least_one")
	require.NotNil(t, v)

	inv := validInvoice()
	inv.LineItems = nil
	results := v.Validate(context.Background(), inv)
	require.Len(t, results, 1)
	assert.False(t, results[0].Passed)
	assert.Equal(t, "0", results[0].ActualValue)
}

func TestLogical_Calculable(t *testing.T) {
	v := findValidator("logic.line_item.calculable")
	require.NotNil(t, v)
	ctx := context.Background()

	tests := []struct {
		name   string
		mutate func(*invoice.LineItem)
		passed bool
	}{
		{"valid", func(*invoice.LineItem) {}, true},
		{"zero_quantity", func(li *invoice.LineItem) { li.Quantity = 0 }, false},
		{"negative_price", func(li *invoice.LineItem) { li.UnitPrice = -1 }, false},
		{"discount_over_100", func(li *invoice.LineItem) { li.DiscountPercent = 120 }, false},
		{"full_discount", func(li *invoice.LineItem) { li.DiscountPercent = 100 }, true},
		{"zero_price", func(li *invoice.LineItem) { li.UnitPrice = 0 }, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			inv := validInvoice()
			tt.mutate(&inv.LineItems[0])
			results := v.Validate(ctx, inv)
			require.Len(t, results, 1)
			assert.Equal(t, tt.passed, results[0].Passed)
		})
	}
}

func TestLogical_NonNegative(t *testing.T) {
	v := findValidator("logic.line_item.non_negative")
	require.NotNil(t, v)

	inv := validInvoice()
	inv.LineItems[0].CGSTAmount = -5
	fails := failed(v.Validate(context.Background(), inv))
	require.Len(t, fails, 1)
	assert.Equal(t, "lineItems[0].cgstAmount", fails[0].FieldPath)

	v = findValidator("logic.totals.non_negative")
	inv = validInvoice()
	inv.Totals.Total = -1
	fails = failed(v.Validate(context.Background(), inv))
	require.Len(t, fails, 1)
	assert.Equal(t, "totals.total", fails[0].FieldPath)
}

func TestLogical_ValidTaxRate(t *testing.T) {
	v := findValidator("logic.line_item.valid_tax_rate")
	require.NotNil(t, v)
	ctx := context.Background()

	for _, rate := range []float64{0, 5, 12, 18, 28, 40, 0.25, 3} {
		inv := validInterstateInvoice()
		inv.LineItems[0].IGSTRate = rate
		assert.True(t, v.Validate(ctx, inv)[0].Passed, rate)
	}

	inv := validInvoice()
	inv.LineItems[0].CGSTRate = 7
	inv.LineItems[0].SGSTRate = 7
	results := v.Validate(ctx, inv)
	require.Len(t, results, 1)
	assert.False(t, results[0].Passed)
	assert.Equal(t, "14.00", results[0].ActualValue)
}

func TestLogical_CGSTEqualsSGST(t *testing.T) {
	v := findValidator("logic.line_item.cgst_eq_sgst")
	require.NotNil(t, v)

	inv := validInvoice()
	inv.LineItems[0].SGSTRate = 6
	results := v.Validate(context.Background(), inv)
	require.Len(t, results, 1)
	assert.False(t, results[0].Passed)
}

func TestLogical_ExclusiveTax(t *testing.T) {
	v := findValidator("logic.line_item.exclusive_tax")
	require.NotNil(t, v)

	inv := validInvoice()
	inv.LineItems[0].IGSTAmount = 10
	results := v.Validate(context.Background(), inv)
	require.Len(t, results, 1)
	assert.False(t, results[0].Passed)
}

func TestLogical_DateNotFuture(t *testing.T) {
	v := findValidator("logic.invoice.date_not_future")
	require.NotNil(t, v)
	ctx := context.Background()

	assert.True(t, v.Validate(ctx, validInvoice())[0].Passed)

	inv := validInvoice()
	inv.Invoice.InvoiceDate = "2999-01-01"
	assert.False(t, v.Validate(ctx, inv)[0].Passed)

	inv.Invoice.InvoiceDate = "not a date"
	assert.True(t, v.Validate(ctx, inv)[0].Passed)
}
