package invoice_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCrossField_GSTINState(t *testing.T) {
	v := findValidator("xf.seller.gstin_state")
	require.NotNil(t, v)
	ctx := context.Background()

	t.Run("match_by_code", func(t *testing.T) {
		results := v.Validate(ctx, validInvoice())
		require.Len(t, results, 1)
		assert.True(t, results[0].Passed)
	})

	t.Run("match_by_name_only", func(t *testing.T) {
		inv := validInvoice()
		inv.Seller.StateCode = ""
		results := v.Validate(ctx, inv)
		require.Len(t, results, 1)
		assert.True(t, results[0].Passed)
	})

	t.Run("mismatch", func(t *testing.T) {
		inv := validInvoice()
		inv.Seller.GSTIN = "27ABCDE1234F1Z5"
		results := v.Validate(ctx, inv)
		require.Len(t, results, 1)
		assert.False(t, results[0].Passed)
		assert.Equal(t, "27", results[0].ActualValue)
		assert.Equal(t, "GSTIN[0:2] == 29", results[0].ExpectedValue)
	})

	t.Run("gstin_without_state_prefix", func(t *testing.T) {
		inv := validInvoice()
		inv.Seller.GSTIN = "XXABCDE1234F1Z5"
		results := v.Validate(ctx, inv)
		require.Len(t, results, 1)
		assert.False(t, results[0].Passed)
	})

	t.Run("skip_when_missing", func(t *testing.T) {
		inv := validInvoice()
		inv.Seller.GSTIN = ""
		results := v.Validate(ctx, inv)
		require.Len(t, results, 1)
		assert.True(t, results[0].Passed)
	})

	t.Run("skip_unknown_state", func(t *testing.T) {
		inv := validInvoice()
		inv.Seller.StateCode = ""
		inv.Seller.State = "Atlantis"
		results := v.Validate(ctx, inv)
		require.Len(t, results, 1)
		assert.True(t, results[0].Passed)
	})
}

func TestCrossField_Intrastate(t *testing.T) {
	v := findValidator("xf.tax_type.intrastate")
	require.NotNil(t, v)
	ctx := context.Background()

	t.Run("pass", func(t *testing.T) {
		results := v.Validate(ctx, validInvoice())
		require.Len(t, results, 1)
		assert.True(t, results[0].Passed)
	})

	t.Run("names_and_codes_compare_equal", func(t *testing.T) {
		inv := validInvoice()
		inv.Seller.StateCode = ""
		inv.Seller.State = "  KARNATAKA "
		inv.Buyer.StateCode = "29"
		results := v.Validate(ctx, inv)
		require.Len(t, results, 1)
		assert.True(t, results[0].Passed)
	})

	t.Run("fail_igst_used", func(t *testing.T) {
		inv := validInvoice()
		inv.LineItems[0].IGSTRate = 18
		inv.LineItems[0].IGSTAmount = 180
		results := v.Validate(ctx, inv)
		require.Len(t, results, 1)
		assert.False(t, results[0].Passed)
		assert.Equal(t, "lineItems[0]", results[0].FieldPath)
	})

	t.Run("skip_interstate", func(t *testing.T) {
		assert.Nil(t, v.Validate(ctx, validInterstateInvoice()))
	})

	t.Run("skip_missing_states", func(t *testing.T) {
		inv := validInvoice()
		inv.Buyer.StateCode = ""
		inv.Buyer.State = ""
		results := v.Validate(ctx, inv)
		require.Len(t, results, 1)
		assert.True(t, results[0].Passed)
	})
}

func TestCrossField_Interstate(t *testing.T) {
	v := findValidator("xf.tax_type.interstate")
	require.NotNil(t, v)
	ctx := context.Background()

	t.Run("pass", func(t *testing.T) {
		results := v.Validate(ctx, validInterstateInvoice())
		require.Len(t, results, 1)
		assert.True(t, results[0].Passed)
	})

	t.Run("fail_cgst_used", func(t *testing.T) {
		inv := validInterstateInvoice()
		inv.LineItems[0].CGSTRate = 9
		inv.LineItems[0].CGSTAmount = 90
		results := v.Validate(ctx, inv)
		require.Len(t, results, 1)
		assert.False(t, results[0].Passed)
	})

	t.Run("skip_intrastate", func(t *testing.T) {
		assert.Nil(t, v.Validate(ctx, validInvoice()))
	})
}

func TestCrossField_PlaceOfSupply(t *testing.T) {
	v := findValidator("xf.invoice.place_of_supply")
	require.NotNil(t, v)
	ctx := context.Background()

	inv := validInvoice()
	inv.Invoice.PlaceOfSupply = "KA"
	assert.True(t, v.Validate(ctx, inv)[0].Passed)

	inv.Invoice.PlaceOfSupply = "Goa"
	results := v.Validate(ctx, inv)
	require.Len(t, results, 1)
	assert.False(t, results[0].Passed)
	assert.Equal(t, "karnataka", results[0].ExpectedValue)
}

func TestCrossField_DifferentGSTIN(t *testing.T) {
	v := findValidator("xf.parties.different_gstin")
	require.NotNil(t, v)

	inv := validInvoice()
	inv.Buyer.GSTIN = inv.Seller.GSTIN
	results := v.Validate(context.Background(), inv)
	require.Len(t, results, 1)
	assert.False(t, results[0].Passed)
}
