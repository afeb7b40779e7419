package csvexport

import (
	"bytes"
	"encoding/csv"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"invonest/internal/gst"
)

func calculate(t *testing.T, seller, buyer string) *gst.CalculationResult {
	t.Helper()
	res, err := gst.Calculate(seller, buyer, []gst.LineItem{
		{
			Description:     "Consulting, phase 1",
			HSNCode:         "998311",
			Quantity:        decimal.NewFromInt(2),
			Unit:            "Hrs",
			Rate:            decimal.NewFromInt(1000),
			DiscountPercent: decimal.NewFromInt(10),
			TaxRatePercent:  decimal.NewFromInt(18),
		},
		{Quantity: decimal.Zero, Rate: decimal.NewFromInt(5)},
	})
	require.NoError(t, err)
	return res
}

func readAll(t *testing.T, buf *bytes.Buffer) [][]string {
	t.Helper()
	rows, err := csv.NewReader(buf).ReadAll()
	require.NoError(t, err)
	return rows
}

func TestWriteHeader(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(&buf)
	require.NoError(t, w.WriteHeader())
	w.Flush()
	require.NoError(t, w.Error())

	rows := readAll(t, &buf)
	require.Len(t, rows, 1)
	assert.Len(t, rows[0], 18)
	assert.Equal(t, "#", rows[0][0])
	assert.Equal(t, "Total", rows[0][17])
}

func TestWriteCalculation_IntraState(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewWriter(&buf).WriteCalculation(calculate(t, "Maharashtra", "MH")))

	rows := readAll(t, &buf)
	// header + 1 item + separator + 11 summary lines
	require.Len(t, rows, 14)

	item := rows[1]
	assert.Equal(t, "1", item[0])
	assert.Equal(t, "Consulting, phase 1", item[1])
	assert.Equal(t, "998311", item[2])
	assert.Equal(t, "2000.00", item[7])
	assert.Equal(t, "200.00", item[8])
	assert.Equal(t, "1800.00", item[9])
	assert.Equal(t, "9", item[11])
	assert.Equal(t, "162.00", item[12])
	assert.Equal(t, "162.00", item[14])
	assert.Equal(t, "0.00", item[16])
	assert.Equal(t, "2124.00", item[17])

	summary := map[string]string{}
	for _, row := range rows[3:] {
		summary[row[1]] = row[17]
	}
	assert.Equal(t, "Intra-state (CGST + SGST)", summary["Tax Type"])
	assert.Equal(t, "2000.00", summary["Subtotal"])
	assert.Equal(t, "200.00", summary["Total Discount"])
	assert.Equal(t, "162.00", summary["CGST"])
	assert.Equal(t, "324.00", summary["Total Tax"])
	assert.Equal(t, "2124.00", summary["Grand Total"])
	assert.Equal(t, "Rupees Two Thousand One Hundred Twenty Four Only", summary["Amount in Words"])
	_, hasIGST := summary["IGST"]
	assert.False(t, hasIGST)
}

func TestWriteCalculation_InterStateShowsIGSTOnly(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewWriter(&buf).WriteCalculation(calculate(t, "Maharashtra", "Karnataka")))

	summary := map[string]string{}
	for _, row := range readAll(t, &buf)[3:] {
		summary[row[1]] = row[17]
	}
	assert.Equal(t, "324.00", summary["IGST"])
	_, hasCGST := summary["CGST"]
	assert.False(t, hasCGST)
}

func TestSanitizeFilename(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"INV/2025/001", "INV_2025_001"},
		{"  acme & co  ", "acme_co"},
		{"already-clean_name", "already-clean_name"},
		{"", ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, SanitizeFilename(tt.in))
	}
}

func TestBuildFilename(t *testing.T) {
	date := time.Date(2025, 1, 15, 10, 0, 0, 0, time.UTC)
	assert.Equal(t, "INV_001_2025-01-15.csv", BuildFilename("INV 001", "csv", date))
	assert.Equal(t, "invoice_2025-01-15.xlsx", BuildFilename("", "xlsx", date))
}
