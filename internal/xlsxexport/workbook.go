// Package xlsxexport renders a calculation as an Excel workbook.
package xlsxexport

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"invonest/internal/csvexport"
	"invonest/internal/gst"
)

// SheetName is the single worksheet in an exported workbook.
const SheetName = "Invoice"

// moneyFormat is excelize's built-in "0.00" number format.
const moneyFormat = 2

// Write renders res as an .xlsx workbook to w. Line items use the same
// columns as the CSV export; amounts are numeric cells so spreadsheets can
// sum them.
func Write(w io.Writer, res *gst.CalculationResult) error {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	if err := f.SetSheetName("Sheet1", SheetName); err != nil {
		return fmt.Errorf("renaming sheet: %w", err)
	}

	header := csvexport.Columns()
	if err := f.SetSheetRow(SheetName, "A1", &header); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}
	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("creating header style: %w", err)
	}
	lastCol, _ := excelize.ColumnNumberToName(len(header))
	if err := f.SetCellStyle(SheetName, "A1", lastCol+"1", bold); err != nil {
		return fmt.Errorf("styling header: %w", err)
	}

	row := 2
	for i := range res.Items {
		values := itemRow(&res.Items[i])
		cell, _ := excelize.CoordinatesToCellName(1, row)
		if err := f.SetSheetRow(SheetName, cell, &values); err != nil {
			return fmt.Errorf("writing line %d: %w", i+1, err)
		}
		row++
	}

	money, err := f.NewStyle(&excelize.Style{NumFmt: moneyFormat})
	if err != nil {
		return fmt.Errorf("creating money style: %w", err)
	}
	if row > 2 {
		if err := f.SetCellStyle(SheetName, "F2", fmt.Sprintf("F%d", row-1), money); err != nil {
			return fmt.Errorf("styling amounts: %w", err)
		}
		if err := f.SetCellStyle(SheetName, "H2", fmt.Sprintf("%s%d", lastCol, row-1), money); err != nil {
			return fmt.Errorf("styling amounts: %w", err)
		}
	}

	row++ // blank separator
	for _, s := range summaryRows(res) {
		labelCell, _ := excelize.CoordinatesToCellName(2, row)
		valueCell, _ := excelize.CoordinatesToCellName(len(header), row)
		if err := f.SetCellValue(SheetName, labelCell, s.label); err != nil {
			return fmt.Errorf("writing summary: %w", err)
		}
		if err := f.SetCellValue(SheetName, valueCell, s.value); err != nil {
			return fmt.Errorf("writing summary: %w", err)
		}
		if err := f.SetCellStyle(SheetName, labelCell, labelCell, bold); err != nil {
			return fmt.Errorf("styling summary: %w", err)
		}
		if _, isMoney := s.value.(float64); isMoney {
			if err := f.SetCellStyle(SheetName, valueCell, valueCell, money); err != nil {
				return fmt.Errorf("styling summary: %w", err)
			}
		}
		row++
	}

	if err := f.SetColWidth(SheetName, "B", "B", 36); err != nil {
		return fmt.Errorf("sizing columns: %w", err)
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("writing workbook: %w", err)
	}
	return nil
}

type summaryRow struct {
	label string
	value interface{}
}

// summaryRows mirrors csvexport.SummaryLines with numeric amounts.
func summaryRows(res *gst.CalculationResult) []summaryRow {
	t := &res.Totals
	rows := []summaryRow{
		{"Tax Type", string(res.TaxType)},
		{"Subtotal", t.Subtotal.InexactFloat64()},
		{"Total Discount", t.TotalDiscount.InexactFloat64()},
		{"Taxable Amount", t.TaxableAmount.InexactFloat64()},
	}
	if res.IsIntraState() {
		rows = append(rows,
			summaryRow{"CGST", t.TotalCGST.InexactFloat64()},
			summaryRow{"SGST", t.TotalSGST.InexactFloat64()},
		)
	} else {
		rows = append(rows, summaryRow{"IGST", t.TotalIGST.InexactFloat64()})
	}
	return append(rows,
		summaryRow{"Total Tax", t.TotalTax.InexactFloat64()},
		summaryRow{"Grand Total", t.GrandTotal.InexactFloat64()},
		summaryRow{"Round Off", t.RoundOff.InexactFloat64()},
		summaryRow{"Amount Payable", t.RoundedGrandTotal.InexactFloat64()},
		summaryRow{"Amount in Words", t.AmountInWords},
	)
}

func itemRow(r *gst.LineItemResult) []interface{} {
	return []interface{}{
		r.Index + 1,
		r.Description,
		r.HSNCode,
		r.Quantity.InexactFloat64(),
		r.Unit,
		r.Rate.InexactFloat64(),
		r.DiscountPercent.InexactFloat64(),
		r.GrossAmount.InexactFloat64(),
		r.DiscountAmount.InexactFloat64(),
		r.TaxableAmount.InexactFloat64(),
		r.TaxRatePercent.InexactFloat64(),
		r.CGSTRate.InexactFloat64(),
		r.CGSTAmount.InexactFloat64(),
		r.SGSTRate.InexactFloat64(),
		r.SGSTAmount.InexactFloat64(),
		r.IGSTRate.InexactFloat64(),
		r.IGSTAmount.InexactFloat64(),
		r.TotalAmount.InexactFloat64(),
	}
}
