// Package hsnseed turns the government GST HSN/SAC workbook into SQL seed
// data for the hsn_codes table.
package hsnseed

import (
	"fmt"
	"io"
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"

	"invonest/internal/port"
)

// SACSheet is the services sheet of the workbook. Goods are read from the
// first sheet whatever it is called.
const SACSheet = "SAC_Master"

// Data starts below the title and header rows.
const (
	hsnFirstRow = 5
	sacFirstRow = 3
)

// HSN sheet columns: 4-digit code/description, 6-digit code/description,
// 8-digit code/description and the rate.
const (
	colHSN4, colHSN4Desc = 5, 7
	colHSN6, colHSN6Desc = 8, 9
	colHSN8, colHSN8Desc = 10, 12
	colHSNRate           = 13
)

// SAC sheet columns.
const (
	colSAC4, colSAC4Desc = 0, 1
	colSAC6, colSAC6Desc = 2, 3
	colSACRate           = 4
)

// ReadWorkbook parses both sheets of the workbook read from r.
func ReadWorkbook(r io.Reader) ([]port.HSNEntry, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("opening workbook: %w", err)
	}
	defer func() { _ = f.Close() }()
	return Parse(f)
}

// Parse extracts goods and services entries, skipping duplicates of the same
// code and rate.
func Parse(f *excelize.File) ([]port.HSNEntry, error) {
	c := &collector{seen: make(map[string]bool)}

	goods, err := f.GetRows(f.GetSheetName(0))
	if err != nil {
		return nil, fmt.Errorf("reading HSN sheet: %w", err)
	}
	for _, row := range skip(goods, hsnFirstRow) {
		rate, ok := parsePercent(cellVal(row, colHSNRate))
		if !ok {
			continue
		}
		c.add(cellVal(row, colHSN8), cellVal(row, colHSN8Desc), rate, "")
		c.add(cellVal(row, colHSN6), cellVal(row, colHSN6Desc), rate, "")
		c.add(cellVal(row, colHSN4), cellVal(row, colHSN4Desc), rate, "")
	}

	services, err := f.GetRows(SACSheet)
	if err != nil {
		return nil, fmt.Errorf("reading SAC sheet: %w", err)
	}
	for _, row := range skip(services, sacFirstRow) {
		text := strings.TrimSpace(cellVal(row, colSACRate))
		rates := ParseSACRate(text)
		// Several rates in one cell depend on conditions the sheet only
		// describes in prose; keep the prose so each row stays distinct.
		condition := ""
		if len(rates) > 1 {
			condition = text
		}
		for _, rate := range rates {
			c.add(cellVal(row, colSAC6), cellVal(row, colSAC6Desc), rate, condition)
			c.add(cellVal(row, colSAC4), cellVal(row, colSAC4Desc), rate, condition)
		}
	}

	return c.entries, nil
}

type collector struct {
	seen    map[string]bool
	entries []port.HSNEntry
}

func (c *collector) add(code, description string, rate decimal.Decimal, condition string) {
	code = strings.TrimSpace(code)
	if !isNumeric(code) {
		return
	}
	key := code + "|" + rate.StringFixed(2)
	if c.seen[key] {
		return
	}
	c.seen[key] = true
	c.entries = append(c.entries, port.HSNEntry{
		Code:          code,
		Description:   strings.TrimSpace(description),
		GSTRate:       rate,
		ConditionDesc: condition,
	})
}

// ratePattern matches a number followed by "%".
var ratePattern = regexp.MustCompile(`(\d+(?:\.\d+)?)\s*%`)

// ParseSACRate extracts the GST rates from a free-text rate cell:
//
//	"18%"                                   -> [18]
//	"Exempt", "Nil"                         -> [0]
//	"12%-18%"                               -> [12 18]
//	"1% (without ITC) or 5% (without ITC)"  -> [1 5]
func ParseSACRate(s string) []decimal.Decimal {
	s = strings.TrimSpace(s)
	switch strings.ToLower(s) {
	case "":
		return nil
	case "exempt", "nil":
		return []decimal.Decimal{decimal.Zero}
	}

	var rates []decimal.Decimal
	for _, m := range ratePattern.FindAllStringSubmatch(s, -1) {
		rate, err := decimal.NewFromString(m[1])
		if err != nil {
			continue
		}
		dup := false
		for _, r := range rates {
			if r.Equal(rate) {
				dup = true
				break
			}
		}
		if !dup {
			rates = append(rates, rate)
		}
	}
	return rates
}

// parsePercent reads an HSN sheet rate such as "18%" or "0.25".
func parsePercent(s string) (decimal.Decimal, bool) {
	s = strings.TrimSuffix(strings.TrimSpace(s), "%")
	if s == "" {
		return decimal.Zero, false
	}
	rate, err := decimal.NewFromString(s)
	if err != nil || rate.IsNegative() {
		return decimal.Zero, false
	}
	return rate, true
}

func skip(rows [][]string, n int) [][]string {
	if len(rows) <= n {
		return nil
	}
	return rows[n:]
}

func cellVal(row []string, idx int) string {
	if idx < len(row) {
		return row[idx]
	}
	return ""
}

func isNumeric(s string) bool {
	for _, c := range s {
		if c < '0' || c > '9' {
			return false
		}
	}
	return s != ""
}
