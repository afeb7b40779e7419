package hsn

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"invonest/internal/port"
)

var (
	ErrRateNotFound  = errors.New("no GST rate found for HSN/SAC code")
	ErrRateAmbiguous = errors.New("HSN/SAC code maps to more than one GST rate")
)

// rateTolerance is how far a stated rate may drift from a master rate and still match.
var rateTolerance = decimal.RequireFromString("0.01")

// RateEntry holds a valid GST rate and optional condition for an HSN code.
type RateEntry struct {
	Rate          decimal.Decimal `json:"rate"`
	Description   string          `json:"description"`
	ConditionDesc string          `json:"conditionDesc,omitempty"`
}

// Lookup provides fast in-memory lookups for HSN code existence and rates.
// It is immutable after construction and safe for concurrent access.
type Lookup struct {
	byCode map[string][]RateEntry
}

// NewLookup builds a Lookup from entries loaded from the database.
func NewLookup(entries []port.HSNEntry) *Lookup {
	m := make(map[string][]RateEntry, len(entries))
	for idx := range entries {
		e := &entries[idx]
		code := NormalizeCode(e.Code)
		m[code] = append(m[code], RateEntry{
			Rate:          e.GSTRate,
			Description:   e.Description,
			ConditionDesc: e.ConditionDesc,
		})
	}
	return &Lookup{byCode: m}
}

// Load reads the whole master from repo and indexes it.
func Load(ctx context.Context, repo port.HSNRepository, logger *zap.Logger) (*Lookup, error) {
	entries, err := repo.LoadAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading HSN master: %w", err)
	}
	l := NewLookup(entries)
	logger.Info("HSN master loaded", zap.Int("entries", len(entries)), zap.Int("codes", l.Len()))
	return l, nil
}

// NormalizeCode strips whitespace and dots, so "9983 11" and "9983.11" match "998311".
func NormalizeCode(code string) string {
	return strings.Map(func(r rune) rune {
		if r == ' ' || r == '.' || r == '\t' {
			return -1
		}
		return r
	}, code)
}

// Len returns the number of distinct codes.
func (l *Lookup) Len() int {
	return len(l.byCode)
}

// Exists returns true if the HSN code (or a prefix of it) is in the master list.
func (l *Lookup) Exists(code string) bool {
	return len(l.Rates(code)) > 0
}

// Rates returns valid rate entries for the code. It checks the exact code
// first, then falls back to 6 and 4 digit prefixes.
func (l *Lookup) Rates(code string) []RateEntry {
	code = NormalizeCode(code)
	if len(l.byCode) == 0 || code == "" {
		return nil
	}
	if rates, ok := l.byCode[code]; ok {
		return rates
	}
	for _, prefixLen := range []int{6, 4} {
		if len(code) > prefixLen {
			if rates, ok := l.byCode[code[:prefixLen]]; ok {
				return rates
			}
		}
	}
	return nil
}

// RateMatches checks if rate matches any valid rate for the code.
// Returns whether a match was found and the list of valid rates.
func (l *Lookup) RateMatches(code string, rate decimal.Decimal) (matched bool, validRates []RateEntry) {
	validRates = l.Rates(code)
	for idx := range validRates {
		if validRates[idx].Rate.Sub(rate).Abs().LessThan(rateTolerance) {
			return true, validRates
		}
	}
	return false, validRates
}

// Resolve returns the single GST rate for the code. Codes with conditional
// rates (e.g. 5% below a price threshold, 12% above) are ambiguous and must
// carry an explicit rate.
func (l *Lookup) Resolve(_ context.Context, code string) (decimal.Decimal, error) {
	rates := l.Rates(code)
	if len(rates) == 0 {
		return decimal.Zero, fmt.Errorf("%w: %q", ErrRateNotFound, code)
	}
	first := rates[0].Rate
	for idx := 1; idx < len(rates); idx++ {
		if !rates[idx].Rate.Equal(first) {
			return decimal.Zero, fmt.Errorf("%w: %q", ErrRateAmbiguous, code)
		}
	}
	return first, nil
}
