package port

import (
	"context"

	"github.com/shopspring/decimal"
)

// RateResolver supplies the nominal GST rate for an HSN/SAC code.
type RateResolver interface {
	Resolve(ctx context.Context, code string) (decimal.Decimal, error)
}
