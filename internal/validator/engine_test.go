package validator_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"invonest/internal/domain"
	"invonest/internal/hsn"
	"invonest/internal/port"
	"invonest/internal/validator"
	"invonest/internal/validator/invoice"
)

func validInvoice() *invoice.GSTInvoice {
	return &invoice.GSTInvoice{
		Invoice: invoice.InvoiceHeader{InvoiceNumber: "INV-001", InvoiceDate: "2025-01-15", PlaceOfSupply: "Karnataka"},
		Seller:  invoice.Party{Name: "Seller Corp", GSTIN: "29ABCDE1234F1Z5", State: "Karnataka", StateCode: "29"},
		Buyer:   invoice.Party{Name: "Buyer Corp", GSTIN: "29FGHIJ5678K1Z2", State: "Karnataka", StateCode: "29"},
		LineItems: []invoice.LineItem{{
			Description: "Widget", HSNSACCode: "8471", Quantity: 10, UnitPrice: 100,
			TaxableAmount: 1000, CGSTRate: 9, CGSTAmount: 90, SGSTRate: 9, SGSTAmount: 90, Total: 1180,
		}},
		Totals: invoice.Totals{Subtotal: 1000, TaxableAmount: 1000, CGST: 90, SGST: 90, Total: 1180},
	}
}

// stubValidator always reports the configured outcome on one field.
type stubValidator struct {
	key    string
	sev    domain.ValidationSeverity
	passed bool
	field  string
}

func (s *stubValidator) Validate(context.Context, *invoice.GSTInvoice) []invoice.ValidationResult {
	return []invoice.ValidationResult{{Passed: s.passed, FieldPath: s.field, Message: s.key}}
}
func (s *stubValidator) RuleKey() string                     { return s.key }
func (s *stubValidator) RuleName() string                    { return s.key }
func (s *stubValidator) RuleType() domain.ValidationRuleType { return domain.ValidationRuleCustom }
func (s *stubValidator) Severity() domain.ValidationSeverity { return s.sev }

func engineWith(vals ...validator.Validator) *validator.Engine {
	reg := validator.NewRegistry()
	for _, v := range vals {
		reg.Register(v)
	}
	return validator.NewEngine(reg, zap.NewNop())
}

func TestEngine_Status(t *testing.T) {
	ctx := context.Background()
	tests := []struct {
		name string
		vals []validator.Validator
		want domain.ValidationStatus
	}{
		{
			name: "all_pass",
			vals: []validator.Validator{&stubValidator{key: "a", sev: domain.ValidationSeverityError, passed: true, field: "x"}},
			want: domain.ValidationStatusValid,
		},
		{
			name: "warning_only",
			vals: []validator.Validator{
				&stubValidator{key: "a", sev: domain.ValidationSeverityError, passed: true, field: "x"},
				&stubValidator{key: "b", sev: domain.ValidationSeverityWarning, passed: false, field: "y"},
			},
			want: domain.ValidationStatusWarning,
		},
		{
			name: "error_wins",
			vals: []validator.Validator{
				&stubValidator{key: "a", sev: domain.ValidationSeverityError, passed: false, field: "x"},
				&stubValidator{key: "b", sev: domain.ValidationSeverityWarning, passed: false, field: "y"},
			},
			want: domain.ValidationStatusInvalid,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			report, err := engineWith(tt.vals...).Verify(ctx, validInvoice())
			require.NoError(t, err)
			assert.Equal(t, tt.want, report.ValidationStatus)
			assert.Equal(t, len(tt.vals), report.Summary.Total)
		})
	}
}

func TestEngine_SummaryAndOrder(t *testing.T) {
	e := engineWith(
		&stubValidator{key: "first", sev: domain.ValidationSeverityError, passed: true, field: "x"},
		&stubValidator{key: "second", sev: domain.ValidationSeverityError, passed: false, field: "x"},
		&stubValidator{key: "third", sev: domain.ValidationSeverityWarning, passed: false, field: "z"},
	)
	report, err := e.Verify(context.Background(), validInvoice())
	require.NoError(t, err)

	assert.Equal(t, validator.ValidationSummary{Total: 3, Passed: 1, Errors: 1, Warnings: 1}, report.Summary)
	require.Len(t, report.Results, 3)
	assert.Equal(t, "first", report.Results[0].RuleKey)
	assert.Equal(t, "second", report.Results[1].RuleKey)
	assert.Equal(t, "third", report.Results[2].RuleKey)
	assert.Equal(t, "INV-001", report.InvoiceNumber)
	assert.Equal(t, domain.FieldStatusInvalid, report.FieldStatuses["x"].Status)
	assert.Equal(t, domain.FieldStatusUnsure, report.FieldStatuses["z"].Status)
}

func TestEngine_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := engineWith(&stubValidator{key: "a", sev: domain.ValidationSeverityError, passed: true}).Verify(ctx, validInvoice())
	assert.ErrorIs(t, err, context.Canceled)
}

func TestEngine_EmptyRegistry(t *testing.T) {
	report, err := engineWith().Verify(context.Background(), validInvoice())
	require.NoError(t, err)
	assert.Equal(t, domain.ValidationStatusValid, report.ValidationStatus)
	assert.NotNil(t, report.Results)
	assert.Empty(t, report.Results)
}

func TestBuiltinEngine_ValidInvoice(t *testing.T) {
	lookup := hsn.NewLookup([]port.HSNEntry{{Code: "8471", GSTRate: decimal.NewFromInt(18)}})
	e := validator.NewBuiltinEngine(lookup, zap.NewNop())

	report, err := e.Verify(context.Background(), validInvoice())
	require.NoError(t, err)
	for _, r := range report.Results {
		assert.True(t, r.Passed, "%s: %s", r.RuleKey, r.Message)
	}
	assert.Equal(t, domain.ValidationStatusValid, report.ValidationStatus)
	assert.Equal(t, 0, report.Summary.Errors)
}

func TestBuiltinEngine_WrongRegime(t *testing.T) {
	e := validator.NewBuiltinEngine(nil, zap.NewNop())
	inv := validInvoice()
	// Charged IGST on a same-state supply.
	inv.LineItems[0].CGSTRate, inv.LineItems[0].CGSTAmount = 0, 0
	inv.LineItems[0].SGSTRate, inv.LineItems[0].SGSTAmount = 0, 0
	inv.LineItems[0].IGSTRate, inv.LineItems[0].IGSTAmount = 18, 180
	inv.Totals.CGST, inv.Totals.SGST, inv.Totals.IGST = 0, 0, 180

	report, err := e.Verify(context.Background(), inv)
	require.NoError(t, err)
	assert.Equal(t, domain.ValidationStatusInvalid, report.ValidationStatus)
	assert.Equal(t, domain.FieldStatusInvalid, report.FieldStatuses["lineItems[0]"].Status)
}

func TestBuiltinEngine_Rules(t *testing.T) {
	withHSN := validator.NewBuiltinEngine(hsn.NewLookup(nil), zap.NewNop()).Rules()
	withoutHSN := validator.NewBuiltinEngine(nil, zap.NewNop()).Rules()
	assert.Len(t, withHSN, len(withoutHSN)+2)
	assert.Equal(t, "req.invoice.number", withoutHSN[0].Key)
}
