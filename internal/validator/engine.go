package validator

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"invonest/internal/domain"
	"invonest/internal/hsn"
	"invonest/internal/validator/invoice"
)

// Engine runs every registered rule against an invoice.
type Engine struct {
	registry *Registry
	logger   *zap.Logger
}

// NewEngine creates a new validation engine.
func NewEngine(registry *Registry, logger *zap.Logger) *Engine {
	return &Engine{
		registry: registry,
		logger:   logger,
	}
}

// NewBuiltinEngine registers all built-in rules. lookup may be nil, in which
// case the HSN master rules are left out.
func NewBuiltinEngine(lookup *hsn.Lookup, logger *zap.Logger) *Engine {
	reg := NewRegistry()
	for _, v := range invoice.AllBuiltinValidators(lookup) {
		reg.Register(v)
	}
	return NewEngine(reg, logger)
}

// Rules lists the registered rules.
func (e *Engine) Rules() []RuleInfo {
	all := e.registry.All()
	out := make([]RuleInfo, 0, len(all))
	for _, v := range all {
		out = append(out, RuleInfo{
			Key:      v.RuleKey(),
			Name:     v.RuleName(),
			RuleType: v.RuleType(),
			Severity: v.Severity(),
		})
	}
	return out
}

// Verify runs every rule and derives the overall status: invalid if any
// error-severity rule failed, warning if only warnings failed, valid otherwise.
func (e *Engine) Verify(ctx context.Context, inv *invoice.GSTInvoice) (*Report, error) {
	var items []ValidationResultItem
	var passed, errorCount, warningCount int

	for _, v := range e.registry.All() {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("verifying invoice: %w", err)
		}
		for _, vr := range v.Validate(ctx, inv) {
			items = append(items, ValidationResultItem{
				RuleKey:       v.RuleKey(),
				RuleName:      v.RuleName(),
				RuleType:      string(v.RuleType()),
				Severity:      string(v.Severity()),
				Passed:        vr.Passed,
				FieldPath:     vr.FieldPath,
				ExpectedValue: vr.ExpectedValue,
				ActualValue:   vr.ActualValue,
				Message:       vr.Message,
			})
			switch {
			case vr.Passed:
				passed++
			case v.Severity() == domain.ValidationSeverityError:
				errorCount++
			default:
				warningCount++
			}
		}
	}

	var status domain.ValidationStatus
	switch {
	case errorCount > 0:
		status = domain.ValidationStatusInvalid
	case warningCount > 0:
		status = domain.ValidationStatusWarning
	default:
		status = domain.ValidationStatusValid
	}

	if items == nil {
		items = []ValidationResultItem{}
	}

	e.logger.Debug("invoice verified",
		zap.String("invoice_number", inv.Invoice.InvoiceNumber),
		zap.String("status", string(status)),
		zap.Int("results", len(items)),
		zap.Int("errors", errorCount),
		zap.Int("warnings", warningCount),
	)

	return &Report{
		InvoiceNumber:    inv.Invoice.InvoiceNumber,
		ValidationStatus: status,
		Summary: ValidationSummary{
			Total:    len(items),
			Passed:   passed,
			Errors:   errorCount,
			Warnings: warningCount,
		},
		Results:       items,
		FieldStatuses: ComputeFieldStatuses(items),
	}, nil
}

// Report is the outcome of verifying one invoice.
type Report struct {
	InvoiceNumber    string                  `json:"invoiceNumber"`
	ValidationStatus domain.ValidationStatus `json:"validationStatus"`
	Summary          ValidationSummary       `json:"summary"`
	Results          []ValidationResultItem  `json:"results"`
	FieldStatuses    map[string]*FieldStatus `json:"fieldStatuses"`
}

// ValidationSummary holds aggregate counts of validation results.
type ValidationSummary struct {
	Total    int `json:"total"`
	Passed   int `json:"passed"`
	Errors   int `json:"errors"`
	Warnings int `json:"warnings"`
}

// ValidationResultItem is a single validation result in the API response.
type ValidationResultItem struct {
	RuleKey       string `json:"ruleKey"`
	RuleName      string `json:"ruleName"`
	RuleType      string `json:"ruleType"`
	Severity      string `json:"severity"`
	Passed        bool   `json:"passed"`
	FieldPath     string `json:"fieldPath"`
	ExpectedValue string `json:"expectedValue"`
	ActualValue   string `json:"actualValue"`
	Message       string `json:"message"`
}

// RuleInfo describes a registered rule.
type RuleInfo struct {
	Key      string                    `json:"key"`
	Name     string                    `json:"name"`
	RuleType domain.ValidationRuleType `json:"ruleType"`
	Severity domain.ValidationSeverity `json:"severity"`
}
