package invoice

import (
	"context"

	"invonest/internal/domain"
	"invonest/internal/hsn"
)

// BuiltinValidator wraps a validator function and its metadata for the registry.
type BuiltinValidator struct {
	key      string
	name     string
	ruleType domain.ValidationRuleType
	sev      domain.ValidationSeverity
	fn       func(context.Context, *GSTInvoice) []ValidationResult
}

func (b *BuiltinValidator) Validate(ctx context.Context, data *GSTInvoice) []ValidationResult {
	return b.fn(ctx, data)
}
func (b *BuiltinValidator) RuleKey() string                     { return b.key }
func (b *BuiltinValidator) RuleName() string                    { return b.name }
func (b *BuiltinValidator) RuleType() domain.ValidationRuleType { return b.ruleType }
func (b *BuiltinValidator) Severity() domain.ValidationSeverity { return b.sev }

// rule is the common shape of every family below.
type rule interface {
	Validate(context.Context, *GSTInvoice) []ValidationResult
	RuleKey() string
	RuleName() string
	RuleType() domain.ValidationRuleType
	Severity() domain.ValidationSeverity
}

func wrap[T rule](vals []T) []*BuiltinValidator {
	out := make([]*BuiltinValidator, 0, len(vals))
	for _, v := range vals {
		out = append(out, &BuiltinValidator{
			key: v.RuleKey(), name: v.RuleName(),
			ruleType: v.RuleType(), sev: v.Severity(),
			fn: v.Validate,
		})
	}
	return out
}

// AllBuiltinValidators returns every built-in rule for GST invoices. The HSN
// master rules are included only when lookup is non-nil.
func AllBuiltinValidators(lookup *hsn.Lookup) []*BuiltinValidator {
	var all []*BuiltinValidator
	all = append(all, wrap(RequiredFieldValidators())...)
	all = append(all, wrap(FormatValidators())...)
	all = append(all, wrap(MathValidators())...)
	all = append(all, wrap(CrossFieldValidators())...)
	all = append(all, wrap(LogicalValidators())...)
	if lookup != nil {
		all = append(all, HSNValidators(lookup)...)
	}
	return all
}
