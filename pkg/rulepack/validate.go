package rulepack

import (
	"fmt"
	"math"

	"github.com/aretw0/rulegen/pkg/domain"
)

// Validate checks the whole pack: a non-empty id plus everything ValidateRules checks.
func Validate(pack domain.RulePack) error {
	var errs []error
	if pack.ID == "" {
		errs = append(errs, &ValidationError{Field: "id", Reason: "is required"})
	}
	errs = append(errs, ruleErrors(pack.Rules)...)
	return wrap(errs)
}

// ValidateRules checks that every rule names a symbol and carries a finite,
// non-negative weight. It does not require a pack id.
func ValidateRules(pack domain.RulePack) error {
	return wrap(ruleErrors(pack.Rules))
}

func ruleErrors(rules []domain.Rule) []error {
	var errs []error
	for i, r := range rules {
		if r.Symbol == "" {
			errs = append(errs, &ValidationError{Field: fmt.Sprintf("rules[%d].symbol", i), Reason: "is required"})
		}
		if r.Weight < 0 || math.IsNaN(r.Weight) || math.IsInf(r.Weight, 0) {
			errs = append(errs, &ValidationError{
				Field:  fmt.Sprintf("rules[%d].weight", i),
				Reason: fmt.Sprintf("must be a finite non-negative number, got %v", r.Weight),
			})
		}
	}
	return errs
}

func wrap(errs []error) error {
	if len(errs) == 0 {
		return nil
	}
	return fmt.Errorf("%w: %w", domain.ErrMalformedRulePack, &AggregateError{Errors: errs})
}
