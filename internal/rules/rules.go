// Package rules evaluates the cross-column constraints declared in a
// schema's rule list (spec.md §4.5): for every rule whose condition holds,
// each consequent that does not also hold is reported as a violation.
package rules

import (
	"github.com/guimmamanna/synthforge/internal/safeexpr"
	"github.com/guimmamanna/synthforge/internal/schema"
)

// Evaluate returns the list of violated "then" constraints across all rules
// whose "if" condition is true for ctx. A constraint or condition that
// fails to parse or evaluate is treated as false rather than propagated,
// matching the original implementation's swallow-and-skip behavior: a rule
// referencing a column that is not in scope for this row simply does not
// fire.
func Evaluate(rules []schema.Rule, ctx safeexpr.Context) []string {
	var violations []string
	for _, rule := range rules {
		if !safeEval(rule.If, ctx) {
			continue
		}
		for _, constraint := range rule.Then {
			if !safeEval(constraint, ctx) {
				violations = append(violations, constraint)
			}
		}
	}
	return violations
}

func safeEval(expr string, ctx safeexpr.Context) bool {
	ok, err := safeexpr.Evaluate(expr, ctx)
	if err != nil {
		return false
	}
	return ok
}
