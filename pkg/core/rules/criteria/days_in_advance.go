package criteria

import (
	"fmt"

	"github.com/barkingside-hub/autoconfirm/pkg/core/rules"
)

// DaysInAdvanceCriterion checks that the shift starts within the rule's
// maxDaysInAdvance window (inclusive). This bounds how far ahead of the
// shift the rule applies, not a minimum: a shift exactly N days out
// satisfies maxDaysInAdvance=N, a shift N+1 days out does not.
type DaysInAdvanceCriterion struct{}

func (c *DaysInAdvanceCriterion) Name() string {
	return "MaxDaysInAdvance"
}

func (c *DaysInAdvanceCriterion) Evaluate(rule rules.AutoAcceptRule, ctx rules.EvaluationContext) (Result, error) {
	if rule.MaxDaysInAdvance == nil {
		return NotApplicable, nil
	}

	threshold := *rule.MaxDaysInAdvance
	if threshold < 0 {
		return NotSatisfied, &rules.ConfigurationError{
			RuleID:   rule.ID,
			RuleName: rule.Name,
			Reason:   fmt.Sprintf("maxDaysInAdvance must be non-negative, got %d", threshold),
		}
	}

	if ctx.DaysUntilShiftStart() <= threshold {
		return Satisfied, nil
	}
	return NotSatisfied, nil
}
