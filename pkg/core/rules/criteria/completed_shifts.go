package criteria

import (
	"fmt"

	"github.com/barkingside-hub/autoconfirm/pkg/core/rules"
)

// CompletedShiftsCriterion checks that the volunteer's historical
// completed-shift count meets the rule's threshold (inclusive).
type CompletedShiftsCriterion struct{}

func (c *CompletedShiftsCriterion) Name() string {
	return "MinCompletedShifts"
}

func (c *CompletedShiftsCriterion) Evaluate(rule rules.AutoAcceptRule, ctx rules.EvaluationContext) (Result, error) {
	if rule.MinCompletedShifts == nil {
		return NotApplicable, nil
	}

	threshold := *rule.MinCompletedShifts
	if threshold < 0 {
		return NotSatisfied, &rules.ConfigurationError{
			RuleID:   rule.ID,
			RuleName: rule.Name,
			Reason:   fmt.Sprintf("minCompletedShifts must be non-negative, got %d", threshold),
		}
	}

	if ctx.Volunteer.CompletedShifts >= threshold {
		return Satisfied, nil
	}
	return NotSatisfied, nil
}
