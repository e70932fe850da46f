package criteria

import (
	"fmt"

	"github.com/barkingside-hub/autoconfirm/pkg/core/rules"
)

// AccountAgeCriterion checks that the volunteer's account is at least the
// rule's threshold in days old (inclusive).
type AccountAgeCriterion struct{}

func (c *AccountAgeCriterion) Name() string {
	return "MinAccountAgeDays"
}

func (c *AccountAgeCriterion) Evaluate(rule rules.AutoAcceptRule, ctx rules.EvaluationContext) (Result, error) {
	if rule.MinAccountAgeDays == nil {
		return NotApplicable, nil
	}

	threshold := *rule.MinAccountAgeDays
	if threshold < 0 {
		return NotSatisfied, &rules.ConfigurationError{
			RuleID:   rule.ID,
			RuleName: rule.Name,
			Reason:   fmt.Sprintf("minAccountAgeDays must be non-negative, got %d", threshold),
		}
	}

	if ctx.Volunteer.AccountAgeDays >= threshold {
		return Satisfied, nil
	}
	return NotSatisfied, nil
}
