package criteria

import (
	"fmt"

	"github.com/barkingside-hub/autoconfirm/pkg/core/rules"
)

// AttendanceRateCriterion checks that the volunteer's historical attendance
// rate meets the rule's percentage threshold (inclusive).
type AttendanceRateCriterion struct{}

func (c *AttendanceRateCriterion) Name() string {
	return "MinAttendanceRate"
}

func (c *AttendanceRateCriterion) Evaluate(rule rules.AutoAcceptRule, ctx rules.EvaluationContext) (Result, error) {
	if rule.MinAttendanceRate == nil {
		return NotApplicable, nil
	}

	threshold := *rule.MinAttendanceRate
	if threshold < 0 || threshold > 100 {
		return NotSatisfied, &rules.ConfigurationError{
			RuleID:   rule.ID,
			RuleName: rule.Name,
			Reason:   fmt.Sprintf("minAttendanceRate must be within [0,100], got %v", threshold),
		}
	}

	if ctx.Volunteer.AttendanceRate >= threshold {
		return Satisfied, nil
	}
	return NotSatisfied, nil
}
