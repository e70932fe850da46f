package criteria

import (
	"github.com/barkingside-hub/autoconfirm/pkg/core/rules"
)

// GradeCriterion checks that the volunteer's grade meets or exceeds the
// rule's minimum grade, using the ordinal order GREEN < YELLOW < PINK.
//
// Not applicable when the rule sets no minimum grade. A rule grade outside
// the three valid ranks is a configuration error; an unranked volunteer
// grade simply fails the criterion.
type GradeCriterion struct{}

func (c *GradeCriterion) Name() string {
	return "MinVolunteerGrade"
}

func (c *GradeCriterion) Evaluate(rule rules.AutoAcceptRule, ctx rules.EvaluationContext) (Result, error) {
	if !rule.MinVolunteerGrade.IsSet() {
		return NotApplicable, nil
	}

	if _, err := rule.MinVolunteerGrade.Rank(); err != nil {
		return NotSatisfied, &rules.ConfigurationError{
			RuleID:   rule.ID,
			RuleName: rule.Name,
			Reason:   "invalid minimum volunteer grade",
			Err:      err,
		}
	}

	// An ungraded volunteer, or one with an unrecognised grade, can never
	// meet a grade requirement. That is a property of the context rather
	// than the rule, so it fails the criterion without raising an error.
	if _, err := ctx.Volunteer.Grade.Rank(); err != nil {
		return NotSatisfied, nil
	}

	meets, err := ctx.Volunteer.Grade.AtLeast(rule.MinVolunteerGrade)
	if err != nil {
		return NotSatisfied, nil
	}

	if meets {
		return Satisfied, nil
	}
	return NotSatisfied, nil
}
