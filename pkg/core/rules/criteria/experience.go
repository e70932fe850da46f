package criteria

import (
	"github.com/barkingside-hub/autoconfirm/pkg/core/rules"
)

// ExperienceCriterion checks that the volunteer has at least one prior
// completed signup of the same shift type. Unlike the threshold criteria
// this is a boolean flag: when the rule leaves it unset it imposes no
// constraint at all.
type ExperienceCriterion struct{}

func (c *ExperienceCriterion) Name() string {
	return "RequireShiftTypeExperience"
}

func (c *ExperienceCriterion) Evaluate(rule rules.AutoAcceptRule, ctx rules.EvaluationContext) (Result, error) {
	if !rule.RequireShiftTypeExperience {
		return NotApplicable, nil
	}

	if ctx.Volunteer.HasShiftTypeExperience {
		return Satisfied, nil
	}
	return NotSatisfied, nil
}
