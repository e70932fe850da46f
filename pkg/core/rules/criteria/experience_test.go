package criteria

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/barkingside-hub/autoconfirm/pkg/core/rules"
)

func TestExperienceCriterion_Name(t *testing.T) {
	criterion := &ExperienceCriterion{}
	assert.Equal(t, "RequireShiftTypeExperience", criterion.Name())
}

func TestExperienceCriterion_NotApplicableWhenFlagUnset(t *testing.T) {
	criterion := &ExperienceCriterion{}
	rule := rules.AutoAcceptRule{RequireShiftTypeExperience: false}

	// An unset flag imposes no constraint, even on a volunteer with no experience
	result, err := criterion.Evaluate(rule, rules.EvaluationContext{})
	require.NoError(t, err)
	assert.Equal(t, NotApplicable, result)
}

func TestExperienceCriterion_RequiresPriorExperience(t *testing.T) {
	criterion := &ExperienceCriterion{}
	rule := rules.AutoAcceptRule{RequireShiftTypeExperience: true}

	result, err := criterion.Evaluate(rule, rules.EvaluationContext{
		Volunteer: rules.VolunteerContext{HasShiftTypeExperience: true},
	})
	require.NoError(t, err)
	assert.Equal(t, Satisfied, result)

	result, err = criterion.Evaluate(rule, rules.EvaluationContext{
		Volunteer: rules.VolunteerContext{HasShiftTypeExperience: false},
	})
	require.NoError(t, err)
	assert.Equal(t, NotSatisfied, result)
}
