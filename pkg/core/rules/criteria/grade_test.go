package criteria

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/barkingside-hub/autoconfirm/pkg/core/rules"
)

func TestGradeCriterion_Name(t *testing.T) {
	criterion := &GradeCriterion{}
	assert.Equal(t, "MinVolunteerGrade", criterion.Name())
}

func TestGradeCriterion_NotApplicableWhenUnset(t *testing.T) {
	criterion := &GradeCriterion{}
	rule := rules.AutoAcceptRule{Name: "no grade requirement"}
	ctx := rules.EvaluationContext{
		Volunteer: rules.VolunteerContext{Grade: rules.GradeGreen},
	}

	result, err := criterion.Evaluate(rule, ctx)
	require.NoError(t, err)
	assert.Equal(t, NotApplicable, result)
}

func TestGradeCriterion_OrdinalComparison(t *testing.T) {
	tests := []struct {
		name      string
		minimum   rules.Grade
		volunteer rules.Grade
		expected  Result
	}{
		{"green below yellow", rules.GradeYellow, rules.GradeGreen, NotSatisfied},
		{"yellow meets yellow", rules.GradeYellow, rules.GradeYellow, Satisfied},
		{"pink exceeds yellow", rules.GradeYellow, rules.GradePink, Satisfied},
		{"green meets green", rules.GradeGreen, rules.GradeGreen, Satisfied},
		{"yellow below pink", rules.GradePink, rules.GradeYellow, NotSatisfied},
		{"pink meets pink", rules.GradePink, rules.GradePink, Satisfied},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			criterion := &GradeCriterion{}
			rule := rules.AutoAcceptRule{MinVolunteerGrade: tt.minimum}
			ctx := rules.EvaluationContext{
				Volunteer: rules.VolunteerContext{Grade: tt.volunteer},
			}

			result, err := criterion.Evaluate(rule, ctx)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, result)
		})
	}
}

func TestGradeCriterion_UngradedVolunteerFails(t *testing.T) {
	criterion := &GradeCriterion{}
	rule := rules.AutoAcceptRule{MinVolunteerGrade: rules.GradeGreen}
	ctx := rules.EvaluationContext{}

	result, err := criterion.Evaluate(rule, ctx)
	require.NoError(t, err)
	assert.Equal(t, NotSatisfied, result)
}

func TestGradeCriterion_InvalidRuleGradeIsConfigurationError(t *testing.T) {
	criterion := &GradeCriterion{}
	rule := rules.AutoAcceptRule{
		ID:                "r1",
		Name:              "broken",
		MinVolunteerGrade: rules.Grade("PURPLE"),
	}
	ctx := rules.EvaluationContext{
		Volunteer: rules.VolunteerContext{Grade: rules.GradePink},
	}

	result, err := criterion.Evaluate(rule, ctx)
	require.Error(t, err)
	assert.True(t, rules.IsConfigurationError(err))
	assert.Equal(t, NotSatisfied, result)
}

func TestGradeCriterion_UnrecognisedVolunteerGradeFailsWithoutError(t *testing.T) {
	criterion := &GradeCriterion{}
	rule := rules.AutoAcceptRule{MinVolunteerGrade: rules.GradeGreen}
	ctx := rules.EvaluationContext{
		Volunteer: rules.VolunteerContext{Grade: rules.Grade("BLUE")},
	}

	result, err := criterion.Evaluate(rule, ctx)
	require.NoError(t, err)
	assert.Equal(t, NotSatisfied, result)
}
