package criteria

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/barkingside-hub/autoconfirm/pkg/core/rules"
)

func TestAccountAgeCriterion_Name(t *testing.T) {
	criterion := &AccountAgeCriterion{}
	assert.Equal(t, "MinAccountAgeDays", criterion.Name())
}

func TestAccountAgeCriterion_NotApplicableWhenUnset(t *testing.T) {
	criterion := &AccountAgeCriterion{}

	result, err := criterion.Evaluate(rules.AutoAcceptRule{}, rules.EvaluationContext{})
	require.NoError(t, err)
	assert.Equal(t, NotApplicable, result)
}

func TestAccountAgeCriterion_InclusiveThreshold(t *testing.T) {
	tests := []struct {
		name      string
		threshold int
		age       int
		expected  Result
	}{
		{"new account below threshold", 30, 29, NotSatisfied},
		{"exactly at threshold", 30, 30, Satisfied},
		{"older account", 30, 365, Satisfied},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			criterion := &AccountAgeCriterion{}
			rule := rules.AutoAcceptRule{MinAccountAgeDays: &tt.threshold}
			ctx := rules.EvaluationContext{
				Volunteer: rules.VolunteerContext{AccountAgeDays: tt.age},
			}

			result, err := criterion.Evaluate(rule, ctx)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, result)
		})
	}
}

func TestAccountAgeCriterion_NegativeThresholdIsConfigurationError(t *testing.T) {
	criterion := &AccountAgeCriterion{}
	threshold := -7
	rule := rules.AutoAcceptRule{ID: "r1", Name: "broken", MinAccountAgeDays: &threshold}

	result, err := criterion.Evaluate(rule, rules.EvaluationContext{})
	require.Error(t, err)
	assert.True(t, rules.IsConfigurationError(err))
	assert.Equal(t, NotSatisfied, result)
}
