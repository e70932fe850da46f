package criteria

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/barkingside-hub/autoconfirm/pkg/core/rules"
)

func TestAttendanceRateCriterion_Name(t *testing.T) {
	criterion := &AttendanceRateCriterion{}
	assert.Equal(t, "MinAttendanceRate", criterion.Name())
}

func TestAttendanceRateCriterion_NotApplicableWhenUnset(t *testing.T) {
	criterion := &AttendanceRateCriterion{}

	result, err := criterion.Evaluate(rules.AutoAcceptRule{}, rules.EvaluationContext{})
	require.NoError(t, err)
	assert.Equal(t, NotApplicable, result)
}

func TestAttendanceRateCriterion_InclusivePercentage(t *testing.T) {
	tests := []struct {
		name      string
		threshold float64
		rate      float64
		expected  Result
	}{
		{"just below", 80, 79, NotSatisfied},
		{"exactly at", 80, 80, Satisfied},
		{"above", 80, 95.5, Satisfied},
		{"perfect attendance", 100, 100, Satisfied},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			criterion := &AttendanceRateCriterion{}
			rule := rules.AutoAcceptRule{MinAttendanceRate: &tt.threshold}
			ctx := rules.EvaluationContext{
				Volunteer: rules.VolunteerContext{AttendanceRate: tt.rate},
			}

			result, err := criterion.Evaluate(rule, ctx)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, result)
		})
	}
}

func TestAttendanceRateCriterion_OutOfRangeThresholdIsConfigurationError(t *testing.T) {
	for _, threshold := range []float64{-1, 101} {
		criterion := &AttendanceRateCriterion{}
		rule := rules.AutoAcceptRule{ID: "r1", Name: "broken", MinAttendanceRate: &threshold}

		result, err := criterion.Evaluate(rule, rules.EvaluationContext{})
		require.Error(t, err)
		assert.True(t, rules.IsConfigurationError(err))
		assert.Equal(t, NotSatisfied, result)
	}
}
