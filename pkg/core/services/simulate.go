package services

import (
	"context"
	"fmt"
	"time"

	"github.com/teambition/rrule-go"
	"go.uber.org/zap"

	"github.com/barkingside-hub/autoconfirm/pkg/core/engine"
	"github.com/barkingside-hub/autoconfirm/pkg/core/rules"
)

// SimulatedOccurrence is the decision for one occurrence of a recurring shift
type SimulatedOccurrence struct {
	StartTime     time.Time
	Decision      rules.Decision
	MatchedRuleID string
}

// SimulationResult is an administrator's preview of how the configured rules
// would treat a volunteer profile across a recurring shift series
type SimulationResult struct {
	Occurrences   []SimulatedOccurrence
	AutoConfirmed int
}

// SimulateRecurrence expands a recurrence rule into shift occurrences over
// the horizon and evaluates each one against the rule set for the given
// volunteer profile. It lets administrators see, before saving a rule, which
// occurrences of a weekly kitchen shift (say) a typical volunteer would be
// auto-confirmed for.
//
// The volunteer profile is held constant across occurrences; only the
// shift start time (and with it days-until-start) varies.
func SimulateRecurrence(
	ctx context.Context,
	source engine.RuleSource,
	logger *zap.Logger,
	recurrence string,
	shiftTypeID, location string,
	volunteer rules.VolunteerContext,
	now time.Time,
	horizonDays int,
) (*SimulationResult, error) {
	if horizonDays <= 0 {
		return nil, fmt.Errorf("simulation horizon must be positive, got %d days", horizonDays)
	}

	rule, err := rrule.StrToRRule(recurrence)
	if err != nil {
		return nil, fmt.Errorf("invalid recurrence rule: %w", err)
	}
	rule.DTStart(now)

	horizon := now.AddDate(0, 0, horizonDays)
	starts := rule.Between(now, horizon, true)

	logger.Debug("Simulating recurrence",
		zap.String("recurrence", recurrence),
		zap.String("shift_type_id", shiftTypeID),
		zap.Int("occurrences", len(starts)))

	eng := engine.New(source)
	result := &SimulationResult{Occurrences: make([]SimulatedOccurrence, 0, len(starts))}

	for _, start := range starts {
		ectx := rules.EvaluationContext{
			Shift: rules.ShiftContext{
				ShiftTypeID: shiftTypeID,
				Location:    location,
				StartTime:   start,
			},
			Volunteer: volunteer,
			Now:       now,
		}

		outcome, err := eng.Evaluate(ctx, ectx)
		if err != nil {
			return nil, fmt.Errorf("failed to evaluate occurrence at %s: %w", start.Format(time.RFC3339), err)
		}

		result.Occurrences = append(result.Occurrences, SimulatedOccurrence{
			StartTime:     start,
			Decision:      outcome.Decision,
			MatchedRuleID: outcome.MatchedRuleID,
		})
		if outcome.Decision == rules.DecisionAutoConfirm {
			result.AutoConfirmed++
		}
	}

	return result, nil
}
