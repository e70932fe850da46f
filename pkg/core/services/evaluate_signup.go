package services

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/barkingside-hub/autoconfirm/pkg/core/engine"
	"github.com/barkingside-hub/autoconfirm/pkg/core/rules"
	"github.com/barkingside-hub/autoconfirm/pkg/db"
)

// SignupDecision is the outcome of evaluating one signup, together with the
// context it was evaluated against so callers can persist an audit trail.
type SignupDecision struct {
	Decision      rules.Decision
	MatchedRuleID string
	MatchedRules  []engine.MatchedRule
	RuleErrors    []engine.RuleError
	Context       rules.EvaluationContext
}

// EvaluateSignupStore defines the database operations needed to build an
// evaluation context from volunteer and shift ids
type EvaluateSignupStore interface {
	db.HistoryStore
	db.ShiftStore
}

// EvaluateSignup builds the evaluation context for a volunteer/shift pair
// and runs the rule engine over it.
//
// The decision only answers whether the signup should be fast-tracked; the
// caller owns the capacity check and must persist the final signup status
// and this decision in the same transaction. Any error from this function
// means no decision could be made safely and the signup must stay pending
// for manual review.
//
// now is injected rather than read from the wall clock so the derived
// account age and days-until-shift values are reproducible.
func EvaluateSignup(
	ctx context.Context,
	store EvaluateSignupStore,
	source engine.RuleSource,
	logger *zap.Logger,
	volunteerID, shiftID string,
	now time.Time,
) (*SignupDecision, error) {
	logger.Debug("Evaluating signup",
		zap.String("volunteer_id", volunteerID),
		zap.String("shift_id", shiftID))

	shift, err := store.GetShift(ctx, shiftID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch shift: %w", err)
	}

	volunteer, err := store.GetVolunteer(ctx, volunteerID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch volunteer: %w", err)
	}

	history, err := store.VolunteerHistory(ctx, volunteerID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch volunteer history: %w", err)
	}

	experienced, err := store.HasShiftTypeExperience(ctx, volunteerID, shift.ShiftTypeID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch shift type experience: %w", err)
	}

	ectx := rules.EvaluationContext{
		Shift: rules.ShiftContext{
			ShiftTypeID: shift.ShiftTypeID,
			Location:    shift.Location,
			StartTime:   shift.StartTime,
		},
		Volunteer: rules.VolunteerContext{
			Grade:                  volunteer.Grade,
			CompletedShifts:        history.CompletedShifts,
			AttendanceRate:         history.AttendanceRate,
			AccountAgeDays:         int(now.Sub(volunteer.CreatedAt).Hours() / 24),
			HasShiftTypeExperience: experienced,
		},
		Now: now,
	}

	return Decide(ctx, source, logger, ectx)
}

// Decide runs the rule engine over an already-built evaluation context.
// Rule configuration errors are logged here and carried in the result;
// they never abort the evaluation.
func Decide(
	ctx context.Context,
	source engine.RuleSource,
	logger *zap.Logger,
	ectx rules.EvaluationContext,
) (*SignupDecision, error) {
	outcome, err := engine.New(source).Evaluate(ctx, ectx)
	if err != nil {
		return nil, err
	}

	for _, ruleErr := range outcome.RuleErrors {
		logger.Warn("Skipped misconfigured rule during evaluation",
			zap.String("rule_id", ruleErr.RuleID),
			zap.String("rule_name", ruleErr.RuleName),
			zap.Error(ruleErr.Err))
	}

	logger.Info("Signup evaluated",
		zap.String("decision", string(outcome.Decision)),
		zap.String("matched_rule_id", outcome.MatchedRuleID),
		zap.Int("rules_evaluated", outcome.Evaluated),
		zap.Int("rules_matched", len(outcome.MatchedRules)))

	return &SignupDecision{
		Decision:      outcome.Decision,
		MatchedRuleID: outcome.MatchedRuleID,
		MatchedRules:  outcome.MatchedRules,
		RuleErrors:    outcome.RuleErrors,
		Context:       ectx,
	}, nil
}
