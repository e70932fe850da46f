package engine

import (
	"context"
	"fmt"
	"sort"

	"github.com/barkingside-hub/autoconfirm/pkg/core/rules"
	"github.com/barkingside-hub/autoconfirm/pkg/core/rules/criteria"
)

// RuleSource provides the ordered, filtered view of candidate rules for a
// shift context. Implementations must return only enabled, in-scope rules,
// ordered by priority descending with creation order as the tie-break.
// The engine re-checks both properties defensively.
type RuleSource interface {
	CandidateRules(ctx context.Context, shiftTypeID, location string) ([]rules.AutoAcceptRule, error)
}

// RuleError records a rule that could not be evaluated because its stored
// configuration is malformed. The rule is treated as non-matching and
// evaluation continues; the caller decides how to log or alert.
type RuleError struct {
	RuleID   string
	RuleName string
	Err      error
}

// MatchedRule identifies a rule that matched during evaluation, retained for
// audit even when it is not the deciding rule.
type MatchedRule struct {
	RuleID   string
	RuleName string
	Priority int
}

// Outcome is the result of evaluating one signup against the rule set.
//
// The decision is first-match-wins: MatchedRuleID is the highest-priority
// matching rule even when stopOnMatch=false lets evaluation continue.
// MatchedRules lists every match seen, in evaluation order, for audit.
type Outcome struct {
	Decision      rules.Decision
	MatchedRuleID string
	MatchedRules  []MatchedRule
	RuleErrors    []RuleError

	// Evaluated is the number of candidate rules actually evaluated
	Evaluated int
}

// Engine decides whether a signup should be auto-confirmed. It is a pure,
// synchronous computation over a snapshot of the rule set: one read through
// the RuleSource, then a bounded loop of comparisons with no IO.
type Engine struct {
	source       RuleSource
	criterionSet []criteria.Criterion
}

// New creates an engine reading candidate rules from source
func New(source RuleSource) *Engine {
	return &Engine{
		source:       source,
		criterionSet: criteria.All(),
	}
}

// Evaluate produces the final decision for a signup event.
//
// A failure to retrieve candidate rules is returned as an error; callers
// must treat it as "cannot safely auto-confirm" and leave the signup
// pending. Configuration errors on individual rules never abort the run:
// the offending rule is skipped and reported in Outcome.RuleErrors.
// An empty or fully non-matching rule set is the valid exhausted state,
// not a failure, and yields LEAVE_PENDING.
func (e *Engine) Evaluate(ctx context.Context, ectx rules.EvaluationContext) (*Outcome, error) {
	candidates, err := e.source.CandidateRules(ctx, ectx.Shift.ShiftTypeID, ectx.Shift.Location)
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve candidate rules: %w", err)
	}

	// Snapshot ordering is re-applied here so the decision is deterministic
	// even if a source returns rules unordered. The stable sort preserves
	// the source's creation order within equal priorities.
	ordered := make([]rules.AutoAcceptRule, len(candidates))
	copy(ordered, candidates)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].Priority > ordered[j].Priority
	})

	outcome := &Outcome{
		Decision:     rules.DecisionLeavePending,
		MatchedRules: []MatchedRule{},
		RuleErrors:   []RuleError{},
	}

	for _, rule := range ordered {
		if !rule.Enabled || !rule.AppliesTo(ectx.Shift.ShiftTypeID, ectx.Shift.Location) {
			continue
		}

		// Creation-time validation is re-run defensively so a rule edited
		// outside the admin surface cannot slip a malformed value through.
		if err := rules.Validate(&rule); err != nil {
			outcome.RuleErrors = append(outcome.RuleErrors, RuleError{
				RuleID:   rule.ID,
				RuleName: rule.Name,
				Err: &rules.ConfigurationError{
					RuleID:   rule.ID,
					RuleName: rule.Name,
					Reason:   "stored rule failed validation",
					Err:      err,
				},
			})
			continue
		}

		outcome.Evaluated++

		matched, err := criteria.MatchWith(e.criterionSet, rule, ectx)
		if err != nil {
			outcome.RuleErrors = append(outcome.RuleErrors, RuleError{
				RuleID:   rule.ID,
				RuleName: rule.Name,
				Err:      err,
			})
			continue
		}
		if !matched {
			continue
		}

		outcome.MatchedRules = append(outcome.MatchedRules, MatchedRule{
			RuleID:   rule.ID,
			RuleName: rule.Name,
			Priority: rule.Priority,
		})

		// First match decides; later matches are recorded for audit only
		if outcome.Decision != rules.DecisionAutoConfirm {
			outcome.Decision = rules.DecisionAutoConfirm
			outcome.MatchedRuleID = rule.ID
		}

		if rule.StopOnMatch {
			break
		}
	}

	return outcome, nil
}
