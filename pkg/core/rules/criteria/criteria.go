package criteria

import (
	"fmt"

	"github.com/barkingside-hub/autoconfirm/pkg/core/rules"
)

// Result is the outcome of evaluating a single criterion.
//
// NotApplicable means the rule does not populate this criterion; it neither
// satisfies nor fails the rule and is excluded from the AND/OR fold.
type Result int

const (
	NotApplicable Result = iota
	Satisfied
	NotSatisfied
)

// Criterion evaluates one of a rule's optional criteria against an
// evaluation context. Implementations are pure functions of (rule, context).
//
// Evaluate returns an error only when the rule's stored configuration is
// malformed (a *rules.ConfigurationError); a context that simply fails the
// threshold is NotSatisfied, not an error.
type Criterion interface {
	Name() string
	Evaluate(rule rules.AutoAcceptRule, ctx rules.EvaluationContext) (Result, error)
}

// All returns the full criterion set in its canonical order.
// Adding a new criterion means adding one evaluator file plus its test and
// registering it here; the combinator below is untouched.
func All() []Criterion {
	return []Criterion{
		&GradeCriterion{},
		&CompletedShiftsCriterion{},
		&AttendanceRateCriterion{},
		&AccountAgeCriterion{},
		&DaysInAdvanceCriterion{},
		&ExperienceCriterion{},
	}
}

// Match decides whether a rule's populated criteria are satisfied by the
// context, folding the applicable sub-results with the rule's combinator.
//
// A rule with zero applicable criteria matches unconditionally: such rules
// act as a blanket auto-accept for their scope and are intentional, not an
// error.
func Match(rule rules.AutoAcceptRule, ctx rules.EvaluationContext) (bool, error) {
	return MatchWith(All(), rule, ctx)
}

// MatchWith is Match with an explicit criterion set, used by tests and by
// callers that want to restrict or extend the evaluated criteria.
func MatchWith(criteria []Criterion, rule rules.AutoAcceptRule, ctx rules.EvaluationContext) (bool, error) {
	applicable := 0
	satisfied := 0

	for _, criterion := range criteria {
		result, err := criterion.Evaluate(rule, ctx)
		if err != nil {
			return false, err
		}
		if result == NotApplicable {
			continue
		}
		applicable++
		if result == Satisfied {
			satisfied++
		}
	}

	if applicable == 0 {
		return true, nil
	}

	switch rule.CriteriaLogic {
	case rules.LogicAnd:
		return satisfied == applicable, nil
	case rules.LogicOr:
		return satisfied > 0, nil
	default:
		return false, &rules.ConfigurationError{
			RuleID:   rule.ID,
			RuleName: rule.Name,
			Reason:   fmt.Sprintf("unknown criteria logic %q", string(rule.CriteriaLogic)),
		}
	}
}
