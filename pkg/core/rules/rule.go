package rules

import "time"

// CriteriaLogic is the boolean combinator applied across a rule's populated criteria
type CriteriaLogic string

const (
	LogicAnd CriteriaLogic = "AND"
	LogicOr  CriteriaLogic = "OR"
)

// LocationAll is the wildcard location. A rule with an empty location or
// LocationAll applies to shifts at any location.
const LocationAll = "ALL"

// Decision is the outcome of evaluating a signup against the configured rules
type Decision string

const (
	DecisionAutoConfirm  Decision = "AUTO_CONFIRM"
	DecisionLeavePending Decision = "LEAVE_PENDING"
)

// AutoAcceptRule is a configured policy that, when matched, causes a signup
// to be confirmed without manual admin review.
//
// All threshold fields are pointers: nil means the criterion is not populated
// and imposes no constraint. A rule with no populated criteria at all matches
// unconditionally within its scope (blanket accept).
type AutoAcceptRule struct {
	ID          string `json:"id" yaml:"id"`
	Name        string `json:"name" yaml:"name" validate:"required,max=100"`
	Description string `json:"description,omitempty" yaml:"description,omitempty"`
	Enabled     bool   `json:"enabled" yaml:"enabled"`

	// Priority orders evaluation: higher evaluates first. Ties are broken by
	// creation order so repeated evaluations are deterministic.
	Priority int `json:"priority" yaml:"priority" validate:"min=0"`

	// Global rules apply to every shift type and must not name one.
	Global      bool   `json:"global" yaml:"global"`
	ShiftTypeID string `json:"shiftTypeId,omitempty" yaml:"shiftTypeId,omitempty"`

	// Location scopes the rule to shifts at one location; empty or "ALL"
	// means any location.
	Location string `json:"location,omitempty" yaml:"location,omitempty"`

	MinVolunteerGrade          Grade    `json:"minVolunteerGrade,omitempty" yaml:"minVolunteerGrade,omitempty"`
	MinCompletedShifts         *int     `json:"minCompletedShifts,omitempty" yaml:"minCompletedShifts,omitempty" validate:"omitempty,min=0"`
	MinAttendanceRate          *float64 `json:"minAttendanceRate,omitempty" yaml:"minAttendanceRate,omitempty" validate:"omitempty,min=0,max=100"`
	MinAccountAgeDays          *int     `json:"minAccountAgeDays,omitempty" yaml:"minAccountAgeDays,omitempty" validate:"omitempty,min=0"`
	MaxDaysInAdvance           *int     `json:"maxDaysInAdvance,omitempty" yaml:"maxDaysInAdvance,omitempty" validate:"omitempty,min=0"`
	RequireShiftTypeExperience bool     `json:"requireShiftTypeExperience" yaml:"requireShiftTypeExperience"`

	CriteriaLogic CriteriaLogic `json:"criteriaLogic" yaml:"criteriaLogic" validate:"required,oneof=AND OR"`

	// StopOnMatch halts evaluation of lower-priority rules when this rule matches
	StopOnMatch bool `json:"stopOnMatch" yaml:"stopOnMatch"`

	CreatedAt time.Time `json:"createdAt,omitempty" yaml:"createdAt,omitempty"`
}

// AppliesTo reports whether this rule is in scope for a shift with the given
// type and location. Scope is independent of the rule's criteria: an
// out-of-scope rule never matches regardless of how permissive its criteria are.
func (r AutoAcceptRule) AppliesTo(shiftTypeID, location string) bool {
	if !r.Global && r.ShiftTypeID != shiftTypeID {
		return false
	}
	if r.Location != "" && r.Location != LocationAll && r.Location != location {
		return false
	}
	return true
}

// HasCriteria reports whether any optional criterion is populated on the rule
func (r AutoAcceptRule) HasCriteria() bool {
	return r.MinVolunteerGrade.IsSet() ||
		r.MinCompletedShifts != nil ||
		r.MinAttendanceRate != nil ||
		r.MinAccountAgeDays != nil ||
		r.MaxDaysInAdvance != nil ||
		r.RequireShiftTypeExperience
}
