package db

import (
	"context"
	"errors"
	"time"

	"github.com/barkingside-hub/autoconfirm/pkg/core/rules"
)

// ErrNotFound is returned when a requested record does not exist
var ErrNotFound = errors.New("record not found")

// Shift is a scheduled shift a volunteer can sign up for
type Shift struct {
	ID          string
	ShiftTypeID string
	Location    string
	StartTime   time.Time
	Capacity    int
}

// Volunteer is the subset of a volunteer record the evaluation path needs
type Volunteer struct {
	ID        string
	Name      string
	Email     string
	Grade     rules.Grade
	CreatedAt time.Time
}

// VolunteerHistory holds the aggregates derived from a volunteer's past signups
type VolunteerHistory struct {
	CompletedShifts int
	AttendanceRate  float64
}

// RuleStore defines the persistence operations for auto-accept rules.
// CandidateRules is the evaluation-time read: enabled rules in scope for the
// shift, ordered by priority descending then creation order.
type RuleStore interface {
	CandidateRules(ctx context.Context, shiftTypeID, location string) ([]rules.AutoAcceptRule, error)
	ListRules(ctx context.Context) ([]rules.AutoAcceptRule, error)
	GetRule(ctx context.Context, id string) (rules.AutoAcceptRule, error)
	InsertRule(ctx context.Context, rule *rules.AutoAcceptRule) error
	UpdateRule(ctx context.Context, rule *rules.AutoAcceptRule) error
	DeleteRule(ctx context.Context, id string) error
}

// HistoryStore provides the volunteer-side inputs to an evaluation context
type HistoryStore interface {
	GetVolunteer(ctx context.Context, volunteerID string) (Volunteer, error)
	VolunteerHistory(ctx context.Context, volunteerID string) (VolunteerHistory, error)
	HasShiftTypeExperience(ctx context.Context, volunteerID, shiftTypeID string) (bool, error)
}

// ShiftStore provides shift records for evaluation by shift id
type ShiftStore interface {
	GetShift(ctx context.Context, shiftID string) (Shift, error)
}

// Database is the full persistence surface. The postgres implementation
// satisfies it; tests and the offline CLI mode use the in-memory rule store
// with explicitly supplied contexts instead.
type Database interface {
	RuleStore
	HistoryStore
	ShiftStore
}
