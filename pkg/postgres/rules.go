package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/barkingside-hub/autoconfirm/pkg/core/rules"
	"github.com/barkingside-hub/autoconfirm/pkg/db"
)

const ruleColumns = `
	id, name, description, enabled, priority, is_global, shift_type_id,
	location, min_volunteer_grade, min_completed_shifts, min_attendance_rate,
	min_account_age_days, max_days_in_advance, require_shift_type_experience,
	criteria_logic, stop_on_match, created_at
`

// CandidateRules returns enabled rules in scope for the shift, ordered by
// priority descending. Creation time (then id) breaks priority ties so
// repeated evaluations of the same inputs see the same order.
func (d *DB) CandidateRules(ctx context.Context, shiftTypeID, location string) ([]rules.AutoAcceptRule, error) {
	rows, err := d.pool.Query(ctx, `
		SELECT `+ruleColumns+`
		FROM auto_accept_rule
		WHERE enabled
		  AND (is_global OR shift_type_id = $1)
		  AND (location IS NULL OR location = '' OR location = 'ALL' OR location = $2)
		ORDER BY priority DESC, created_at ASC, id ASC
	`, shiftTypeID, location)
	if err != nil {
		return nil, fmt.Errorf("failed to query candidate rules: %w", err)
	}
	defer rows.Close()

	return scanRules(rows)
}

// ListRules returns every rule in creation order
func (d *DB) ListRules(ctx context.Context) ([]rules.AutoAcceptRule, error) {
	rows, err := d.pool.Query(ctx, `
		SELECT `+ruleColumns+`
		FROM auto_accept_rule
		ORDER BY created_at ASC, id ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query rules: %w", err)
	}
	defer rows.Close()

	return scanRules(rows)
}

// GetRule returns the rule with the given id
func (d *DB) GetRule(ctx context.Context, id string) (rules.AutoAcceptRule, error) {
	row := d.pool.QueryRow(ctx, `
		SELECT `+ruleColumns+`
		FROM auto_accept_rule
		WHERE id = $1
	`, id)

	rule, err := scanRule(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return rules.AutoAcceptRule{}, fmt.Errorf("rule %s: %w", id, db.ErrNotFound)
	}
	if err != nil {
		return rules.AutoAcceptRule{}, fmt.Errorf("failed to get rule %s: %w", id, err)
	}
	return rule, nil
}

// InsertRule validates and stores a new rule
func (d *DB) InsertRule(ctx context.Context, rule *rules.AutoAcceptRule) error {
	if err := rules.Validate(rule); err != nil {
		return err
	}

	if rule.ID == "" {
		rule.ID = uuid.New().String()
	}
	if rule.CreatedAt.IsZero() {
		rule.CreatedAt = time.Now().UTC()
	}

	_, err := d.pool.Exec(ctx, `
		INSERT INTO auto_accept_rule (`+ruleColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)
	`, ruleArgs(rule)...)
	if err != nil {
		return fmt.Errorf("failed to insert rule: %w", err)
	}
	return nil
}

// UpdateRule validates and replaces an existing rule. The stored creation
// time is kept so the rule's place in the tie-break order does not move.
func (d *DB) UpdateRule(ctx context.Context, rule *rules.AutoAcceptRule) error {
	if err := rules.Validate(rule); err != nil {
		return err
	}

	tag, err := d.pool.Exec(ctx, `
		UPDATE auto_accept_rule SET
			name = $2, description = $3, enabled = $4, priority = $5,
			is_global = $6, shift_type_id = $7, location = $8,
			min_volunteer_grade = $9, min_completed_shifts = $10,
			min_attendance_rate = $11, min_account_age_days = $12,
			max_days_in_advance = $13, require_shift_type_experience = $14,
			criteria_logic = $15, stop_on_match = $16
		WHERE id = $1
	`, rule.ID, rule.Name, rule.Description, rule.Enabled, rule.Priority,
		rule.Global, nullIfEmpty(rule.ShiftTypeID), nullIfEmpty(rule.Location),
		nullIfEmpty(string(rule.MinVolunteerGrade)), rule.MinCompletedShifts,
		rule.MinAttendanceRate, rule.MinAccountAgeDays, rule.MaxDaysInAdvance,
		rule.RequireShiftTypeExperience, string(rule.CriteriaLogic), rule.StopOnMatch)
	if err != nil {
		return fmt.Errorf("failed to update rule %s: %w", rule.ID, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("rule %s: %w", rule.ID, db.ErrNotFound)
	}
	return nil
}

// DeleteRule removes the rule with the given id
func (d *DB) DeleteRule(ctx context.Context, id string) error {
	tag, err := d.pool.Exec(ctx, `DELETE FROM auto_accept_rule WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete rule %s: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("rule %s: %w", id, db.ErrNotFound)
	}
	return nil
}

func ruleArgs(rule *rules.AutoAcceptRule) []any {
	return []any{
		rule.ID, rule.Name, rule.Description, rule.Enabled, rule.Priority,
		rule.Global, nullIfEmpty(rule.ShiftTypeID), nullIfEmpty(rule.Location),
		nullIfEmpty(string(rule.MinVolunteerGrade)), rule.MinCompletedShifts,
		rule.MinAttendanceRate, rule.MinAccountAgeDays, rule.MaxDaysInAdvance,
		rule.RequireShiftTypeExperience, string(rule.CriteriaLogic),
		rule.StopOnMatch, rule.CreatedAt,
	}
}

func scanRules(rows pgx.Rows) ([]rules.AutoAcceptRule, error) {
	var out []rules.AutoAcceptRule
	for rows.Next() {
		rule, err := scanRule(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan rule: %w", err)
		}
		out = append(out, rule)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rules: %w", err)
	}
	return out, nil
}

func scanRule(row pgx.Row) (rules.AutoAcceptRule, error) {
	var r rules.AutoAcceptRule
	var shiftTypeID, location, grade *string
	var logic string

	err := row.Scan(
		&r.ID, &r.Name, &r.Description, &r.Enabled, &r.Priority, &r.Global,
		&shiftTypeID, &location, &grade, &r.MinCompletedShifts,
		&r.MinAttendanceRate, &r.MinAccountAgeDays, &r.MaxDaysInAdvance,
		&r.RequireShiftTypeExperience, &logic, &r.StopOnMatch, &r.CreatedAt,
	)
	if err != nil {
		return rules.AutoAcceptRule{}, err
	}

	if shiftTypeID != nil {
		r.ShiftTypeID = *shiftTypeID
	}
	if location != nil {
		r.Location = *location
	}
	if grade != nil {
		r.MinVolunteerGrade = rules.Grade(*grade)
	}
	r.CriteriaLogic = rules.CriteriaLogic(logic)

	return r, nil
}

func nullIfEmpty(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
