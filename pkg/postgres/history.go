package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/barkingside-hub/autoconfirm/pkg/core/rules"
	"github.com/barkingside-hub/autoconfirm/pkg/db"
)

// GetVolunteer returns the volunteer record needed for an evaluation context
func (d *DB) GetVolunteer(ctx context.Context, volunteerID string) (db.Volunteer, error) {
	var v db.Volunteer
	var grade string

	err := d.pool.QueryRow(ctx, `
		SELECT id, name, email, grade, created_at
		FROM volunteer
		WHERE id = $1
	`, volunteerID).Scan(&v.ID, &v.Name, &v.Email, &grade, &v.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return db.Volunteer{}, fmt.Errorf("volunteer %s: %w", volunteerID, db.ErrNotFound)
	}
	if err != nil {
		return db.Volunteer{}, fmt.Errorf("failed to get volunteer %s: %w", volunteerID, err)
	}

	v.Grade = rules.Grade(grade)
	return v, nil
}

// VolunteerHistory computes the historical aggregates a rule evaluation
// needs. Attendance rate counts completed signups against completed plus
// no-show; a volunteer with no finished signups has a 0 attendance rate.
func (d *DB) VolunteerHistory(ctx context.Context, volunteerID string) (db.VolunteerHistory, error) {
	var completed, noShow int

	err := d.pool.QueryRow(ctx, `
		SELECT
			COUNT(*) FILTER (WHERE status = 'COMPLETED'),
			COUNT(*) FILTER (WHERE status = 'NO_SHOW')
		FROM signup
		WHERE volunteer_id = $1
	`, volunteerID).Scan(&completed, &noShow)
	if err != nil {
		return db.VolunteerHistory{}, fmt.Errorf("failed to query signup history for %s: %w", volunteerID, err)
	}

	history := db.VolunteerHistory{CompletedShifts: completed}
	if completed+noShow > 0 {
		history.AttendanceRate = float64(completed) / float64(completed+noShow) * 100
	}
	return history, nil
}

// HasShiftTypeExperience reports whether the volunteer has completed at
// least one prior signup for a shift of the given type
func (d *DB) HasShiftTypeExperience(ctx context.Context, volunteerID, shiftTypeID string) (bool, error) {
	var exists bool

	err := d.pool.QueryRow(ctx, `
		SELECT EXISTS (
			SELECT 1
			FROM signup s
			JOIN shift sh ON sh.id = s.shift_id
			WHERE s.volunteer_id = $1
			  AND sh.shift_type_id = $2
			  AND s.status = 'COMPLETED'
		)
	`, volunteerID, shiftTypeID).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to query shift type experience for %s: %w", volunteerID, err)
	}
	return exists, nil
}

// GetShift returns the shift record with the given id
func (d *DB) GetShift(ctx context.Context, shiftID string) (db.Shift, error) {
	var s db.Shift
	var location *string
	var start time.Time

	err := d.pool.QueryRow(ctx, `
		SELECT id, shift_type_id, location, start_time, capacity
		FROM shift
		WHERE id = $1
	`, shiftID).Scan(&s.ID, &s.ShiftTypeID, &location, &start, &s.Capacity)
	if errors.Is(err, pgx.ErrNoRows) {
		return db.Shift{}, fmt.Errorf("shift %s: %w", shiftID, db.ErrNotFound)
	}
	if err != nil {
		return db.Shift{}, fmt.Errorf("failed to get shift %s: %w", shiftID, err)
	}

	if location != nil {
		s.Location = *location
	}
	s.StartTime = start.UTC()
	return s, nil
}
