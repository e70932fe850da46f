package rules

import "time"

// ShiftContext carries the shift attributes a rule evaluation needs
type ShiftContext struct {
	ShiftTypeID string    `json:"shiftTypeId"`
	Location    string    `json:"location"`
	StartTime   time.Time `json:"startTime"`
}

// VolunteerContext carries the volunteer attributes a rule evaluation needs.
// The history-derived fields (completed shifts, attendance, experience) are
// computed by the caller before evaluation; the engine performs no IO.
type VolunteerContext struct {
	Grade                  Grade   `json:"grade"`
	CompletedShifts        int     `json:"completedShifts"`
	AttendanceRate         float64 `json:"attendanceRate"`
	AccountAgeDays         int     `json:"accountAgeDays"`
	HasShiftTypeExperience bool    `json:"hasExperienceWithShiftType"`
}

// EvaluationContext is the ephemeral input to one rule evaluation. It is
// constructed fresh per signup event and discarded once the decision is made.
//
// Now is the injected evaluation time. All time-dependent criteria derive
// from it rather than reading the wall clock, so evaluations are reproducible.
type EvaluationContext struct {
	Shift     ShiftContext
	Volunteer VolunteerContext
	Now       time.Time
}

// DaysUntilShiftStart returns the number of whole days between the evaluation
// time and the shift's start. A shift starting exactly N*24h from now is N
// days out. Shifts already started yield a negative count.
func (c EvaluationContext) DaysUntilShiftStart() int {
	hours := c.Shift.StartTime.Sub(c.Now).Hours()
	days := int(hours / 24)
	if hours < 0 && hours != float64(days)*24 {
		days--
	}
	return days
}
