package rules

import "fmt"

// Grade is the ordinal trust tier assigned to a volunteer.
// Ordering is GREEN < YELLOW < PINK (PINK is most senior).
// The zero value GradeNone means "no grade" and is only valid as the
// absence of a minimum-grade requirement on a rule, never as a comparand.
type Grade string

const (
	GradeNone   Grade = ""
	GradeGreen  Grade = "GREEN"
	GradeYellow Grade = "YELLOW"
	GradePink   Grade = "PINK"
)

// gradeRanks maps each valid grade to its ordinal rank
var gradeRanks = map[Grade]int{
	GradeGreen:  1,
	GradeYellow: 2,
	GradePink:   3,
}

// ParseGrade converts a stored string into a Grade.
// "NONE" and the empty string both parse to GradeNone.
func ParseGrade(s string) (Grade, error) {
	switch Grade(s) {
	case GradeNone, Grade("NONE"):
		return GradeNone, nil
	case GradeGreen, GradeYellow, GradePink:
		return Grade(s), nil
	default:
		return GradeNone, fmt.Errorf("unknown volunteer grade %q", s)
	}
}

// Rank returns the grade's ordinal rank for comparisons.
// GradeNone has no rank and returns an error.
func (g Grade) Rank() (int, error) {
	rank, ok := gradeRanks[g]
	if !ok {
		return 0, fmt.Errorf("grade %q has no ordinal rank", string(g))
	}
	return rank, nil
}

// IsSet reports whether the grade carries a value
func (g Grade) IsSet() bool {
	return g != GradeNone
}

// AtLeast reports whether g meets or exceeds the minimum grade.
// Returns an error if either side has no ordinal rank.
func (g Grade) AtLeast(minimum Grade) (bool, error) {
	gRank, err := g.Rank()
	if err != nil {
		return false, err
	}
	minRank, err := minimum.Rank()
	if err != nil {
		return false, err
	}
	return gRank >= minRank, nil
}
