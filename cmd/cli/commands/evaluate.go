package commands

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/barkingside-hub/autoconfirm/pkg/core/rules"
	"github.com/barkingside-hub/autoconfirm/pkg/core/services"
)

// EvaluateCmd creates the evaluate command: a one-off decision for a
// volunteer profile against a shift, printed to stdout. Useful for checking
// how the configured rules treat a specific case without touching a signup.
func EvaluateCmd(app *AppContext) *cobra.Command {
	var (
		shiftTypeID string
		location    string
		startsIn    int
		grade       string
		completed   int
		attendance  float64
		accountAge  int
		experienced bool
	)

	cmd := &cobra.Command{
		Use:   "evaluate",
		Short: "Evaluate a volunteer profile against the configured rules",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			parsedGrade, err := rules.ParseGrade(grade)
			if err != nil {
				return err
			}

			now := time.Now().UTC()
			ectx := rules.EvaluationContext{
				Shift: rules.ShiftContext{
					ShiftTypeID: shiftTypeID,
					Location:    location,
					StartTime:   now.AddDate(0, 0, startsIn),
				},
				Volunteer: rules.VolunteerContext{
					Grade:                  parsedGrade,
					CompletedShifts:        completed,
					AttendanceRate:         attendance,
					AccountAgeDays:         accountAge,
					HasShiftTypeExperience: experienced,
				},
				Now: now,
			}

			decision, err := services.Decide(app.Ctx, app.RuleStore, app.Logger, ectx)
			if err != nil {
				return err
			}

			fmt.Printf("\nDecision: %s\n", decision.Decision)
			if decision.MatchedRuleID != "" {
				fmt.Printf("Deciding rule: %s\n", decision.MatchedRuleID)
			}
			if len(decision.MatchedRules) > 1 {
				fmt.Printf("All matching rules:\n")
				for _, m := range decision.MatchedRules {
					fmt.Printf("  - %s (%s, priority %d)\n", m.RuleName, m.RuleID, m.Priority)
				}
			}
			for _, re := range decision.RuleErrors {
				fmt.Printf("⚠️  Skipped misconfigured rule %s: %v\n", re.RuleName, re.Err)
			}
			fmt.Println()

			return nil
		},
	}

	cmd.Flags().StringVar(&shiftTypeID, "shift-type", "", "Shift type id (required)")
	cmd.Flags().StringVar(&location, "location", "", "Shift location")
	cmd.Flags().IntVar(&startsIn, "starts-in", 7, "Days until the shift starts")
	cmd.Flags().StringVar(&grade, "grade", "", "Volunteer grade (GREEN, YELLOW, PINK)")
	cmd.Flags().IntVar(&completed, "completed-shifts", 0, "Volunteer's completed shift count")
	cmd.Flags().Float64Var(&attendance, "attendance-rate", 0, "Volunteer's attendance rate percentage")
	cmd.Flags().IntVar(&accountAge, "account-age", 0, "Volunteer's account age in days")
	cmd.Flags().BoolVar(&experienced, "experienced", false, "Volunteer has completed this shift type before")
	cmd.MarkFlagRequired("shift-type")

	return cmd
}
