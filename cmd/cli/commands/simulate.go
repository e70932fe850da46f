package commands

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/barkingside-hub/autoconfirm/pkg/core/rules"
	"github.com/barkingside-hub/autoconfirm/pkg/core/services"
)

// SimulateCmd creates the simulate command: a preview of how the rule set
// treats a recurring shift series for a given volunteer profile.
func SimulateCmd(app *AppContext) *cobra.Command {
	var (
		recurrence  string
		shiftTypeID string
		location    string
		grade       string
		completed   int
		attendance  float64
		accountAge  int
		experienced bool
		horizonDays int
	)

	cmd := &cobra.Command{
		Use:   "simulate",
		Short: "Preview decisions across a recurring shift series (e.g. FREQ=WEEKLY;BYDAY=SA)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			parsedGrade, err := rules.ParseGrade(grade)
			if err != nil {
				return err
			}

			if horizonDays == 0 {
				horizonDays = app.Cfg.SimulationHorizonDays
			}

			volunteer := rules.VolunteerContext{
				Grade:                  parsedGrade,
				CompletedShifts:        completed,
				AttendanceRate:         attendance,
				AccountAgeDays:         accountAge,
				HasShiftTypeExperience: experienced,
			}

			result, err := services.SimulateRecurrence(app.Ctx, app.RuleStore, app.Logger,
				recurrence, shiftTypeID, location, volunteer, time.Now().UTC(), horizonDays)
			if err != nil {
				return err
			}

			fmt.Printf("\n%d occurrences in the next %d days, %d auto-confirmed:\n\n",
				len(result.Occurrences), horizonDays, result.AutoConfirmed)
			for _, occ := range result.Occurrences {
				marker := " "
				if occ.Decision == rules.DecisionAutoConfirm {
					marker = "✓"
				}
				fmt.Printf("  %s %s  %s", marker, occ.StartTime.Format("2006-01-02 (Monday)"), occ.Decision)
				if occ.MatchedRuleID != "" {
					fmt.Printf("  via %s", occ.MatchedRuleID)
				}
				fmt.Println()
			}
			fmt.Println()

			return nil
		},
	}

	cmd.Flags().StringVar(&recurrence, "rrule", "", "Recurrence rule for shift occurrences (required)")
	cmd.Flags().StringVar(&shiftTypeID, "shift-type", "", "Shift type id (required)")
	cmd.Flags().StringVar(&location, "location", "", "Shift location")
	cmd.Flags().StringVar(&grade, "grade", "", "Volunteer grade (GREEN, YELLOW, PINK)")
	cmd.Flags().IntVar(&completed, "completed-shifts", 0, "Volunteer's completed shift count")
	cmd.Flags().Float64Var(&attendance, "attendance-rate", 0, "Volunteer's attendance rate percentage")
	cmd.Flags().IntVar(&accountAge, "account-age", 0, "Volunteer's account age in days")
	cmd.Flags().BoolVar(&experienced, "experienced", false, "Volunteer has completed this shift type before")
	cmd.Flags().IntVar(&horizonDays, "horizon", 0, "Days ahead to simulate (default from config)")
	cmd.MarkFlagRequired("rrule")
	cmd.MarkFlagRequired("shift-type")

	return cmd
}
