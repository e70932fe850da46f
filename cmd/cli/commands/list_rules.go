package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

// ListRulesCmd creates the listRules command
func ListRulesCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "listRules",
		Short: "List all configured auto-accept rules in evaluation order",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ruleSet, err := app.RuleStore.ListRules(app.Ctx)
			if err != nil {
				return fmt.Errorf("failed to list rules: %w", err)
			}

			fmt.Printf("\nFound %d rules:\n\n", len(ruleSet))
			for _, r := range ruleSet {
				status := "enabled"
				if !r.Enabled {
					status = "disabled"
				}
				scope := r.ShiftTypeID
				if r.Global {
					scope = "all shift types"
				}
				fmt.Printf("- [%3d] %s (%s) - %s - %s", r.Priority, r.Name, r.ID, status, scope)
				if r.Location != "" {
					fmt.Printf(" @ %s", r.Location)
				}
				if r.StopOnMatch {
					fmt.Printf(" [stop on match]")
				}
				fmt.Println()
			}
			fmt.Println()

			return nil
		},
	}
}
