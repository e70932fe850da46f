package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/barkingside-hub/autoconfirm/pkg/core/services"
)

// LintRulesCmd creates the lintRules command
func LintRulesCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "lintRules",
		Short: "Validate all configured rules and report warnings",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			result, err := services.LintRules(app.Ctx, app.RuleStore, app.Logger)
			if err != nil {
				return err
			}

			fmt.Printf("\nChecked %d rules\n\n", result.RulesChecked)

			if len(result.Findings) == 0 {
				fmt.Println("✓ No problems found")
				fmt.Println()
				return nil
			}

			for _, finding := range result.Findings {
				marker := "⚠️ "
				if finding.Fatal {
					marker = "✗"
				}
				fmt.Printf("  %s %s: %s\n", marker, finding.RuleName, finding.Message)
			}
			fmt.Println()

			if result.HasErrors() {
				return fmt.Errorf("rule lint found errors: offending rules will be skipped at evaluation time")
			}
			return nil
		},
	}
}
