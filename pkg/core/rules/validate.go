package rules

import (
	"fmt"

	"github.com/go-playground/validator/v10"
)

var validate *validator.Validate

func init() {
	validate = validator.New()
}

// Validate checks a rule against the authoritative server-side invariants.
// It is used both when rules are created or updated through the admin surface
// and defensively inside the engine before a rule is evaluated, so a rule
// that slipped past creation-time validation is still caught.
func Validate(r *AutoAcceptRule) error {
	if err := validate.Struct(r); err != nil {
		return fmt.Errorf("rule validation failed: %w", err)
	}

	// Global rules apply to all shift types and must not name one
	if r.Global && r.ShiftTypeID != "" {
		return fmt.Errorf("rule %q: global rules must not reference a shift type", r.Name)
	}
	if !r.Global && r.ShiftTypeID == "" {
		return fmt.Errorf("rule %q: non-global rules must reference a shift type", r.Name)
	}

	if r.MinVolunteerGrade.IsSet() {
		if _, err := r.MinVolunteerGrade.Rank(); err != nil {
			return fmt.Errorf("rule %q: %w", r.Name, err)
		}
	}

	return nil
}

// Lint returns non-fatal warnings about a valid rule's configuration.
// Today the only warning is the blanket-accept case: a rule with no populated
// criteria matches every in-scope signup unconditionally, which is allowed
// but is worth surfacing to the administrator at creation time.
func Lint(r *AutoAcceptRule) []string {
	var warnings []string

	if !r.HasCriteria() {
		warnings = append(warnings,
			fmt.Sprintf("rule %q has no criteria and will auto-confirm every signup in its scope", r.Name))
	}

	if !r.Enabled {
		warnings = append(warnings, fmt.Sprintf("rule %q is disabled and will never be evaluated", r.Name))
	}

	return warnings
}
