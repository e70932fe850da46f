package services

import (
	"context"
	"fmt"
	"os"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/barkingside-hub/autoconfirm/pkg/core/rules"
	"github.com/barkingside-hub/autoconfirm/pkg/db"
)

// RuleFinding is one validation error or warning against a configured rule
type RuleFinding struct {
	RuleID   string
	RuleName string
	Message  string
	Fatal    bool
}

// LintResult summarises a batch validation pass over the rule set
type LintResult struct {
	RulesChecked int
	Findings     []RuleFinding
}

// HasErrors reports whether any finding is fatal (the rule would be skipped
// at evaluation time)
func (r *LintResult) HasErrors() bool {
	for _, f := range r.Findings {
		if f.Fatal {
			return true
		}
	}
	return false
}

// LintRules re-runs the authoritative validation over every stored rule and
// collects warnings, notably the blanket-accept case of a rule with no
// populated criteria. Intended for operators: rules that fail validation
// here would be silently skipped (and logged) during live evaluation.
func LintRules(ctx context.Context, store db.RuleStore, logger *zap.Logger) (*LintResult, error) {
	ruleSet, err := store.ListRules(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list rules: %w", err)
	}

	result := &LintResult{RulesChecked: len(ruleSet)}

	for i := range ruleSet {
		rule := ruleSet[i]

		if err := rules.Validate(&rule); err != nil {
			result.Findings = append(result.Findings, RuleFinding{
				RuleID:   rule.ID,
				RuleName: rule.Name,
				Message:  err.Error(),
				Fatal:    true,
			})
			continue
		}

		for _, warning := range rules.Lint(&rule) {
			result.Findings = append(result.Findings, RuleFinding{
				RuleID:   rule.ID,
				RuleName: rule.Name,
				Message:  warning,
			})
		}
	}

	logger.Info("Rule lint completed",
		zap.Int("rules_checked", result.RulesChecked),
		zap.Int("findings", len(result.Findings)))

	return result, nil
}

// rulesFile is the YAML layout for offline rule sets
type rulesFile struct {
	Rules []rules.AutoAcceptRule `yaml:"rules"`
}

// LoadRulesFile reads a YAML rule set for the offline CLI mode. File order
// becomes the creation order used to break priority ties.
func LoadRulesFile(path string) ([]rules.AutoAcceptRule, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read rules file: %w", err)
	}

	var file rulesFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse rules file: %w", err)
	}

	return file.Rules, nil
}
