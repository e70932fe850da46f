package rules

import (
	"errors"
	"fmt"
)

// ConfigurationError marks a rule whose stored configuration is malformed
// (invalid enum value, out-of-range threshold) despite validation at creation
// time. The engine treats the offending rule as non-matching and reports the
// error to the caller for logging; it never aborts the whole evaluation.
type ConfigurationError struct {
	RuleID   string
	RuleName string
	Reason   string
	Err      error
}

func (e *ConfigurationError) Error() string {
	msg := fmt.Sprintf("rule %q (%s) is misconfigured: %s", e.RuleName, e.RuleID, e.Reason)
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *ConfigurationError) Unwrap() error {
	return e.Err
}

// IsConfigurationError reports whether err is (or wraps) a ConfigurationError
func IsConfigurationError(err error) bool {
	var ce *ConfigurationError
	return errors.As(err, &ce)
}
