package types

import "time"

// OverrideRecord is a user decision to bypass one rule for one firing context.
// Scope is per firing context: overriding a rule for one response does not
// suppress it for the next.
type OverrideRecord struct {
	ID            string    `json:"id"`
	RuleID        string    `json:"ruleId"`
	FiringContext string    `json:"firingContext"`
	Justification string    `json:"justification,omitempty"`
	OverriddenBy  string    `json:"overriddenBy"`
	Timestamp     time.Time `json:"timestamp"`
}
