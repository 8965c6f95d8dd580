package types

import "time"

// PatternType indicates how a rule's pattern is interpreted
type PatternType string

const (
	// PatternRegex treats the pattern as a case-insensitive regular expression
	PatternRegex PatternType = "regex"

	// PatternKeyword treats the pattern as a literal, case-insensitive substring
	PatternKeyword PatternType = "keyword"
)

// ResponseAction determines how the applier mutates text when a rule fires
type ResponseAction string

const (
	// ResponseBlock replaces the content with a redaction notice
	ResponseBlock ResponseAction = "block"

	// ResponseWarn appends a warning suffix, content is preserved
	ResponseWarn ResponseAction = "warn"

	// ResponseSuggest appends a suggestion suffix, content is preserved
	ResponseSuggest ResponseAction = "suggest"

	// ResponseDefault appends a neutral informational suffix
	ResponseDefault ResponseAction = "default"
)

// IsValid reports whether the action is one of the known kinds
func (a ResponseAction) IsValid() bool {
	switch a {
	case ResponseBlock, ResponseWarn, ResponseSuggest, ResponseDefault:
		return true
	}
	return false
}

// OverridePolicy governs whether a rule's firing may be bypassed by the user
type OverridePolicy struct {
	Allowed               bool `json:"allowed"`
	RequiresJustification bool `json:"requiresJustification"`
}

// UsageStats tracks how often a rule has fired and been overridden.
// Mutated only by the store, never by the matcher.
type UsageStats struct {
	Triggers      int        `json:"triggers"`
	Overrides     int        `json:"overrides"`
	LastTriggered *time.Time `json:"lastTriggered,omitempty"`
}

// Rule is a named, pattern-driven check with an associated action and severity
type Rule struct {
	ID          string         `json:"id"`
	Name        string         `json:"name"`
	Pattern     string         `json:"pattern"`
	PatternType PatternType    `json:"patternType"`
	Purpose     string         `json:"purpose,omitempty"`
	Severity    Severity       `json:"severity"`
	Enabled     bool           `json:"enabled"`
	Message     string         `json:"message,omitempty"`
	Response    ResponseAction `json:"response"`
	Override    OverridePolicy `json:"override"`
	Description string         `json:"description,omitempty"`
	UsageStats  UsageStats     `json:"usageStats"`
	CreatedAt   time.Time      `json:"createdAt"`
	UpdatedAt   time.Time      `json:"updatedAt"`
	CreatedBy   string         `json:"createdBy,omitempty"`
}

// RuleDraft carries the caller-supplied fields for a new rule.
// The store assigns ID, timestamps and zeroed usage stats.
type RuleDraft struct {
	Name        string         `json:"name"`
	Pattern     string         `json:"pattern"`
	PatternType PatternType    `json:"patternType"`
	Purpose     string         `json:"purpose,omitempty"`
	Severity    Severity       `json:"severity"`
	Enabled     bool           `json:"enabled"`
	Message     string         `json:"message,omitempty"`
	Response    ResponseAction `json:"response"`
	Override    OverridePolicy `json:"override"`
	Description string         `json:"description,omitempty"`
	CreatedBy   string         `json:"createdBy,omitempty"`
}

// RulePatch carries partial updates for an existing rule.
// Nil fields are left untouched.
type RulePatch struct {
	Name        *string         `json:"name,omitempty"`
	Pattern     *string         `json:"pattern,omitempty"`
	PatternType *PatternType    `json:"patternType,omitempty"`
	Purpose     *string         `json:"purpose,omitempty"`
	Severity    *Severity       `json:"severity,omitempty"`
	Enabled     *bool           `json:"enabled,omitempty"`
	Message     *string         `json:"message,omitempty"`
	Response    *ResponseAction `json:"response,omitempty"`
	Override    *OverridePolicy `json:"override,omitempty"`
	Description *string         `json:"description,omitempty"`
}
