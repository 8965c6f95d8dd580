// Package types defines the core types used throughout failsafe.
// This includes the Rule model with its pattern, severity and response
// semantics, as well as ValidationResult, MatchResult and OverrideRecord.
package types
