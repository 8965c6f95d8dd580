package rules

import (
	"time"

	"github.com/arthur-debert/failsafe/pkg/types"
)

// Built-in rules carry stable slug ids so persisted stats and config
// toggles survive restarts and version upgrades.
const (
	RuleHardcodedCredentials = "builtin-hardcoded-credentials"
	RuleTODODetection        = "builtin-todo-detection"
	RuleVagueOffer           = "builtin-vague-offer"
	RuleFullVerification     = "builtin-full-verification"
	RuleAbsoluteClaim        = "builtin-absolute-claim"
	RuleImplementationClaim  = "builtin-implementation-claim"
	RuleMockData             = "builtin-mock-data"
	RuleAuditResults         = "builtin-audit-results"
)

// DefaultRules returns the built-in catalog in evaluation order.
// Order matters: redacting rules come first so later advisory rules
// run against already-redacted text.
func DefaultRules() []types.Rule {
	return []types.Rule{
		builtin(types.Rule{
			ID:          RuleHardcodedCredentials,
			Name:        "Hardcoded Credentials",
			Pattern:     `(password|secret|api[_-]?key|token)\s*[:=]\s*["']?[^\s"']+`,
			PatternType: types.PatternRegex,
			Purpose:     "security",
			Severity:    types.SeverityCritical,
			Response:    types.ResponseBlock,
			Override:    types.OverridePolicy{Allowed: false},
			Description: "Credentials or secrets embedded directly in generated content",
			Message:     "Remove the credential and load it from the environment or a secret store.",
		}),
		builtin(types.Rule{
			ID:          RuleFullVerification,
			Name:        "Full Verification Process Enforcement",
			Pattern:     `(all\s+tests?\s+pass(ed)?|fully\s+(tested|verified)|production[- ]ready)`,
			PatternType: types.PatternRegex,
			Purpose:     "quality",
			Severity:    types.SeverityHigh,
			Response:    types.ResponseWarn,
			Override:    types.OverridePolicy{Allowed: true, RequiresJustification: true},
			Description: "Claims of complete verification without evidence",
			Message:     "Verification claims require the actual test output to back them up.",
		}),
		builtin(types.Rule{
			ID:          RuleImplementationClaim,
			Name:        "Unverified Implementation Claim",
			Pattern:     `(i\s+have\s+(implemented|created|built|fixed)|is\s+now\s+(working|complete|done))`,
			PatternType: types.PatternRegex,
			Purpose:     "hallucination_detection",
			Severity:    types.SeverityMedium,
			Response:    types.ResponseWarn,
			Override:    types.OverridePolicy{Allowed: true},
			Description: "Completion claims that may not match the actual workspace state",
			Message:     "Confirm the change exists in the workspace before relying on this claim.",
		}),
		builtin(types.Rule{
			ID:          RuleMockData,
			Name:        "Mock Data Detection",
			Pattern:     `(mock|placeholder|dummy|lorem\s+ipsum|example\.com)`,
			PatternType: types.PatternRegex,
			Purpose:     "hallucination_detection",
			Severity:    types.SeverityMedium,
			Response:    types.ResponseSuggest,
			Override:    types.OverridePolicy{Allowed: true},
			Description: "Placeholder or mock data that may be presented as real",
			Message:     "Replace mock values with real data before shipping.",
		}),
		builtin(types.Rule{
			ID:          RuleAuditResults,
			Name:        "Fabricated Audit Results",
			Pattern:     `(audit\s+(passed|complete)|no\s+(issues|vulnerabilities)\s+found)`,
			PatternType: types.PatternRegex,
			Purpose:     "hallucination_detection",
			Severity:    types.SeverityHigh,
			Response:    types.ResponseWarn,
			Override:    types.OverridePolicy{Allowed: true, RequiresJustification: true},
			Description: "Audit or scan results asserted without a tool run to support them",
			Message:     "Attach the audit tool output, not just its conclusion.",
		}),
		builtin(types.Rule{
			ID:          RuleTODODetection,
			Name:        "TODO Detection",
			Pattern:     "TODO",
			PatternType: types.PatternKeyword,
			Purpose:     "quality",
			Severity:    types.SeverityLow,
			Response:    types.ResponseSuggest,
			Override:    types.OverridePolicy{Allowed: true},
			Description: "Unresolved TODO markers left in generated content",
			Message:     "Resolve or file the TODO before merging.",
		}),
		builtin(types.Rule{
			ID:          RuleVagueOffer,
			Name:        "Vague Offer Detection",
			Pattern:     `(let\s+me\s+know\s+if|feel\s+free\s+to|i\s+can\s+(also|help\s+with))`,
			PatternType: types.PatternRegex,
			Purpose:     "quality",
			Severity:    types.SeverityLow,
			Response:    types.ResponseDefault,
			Override:    types.OverridePolicy{Allowed: true},
			Description: "Filler offers that pad a response without adding content",
		}),
		builtin(types.Rule{
			ID:          RuleAbsoluteClaim,
			Name:        "Absolute Claim Detection",
			Pattern:     `(always|never|guaranteed|100%\s*(safe|secure|correct))`,
			PatternType: types.PatternRegex,
			Purpose:     "hallucination_detection",
			Severity:    types.SeverityLow,
			Response:    types.ResponseSuggest,
			Override:    types.OverridePolicy{Allowed: true},
			Description: "Absolute statements that are rarely true without qualification",
		}),
	}
}

// builtin fills in the audit fields shared by all catalog entries
func builtin(r types.Rule) types.Rule {
	r.Enabled = true
	r.CreatedBy = "failsafe"
	r.CreatedAt = time.Time{}
	r.UpdatedAt = time.Time{}
	return r
}

// CriticalRuleNames is the built-in allow-list for the minimal
// pipeline mode, used when config does not supply its own.
var CriticalRuleNames = map[string]bool{
	"Hardcoded Credentials":                 true,
	"Full Verification Process Enforcement": true,
	"Fabricated Audit Results":              true,
}
