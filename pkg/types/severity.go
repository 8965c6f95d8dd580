package types

import "strings"

// Severity classifies how serious a rule firing is.
// The canonical order is low < medium < high < critical.
type Severity string

const (
	SeverityLow      Severity = "low"
	SeverityMedium   Severity = "medium"
	SeverityHigh     Severity = "high"
	SeverityCritical Severity = "critical"
)

var severityRank = map[Severity]int{
	SeverityLow:      0,
	SeverityMedium:   1,
	SeverityHigh:     2,
	SeverityCritical: 3,
}

// Rank returns the position of the severity in the canonical order,
// or -1 for an unknown severity.
func (s Severity) Rank() int {
	if r, ok := severityRank[s]; ok {
		return r
	}
	return -1
}

// AtLeast reports whether s is at least as severe as other
func (s Severity) AtLeast(other Severity) bool {
	return s.Rank() >= other.Rank()
}

// ParseSeverity maps a severity string to the canonical scale.
// Some surfaces use the info/warning/error scale; those map to
// low/medium/high respectively.
func ParseSeverity(s string) (Severity, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "low", "info":
		return SeverityLow, true
	case "medium", "warning":
		return SeverityMedium, true
	case "high", "error":
		return SeverityHigh, true
	case "critical":
		return SeverityCritical, true
	}
	return "", false
}
