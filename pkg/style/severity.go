// Package style renders rule listings for the terminal using pterm
// severity styling.
package style

import (
	"fmt"
	"strings"

	"github.com/arthur-debert/failsafe/pkg/types"
	"github.com/pterm/pterm"
)

// SeverityStyle returns the appropriate pterm style for a severity
func SeverityStyle(severity types.Severity) *pterm.Style {
	switch severity {
	case types.SeverityCritical:
		return pterm.NewStyle(pterm.BgRed, pterm.FgWhite, pterm.Bold)
	case types.SeverityHigh:
		return pterm.NewStyle(pterm.FgRed)
	case types.SeverityMedium:
		return pterm.NewStyle(pterm.FgYellow)
	case types.SeverityLow:
		return pterm.NewStyle(pterm.FgCyan)
	default:
		return pterm.NewStyle(pterm.FgGray)
	}
}

// enabledMarker is the leading glyph for a rule row
func enabledMarker(enabled bool) string {
	if enabled {
		return pterm.NewStyle(pterm.FgGreen).Sprint("●")
	}
	return pterm.NewStyle(pterm.FgGray).Sprint("○")
}

// RenderRuleRow renders a single rule line for the list view
func RenderRuleRow(rule types.Rule) string {
	severity := SeverityStyle(rule.Severity).Sprintf("%-8s", rule.Severity)
	name := fmt.Sprintf("%-40s", rule.Name)

	stats := ""
	if rule.UsageStats.Triggers > 0 {
		stats = fmt.Sprintf(" (fired %d", rule.UsageStats.Triggers)
		if rule.UsageStats.Overrides > 0 {
			stats += fmt.Sprintf(", overridden %d", rule.UsageStats.Overrides)
		}
		stats += ")"
	}

	return fmt.Sprintf("  %s %s %s %-8s %s%s",
		enabledMarker(rule.Enabled), severity, name, rule.Response, rule.ID, stats)
}

// RenderRuleList renders all rules, one row per rule, store order
func RenderRuleList(rules []types.Rule) string {
	var b strings.Builder
	for _, rule := range rules {
		b.WriteString(RenderRuleRow(rule))
		b.WriteString("\n")
	}
	return strings.TrimRight(b.String(), "\n")
}

// RenderRuleDetail renders the full view of one rule for `rules show`
func RenderRuleDetail(rule types.Rule) string {
	var b strings.Builder

	fmt.Fprintf(&b, "%s  %s\n", SeverityStyle(rule.Severity).Sprint(strings.ToUpper(string(rule.Severity))), rule.Name)
	fmt.Fprintf(&b, "  id:        %s\n", rule.ID)
	fmt.Fprintf(&b, "  pattern:   %s (%s)\n", rule.Pattern, rule.PatternType)
	fmt.Fprintf(&b, "  response:  %s\n", rule.Response)
	fmt.Fprintf(&b, "  enabled:   %t\n", rule.Enabled)
	if rule.Purpose != "" {
		fmt.Fprintf(&b, "  purpose:   %s\n", rule.Purpose)
	}
	if rule.Description != "" {
		fmt.Fprintf(&b, "  about:     %s\n", rule.Description)
	}
	if rule.Message != "" {
		fmt.Fprintf(&b, "  message:   %s\n", rule.Message)
	}
	fmt.Fprintf(&b, "  override:  allowed=%t justification=%t\n",
		rule.Override.Allowed, rule.Override.RequiresJustification)
	fmt.Fprintf(&b, "  stats:     triggers=%d overrides=%d\n",
		rule.UsageStats.Triggers, rule.UsageStats.Overrides)
	if rule.UsageStats.LastTriggered != nil {
		fmt.Fprintf(&b, "  last hit:  %s\n", rule.UsageStats.LastTriggered.Format("2006-01-02 15:04:05"))
	}

	return strings.TrimRight(b.String(), "\n")
}
