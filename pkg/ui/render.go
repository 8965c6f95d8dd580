// Package ui renders validation results for terminals, plain text and
// JSON consumers, picking the format from the output's capabilities.
package ui

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/arthur-debert/failsafe/pkg/types"
	"github.com/arthur-debert/failsafe/pkg/ui/styles"
)

// RenderResult writes a validation result to w in the given format.
// FormatAuto must be resolved by the caller first; it falls back to
// plain text here.
func RenderResult(w io.Writer, res types.ValidationResult, format Format) error {
	switch format {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(res)
	case FormatTerminal:
		_, err := io.WriteString(w, renderTerminal(res))
		return err
	default:
		_, err := io.WriteString(w, renderText(res))
		return err
	}
}

func renderTerminal(res types.ValidationResult) string {
	var b strings.Builder

	b.WriteString(res.FinalText)
	b.WriteString("\n")

	if len(res.ChangeLog) > 0 {
		b.WriteString("\n")
		b.WriteString(styles.GetStyle("Header").Render("Changes applied"))
		b.WriteString("\n")
		for _, entry := range res.ChangeLog {
			style := styles.GetStyle("Suggestion")
			if strings.HasPrefix(entry, "Blocked") {
				style = styles.GetStyle("Blocked")
			} else if strings.HasPrefix(entry, "Applied warning") {
				style = styles.GetStyle("Warning")
			}
			fmt.Fprintf(&b, "  %s\n", style.Render(entry))
		}
	}

	for _, warning := range res.Warnings {
		fmt.Fprintf(&b, "%s\n", styles.GetStyle("Warning").Render("warning: "+warning))
	}
	for _, errMsg := range res.Errors {
		fmt.Fprintf(&b, "%s\n", styles.GetStyle("Error").Render("error: "+errMsg))
	}

	if !res.AppliedChanges && len(res.Warnings) == 0 && len(res.Errors) == 0 {
		b.WriteString(styles.GetStyle("Muted").Render("No rules fired."))
		b.WriteString("\n")
	}

	return b.String()
}

func renderText(res types.ValidationResult) string {
	var b strings.Builder

	b.WriteString(res.FinalText)
	b.WriteString("\n")

	if len(res.ChangeLog) > 0 {
		b.WriteString("\nChanges applied:\n")
		for _, entry := range res.ChangeLog {
			fmt.Fprintf(&b, "  - %s\n", entry)
		}
	}
	for _, warning := range res.Warnings {
		fmt.Fprintf(&b, "warning: %s\n", warning)
	}
	for _, errMsg := range res.Errors {
		fmt.Fprintf(&b, "error: %s\n", errMsg)
	}

	return b.String()
}
