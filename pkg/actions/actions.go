// Package actions applies a fired rule's response to text.
//
// Each response kind maps to a pure apply function in a lookup table.
// Appliers never mutate the rule and never persist anything; the
// pipeline owns store updates.
package actions

import (
	"fmt"

	"github.com/arthur-debert/failsafe/pkg/errors"
	"github.com/arthur-debert/failsafe/pkg/types"
)

// Result carries the transformed text and the change-log entry for one
// rule firing.
type Result struct {
	Text     string
	LogEntry string
}

type applyFunc func(rule types.Rule, current string) Result

var appliers = map[types.ResponseAction]applyFunc{
	types.ResponseBlock:   applyBlock,
	types.ResponseWarn:    applyWarn,
	types.ResponseSuggest: applySuggest,
	types.ResponseDefault: applyDefault,
}

// Apply transforms the current text according to the rule's response.
// The rule's Message, when present, is appended as an extra emphasized
// line regardless of action kind.
func Apply(rule types.Rule, current string) (Result, error) {
	fn, ok := appliers[rule.Response]
	if !ok {
		return Result{}, errors.Newf(errors.ErrRuleInvalid,
			"rule %s has unknown response action: %s", rule.Name, rule.Response)
	}

	res := fn(rule, current)
	if rule.Message != "" {
		res.Text += fmt.Sprintf("\n\n**%s**", rule.Message)
	}
	return res, nil
}

// applyBlock discards the offending content entirely and replaces it
// with a flagged notice naming the rule. The redaction is deliberate
// and auditable: nothing of the original survives in the output.
func applyBlock(rule types.Rule, _ string) Result {
	notice := fmt.Sprintf("🚫 Content blocked by FailSafe rule: %s", rule.Name)
	if rule.Description != "" {
		notice += fmt.Sprintf("\n\nReason: %s", rule.Description)
	}
	return Result{
		Text:     notice,
		LogEntry: fmt.Sprintf("Blocked content based on rule: %s", rule.Name),
	}
}

func applyWarn(rule types.Rule, current string) Result {
	return Result{
		Text: fmt.Sprintf("%s\n\n⚠️ Warning: content flagged by rule: %s",
			current, rule.Name),
		LogEntry: fmt.Sprintf("Applied warning based on rule: %s", rule.Name),
	}
}

func applySuggest(rule types.Rule, current string) Result {
	return Result{
		Text: fmt.Sprintf("%s\n\n💡 Suggestion: consider reviewing this against rule: %s",
			current, rule.Name),
		LogEntry: fmt.Sprintf("Applied suggestion based on rule: %s", rule.Name),
	}
}

func applyDefault(rule types.Rule, current string) Result {
	return Result{
		Text:     fmt.Sprintf("%s\n\nℹ️ Note: rule %s matched this content.", current, rule.Name),
		LogEntry: fmt.Sprintf("Applied default action based on rule: %s", rule.Name),
	}
}
