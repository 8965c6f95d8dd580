// Test Type: Unit Test
// Description: Tests for the validation pipeline - ordering, composition,
// override handling and the error surface

package pipeline_test

import (
	"context"
	"strings"
	"testing"

	"github.com/arthur-debert/failsafe/pkg/override"
	"github.com/arthur-debert/failsafe/pkg/pipeline"
	"github.com/arthur-debert/failsafe/pkg/rules"
	"github.com/arthur-debert/failsafe/pkg/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func addRule(t *testing.T, store *rules.Store, d types.RuleDraft) types.Rule {
	t.Helper()
	rule, err := store.Add(d)
	require.NoError(t, err)
	return rule
}

func warnDraft(name, pattern, message string) types.RuleDraft {
	return types.RuleDraft{
		Name:        name,
		Pattern:     pattern,
		PatternType: types.PatternKeyword,
		Severity:    types.SeverityMedium,
		Enabled:     true,
		Message:     message,
		Response:    types.ResponseWarn,
		Override:    types.OverridePolicy{Allowed: true},
	}
}

func TestRun_NoRulesEnabled(t *testing.T) {
	store := rules.NewStore()
	p := pipeline.New(store, nil)

	res := p.Run(context.Background(), "anything", "ctx", pipeline.Options{})

	assert.Equal(t, "anything", res.OriginalText)
	assert.Equal(t, "anything", res.FinalText)
	assert.False(t, res.AppliedChanges)
	assert.Empty(t, res.ChangeLog)
	assert.False(t, res.Timestamp.IsZero())
}

func TestRun_DisabledRulesNeverFire(t *testing.T) {
	store := rules.NewStore()
	rule := addRule(t, store, warnDraft("Disabled Rule", "match", ""))
	require.NoError(t, store.SetEnabled(rule.ID, false))

	p := pipeline.New(store, nil)
	res := p.Run(context.Background(), "this will match", "ctx", pipeline.Options{})

	assert.False(t, res.AppliedChanges)
	assert.Empty(t, res.ChangeLog)
	// Disabled rules produce no usage-stat updates either
	assert.Zero(t, store.Get(rule.ID).UsageStats.Triggers)
}

func TestRun_BlockRedaction(t *testing.T) {
	store := rules.NewStore()
	addRule(t, store, types.RuleDraft{
		Name:        "Hardcoded Credentials",
		Pattern:     `password\s*=`,
		PatternType: types.PatternRegex,
		Severity:    types.SeverityCritical,
		Enabled:     true,
		Response:    types.ResponseBlock,
		Description: "Credential material in generated content",
	})

	p := pipeline.New(store, nil)
	res := p.Run(context.Background(), "password = 'abc123'", "ctx", pipeline.Options{})

	assert.True(t, res.AppliedChanges)
	require.Len(t, res.ChangeLog, 1)
	assert.Equal(t, "Blocked content based on rule: Hardcoded Credentials", res.ChangeLog[0])
	assert.Contains(t, res.FinalText, "Hardcoded Credentials")
	assert.NotContains(t, res.FinalText, "abc123")
}

func TestRun_WarnAppendsMessage(t *testing.T) {
	store := rules.NewStore()
	addRule(t, store, warnDraft("TODO Detection", "TODO", "Resolve before ship"))

	p := pipeline.New(store, nil)
	res := p.Run(context.Background(), "// TODO fix this", "ctx", pipeline.Options{})

	assert.True(t, res.AppliedChanges)
	assert.True(t, strings.HasPrefix(res.FinalText, "// TODO fix this"))
	assert.Contains(t, res.FinalText, "Resolve before ship")
	require.Len(t, res.ChangeLog, 1)
}

func TestRun_OrderingAndComposition(t *testing.T) {
	store := rules.NewStore()
	addRule(t, store, warnDraft("First Rule", "shared", "first message"))
	addRule(t, store, warnDraft("Second Rule", "shared", "second message"))

	p := pipeline.New(store, nil)
	res := p.Run(context.Background(), "shared trigger text", "ctx", pipeline.Options{Mode: pipeline.ModeFull})

	require.Len(t, res.ChangeLog, 2)
	assert.Equal(t, "Applied warning based on rule: First Rule", res.ChangeLog[0])
	assert.Equal(t, "Applied warning based on rule: Second Rule", res.ChangeLog[1])

	// The second rule ran against the first rule's output, so both
	// messages appear, first one first
	firstIdx := strings.Index(res.FinalText, "first message")
	secondIdx := strings.Index(res.FinalText, "second message")
	require.GreaterOrEqual(t, firstIdx, 0)
	require.GreaterOrEqual(t, secondIdx, 0)
	assert.Less(t, firstIdx, secondIdx)
}

func TestRun_BlockThenContinue(t *testing.T) {
	store := rules.NewStore()
	addRule(t, store, types.RuleDraft{
		Name:        "Blocker",
		Pattern:     "secret",
		PatternType: types.PatternKeyword,
		Severity:    types.SeverityCritical,
		Enabled:     true,
		Response:    types.ResponseBlock,
	})
	// Matches the redaction notice, not the original text
	addRule(t, store, warnDraft("Notice Watcher", "blocked by failsafe", "saw the notice"))

	p := pipeline.New(store, nil)
	res := p.Run(context.Background(), "the secret plan", "ctx", pipeline.Options{})

	// Later rules run against the redacted text
	require.Len(t, res.ChangeLog, 2)
	assert.Contains(t, res.FinalText, "saw the notice")
	assert.NotContains(t, res.FinalText, "secret plan")
}

func TestRun_OverriddenFiringCountsButDoesNotMutate(t *testing.T) {
	store := rules.NewStore()
	rule := addRule(t, store, warnDraft("Overridable", "match", "should not appear"))
	ledger := override.NewLedger(store, 0)

	p := pipeline.New(store, ledger)

	// First run fires normally
	res := p.Run(context.Background(), "will match", "chat-1", pipeline.Options{})
	require.Len(t, res.ChangeLog, 1)
	assert.Equal(t, 1, store.Get(rule.ID).UsageStats.Triggers)

	_, err := ledger.Request(rule.ID, "chat-1", "", "dev")
	require.NoError(t, err)

	// Same context: firing still counts, action suppressed
	res = p.Run(context.Background(), "will match", "chat-1", pipeline.Options{})
	assert.Empty(t, res.ChangeLog)
	assert.False(t, res.AppliedChanges)
	assert.Equal(t, "will match", res.FinalText)
	assert.Equal(t, 2, store.Get(rule.ID).UsageStats.Triggers)
	assert.Equal(t, 1, store.Get(rule.ID).UsageStats.Overrides)

	// Different context is not suppressed
	res = p.Run(context.Background(), "will match", "chat-2", pipeline.Options{})
	require.Len(t, res.ChangeLog, 1)
}

func TestRun_InvalidPatternIsWarningNotAbort(t *testing.T) {
	store := rules.NewStore()
	addRule(t, store, types.RuleDraft{
		Name:        "Broken Regex",
		Pattern:     "([unclosed",
		PatternType: types.PatternRegex,
		Severity:    types.SeverityLow,
		Enabled:     true,
		Response:    types.ResponseWarn,
	})
	addRule(t, store, warnDraft("Healthy Rule", "match", "still ran"))

	p := pipeline.New(store, nil)
	res := p.Run(context.Background(), "this will match", "ctx", pipeline.Options{})

	// The broken rule is skipped for the run, the rest still evaluate
	require.Len(t, res.Warnings, 1)
	assert.Contains(t, res.Warnings[0], "Broken Regex")
	require.Len(t, res.ChangeLog, 1)
	assert.Contains(t, res.FinalText, "still ran")
}

func TestRun_SkipValidation(t *testing.T) {
	store := rules.NewStore()
	rule := addRule(t, store, warnDraft("Any Rule", "match", ""))

	p := pipeline.New(store, nil)
	res := p.Run(context.Background(), "will match", "ctx", pipeline.Options{SkipValidation: true})

	assert.Equal(t, "will match", res.FinalText)
	assert.False(t, res.AppliedChanges)
	assert.Zero(t, store.Get(rule.ID).UsageStats.Triggers)
}

func TestRun_GlobalDisable(t *testing.T) {
	store := rules.NewStore()
	addRule(t, store, warnDraft("Any Rule", "match", ""))

	p := pipeline.New(store, nil)
	p.SetEnabled(false)

	res := p.Run(context.Background(), "will match", "ctx", pipeline.Options{})
	assert.False(t, res.AppliedChanges)
	assert.Empty(t, res.ChangeLog)
}

func TestRun_MinimalMode(t *testing.T) {
	store := rules.NewStoreWithDefaults()
	p := pipeline.New(store, nil)

	// Fires "Vague Offer Detection" under full mode only: the rule is
	// not on the critical allow-list
	text := "Let me know if you need anything else!"

	full := p.Run(context.Background(), text, "ctx", pipeline.Options{Mode: pipeline.ModeFull})
	assert.NotEmpty(t, full.ChangeLog)

	minimal := p.Run(context.Background(), text, "ctx", pipeline.Options{Mode: pipeline.ModeMinimal})
	assert.Empty(t, minimal.ChangeLog)

	// Critical rules still fire in minimal mode
	critical := p.Run(context.Background(), `password = "hunter2"`, "ctx",
		pipeline.Options{Mode: pipeline.ModeCritical})
	assert.NotEmpty(t, critical.ChangeLog)
}

func TestSetCriticalRules_ReplacesAllowList(t *testing.T) {
	store := rules.NewStoreWithDefaults()
	p := pipeline.New(store, nil)
	p.SetCriticalRules([]string{"TODO Detection"})

	// The configured rule now fires in minimal mode
	res := p.Run(context.Background(), "a TODO remains", "ctx",
		pipeline.Options{Mode: pipeline.ModeMinimal})
	assert.NotEmpty(t, res.ChangeLog)

	// The built-in allow-list no longer applies
	res = p.Run(context.Background(), `password = "hunter2"`, "ctx",
		pipeline.Options{Mode: pipeline.ModeMinimal})
	assert.Empty(t, res.ChangeLog)

	// An empty list keeps the current allow-list instead of clearing it
	p.SetCriticalRules(nil)
	res = p.Run(context.Background(), "a TODO remains", "ctx",
		pipeline.Options{Mode: pipeline.ModeMinimal})
	assert.NotEmpty(t, res.ChangeLog)
}

func TestRun_IdempotentWhenNothingFires(t *testing.T) {
	store := rules.NewStoreWithDefaults()
	p := pipeline.New(store, nil)

	res := p.Run(context.Background(), "a perfectly ordinary sentence", "ctx", pipeline.Options{})

	assert.Equal(t, res.OriginalText, res.FinalText)
	assert.False(t, res.AppliedChanges)
	assert.Empty(t, res.ChangeLog)
}
