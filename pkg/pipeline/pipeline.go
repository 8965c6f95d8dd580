// Package pipeline orchestrates a validation run: it walks the enabled
// rules in store order, matches each against the current text, applies
// the fired rule's action, and accumulates a change log, all bounded
// by a per-run timeout.
//
// The pipeline never returns an error for ordinary rule failures. A
// malformed rule becomes a warning, an unexpected panic becomes an
// inline failure banner, and a timeout returns whatever partial work
// was done. The caller always gets something displayable.
package pipeline

import (
	"context"
	"time"

	"github.com/arthur-debert/failsafe/pkg/actions"
	"github.com/arthur-debert/failsafe/pkg/errors"
	"github.com/arthur-debert/failsafe/pkg/logging"
	"github.com/arthur-debert/failsafe/pkg/override"
	"github.com/arthur-debert/failsafe/pkg/rules"
	"github.com/arthur-debert/failsafe/pkg/types"
	"github.com/rs/zerolog"
)

// Mode selects the rule subset for a run
type Mode string

const (
	// ModeFull evaluates all enabled rules in store order
	ModeFull Mode = "full"

	// ModeMinimal evaluates only the critical allow-list, for
	// latency-sensitive callers
	ModeMinimal Mode = "minimal"

	// ModeCritical is an alias surfaces use for ModeMinimal
	ModeCritical Mode = "critical"
)

// DefaultTimeout bounds a run when the caller does not set one
const DefaultTimeout = 3 * time.Second

// Options configures a single run
type Options struct {
	Mode           Mode
	Timeout        time.Duration
	SkipValidation bool
}

// Pipeline evaluates rules against text. Construct one per process or
// per test and pass it explicitly; there is no shared global instance.
type Pipeline struct {
	store    *rules.Store
	ledger   *override.Ledger
	matcher  *rules.Matcher
	enabled  bool
	critical map[string]bool
	logger   zerolog.Logger

	// stepDelay slows each rule evaluation, timeout tests only
	stepDelay time.Duration
}

// New creates a pipeline over the given store and ledger.
// The ledger may be nil, in which case no firing is ever overridden.
func New(store *rules.Store, ledger *override.Ledger) *Pipeline {
	critical := make(map[string]bool, len(rules.CriticalRuleNames))
	for name := range rules.CriticalRuleNames {
		critical[name] = true
	}
	return &Pipeline{
		store:    store,
		ledger:   ledger,
		matcher:  rules.NewMatcher(),
		enabled:  true,
		critical: critical,
		logger:   logging.GetLogger("pipeline"),
	}
}

// SetCriticalRules replaces the allow-list used by the minimal and
// critical modes. An empty list keeps the built-in allow-list.
func (p *Pipeline) SetCriticalRules(names []string) {
	if len(names) == 0 {
		return
	}
	critical := make(map[string]bool, len(names))
	for _, name := range names {
		critical[name] = true
	}
	p.critical = critical
}

// SetEnabled flips the global validation switch
func (p *Pipeline) SetEnabled(enabled bool) {
	p.enabled = enabled
}

// Enabled reports the global validation switch
func (p *Pipeline) Enabled() bool {
	return p.enabled
}

// Run validates text against the selected rule subset and returns the
// transformed text plus the ordered change log. firingContext is the
// opaque correlation key override records are scoped to.
func (p *Pipeline) Run(ctx context.Context, text, firingContext string, opts Options) (result types.ValidationResult) {
	result = types.ValidationResult{
		OriginalText: text,
		FinalText:    text,
		ChangeLog:    []string{},
	}

	// The failure path is deliberately conservative: an escaped panic
	// becomes an inline banner so a reviewer is alerted in the text
	// itself, never a silent partial result.
	defer func() {
		if r := recover(); r != nil {
			p.logger.Error().Interface("panic", r).Msg("Validation run failed")
			result.FinalText = text + "\n\n🚨 FailSafe validation failed; content was not checked. Review manually."
			result.AppliedChanges = false
			result.Errors = append(result.Errors,
				errors.Newf(errors.ErrPipelineFailure, "validation failed: %v", r).Error())
			result.Timestamp = time.Now()
		}
	}()

	if !p.enabled || opts.SkipValidation {
		result.Timestamp = time.Now()
		return result
	}

	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	selected := p.selectRules(opts.Mode)
	current := text

	for i, rule := range selected {
		if ctx.Err() != nil {
			result.TimedOut = true
			result.Warnings = append(result.Warnings,
				errors.Newf(errors.ErrTimeout,
					"validation timed out after %s, %d of %d rules evaluated",
					timeout, i, len(selected)).Error())
			break
		}

		if p.stepDelay > 0 {
			time.Sleep(p.stepDelay)
		}

		match, err := p.matcher.Match(rule, current)
		if err != nil {
			// A malformed pattern skips the rule for this run only;
			// the store entry remains usable.
			if errors.IsErrorCode(err, errors.ErrInvalidPattern) {
				result.Warnings = append(result.Warnings, err.Error())
			} else {
				result.Errors = append(result.Errors, err.Error())
			}
			continue
		}
		if !match.Fired {
			continue
		}

		// Firings count even when the action is suppressed
		if err := p.store.RecordFiring(rule.ID); err != nil {
			p.logger.Warn().Err(err).Str("rule", rule.Name).Msg("Failed to record firing")
		}

		if p.ledger != nil && p.ledger.IsOverridden(rule.ID, firingContext) {
			p.logger.Debug().
				Str("rule", rule.Name).
				Str("context", firingContext).
				Msg("Rule fired but is overridden, skipping action")
			continue
		}

		applied, err := actions.Apply(rule, current)
		if err != nil {
			result.Errors = append(result.Errors, err.Error())
			continue
		}

		p.logger.Debug().
			Str("rule", rule.Name).
			Str("response", string(rule.Response)).
			Int("spans", len(match.Spans)).
			Msg("Rule fired")

		// Transformations compose left to right: later rules see this
		// rule's output, block redaction included.
		current = applied.Text
		result.ChangeLog = append(result.ChangeLog, applied.LogEntry)
	}

	result.FinalText = current
	result.AppliedChanges = current != text || len(result.ChangeLog) > 0
	result.Timestamp = time.Now()

	p.logger.Info().
		Int("rules", len(selected)).
		Int("changes", len(result.ChangeLog)).
		Bool("timedOut", result.TimedOut).
		Msg("Validation run complete")

	return result
}

// selectRules picks the enabled subset for the requested mode, store
// order preserved.
func (p *Pipeline) selectRules(mode Mode) []types.Rule {
	enabled := p.store.ListEnabled()
	if mode == ModeFull || mode == "" {
		return enabled
	}

	var out []types.Rule
	for _, r := range enabled {
		if p.critical[r.Name] {
			out = append(out, r)
		}
	}
	return out
}
