// Package override records user decisions to bypass a rule for one
// specific firing context. Records expire after a TTL, so an override
// granted for one chat response does not linger forever.
package override

import (
	"strings"
	"sync"
	"time"

	"github.com/arthur-debert/failsafe/pkg/errors"
	"github.com/arthur-debert/failsafe/pkg/logging"
	"github.com/arthur-debert/failsafe/pkg/types"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// DefaultTTL is how long an override suppresses a rule for its firing
// context before it expires.
const DefaultTTL = 30 * time.Minute

// RuleSource is the slice of the rule store the ledger needs: policy
// lookup and override bookkeeping. *rules.Store satisfies it.
type RuleSource interface {
	Get(id string) *types.Rule
	RecordOverride(id string) error
}

// Ledger is an append-only record of override decisions plus
// time-based expiry checks.
type Ledger struct {
	mu      sync.RWMutex
	records []types.OverrideRecord
	rules   RuleSource
	ttl     time.Duration
	logger  zerolog.Logger
	now     func() time.Time
}

// NewLedger creates a ledger backed by the given rule source
func NewLedger(rules RuleSource, ttl time.Duration) *Ledger {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Ledger{
		rules:  rules,
		ttl:    ttl,
		logger: logging.GetLogger("override.ledger"),
		now:    time.Now,
	}
}

// Request records an override for one rule firing. It fails when the
// rule is unknown, when the rule's policy forbids overrides, or when a
// required justification is missing. On success the rule's override
// count is bumped through the rule source.
func (l *Ledger) Request(ruleID, firingContext, justification, overriddenBy string) (types.OverrideRecord, error) {
	rule := l.rules.Get(ruleID)
	if rule == nil {
		return types.OverrideRecord{}, errors.Newf(errors.ErrNotFound, "rule not found: %s", ruleID)
	}
	if !rule.Override.Allowed {
		return types.OverrideRecord{}, errors.Newf(errors.ErrOverrideNotAllowed,
			"rule %s does not allow overrides", rule.Name)
	}
	if rule.Override.RequiresJustification && strings.TrimSpace(justification) == "" {
		return types.OverrideRecord{}, errors.Newf(errors.ErrJustificationRequired,
			"rule %s requires a justification to override", rule.Name)
	}

	if err := l.rules.RecordOverride(ruleID); err != nil {
		return types.OverrideRecord{}, err
	}

	record := types.OverrideRecord{
		ID:            uuid.NewString(),
		RuleID:        ruleID,
		FiringContext: firingContext,
		Justification: justification,
		OverriddenBy:  overriddenBy,
		Timestamp:     l.now(),
	}

	l.mu.Lock()
	l.records = append(l.records, record)
	l.mu.Unlock()

	l.logger.Info().
		Str("ruleId", ruleID).
		Str("context", firingContext).
		Str("by", overriddenBy).
		Msg("Override recorded")

	return record, nil
}

// IsOverridden reports whether a non-expired record exists for the
// exact (ruleID, firingContext) pair.
func (l *Ledger) IsOverridden(ruleID, firingContext string) bool {
	l.mu.RLock()
	defer l.mu.RUnlock()

	cutoff := l.now().Add(-l.ttl)
	for i := len(l.records) - 1; i >= 0; i-- {
		r := l.records[i]
		if r.RuleID == ruleID && r.FiringContext == firingContext {
			return r.Timestamp.After(cutoff)
		}
	}
	return false
}

// List returns records, optionally filtered by rule id. An empty
// ruleID returns everything, expired records included: the ledger is
// an audit trail, expiry only affects suppression.
func (l *Ledger) List(ruleID string) []types.OverrideRecord {
	l.mu.RLock()
	defer l.mu.RUnlock()

	if ruleID == "" {
		out := make([]types.OverrideRecord, len(l.records))
		copy(out, l.records)
		return out
	}

	var out []types.OverrideRecord
	for _, r := range l.records {
		if r.RuleID == ruleID {
			out = append(out, r)
		}
	}
	return out
}

// Snapshot returns all records for persistence
func (l *Ledger) Snapshot() []types.OverrideRecord {
	return l.List("")
}

// Restore appends persisted records without re-running policy checks;
// they were validated when first granted.
func (l *Ledger) Restore(records []types.OverrideRecord) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.records = append(l.records, records...)
}
