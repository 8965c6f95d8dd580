package rules

import (
	"sync"
	"time"

	"github.com/arthur-debert/failsafe/pkg/errors"
	"github.com/arthur-debert/failsafe/pkg/logging"
	"github.com/arthur-debert/failsafe/pkg/types"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// Store holds the rule set, keyed by id, in insertion order.
// All mutations go through the store's mutex, a single-writer discipline
// that keeps usage-stat updates atomic across concurrent pipeline runs.
type Store struct {
	mu     sync.RWMutex
	rules  map[string]*types.Rule
	order  []string
	logger zerolog.Logger
}

// NewStore creates an empty store
func NewStore() *Store {
	return &Store{
		rules:  make(map[string]*types.Rule),
		order:  nil,
		logger: logging.GetLogger("rules.store"),
	}
}

// NewStoreWithDefaults creates a store seeded with the built-in catalog
func NewStoreWithDefaults() *Store {
	s := NewStore()
	for _, r := range DefaultRules() {
		s.Seed(r)
	}
	return s
}

// Seed inserts a fully formed rule, keeping its pre-assigned id.
// Used for the built-in catalog, config-defined rules and restoring
// persisted state: seeding an existing id replaces the rule in place
// without disturbing evaluation order.
func (s *Store) Seed(rule types.Rule) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.rules[rule.ID]; exists {
		// Restoring over a builtin keeps the persisted copy
		r := rule
		s.rules[rule.ID] = &r
		return
	}
	r := rule
	s.rules[rule.ID] = &r
	s.order = append(s.order, rule.ID)
}

// Add assigns an id, timestamps and zeroed usage stats to the draft
// and inserts it at the end of the evaluation order. Names may repeat;
// only id collisions are disallowed, and ids are store-generated.
func (s *Store) Add(draft types.RuleDraft) (types.Rule, error) {
	if draft.Pattern == "" {
		return types.Rule{}, errors.New(errors.ErrRuleInvalid, "rule has empty pattern")
	}
	if draft.PatternType != types.PatternRegex && draft.PatternType != types.PatternKeyword {
		return types.Rule{}, errors.Newf(errors.ErrRuleInvalid, "unknown pattern type: %s", draft.PatternType)
	}
	if !draft.Response.IsValid() {
		return types.Rule{}, errors.Newf(errors.ErrRuleInvalid, "unknown response action: %s", draft.Response)
	}

	now := time.Now()
	rule := types.Rule{
		ID:          uuid.NewString(),
		Name:        draft.Name,
		Pattern:     draft.Pattern,
		PatternType: draft.PatternType,
		Purpose:     draft.Purpose,
		Severity:    draft.Severity,
		Enabled:     draft.Enabled,
		Message:     draft.Message,
		Response:    draft.Response,
		Override:    draft.Override,
		Description: draft.Description,
		CreatedAt:   now,
		UpdatedAt:   now,
		CreatedBy:   draft.CreatedBy,
	}

	s.mu.Lock()
	s.rules[rule.ID] = &rule
	s.order = append(s.order, rule.ID)
	s.mu.Unlock()

	s.logger.Debug().
		Str("ruleId", rule.ID).
		Str("name", rule.Name).
		Msg("Rule added")

	return rule, nil
}

// Update merges non-nil patch fields into the rule and bumps UpdatedAt
func (s *Store) Update(id string, patch types.RulePatch) (types.Rule, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rule, ok := s.rules[id]
	if !ok {
		return types.Rule{}, errors.Newf(errors.ErrNotFound, "rule not found: %s", id)
	}

	if patch.Name != nil {
		rule.Name = *patch.Name
	}
	if patch.Pattern != nil {
		rule.Pattern = *patch.Pattern
	}
	if patch.PatternType != nil {
		rule.PatternType = *patch.PatternType
	}
	if patch.Purpose != nil {
		rule.Purpose = *patch.Purpose
	}
	if patch.Severity != nil {
		rule.Severity = *patch.Severity
	}
	if patch.Enabled != nil {
		rule.Enabled = *patch.Enabled
	}
	if patch.Message != nil {
		rule.Message = *patch.Message
	}
	if patch.Response != nil {
		rule.Response = *patch.Response
	}
	if patch.Override != nil {
		rule.Override = *patch.Override
	}
	if patch.Description != nil {
		rule.Description = *patch.Description
	}
	rule.UpdatedAt = time.Now()

	return *rule, nil
}

// Remove deletes the rule. A second call for the same id fails.
func (s *Store) Remove(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.rules[id]; !ok {
		return errors.Newf(errors.ErrNotFound, "rule not found: %s", id)
	}
	delete(s.rules, id)
	for i, oid := range s.order {
		if oid == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	return nil
}

// SetEnabled toggles a rule on or off
func (s *Store) SetEnabled(id string, enabled bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	rule, ok := s.rules[id]
	if !ok {
		return errors.Newf(errors.ErrNotFound, "rule not found: %s", id)
	}
	rule.Enabled = enabled
	rule.UpdatedAt = time.Now()
	return nil
}

// Get returns a copy of the rule, or nil if unknown
func (s *Store) Get(id string) *types.Rule {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rule, ok := s.rules[id]
	if !ok {
		return nil
	}
	r := *rule
	return &r
}

// FindByName returns the first rule with the given name, or nil.
// Names are not unique; this is a convenience for the CLI surface.
func (s *Store) FindByName(name string) *types.Rule {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, id := range s.order {
		if s.rules[id].Name == name {
			r := *s.rules[id]
			return &r
		}
	}
	return nil
}

// List returns copies of all rules in insertion order
func (s *Store) List() []types.Rule {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]types.Rule, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, *s.rules[id])
	}
	return out
}

// ListEnabled returns copies of enabled rules, same relative order
func (s *Store) ListEnabled() []types.Rule {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []types.Rule
	for _, id := range s.order {
		if s.rules[id].Enabled {
			out = append(out, *s.rules[id])
		}
	}
	return out
}

// RecordFiring increments the trigger count and stamps LastTriggered
func (s *Store) RecordFiring(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	rule, ok := s.rules[id]
	if !ok {
		return errors.Newf(errors.ErrNotFound, "rule not found: %s", id)
	}
	now := time.Now()
	rule.UsageStats.Triggers++
	rule.UsageStats.LastTriggered = &now
	return nil
}

// RecordOverride increments the override count. Callers must record the
// firing first so the triggers >= overrides invariant holds.
func (s *Store) RecordOverride(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	rule, ok := s.rules[id]
	if !ok {
		return errors.Newf(errors.ErrNotFound, "rule not found: %s", id)
	}
	if rule.UsageStats.Overrides >= rule.UsageStats.Triggers {
		return errors.Newf(errors.ErrInvalidInput,
			"rule %s has an override recorded for each of its %d firing(s); it must fire again before another override",
			id, rule.UsageStats.Triggers)
	}
	rule.UsageStats.Overrides++
	return nil
}

// Snapshot returns all rules for persistence, insertion order preserved
func (s *Store) Snapshot() []types.Rule {
	return s.List()
}

// Restore replaces matching rules with their persisted copies and appends
// unknown ones, so user rules and usage stats survive restarts while the
// built-in catalog keeps its seeded order.
func (s *Store) Restore(rules []types.Rule) {
	for _, r := range rules {
		s.Seed(r)
	}
}
