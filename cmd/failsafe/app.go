package failsafe

import (
	"strings"
	"time"

	"github.com/arthur-debert/failsafe/pkg/config"
	"github.com/arthur-debert/failsafe/pkg/logging"
	"github.com/arthur-debert/failsafe/pkg/override"
	"github.com/arthur-debert/failsafe/pkg/paths"
	"github.com/arthur-debert/failsafe/pkg/pipeline"
	"github.com/arthur-debert/failsafe/pkg/rules"
	"github.com/arthur-debert/failsafe/pkg/store"
	"github.com/arthur-debert/failsafe/pkg/types"
)

// app wires the config, rule store, override ledger and pipeline for one
// command invocation. Commands construct it lazily in RunE so that a
// broken state file never prevents `failsafe help` from working.
type app struct {
	cfg      *config.Config
	store    *rules.Store
	ledger   *override.Ledger
	pipeline *pipeline.Pipeline
	state    *store.JSONStore
}

func newApp() (*app, error) {
	logger := logging.GetLogger("cmd.app")

	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	rs := rules.NewStoreWithDefaults()

	js := store.NewJSONStore(paths.StateFile())
	state, err := js.Load()
	if err != nil {
		return nil, err
	}
	rs.Restore(state.Rules)

	// Config-file rules are seeded after the persisted state so the
	// config file stays authoritative for their definition. Usage stats
	// are carried over from any persisted copy.
	drafts, skipped := cfg.RuleDrafts()
	for _, name := range skipped {
		logger.Warn().Str("rule", name).Msg("Skipping invalid rule from config file")
	}
	for _, draft := range drafts {
		rule := configRule(draft)
		if prev := rs.Get(rule.ID); prev != nil {
			rule.UsageStats = prev.UsageStats
			rule.CreatedAt = prev.CreatedAt
		}
		rs.Seed(rule)
	}

	ledger := override.NewLedger(rs, cfg.Override.TTL)
	ledger.Restore(state.Overrides)

	p := pipeline.New(rs, ledger)
	p.SetEnabled(cfg.Validation.Enabled)
	p.SetCriticalRules(cfg.Validation.CriticalRules)

	logger.Debug().
		Int("rules", len(rs.List())).
		Int("overrides", len(ledger.Snapshot())).
		Bool("enabled", cfg.Validation.Enabled).
		Msg("Application wired")

	return &app{
		cfg:      cfg,
		store:    rs,
		ledger:   ledger,
		pipeline: p,
		state:    js,
	}, nil
}

// configRule turns a config draft into a full rule with a deterministic
// id derived from the rule name, so the same config entry maps to the
// same rule across restarts instead of accumulating duplicates.
func configRule(draft types.RuleDraft) types.Rule {
	now := time.Now()
	rule := types.Rule{
		ID:          "config-" + slugify(draft.Name),
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
	return rule
}

func slugify(name string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(name) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == ' ', r == '-', r == '_':
			b.WriteRune('-')
		}
	}
	return strings.Trim(b.String(), "-")
}

// saveState snapshots the store and ledger to the state file. Called by
// every command that mutates rules, stats or overrides.
func (a *app) saveState() error {
	return a.state.Save(&store.State{
		SavedAt:   time.Now(),
		Rules:     a.store.Snapshot(),
		Overrides: a.ledger.Snapshot(),
	})
}
