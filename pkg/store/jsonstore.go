// Package store persists rule and override state as JSON on disk.
//
// This is the single persistence port the core depends on: the rule
// store and the override ledger stay in memory, and callers snapshot
// them here on mutation and restore them at startup. The file format
// is an implementation detail, not a contract.
package store

import (
	"encoding/json"
	"os"
	"path/filepath"
	"time"

	"github.com/arthur-debert/failsafe/pkg/errors"
	"github.com/arthur-debert/failsafe/pkg/logging"
	"github.com/arthur-debert/failsafe/pkg/types"
	"github.com/rs/zerolog"
)

// State is the on-disk snapshot of everything failsafe persists
type State struct {
	SavedAt   time.Time              `json:"savedAt"`
	Rules     []types.Rule           `json:"rules"`
	Overrides []types.OverrideRecord `json:"overrides"`
}

// JSONStore reads and writes the state file
type JSONStore struct {
	path   string
	logger zerolog.Logger
}

// NewJSONStore creates a store for the given file path
func NewJSONStore(path string) *JSONStore {
	return &JSONStore{
		path:   path,
		logger: logging.GetLogger("store.json"),
	}
}

// Load reads the persisted state. A missing file is not an error: it
// returns an empty state, the normal first-run case.
func (s *JSONStore) Load() (*State, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return &State{}, nil
		}
		return nil, errors.Wrapf(err, errors.ErrStoreLoad, "failed to read state from %s", s.path)
	}

	var state State
	if err := json.Unmarshal(data, &state); err != nil {
		return nil, errors.Wrapf(err, errors.ErrStoreLoad, "failed to parse state from %s", s.path)
	}

	s.logger.Debug().
		Int("rules", len(state.Rules)).
		Int("overrides", len(state.Overrides)).
		Msg("State loaded")

	return &state, nil
}

// Save writes the state atomically: temp file plus rename, so a crash
// mid-write never leaves a truncated state file behind.
func (s *JSONStore) Save(state *State) error {
	state.SavedAt = time.Now()

	data, err := json.MarshalIndent(state, "", "  ")
	if err != nil {
		return errors.Wrap(err, errors.ErrStoreSave, "failed to encode state")
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return errors.Wrapf(err, errors.ErrStoreSave, "failed to create state dir %s", dir)
	}

	tmp, err := os.CreateTemp(dir, ".state-*.json")
	if err != nil {
		return errors.Wrap(err, errors.ErrStoreSave, "failed to create temp state file")
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return errors.Wrap(err, errors.ErrStoreSave, "failed to write state")
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return errors.Wrap(err, errors.ErrStoreSave, "failed to close state file")
	}

	if err := os.Rename(tmpName, s.path); err != nil {
		_ = os.Remove(tmpName)
		return errors.Wrapf(err, errors.ErrStoreSave, "failed to move state into place at %s", s.path)
	}

	s.logger.Debug().
		Int("rules", len(state.Rules)).
		Int("overrides", len(state.Overrides)).
		Msg("State saved")

	return nil
}
