// Package config loads failsafe's configuration: embedded defaults,
// then the user config file, then FAILSAFE_* environment variables,
// each layer overriding the previous one.
package config

import (
	_ "embed"
	"errors"
	"os"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	fserrors "github.com/arthur-debert/failsafe/pkg/errors"
	"github.com/arthur-debert/failsafe/pkg/paths"
	"github.com/arthur-debert/failsafe/pkg/types"
)

//go:embed embedded/failsafe.toml
var defaultConfig []byte

// GetDefaultConfigContent returns the embedded default config file,
// used by the genconfig command as a starting point for users.
func GetDefaultConfigContent() string {
	return string(defaultConfig)
}

// rawBytesProvider implements koanf provider for raw bytes
type rawBytesProvider struct{ bytes []byte }

func (r *rawBytesProvider) ReadBytes() ([]byte, error) { return r.bytes, nil }
func (r *rawBytesProvider) Read() (map[string]interface{}, error) {
	return nil, errors.New("not implemented")
}

// Validation holds the pipeline-level settings
type Validation struct {
	Enabled bool          `koanf:"enabled" toml:"enabled"`
	Mode    string        `koanf:"mode" toml:"mode"`
	Timeout time.Duration `koanf:"timeout" toml:"timeout"`

	// CriticalRules replaces the built-in allow-list used by the
	// minimal and critical modes. Empty keeps the built-in list.
	CriticalRules []string `koanf:"criticalRules" toml:"criticalRules"`
}

// Override holds the ledger settings
type Override struct {
	TTL time.Duration `koanf:"ttl" toml:"ttl"`
}

// RuleConfig is one [[rules]] entry from the config file
type RuleConfig struct {
	Name        string `koanf:"name" toml:"name"`
	Pattern     string `koanf:"pattern" toml:"pattern"`
	PatternType string `koanf:"patternType" toml:"patternType"`
	Purpose     string `koanf:"purpose" toml:"purpose"`
	Severity    string `koanf:"severity" toml:"severity"`
	Response    string `koanf:"response" toml:"response"`
	Message     string `koanf:"message" toml:"message"`
	Description string `koanf:"description" toml:"description"`
	Enabled     *bool  `koanf:"enabled" toml:"enabled"`
}

// Config is the fully merged configuration
type Config struct {
	Validation Validation   `koanf:"validation" toml:"validation"`
	Override   Override     `koanf:"override" toml:"override"`
	Rules      []RuleConfig `koanf:"rules" toml:"rules"`
}

// Load merges defaults, the user config file and environment variables
func Load() (*Config, error) {
	return LoadFrom(paths.ConfigFile())
}

// LoadFrom is Load with an explicit user config path, for tests
func LoadFrom(userConfigPath string) (*Config, error) {
	k := koanf.New(".")

	// 1. Embedded defaults
	if err := k.Load(&rawBytesProvider{bytes: defaultConfig}, toml.Parser()); err != nil {
		return nil, fserrors.Wrap(err, fserrors.ErrConfigParse, "failed to load embedded defaults")
	}

	// 2. User config, if present
	if _, err := os.Stat(userConfigPath); err == nil {
		if err := k.Load(file.Provider(userConfigPath), toml.Parser()); err != nil {
			return nil, fserrors.Wrapf(err, fserrors.ErrConfigLoad,
				"failed to load config from %s", userConfigPath)
		}
	}

	// 3. Environment: FAILSAFE_VALIDATION_ENABLED -> validation.enabled
	err := k.Load(env.Provider("FAILSAFE_", ".", func(s string) string {
		return strings.ReplaceAll(strings.ToLower(strings.TrimPrefix(s, "FAILSAFE_")), "_", ".")
	}), nil)
	if err != nil {
		return nil, fserrors.Wrap(err, fserrors.ErrConfigLoad, "failed to load env vars")
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fserrors.Wrap(err, fserrors.ErrConfigParse, "failed to unmarshal configuration")
	}

	return &cfg, nil
}

// RuleDrafts converts the [[rules]] entries into store drafts.
// Invalid entries are skipped and reported, not fatal: one bad rule in
// a config file must not take validation down with it.
func (c *Config) RuleDrafts() (drafts []types.RuleDraft, skipped []string) {
	for _, rc := range c.Rules {
		severity, ok := types.ParseSeverity(rc.Severity)
		if !ok {
			severity = types.SeverityMedium
		}

		patternType := types.PatternType(rc.PatternType)
		if patternType == "" {
			patternType = types.PatternKeyword
		}

		response := types.ResponseAction(rc.Response)
		if response == "" {
			response = types.ResponseWarn
		}

		if rc.Pattern == "" || !response.IsValid() ||
			(patternType != types.PatternRegex && patternType != types.PatternKeyword) {
			skipped = append(skipped, rc.Name)
			continue
		}

		enabled := true
		if rc.Enabled != nil {
			enabled = *rc.Enabled
		}

		drafts = append(drafts, types.RuleDraft{
			Name:        rc.Name,
			Pattern:     rc.Pattern,
			PatternType: patternType,
			Purpose:     rc.Purpose,
			Severity:    severity,
			Enabled:     enabled,
			Message:     rc.Message,
			Response:    response,
			Override:    types.OverridePolicy{Allowed: true},
			Description: rc.Description,
			CreatedBy:   "config",
		})
	}
	return drafts, skipped
}
