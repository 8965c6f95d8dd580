// Test Type: Unit Test
// Description: Tests for configuration loading and rule conversion

package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/arthur-debert/failsafe/pkg/config"
	"github.com/arthur-debert/failsafe/pkg/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "failsafe.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	// A missing user config falls back to embedded defaults
	cfg, err := config.LoadFrom(filepath.Join(t.TempDir(), "missing.toml"))
	require.NoError(t, err)

	assert.True(t, cfg.Validation.Enabled)
	assert.Equal(t, "full", cfg.Validation.Mode)
	assert.Equal(t, 3*time.Second, cfg.Validation.Timeout)
	assert.Equal(t, 30*time.Minute, cfg.Override.TTL)
	assert.Empty(t, cfg.Rules)
}

func TestLoad_UserFileOverrides(t *testing.T) {
	path := writeConfig(t, `
[validation]
enabled = false
timeout = "500ms"

[[rules]]
name = "Internal Hostname Leak"
pattern = 'corp\.internal'
patternType = "regex"
severity = "high"
response = "warn"
message = "No internal hostnames."
`)

	cfg, err := config.LoadFrom(path)
	require.NoError(t, err)

	assert.False(t, cfg.Validation.Enabled)
	assert.Equal(t, 500*time.Millisecond, cfg.Validation.Timeout)
	// Untouched keys keep their defaults
	assert.Equal(t, "full", cfg.Validation.Mode)
	require.Len(t, cfg.Rules, 1)
	assert.Equal(t, "Internal Hostname Leak", cfg.Rules[0].Name)
}

func TestLoad_CriticalRules(t *testing.T) {
	path := writeConfig(t, `
[validation]
mode = "minimal"
criticalRules = ["Hardcoded Credentials", "TODO Detection"]
`)

	cfg, err := config.LoadFrom(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"Hardcoded Credentials", "TODO Detection"},
		cfg.Validation.CriticalRules)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("FAILSAFE_VALIDATION_MODE", "minimal")

	cfg, err := config.LoadFrom(filepath.Join(t.TempDir(), "missing.toml"))
	require.NoError(t, err)
	assert.Equal(t, "minimal", cfg.Validation.Mode)
}

func TestRuleDrafts(t *testing.T) {
	t.Run("converts_valid_entries", func(t *testing.T) {
		cfg := &config.Config{Rules: []config.RuleConfig{
			{
				Name:        "Leak",
				Pattern:     `corp\.internal`,
				PatternType: "regex",
				Severity:    "high",
				Response:    "warn",
			},
		}}

		drafts, skipped := cfg.RuleDrafts()
		require.Len(t, drafts, 1)
		assert.Empty(t, skipped)
		assert.Equal(t, types.SeverityHigh, drafts[0].Severity)
		assert.Equal(t, types.PatternRegex, drafts[0].PatternType)
		assert.True(t, drafts[0].Enabled)
		assert.Equal(t, "config", drafts[0].CreatedBy)
	})

	t.Run("fills_sensible_defaults", func(t *testing.T) {
		cfg := &config.Config{Rules: []config.RuleConfig{
			{Name: "Terse", Pattern: "oops"},
		}}

		drafts, skipped := cfg.RuleDrafts()
		require.Len(t, drafts, 1)
		assert.Empty(t, skipped)
		assert.Equal(t, types.PatternKeyword, drafts[0].PatternType)
		assert.Equal(t, types.ResponseWarn, drafts[0].Response)
		assert.Equal(t, types.SeverityMedium, drafts[0].Severity)
	})

	t.Run("maps_legacy_severity_scale", func(t *testing.T) {
		cfg := &config.Config{Rules: []config.RuleConfig{
			{Name: "Legacy", Pattern: "x", Severity: "warning"},
		}}

		drafts, _ := cfg.RuleDrafts()
		require.Len(t, drafts, 1)
		assert.Equal(t, types.SeverityMedium, drafts[0].Severity)
	})

	t.Run("skips_invalid_entries", func(t *testing.T) {
		cfg := &config.Config{Rules: []config.RuleConfig{
			{Name: "No Pattern"},
			{Name: "Bad Response", Pattern: "x", Response: "explode"},
			{Name: "Fine", Pattern: "x"},
		}}

		drafts, skipped := cfg.RuleDrafts()
		assert.Len(t, drafts, 1)
		assert.Equal(t, []string{"No Pattern", "Bad Response"}, skipped)
	})
}
