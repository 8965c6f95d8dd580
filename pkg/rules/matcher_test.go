// Test Type: Unit Test
// Description: Tests for the rule matcher - regex and keyword semantics

package rules_test

import (
	"strings"
	"testing"

	"github.com/arthur-debert/failsafe/pkg/errors"
	"github.com/arthur-debert/failsafe/pkg/rules"
	"github.com/arthur-debert/failsafe/pkg/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func regexRule(pattern string) types.Rule {
	return types.Rule{
		Name:        "test-regex",
		Pattern:     pattern,
		PatternType: types.PatternRegex,
	}
}

func keywordRule(pattern string) types.Rule {
	return types.Rule{
		Name:        "test-keyword",
		Pattern:     pattern,
		PatternType: types.PatternKeyword,
	}
}

func TestMatcher_Regex(t *testing.T) {
	m := rules.NewMatcher()

	t.Run("case_insensitive", func(t *testing.T) {
		res, err := m.Match(regexRule(`password\s*=`), "PASSWORD = 'abc123'")
		require.NoError(t, err)
		assert.True(t, res.Fired)
		require.Len(t, res.Spans, 1)
		assert.Equal(t, 0, res.Spans[0].Start)
	})

	t.Run("global_scan_finds_all_matches", func(t *testing.T) {
		res, err := m.Match(regexRule(`\bfoo\b`), "foo bar foo baz FOO")
		require.NoError(t, err)
		assert.True(t, res.Fired)
		assert.Len(t, res.Spans, 3)
		// Left-to-right order
		assert.Less(t, res.Spans[0].Start, res.Spans[1].Start)
		assert.Less(t, res.Spans[1].Start, res.Spans[2].Start)
	})

	t.Run("no_match", func(t *testing.T) {
		res, err := m.Match(regexRule(`qux`), "foo bar")
		require.NoError(t, err)
		assert.False(t, res.Fired)
		assert.Empty(t, res.Spans)
	})

	t.Run("invalid_pattern", func(t *testing.T) {
		_, err := m.Match(regexRule(`([unclosed`), "anything")
		require.Error(t, err)
		assert.True(t, errors.IsErrorCode(err, errors.ErrInvalidPattern))
	})
}

func TestMatcher_Keyword(t *testing.T) {
	m := rules.NewMatcher()

	t.Run("case_insensitive_substring", func(t *testing.T) {
		inputs := []string{"// TODO fix this", "// todo fix this", "x=TODOS"}
		for _, text := range inputs {
			res, err := m.Match(keywordRule("TODO"), text)
			require.NoError(t, err)
			assert.True(t, res.Fired, "expected %q to match", text)
		}
	})

	t.Run("fired_matches_contains_semantics", func(t *testing.T) {
		rule := keywordRule("Secret")
		texts := []string{"no match here", "a SECRET value", "secrets", "se cret"}
		for _, text := range texts {
			res, err := m.Match(rule, text)
			require.NoError(t, err)
			want := strings.Contains(strings.ToLower(text), strings.ToLower(rule.Pattern))
			assert.Equal(t, want, res.Fired, "text %q", text)
		}
	})

	t.Run("all_occurrences_reported", func(t *testing.T) {
		res, err := m.Match(keywordRule("ab"), "ab AB xab")
		require.NoError(t, err)
		require.Len(t, res.Spans, 3)
		assert.Equal(t, types.Span{Start: 0, End: 2}, res.Spans[0])
		assert.Equal(t, types.Span{Start: 3, End: 5}, res.Spans[1])
		assert.Equal(t, types.Span{Start: 7, End: 9}, res.Spans[2])
	})
}

func TestMatcher_IsPure(t *testing.T) {
	m := rules.NewMatcher()
	rule := regexRule(`\bfoo\b`)
	text := "foo bar foo"

	first, err := m.Match(rule, text)
	require.NoError(t, err)
	second, err := m.Match(rule, text)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	// The matcher never touches usage stats
	assert.Zero(t, rule.UsageStats.Triggers)
}
