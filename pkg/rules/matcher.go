package rules

import (
	"regexp"
	"strings"

	"github.com/arthur-debert/failsafe/pkg/errors"
	"github.com/arthur-debert/failsafe/pkg/logging"
	"github.com/arthur-debert/failsafe/pkg/types"
	"github.com/rs/zerolog"
)

// Matcher decides whether a rule fires against a text.
// Matching is pure and stateless: identical (rule, text) inputs always
// yield identical output.
type Matcher struct {
	logger zerolog.Logger
}

// NewMatcher creates a new rule matcher
func NewMatcher() *Matcher {
	return &Matcher{
		logger: logging.GetLogger("rules.matcher"),
	}
}

// Match evaluates one rule against one text and reports the matched
// spans in left-to-right order. Regex patterns are compiled
// case-insensitively and scanned globally; keyword patterns are
// case-insensitive substring searches. A regex that fails to compile
// returns an INVALID_PATTERN error, which the pipeline treats as a
// per-run warning, not a fatal abort.
func (m *Matcher) Match(rule types.Rule, text string) (types.MatchResult, error) {
	switch rule.PatternType {
	case types.PatternRegex:
		return m.matchRegex(rule, text)
	case types.PatternKeyword:
		return m.matchKeyword(rule, text), nil
	default:
		return types.MatchResult{}, errors.Newf(errors.ErrInvalidPattern,
			"rule %s has unknown pattern type: %s", rule.Name, rule.PatternType)
	}
}

func (m *Matcher) matchRegex(rule types.Rule, text string) (types.MatchResult, error) {
	re, err := regexp.Compile("(?i)" + rule.Pattern)
	if err != nil {
		return types.MatchResult{}, errors.Wrapf(err, errors.ErrInvalidPattern,
			"rule %s has invalid pattern %q", rule.Name, rule.Pattern)
	}

	locs := re.FindAllStringIndex(text, -1)
	if len(locs) == 0 {
		return types.MatchResult{}, nil
	}

	spans := make([]types.Span, 0, len(locs))
	for _, loc := range locs {
		spans = append(spans, types.Span{Start: loc[0], End: loc[1]})
	}

	m.logger.Trace().
		Str("rule", rule.Name).
		Int("matches", len(spans)).
		Msg("Regex rule fired")

	return types.MatchResult{Fired: true, Spans: spans}, nil
}

func (m *Matcher) matchKeyword(rule types.Rule, text string) types.MatchResult {
	needle := strings.ToLower(rule.Pattern)
	if needle == "" {
		return types.MatchResult{}
	}
	haystack := strings.ToLower(text)

	var spans []types.Span
	for from := 0; ; {
		i := strings.Index(haystack[from:], needle)
		if i < 0 {
			break
		}
		start := from + i
		spans = append(spans, types.Span{Start: start, End: start + len(needle)})
		from = start + len(needle)
	}

	if len(spans) == 0 {
		return types.MatchResult{}
	}
	return types.MatchResult{Fired: true, Spans: spans}
}
