package types

import "time"

// Span is a half-open [Start, End) byte range within the matched text
type Span struct {
	Start int `json:"start"`
	End   int `json:"end"`
}

// MatchResult is the outcome of evaluating one rule against one text
type MatchResult struct {
	Fired bool   `json:"fired"`
	Spans []Span `json:"spans,omitempty"`
}

// ValidationResult is the final output of one pipeline run.
// It is created fresh per run and never mutated after return.
type ValidationResult struct {
	OriginalText   string    `json:"originalText"`
	FinalText      string    `json:"finalText"`
	AppliedChanges bool      `json:"appliedChanges"`
	ChangeLog      []string  `json:"changeLog"`
	Warnings       []string  `json:"warnings,omitempty"`
	Errors         []string  `json:"errors,omitempty"`
	TimedOut       bool      `json:"timedOut,omitempty"`
	Timestamp      time.Time `json:"timestamp"`
}
