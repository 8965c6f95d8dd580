// Test Type: Unit Test
// Description: Internal-failure recovery, forcing a panic mid-run

package pipeline

import (
	"context"
	"testing"

	"github.com/arthur-debert/failsafe/pkg/rules"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRun_RecoversFromInternalFailure(t *testing.T) {
	p := New(rules.NewStore(), nil)
	// A nil store makes rule selection panic, standing in for any
	// unexpected internal failure during a run.
	p.store = nil

	result := p.Run(context.Background(), "original content", "ctx", Options{})

	// The panic never escapes; the caller always gets a displayable result
	assert.Contains(t, result.FinalText, "original content")
	assert.Contains(t, result.FinalText, "FailSafe validation failed")
	assert.False(t, result.AppliedChanges)
	require.NotEmpty(t, result.Errors)
	assert.Contains(t, result.Errors[0], "validation failed")
	assert.False(t, result.Timestamp.IsZero())
}

func TestRun_FailureBannerPreservesOriginalText(t *testing.T) {
	p := New(rules.NewStore(), nil)
	p.store = nil

	result := p.Run(context.Background(), "keep me visible", "ctx", Options{})

	// The banner is appended, never a replacement: a reviewer sees both
	// the content and the notice that it was not checked.
	assert.Equal(t, "keep me visible", result.OriginalText)
	assert.Contains(t, result.FinalText, "keep me visible")
	assert.Contains(t, result.FinalText, "Review manually")
}
