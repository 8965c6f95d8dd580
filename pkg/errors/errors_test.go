// pkg/errors/errors_test.go
// TEST TYPE: Unit Test
// DEPENDENCIES: None
// PURPOSE: Test error creation, wrapping, and utility functions

package errors_test

import (
	stderrors "errors"
	"testing"

	"github.com/arthur-debert/failsafe/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name    string
		code    errors.ErrorCode
		message string
		wantStr string
	}{
		{
			name:    "not_found_error",
			code:    errors.ErrNotFound,
			message: "rule not found",
			wantStr: "[NOT_FOUND] rule not found",
		},
		{
			name:    "invalid_pattern_error",
			code:    errors.ErrInvalidPattern,
			message: "bad regex",
			wantStr: "[INVALID_PATTERN] bad regex",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := errors.New(tt.code, tt.message)
			assert.Equal(t, tt.wantStr, err.Error())
			assert.Equal(t, tt.code, err.Code)
		})
	}
}

func TestWrap(t *testing.T) {
	inner := stderrors.New("disk full")
	err := errors.Wrap(inner, errors.ErrStoreSave, "failed to save rules")

	require.NotNil(t, err)
	assert.Equal(t, "[STORE_SAVE] failed to save rules: disk full", err.Error())
	assert.Equal(t, inner, stderrors.Unwrap(err))

	// Wrapping nil returns nil
	assert.Nil(t, errors.Wrap(nil, errors.ErrStoreSave, "ignored"))
}

func TestIsErrorCode(t *testing.T) {
	err := errors.Newf(errors.ErrJustificationRequired, "rule %s requires justification", "r1")

	assert.True(t, errors.IsErrorCode(err, errors.ErrJustificationRequired))
	assert.False(t, errors.IsErrorCode(err, errors.ErrOverrideNotAllowed))
	assert.False(t, errors.IsErrorCode(stderrors.New("plain"), errors.ErrJustificationRequired))
}

func TestGetErrorCode(t *testing.T) {
	err := errors.New(errors.ErrTimeout, "run exceeded deadline")
	assert.Equal(t, errors.ErrTimeout, errors.GetErrorCode(err))
	assert.Equal(t, errors.ErrUnknown, errors.GetErrorCode(stderrors.New("plain")))
}

func TestWithDetail(t *testing.T) {
	err := errors.New(errors.ErrNotFound, "rule not found").
		WithDetail("ruleId", "abc-123")

	assert.Equal(t, "abc-123", err.Details["ruleId"])
}
