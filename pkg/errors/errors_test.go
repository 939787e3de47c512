// pkg/errors/errors_test.go
// TEST TYPE: Unit Test
// DEPENDENCIES: None
// PURPOSE: Test error creation, wrapping, and code matching

package errors_test

import (
	stderrors "errors"
	"fmt"
	"testing"

	"github.com/arthur-debert/tinta/pkg/errors"
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
			name:    "markup_syntax_error",
			code:    errors.ErrMarkupSyntax,
			message: "closing tag with nothing to close",
			wantStr: "[MARKUP_SYNTAX] closing tag with nothing to close",
		},
		{
			name:    "color_parse_error",
			code:    errors.ErrColorParse,
			message: "unknown color",
			wantStr: "[COLOR_PARSE] unknown color",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := errors.New(tt.code, tt.message)

			assert.Equal(t, tt.code, err.Code)
			assert.Equal(t, tt.message, err.Message)
			assert.NotNil(t, err.Details)
			assert.Equal(t, tt.wantStr, err.Error())
		})
	}
}

func TestNewf(t *testing.T) {
	err := errors.Newf(errors.ErrStyleSyntax, "unknown word %q at %d", "blod", 3)
	assert.Equal(t, "unknown word \"blod\" at 3", err.Message)
}

func TestWrap(t *testing.T) {
	t.Run("wraps_cause", func(t *testing.T) {
		cause := stderrors.New("broken pipe")
		err := errors.Wrap(cause, errors.ErrBackendWrite, "write failed")

		require.NotNil(t, err)
		assert.Equal(t, "[BACKEND_WRITE] write failed: broken pipe", err.Error())
		assert.True(t, stderrors.Is(err, cause))
		assert.Same(t, cause, stderrors.Unwrap(err))
	})

	t.Run("nil_cause_returns_nil", func(t *testing.T) {
		assert.Nil(t, errors.Wrap(nil, errors.ErrBackendWrite, "write failed"))
		assert.Nil(t, errors.Wrapf(nil, errors.ErrBackendWrite, "write %d", 1))
	})
}

func TestWithDetails(t *testing.T) {
	err := errors.New(errors.ErrMarkupSyntax, "bad tag").
		WithDetail("position", 4).
		WithDetails(map[string]interface{}{"tag": "/red", "source": "[/red]"})

	assert.Equal(t, 4, err.Details["position"])
	assert.Equal(t, "/red", err.Details["tag"])
	assert.Len(t, err.Details, 3)

	var zero errors.TintaError
	zero.WithDetail("k", "v")
	assert.Equal(t, "v", zero.Details["k"])
}

func TestIs(t *testing.T) {
	a := errors.New(errors.ErrLiveActive, "a")
	b := errors.New(errors.ErrLiveActive, "b")
	c := errors.New(errors.ErrLiveState, "c")

	assert.True(t, stderrors.Is(a, b))
	assert.False(t, stderrors.Is(a, c))
	assert.False(t, stderrors.Is(a, stderrors.New("plain")))
}

func TestIsErrorCode(t *testing.T) {
	base := errors.New(errors.ErrColorParse, "bad hex")
	wrapped := fmt.Errorf("parsing style: %w", base)

	assert.True(t, errors.IsErrorCode(base, errors.ErrColorParse))
	assert.True(t, errors.IsErrorCode(wrapped, errors.ErrColorParse))
	assert.False(t, errors.IsErrorCode(wrapped, errors.ErrMarkupSyntax))
	assert.False(t, errors.IsErrorCode(nil, errors.ErrColorParse))
}

func TestGetErrorCode(t *testing.T) {
	assert.Equal(t, errors.ErrUnknown, errors.GetErrorCode(stderrors.New("x")))
	assert.Equal(t, errors.ErrExport, errors.GetErrorCode(errors.New(errors.ErrExport, "x")))
	assert.Nil(t, errors.GetErrorDetails(stderrors.New("x")))
}

func TestErrorChaining(t *testing.T) {
	inner := errors.New(errors.ErrColorParse, "color(300) out of range")
	outer := errors.Wrap(inner, errors.ErrMarkupSyntax, "invalid tag [color(300)]")

	// the outermost code wins
	assert.Equal(t, errors.ErrMarkupSyntax, errors.GetErrorCode(outer))
	assert.True(t, stderrors.Is(outer, errors.New(errors.ErrColorParse, "")))
}
