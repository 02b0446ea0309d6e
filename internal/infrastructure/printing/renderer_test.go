package printing

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRenderError(t *testing.T) {
	t.Run("without cause", func(t *testing.T) {
		err := NewRenderError(ErrCodeInvalidHTML, "HTML content is empty", nil)
		assert.Equal(t, "HTML content is empty", err.Error())
		assert.Nil(t, errors.Unwrap(err))
	})

	t.Run("with cause", func(t *testing.T) {
		cause := errors.New("connection refused")
		err := NewRenderError(ErrCodeRenderFailed, "chromedp execution failed", cause)
		assert.Equal(t, "chromedp execution failed: connection refused", err.Error())
		assert.ErrorIs(t, err, cause)
	})

	t.Run("errors.As", func(t *testing.T) {
		var wrapped error = NewRenderError(ErrCodeRenderTimeout, "printing timed out", nil)
		var renderErr *RenderError
		assert.True(t, errors.As(wrapped, &renderErr))
		assert.Equal(t, ErrCodeRenderTimeout, renderErr.Code)
	})
}
