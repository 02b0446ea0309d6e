package handler

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/briefing/backend/internal/domain/shared"
	infra "github.com/briefing/backend/internal/infrastructure/printing"
	"github.com/briefing/backend/internal/interfaces/http/dto"
	"github.com/briefing/backend/internal/interfaces/http/middleware"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newTestContext() (*gin.Context, *httptest.ResponseRecorder) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
	return c, w
}

func decodeResponse(t *testing.T, w *httptest.ResponseRecorder) dto.Response {
	t.Helper()
	var resp dto.Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

func TestBaseHandlerSuccessResponses(t *testing.T) {
	h := &BaseHandler{}

	tests := []struct {
		name string
		call func(*gin.Context)
		code int
	}{
		{"success", func(c *gin.Context) { h.Success(c, gin.H{"ok": true}) }, http.StatusOK},
		{"accepted", func(c *gin.Context) { h.Accepted(c, gin.H{"ok": true}) }, http.StatusAccepted},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, w := newTestContext()
			tt.call(c)

			assert.Equal(t, tt.code, w.Code)
			resp := decodeResponse(t, w)
			assert.True(t, resp.Success)
			assert.NotNil(t, resp.Data)
		})
	}
}

func TestBaseHandlerErrorMethods(t *testing.T) {
	h := &BaseHandler{}

	tests := []struct {
		name string
		call func(*gin.Context)
		code int
		err  string
	}{
		{"not found", func(c *gin.Context) { h.NotFound(c, "missing") }, http.StatusNotFound, dto.ErrCodeNotFound},
		{"internal", func(c *gin.Context) { h.InternalError(c, "boom") }, http.StatusInternalServerError, dto.ErrCodeInternal},
		{"unavailable", func(c *gin.Context) { h.ServiceUnavailable(c, "off") }, http.StatusServiceUnavailable, dto.ErrCodeServiceUnavailable},
		{"with code", func(c *gin.Context) { h.ErrorWithCode(c, "RENDER_TIMEOUT", "slow") }, http.StatusGatewayTimeout, dto.ErrCodeRenderTimeout},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, w := newTestContext()
			c.Set(middleware.RequestIDKey, "req-err")
			tt.call(c)

			assert.Equal(t, tt.code, w.Code)
			resp := decodeResponse(t, w)
			assert.False(t, resp.Success)
			require.NotNil(t, resp.Error)
			assert.Equal(t, tt.err, resp.Error.Code)
			assert.Equal(t, "req-err", resp.Error.RequestID)
		})
	}
}

func TestBaseHandlerHandleError(t *testing.T) {
	h := &BaseHandler{}

	tests := []struct {
		name    string
		err     error
		code    int
		errCode string
		message string
	}{
		{
			name:    "domain unavailable",
			err:     shared.NewDomainError("SERVICE_UNAVAILABLE", "PDF export is not enabled"),
			code:    http.StatusServiceUnavailable,
			errCode: dto.ErrCodeServiceUnavailable,
			message: "PDF export is not enabled",
		},
		{
			name:    "wrapped domain invalid input",
			err:     fmt.Errorf("outline: %w", shared.NewDomainError("INVALID_INPUT", "Invalid render mode: tv")),
			code:    http.StatusBadRequest,
			errCode: dto.ErrCodeInvalidInput,
			message: "Invalid render mode: tv",
		},
		{
			name:    "render timeout",
			err:     fmt.Errorf("failed to export summary: %w", infra.NewRenderError(infra.ErrCodeRenderTimeout, "print timed out", nil)),
			code:    http.StatusGatewayTimeout,
			errCode: dto.ErrCodeRenderTimeout,
			message: "print timed out",
		},
		{
			name:    "export not found",
			err:     infra.NewRenderError(infra.ErrCodeExportNotFound, "export not found", nil),
			code:    http.StatusNotFound,
			errCode: dto.ErrCodeNotFound,
			message: "export not found",
		},
		{
			name:    "unknown error",
			err:     assert.AnError,
			code:    http.StatusInternalServerError,
			errCode: dto.ErrCodeInternal,
			message: "An unexpected error occurred",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, w := newTestContext()
			h.HandleError(c, tt.err)

			assert.Equal(t, tt.code, w.Code)
			resp := decodeResponse(t, w)
			require.NotNil(t, resp.Error)
			assert.Equal(t, tt.errCode, resp.Error.Code)
			assert.Equal(t, tt.message, resp.Error.Message)
		})
	}

	t.Run("nil error writes nothing", func(t *testing.T) {
		c, w := newTestContext()
		h.HandleError(c, nil)
		assert.Empty(t, w.Body.String())
	})
}
