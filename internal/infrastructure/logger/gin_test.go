package logger

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func findHTTPLog(entries []observer.LoggedEntry) *observer.LoggedEntry {
	for i := range entries {
		if entries[i].Message == "HTTP Request" {
			return &entries[i]
		}
	}
	return nil
}

func TestGinMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)

	core, recorded := observer.New(zapcore.DebugLevel)

	router := gin.New()
	router.Use(func(c *gin.Context) {
		c.Set("request_id", "test-req-123")
		c.Next()
	})
	router.Use(GinMiddleware(zap.New(core), "/executive-summary/assets"))
	router.GET("/executive-summary", func(c *gin.Context) {
		c.Request = c.Request.WithContext(WithRenderMode(c.Request.Context(), "screen"))
		assert.Equal(t, "test-req-123", GetRequestID(c.Request.Context()))
		c.String(http.StatusOK, "<html></html>")
	})
	router.GET("/executive-summary/assets/print.js", func(c *gin.Context) {
		c.String(http.StatusOK, "//")
	})
	router.GET("/missing", func(c *gin.Context) {
		c.Status(http.StatusNotFound)
	})
	router.GET("/broken", func(c *gin.Context) {
		_ = c.Error(assert.AnError)
		c.Status(http.StatusServiceUnavailable)
	})

	tests := []struct {
		path  string
		level zapcore.Level
	}{
		{"/executive-summary?x=1", zapcore.InfoLevel},
		{"/executive-summary/assets/print.js", zapcore.DebugLevel},
		{"/missing", zapcore.WarnLevel},
		{"/broken", zapcore.ErrorLevel},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			recorded.TakeAll()
			w := httptest.NewRecorder()
			req, _ := http.NewRequest(http.MethodGet, tt.path, nil)
			router.ServeHTTP(w, req)

			entry := findHTTPLog(recorded.All())
			require.NotNil(t, entry)
			assert.Equal(t, tt.level, entry.Level)
			assert.Equal(t, "test-req-123", entry.ContextMap()["request_id"])
		})
	}

	t.Run("render mode and query are recorded", func(t *testing.T) {
		recorded.TakeAll()
		w := httptest.NewRecorder()
		req, _ := http.NewRequest(http.MethodGet, "/executive-summary?x=1", nil)
		router.ServeHTTP(w, req)

		entry := findHTTPLog(recorded.All())
		require.NotNil(t, entry)
		fields := entry.ContextMap()
		assert.Equal(t, "screen", fields["render_mode"])
		assert.Equal(t, "x=1", fields["query"])
		assert.EqualValues(t, http.StatusOK, fields["status"])
	})
}

func TestGetGinLogger(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("returns request logger", func(t *testing.T) {
		router := gin.New()
		router.Use(GinMiddleware(zap.NewNop()))
		var got *zap.Logger
		router.GET("/", func(c *gin.Context) {
			got = GetGinLogger(c)
			c.Status(http.StatusNoContent)
		})
		router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
		assert.NotNil(t, got)
	})

	t.Run("falls back to no-op", func(t *testing.T) {
		c, _ := gin.CreateTestContext(httptest.NewRecorder())
		assert.NotNil(t, GetGinLogger(c))
	})
}

func TestRecovery(t *testing.T) {
	gin.SetMode(gin.TestMode)

	core, recorded := observer.New(zapcore.ErrorLevel)

	router := gin.New()
	router.Use(Recovery(zap.New(core)))
	router.GET("/panic", func(c *gin.Context) {
		panic("layout exploded")
	})

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/panic", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), "INTERNAL_ERROR")

	entries := recorded.All()
	require.Len(t, entries, 1)
	assert.Equal(t, "Panic recovered", entries[0].Message)
}
