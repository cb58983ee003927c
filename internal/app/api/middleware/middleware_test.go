package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/fatflowers/crm/pkg/logctx"
)

func newTestEngine(t *testing.T) (*gin.Engine, *observer.ObservedLogs) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	core, logs := observer.New(zap.InfoLevel)
	r := gin.New()
	r.Use(TraceMiddleware(), RequestLoggerMiddleware(zap.New(core).Sugar()), AccessLogMiddleware())
	r.GET("/ping", func(c *gin.Context) {
		require.Equal(t, c.GetString(logctx.TraceIDKey), logctx.TraceID(c.Request.Context()))
		c.String(http.StatusOK, "pong")
	})
	return r, logs
}

func TestTraceMiddleware_KeepsClientRequestID(t *testing.T) {
	r, logs := newTestEngine(t)
	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set(RequestIDHeader, "req-123")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, "req-123", w.Header().Get(RequestIDHeader))

	entries := logs.FilterMessage("http_access").All()
	require.Len(t, entries, 1)
	require.Equal(t, "req-123", entries[0].ContextMap()["trace_id"])
	require.EqualValues(t, http.StatusOK, entries[0].ContextMap()["status"])
}

func TestTraceMiddleware_GeneratesRequestID(t *testing.T) {
	r, _ := newTestEngine(t)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ping", nil))

	require.Equal(t, http.StatusOK, w.Code)
	require.Len(t, w.Header().Get(RequestIDHeader), 36)
}
