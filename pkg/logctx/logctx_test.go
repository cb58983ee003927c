package logctx

import (
	"context"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestFromCtx_PrefersStoredLogger(t *testing.T) {
	base := zap.NewNop().Sugar()
	stored := zap.NewNop().Sugar().With("k", "v")

	ctx := WithLogger(context.Background(), stored)
	require.Same(t, stored, FromCtx(ctx, base))
	require.Same(t, base, FromCtx(context.Background(), base))
}

func TestFromCtx_EnrichesWithTraceID(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	base := zap.New(core).Sugar()

	FromCtx(WithTraceID(context.Background(), "trace-1"), base).Infow("hello")

	require.Equal(t, 1, logs.Len())
	require.Equal(t, "trace-1", logs.All()[0].ContextMap()["trace_id"])
}

func TestFromGin_UsesContextLogger(t *testing.T) {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest("GET", "/", nil)
	base := zap.NewNop().Sugar()
	reqLogger := zap.NewNop().Sugar().With("trace_id", "x")

	require.Same(t, base, FromGin(c, base))
	c.Set(LoggerKey, reqLogger)
	require.Same(t, reqLogger, FromGin(c, base))
	require.Same(t, base, FromGin(nil, base))
}
