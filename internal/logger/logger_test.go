package logger

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func withObservedLogger(t *testing.T) *observer.ObservedLogs {
	t.Helper()
	core, logs := observer.New(zapcore.DebugLevel)
	prev := log
	log = zap.New(core)
	t.Cleanup(func() { log = prev })
	return logs
}

func TestMiddleware_LogsRequestWithID(t *testing.T) {
	logs := withObservedLogger(t)

	e := echo.New()
	e.Use(Middleware())
	e.GET("/ping", func(c echo.Context) error {
		assert.NotSame(t, GetLogger(), FromEcho(c))
		assert.Same(t, FromEcho(c), FromContext(c.Request().Context()))
		return c.String(http.StatusTeapot, "pong")
	})

	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set(echo.HeaderXRequestID, "req-1")
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	require.Equal(t, http.StatusTeapot, rec.Code)
	entries := logs.FilterMessage("HTTP Request").All()
	require.Len(t, entries, 1)

	fields := entries[0].ContextMap()
	assert.Equal(t, "req-1", fields["request_id"])
	assert.Equal(t, "GET", fields["method"])
	assert.Equal(t, "/ping", fields["path"])
	assert.EqualValues(t, http.StatusTeapot, fields["status"])
}

func TestMiddleware_RecordsStatusOfReturnedError(t *testing.T) {
	logs := withObservedLogger(t)

	e := echo.New()
	e.Use(Middleware())
	e.GET("/boom", func(c echo.Context) error {
		return echo.NewHTTPError(http.StatusBadGateway, "upstream")
	})

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/boom", nil))

	assert.Equal(t, http.StatusBadGateway, rec.Code)
	entries := logs.FilterMessage("HTTP Request").All()
	require.Len(t, entries, 1)
	assert.EqualValues(t, http.StatusBadGateway, entries[0].ContextMap()["status"])
}

func TestFromContext_FallsBackToGlobal(t *testing.T) {
	withObservedLogger(t)

	assert.Same(t, GetLogger(), FromContext(context.Background()))

	custom := zap.NewNop()
	assert.Same(t, custom, FromContext(WithContext(context.Background(), custom)))
}

func TestInitLogger(t *testing.T) {
	prev := log
	t.Cleanup(func() { log = prev })

	require.NoError(t, InitLogger(&LogConfig{Level: "debug", Environment: "development", ServiceName: "travelbuddy"}))
	assert.True(t, GetLogger().Core().Enabled(zapcore.DebugLevel))

	require.NoError(t, InitLogger(&LogConfig{Level: "warn", Environment: "production", ServiceName: "travelbuddy"}))
	assert.False(t, GetLogger().Core().Enabled(zapcore.InfoLevel))
	assert.True(t, GetLogger().Core().Enabled(zapcore.WarnLevel))
}

func TestParseLevel(t *testing.T) {
	t.Parallel()

	assert.Equal(t, zapcore.DebugLevel, parseLevel("debug"))
	assert.Equal(t, zapcore.ErrorLevel, parseLevel("error"))
	assert.Equal(t, zapcore.InfoLevel, parseLevel("nonsense"))
}
