package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/Hariom1711/travelbuddy/internal/auth"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubSessions struct {
	session *auth.Session
	err     error
}

func (s stubSessions) CurrentSession(*http.Request) (*auth.Session, error) {
	return s.session, s.err
}

func TestRequestIDMiddleware(t *testing.T) {
	t.Parallel()

	e := echo.New()
	e.Use(RequestIDMiddleware())
	e.GET("/", func(c echo.Context) error {
		return c.String(http.StatusOK, c.Get(RequestIDKey).(string))
	})

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	generated := rec.Header().Get(echo.HeaderXRequestID)
	assert.Len(t, generated, 36)
	assert.Equal(t, generated, rec.Body.String())

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(echo.HeaderXRequestID, "abc-123")
	rec = httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	assert.Equal(t, "abc-123", rec.Header().Get(echo.HeaderXRequestID))
}

func TestRequireSession(t *testing.T) {
	t.Parallel()

	handler := func(c echo.Context) error {
		s, ok := SessionFrom(c)
		require.True(t, ok)
		return c.JSON(http.StatusOK, map[string]uint{"id": s.UserID})
	}

	e := echo.New()
	e.GET("/ok", handler, RequireSession(stubSessions{session: &auth.Session{UserID: 3}}))
	e.GET("/denied", handler, RequireSession(stubSessions{err: auth.ErrNoSession}))

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/ok", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"id":3}`, rec.Body.String())

	rec = httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/denied", nil))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.JSONEq(t, `{"message":"Unauthorized"}`, rec.Body.String())
}

func TestRequirePageSession(t *testing.T) {
	t.Parallel()

	e := echo.New()
	e.GET("/dashboard", func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	}, RequirePageSession(stubSessions{err: auth.ErrInvalidSession}))

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/dashboard", nil))
	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "/auth/signin", rec.Header().Get(echo.HeaderLocation))
}

func TestSessionFrom_Missing(t *testing.T) {
	t.Parallel()

	c := echo.New().NewContext(httptest.NewRequest(http.MethodGet, "/", nil), httptest.NewRecorder())
	_, ok := SessionFrom(c)
	assert.False(t, ok)
}
