package handler_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/Hariom1711/travelbuddy/internal/auth"
	"github.com/Hariom1711/travelbuddy/internal/dashboard"
	"github.com/Hariom1711/travelbuddy/internal/handler"
	"github.com/Hariom1711/travelbuddy/internal/jwtutil"
	"github.com/Hariom1711/travelbuddy/internal/model"
	"github.com/Hariom1711/travelbuddy/internal/profile"
	"github.com/Hariom1711/travelbuddy/internal/server"
	"github.com/Hariom1711/travelbuddy/internal/store"
	"github.com/Hariom1711/travelbuddy/internal/trip"
	"github.com/Hariom1711/travelbuddy/internal/web"
	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

const cookieName = "travelbuddy.session-token"

var fixedNow = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

type testApp struct {
	e        *echo.Echo
	mem      *store.Memory
	provider *auth.Provider
}

func newHandler(mem *store.Memory, provider *auth.Provider, health handler.Pinger) *handler.Handler {
	return handler.New(handler.Options{
		ServiceName: "travelbuddy",
		Auth:        provider,
		Profiles:    profile.NewService(mem),
		Dashboards:  dashboard.NewService(mem, func() time.Time { return fixedNow }),
		Trips:       trip.NewService(mem),
		Health:      health,
	})
}

func newTestApp(t *testing.T) *testApp {
	t.Helper()

	mem := store.NewMemory()
	tokens := jwtutil.NewJWTUtil(&jwtutil.JWTConfig{SigningKey: "test-secret", ExpirationHours: 1})
	provider := auth.NewProvider(mem, tokens, auth.Config{CookieName: cookieName, BcryptCost: bcrypt.MinCost})

	renderer, err := web.NewRenderer()
	require.NoError(t, err)

	reg := prometheus.NewRegistry()
	e := server.New(server.Options{
		ServiceName:    "travelbuddy",
		AllowedOrigins: []string{"http://localhost:8080"},
		Handler:        newHandler(mem, provider, mem),
		Sessions:       provider,
		Renderer:       renderer,
		Registerer:     reg,
		Gatherer:       reg,
	})

	return &testApp{e: e, mem: mem, provider: provider}
}

type request struct {
	method  string
	path    string
	json    string
	form    string
	cookies []*http.Cookie
}

func (a *testApp) do(t *testing.T, r request) *httptest.ResponseRecorder {
	t.Helper()

	var req *http.Request
	switch {
	case r.json != "":
		req = httptest.NewRequest(r.method, r.path, strings.NewReader(r.json))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	case r.form != "":
		req = httptest.NewRequest(r.method, r.path, strings.NewReader(r.form))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationForm)
	default:
		req = httptest.NewRequest(r.method, r.path, nil)
	}
	for _, c := range r.cookies {
		req.AddCookie(c)
	}

	rec := httptest.NewRecorder()
	a.e.ServeHTTP(rec, req)
	return rec
}

// register creates a credentials user with password "correct-horse"
func (a *testApp) register(t *testing.T, email string) *model.User {
	t.Helper()
	user, err := a.provider.Register(context.Background(), auth.SignupInput{Email: email, Password: "correct-horse"})
	require.NoError(t, err)
	return user
}

// setUp completes the profile of user
func (a *testApp) setUp(t *testing.T, user *model.User, username string) {
	t.Helper()
	_, err := a.mem.UpdateProfile(context.Background(), user.ID, store.ProfileUpdate{
		Username:     username,
		Name:         "Ana",
		TravelStyles: []string{"food", "solo", "nature"},
	})
	require.NoError(t, err)
}

func (a *testApp) sessionCookie(t *testing.T, user *model.User) *http.Cookie {
	t.Helper()
	token, _, err := a.provider.IssueSession(user)
	require.NoError(t, err)
	return &http.Cookie{Name: cookieName, Value: token}
}

func findCookie(rec *httptest.ResponseRecorder, name string) *http.Cookie {
	for _, c := range rec.Result().Cookies() {
		if c.Name == name {
			return c
		}
	}
	return nil
}
