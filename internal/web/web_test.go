package web

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/Hariom1711/travelbuddy/internal/catalog"
	"github.com/Hariom1711/travelbuddy/internal/dashboard"
	"github.com/Hariom1711/travelbuddy/internal/model"
	"github.com/Hariom1711/travelbuddy/internal/nav"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func render(t *testing.T, name string, page *Page) string {
	t.Helper()
	r, err := NewRenderer()
	require.NoError(t, err)

	c := echo.New().NewContext(httptest.NewRequest(http.MethodGet, "/", nil), httptest.NewRecorder())
	var buf bytes.Buffer
	require.NoError(t, r.Render(&buf, name, page, c))
	return buf.String()
}

func TestRender_SignInKeepsEmail(t *testing.T) {
	t.Parallel()

	out := render(t, PageSignIn, &Page{Error: "Invalid email or password", Form: CredentialsForm{Email: "ana@example.com"}})
	assert.Contains(t, out, "<title>TravelBuddy - Plan, Explore, Share</title>")
	assert.Contains(t, out, `value="ana@example.com"`)
	assert.Contains(t, out, "Invalid email or password")
	assert.NotContains(t, out, "main-nav")
}

func TestRender_SignUpFieldErrors(t *testing.T) {
	t.Parallel()

	out := render(t, PageSignUp, &Page{
		Form:   CredentialsForm{Email: "x"},
		Errors: map[string]string{"confirmPassword": "Passwords do not match"},
	})
	assert.Contains(t, out, "Passwords do not match")
	assert.Contains(t, out, `minlength="8"`)
}

func TestRender_SetupPrefillsForm(t *testing.T) {
	t.Parallel()

	out := render(t, PageSetup, &Page{
		Form: SetupForm{
			Username:      "ana",
			Budget:        catalog.DefaultBudget,
			Selected:      map[string]bool{"food": true},
			TravelStyles:  catalog.TravelStyles(),
			BudgetOptions: catalog.BudgetOptions(),
		},
		Errors: map[string]string{"name": "Name must be at least 2 characters"},
	})
	assert.Contains(t, out, `value="ana"`)
	assert.Contains(t, out, `value="food" checked`)
	assert.NotContains(t, out, `value="solo" checked`)
	assert.Contains(t, out, `<option value="mid-range" selected>Mid-range</option>`)
	assert.Contains(t, out, "Name must be at least 2 characters")
}

func TestRender_Dashboard(t *testing.T) {
	t.Parallel()

	name := "Ana"
	view := &dashboard.View{
		User: &model.User{Email: "ana@example.com", Name: &name},
		UpcomingTrips: []model.Trip{{
			ID:        9,
			Title:     "Kyoto in spring",
			StartDate: time.Date(2099, 4, 1, 0, 0, 0, 0, time.UTC),
			EndDate:   time.Date(2099, 4, 9, 0, 0, 0, 0, time.UTC),
		}},
		Stats:        dashboard.Stats{TotalTrips: 3, UpcomingTrips: 1, TravelStyles: []string{"food", "solo"}},
		Destinations: catalog.PopularDestinations(),
	}

	out := render(t, PageDashboard, &Page{Nav: nav.Items("/dashboard"), UserName: "Ana", Data: view})
	assert.Contains(t, out, "Welcome, Ana!")
	assert.Contains(t, out, `href="/trips/9"`)
	assert.Contains(t, out, "Apr 1, 2099 - Apr 9, 2099")
	assert.Contains(t, out, "Food, Solo")
	assert.Contains(t, out, "Mount Fuji")
	assert.Contains(t, out, `<a href="/dashboard" class="active" aria-current="page">Dashboard</a>`)
}

func TestRender_UnknownPage(t *testing.T) {
	t.Parallel()

	r, err := NewRenderer()
	require.NoError(t, err)
	c := echo.New().NewContext(httptest.NewRequest(http.MethodGet, "/", nil), httptest.NewRecorder())
	assert.Error(t, r.Render(&bytes.Buffer{}, "nope", &Page{}, c))
}
