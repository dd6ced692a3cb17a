// Package web renders the server-side HTML pages through echo's Renderer.
package web

import (
	"embed"
	"fmt"
	"html/template"
	"io"
	"strings"
	"time"

	"github.com/Hariom1711/travelbuddy/internal/catalog"
	"github.com/Hariom1711/travelbuddy/internal/nav"
	"github.com/labstack/echo/v4"
)

// AppTitle is the document title of every page
const AppTitle = "TravelBuddy - Plan, Explore, Share"

//go:embed templates/*.html
var templateFS embed.FS

// Page names understood by Renderer
const (
	PageSignIn    = "signin"
	PageSignUp    = "signup"
	PageError     = "error"
	PageSetup     = "setup"
	PageDashboard = "dashboard"
)

var pageNames = []string{PageSignIn, PageSignUp, PageError, PageSetup, PageDashboard}

// Page is the data every template receives
type Page struct {
	Title    string
	Nav      []nav.Item
	UserName string
	Flash    string
	Error    string
	Errors   map[string]string
	Form     interface{}
	Data     interface{}
}

// SetupForm holds the profile setup form values for re-rendering
type SetupForm struct {
	Username      string
	Name          string
	Bio           string
	Location      string
	Budget        string
	Selected      map[string]bool
	TravelStyles  []catalog.Option
	BudgetOptions []catalog.Option
}

// CredentialsForm holds the sign-in and sign-up form values; passwords are never echoed back
type CredentialsForm struct {
	Email string
}

// Renderer is an echo.Renderer over the embedded templates
type Renderer struct {
	pages map[string]*template.Template
}

var funcs = template.FuncMap{
	"formatDate": func(t time.Time) string { return t.Format("Jan 2, 2006") },
	"label":      catalog.Label,
	"join":       strings.Join,
}

// NewRenderer parses every page together with the shared layout
func NewRenderer() (*Renderer, error) {
	r := &Renderer{pages: make(map[string]*template.Template, len(pageNames))}
	for _, name := range pageNames {
		t, err := template.New(name).Funcs(funcs).ParseFS(templateFS, "templates/layout.html", "templates/"+name+".html")
		if err != nil {
			return nil, fmt.Errorf("parse template %s: %w", name, err)
		}
		r.pages[name] = t
	}
	return r, nil
}

// Render implements echo.Renderer
func (r *Renderer) Render(w io.Writer, name string, data interface{}, c echo.Context) error {
	t, ok := r.pages[name]
	if !ok {
		return fmt.Errorf("unknown page %q", name)
	}
	if p, ok := data.(*Page); ok && p.Title == "" {
		p.Title = AppTitle
	}
	return t.ExecuteTemplate(w, "layout", data)
}
