package handler

import (
	"errors"
	"net/http"

	"github.com/Hariom1711/travelbuddy/internal/auth"
	"github.com/Hariom1711/travelbuddy/internal/catalog"
	"github.com/Hariom1711/travelbuddy/internal/dashboard"
	"github.com/Hariom1711/travelbuddy/internal/logger"
	"github.com/Hariom1711/travelbuddy/internal/middleware"
	"github.com/Hariom1711/travelbuddy/internal/model"
	"github.com/Hariom1711/travelbuddy/internal/nav"
	"github.com/Hariom1711/travelbuddy/internal/profile"
	"github.com/Hariom1711/travelbuddy/internal/web"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// authErrorMessages maps the ?error= codes of the auth error page to text
var authErrorMessages = map[string]string{
	"Configuration":         "There is a problem with the server configuration.",
	"AccessDenied":          "You do not have permission to sign in.",
	"OAuthCallback":         "We could not complete sign in with the provider. Please try again.",
	"OAuthAccountNotLinked": "This email is already registered. Sign in with your email and password instead.",
	"CredentialsSignin":     msgInvalidLogin,
}

const defaultAuthError = "An unexpected error occurred. Please try again."

func redirect(c echo.Context, to string) error {
	return c.Redirect(http.StatusFound, to)
}

// Home handles GET /
func (h *Handler) Home(c echo.Context) error {
	return redirect(c, "/dashboard")
}

// SignInPage handles GET /auth/signin
func (h *Handler) SignInPage(c echo.Context) error {
	page := &web.Page{Form: web.CredentialsForm{}}
	if c.QueryParam("registered") != "" {
		page.Flash = "Account created! You can now sign in with your credentials."
	}
	if code := c.QueryParam("error"); code != "" {
		page.Error = authErrorMessage(code)
	}
	return c.Render(http.StatusOK, web.PageSignIn, page)
}

// SignInSubmit handles POST /auth/signin
func (h *Handler) SignInSubmit(c echo.Context) error {
	creds := auth.Credentials{
		Email:    c.FormValue("email"),
		Password: c.FormValue("password"),
	}

	user, err := h.auth.Authenticate(c.Request().Context(), creds)
	if err != nil {
		if !errors.Is(err, auth.ErrInvalidCredentials) {
			logger.FromEcho(c).Error("Failed to authenticate user", zap.Error(err))
		}
		return c.Render(http.StatusUnauthorized, web.PageSignIn, &web.Page{
			Error: msgInvalidLogin,
			Form:  web.CredentialsForm{Email: creds.Email},
		})
	}

	if _, _, err := h.startSession(c, user); err != nil {
		logger.FromEcho(c).Error("Failed to issue session", zap.Error(err))
		return redirect(c, "/auth/error?error=Configuration")
	}
	return redirect(c, "/dashboard")
}

// SignUpPage handles GET /auth/signup
func (h *Handler) SignUpPage(c echo.Context) error {
	return c.Render(http.StatusOK, web.PageSignUp, &web.Page{Form: web.CredentialsForm{}})
}

// SignUpSubmit handles POST /auth/signup
func (h *Handler) SignUpSubmit(c echo.Context) error {
	confirm := c.FormValue("confirmPassword")
	in := auth.SignupInput{
		Email:           c.FormValue("email"),
		Password:        c.FormValue("password"),
		ConfirmPassword: &confirm,
	}

	rerender := func(status int, page *web.Page) error {
		page.Form = web.CredentialsForm{Email: in.Email}
		return c.Render(status, web.PageSignUp, page)
	}

	_, err := h.auth.Register(c.Request().Context(), in)
	if err != nil {
		if errs, ok := validationErrors(err); ok {
			return rerender(http.StatusBadRequest, &web.Page{Errors: errs.ByField()})
		}
		if errors.Is(err, auth.ErrEmailTaken) {
			return rerender(http.StatusConflict, &web.Page{Errors: map[string]string{"email": msgEmailTaken}})
		}
		logger.FromEcho(c).Error("Failed to register user", zap.Error(err))
		return rerender(http.StatusInternalServerError, &web.Page{Error: msgInternal})
	}

	return redirect(c, "/auth/signin?registered=1")
}

// SignOutPage handles GET /auth/signout
func (h *Handler) SignOutPage(c echo.Context) error {
	h.auth.ClearSessionCookie(c.Response())
	return redirect(c, "/auth/signin")
}

// AuthError handles GET /auth/error
func (h *Handler) AuthError(c echo.Context) error {
	return c.Render(http.StatusOK, web.PageError, &web.Page{Data: authErrorMessage(c.QueryParam("error"))})
}

func authErrorMessage(code string) string {
	if msg, ok := authErrorMessages[code]; ok {
		return msg
	}
	return defaultAuthError
}

// ProfileSetupPage handles GET /profile/setup
func (h *Handler) ProfileSetupPage(c echo.Context) error {
	userID, ok := currentUserID(c)
	if !ok {
		return redirect(c, "/auth/signin")
	}

	user, err := h.profiles.Get(c.Request().Context(), userID)
	if err != nil {
		if errors.Is(err, profile.ErrUserNotFound) {
			h.auth.ClearSessionCookie(c.Response())
			return redirect(c, "/auth/signin")
		}
		logger.FromEcho(c).Error("Failed to load profile", zap.Error(err))
		return echo.NewHTTPError(http.StatusInternalServerError, msgInternal)
	}

	return c.Render(http.StatusOK, web.PageSetup, &web.Page{
		Nav:      nav.Items(c.Request().URL.Path),
		UserName: user.DisplayName(),
		Form:     setupFormFromUser(user),
	})
}

// ProfileSetupSubmit handles POST /profile/setup
func (h *Handler) ProfileSetupSubmit(c echo.Context) error {
	userID, ok := currentUserID(c)
	if !ok {
		return redirect(c, "/auth/signin")
	}

	in := profileInputFromForm(c)
	_, err := h.profiles.UpdateProfile(c.Request().Context(), userID, in)
	if err == nil {
		return redirect(c, "/dashboard")
	}

	page := &web.Page{
		Nav:  nav.Items(c.Request().URL.Path),
		Form: setupFormFromInput(in),
	}
	if errs, ok := validationErrors(err); ok {
		page.Errors = errs.ByField()
		return c.Render(http.StatusBadRequest, web.PageSetup, page)
	}
	switch {
	case errors.Is(err, profile.ErrUsernameTaken):
		page.Errors = map[string]string{"username": msgUsernameTaken}
		return c.Render(http.StatusConflict, web.PageSetup, page)
	case errors.Is(err, profile.ErrUserNotFound):
		h.auth.ClearSessionCookie(c.Response())
		return redirect(c, "/auth/signin")
	default:
		logger.FromEcho(c).Error("Profile update error", zap.Error(err))
		page.Error = msgInternal
		return c.Render(http.StatusInternalServerError, web.PageSetup, page)
	}
}

// DashboardPage handles GET /dashboard
func (h *Handler) DashboardPage(c echo.Context) error {
	session, ok := middleware.SessionFrom(c)
	if !ok {
		return redirect(c, "/auth/signin")
	}

	view, err := h.dashboards.Load(c.Request().Context(), session.UserID)
	if err != nil {
		if errors.Is(err, dashboard.ErrSetupRequired) {
			return redirect(c, "/profile/setup")
		}
		logger.FromEcho(c).Error("Failed to load dashboard", zap.Error(err))
		return echo.NewHTTPError(http.StatusInternalServerError, msgInternal)
	}

	return c.Render(http.StatusOK, web.PageDashboard, &web.Page{
		Nav:      nav.Items(c.Request().URL.Path),
		UserName: view.User.DisplayName(),
		Data:     view,
	})
}

func profileInputFromForm(c echo.Context) profile.Input {
	in := profile.Input{
		Username: c.FormValue("username"),
		Name:     c.FormValue("name"),
	}
	if form, err := c.FormParams(); err == nil {
		in.TravelStyles = form["travelStyles"]
		if _, ok := form["bio"]; ok {
			bio := form.Get("bio")
			in.Bio = &bio
		}
		if _, ok := form["location"]; ok {
			location := form.Get("location")
			in.Location = &location
		}
		if _, ok := form["budget"]; ok {
			budget := form.Get("budget")
			in.Budget = &budget
		}
	}
	return in
}

func setupFormFromUser(u *model.User) web.SetupForm {
	form := newSetupForm()
	form.Username = deref(u.Username)
	form.Name = deref(u.Name)
	form.Bio = deref(u.Bio)
	form.Location = deref(u.Location)
	if u.Preferences != nil {
		for _, s := range u.Preferences.TravelStyles {
			form.Selected[s] = true
		}
		if b := deref(u.Preferences.Budget); b != "" {
			form.Budget = b
		}
	}
	return form
}

func setupFormFromInput(in profile.Input) web.SetupForm {
	form := newSetupForm()
	form.Username = in.Username
	form.Name = in.Name
	form.Bio = deref(in.Bio)
	form.Location = deref(in.Location)
	for _, s := range in.TravelStyles {
		form.Selected[s] = true
	}
	if b := deref(in.Budget); b != "" {
		form.Budget = b
	}
	return form
}

func newSetupForm() web.SetupForm {
	return web.SetupForm{
		Budget:        catalog.DefaultBudget,
		Selected:      make(map[string]bool),
		TravelStyles:  catalog.TravelStyles(),
		BudgetOptions: catalog.BudgetOptions(),
	}
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
