package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/Hariom1711/travelbuddy/internal/auth"
	"github.com/Hariom1711/travelbuddy/internal/logger"
	"github.com/Hariom1711/travelbuddy/internal/model"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

type sessionUser struct {
	ID    uint   `json:"id"`
	Name  string `json:"name,omitempty"`
	Email string `json:"email"`
	Image string `json:"image,omitempty"`
}

// SignUp handles POST /api/auth/signup
func (h *Handler) SignUp(c echo.Context) error {
	var req auth.SignupInput
	if errs := bind(c, &req); errs != nil {
		return invalidInput(c, errs)
	}

	user, err := h.auth.Register(c.Request().Context(), req)
	if err != nil {
		if errs, ok := validationErrors(err); ok {
			return invalidInput(c, errs)
		}
		if errors.Is(err, auth.ErrEmailTaken) {
			return message(c, http.StatusConflict, msgEmailTaken)
		}
		return internalError(c, "Failed to register user", err)
	}

	return c.JSON(http.StatusCreated, echo.Map{
		"message": "User created successfully",
		"user":    user,
	})
}

// SignIn handles POST /api/auth/signin
func (h *Handler) SignIn(c echo.Context) error {
	var req auth.Credentials
	if errs := bind(c, &req); errs != nil {
		return invalidInput(c, errs)
	}

	user, err := h.auth.Authenticate(c.Request().Context(), req)
	if err != nil {
		if errors.Is(err, auth.ErrInvalidCredentials) {
			return message(c, http.StatusUnauthorized, msgInvalidLogin)
		}
		return internalError(c, "Failed to authenticate user", err)
	}

	token, expires, err := h.startSession(c, user)
	if err != nil {
		return internalError(c, "Failed to issue session", err)
	}

	return c.JSON(http.StatusOK, echo.Map{
		"token":   token,
		"expires": expires,
		"user":    user,
	})
}

// SignOut handles POST /api/auth/signout
func (h *Handler) SignOut(c echo.Context) error {
	h.auth.ClearSessionCookie(c.Response())
	return c.JSON(http.StatusOK, echo.Map{"message": "Signed out"})
}

// Session handles GET /api/auth/session; no session is an empty object, not an error
func (h *Handler) Session(c echo.Context) error {
	session, err := h.auth.CurrentSession(c.Request())
	if err != nil {
		return c.JSON(http.StatusOK, echo.Map{})
	}

	return c.JSON(http.StatusOK, echo.Map{
		"user": sessionUser{
			ID:    session.UserID,
			Name:  session.Name,
			Email: session.Email,
			Image: session.Image,
		},
		"expires": session.ExpiresAt,
	})
}

// startSession issues a token for user and sets it as the session cookie
func (h *Handler) startSession(c echo.Context, user *model.User) (string, time.Time, error) {
	token, expires, err := h.auth.IssueSession(user)
	if err != nil {
		return "", time.Time{}, err
	}
	h.auth.SetSessionCookie(c.Response(), token, expires)

	logger.FromEcho(c).Info("User signed in", zap.Uint("user_id", user.ID))
	return token, expires, nil
}
