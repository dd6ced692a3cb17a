// Package handler holds the echo handlers for the JSON API and the HTML pages.
package handler

import (
	"context"
	"errors"
	"net/http"

	"github.com/Hariom1711/travelbuddy/internal/auth"
	"github.com/Hariom1711/travelbuddy/internal/dashboard"
	"github.com/Hariom1711/travelbuddy/internal/logger"
	"github.com/Hariom1711/travelbuddy/internal/middleware"
	"github.com/Hariom1711/travelbuddy/internal/profile"
	"github.com/Hariom1711/travelbuddy/internal/trip"
	"github.com/Hariom1711/travelbuddy/internal/validate"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

const (
	msgInvalidInput  = "Invalid input data"
	msgUnauthorized  = "Unauthorized"
	msgInternal      = "Something went wrong"
	msgInvalidLogin  = "Invalid email or password"
	msgUsernameTaken = "Username is already taken"
	msgEmailTaken    = "User with this email already exists"
)

// Pinger reports whether the backing store is reachable
type Pinger interface {
	Ping(ctx context.Context) error
}

// Options are the collaborators a Handler is built from
type Options struct {
	ServiceName string
	Auth        *auth.Provider
	Profiles    *profile.Service
	Dashboards  *dashboard.Service
	Trips       *trip.Service
	Health      Pinger
}

type Handler struct {
	service    string
	auth       *auth.Provider
	profiles   *profile.Service
	dashboards *dashboard.Service
	trips      *trip.Service
	health     Pinger
}

func New(opts Options) *Handler {
	return &Handler{
		service:    opts.ServiceName,
		auth:       opts.Auth,
		profiles:   opts.Profiles,
		dashboards: opts.Dashboards,
		trips:      opts.Trips,
		health:     opts.Health,
	}
}

type errorResponse struct {
	Message string                `json:"message"`
	Errors  []validate.FieldError `json:"errors,omitempty"`
}

func message(c echo.Context, status int, msg string) error {
	return c.JSON(status, errorResponse{Message: msg})
}

func invalidInput(c echo.Context, errs *validate.Errors) error {
	return c.JSON(http.StatusBadRequest, errorResponse{Message: msgInvalidInput, Errors: errs.Fields})
}

// bind decodes the request body; a decoding failure is reported against the "body" field
func bind(c echo.Context, v interface{}) *validate.Errors {
	if err := c.Bind(v); err != nil {
		logger.FromEcho(c).Debug("Failed to parse request body", zap.Error(err))
		errs := &validate.Errors{}
		errs.Add("body", "Malformed request body")
		return errs
	}
	return nil
}

// internalError logs err with the request logger and answers with an opaque 500
func internalError(c echo.Context, msg string, err error) error {
	logger.FromEcho(c).Error(msg, zap.Error(err))
	return message(c, http.StatusInternalServerError, msgInternal)
}

// validationErrors unwraps a *validate.Errors from err
func validationErrors(err error) (*validate.Errors, bool) {
	var errs *validate.Errors
	if errors.As(err, &errs) {
		return errs, true
	}
	return nil, false
}

// currentUserID reads the session put in place by the session middleware
func currentUserID(c echo.Context) (uint, bool) {
	session, ok := middleware.SessionFrom(c)
	if !ok {
		return 0, false
	}
	return session.UserID, true
}
