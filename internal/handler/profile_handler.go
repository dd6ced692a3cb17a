package handler

import (
	"errors"
	"net/http"

	"github.com/Hariom1711/travelbuddy/internal/profile"
	"github.com/labstack/echo/v4"
)

// GetProfile handles GET /api/profile
func (h *Handler) GetProfile(c echo.Context) error {
	userID, ok := currentUserID(c)
	if !ok {
		return message(c, http.StatusUnauthorized, msgUnauthorized)
	}

	user, err := h.profiles.Get(c.Request().Context(), userID)
	if err != nil {
		if errors.Is(err, profile.ErrUserNotFound) {
			return message(c, http.StatusUnauthorized, msgUnauthorized)
		}
		return internalError(c, "Failed to load profile", err)
	}

	return c.JSON(http.StatusOK, echo.Map{"user": user})
}

// UpdateProfile handles POST /api/profile
func (h *Handler) UpdateProfile(c echo.Context) error {
	userID, ok := currentUserID(c)
	if !ok {
		return message(c, http.StatusUnauthorized, msgUnauthorized)
	}

	var req profile.Input
	if errs := bind(c, &req); errs != nil {
		return invalidInput(c, errs)
	}

	user, err := h.profiles.UpdateProfile(c.Request().Context(), userID, req)
	if err != nil {
		if errs, ok := validationErrors(err); ok {
			return invalidInput(c, errs)
		}
		switch {
		case errors.Is(err, profile.ErrUsernameTaken):
			return message(c, http.StatusConflict, msgUsernameTaken)
		case errors.Is(err, profile.ErrUserNotFound):
			return message(c, http.StatusUnauthorized, msgUnauthorized)
		default:
			return internalError(c, "Profile update error", err)
		}
	}

	return c.JSON(http.StatusOK, echo.Map{
		"message": "Profile updated successfully",
		"user":    user,
	})
}
