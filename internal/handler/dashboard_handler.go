package handler

import (
	"errors"
	"net/http"

	"github.com/Hariom1711/travelbuddy/internal/dashboard"
	"github.com/labstack/echo/v4"
)

// Dashboard handles GET /api/dashboard
func (h *Handler) Dashboard(c echo.Context) error {
	userID, ok := currentUserID(c)
	if !ok {
		return message(c, http.StatusUnauthorized, msgUnauthorized)
	}

	view, err := h.dashboards.Load(c.Request().Context(), userID)
	if err != nil {
		if errors.Is(err, dashboard.ErrSetupRequired) {
			return c.JSON(http.StatusForbidden, echo.Map{
				"message":  "Profile setup required",
				"redirect": "/profile/setup",
			})
		}
		return internalError(c, "Failed to load dashboard", err)
	}

	return c.JSON(http.StatusOK, view)
}
