package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/Hariom1711/travelbuddy/internal/trip"
	"github.com/labstack/echo/v4"
)

// ListTrips handles GET /api/trips
func (h *Handler) ListTrips(c echo.Context) error {
	userID, ok := currentUserID(c)
	if !ok {
		return message(c, http.StatusUnauthorized, msgUnauthorized)
	}

	trips, err := h.trips.List(c.Request().Context(), userID)
	if err != nil {
		if errors.Is(err, trip.ErrUserNotFound) {
			return message(c, http.StatusUnauthorized, msgUnauthorized)
		}
		return internalError(c, "Failed to list trips", err)
	}
	return c.JSON(http.StatusOK, echo.Map{"trips": trips})
}

// CreateTrip handles POST /api/trips
func (h *Handler) CreateTrip(c echo.Context) error {
	userID, ok := currentUserID(c)
	if !ok {
		return message(c, http.StatusUnauthorized, msgUnauthorized)
	}

	var req trip.Input
	if errs := bind(c, &req); errs != nil {
		return invalidInput(c, errs)
	}

	created, err := h.trips.Create(c.Request().Context(), userID, req)
	if err != nil {
		if errs, ok := validationErrors(err); ok {
			return invalidInput(c, errs)
		}
		if errors.Is(err, trip.ErrUserNotFound) {
			return message(c, http.StatusUnauthorized, msgUnauthorized)
		}
		return internalError(c, "Failed to create trip", err)
	}
	return c.JSON(http.StatusCreated, echo.Map{"trip": created})
}

// GetTrip handles GET /api/trips/:id
func (h *Handler) GetTrip(c echo.Context) error {
	userID, ok := currentUserID(c)
	if !ok {
		return message(c, http.StatusUnauthorized, msgUnauthorized)
	}

	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return message(c, http.StatusNotFound, "Trip not found")
	}

	found, err := h.trips.Get(c.Request().Context(), userID, uint(id))
	if err != nil {
		switch {
		case errors.Is(err, trip.ErrNotFound):
			return message(c, http.StatusNotFound, "Trip not found")
		case errors.Is(err, trip.ErrUserNotFound):
			return message(c, http.StatusUnauthorized, msgUnauthorized)
		}
		return internalError(c, "Failed to load trip", err)
	}
	return c.JSON(http.StatusOK, echo.Map{"trip": found})
}
