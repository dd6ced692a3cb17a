package handler

import (
	"net/http"

	"github.com/Hariom1711/travelbuddy/internal/catalog"
	"github.com/Hariom1711/travelbuddy/internal/nav"
	"github.com/labstack/echo/v4"
)

// Catalog handles GET /api/catalog
func (h *Handler) Catalog(c echo.Context) error {
	return c.JSON(http.StatusOK, echo.Map{
		"travelStyles":  catalog.TravelStyles(),
		"budgetOptions": catalog.BudgetOptions(),
		"defaultBudget": catalog.DefaultBudget,
		"destinations":  catalog.PopularDestinations(),
	})
}

// Nav handles GET /api/nav?path=
func (h *Handler) Nav(c echo.Context) error {
	return c.JSON(http.StatusOK, echo.Map{"items": nav.Items(c.QueryParam("path"))})
}
