package handler

import (
	"net/http"

	"github.com/Hariom1711/travelbuddy/internal/logger"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// HealthCheck handles GET /health
func (h *Handler) HealthCheck(c echo.Context) error {
	if h.health != nil {
		if err := h.health.Ping(c.Request().Context()); err != nil {
			logger.FromEcho(c).Warn("Health check failed", zap.Error(err))
			return c.JSON(http.StatusServiceUnavailable, echo.Map{
				"status":  "unhealthy",
				"service": h.service,
			})
		}
	}

	return c.JSON(http.StatusOK, echo.Map{
		"status":  "healthy",
		"service": h.service,
	})
}
