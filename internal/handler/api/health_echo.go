package api

import (
	"net/http"

	"MarketPulse/internal/domain/models"

	"github.com/labstack/echo/v4"
)

// HealthReporter reports service health.
type HealthReporter interface {
	Health() models.Health
}

type HealthEchoHandler struct {
	health HealthReporter
}

func NewHealthEchoHandler(health HealthReporter) *HealthEchoHandler {
	return &HealthEchoHandler{health: health}
}

func (h *HealthEchoHandler) RegisterRoutes(e *echo.Echo) {
	e.GET("/health", h.Health)
}

// Health always answers 200; a degraded status is reported in the body.
func (h *HealthEchoHandler) Health(c echo.Context) error {
	return c.JSON(http.StatusOK, h.health.Health())
}
