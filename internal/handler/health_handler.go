package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// GET /healthz。DBに届かなければ503
type HealthHandler struct {
	ping func() error
}

func NewHealthHandler(ping func() error) *HealthHandler {
	return &HealthHandler{ping: ping}
}

func (h *HealthHandler) RegisterRoutes(e *echo.Echo) {
	e.GET("/healthz", h.health)
}

func (h *HealthHandler) health(c echo.Context) error {
	if err := h.ping(); err != nil {
		c.Logger().Errorf("healthz: %v", err)
		return fail(c, http.StatusServiceUnavailable, "database unavailable")
	}
	return ok(c, http.StatusOK, "ok", nil)
}
