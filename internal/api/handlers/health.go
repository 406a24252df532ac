// Package handlers implements HTTP handlers for the price-scout API.
package handlers

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"
)

// ReadyFunc reports whether the service can serve lookups.
type ReadyFunc func(ctx context.Context) error

// HealthHandler provides health and readiness endpoints.
type HealthHandler struct {
	ready ReadyFunc
}

// NewHealthHandler creates a new HealthHandler. A nil ready func always
// reports ready.
func NewHealthHandler(ready ReadyFunc) *HealthHandler {
	return &HealthHandler{ready: ready}
}

// Healthz returns 200 if the process is running.
func (*HealthHandler) Healthz(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

// Readyz returns 200 if the model backend is configured, 503 otherwise.
func (h *HealthHandler) Readyz(c echo.Context) error {
	if h.ready != nil {
		if err := h.ready(c.Request().Context()); err != nil {
			return c.JSON(
				http.StatusServiceUnavailable,
				map[string]string{"status": "unavailable", "reason": err.Error()},
			)
		}
	}
	return c.JSON(http.StatusOK, map[string]string{"status": "ready"})
}
