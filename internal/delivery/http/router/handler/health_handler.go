package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"backoffice/internal/delivery/http/response"
	"backoffice/internal/infra/persistence/mongodb"
)

// HealthHandler reports process liveness and store reachability.
type HealthHandler struct {
	db *mongodb.Database
}

// NewHealthHandler is the constructor for HealthHandler, injected by Fx.
func NewHealthHandler(db *mongodb.Database) *HealthHandler {
	return &HealthHandler{db: db}
}

// Check is a simple handler to check if the service and its store are up.
func (h *HealthHandler) Check(c echo.Context) error {
	status := map[string]string{"status": "ok", "database": "ok"}

	if err := h.db.Ping(c.Request().Context()); err != nil {
		status["database"] = "unreachable"

		return c.JSON(http.StatusServiceUnavailable, status)
	}

	return response.Success(c, http.StatusOK, status, "Service is healthy")
}
