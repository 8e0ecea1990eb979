package handler

import (
	"time"

	"github.com/labstack/echo/v4"

	"github.com/medcamp/mcms/internal/server"
)

// HealthHandler serves the service health endpoint.
type HealthHandler struct {
	Handler
}

// NewHealthHandler constructs a HealthHandler.
func NewHealthHandler(s *server.Server) *HealthHandler {
	return &HealthHandler{Handler: NewHandler(s)}
}

// HealthResponse reports the status of the service and its dependencies.
type HealthResponse struct {
	Status       string            `json:"status"`
	Dependencies map[string]string `json:"dependencies"`
}

// Status checks connectivity to the database and redis. A database failure
// makes the service unhealthy; redis is reported but does not fail the
// check since its features degrade gracefully.
func (h *HealthHandler) Status(c echo.Context, _ *EmptyRequest) (*HealthResponse, error) {
	ctx, cancel := echoContextWithTimeout(c, 2*time.Second)
	defer cancel()

	response := &HealthResponse{
		Status:       "ok",
		Dependencies: map[string]string{},
	}

	if err := h.server.DB.Pool.Ping(ctx); err != nil {
		response.Status = "degraded"
		response.Dependencies["database"] = "unreachable"
	} else {
		response.Dependencies["database"] = "ok"
	}

	if err := h.server.Redis.Ping(ctx).Err(); err != nil {
		response.Dependencies["redis"] = "unreachable"
	} else {
		response.Dependencies["redis"] = "ok"
	}

	return response, nil
}
