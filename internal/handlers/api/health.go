package api

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v3"

	"actadash/internal/apperr"
	"actadash/internal/config"
	"actadash/internal/models"
)

// Pinger reports whether the record store is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

// HealthHandler serves liveness and readiness checks.
type HealthHandler struct {
	cfg   *config.Config
	store Pinger
}

// NewHealthHandler creates a new health handler.
func NewHealthHandler(cfg *config.Config, store Pinger) *HealthHandler {
	return &HealthHandler{cfg: cfg, store: store}
}

// Health reports the service identity. It never touches the store.
func (h *HealthHandler) Health(c fiber.Ctx) error {
	return jsonResponse(c, fiber.StatusOK, models.HealthResponse{
		Status:    "healthy",
		Service:   h.cfg.ServiceName,
		Timestamp: timestamp(time.Now()),
		Version:   h.cfg.ServiceVersion,
	})
}

// Ready reports whether the record store answers.
func (h *HealthHandler) Ready(c fiber.Ctx) error {
	if h.store == nil {
		return apperr.Unavailable("store_unavailable", "Record store is not configured", nil)
	}

	ctx, cancel := context.WithTimeout(c.Context(), 2*time.Second)
	defer cancel()

	if err := h.store.Ping(ctx); err != nil {
		return apperr.Unavailable("store_unavailable", "Record store is not reachable", err)
	}

	return jsonResponse(c, fiber.StatusOK, fiber.Map{
		"status":    "ready",
		"timestamp": timestamp(time.Now()),
	})
}
