package handler

import (
	"context"
	"time"

	"portfolio-api/internal/pkg/response"

	"github.com/gofiber/fiber/v3"
)

type pinger interface {
	Ping(ctx context.Context) error
}

// HealthHandler reports readiness. The cache is optional infrastructure,
// so its state is informational and never fails the check.
type HealthHandler struct {
	db    pinger
	cache pinger
}

func NewHealthHandler(db, cache pinger) *HealthHandler {
	return &HealthHandler{db: db, cache: cache}
}

func (h *HealthHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}
	r.Get("/health", h.Health)
}

func (h *HealthHandler) Health(c fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), 2*time.Second)
	defer cancel()

	data := map[string]string{
		"database": "up",
		"cache":    "up",
	}

	if h.db == nil || h.db.Ping(ctx) != nil {
		data["database"] = "down"
		return response.Error(c, fiber.StatusServiceUnavailable, "unhealthy", data)
	}
	if h.cache == nil || h.cache.Ping(ctx) != nil {
		data["cache"] = "down"
	}

	return response.Success(c, fiber.StatusOK, response.MessageOK, data)
}
