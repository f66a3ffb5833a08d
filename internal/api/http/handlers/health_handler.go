package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/campus-kit/registrar-service/internal/persistence"
)

// HealthHandler serves liveness and readiness probes.
type HealthHandler struct {
	postgres *persistence.Postgres
	redis    *persistence.Redis
}

// NewHealthHandler constructs handler.
func NewHealthHandler(postgres *persistence.Postgres, redis *persistence.Redis) *HealthHandler {
	return &HealthHandler{postgres: postgres, redis: redis}
}

// Live GET /api/health. Process-level liveness only.
func (h *HealthHandler) Live(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"ok": true,
		"ts": time.Now().UTC().Format(time.RFC3339),
	})
}

// Ready GET /health/ready. Checks backing stores; an unreachable cache is
// reported but does not fail readiness since reports degrade gracefully.
func (h *HealthHandler) Ready(c *fiber.Ctx) error {
	ctx := c.UserContext()

	dbStatus := "ok"
	if err := h.postgres.Ping(ctx); err != nil {
		dbStatus = "unavailable"
	}
	cacheStatus := "ok"
	if err := h.redis.Ping(ctx); err != nil {
		cacheStatus = "unavailable"
	}

	code := fiber.StatusOK
	if dbStatus != "ok" {
		code = fiber.StatusServiceUnavailable
	}
	return c.Status(code).JSON(fiber.Map{
		"ok":       code == fiber.StatusOK,
		"postgres": dbStatus,
		"redis":    cacheStatus,
	})
}
