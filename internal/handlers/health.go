package handlers

import (
	"context"
	"log/slog"
	"time"

	"ledger/internal/repositories"
	"ledger/internal/utils"

	"github.com/gofiber/fiber/v2"
)

const healthTimeout = 2 * time.Second

// Pinger checks that the stores behind a backend answer.
type Pinger interface {
	Ping(ctx context.Context) error
}

// HealthCheck reports the active backend and whether its stores answer.
// Failures are logged; the response only carries the status.
func HealthCheck(backend repositories.Backend, stores Pinger, logger *slog.Logger) fiber.Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return func(c *fiber.Ctx) error {
		ctx, cancel := context.WithTimeout(c.UserContext(), healthTimeout)
		defer cancel()

		if err := stores.Ping(ctx); err != nil {
			logger.Error("health check failed", "backend", backend, "error", err)
			return utils.ServiceUnavailable(c, fiber.Map{
				"status":  "unavailable",
				"backend": backend,
			})
		}

		return utils.Success(c, fiber.Map{
			"status":  "ok",
			"backend": backend,
		})
	}
}
