package handler

import (
	"context"
	"time"

	"github.com/Nest-Commerce-Microservices/products-ms/pkg/mylogger"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Check probes one dependency.
type Check func(ctx context.Context) error

type HealthHandler struct {
	checks  map[string]Check
	logger  *zap.Logger
	timeout time.Duration
}

func NewHealthHandler(checks map[string]Check, logger *zap.Logger) *HealthHandler {
	return &HealthHandler{
		checks:  checks,
		logger:  logger,
		timeout: 2 * time.Second,
	}
}

func (h *HealthHandler) Check(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.UserContext(), h.timeout)
	defer cancel()

	failed := make(map[string]string)
	for name, check := range h.checks {
		if err := check(ctx); err != nil {
			mylogger.Warn(ctx, h.logger, "health check failed", zap.String("check", name), zap.Error(err))
			failed[name] = err.Error()
		}
	}

	if len(failed) > 0 {
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
			"status": "unavailable",
			"checks": failed,
		})
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{"status": "ok"})
}
