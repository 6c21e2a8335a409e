package handlers

import (
	"context"
	"time"

	"catatuang/internal/utils"

	"github.com/gofiber/fiber/v2"
)

// HealthCheck probes one dependency.
type HealthCheck func(ctx context.Context) error

type HealthHandler struct {
	checks map[string]HealthCheck
}

// NewHealthHandler reports each named check. A nil check is shown as
// disabled and does not make the service unhealthy.
func NewHealthHandler(checks map[string]HealthCheck) *HealthHandler {
	return &HealthHandler{checks: checks}
}

func (h *HealthHandler) Check(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.UserContext(), 2*time.Second)
	defer cancel()

	status := fiber.StatusOK
	services := fiber.Map{}
	for name, check := range h.checks {
		switch {
		case check == nil:
			services[name] = "disabled"
		case check(ctx) != nil:
			services[name] = "unavailable"
			status = fiber.StatusServiceUnavailable
		default:
			services[name] = "connected"
		}
	}

	state := "ok"
	if status != fiber.StatusOK {
		state = "degraded"
	}
	return utils.Respond(c, status, utils.Envelope{
		Success: status == fiber.StatusOK,
		Data: fiber.Map{
			"status":   state,
			"services": services,
		},
	})
}
