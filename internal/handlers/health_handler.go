package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"
)

type HealthHandler struct {
	provider  string
	model     string
	startedAt time.Time
}

func NewHealthHandler(provider, model string) *HealthHandler {
	return &HealthHandler{
		provider:  provider,
		model:     model,
		startedAt: time.Now(),
	}
}

func (h *HealthHandler) HandleHealth(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status":   "healthy",
		"time":     time.Now(),
		"uptime":   time.Since(h.startedAt).Round(time.Second).String(),
		"provider": h.provider,
		"model":    h.model,
	})
}
