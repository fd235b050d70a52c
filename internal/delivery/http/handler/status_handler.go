package handler

import (
	"github.com/gofiber/fiber/v2"
)

// StatusHandler serves liveness probes.
type StatusHandler struct{}

func NewStatusHandler() *StatusHandler {
	return &StatusHandler{}
}

// Home godoc
// @Summary Service banner
// @Tags Status
// @Produce plain
// @Success 200 {string} string
// @Router / [get]
func (h *StatusHandler) Home(c *fiber.Ctx) error {
	return c.SendString("SafeBag Backend Running")
}

// Status godoc
// @Summary Health check
// @Tags Status
// @Produce json
// @Success 200 {object} map[string]string
// @Router /status [get]
func (h *StatusHandler) Status(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"status": "Backend Running"})
}
