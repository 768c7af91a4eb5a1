package controllers

import "github.com/gofiber/fiber/v2"

// Health godoc
// @Summary  Service health
// @Tags     health
// @Produce  json
// @Success  200  {object}  map[string]string
// @Router   / [get]
func Health(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"status": "OK"})
}
