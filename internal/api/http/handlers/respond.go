package handlers

import "github.com/gofiber/fiber/v2"

// respond renders the success envelope the frontend expects.
func respond(c *fiber.Ctx, status int, message string, data any) error {
	return c.Status(status).JSON(fiber.Map{
		"success": true,
		"message": message,
		"data":    data,
	})
}
